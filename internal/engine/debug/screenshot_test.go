package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipRGBA(t *testing.T) {
	// Two rows, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRGBA(pixels, 1, 2)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b, "top of the image is the last GL row")
}

func TestFlipRGBASizeMismatch(t *testing.T) {
	_, err := FlipRGBA(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}

func TestSaveWritesPNG(t *testing.T) {
	s := Screenshots{Dir: filepath.Join(t.TempDir(), "shots"), Prefix: "towerview"}
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	path, err := s.Save(make([]byte, 4*3*2), 3, 2, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir, "towerview_2024-03-01_09-30-00.000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
}
