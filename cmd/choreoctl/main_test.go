package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/towerview/internal/config"
	"github.com/Faultbox/towerview/pkg/choreo"
)

func TestSampleScrollCoversTrack(t *testing.T) {
	s, err := config.DefaultScene(choreo.DefaultFOVRange)
	require.NoError(t, err)

	samples, err := sampleScroll(s, 1000, 12)
	require.NoError(t, err)
	require.Len(t, samples, 12)

	first, last := samples[0], samples[len(samples)-1]
	assert.Equal(t, s.ScrollTrack.Keyframes[0].Pose, first.Pose)
	assert.Equal(t, s.ScrollTrack.Keyframes[s.ScrollTrack.Len()-1].Pose, last.Pose)

	for i := 1; i < len(samples); i++ {
		assert.Greater(t, samples[i].Offset, samples[i-1].Offset)
		assert.False(t, samples[i].Segment < samples[i-1].Segment, "segment went backwards at %d", i)
	}
}

func TestSampleScrollMinimumSteps(t *testing.T) {
	s, err := config.DefaultScene(choreo.DefaultFOVRange)
	require.NoError(t, err)

	samples, err := sampleScroll(s, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

func TestSampleScrollBadViewport(t *testing.T) {
	s, err := config.DefaultScene(choreo.DefaultFOVRange)
	require.NoError(t, err)

	_, err = sampleScroll(s, 0, 5)
	assert.Error(t, err)
}

func TestFOVFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	r := fovFlags(fs)
	require.NoError(t, fs.Parse([]string{"-fov-min", "20", "-fov-max", "70"}))
	assert.Equal(t, choreo.FOVRange{Min: 20, Max: 70}, *r)
}

func TestEasingName(t *testing.T) {
	assert.Equal(t, choreo.DefaultEasingName, easingName(""))
	assert.Equal(t, "linear", easingName("linear"))
}
