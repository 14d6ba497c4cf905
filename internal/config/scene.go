package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/towerview/internal/assets"
	"github.com/Faultbox/towerview/internal/engine/lighting"
	"github.com/Faultbox/towerview/internal/navigation"
	"github.com/Faultbox/towerview/pkg/choreo"
	"github.com/Faultbox/towerview/pkg/math"
)

// ErrInvalidScene wraps every scene validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// Format is a scene file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported scene extension %q", filepath.Ext(path))
	}
}

// Building is the displayed model's footprint in world space.
type Building struct {
	Min      math.Vec3 `yaml:"min" toml:"min"`
	Max      math.Vec3 `yaml:"max" toml:"max"`
	Position math.Vec3 `yaml:"position" toml:"position"`
}

// Scene is the static choreography data: page sections with their scroll
// keyframes, and the rooms reachable in explore mode.
type Scene struct {
	Name string `yaml:"name" toml:"name"`

	// Sections holds each page section's height in viewport heights.
	Sections    []float64    `yaml:"sections" toml:"sections"`
	ScrollTrack choreo.Track `yaml:"scroll_track" toml:"scroll_track"`

	Overview choreo.Pose                 `yaml:"overview" toml:"overview"`
	Rooms    []navigation.RoomDescriptor `yaml:"rooms" toml:"rooms"`
	Building Building                    `yaml:"building" toml:"building"`
	Sun      *lighting.Sun               `yaml:"sun,omitempty" toml:"sun,omitempty"`
}

// ParseScene decodes and validates a scene.
func ParseScene(data []byte, format Format, fov choreo.FOVRange) (*Scene, error) {
	var s Scene
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding yaml scene: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding toml scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown scene format %q", format)
	}
	if err := s.Validate(fov); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScene reads a scene file, picking the decoder by extension.
func LoadScene(path string, fov choreo.FOVRange) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScene(data, format, fov)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// DefaultScene returns the built-in scene.
func DefaultScene(fov choreo.FOVRange) (*Scene, error) {
	return ParseScene(assets.DefaultScene, FormatYAML, fov)
}

// SceneFor loads the configured scene or falls back to the built-in one.
func (c *Config) SceneFor() (*Scene, error) {
	if c.Scene.Path == "" {
		return DefaultScene(c.Motion.FOV)
	}
	return LoadScene(c.Scene.Path, c.Motion.FOV)
}

// Validate prepares the scroll track and checks the scene is usable.
func (s *Scene) Validate(fov choreo.FOVRange) error {
	var errs []error

	if s.ScrollTrack.Name == "" {
		s.ScrollTrack.Name = "scroll"
	}
	if err := s.ScrollTrack.Prepare(); err != nil {
		errs = append(errs, err)
	} else if err := s.ScrollTrack.Validate(fov); err != nil {
		errs = append(errs, err)
	}

	if len(s.Sections) != s.ScrollTrack.Len() {
		errs = append(errs, fmt.Errorf("%d sections but %d scroll keyframes", len(s.Sections), s.ScrollTrack.Len()))
	}
	for i, h := range s.Sections {
		if !(h > 0) {
			errs = append(errs, fmt.Errorf("section %d: height %.2f must be positive", i, h))
		}
	}

	if err := s.Overview.Validate(fov); err != nil {
		errs = append(errs, fmt.Errorf("overview: %w", err))
	}
	if _, err := navigation.NewCatalog(s.Rooms); err != nil {
		errs = append(errs, err)
	}
	for _, r := range s.Rooms {
		if err := r.Camera.Validate(fov); err != nil {
			errs = append(errs, fmt.Errorf("room %q camera: %w", r.ID, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return nil
}

// Light returns the scene's sun, or the default one when none is set.
func (s *Scene) Light() lighting.Sun {
	if s.Sun == nil {
		return lighting.DefaultSun
	}
	return *s.Sun
}

// Catalog builds the room catalog.
func (s *Scene) Catalog() (*navigation.Catalog, error) {
	return navigation.NewCatalog(s.Rooms)
}
