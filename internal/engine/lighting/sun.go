// Package lighting describes the directional light of a scene.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/towerview/pkg/math"
)

// Sun is a directional light placed by compass angles in degrees.
// Longitude turns around +Y starting at +Z; latitude is elevation above the horizon.
type Sun struct {
	Longitude float32 `yaml:"longitude" toml:"longitude"`
	Latitude  float32 `yaml:"latitude" toml:"latitude"`
}

// DefaultSun lights the front-left of the building from high up.
var DefaultSun = Sun{Longitude: 135, Latitude: 50}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	sinLon, cosLon := math32.Sincos(math.DegToRad(s.Longitude))
	sinLat, cosLat := math32.Sincos(math.DegToRad(s.Latitude))
	return math.Vec3{
		X: cosLat * sinLon,
		Y: sinLat,
		Z: cosLat * cosLon,
	}
}

// LightDir returns the direction the light travels, as shaders expect it.
func (s Sun) LightDir() math.Vec3 {
	return s.Direction().Scale(-1)
}
