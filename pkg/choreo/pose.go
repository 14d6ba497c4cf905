// Package choreo holds camera poses, keyframe tracks and the interpolation
// used to move a camera between them.
package choreo

import (
	"errors"
	"fmt"

	"github.com/Faultbox/towerview/pkg/math"
)

var (
	// ErrEmptyTrack is returned when a track has no keyframes.
	ErrEmptyTrack = errors.New("track has no keyframes")

	// ErrInvalidFOV is returned for a field of view outside the accepted range.
	ErrInvalidFOV = errors.New("field of view out of range")

	// ErrNonFinite is returned for poses carrying NaN or infinite components.
	ErrNonFinite = errors.New("pose has non-finite components")
)

// FOVRange bounds the vertical field of view in degrees.
type FOVRange struct {
	Min float32 `yaml:"min" toml:"min"`
	Max float32 `yaml:"max" toml:"max"`
}

// DefaultFOVRange is wide enough for any lens a scene is likely to use.
var DefaultFOVRange = FOVRange{Min: 5, Max: 150}

// Clamp limits fov to the range. Non-finite values map to the midpoint.
func (r FOVRange) Clamp(fov float32) float32 {
	if !math.IsFinite(fov) {
		return (r.Min + r.Max) / 2
	}
	return math.Clamp(fov, r.Min, r.Max)
}

// Contains reports whether fov lies within the range.
func (r FOVRange) Contains(fov float32) bool {
	return fov >= r.Min && fov <= r.Max
}

// Pose is a camera position, look-at target, field of view and roll.
type Pose struct {
	Position math.Vec3 `yaml:"position" toml:"position"`
	LookAt   math.Vec3 `yaml:"look_at" toml:"look_at"`
	FOV      float32   `yaml:"fov" toml:"fov"`   // vertical, degrees
	Roll     float32   `yaml:"roll" toml:"roll"` // degrees around the view axis
}

// DefaultPose looks at the origin from a short distance.
func DefaultPose() Pose {
	return Pose{
		Position: math.Vec3{X: 0, Y: 2, Z: 10},
		FOV:      45,
	}
}

// Validate checks the pose is finite and its FOV lies within r.
func (p Pose) Validate(r FOVRange) error {
	if !p.Position.IsFinite() || !p.LookAt.IsFinite() || !math.IsFinite(p.FOV) || !math.IsFinite(p.Roll) {
		return ErrNonFinite
	}
	if !r.Contains(p.FOV) {
		return fmt.Errorf("%w: %.2f not in [%.2f, %.2f]", ErrInvalidFOV, p.FOV, r.Min, r.Max)
	}
	return nil
}

// Sanitize returns a copy of p that is safe to hand to a renderer.
// Non-finite vectors fall back to fallback's components.
func (p Pose) Sanitize(r FOVRange, fallback Pose) Pose {
	if !p.Position.IsFinite() {
		p.Position = fallback.Position
	}
	if !p.LookAt.IsFinite() {
		p.LookAt = fallback.LookAt
	}
	if !math.IsFinite(p.Roll) {
		p.Roll = 0
	}
	p.FOV = r.Clamp(p.FOV)
	return p
}

// Up returns the camera up vector with roll applied.
func (p Pose) Up() math.Vec3 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	if p.Roll == 0 {
		return up
	}
	forward := p.LookAt.Sub(p.Position).Normalize()
	if forward == (math.Vec3{}) {
		return up
	}
	return math.QuatFromAxisAngle(forward, math.DegToRad(-p.Roll)).Rotate(up)
}

// ViewMatrix returns the view matrix for this pose.
func (p Pose) ViewMatrix() math.Mat4 {
	return math.LookAt(p.Position, p.LookAt, p.Up())
}

// Projection returns a perspective projection using the pose's FOV.
func (p Pose) Projection(aspect, near, far float32) math.Mat4 {
	return math.Perspective(math.DegToRad(p.FOV), aspect, near, far)
}
