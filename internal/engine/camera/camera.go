// Package camera provides the free orbit camera used in explore mode.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/towerview/pkg/choreo"
	"github.com/Faultbox/towerview/pkg/math"
)

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates around Target
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y

	FOV  float32
	Roll float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Ability toggles, switched off while a room is focused.
	EnableRotate bool
	EnableZoom   bool
}

// NewOrbitCamera creates an orbit camera with defaults sized for a
// building a few dozen units tall.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        30,
		Pitch:           0.35,
		FOV:             45,
		MinDistance:     8,
		MaxDistance:     80,
		MinPitch:        -0.1,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		EnableRotate:    true,
		EnableZoom:      true,
	}
}

// SetEnabled toggles rotation and zoom together.
func (c *OrbitCamera) SetEnabled(enabled bool) {
	c.EnableRotate = enabled
	c.EnableZoom = enabled
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Target.Add(math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	})
}

// Pose returns the camera as a choreography pose.
func (c *OrbitCamera) Pose() choreo.Pose {
	return choreo.Pose{
		Position: c.Position(),
		LookAt:   c.Target,
		FOV:      c.FOV,
		Roll:     c.Roll,
	}
}

// SyncFromPose adopts p so that orbiting starts exactly where the camera is.
// Limits are not applied here; they take effect on the next drag or zoom.
func (c *OrbitCamera) SyncFromPose(p choreo.Pose) {
	c.Target = p.LookAt
	c.FOV = p.FOV
	c.Roll = p.Roll

	offset := p.Position.Sub(p.LookAt)
	d := offset.Length()
	if d == 0 {
		return
	}
	c.Distance = d
	c.Pitch = math32.Asin(math.Clamp(offset.Y/d, -1, 1))
	c.Yaw = math32.Atan2(offset.X, offset.Z)
}

// HandleDrag updates rotation based on pointer drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	if !c.EnableRotate {
		return
	}
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	if !c.EnableZoom {
		return
	}
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds frames a bounding box from a raised three-quarter angle.
func (c *OrbitCamera) FitToBounds(minB, maxB math.Vec3) {
	c.Target = minB.Add(maxB).Scale(0.5)
	size := maxB.Sub(minB)
	extent := size.X
	if size.Y > extent {
		extent = size.Y
	}
	if size.Z > extent {
		extent = size.Z
	}
	half := math.DegToRad(c.FOV) / 2
	c.Distance = math.Clamp(extent/math32.Tan(half), c.MinDistance, c.MaxDistance)
	c.Pitch = 0.35
	c.Yaw = math32.Pi / 4
}
