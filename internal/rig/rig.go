// Package rig owns the shared camera and building transform and decides
// which driver may write them.
package rig

import (
	"go.uber.org/zap"

	"github.com/Faultbox/towerview/internal/logger"
	"github.com/Faultbox/towerview/pkg/choreo"
	"github.com/Faultbox/towerview/pkg/math"
)

// Driver identifies the component allowed to write the camera pose.
type Driver int

const (
	// DriverNone blocks all pose writes, e.g. while a view is fading out.
	DriverNone Driver = iota
	// DriverScroll is the scroll-driven choreography.
	DriverScroll
	// DriverOrbit is the free orbit camera and its room tweens.
	DriverOrbit
)

func (d Driver) String() string {
	switch d {
	case DriverScroll:
		return "scroll"
	case DriverOrbit:
		return "orbit"
	default:
		return "none"
	}
}

// CameraRig is the single sink for camera and building writes.
//
// The pose stored here already includes any parallax offset. SetPose
// replaces it with a fresh base, so the offset bookkeeping restarts at zero.
type CameraRig struct {
	active Driver
	pose   choreo.Pose
	fov    choreo.FOVRange

	cameraOffset math.Vec3

	building Transform

	writes uint64
}

// New creates a rig showing initial with no active driver.
func New(initial choreo.Pose, fov choreo.FOVRange) *CameraRig {
	return &CameraRig{
		pose: initial.Sanitize(fov, choreo.DefaultPose()),
		fov:  fov,
	}
}

// Active returns the driver currently allowed to write.
func (r *CameraRig) Active() Driver {
	return r.active
}

// SetActive hands ownership of the camera to d.
func (r *CameraRig) SetActive(d Driver) {
	if d == r.active {
		return
	}
	logger.Debug("camera driver changed",
		zap.Stringer("from", r.active),
		zap.Stringer("to", d),
	)
	r.active = d
}

// SetPose writes a base pose on behalf of d. Writes from a driver that is
// not active are dropped and reported as false.
func (r *CameraRig) SetPose(d Driver, p choreo.Pose) bool {
	if d == DriverNone || d != r.active {
		return false
	}
	r.pose = p.Sanitize(r.fov, r.pose)
	r.cameraOffset = math.Vec3{}
	r.writes++
	return true
}

// Pose returns the live camera pose.
func (r *CameraRig) Pose() choreo.Pose {
	return r.pose
}

// Writes counts accepted SetPose calls.
func (r *CameraRig) Writes() uint64 {
	return r.writes
}

// OffsetCamera replaces the camera's additive offset with delta.
func (r *CameraRig) OffsetCamera(delta math.Vec3) {
	r.pose.Position = r.pose.Position.Sub(r.cameraOffset).Add(delta)
	r.cameraOffset = delta
}

// CameraOffset returns the offset currently applied to the camera.
func (r *CameraRig) CameraOffset() math.Vec3 {
	return r.cameraOffset
}

// Building returns the building root transform.
func (r *CameraRig) Building() *Transform {
	return &r.building
}

// BuildingMatrix returns the model matrix of the building root.
func (r *CameraRig) BuildingMatrix() math.Mat4 {
	return math.Translate(r.building.Position)
}

// ViewMatrix returns the camera view matrix.
func (r *CameraRig) ViewMatrix() math.Mat4 {
	return r.pose.ViewMatrix()
}

// Projection returns the camera projection for the given aspect ratio.
func (r *CameraRig) Projection(aspect, near, far float32) math.Mat4 {
	return r.pose.Projection(aspect, near, far)
}
