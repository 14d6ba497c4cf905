package rig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/towerview/pkg/choreo"
	"github.com/Faultbox/towerview/pkg/math"
)

func testPose(x float32) choreo.Pose {
	return choreo.Pose{Position: math.Vec3{X: x, Y: 2, Z: 10}, FOV: 40}
}

func TestSetPoseRequiresActiveDriver(t *testing.T) {
	r := New(testPose(0), choreo.DefaultFOVRange)
	assert.Equal(t, DriverNone, r.Active())

	assert.False(t, r.SetPose(DriverScroll, testPose(1)), "no driver is active yet")
	assert.False(t, r.SetPose(DriverNone, testPose(1)))

	r.SetActive(DriverScroll)
	assert.True(t, r.SetPose(DriverScroll, testPose(2)))
	assert.False(t, r.SetPose(DriverOrbit, testPose(3)))
	assert.Equal(t, float32(2), r.Pose().Position.X)
	assert.Equal(t, uint64(1), r.Writes())

	r.SetActive(DriverOrbit)
	assert.False(t, r.SetPose(DriverScroll, testPose(4)))
	assert.True(t, r.SetPose(DriverOrbit, testPose(5)))
	assert.Equal(t, float32(5), r.Pose().Position.X)
}

func TestSetPoseClampsFOV(t *testing.T) {
	r := New(testPose(0), choreo.FOVRange{Min: 10, Max: 90})
	r.SetActive(DriverScroll)

	p := testPose(0)
	p.FOV = -20
	r.SetPose(DriverScroll, p)
	assert.Equal(t, float32(10), r.Pose().FOV)

	p.FOV = 170
	r.SetPose(DriverScroll, p)
	assert.Equal(t, float32(90), r.Pose().FOV)
}

func TestCameraOffsetDoesNotAccumulate(t *testing.T) {
	r := New(testPose(0), choreo.DefaultFOVRange)
	r.SetActive(DriverScroll)
	r.SetPose(DriverScroll, testPose(1))

	for i := 0; i < 50; i++ {
		r.OffsetCamera(math.Vec3{X: 0.5, Y: -0.25})
	}
	assert.InDelta(t, 1.5, r.Pose().Position.X, 1e-5)
	assert.InDelta(t, 1.75, r.Pose().Position.Y, 1e-5)

	// A fresh base write drops the old offset bookkeeping.
	r.SetPose(DriverScroll, testPose(1))
	assert.Equal(t, math.Vec3{}, r.CameraOffset())
	r.OffsetCamera(math.Vec3{X: 0.5})
	assert.InDelta(t, 1.5, r.Pose().Position.X, 1e-5)
}

func TestTransformReapply(t *testing.T) {
	var tr Transform
	tr.SetBase(math.Vec3{Y: -1})

	for i := 0; i < 100; i++ {
		tr.Reapply(math.Vec3{X: 0.2})
	}
	assert.InDelta(t, 0.2, tr.Position.X, 1e-6)
	assert.Equal(t, math.Vec3{Y: -1}, tr.Base())

	tr.Reapply(math.Vec3{})
	assert.Equal(t, math.Vec3{Y: -1}, tr.Position)
}

func TestDriverString(t *testing.T) {
	assert.Equal(t, "scroll", DriverScroll.String())
	assert.Equal(t, "orbit", DriverOrbit.String())
	assert.Equal(t, "none", DriverNone.String())
}
