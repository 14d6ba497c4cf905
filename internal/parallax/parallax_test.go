package parallax

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/towerview/internal/rig"
	"github.com/Faultbox/towerview/pkg/choreo"
	"github.com/Faultbox/towerview/pkg/math"
)

func newRig() *rig.CameraRig {
	r := rig.New(choreo.Pose{Position: math.Vec3{Z: 10}, FOV: 45}, choreo.DefaultFOVRange)
	r.SetActive(rig.DriverScroll)
	return r
}

func TestBuildingOffsetConvergesWithoutAccumulating(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	r := newRig()
	base := math.Vec3{Y: -1.5}
	r.Building().SetBase(base)
	amp := cfg.Building.Amplitude

	e.SetPointer(1, -1)
	for i := 0; i < 500; i++ {
		e.Tick(r)
		off := r.Building().Position.Sub(base)
		assert.LessOrEqual(t, off.X, amp.X+1e-5, "tick %d", i)
		assert.GreaterOrEqual(t, off.Y, -amp.Y-1e-5, "tick %d", i)
	}

	off := r.Building().Position.Sub(base)
	assert.InDelta(t, amp.X, off.X, 1e-4)
	assert.InDelta(t, -amp.Y, off.Y, 1e-4)
	assert.InDelta(t, 0, off.Z, 1e-6)
}

func TestCameraOffsetComposesOnBasePose(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	r := newRig()
	base := choreo.Pose{Position: math.Vec3{X: 2, Y: 3, Z: 10}, FOV: 45}

	e.SetPointer(1, 1)
	for i := 0; i < 400; i++ {
		r.SetPose(rig.DriverScroll, base)
		e.Tick(r)
	}
	got := r.Pose().Position
	assert.InDelta(t, 2+cfg.Camera.Amplitude.X, got.X, 1e-4)
	assert.InDelta(t, 3+cfg.Camera.Amplitude.Y, got.Y, 1e-4)

	// Without fresh base writes the offset still replaces rather than stacks.
	for i := 0; i < 400; i++ {
		e.Tick(r)
	}
	got = r.Pose().Position
	assert.InDelta(t, 2+cfg.Camera.Amplitude.X, got.X, 1e-4)
}

func TestPointerIsClamped(t *testing.T) {
	cfg := Config{
		Building: ChannelConfig{Damping: 0.5, Amplitude: math.Vec2{X: 1, Y: 1}},
		Camera:   ChannelConfig{Damping: 0.5, Amplitude: math.Vec2{X: 1, Y: 1}},
	}
	e := New(cfg)
	e.SetPointer(7, -9)
	e.Tick(newRig())
	assert.Equal(t, math.Vec2{X: 1, Y: -1}, e.Building().Target())
}

func TestNonFinitePointerIsIgnored(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	r := newRig()

	e.SetPointer(0.5, 0.5)
	e.SetPointer(math32.NaN(), 0)
	e.SetPointer(0, math32.Inf(1))
	e.Tick(r)
	assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}.Mul(cfg.Building.Amplitude), e.Building().Target())

	for i := 0; i < 400; i++ {
		e.Tick(r)
	}
	pos := r.Building().Position
	assert.True(t, math.IsFinite(pos.X) && math.IsFinite(pos.Y) && math.IsFinite(pos.Z))
	assert.InDelta(t, 0.5*cfg.Building.Amplitude.X, pos.X, 1e-4)
	assert.InDelta(t, 0.5*cfg.Camera.Amplitude.Y, r.CameraOffset().Y, 1e-4)
}

func TestSuppressCameraOnly(t *testing.T) {
	e := New(DefaultConfig())
	r := newRig()
	e.SetPointer(1, 1)
	for i := 0; i < 50; i++ {
		e.Tick(r)
	}

	e.SuppressCamera(true)
	for i := 0; i < 1000; i++ {
		e.Tick(r)
	}
	assert.Equal(t, math.Vec2{}, e.Camera().Target())
	assert.InDelta(t, 0, e.Camera().Current().X, 1e-4)
	assert.NotEqual(t, math.Vec2{}, e.Building().Target(), "building channel keeps following the pointer")

	e.SuppressCamera(false)
	e.Tick(r)
	assert.NotEqual(t, math.Vec2{}, e.Camera().Target())
}

func TestSuppressBuildingOnly(t *testing.T) {
	e := New(DefaultConfig())
	r := newRig()
	e.SetPointer(-1, 0.5)
	e.SuppressBuilding(true)
	for i := 0; i < 100; i++ {
		e.Tick(r)
	}
	assert.Equal(t, math.Vec3{}, r.Building().Position)
	assert.NotEqual(t, math.Vec3{}, r.CameraOffset())
}

func TestDisabledEngineRemovesOffsets(t *testing.T) {
	e := New(DefaultConfig())
	r := newRig()
	e.SetPointer(1, 1)
	for i := 0; i < 20; i++ {
		e.Tick(r)
	}
	assert.NotEqual(t, math.Vec3{}, r.Building().Position)

	e.SetDisabled(true)
	e.Tick(r)
	assert.Equal(t, math.Vec3{}, r.Building().Applied())
	assert.Equal(t, math.Vec3{}, r.CameraOffset())
	assert.InDelta(t, 0, r.Building().Position.X, 1e-6)
}

func TestChannelDampingIsPinned(t *testing.T) {
	c := NewChannel(ChannelConfig{Damping: 3, Amplitude: math.Vec2{X: -2, Y: 1}})
	c.Aim(math.Vec2{X: 1, Y: 1})
	v := c.Tick()
	assert.LessOrEqual(t, v.X, float32(2))
	assert.Greater(t, v.X, float32(1.9))
}
