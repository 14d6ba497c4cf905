// Package parallax turns pointer position into small damped offsets for the
// camera and the building.
package parallax

import (
	"github.com/Faultbox/towerview/internal/rig"
	"github.com/Faultbox/towerview/pkg/math"
)

// ChannelConfig tunes one smoothing channel.
type ChannelConfig struct {
	// Damping is the fraction of the remaining distance covered per tick, in (0, 1).
	Damping float32 `yaml:"damping" toml:"damping"`
	// Amplitude is the largest offset per axis, in world units.
	Amplitude math.Vec2 `yaml:"amplitude" toml:"amplitude"`
}

// Config holds both channels.
type Config struct {
	Building ChannelConfig `yaml:"building" toml:"building"`
	Camera   ChannelConfig `yaml:"camera" toml:"camera"`
}

// DefaultConfig gives the building a slow wide sway and the camera a
// tighter, quicker one.
func DefaultConfig() Config {
	return Config{
		Building: ChannelConfig{Damping: 0.05, Amplitude: math.Vec2{X: 0.3, Y: 0.15}},
		Camera:   ChannelConfig{Damping: 0.08, Amplitude: math.Vec2{X: 0.5, Y: 0.25}},
	}
}

// Channel is an exponentially smoothed 2D offset.
type Channel struct {
	cfg        ChannelConfig
	current    math.Vec2
	target     math.Vec2
	suppressed bool
}

// NewChannel creates a channel at rest. Damping outside (0, 1) is pinned
// into it so the channel always converges.
func NewChannel(cfg ChannelConfig) *Channel {
	cfg.Damping = math.Clamp(cfg.Damping, 0.001, 0.999)
	if cfg.Amplitude.X < 0 {
		cfg.Amplitude.X = -cfg.Amplitude.X
	}
	if cfg.Amplitude.Y < 0 {
		cfg.Amplitude.Y = -cfg.Amplitude.Y
	}
	return &Channel{cfg: cfg}
}

// Aim points the channel at a normalized pointer position.
func (c *Channel) Aim(pointer math.Vec2) {
	if c.suppressed {
		c.target = math.Vec2{}
		return
	}
	c.target = pointer.Mul(c.cfg.Amplitude).ClampAbs(c.cfg.Amplitude)
}

// Suppress forces the target to zero until released. The current value
// keeps easing toward it.
func (c *Channel) Suppress(on bool) {
	c.suppressed = on
	if on {
		c.target = math.Vec2{}
	}
}

// Suppressed reports whether the channel is held at zero.
func (c *Channel) Suppressed() bool {
	return c.suppressed
}

// Reset snaps the channel to zero.
func (c *Channel) Reset() {
	c.current = math.Vec2{}
	c.target = math.Vec2{}
}

// Tick advances the smoothing by one frame and returns the new offset.
func (c *Channel) Tick() math.Vec2 {
	c.current = c.current.Add(c.target.Sub(c.current).Scale(c.cfg.Damping))
	return c.current
}

// Current returns the smoothed offset.
func (c *Channel) Current() math.Vec2 {
	return c.current
}

// Target returns the offset the channel is heading for.
func (c *Channel) Target() math.Vec2 {
	return c.target
}

// Engine drives the building and camera channels from one pointer.
type Engine struct {
	building *Channel
	camera   *Channel
	pointer  math.Vec2
	disabled bool
}

// New creates an engine at rest.
func New(cfg Config) *Engine {
	return &Engine{
		building: NewChannel(cfg.Building),
		camera:   NewChannel(cfg.Camera),
	}
}

// SetPointer records the pointer in normalized screen space, [-1, 1] per axis.
// A non-finite coordinate keeps the previous pointer.
func (e *Engine) SetPointer(x, y float32) {
	if !math.IsFinite(x) || !math.IsFinite(y) {
		return
	}
	e.pointer = math.Vec2{X: math.Clamp(x, -1, 1), Y: math.Clamp(y, -1, 1)}
}

// SetDisabled turns the engine off entirely, as on small touch viewports.
func (e *Engine) SetDisabled(disabled bool) {
	e.disabled = disabled
	if disabled {
		e.building.Reset()
		e.camera.Reset()
	}
}

// Disabled reports whether the engine is off.
func (e *Engine) Disabled() bool {
	return e.disabled
}

// SuppressCamera holds the camera channel at zero, e.g. in free orbit.
func (e *Engine) SuppressCamera(on bool) {
	e.camera.Suppress(on)
}

// SuppressBuilding holds the building channel at zero, e.g. while a room is focused.
func (e *Engine) SuppressBuilding(on bool) {
	e.building.Suppress(on)
}

// ResetCamera snaps the camera channel to zero.
func (e *Engine) ResetCamera() {
	e.camera.Reset()
}

// Building exposes the building channel.
func (e *Engine) Building() *Channel {
	return e.building
}

// Camera exposes the camera channel.
func (e *Engine) Camera() *Channel {
	return e.camera
}

// Tick advances both channels and applies them to r. Call it after the
// frame's base pose write so the offsets land on top of it.
func (e *Engine) Tick(r *rig.CameraRig) {
	var b, c math.Vec2
	if !e.disabled {
		e.building.Aim(e.pointer)
		e.camera.Aim(e.pointer)
		b = e.building.Tick()
		c = e.camera.Tick()
	}
	r.Building().Reapply(math.Vec3{X: b.X, Y: b.Y})
	r.OffsetCamera(math.Vec3{X: c.X, Y: c.Y})
}
