// Package explore switches the camera between scroll-driven choreography and
// the free orbit camera.
package explore

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/towerview/internal/engine/camera"
	"github.com/Faultbox/towerview/internal/logger"
	"github.com/Faultbox/towerview/internal/navigation"
	"github.com/Faultbox/towerview/internal/parallax"
	"github.com/Faultbox/towerview/internal/rig"
	"github.com/Faultbox/towerview/internal/scroll"
	"github.com/Faultbox/towerview/pkg/math"
)

// DefaultFadeDelay matches the fade-out of the outgoing view.
const DefaultFadeDelay = 500 * time.Millisecond

// Mode is the requested camera mode.
type Mode int

const (
	ModeScroll Mode = iota
	ModeExplore
)

func (m Mode) String() string {
	if m == ModeExplore {
		return "explore"
	}
	return "scroll"
}

// Deps are the components the controller switches between.
type Deps struct {
	Rig        *rig.CameraRig
	Tracker    *scroll.Tracker
	Orbit      *camera.OrbitCamera
	Navigation *navigation.Machine
	Parallax   *parallax.Engine
}

type pendingSwitch struct {
	mode Mode
	due  time.Time
}

// Controller is the mode switch.
//
// A switch takes effect in two steps. The request immediately takes the
// camera away from the outgoing driver (no writes while the view fades),
// and the incoming driver is activated once the fade delay has passed.
type Controller struct {
	deps  Deps
	delay time.Duration

	mode        Mode
	pending     *pendingSwitch
	savedOffset float64

	onRestoreScroll func(offset float64)
	onModeChange    func(Mode)
}

// New creates a controller in scroll mode and makes the scroll driver active.
func New(deps Deps, fadeDelay time.Duration) *Controller {
	deps.Rig.SetActive(rig.DriverScroll)
	deps.Orbit.SetEnabled(false)
	return &Controller{deps: deps, delay: fadeDelay}
}

// OnRestoreScroll registers the hook that moves the host page back to the
// saved scroll offset when explore mode ends.
func (c *Controller) OnRestoreScroll(fn func(offset float64)) {
	c.onRestoreScroll = fn
}

// OnModeChange registers a callback fired when a switch takes effect.
func (c *Controller) OnModeChange(fn func(Mode)) {
	c.onModeChange = fn
}

// SetFadeDelay changes the delay for later switches.
func (c *Controller) SetFadeDelay(d time.Duration) {
	c.delay = d
}

// Mode returns the most recently requested mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Pending reports whether a switch is waiting for the fade to finish.
func (c *Controller) Pending() bool {
	return c.pending != nil
}

// SavedOffset returns the scroll offset captured on entering explore mode.
func (c *Controller) SavedOffset() float64 {
	return c.savedOffset
}

// EnterExplore saves the scroll position and hands the camera to the orbit
// controls after the fade delay.
func (c *Controller) EnterExplore(now time.Time) bool {
	if c.mode == ModeExplore {
		return false
	}
	c.mode = ModeExplore

	c.savedOffset = c.deps.Tracker.Offset()
	c.deps.Tracker.Suspend()
	c.deps.Rig.SetActive(rig.DriverNone)
	c.deps.Parallax.SuppressCamera(true)
	c.deps.Navigation.Reset()
	c.deps.Orbit.SetEnabled(false)

	logger.Info("entering explore mode", zap.Float64("saved_offset", c.savedOffset))
	c.schedule(ModeExplore, now)
	return true
}

// ExitExplore drops the orbit controls and returns to the saved scroll
// position after the fade delay.
func (c *Controller) ExitExplore(now time.Time) bool {
	if c.mode == ModeScroll {
		return false
	}
	c.mode = ModeScroll

	c.deps.Navigation.Reset()
	c.deps.Orbit.SetEnabled(false)
	c.deps.Rig.SetActive(rig.DriverNone)
	c.deps.Parallax.SuppressBuilding(false)

	logger.Info("leaving explore mode", zap.Float64("restore_offset", c.savedOffset))
	c.schedule(ModeScroll, now)
	return true
}

// Toggle switches to the other mode.
func (c *Controller) Toggle(now time.Time) {
	if c.mode == ModeExplore {
		c.ExitExplore(now)
		return
	}
	c.EnterExplore(now)
}

// Update activates a pending switch once its delay has elapsed. Call it at
// the start of every frame, before any pose is written.
func (c *Controller) Update(now time.Time) {
	if c.pending == nil || now.Before(c.pending.due) {
		return
	}
	mode := c.pending.mode
	c.pending = nil
	c.activate(mode)
}

func (c *Controller) schedule(mode Mode, now time.Time) {
	c.pending = &pendingSwitch{mode: mode, due: now.Add(c.delay)}
	if c.delay <= 0 {
		c.Update(now)
	}
}

func (c *Controller) activate(mode Mode) {
	switch mode {
	case ModeExplore:
		// Drop the parallax offset first so the orbit starts from the base pose.
		c.deps.Parallax.ResetCamera()
		c.deps.Rig.OffsetCamera(math.Vec3{})
		c.deps.Orbit.SyncFromPose(c.deps.Rig.Pose())
		c.deps.Orbit.SetEnabled(true)
		c.deps.Rig.SetActive(rig.DriverOrbit)
	case ModeScroll:
		c.deps.Tracker.JumpTo(c.savedOffset)
		c.deps.Tracker.Resume()
		if c.onRestoreScroll != nil {
			c.onRestoreScroll(c.savedOffset)
		}
		c.deps.Parallax.SuppressCamera(false)
		c.deps.Rig.SetActive(rig.DriverScroll)
	}
	logger.Debug("camera mode active", zap.Stringer("mode", mode))
	if c.onModeChange != nil {
		c.onModeChange(mode)
	}
}
