// Package viewer assembles the camera choreography into a per-frame pipeline.
//
// A Viewer owns one of each component: the rig every driver writes through,
// the scroll tracker, the parallax engine, the orbit camera, the room
// navigation machine and the explore controller. Hosts feed it input and
// call Tick once per frame.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/towerview/internal/config"
	"github.com/Faultbox/towerview/internal/engine/camera"
	"github.com/Faultbox/towerview/internal/engine/picking"
	"github.com/Faultbox/towerview/internal/explore"
	"github.com/Faultbox/towerview/internal/logger"
	"github.com/Faultbox/towerview/internal/navigation"
	"github.com/Faultbox/towerview/internal/parallax"
	"github.com/Faultbox/towerview/internal/rig"
	"github.com/Faultbox/towerview/internal/scroll"
	"github.com/Faultbox/towerview/pkg/choreo"
	"github.com/Faultbox/towerview/pkg/math"
)

// ErrNotExploring is returned when a room is selected outside explore mode.
var ErrNotExploring = errors.New("room selection requires explore mode")

const (
	nearPlane = 0.1
	farPlane  = 500

	// pickRadius is how close, in world units, a click ray must pass a
	// room anchor to select it.
	pickRadius = 1.5
)

// Frame is everything a renderer needs for one frame.
type Frame struct {
	Pose       choreo.Pose
	View       math.Mat4
	Projection math.Mat4
	Model      math.Mat4

	Building     math.Vec3
	CameraOffset math.Vec3

	Driver    rig.Driver
	Mode      explore.Mode
	Switching bool
	Nav       navigation.State
	Progress  scroll.Progress
}

// Viewer is the camera choreography for one scene.
type Viewer struct {
	scene   *config.Scene
	motion  config.MotionConfig
	catalog *navigation.Catalog

	rig      *rig.CameraRig
	sections *scroll.ViewportSections
	tracker  *scroll.Tracker
	parallax *parallax.Engine
	orbit    *camera.OrbitCamera
	nav      *navigation.Machine
	explore  *explore.Controller

	width, height int
	forceMobile   bool
	mobile        bool

	onTransition    func(navigation.State)
	onRestoreScroll func(offset float64)
}

// New builds a viewer for scene in a viewport of width x height pixels.
// forceMobile keeps the small-viewport behaviour at any width.
func New(scene *config.Scene, motion config.MotionConfig, width, height int, forceMobile bool) (*Viewer, error) {
	catalog, err := scene.Catalog()
	if err != nil {
		return nil, fmt.Errorf("building room catalog: %w", err)
	}

	v := &Viewer{
		scene:       scene,
		motion:      motion,
		catalog:     catalog,
		rig:         rig.New(scene.ScrollTrack.First(), motion.FOV),
		sections:    scroll.NewViewportSections(scene.Sections, float64(height)),
		parallax:    parallax.New(motion.Parallax),
		orbit:       camera.NewOrbitCamera(),
		nav:         navigation.NewMachine(scene.Overview, motion.TweenDuration, motion.Easing()),
		forceMobile: forceMobile,
	}
	v.tracker = scroll.NewTracker(v.sections)
	v.placeBuilding()
	b := scene.Building
	v.orbit.FitToBounds(b.Min.Add(b.Position), b.Max.Add(b.Position))

	v.explore = explore.New(explore.Deps{
		Rig:        v.rig,
		Tracker:    v.tracker,
		Orbit:      v.orbit,
		Navigation: v.nav,
		Parallax:   v.parallax,
	}, motion.FadeDelay)
	v.explore.OnRestoreScroll(func(offset float64) {
		if v.onRestoreScroll != nil {
			v.onRestoreScroll(offset)
		}
	})

	v.nav.OnControlsChange(v.controlsChanged)
	v.nav.OnTransitionComplete(func(s navigation.State) {
		logger.Info("room transition finished", zap.Stringer("state", s))
		if v.onTransition != nil {
			v.onTransition(s)
		}
	})

	v.Resize(width, height)

	logger.Info("viewer ready",
		zap.String("scene", scene.Name),
		zap.Int("sections", len(scene.Sections)),
		zap.Int("rooms", catalog.Len()),
	)
	return v, nil
}

// OnTransitionComplete registers a callback for finished room transitions.
func (v *Viewer) OnTransitionComplete(fn func(navigation.State)) {
	v.onTransition = fn
}

// OnRestoreScroll registers the hook that scrolls the host page back when
// explore mode ends.
func (v *Viewer) OnRestoreScroll(fn func(offset float64)) {
	v.onRestoreScroll = fn
}

// Scene returns the scene being shown.
func (v *Viewer) Scene() *config.Scene {
	return v.scene
}

// Rooms lists the selectable rooms in scene order.
func (v *Viewer) Rooms() []navigation.RoomDescriptor {
	return v.catalog.Rooms()
}

// Mode returns the requested camera mode.
func (v *Viewer) Mode() explore.Mode {
	return v.explore.Mode()
}

// Mobile reports whether the small-viewport behaviour is on.
func (v *Viewer) Mobile() bool {
	return v.mobile
}

// Resize reflows the page for a new viewport. Section geometry is measured
// again before the next frame reads progress.
func (v *Viewer) Resize(width, height int) {
	v.width, v.height = width, height
	v.sections.SetViewport(float64(height))
	v.tracker.Invalidate()

	mobile := v.forceMobile || width < v.motion.MobileBreakpoint
	if mobile != v.mobile {
		logger.Info("viewport class changed", zap.Bool("mobile", mobile), zap.Int("width", width))
	}
	v.mobile = mobile
	v.parallax.SetDisabled(mobile)
}

// OnScroll records an absolute page scroll offset in pixels.
func (v *Viewer) OnScroll(offset float64) {
	v.tracker.OnScroll(offset)
}

// ScrollBy moves the page by delta pixels, stopping at either end.
func (v *Viewer) ScrollBy(delta float64) {
	limit := v.tracker.DocumentHeight() - float64(v.height)
	if limit < 0 {
		limit = 0
	}
	offset := v.tracker.Offset() + delta
	switch {
	case offset < 0:
		offset = 0
	case offset > limit:
		offset = limit
	}
	v.tracker.OnScroll(offset)
}

// ScrollOffset returns the tracked page offset.
func (v *Viewer) ScrollOffset() float64 {
	return v.tracker.Offset()
}

// OnPointer records the pointer position in window pixels.
func (v *Viewer) OnPointer(x, y int) {
	if v.width <= 0 || v.height <= 0 {
		return
	}
	nx := float32(x)/float32(v.width)*2 - 1
	ny := 1 - float32(y)/float32(v.height)*2
	v.parallax.SetPointer(nx, ny)
}

// Drag rotates the orbit camera. It has no effect unless orbiting is enabled.
func (v *Viewer) Drag(dx, dy float32) {
	v.orbit.HandleDrag(dx, dy)
}

// Zoom moves the orbit camera in or out.
func (v *Viewer) Zoom(delta float32) {
	v.orbit.HandleZoom(delta)
}

// EnterExplore switches to the orbit camera after the fade delay.
func (v *Viewer) EnterExplore(now time.Time) bool {
	return v.explore.EnterExplore(now)
}

// ExitExplore returns to scroll choreography after the fade delay.
func (v *Viewer) ExitExplore(now time.Time) bool {
	return v.explore.ExitExplore(now)
}

// ToggleExplore flips between the two modes.
func (v *Viewer) ToggleExplore(now time.Time) {
	v.explore.Toggle(now)
}

// SelectRoom starts a transition to the room with the given id.
func (v *Viewer) SelectRoom(id string, now time.Time) error {
	if v.explore.Mode() != explore.ModeExplore || v.explore.Pending() {
		return ErrNotExploring
	}
	room, err := v.catalog.Lookup(id)
	if err != nil {
		logger.Warn("ignoring room selection", zap.String("room", id), zap.Error(err))
		return err
	}
	if v.nav.Select(room, v.rig.Pose(), now) {
		logger.Info("moving to room", zap.String("room", room.ID), zap.String("label", room.Label))
	}
	return nil
}

// SelectRoomIndex selects the i-th room of the catalog.
func (v *Viewer) SelectRoomIndex(i int, now time.Time) error {
	rooms := v.catalog.Rooms()
	if i < 0 || i >= len(rooms) {
		err := fmt.Errorf("%w: index %d of %d", navigation.ErrUnknownRoom, i, len(rooms))
		logger.Warn("ignoring room selection", zap.Error(err))
		return err
	}
	return v.SelectRoom(rooms[i].ID, now)
}

// PickRoom returns the room whose anchor is under the pointer at x, y.
// The building itself hides anchors on its far side.
func (v *Viewer) PickRoom(x, y int) (string, bool) {
	if v.width <= 0 || v.height <= 0 {
		return "", false
	}
	inv := v.projection().Mul(v.rig.ViewMatrix()).Inverse()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(v.width), float32(v.height), inv)

	offset := v.rig.Building().Position
	rooms := v.catalog.Rooms()
	targets := make([]picking.Target, len(rooms))
	for i, r := range rooms {
		targets[i] = picking.Target{ID: r.ID, Position: r.Anchor.Add(offset)}
	}
	b := v.scene.Building
	return picking.Nearest(ray, targets, pickRadius, b.Min.Add(offset), b.Max.Add(offset))
}

// ClickRoom selects the room under the pointer, if any.
func (v *Viewer) ClickRoom(x, y int, now time.Time) error {
	if v.explore.Mode() != explore.ModeExplore || v.explore.Pending() {
		return ErrNotExploring
	}
	id, ok := v.PickRoom(x, y)
	if !ok {
		return nil
	}
	return v.SelectRoom(id, now)
}

// CloseRoom returns from a room to the overview.
func (v *Viewer) CloseRoom(now time.Time) bool {
	return v.nav.Close(v.rig.Pose(), now)
}

// ReloadScene swaps in a new scene without restarting. The current camera
// mode is kept; a focused room that no longer exists returns to the overview.
func (v *Viewer) ReloadScene(scene *config.Scene) error {
	catalog, err := scene.Catalog()
	if err != nil {
		return fmt.Errorf("building room catalog: %w", err)
	}
	v.scene = scene
	v.catalog = catalog
	v.sections.Heights = scene.Sections
	v.tracker.Invalidate()
	v.nav.SetOverview(scene.Overview)
	v.placeBuilding()

	if target, ok := v.nav.Target(); ok {
		if _, err := catalog.Lookup(target.ID); err != nil {
			logger.Warn("focused room removed by reload", zap.String("room", target.ID))
			v.nav.Reset()
		}
	}
	logger.Info("scene reloaded", zap.String("scene", scene.Name))
	return nil
}

// Tick runs one frame: pending mode switches, the active driver's base pose,
// then parallax on top of it.
func (v *Viewer) Tick(now time.Time) Frame {
	v.explore.Update(now)

	switch v.rig.Active() {
	case rig.DriverScroll:
		v.tracker.WritePose(&v.scene.ScrollTrack, v.rig)
	case rig.DriverOrbit:
		if pose, ok := v.nav.Update(now); ok {
			v.orbit.SyncFromPose(pose)
			v.rig.SetPose(rig.DriverOrbit, pose)
		} else {
			v.rig.SetPose(rig.DriverOrbit, v.orbit.Pose())
		}
	}

	v.parallax.SuppressBuilding(v.nav.State().Phase != navigation.Overview)
	v.parallax.Tick(v.rig)

	return v.frame()
}

func (v *Viewer) projection() math.Mat4 {
	aspect := float32(1)
	if v.width > 0 && v.height > 0 {
		aspect = float32(v.width) / float32(v.height)
	}
	return v.rig.Projection(aspect, nearPlane, farPlane)
}

func (v *Viewer) frame() Frame {
	return Frame{
		Pose:         v.rig.Pose(),
		View:         v.rig.ViewMatrix(),
		Projection:   v.projection(),
		Model:        v.rig.BuildingMatrix(),
		Building:     v.rig.Building().Position,
		CameraOffset: v.rig.CameraOffset(),
		Driver:       v.rig.Active(),
		Mode:         v.explore.Mode(),
		Switching:    v.explore.Pending(),
		Nav:          v.nav.State(),
		Progress:     v.tracker.Progress(),
	}
}

// controlsChanged follows the navigation machine, but never hands the orbit
// controls back while explore mode is off or still fading in.
func (v *Viewer) controlsChanged(enabled bool) {
	enabled = enabled && v.explore.Mode() == explore.ModeExplore && !v.explore.Pending()
	v.orbit.SetEnabled(enabled)
	logger.Debug("orbit controls", zap.Bool("enabled", enabled))
}

func (v *Viewer) placeBuilding() {
	v.rig.Building().SetBase(v.scene.Building.Position)
}
