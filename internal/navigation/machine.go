package navigation

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/towerview/internal/logger"
	"github.com/Faultbox/towerview/pkg/choreo"
)

// Phase is the discrete navigation phase.
type Phase int

const (
	Overview Phase = iota
	TransitioningToRoom
	AtRoom
	TransitioningToOverview
)

func (p Phase) String() string {
	switch p {
	case Overview:
		return "overview"
	case TransitioningToRoom:
		return "to-room"
	case AtRoom:
		return "at-room"
	case TransitioningToOverview:
		return "to-overview"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the phase plus the room it concerns, empty for overview phases.
type State struct {
	Phase  Phase
	RoomID string
}

func (s State) String() string {
	if s.RoomID == "" {
		return s.Phase.String()
	}
	return s.Phase.String() + "(" + s.RoomID + ")"
}

// Transitioning reports whether a tween is expected to be running.
func (s State) Transitioning() bool {
	return s.Phase == TransitioningToRoom || s.Phase == TransitioningToOverview
}

// Machine is the room navigation state machine.
//
// Each transition runs one tween from the camera's live pose. Starting a new
// transition replaces the running tween, so retargeting never jumps.
type Machine struct {
	state    State
	overview choreo.Pose
	tween    *choreo.Tween
	target   RoomDescriptor

	duration time.Duration
	ease     choreo.Easing

	controls   bool
	onComplete func(State)
	onControls func(enabled bool)
}

// NewMachine creates a machine in Overview.
func NewMachine(overview choreo.Pose, duration time.Duration, ease choreo.Easing) *Machine {
	return &Machine{
		overview: overview,
		duration: duration,
		ease:     ease,
		controls: true,
	}
}

// OnTransitionComplete registers a callback fired when a tween finishes.
func (m *Machine) OnTransitionComplete(fn func(State)) {
	m.onComplete = fn
}

// OnControlsChange registers a callback fired when orbit rotate/zoom should
// be enabled or disabled.
func (m *Machine) OnControlsChange(fn func(enabled bool)) {
	m.onControls = fn
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Tween returns the running tween, or nil.
func (m *Machine) Tween() *choreo.Tween {
	return m.tween
}

// Target returns the room being moved to or shown, if any.
func (m *Machine) Target() (RoomDescriptor, bool) {
	switch m.state.Phase {
	case TransitioningToRoom, AtRoom:
		return m.target, true
	}
	return RoomDescriptor{}, false
}

// Overview returns the overview pose.
func (m *Machine) Overview() choreo.Pose {
	return m.overview
}

// SetOverview replaces the overview pose used by later transitions.
func (m *Machine) SetOverview(p choreo.Pose) {
	m.overview = p
}

// SetTiming replaces the tween duration and easing used by later transitions.
func (m *Machine) SetTiming(duration time.Duration, ease choreo.Easing) {
	m.duration = duration
	m.ease = ease
}

// Select starts moving to room. The room must come from the catalog; the
// machine does not validate ids. Selecting the room already targeted is
// ignored and reported as false.
func (m *Machine) Select(room RoomDescriptor, live choreo.Pose, now time.Time) bool {
	switch m.state.Phase {
	case TransitioningToRoom, AtRoom:
		if m.state.RoomID == room.ID {
			return false
		}
	}
	m.target = room
	m.begin(State{Phase: TransitioningToRoom, RoomID: room.ID}, live, room.Camera, now)
	return true
}

// Close leaves the focused or incoming room for the overview.
func (m *Machine) Close(live choreo.Pose, now time.Time) bool {
	switch m.state.Phase {
	case Overview, TransitioningToOverview:
		return false
	}
	m.begin(State{Phase: TransitioningToOverview}, live, m.overview, now)
	return true
}

// Reset drops any tween and returns to Overview without animating.
func (m *Machine) Reset() {
	m.tween = nil
	m.state = State{Phase: Overview}
	m.setControls(true)
}

// Update samples the running tween. It returns the pose to show and true
// while a transition owns the camera, including the frame it completes on.
func (m *Machine) Update(now time.Time) (choreo.Pose, bool) {
	if m.tween == nil {
		return choreo.Pose{}, false
	}
	pose := m.tween.Sample(now)
	if !m.tween.Done(now) {
		return pose, true
	}

	m.tween = nil
	switch m.state.Phase {
	case TransitioningToRoom:
		m.state = State{Phase: AtRoom, RoomID: m.state.RoomID}
	case TransitioningToOverview:
		m.state = State{Phase: Overview}
		m.setControls(true)
	}
	logger.Debug("room transition complete", zap.Stringer("state", m.state))
	if m.onComplete != nil {
		m.onComplete(m.state)
	}
	return pose, true
}

func (m *Machine) begin(next State, live, to choreo.Pose, now time.Time) {
	retarget := m.tween != nil
	m.tween = choreo.NewTween(live, to, now, m.duration, m.ease)
	logger.Debug("room transition started",
		zap.Stringer("from", m.state),
		zap.Stringer("to", next),
		zap.Bool("retarget", retarget),
	)
	m.state = next
	m.setControls(false)
}

func (m *Machine) setControls(enabled bool) {
	if m.controls == enabled {
		return
	}
	m.controls = enabled
	if m.onControls != nil {
		m.onControls(enabled)
	}
}
