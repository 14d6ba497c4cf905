package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/towerview/pkg/choreo"
	"github.com/Faultbox/towerview/pkg/math"
)

const tweenDuration = 1200 * time.Millisecond

var (
	t0       = time.Unix(1_700_000_000, 0)
	overview = choreo.Pose{Position: math.Vec3{Y: 20, Z: 40}, LookAt: math.Vec3{Y: 10}, FOV: 45}
	lobby    = RoomDescriptor{
		ID: "lobby", Label: "Lobby",
		Anchor: math.Vec3{Y: 1}, Normal: math.Vec3{Z: 1},
		Camera: choreo.Pose{Position: math.Vec3{X: 2, Y: 2, Z: 8}, LookAt: math.Vec3{Y: 1}, FOV: 35},
	}
	penthouse = RoomDescriptor{
		ID: "penthouse", Label: "Penthouse",
		Anchor: math.Vec3{Y: 30}, Normal: math.Vec3{X: 1},
		Camera: choreo.Pose{Position: math.Vec3{X: 12, Y: 31, Z: 0}, LookAt: math.Vec3{Y: 30}, FOV: 30},
	}
)

func newMachine() *Machine {
	return NewMachine(overview, tweenDuration, choreo.Linear)
}

func TestFullCycle(t *testing.T) {
	m := newMachine()
	var completed []State
	var controls []bool
	m.OnTransitionComplete(func(s State) { completed = append(completed, s) })
	m.OnControlsChange(func(enabled bool) { controls = append(controls, enabled) })

	assert.Equal(t, State{Phase: Overview}, m.State())

	require.True(t, m.Select(lobby, overview, t0))
	assert.Equal(t, State{Phase: TransitioningToRoom, RoomID: "lobby"}, m.State())
	assert.Equal(t, []bool{false}, controls)

	pose, ok := m.Update(t0.Add(tweenDuration / 2))
	require.True(t, ok)
	assert.Equal(t, choreo.Blend(overview, lobby.Camera, 0.5, choreo.Linear), pose)
	assert.Empty(t, completed)

	pose, ok = m.Update(t0.Add(tweenDuration))
	require.True(t, ok)
	assert.Equal(t, lobby.Camera, pose)
	assert.Equal(t, State{Phase: AtRoom, RoomID: "lobby"}, m.State())
	assert.Equal(t, []State{{Phase: AtRoom, RoomID: "lobby"}}, completed)
	assert.Nil(t, m.Tween())

	_, ok = m.Update(t0.Add(2 * tweenDuration))
	assert.False(t, ok, "no tween at rest")

	later := t0.Add(5 * time.Second)
	require.True(t, m.Close(lobby.Camera, later))
	assert.Equal(t, State{Phase: TransitioningToOverview}, m.State())

	pose, ok = m.Update(later.Add(tweenDuration))
	require.True(t, ok)
	assert.Equal(t, overview, pose)
	assert.Equal(t, State{Phase: Overview}, m.State())
	assert.Equal(t, []bool{false, true}, controls)
	assert.Len(t, completed, 2)
}

func TestRetargetStartsFromLivePose(t *testing.T) {
	m := newMachine()
	m.Select(lobby, overview, t0)

	mid := t0.Add(400 * time.Millisecond)
	live, ok := m.Update(mid)
	require.True(t, ok)

	require.True(t, m.Select(penthouse, live, mid))
	assert.Equal(t, State{Phase: TransitioningToRoom, RoomID: "penthouse"}, m.State())
	assert.Equal(t, live, m.Tween().From, "new tween starts from the live pose, not lobby's target")
	assert.Equal(t, penthouse.Camera, m.Tween().To)

	// Continuity: the first sample after retargeting is the live pose.
	first, _ := m.Update(mid)
	assert.Equal(t, live, first)

	// One frame later the camera has moved by less than one step of the new tween.
	frame := 16 * time.Millisecond
	next, _ := m.Update(mid.Add(frame))
	step := penthouse.Camera.Position.Distance(live.Position) * float32(frame.Seconds()/tweenDuration.Seconds())
	assert.LessOrEqual(t, next.Position.Distance(live.Position), step+1e-4)

	final, _ := m.Update(mid.Add(tweenDuration))
	assert.Equal(t, penthouse.Camera, final)
	assert.Equal(t, State{Phase: AtRoom, RoomID: "penthouse"}, m.State())
}

func TestSelectSameRoomIsIgnored(t *testing.T) {
	m := newMachine()
	m.Select(lobby, overview, t0)
	tw := m.Tween()

	assert.False(t, m.Select(lobby, overview, t0.Add(time.Millisecond)))
	assert.Same(t, tw, m.Tween())

	m.Update(t0.Add(tweenDuration))
	assert.False(t, m.Select(lobby, lobby.Camera, t0.Add(2*tweenDuration)))
	assert.Equal(t, AtRoom, m.State().Phase)
}

func TestRoomToRoom(t *testing.T) {
	m := newMachine()
	m.Select(lobby, overview, t0)
	m.Update(t0.Add(tweenDuration))

	now := t0.Add(3 * time.Second)
	require.True(t, m.Select(penthouse, lobby.Camera, now))
	assert.Equal(t, State{Phase: TransitioningToRoom, RoomID: "penthouse"}, m.State())
	assert.Equal(t, lobby.Camera, m.Tween().From)

	target, ok := m.Target()
	require.True(t, ok)
	assert.Equal(t, "penthouse", target.ID)
}

func TestCloseWhileTransitioning(t *testing.T) {
	m := newMachine()
	var controls []bool
	m.OnControlsChange(func(enabled bool) { controls = append(controls, enabled) })

	assert.False(t, m.Close(overview, t0), "nothing to close in overview")

	m.Select(lobby, overview, t0)
	mid := t0.Add(600 * time.Millisecond)
	live, _ := m.Update(mid)

	require.True(t, m.Close(live, mid))
	assert.Equal(t, State{Phase: TransitioningToOverview}, m.State())
	assert.Equal(t, live, m.Tween().From)
	assert.False(t, m.Close(live, mid), "already heading to overview")

	// Picking a room again while returning retargets from the live pose.
	back, _ := m.Update(mid.Add(100 * time.Millisecond))
	require.True(t, m.Select(penthouse, back, mid.Add(100*time.Millisecond)))
	assert.Equal(t, back, m.Tween().From)
	assert.Equal(t, []bool{false}, controls)

	_, ok := m.Target()
	assert.True(t, ok)
}

func TestReset(t *testing.T) {
	m := newMachine()
	var controls []bool
	m.OnControlsChange(func(enabled bool) { controls = append(controls, enabled) })
	m.Select(lobby, overview, t0)

	m.Reset()
	assert.Equal(t, State{Phase: Overview}, m.State())
	assert.Nil(t, m.Tween())
	assert.Equal(t, []bool{false, true}, controls)
	_, ok := m.Target()
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "overview", State{}.String())
	assert.Equal(t, "at-room(lobby)", State{Phase: AtRoom, RoomID: "lobby"}.String())
	assert.True(t, State{Phase: TransitioningToOverview}.Transitioning())
	assert.False(t, State{Phase: AtRoom}.Transitioning())
}
