package choreo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/towerview/pkg/math"
)

func TestNewTrack(t *testing.T) {
	track, err := NewTrack("scroll", "linear", testKeyframes()...)
	require.NoError(t, err)
	assert.Equal(t, 3, track.Len())
	assert.Equal(t, 2, track.Segments())
	for i, kf := range track.Keyframes {
		assert.Equal(t, i, kf.Index)
	}
	assert.Equal(t, track.Keyframes[1].Pose, track.Sample(0, 1))
}

func TestNewTrackErrors(t *testing.T) {
	_, err := NewTrack("empty", "")
	assert.ErrorIs(t, err, ErrEmptyTrack)

	_, err = NewTrack("bad", "elastic", testKeyframes()...)
	assert.ErrorContains(t, err, "unknown easing")
}

func TestTrackValidate(t *testing.T) {
	kfs := testKeyframes()
	kfs[1].Pose.FOV = 0
	kfs[2].Pose.FOV = 400
	track, err := NewTrack("scroll", "", kfs...)
	require.NoError(t, err)

	err = track.Validate(DefaultFOVRange)
	assert.ErrorIs(t, err, ErrInvalidFOV)
	assert.ErrorContains(t, err, "keyframe 1")
	assert.ErrorContains(t, err, "keyframe 2")
}

func TestPoseSanitize(t *testing.T) {
	var zero float32
	nan := zero / zero
	p := Pose{Position: math.Vec3{X: nan}, FOV: 500, Roll: nan}
	got := p.Sanitize(DefaultFOVRange, DefaultPose())
	assert.Equal(t, DefaultPose().Position, got.Position)
	assert.Equal(t, DefaultFOVRange.Max, got.FOV)
	assert.Equal(t, float32(0), got.Roll)
	assert.NoError(t, got.Validate(DefaultFOVRange))
}

func TestPoseUpWithRoll(t *testing.T) {
	p := Pose{Position: math.Vec3{Z: 10}, FOV: 45}
	assert.Equal(t, math.Vec3{Y: 1}, p.Up())

	p.Roll = 30
	up := p.Up()
	forward := p.LookAt.Sub(p.Position).Normalize()
	assert.InDelta(t, 1, up.Length(), 1e-5)
	assert.InDelta(t, 0, up.Dot(forward), 1e-5)
	assert.InDelta(t, 0.866, up.Y, 1e-3)
}

func TestTween(t *testing.T) {
	start := time.Unix(100, 0)
	from := Pose{Position: math.Vec3{X: 0}, FOV: 30}
	to := Pose{Position: math.Vec3{X: 10}, FOV: 50}
	tw := NewTween(from, to, start, 2*time.Second, Linear)

	assert.Equal(t, from, tw.Sample(start))
	assert.Equal(t, from, tw.Sample(start.Add(-time.Second)))
	assert.Equal(t, float32(5), tw.Sample(start.Add(time.Second)).Position.X)
	assert.False(t, tw.Done(start.Add(time.Second)))
	assert.True(t, tw.Done(start.Add(2*time.Second)))
	assert.Equal(t, to, tw.Sample(start.Add(time.Hour)))

	instant := NewTween(from, to, start, 0, Linear)
	assert.True(t, instant.Done(start))
	assert.Equal(t, to, instant.Sample(start))
}
