package choreo

import (
	"github.com/Faultbox/towerview/pkg/math"
)

// Keyframe anchors a pose at a fixed position in a track.
type Keyframe struct {
	Index int    `yaml:"-" toml:"-"`
	Name  string `yaml:"name" toml:"name"`
	Pose  Pose   `yaml:"pose" toml:"pose"`
}

// Blend mixes two poses after shaping t with ease.
// t is clamped to [0, 1]; t=0 yields a and t=1 yields b exactly.
func Blend(a, b Pose, t float32, ease Easing) Pose {
	e := ease.apply(t)
	return Pose{
		Position: a.Position.Lerp(b.Position, e),
		LookAt:   a.LookAt.Lerp(b.LookAt, e),
		FOV:      math.Lerp(a.FOV, b.FOV, e),
		Roll:     math.Lerp(a.Roll, b.Roll, e),
	}
}

// Interpolate returns the pose at localT within segment of keyframes.
//
// The segment addresses the pair (keyframes[segment], keyframes[segment+1]).
// A segment below zero is pinned to the start of the first segment and a
// segment past the last one is pinned to the end of the last segment, so the
// result never moves backwards when callers overshoot. An empty slice yields
// DefaultPose; debug builds panic instead.
func Interpolate(keyframes []Keyframe, segment int, localT float32, ease Easing) Pose {
	switch len(keyframes) {
	case 0:
		if debugChecks {
			panic("choreo: Interpolate called with no keyframes")
		}
		return DefaultPose()
	case 1:
		return keyframes[0].Pose
	}

	last := len(keyframes) - 2
	switch {
	case segment < 0:
		segment, localT = 0, 0
	case segment > last:
		segment, localT = last, 1
	}
	return Blend(keyframes[segment].Pose, keyframes[segment+1].Pose, localT, ease)
}
