package choreo

import (
	"time"
)

// Tween is a timed blend between two poses. It holds no timers; callers
// sample it each frame and cancel it by replacing the record.
type Tween struct {
	From     Pose
	To       Pose
	Start    time.Time
	Duration time.Duration
	Ease     Easing
}

// NewTween starts a tween at start.
func NewTween(from, to Pose, start time.Time, duration time.Duration, ease Easing) *Tween {
	return &Tween{From: from, To: to, Start: start, Duration: duration, Ease: ease}
}

// Progress returns elapsed/duration clamped to [0, 1].
func (tw *Tween) Progress(now time.Time) float32 {
	if tw.Duration <= 0 {
		return 1
	}
	p := float32(now.Sub(tw.Start).Seconds() / tw.Duration.Seconds())
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Sample returns the pose at now.
func (tw *Tween) Sample(now time.Time) Pose {
	return Blend(tw.From, tw.To, tw.Progress(now), tw.Ease)
}

// Done reports whether the tween has reached its end pose.
func (tw *Tween) Done(now time.Time) bool {
	return tw.Progress(now) >= 1
}
