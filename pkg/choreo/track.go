package choreo

import (
	"errors"
	"fmt"
)

// Track is an ordered keyframe sequence with its easing.
type Track struct {
	Name      string     `yaml:"name" toml:"name"`
	Easing    string     `yaml:"easing,omitempty" toml:"easing,omitempty"`
	Keyframes []Keyframe `yaml:"keyframes" toml:"keyframes"`

	ease Easing
}

// NewTrack builds a track and assigns keyframe indices in order.
func NewTrack(name, easing string, keyframes ...Keyframe) (*Track, error) {
	t := &Track{Name: name, Easing: easing, Keyframes: keyframes}
	if err := t.Prepare(); err != nil {
		return nil, err
	}
	return t, nil
}

// Prepare resolves the easing and numbers keyframes. Call it after decoding.
func (t *Track) Prepare() error {
	if len(t.Keyframes) == 0 {
		return fmt.Errorf("track %q: %w", t.Name, ErrEmptyTrack)
	}
	ease, ok := EasingByName(t.Easing)
	if !ok {
		return fmt.Errorf("track %q: unknown easing %q", t.Name, t.Easing)
	}
	t.ease = ease
	for i := range t.Keyframes {
		t.Keyframes[i].Index = i
	}
	return nil
}

// Validate checks every keyframe pose against r.
func (t *Track) Validate(r FOVRange) error {
	if len(t.Keyframes) == 0 {
		return fmt.Errorf("track %q: %w", t.Name, ErrEmptyTrack)
	}
	var errs []error
	for i, kf := range t.Keyframes {
		if err := kf.Pose.Validate(r); err != nil {
			errs = append(errs, fmt.Errorf("track %q keyframe %d (%s): %w", t.Name, i, kf.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of keyframes.
func (t *Track) Len() int {
	return len(t.Keyframes)
}

// Segments returns the number of interpolable segments.
func (t *Track) Segments() int {
	if len(t.Keyframes) < 2 {
		return 0
	}
	return len(t.Keyframes) - 1
}

// Ease returns the resolved easing, falling back to the default.
func (t *Track) Ease() Easing {
	if t.ease == nil {
		return Power2InOut
	}
	return t.ease
}

// First returns the first keyframe's pose.
func (t *Track) First() Pose {
	if len(t.Keyframes) == 0 {
		return DefaultPose()
	}
	return t.Keyframes[0].Pose
}

// Sample interpolates the track at segment and localT.
func (t *Track) Sample(segment int, localT float32) Pose {
	return Interpolate(t.Keyframes, segment, localT, t.Ease())
}
