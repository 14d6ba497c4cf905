package scroll

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/towerview/internal/logger"
	"github.com/Faultbox/towerview/internal/rig"
	"github.com/Faultbox/towerview/pkg/choreo"
)

// Progress is a position inside a track: the segment index plus the local
// interpolation factor within it.
type Progress struct {
	Segment int
	LocalT  float32
}

// Value flattens the progress into a single scalar.
func (p Progress) Value() float64 {
	return float64(p.Segment) + float64(p.LocalT)
}

// Less orders progress values in document order.
func (p Progress) Less(other Progress) bool {
	if p.Segment != other.Segment {
		return p.Segment < other.Segment
	}
	return p.LocalT < other.LocalT
}

// ProgressAt locates offset within bounds. Offsets outside the document are
// clamped to it. The final boundary maps to the end of the last section.
// Unusable bounds and a NaN offset yield the zero Progress.
func ProgressAt(bounds []float64, offset float64) Progress {
	if gomath.IsNaN(offset) || checkBounds(bounds) != nil {
		return Progress{}
	}
	n := len(bounds) - 1
	if offset <= bounds[0] {
		return Progress{}
	}
	if offset >= bounds[n] {
		return Progress{Segment: n - 1, LocalT: 1}
	}

	// Last boundary at or before offset.
	i := sort.Search(n+1, func(i int) bool { return bounds[i] > offset }) - 1
	span := bounds[i+1] - bounds[i]
	if span <= 0 {
		return Progress{Segment: i, LocalT: 1}
	}
	t := float32((offset - bounds[i]) / span)
	if t > 1 {
		t = 1
	}
	return Progress{Segment: i, LocalT: t}
}

// Tracker follows the page scroll offset and turns it into track progress.
//
// Geometry is measured lazily: Invalidate marks it stale and the next read
// re-measures before any progress is computed.
type Tracker struct {
	provider SectionBoundaryProvider

	bounds []float64
	stale  bool
	failed bool

	offset    float64
	suspended bool
}

// NewTracker creates an active tracker at offset 0.
func NewTracker(provider SectionBoundaryProvider) *Tracker {
	return &Tracker{provider: provider, stale: true}
}

// SetProvider swaps the geometry source and marks geometry stale.
func (t *Tracker) SetProvider(provider SectionBoundaryProvider) {
	t.provider = provider
	t.stale = true
}

// Invalidate marks geometry stale, e.g. after a viewport resize.
func (t *Tracker) Invalidate() {
	t.stale = true
}

// Measure re-reads section geometry now.
func (t *Tracker) Measure() error {
	t.stale = false
	var (
		b   []float64
		err error
	)
	if t.provider != nil {
		b, err = t.provider.SectionBounds()
	}
	if err != nil && !errors.Is(err, ErrNoGeometry) {
		err = fmt.Errorf("%w: %w", ErrNoGeometry, err)
	}
	if err == nil {
		err = checkBounds(b)
	}
	if err != nil {
		if !t.failed {
			logger.Warn("scroll geometry unavailable, holding first keyframe", zap.Error(err))
		}
		t.failed = true
		t.bounds = nil
		return err
	}
	if t.failed {
		logger.Info("scroll geometry recovered", zap.Int("sections", len(b)-1))
	}
	t.failed = false
	t.bounds = append(t.bounds[:0], b...)
	return nil
}

func (t *Tracker) ensureMeasured() {
	if t.stale {
		_ = t.Measure()
	}
}

// Sections returns the number of measured sections, 0 without geometry.
func (t *Tracker) Sections() int {
	t.ensureMeasured()
	if len(t.bounds) < 2 {
		return 0
	}
	return len(t.bounds) - 1
}

// DocumentHeight returns the scrollable extent, 0 without geometry.
func (t *Tracker) DocumentHeight() float64 {
	t.ensureMeasured()
	if len(t.bounds) < 2 {
		return 0
	}
	return t.bounds[len(t.bounds)-1] - t.bounds[0]
}

// OnScroll records a new scroll offset. It is ignored while suspended, the
// same as an unsubscribed scroll listener, and when offset is NaN.
func (t *Tracker) OnScroll(offset float64) {
	if t.suspended || gomath.IsNaN(offset) {
		return
	}
	t.offset = offset
}

// Offset returns the last recorded scroll offset.
func (t *Tracker) Offset() float64 {
	return t.offset
}

// JumpTo places the tracker at offset without animation, even while
// suspended. Geometry is re-measured before the next read. A NaN offset
// keeps the current one.
func (t *Tracker) JumpTo(offset float64) {
	if !gomath.IsNaN(offset) {
		t.offset = offset
	}
	t.stale = true
}

// Suspend stops the tracker reacting to scroll and writing poses.
func (t *Tracker) Suspend() {
	t.suspended = true
}

// Resume re-enables the tracker and re-measures geometry, which may have
// changed while sections were hidden.
func (t *Tracker) Resume() {
	t.suspended = false
	t.stale = true
}

// Active reports whether the tracker is driving.
func (t *Tracker) Active() bool {
	return !t.suspended
}

// Progress returns the track position for the current offset.
func (t *Tracker) Progress() Progress {
	return t.ProgressFor(t.offset)
}

// ProgressFor returns the track position for an arbitrary offset using the
// current geometry.
func (t *Tracker) ProgressFor(offset float64) Progress {
	t.ensureMeasured()
	if t.bounds == nil {
		return Progress{}
	}
	return ProgressAt(t.bounds, offset)
}

// PoseFor returns the pose the track shows at offset.
func (t *Tracker) PoseFor(track *choreo.Track, offset float64) choreo.Pose {
	p := t.ProgressFor(offset)
	return track.Sample(p.Segment, p.LocalT)
}

// WritePose samples track at the current offset and writes it to r as the
// scroll driver. It does nothing while suspended and reports whether the
// rig accepted the write.
func (t *Tracker) WritePose(track *choreo.Track, r *rig.CameraRig) bool {
	if t.suspended {
		return false
	}
	return r.SetPose(rig.DriverScroll, t.PoseFor(track, t.offset))
}
