// Package scroll maps page scroll offset onto positions in a keyframe track.
package scroll

import (
	"errors"
	"fmt"
	gomath "math"
)

// ErrNoGeometry is returned when section boundaries are missing or unusable.
var ErrNoGeometry = errors.New("section geometry unavailable")

// SectionBoundaryProvider measures page sections.
//
// SectionBounds returns the top offset of every section in document order,
// followed by the bottom offset of the last section, so N sections yield
// N+1 values.
type SectionBoundaryProvider interface {
	SectionBounds() ([]float64, error)
}

// StaticBounds is a fixed set of boundaries.
type StaticBounds []float64

// SectionBounds implements SectionBoundaryProvider.
func (s StaticBounds) SectionBounds() ([]float64, error) {
	return s, nil
}

// UniformSections returns n sections of equal height starting at 0.
func UniformSections(n int, height float64) StaticBounds {
	if n <= 0 {
		return nil
	}
	b := make(StaticBounds, n+1)
	for i := range b {
		b[i] = float64(i) * height
	}
	return b
}

// ViewportSections lays sections out by height in viewport units, the way a
// page of full-screen sections reflows when the window changes size.
type ViewportSections struct {
	Heights  []float64
	viewport float64
}

// NewViewportSections creates sections for a viewport of the given height.
func NewViewportSections(heights []float64, viewport float64) *ViewportSections {
	return &ViewportSections{Heights: heights, viewport: viewport}
}

// SetViewport updates the viewport height in pixels.
func (v *ViewportSections) SetViewport(height float64) {
	v.viewport = height
}

// SectionBounds implements SectionBoundaryProvider.
func (v *ViewportSections) SectionBounds() ([]float64, error) {
	if v.viewport <= 0 {
		return nil, fmt.Errorf("%w: viewport height %.0f", ErrNoGeometry, v.viewport)
	}
	b := make([]float64, len(v.Heights)+1)
	for i, h := range v.Heights {
		b[i+1] = b[i] + h*v.viewport
	}
	return b, nil
}

// checkBounds rejects boundary lists that cannot be searched.
func checkBounds(b []float64) error {
	if len(b) < 2 {
		return fmt.Errorf("%w: %d boundaries", ErrNoGeometry, len(b))
	}
	for i, v := range b {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return fmt.Errorf("%w: boundary %d is not finite", ErrNoGeometry, i)
		}
		if i > 0 && v < b[i-1] {
			return fmt.Errorf("%w: boundary %d (%.1f) above boundary %d (%.1f)", ErrNoGeometry, i, v, i-1, b[i-1])
		}
	}
	if b[len(b)-1] <= b[0] {
		return fmt.Errorf("%w: zero document height", ErrNoGeometry)
	}
	return nil
}
