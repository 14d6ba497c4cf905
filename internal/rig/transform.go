package rig

import "github.com/Faultbox/towerview/pkg/math"

// Transform is an object position that carries an additive offset.
//
// Position may also be moved by other code, so an offset is never baked in
// blindly: the previously applied offset is removed before the next one is
// added.
type Transform struct {
	Position math.Vec3
	applied  math.Vec3
}

// Reapply swaps the applied offset for delta.
func (t *Transform) Reapply(delta math.Vec3) {
	t.Position = t.Position.Sub(t.applied).Add(delta)
	t.applied = delta
}

// Applied returns the offset currently baked into Position.
func (t *Transform) Applied() math.Vec3 {
	return t.applied
}

// Base returns Position without the applied offset.
func (t *Transform) Base() math.Vec3 {
	return t.Position.Sub(t.applied)
}

// SetBase moves the resting position, keeping the current offset.
func (t *Transform) SetBase(p math.Vec3) {
	t.Position = p.Add(t.applied)
}
