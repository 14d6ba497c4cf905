package choreo

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/towerview/pkg/math"
)

// Easing shapes a normalized progress value. Implementations must be
// monotonic on [0, 1] and map 0 to 0 and 1 to 1.
type Easing func(t float32) float32

// DefaultEasingName is used when a track names no easing.
const DefaultEasingName = "power2.inOut"

// Linear leaves progress unchanged.
func Linear(t float32) float32 { return t }

// Power2InOut is quadratic acceleration then deceleration.
func Power2InOut(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Power3InOut is the cubic variant of Power2InOut.
func Power3InOut(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Smoothstep is the Hermite 3t^2 - 2t^3 curve.
func Smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

// SineInOut follows half a cosine period.
func SineInOut(t float32) float32 {
	return -(math32.Cos(math32.Pi*t) - 1) / 2
}

var easings = map[string]Easing{
	"linear":       Linear,
	"power2.inOut": Power2InOut,
	"power3.inOut": Power3InOut,
	"smoothstep":   Smoothstep,
	"sine.inOut":   SineInOut,
}

// EasingByName looks up an easing. The empty name selects the default.
func EasingByName(name string) (Easing, bool) {
	if name == "" {
		name = DefaultEasingName
	}
	e, ok := easings[name]
	return e, ok
}

// EasingNames lists the registered easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// apply clamps t and pins the endpoints so keyframe poses are hit exactly.
func (e Easing) apply(t float32) float32 {
	t = math.Clamp01(t)
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case e == nil:
		return Power2InOut(t)
	}
	return math.Clamp01(e(t))
}
