package picking

import (
	"testing"

	"github.com/Faultbox/towerview/pkg/math"
)

func TestIntersectAABB(t *testing.T) {
	box := [2]math.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: 1}}
	tests := []struct {
		name   string
		ray    Ray
		hit    bool
		distTo float32
	}{
		{"head on", Ray{math.Vec3{Z: 5}, math.Vec3{Z: -1}}, true, 4},
		{"miss", Ray{math.Vec3{X: 3, Z: 5}, math.Vec3{Z: -1}}, false, 0},
		{"behind", Ray{math.Vec3{Z: 5}, math.Vec3{Z: 1}}, false, 0},
		{"inside", Ray{math.Vec3{}, math.Vec3{X: 1}}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hit := tt.ray.IntersectAABB(box[0], box[1])
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && d != tt.distTo {
				t.Errorf("distance = %v, want %v", d, tt.distTo)
			}
		})
	}
}

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	d, ok := r.IntersectSphere(math.Vec3{}, 2)
	if !ok || d != 8 {
		t.Errorf("got (%v, %v), want (8, true)", d, ok)
	}
	if _, ok := r.IntersectSphere(math.Vec3{X: 5}, 2); ok {
		t.Error("expected miss")
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{Y: 2, Z: 10}
	view := math.LookAt(eye, math.Vec3{Y: 2}, math.Vec3{Y: 1})
	proj := math.Perspective(math.DegToRad(45), 2, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(400, 200, 800, 400, inv)
	if r.Direction.Dot(math.Vec3{Z: -1}) < 0.999 {
		t.Errorf("center ray direction = %v, want -Z", r.Direction)
	}
	if p := r.At(9.9); p.Distance(math.Vec3{Y: 2}) > 0.05 {
		t.Errorf("center ray misses target: %v", p)
	}
}

func TestNearestSkipsHiddenTargets(t *testing.T) {
	r := Ray{Origin: math.Vec3{Z: 20}, Direction: math.Vec3{Z: -1}}
	occMin, occMax := math.Vec3{X: -5, Y: -5, Z: -5}, math.Vec3{X: 5, Y: 5, Z: 5}
	targets := []Target{
		{ID: "back", Position: math.Vec3{Z: -5}},
		{ID: "front", Position: math.Vec3{Z: 5}},
	}

	id, ok := Nearest(r, targets, 1, occMin, occMax)
	if !ok || id != "front" {
		t.Errorf("got (%q, %v), want front", id, ok)
	}

	id, ok = Nearest(r, targets[:1], 1, occMin, occMax)
	if ok {
		t.Errorf("back anchor should be hidden, got %q", id)
	}
}
