package math

import (
	"testing"
)

func TestVec2ClampAbs(t *testing.T) {
	v := Vec2{3, -4}
	got := v.ClampAbs(Vec2{1, 2})
	want := Vec2{1, -2}
	if got != want {
		t.Errorf("Vec2.ClampAbs() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3LerpEndpoints(t *testing.T) {
	a := Vec3{0.1, -7.3, 1e6}
	b := Vec3{9.7, 3.3, -2.5}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	var zero float32
	if got := Clamp01(zero / zero); got != 0 {
		t.Errorf("Clamp01(NaN) = %v, want 0", got)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, DegToRad(90))
	got := q.Rotate(Vec3{1, 0, 0})
	if got.Distance(Vec3{0, 1, 0}) > 1e-5 {
		t.Errorf("Rotate() = %v, want (0,1,0)", got)
	}
}
