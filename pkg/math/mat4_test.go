package math

import (
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M, got %v", result)
	}
}

func TestTranslate(t *testing.T) {
	got := Translate(Vec3{10, 20, 30}).TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 5, 10}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformVec3(eye)
	if got.Length() > 1e-4 {
		t.Errorf("eye in view space = %v, want origin", got)
	}

	// Target lies straight ahead on -Z
	target := view.TransformVec3(Vec3{})
	if target.Z >= 0 || target.X*target.X+target.Y*target.Y > 1e-6 {
		t.Errorf("target in view space = %v, want on -Z axis", target)
	}
}

func TestPerspectiveAspect(t *testing.T) {
	m := Perspective(DegToRad(90), 2, 0.1, 100)
	if m[5] < 0.999 || m[5] > 1.001 {
		t.Errorf("f = %v, want 1 for 90 degrees", m[5])
	}
	if m[0] < 0.499 || m[0] > 0.501 {
		t.Errorf("f/aspect = %v, want 0.5", m[0])
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Perspective(DegToRad(45), 1.5, 0.1, 100).Mul(LookAt(Vec3{3, 4, 12}, Vec3{0, 2, 0}, Vec3{0, 1, 0}))
	p := Vec3{1, 2, 3}
	got := m.Inverse().TransformVec3(m.TransformVec3(p))
	if got.Distance(p) > 1e-3 {
		t.Errorf("inverse round trip: got %v, want %v", got, p)
	}
}

func TestInverseSingular(t *testing.T) {
	if got := (Mat4{}).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}
