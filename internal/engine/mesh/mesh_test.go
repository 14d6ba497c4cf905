package mesh

import (
	"testing"

	"github.com/Faultbox/towerview/pkg/math"
)

func vertexAt(mesh []float32, i int) (pos, normal math.Vec3) {
	o := i * FloatsPerVertex
	return math.Vec3{X: mesh[o], Y: mesh[o+1], Z: mesh[o+2]},
		math.Vec3{X: mesh[o+3], Y: mesh[o+4], Z: mesh[o+5]}
}

func TestBoxMeshLayout(t *testing.T) {
	minB := math.Vec3{X: -6, Y: 0, Z: -6}
	maxB := math.Vec3{X: 6, Y: 38, Z: 6}
	mesh := Box(minB, maxB)

	if got, want := len(mesh), 36*FloatsPerVertex; got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}
	for i := 0; i < 36; i++ {
		p, n := vertexAt(mesh, i)
		if p.X < minB.X || p.X > maxB.X || p.Y < minB.Y || p.Y > maxB.Y || p.Z < minB.Z || p.Z > maxB.Z {
			t.Errorf("vertex %d %+v outside box", i, p)
		}
		if l := n.Length(); l != 1 {
			t.Errorf("vertex %d normal length %v", i, l)
		}
	}
}

func TestBoxMeshWindingFacesOut(t *testing.T) {
	mesh := Box(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})
	for tri := 0; tri < 12; tri++ {
		a, n := vertexAt(mesh, tri*3)
		b, _ := vertexAt(mesh, tri*3+1)
		c, _ := vertexAt(mesh, tri*3+2)
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Dot(n) <= 0 {
			t.Errorf("triangle %d winds inward: face normal %+v, declared %+v", tri, face, n)
		}
	}
}

func TestGroundMeshFacesUp(t *testing.T) {
	mesh := Ground(50)
	if len(mesh) != 6*FloatsPerVertex {
		t.Fatalf("len = %d", len(mesh))
	}
	a, _ := vertexAt(mesh, 0)
	b, _ := vertexAt(mesh, 1)
	c, _ := vertexAt(mesh, 2)
	if up := b.Sub(a).Cross(c.Sub(a)); up.Y <= 0 {
		t.Errorf("ground winds downward: %+v", up)
	}
}
