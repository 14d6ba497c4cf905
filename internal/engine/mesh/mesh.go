// Package mesh builds interleaved vertex data for the preview geometry.
package mesh

import "github.com/Faultbox/towerview/pkg/math"

// FloatsPerVertex is position (3) + normal (3).
const FloatsPerVertex = 6

// Box returns an axis-aligned box as 12 triangles with flat normals,
// wound counter-clockwise when seen from outside.
func Box(minB, maxB math.Vec3) []float32 {
	corner := func(x, y, z int) math.Vec3 {
		c := minB
		if x == 1 {
			c.X = maxB.X
		}
		if y == 1 {
			c.Y = maxB.Y
		}
		if z == 1 {
			c.Z = maxB.Z
		}
		return c
	}

	type face struct {
		normal math.Vec3
		quad   [4][3]int
	}
	faces := []face{
		{math.Vec3{X: 1}, [4][3]int{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
		{math.Vec3{X: -1}, [4][3]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
		{math.Vec3{Y: 1}, [4][3]int{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
		{math.Vec3{Y: -1}, [4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
		{math.Vec3{Z: 1}, [4][3]int{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
		{math.Vec3{Z: -1}, [4][3]int{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
	}

	out := make([]float32, 0, len(faces)*6*FloatsPerVertex)
	for _, f := range faces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			c := f.quad[i]
			p := corner(c[0], c[1], c[2])
			out = append(out, p.X, p.Y, p.Z, f.normal.X, f.normal.Y, f.normal.Z)
		}
	}
	return out
}

// Ground returns a square on y=0 facing up.
func Ground(half float32) []float32 {
	return []float32{
		-half, 0, half, 0, 1, 0,
		half, 0, half, 0, 1, 0,
		half, 0, -half, 0, 1, 0,
		-half, 0, half, 0, 1, 0,
		half, 0, -half, 0, 1, 0,
		-half, 0, -half, 0, 1, 0,
	}
}
