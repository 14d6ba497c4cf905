// Package picking provides ray casting against the building and its rooms.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/towerview/pkg/math"
)

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts window pixel coordinates to a world-space ray.
// invViewProj is the inverse of projection * view.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectAABB tests the ray against an axis-aligned box and returns the
// entry distance, or the exit distance when the ray starts inside.
func (r Ray) IntersectAABB(minB, maxB math.Vec3) (float32, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	o := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{minB.X, minB.Y, minB.Z}
	hi := [3]float32{maxB.X, maxB.Y, maxB.Z}

	for axis := 0; axis < 3; axis++ {
		if d[axis] == 0 {
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - o[axis]) / d[axis]
		t2 := (hi[axis] - o[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectSphere returns the distance to the nearest hit in front of the
// ray origin.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Target is a pickable point, such as a room anchor.
type Target struct {
	ID       string
	Position math.Vec3
}

// Nearest returns the closest target whose sphere of the given radius the
// ray hits. Targets hidden behind the occluder box are skipped.
func Nearest(r Ray, targets []Target, radius float32, occMin, occMax math.Vec3) (string, bool) {
	best := float32(math32.MaxFloat32)
	id := ""
	wall, blocked := r.IntersectAABB(occMin, occMax)
	for _, tg := range targets {
		t, ok := r.IntersectSphere(tg.Position, radius)
		if !ok || t >= best {
			continue
		}
		// Anchors sit on the building surface; allow the radius as slack.
		if blocked && t > wall+radius {
			continue
		}
		best, id = t, tg.ID
	}
	return id, id != ""
}
