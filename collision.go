package main

// CollisionPushBack is the fixed separation distance applied when the
// player bounces off a meteorite.
const CollisionPushBack = 5.0

// CheckCollision reports whether two bounding spheres overlap. Strict
// inequality: exact tangency does not count.
func CheckCollision(a, b *Entity) bool {
	dist := a.Position.DistanceTo(b.Position)
	return dist < a.Radius+b.Radius
}

// ResolveCollision pushes a away from b along their separation
// direction by pushDistance. Coincident centers push along +X so the
// result stays defined.
func ResolveCollision(a, b *Entity, pushDistance float64) {
	dir := a.Position.Sub(b.Position)
	if dir.Length() > 0 {
		dir = dir.Normalize()
	} else {
		dir = Vec3{X: 1}
	}
	a.Position = a.Position.Add(dir.Scale(pushDistance))
}

// RaySphereIntersect reports whether a ray hits a sphere. A tangent
// ray (zero discriminant) counts as a hit, unlike the sphere-sphere
// tangency rule above.
func RaySphereIntersect(origin, dir, center Vec3, radius float64) bool {
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	b := 2.0 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - 4*a*c
	return discriminant >= 0
}
