package main

import (
	"math"
	"testing"
)

func makeTestEntity(pos Vec3, radius float64) *Entity {
	e := NewEntity(pos, "test")
	e.Radius = radius
	return &e
}

func TestCheckCollisionOverlap(t *testing.T) {
	a := makeTestEntity(Vec3{}, 2)
	b := makeTestEntity(Vec3{X: 3}, 2)
	if !CheckCollision(a, b) {
		t.Error("spheres 3 apart with radii 2+2 should collide")
	}
}

func TestCheckCollisionExactTangency(t *testing.T) {
	// Distance exactly equal to the radius sum is not a collision
	a := makeTestEntity(Vec3{}, 2)
	b := makeTestEntity(Vec3{X: 4}, 2)
	if CheckCollision(a, b) {
		t.Error("tangent spheres should not count as colliding")
	}
}

func TestCheckCollisionSeparated(t *testing.T) {
	a := makeTestEntity(Vec3{}, 1)
	b := makeTestEntity(Vec3{X: 10}, 1)
	if CheckCollision(a, b) {
		t.Error("distant spheres should not collide")
	}
}

func TestResolveCollisionDirection(t *testing.T) {
	a := makeTestEntity(Vec3{X: 1}, 2)
	b := makeTestEntity(Vec3{}, 2)
	ResolveCollision(a, b, CollisionPushBack)
	if math.Abs(a.Position.X-6) > 1e-9 || a.Position.Y != 0 || a.Position.Z != 0 {
		t.Errorf("push-back moved a to %+v, want {6,0,0}", a.Position)
	}
	if b.Position != (Vec3{}) {
		t.Error("b should not move during resolution")
	}
}

func TestResolveCollisionCoincidentCenters(t *testing.T) {
	a := makeTestEntity(Vec3{X: 5, Y: 5, Z: 5}, 2)
	b := makeTestEntity(Vec3{X: 5, Y: 5, Z: 5}, 2)
	ResolveCollision(a, b, CollisionPushBack)
	want := Vec3{X: 10, Y: 5, Z: 5}
	if a.Position != want {
		t.Errorf("coincident centers should push along +X, got %+v", a.Position)
	}
}

func TestResolveCollisionSeparates(t *testing.T) {
	// After one push-back the pair must no longer overlap
	a := makeTestEntity(Vec3{X: 0.5}, 2)
	b := makeTestEntity(Vec3{}, 2)
	ResolveCollision(a, b, CollisionPushBack)
	if CheckCollision(a, b) {
		t.Errorf("pair still overlapping after resolution: dist=%f", a.Position.DistanceTo(b.Position))
	}
}

func TestRaySphereIntersectHit(t *testing.T) {
	origin := Vec3{}
	dir := Vec3{0, 0, -1}
	if !RaySphereIntersect(origin, dir, Vec3{Z: -10}, 1) {
		t.Error("ray straight at sphere should hit")
	}
}

func TestRaySphereIntersectMiss(t *testing.T) {
	origin := Vec3{}
	dir := Vec3{0, 0, -1}
	if RaySphereIntersect(origin, dir, Vec3{X: 5, Z: -10}, 1) {
		t.Error("ray past the sphere should miss")
	}
}

func TestRaySphereIntersectTangent(t *testing.T) {
	// A grazing ray has zero discriminant and counts as a hit
	origin := Vec3{X: 1}
	dir := Vec3{0, 0, -1}
	if !RaySphereIntersect(origin, dir, Vec3{Z: -10}, 1) {
		t.Error("tangent ray should count as a hit")
	}
}
