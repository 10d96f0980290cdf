package main

import "math"

const (
	LifeSphereSize          = 1.5
	LifeSphereRotationSpeed = 2.0 // rad/s base, axes spin at fixed ratios
	LifeSphereBobFreq       = 2.0 // rad/s
	LifeSphereBobAmplitude  = 0.01
)

// ColorLifeSphere is the life sphere render color (cyan)
var ColorLifeSphere = [3]float64{0, 1, 1}

// LifeSphere is a pickup that grants an extra life on contact
type LifeSphere struct {
	Entity
	Collected bool
	elapsed   float64 // accumulated sim time driving the bob
	bobOffset float64 // currently applied bob displacement
}

// NewLifeSphere spawns a life sphere at the given position
func NewLifeSphere(pos Vec3) *LifeSphere {
	s := &LifeSphere{
		Entity: NewEntity(pos, "life_sphere"),
	}
	s.Radius = LifeSphereSize
	s.Scale = [3]float64{LifeSphereSize, LifeSphereSize, LifeSphereSize}
	return s
}

// Update spins the sphere on all axes and bobs it vertically. The bob
// displacement is a pure function of accumulated sim time: a zero-dt
// update leaves the sphere still, and pausing freezes it with
// everything else.
func (s *LifeSphere) Update(dt float64) {
	s.Entity.Update(dt)

	s.Rotate(
		dt*LifeSphereRotationSpeed,
		dt*LifeSphereRotationSpeed*1.5,
		dt*LifeSphereRotationSpeed*0.8,
	)

	s.elapsed += dt
	bob := math.Sin(s.elapsed*LifeSphereBobFreq) * LifeSphereBobAmplitude
	s.Position.Y += bob - s.bobOffset
	s.bobOffset = bob
}

// Collect marks the sphere collected and dead in one transition
func (s *LifeSphere) Collect() {
	s.Collected = true
	s.Destroy()
}

// Color returns the life sphere render color
func (s *LifeSphere) Color() [3]float64 {
	return ColorLifeSphere
}
