package main

import "math/rand"

const (
	MeteoriteMinSize     = 2.0
	MeteoriteMaxSize     = 5.0
	MeteoriteRadiusScale = 1.2  // collision radius = size * this
	MeteoriteMaxSpin     = 0.2  // rad/s per axis
	MeteoriteMaxDrift    = 0.05 // units/s per axis
)

// ColorMeteorite is the meteorite render color (gray)
var ColorMeteorite = [3]float64{0.5, 0.5, 0.5}

// Meteorite is an indestructible drifting obstacle. It has no damage
// path; projectiles die against it and the player bounces off.
type Meteorite struct {
	Entity
	Size      float64
	SpinSpeed [3]float64
}

// NewMeteorite spawns a meteorite with randomized size, spin and drift
func NewMeteorite(pos Vec3, rng *rand.Rand) *Meteorite {
	size := MeteoriteMinSize + rng.Float64()*(MeteoriteMaxSize-MeteoriteMinSize)

	m := &Meteorite{
		Entity: NewEntity(pos, "meteorite"),
		Size:   size,
	}
	m.Radius = size * MeteoriteRadiusScale
	m.Scale = [3]float64{size, size, size}

	for i := range m.SpinSpeed {
		m.SpinSpeed[i] = (rng.Float64()*2 - 1) * MeteoriteMaxSpin
	}
	m.Velocity = Vec3{
		X: (rng.Float64()*2 - 1) * MeteoriteMaxDrift,
		Y: (rng.Float64()*2 - 1) * MeteoriteMaxDrift,
		Z: (rng.Float64()*2 - 1) * MeteoriteMaxDrift,
	}
	return m
}

// Update drifts and tumbles the meteorite
func (m *Meteorite) Update(dt float64) {
	m.Entity.Update(dt)
	m.Rotate(m.SpinSpeed[0]*dt, m.SpinSpeed[1]*dt, m.SpinSpeed[2]*dt)
}

// Color returns the meteorite render color
func (m *Meteorite) Color() [3]float64 {
	return ColorMeteorite
}
