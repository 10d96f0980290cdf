package main

import "math/rand"

const (
	EnemyRadius        = 1.5
	EnemyHealth        = 1
	EnemyPoints        = 1
	EnemySpeed         = 15.0 // units/s
	EnemyStandoff      = 10.0 // parks this close to the player
	EnemyShootInterval = 2.0  // seconds between shots
	EnemyShootRange    = 50.0
	EnemySpinSpeed     = 0.5 // visual yaw rad/s
)

// ColorEnemy is the enemy render color (red)
var ColorEnemy = [3]float64{1, 0, 0}

// enemyModels are the render-model handles the client knows how to draw
var enemyModels = []string{"enemy_fighter", "enemy_interceptor", "enemy_cruiser"}

// Enemy is an AI ship that chases the player and shoots when in range
type Enemy struct {
	Entity
	Health     int
	Points     int
	ShootTimer float64
}

// NewEnemy spawns an enemy at the given position with a randomized
// model and shoot phase, so a spawn wave doesn't fire in lockstep.
func NewEnemy(pos Vec3, rng *rand.Rand) *Enemy {
	e := &Enemy{
		Entity:     NewEntity(pos, enemyModels[rng.Intn(len(enemyModels))]),
		Health:     EnemyHealth,
		Points:     EnemyPoints,
		ShootTimer: rng.Float64() * EnemyShootInterval,
	}
	e.Radius = EnemyRadius
	return e
}

// Update integrates position, steers toward the target, ticks the
// shoot timer and applies the constant visual spin.
func (e *Enemy) Update(dt float64, target Vec3) {
	e.Entity.Update(dt)

	e.steerToward(target)
	e.ShootTimer -= dt
	e.Rotate(0, dt*EnemySpinSpeed, 0)
}

// steerToward sets velocity toward the target at fixed speed, or parks
// when inside the standoff distance.
func (e *Enemy) steerToward(target Vec3) {
	dir := target.Sub(e.Position)
	if dir.Length() > EnemyStandoff {
		e.Velocity = dir.Normalize().Scale(EnemySpeed)
	} else {
		e.Velocity = Vec3{}
	}
}

// CanShootAt reports whether the enemy fires at the target this tick.
// Combined check-and-reset: the shoot timer is reset only on success,
// and calling before the timer expires has no side effect.
func (e *Enemy) CanShootAt(target Vec3) bool {
	if e.ShootTimer <= 0 {
		if e.Position.DistanceTo(target) < EnemyShootRange {
			e.ShootTimer = EnemyShootInterval
			return true
		}
	}
	return false
}

// ShootDirection returns the normalized firing direction at the target
func (e *Enemy) ShootDirection(target Vec3) Vec3 {
	return target.Sub(e.Position).Normalize()
}

// TakeDamage reduces health and returns true if the enemy died from
// this hit. The caller credits score on a true return.
func (e *Enemy) TakeDamage(dmg int) bool {
	if !e.Alive {
		return false
	}
	e.Health -= dmg
	if e.Health <= 0 {
		e.Destroy()
		return true
	}
	return false
}

// Color returns the enemy render color
func (e *Enemy) Color() [3]float64 {
	return ColorEnemy
}
