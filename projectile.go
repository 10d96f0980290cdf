package main

import "math"

const (
	LaserSpeed       = 80.0 // units/s
	LaserLifetime    = 5.0  // seconds
	ProjectileRadius = 0.3
)

// Projectile owner tags
const (
	OwnerPlayer = "player"
	OwnerEnemy  = "enemy"
)

var (
	// ColorPlayerLaser / ColorEnemyLaser match their owners
	ColorPlayerLaser = [3]float64{0, 1, 0}
	ColorEnemyLaser  = [3]float64{1, 0, 0}
)

// Projectile is a timed kinetic bolt fired by the player or an enemy
type Projectile struct {
	Entity
	Owner     string
	Direction Vec3
	Age       float64
	Lifetime  float64
}

// NewProjectile fires a projectile from pos along dir. The direction
// is normalized and the visual rotation derived so the bolt's long
// axis lines up with its travel.
func NewProjectile(pos, dir Vec3, owner string) *Projectile {
	p := &Projectile{
		Entity:    NewEntity(pos, "laser"),
		Owner:     owner,
		Direction: dir.Normalize(),
		Lifetime:  LaserLifetime,
	}
	p.Radius = ProjectileRadius
	p.Velocity = p.Direction.Scale(LaserSpeed)
	p.alignToDirection()
	return p
}

// alignToDirection sets pitch/yaw from the travel direction
func (p *Projectile) alignToDirection() {
	if p.Direction.Length() == 0 {
		return
	}
	yaw := math.Atan2(p.Direction.X, p.Direction.Z)
	xzLen := math.Sqrt(p.Direction.X*p.Direction.X + p.Direction.Z*p.Direction.Z)
	pitch := math.Atan2(p.Direction.Y, xzLen)
	p.Rotation = [3]float64{pitch, yaw, 0}
}

// Update moves the projectile and self-destroys at end of life,
// independent of any collision.
func (p *Projectile) Update(dt float64) {
	p.Entity.Update(dt)

	p.Age += dt
	if p.Age >= p.Lifetime {
		p.Destroy()
	}
}

// IsPlayerOwned reports whether the player fired this projectile
func (p *Projectile) IsPlayerOwned() bool {
	return p.Owner == OwnerPlayer
}

// Color returns the laser color for the owner
func (p *Projectile) Color() [3]float64 {
	if p.Owner == OwnerPlayer {
		return ColorPlayerLaser
	}
	return ColorEnemyLaser
}
