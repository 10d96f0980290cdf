package main

const (
	PlayerRadius        = 2.0
	PlayerStartingLives = 3
	PlayerShootCooldown = 0.3 // seconds between shots
	PlayerSpeed         = 30.0
	PlayerStrafeSpeed   = 20.0
	DamageFlashDuration = 0.5
)

// ColorPlayer is the player's render color (green)
var ColorPlayer = [3]float64{0, 1, 0}

// Player is the pilot's ship. Its position follows the camera; the
// entity exists so the collision phase can treat it like everything else.
type Player struct {
	Entity
	Lives            int
	ShootCooldown    float64
	CanShoot         bool
	DamageFlashTimer float64
}

// NewPlayer creates a player at the given position
func NewPlayer(pos Vec3) *Player {
	p := &Player{
		Entity:   NewEntity(pos, "player_ship"),
		Lives:    PlayerStartingLives,
		CanShoot: true,
	}
	p.Radius = PlayerRadius
	return p
}

// Update integrates position and ticks the shoot/flash timers
func (p *Player) Update(dt float64) {
	p.Entity.Update(dt)

	if p.ShootCooldown > 0 {
		p.ShootCooldown -= dt
		if p.ShootCooldown <= 0 {
			p.CanShoot = true
		}
	}

	if p.DamageFlashTimer > 0 {
		p.DamageFlashTimer -= dt
	}
}

// Shoot attempts to fire. Returns true if a shot was fired; the caller
// spawns the projectile. No duplicate fire before the cooldown elapses.
func (p *Player) Shoot() bool {
	if p.CanShoot {
		p.CanShoot = false
		p.ShootCooldown = PlayerShootCooldown
		return true
	}
	return false
}

// TakeDamage removes a life and starts the damage flash. Destroys the
// player when lives reach zero. No-op on a dead player.
func (p *Player) TakeDamage() {
	if !p.Alive {
		return
	}
	p.Lives--
	p.DamageFlashTimer = DamageFlashDuration
	if p.Lives <= 0 {
		p.Destroy()
	}
}

// AddLife grants an extra life. No upper clamp.
func (p *Player) AddLife() {
	p.Lives++
}

// CooldownRatio returns the remaining cooldown as 0..1 for the HUD
func (p *Player) CooldownRatio() float64 {
	if p.ShootCooldown <= 0 {
		return 0
	}
	return p.ShootCooldown / PlayerShootCooldown
}

// Color returns the player's render color
func (p *Player) Color() [3]float64 {
	return ColorPlayer
}
