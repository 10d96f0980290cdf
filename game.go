package main

import (
	"math/rand"
	"sync"
	"time"
)

const (
	TickRate     = 60 // simulation ticks per second
	TickDuration = time.Second / TickRate

	WorldSize                 = 200.0
	MeteoriteCount            = 10
	EnemySpawnDistance        = 100.0
	EnemySpawnInterval        = 3.0 // seconds
	LifeSphereSpawnDistance   = 70.0
	LifeSphereSpawnInterval   = 10.0 // seconds
	MeteoriteCollisionPenalty = -1

	DefaultAspect = 16.0 / 9.0 // until the client reports its viewport

	maxProjectiles = 500
)

// RunState is the orchestrator's top-level mode
type RunState int

const (
	StateRunning RunState = iota
	StatePaused
	StateGameOver
)

func (s RunState) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "running"
	}
}

// InputState is the held-key state sampled each tick
type InputState struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
}

// Game owns every entity collection and is their sole mutator. One
// Game is one pilot's run; all per-frame work happens inside Step
// under the mutex, so entities never reach back into the orchestrator.
type Game struct {
	mu  sync.Mutex
	rng *rand.Rand

	player *Player
	camera *Camera
	anim   *ShipAnim
	aspect float64 // viewport width/height, survives restarts

	enemies     []*Enemy
	meteorites  []*Meteorite
	lifeSpheres []*LifeSphere
	projectiles []*Projectile

	enemySpawnTimer  float64
	sphereSpawnTimer float64

	score   int
	state   RunState
	tick    uint64
	kills   int
	spheres int

	input       InputState
	pendingFire bool

	events  *Analytics // optional, may be nil
	runID   string
	elapsed float64 // run time in seconds, for run records

	running bool
	stop    chan struct{}
	onState func(GameState) // snapshot consumer, set once before Run
}

// NewGame creates a run seeded with the initial meteorite field. The
// seed drives every random decision, so tests replay deterministically.
func NewGame(seed int64) *Game {
	g := &Game{
		rng:    rand.New(rand.NewSource(seed)),
		aspect: DefaultAspect,
		stop:   make(chan struct{}),
	}
	g.reset()
	return g
}

// SetAnalytics attaches the async event recorder
func (g *Game) SetAnalytics(a *Analytics) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = a
}

// SetStateHandler registers the per-tick snapshot consumer
func (g *Game) SetStateHandler(fn func(GameState)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onState = fn
}

// reset builds the initial world. Callers hold the mutex (or own the
// game exclusively, as in NewGame).
func (g *Game) reset() {
	g.player = NewPlayer(Vec3{})
	g.camera = NewCamera(Vec3{Z: 5})
	g.anim = NewShipAnim(g.camera)

	g.enemies = nil
	g.meteorites = nil
	g.lifeSpheres = nil
	g.projectiles = nil

	g.enemySpawnTimer = 0
	g.sphereSpawnTimer = 0
	g.score = 0
	g.kills = 0
	g.spheres = 0
	g.state = StateRunning
	g.input = InputState{}
	g.pendingFire = false
	g.elapsed = 0
	g.runID = GenerateUUID()

	g.seedMeteorites()

	if g.events != nil {
		g.events.Track(EvtRunStart, g.runID, "")
	}
}

// seedMeteorites scatters the initial obstacle field ahead of the player
func (g *Game) seedMeteorites() {
	for i := 0; i < MeteoriteCount; i++ {
		pos := Vec3{
			X: g.uniform(-WorldSize/2, WorldSize/2),
			Y: g.uniform(-WorldSize/4, WorldSize/4),
			Z: g.uniform(-WorldSize, -20),
		}
		g.meteorites = append(g.meteorites, NewMeteorite(pos, g.rng))
	}
}

func (g *Game) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

// Run drives the game loop until Stop. dt is the wall-clock elapsed
// time since the previous tick, the single time unit for every timer.
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(last).Seconds()
			last = now

			g.Step(dt)

			g.mu.Lock()
			handler := g.onState
			g.mu.Unlock()
			if handler != nil {
				handler(g.Snapshot())
			}
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the game loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// HandleInput applies an input message. Mouse-look mutates the camera
// immediately; held keys and the fire intent are consumed next Step.
// Movement input is ignored outside the Running state, but the message
// itself is always accepted (pause/quit stay live).
func (g *Game) HandleInput(in ClientInput) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateRunning {
		return
	}

	if in.MouseDX != 0 || in.MouseDY != 0 {
		g.camera.ProcessMouse(in.MouseDX*MouseSensitivity, -in.MouseDY*MouseSensitivity)
	}

	g.input = InputState{
		Forward:     in.Forward,
		Backward:    in.Backward,
		StrafeLeft:  in.StrafeLeft,
		StrafeRight: in.StrafeRight,
	}
	if in.Fire {
		g.pendingFire = true
	}
}

// SetViewport records the client's viewport so snapshots carry a
// matching projection matrix. Degenerate dimensions are ignored.
func (g *Game) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.aspect = float64(w) / float64(h)
}

// TogglePause flips Running <-> Paused. GameOver is terminal and
// unaffected.
func (g *Game) TogglePause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.state {
	case StateRunning:
		g.state = StatePaused
	case StatePaused:
		g.state = StateRunning
	}
}

// Restart hard-resets the run: collections cleared, timers zeroed,
// player and camera rebuilt, obstacles reseeded. No carry-over.
func (g *Game) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

// Step advances one tick. While paused or after game over the update,
// spawn and collision phases are skipped entirely.
func (g *Game) Step(dt float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	if g.state != StateRunning {
		return
	}
	g.elapsed += dt

	g.applyMovement(dt)
	g.anim.Update(dt, g.camera, g.input.StrafeLeft, g.input.StrafeRight)

	g.player.Update(dt)
	if g.pendingFire {
		g.pendingFire = false
		g.shootPlayerLaser()
	}

	for _, e := range g.enemies {
		e.Update(dt, g.player.Position)
		if e.CanShootAt(g.player.Position) {
			g.shootEnemyLaser(e)
		}
	}
	for _, m := range g.meteorites {
		m.Update(dt)
	}
	for _, s := range g.lifeSpheres {
		s.Update(dt)
	}
	for _, p := range g.projectiles {
		p.Update(dt)
	}

	g.updateSpawning(dt)
	g.handleCollisions()
	g.cleanup()
}

// applyMovement moves the camera from held keys and snaps the player
// to it; the ship is the camera in this cockpit view.
func (g *Game) applyMovement(dt float64) {
	if g.input.Forward {
		g.camera.MoveForward(PlayerSpeed * dt)
	}
	if g.input.Backward {
		g.camera.MoveBackward(PlayerSpeed * dt)
	}
	if g.input.StrafeLeft {
		g.camera.MoveLeft(PlayerStrafeSpeed * dt)
	}
	if g.input.StrafeRight {
		g.camera.MoveRight(PlayerStrafeSpeed * dt)
	}
	g.player.Position = g.camera.Position
}

func (g *Game) shootPlayerLaser() {
	if len(g.projectiles) >= maxProjectiles {
		return
	}
	if g.player.Shoot() {
		dir := g.camera.ForwardVector()
		pos := g.camera.Position.Add(dir.Scale(2))
		g.projectiles = append(g.projectiles, NewProjectile(pos, dir, OwnerPlayer))
	}
}

func (g *Game) shootEnemyLaser(e *Enemy) {
	if len(g.projectiles) >= maxProjectiles {
		return
	}
	dir := e.ShootDirection(g.player.Position)
	g.projectiles = append(g.projectiles, NewProjectile(e.Position, dir, OwnerEnemy))
}

// updateSpawning ticks the spawn timers and spawns on expiry
func (g *Game) updateSpawning(dt float64) {
	g.enemySpawnTimer += dt
	if g.enemySpawnTimer >= EnemySpawnInterval {
		g.enemySpawnTimer = 0
		g.spawnEnemy()
	}

	g.sphereSpawnTimer += dt
	if g.sphereSpawnTimer >= LifeSphereSpawnInterval {
		g.sphereSpawnTimer = 0
		g.spawnLifeSphere()
	}
}

// spawnEnemy places a new enemy ahead of the camera
func (g *Game) spawnEnemy() {
	pos := Vec3{
		X: g.camera.Position.X + EnemySpawnDistance*g.uniform(-0.5, 0.5),
		Y: g.camera.Position.Y + g.uniform(-10, 10),
		Z: g.camera.Position.Z - EnemySpawnDistance,
	}
	g.enemies = append(g.enemies, NewEnemy(pos, g.rng))
}

// spawnLifeSphere places a pickup ahead of the camera
func (g *Game) spawnLifeSphere() {
	pos := Vec3{
		X: g.camera.Position.X + g.uniform(-30, 30),
		Y: g.camera.Position.Y + g.uniform(-20, 20),
		Z: g.camera.Position.Z - g.uniform(30, LifeSphereSpawnDistance),
	}
	g.lifeSpheres = append(g.lifeSpheres, NewLifeSphere(pos))
}

// handleCollisions resolves every entity pair in fixed order. The
// order is load-bearing: each phase sees the effects of the previous
// one, and the player's death is only evaluated after all of them.
func (g *Game) handleCollisions() {
	// Player vs meteorites: score penalty and push-back, camera
	// snapped so the view never drifts from the ship.
	for _, m := range g.meteorites {
		if CheckCollision(&g.player.Entity, &m.Entity) {
			g.score += MeteoriteCollisionPenalty
			ResolveCollision(&g.player.Entity, &m.Entity, CollisionPushBack)
			g.camera.Position = g.player.Position
			g.trackEvent(EvtMeteoriteHit)
		}
	}

	// Player vs life spheres
	for _, s := range g.lifeSpheres {
		if s.Alive && CheckCollision(&g.player.Entity, &s.Entity) {
			g.player.AddLife()
			s.Collect()
			g.spheres++
			g.trackEvent(EvtSphereCollected)
		}
	}

	// Player vs enemies: contact always kills the enemy
	for _, e := range g.enemies {
		if e.Alive && CheckCollision(&g.player.Entity, &e.Entity) {
			g.player.TakeDamage()
			e.Destroy()
		}
	}

	// Projectiles. A projectile interacts with at most one entity per
	// frame: once destroyed it skips every remaining list.
	for _, p := range g.projectiles {
		if !p.Alive {
			continue
		}
		if p.IsPlayerOwned() {
			for _, e := range g.enemies {
				if !e.Alive {
					continue
				}
				if CheckCollision(&p.Entity, &e.Entity) {
					died := e.TakeDamage(1)
					p.Destroy()
					if died {
						g.score += e.Points
						g.kills++
						g.trackEvent(EvtEnemyKilled)
					}
					break
				}
			}
			if !p.Alive {
				continue
			}
			for _, s := range g.lifeSpheres {
				if !s.Alive {
					continue
				}
				if CheckCollision(&p.Entity, &s.Entity) {
					g.player.AddLife()
					s.Collect()
					p.Destroy()
					g.spheres++
					g.trackEvent(EvtSphereCollected)
					break
				}
			}
			if !p.Alive {
				continue
			}
			for _, m := range g.meteorites {
				if CheckCollision(&p.Entity, &m.Entity) {
					p.Destroy()
					break
				}
			}
		} else {
			if g.player.Alive && CheckCollision(&p.Entity, &g.player.Entity) {
				g.player.TakeDamage()
				p.Destroy()
			}
			if !p.Alive {
				continue
			}
			for _, m := range g.meteorites {
				if CheckCollision(&p.Entity, &m.Entity) {
					p.Destroy()
					break
				}
			}
		}
	}

	if !g.player.IsAlive() && g.state != StateGameOver {
		g.state = StateGameOver
		if g.events != nil {
			g.events.TrackRunEnd(g.runID, g.score, g.elapsed)
		}
	}
}

// cleanup purges dead entities once per frame, after all resolution.
// Never during iteration: collision phases only flip alive flags.
func (g *Game) cleanup() {
	g.enemies = filterEnemies(g.enemies)
	g.lifeSpheres = filterSpheres(g.lifeSpheres)
	g.projectiles = filterProjectiles(g.projectiles)
}

func filterEnemies(in []*Enemy) []*Enemy {
	out := in[:0]
	for _, e := range in {
		if e.Alive {
			out = append(out, e)
		}
	}
	return out
}

func filterSpheres(in []*LifeSphere) []*LifeSphere {
	out := in[:0]
	for _, s := range in {
		if s.Alive {
			out = append(out, s)
		}
	}
	return out
}

func filterProjectiles(in []*Projectile) []*Projectile {
	out := in[:0]
	for _, p := range in {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}

func (g *Game) trackEvent(evt string) {
	if g.events != nil {
		g.events.Track(evt, g.runID, "")
	}
}

// RunStats returns the final numbers used for the run record
func (g *Game) RunStats() (score int, duration float64, kills, spheres int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score, g.elapsed, g.kills, g.spheres
}

// Score returns the current score
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// State returns the current run-state
func (g *Game) State() RunState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Snapshot builds the read-only per-frame state for the renderer
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	gs := GameState{
		Tick:  g.tick,
		Score: g.score,
		State: g.state.String(),
		Ship: ShipAnimState{
			Roll:        g.anim.Roll,
			PitchOffset: g.anim.PitchOffset,
			Sway:        g.anim.Sway,
		},
		Player: PlayerState{
			Pos:           vecState(g.player.Position),
			Lives:         g.player.Lives,
			CooldownRatio: g.player.CooldownRatio(),
			DamageFlash:   g.player.DamageFlashTimer,
			Alive:         g.player.Alive,
		},
		Camera: CameraState{
			Yaw:   g.camera.Yaw,
			Pitch: g.camera.Pitch,
			Front: vecState(g.camera.Front),
			View:  g.camera.ViewMatrix(),
			Proj:  g.camera.ProjectionMatrix(g.aspect),
		},
	}

	for _, e := range g.enemies {
		gs.Entities = append(gs.Entities, entityState(&e.Entity, e.Color()))
	}
	for _, m := range g.meteorites {
		gs.Entities = append(gs.Entities, entityState(&m.Entity, m.Color()))
	}
	for _, s := range g.lifeSpheres {
		gs.Entities = append(gs.Entities, entityState(&s.Entity, s.Color()))
	}
	for _, p := range g.projectiles {
		gs.Entities = append(gs.Entities, entityState(&p.Entity, p.Color()))
	}
	return gs
}

// RunID returns the identifier of the current run
func (g *Game) RunID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.runID
}
