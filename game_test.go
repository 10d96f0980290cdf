package main

import (
	"math"
	"testing"
)

// newTestGame returns a deterministic game with the seeded obstacle
// field cleared, so scenarios control exactly what is in the world.
func newTestGame() *Game {
	g := NewGame(7)
	g.meteorites = nil
	return g
}

func TestNewGameSeedsWorld(t *testing.T) {
	g := NewGame(7)
	if len(g.meteorites) != MeteoriteCount {
		t.Errorf("expected %d meteorites, got %d", MeteoriteCount, len(g.meteorites))
	}
	if g.player.Lives != PlayerStartingLives {
		t.Errorf("expected %d lives, got %d", PlayerStartingLives, g.player.Lives)
	}
	if g.State() != StateRunning {
		t.Errorf("state = %v, want running", g.State())
	}
	if g.Score() != 0 {
		t.Errorf("score = %d, want 0", g.Score())
	}
}

func TestSameSeedSameWorld(t *testing.T) {
	a := NewGame(99)
	b := NewGame(99)
	for i := range a.meteorites {
		if a.meteorites[i].Position != b.meteorites[i].Position {
			t.Fatal("identical seeds should produce identical obstacle fields")
		}
		if a.meteorites[i].Size != b.meteorites[i].Size {
			t.Fatal("identical seeds should produce identical sizes")
		}
	}
}

func TestMeteoriteCollisionPenaltyAndPushBack(t *testing.T) {
	g := newTestGame()

	m := &Meteorite{Entity: NewEntity(g.player.Position.Add(Vec3{X: 1}), "meteorite"), Size: 3}
	m.Radius = m.Size * MeteoriteRadiusScale
	g.meteorites = append(g.meteorites, m)

	camBefore := g.camera.Position
	g.Step(0.001)

	if g.Score() != MeteoriteCollisionPenalty {
		t.Errorf("score = %d, want %d", g.Score(), MeteoriteCollisionPenalty)
	}
	if g.player.Position == camBefore {
		t.Error("player should be pushed away from the meteorite")
	}
	if g.camera.Position != g.player.Position {
		t.Error("camera must snap to the pushed player position")
	}
	if CheckCollision(&g.player.Entity, &m.Entity) {
		t.Error("one push-back should separate this pair")
	}
	if len(g.meteorites) != 1 {
		t.Error("meteorites are indestructible and must survive")
	}
}

func TestCoincidentMeteoriteConverges(t *testing.T) {
	g := newTestGame()

	m := &Meteorite{Entity: NewEntity(g.player.Position, "meteorite"), Size: 5}
	m.Radius = m.Size * MeteoriteRadiusScale
	g.meteorites = append(g.meteorites, m)

	// Radii sum to 8 so one 5-unit push is not enough. Repeated
	// resolution must separate the pair in a bounded number of steps.
	for i := 0; i < 5; i++ {
		g.handleCollisions()
	}
	if CheckCollision(&g.player.Entity, &m.Entity) {
		t.Errorf("pair still overlapping after bounded resolution, dist=%f",
			g.player.Position.DistanceTo(m.Position))
	}
}

func TestProjectileKillsEnemy(t *testing.T) {
	g := newTestGame()

	e := NewEnemy(Vec3{Z: -10}, g.rng)
	e.ShootTimer = 100 // keep it quiet
	g.enemies = append(g.enemies, e)
	g.projectiles = append(g.projectiles, NewProjectile(Vec3{Z: -10}, Vec3{0, 0, -1}, OwnerPlayer))

	g.Step(0.001)

	if g.Score() != EnemyPoints {
		t.Errorf("score = %d, want %d", g.Score(), EnemyPoints)
	}
	if g.kills != 1 {
		t.Errorf("kills = %d, want 1", g.kills)
	}
	if len(g.enemies) != 0 {
		t.Error("dead enemy should be purged")
	}
	if len(g.projectiles) != 0 {
		t.Error("spent projectile should be purged")
	}
}

func TestProjectileHitsAtMostOneEntity(t *testing.T) {
	g := newTestGame()

	// Two enemies stacked on one projectile: exactly one die
	e1 := NewEnemy(Vec3{Z: -10}, g.rng)
	e2 := NewEnemy(Vec3{Z: -10}, g.rng)
	e1.ShootTimer, e2.ShootTimer = 100, 100
	g.enemies = append(g.enemies, e1, e2)
	g.projectiles = append(g.projectiles, NewProjectile(Vec3{Z: -10}, Vec3{0, 0, -1}, OwnerPlayer))

	g.Step(0.001)

	if g.Score() != EnemyPoints {
		t.Errorf("score = %d, want %d from a single kill", g.Score(), EnemyPoints)
	}
	if len(g.enemies) != 1 {
		t.Errorf("surviving enemies = %d, want 1", len(g.enemies))
	}
}

func TestSphereCollectByContact(t *testing.T) {
	g := newTestGame()
	g.lifeSpheres = append(g.lifeSpheres, NewLifeSphere(g.camera.Position))

	g.Step(0.001)

	if g.player.Lives != PlayerStartingLives+1 {
		t.Errorf("lives = %d, want %d", g.player.Lives, PlayerStartingLives+1)
	}
	if len(g.lifeSpheres) != 0 {
		t.Error("collected sphere should be purged")
	}
	if g.spheres != 1 {
		t.Errorf("sphere counter = %d, want 1", g.spheres)
	}
}

func TestSphereCollectByProjectile(t *testing.T) {
	g := newTestGame()
	g.lifeSpheres = append(g.lifeSpheres, NewLifeSphere(Vec3{Z: -20}))
	g.projectiles = append(g.projectiles, NewProjectile(Vec3{Z: -20}, Vec3{0, 0, -1}, OwnerPlayer))

	g.Step(0.001)

	// Shooting a sphere credits the life exactly like flying into it
	if g.player.Lives != PlayerStartingLives+1 {
		t.Errorf("lives = %d, want %d", g.player.Lives, PlayerStartingLives+1)
	}
	if len(g.lifeSpheres) != 0 || len(g.projectiles) != 0 {
		t.Error("sphere and projectile should both be purged")
	}
}

func TestEnemyContactDamagesPlayer(t *testing.T) {
	g := newTestGame()
	e := NewEnemy(g.camera.Position, g.rng)
	e.ShootTimer = 100
	g.enemies = append(g.enemies, e)

	g.Step(0.001)

	if g.player.Lives != PlayerStartingLives-1 {
		t.Errorf("lives = %d, want %d", g.player.Lives, PlayerStartingLives-1)
	}
	if len(g.enemies) != 0 {
		t.Error("ramming enemy should be destroyed on contact")
	}
	if g.player.DamageFlashTimer <= 0 {
		t.Error("contact damage should start the flash")
	}
}

func TestEnemyLaserDamagesPlayer(t *testing.T) {
	g := newTestGame()
	g.projectiles = append(g.projectiles, NewProjectile(g.camera.Position, Vec3{0, 0, 1}, OwnerEnemy))

	g.Step(0.0001)

	if g.player.Lives != PlayerStartingLives-1 {
		t.Errorf("lives = %d, want %d", g.player.Lives, PlayerStartingLives-1)
	}
	if len(g.projectiles) != 0 {
		t.Error("impacting laser should be purged")
	}
}

func TestGameOverTransition(t *testing.T) {
	g := newTestGame()
	g.player.Lives = 1
	e := NewEnemy(g.camera.Position, g.rng)
	e.ShootTimer = 100
	g.enemies = append(g.enemies, e)

	g.Step(0.001)

	if g.State() != StateGameOver {
		t.Errorf("state = %v, want gameover", g.State())
	}

	// Game over is terminal: pause cannot leave it
	g.TogglePause()
	if g.State() != StateGameOver {
		t.Error("pause must not resurrect a finished run")
	}

	// And the world is frozen
	scoreBefore := g.Score()
	g.Step(1.0)
	if g.Score() != scoreBefore {
		t.Error("no scoring after game over")
	}
}

func TestZeroDtStepIsNoOp(t *testing.T) {
	g := NewGame(7)
	g.lifeSpheres = append(g.lifeSpheres, NewLifeSphere(Vec3{Z: -40}))
	g.Step(0.25)

	positions := make([]Vec3, len(g.meteorites))
	for i, m := range g.meteorites {
		positions[i] = m.Position
	}
	spherePos := g.lifeSpheres[0].Position
	score := g.Score()
	elapsed := g.elapsed

	for i := 0; i < 10; i++ {
		g.Step(0)
	}

	if g.Score() != score {
		t.Error("score changed across zero-dt steps")
	}
	for i, m := range g.meteorites {
		if m.Position != positions[i] {
			t.Errorf("meteorite %d moved with dt=0", i)
		}
	}
	if g.lifeSpheres[0].Position != spherePos {
		t.Errorf("life sphere moved with dt=0: %v -> %v",
			spherePos, g.lifeSpheres[0].Position)
	}
	if g.elapsed != elapsed {
		t.Errorf("elapsed = %f, want %f", g.elapsed, elapsed)
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := NewGame(7)
	g.TogglePause()
	if g.State() != StatePaused {
		t.Fatalf("state = %v, want paused", g.State())
	}

	positions := make([]Vec3, len(g.meteorites))
	for i, m := range g.meteorites {
		positions[i] = m.Position
	}
	tickBefore := g.tick

	g.Step(1.0)

	for i, m := range g.meteorites {
		if m.Position != positions[i] {
			t.Errorf("meteorite %d moved while paused", i)
		}
	}
	if g.tick != tickBefore+1 {
		t.Error("ticks still count while paused")
	}
	if g.elapsed != 0 {
		t.Error("run time must not advance while paused")
	}

	g.TogglePause()
	if g.State() != StateRunning {
		t.Error("unpause should resume")
	}
}

func TestRestartIsHardReset(t *testing.T) {
	g := NewGame(7)
	g.score = 12
	g.player.Lives = 1
	g.enemies = append(g.enemies, NewEnemy(Vec3{Z: -50}, g.rng))
	g.projectiles = append(g.projectiles, NewProjectile(Vec3{}, Vec3{0, 0, -1}, OwnerPlayer))
	firstRunID := g.runID

	g.Restart()

	if g.Score() != 0 {
		t.Errorf("score = %d, want 0", g.Score())
	}
	if g.player.Lives != PlayerStartingLives {
		t.Errorf("lives = %d, want %d", g.player.Lives, PlayerStartingLives)
	}
	if len(g.enemies) != 0 || len(g.projectiles) != 0 || len(g.lifeSpheres) != 0 {
		t.Error("restart must clear every entity collection")
	}
	if len(g.meteorites) != MeteoriteCount {
		t.Error("restart must reseed the obstacle field")
	}
	if g.runID == firstRunID {
		t.Error("restart should mint a new run ID")
	}
	if g.State() != StateRunning {
		t.Error("restart should resume running")
	}
}

func TestSpawnTimers(t *testing.T) {
	g := newTestGame()

	g.Step(EnemySpawnInterval)
	if len(g.enemies) != 1 {
		t.Errorf("enemies after %vs = %d, want 1", float64(EnemySpawnInterval), len(g.enemies))
	}
	if g.enemySpawnTimer != 0 {
		t.Errorf("enemy spawn timer = %f, want reset to 0", g.enemySpawnTimer)
	}
	if len(g.lifeSpheres) != 0 {
		t.Error("sphere timer should not have expired yet")
	}

	// Drop the fresh enemy so it cannot interfere, then reach the
	// sphere interval
	g.enemies = nil
	g.Step(LifeSphereSpawnInterval - EnemySpawnInterval)
	if len(g.lifeSpheres) != 1 {
		t.Errorf("spheres = %d, want 1", len(g.lifeSpheres))
	}
}

func TestFireInputSpawnsOneProjectile(t *testing.T) {
	g := newTestGame()

	g.HandleInput(ClientInput{Fire: true})
	g.Step(0.016)

	if len(g.projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(g.projectiles))
	}
	p := g.projectiles[0]
	if !p.IsPlayerOwned() {
		t.Error("fired laser should be player-owned")
	}

	// Cooldown: an immediate second fire does nothing
	g.HandleInput(ClientInput{Fire: true})
	g.Step(0.016)
	if len(g.projectiles) != 1 {
		t.Errorf("projectiles = %d, want still 1 inside cooldown", len(g.projectiles))
	}
}

func TestMouseLookAppliesImmediately(t *testing.T) {
	g := newTestGame()
	yaw := g.camera.Yaw

	g.HandleInput(ClientInput{MouseDX: 10})

	want := yaw + 10*MouseSensitivity
	if math.Abs(g.camera.Yaw-want) > 1e-9 {
		t.Errorf("yaw = %f, want %f before any Step", g.camera.Yaw, want)
	}
}

func TestInputIgnoredWhilePaused(t *testing.T) {
	g := newTestGame()
	g.TogglePause()

	yaw := g.camera.Yaw
	g.HandleInput(ClientInput{MouseDX: 50, Fire: true})

	if g.camera.Yaw != yaw {
		t.Error("mouse look must not act while paused")
	}
	g.TogglePause()
	g.Step(0.016)
	if len(g.projectiles) != 0 {
		t.Error("fire pressed while paused must not queue a shot")
	}
}

func TestMovementInput(t *testing.T) {
	g := newTestGame()

	g.HandleInput(ClientInput{Forward: true})
	g.Step(1.0)

	// Default camera looks down -Z
	if math.Abs(g.camera.Position.Z-(5-PlayerSpeed)) > 1e-6 {
		t.Errorf("camera z = %f, want %f", g.camera.Position.Z, 5-float64(PlayerSpeed))
	}
	if g.player.Position != g.camera.Position {
		t.Error("player must ride the camera")
	}
}

func TestSnapshotContents(t *testing.T) {
	g := newTestGame()
	e := NewEnemy(Vec3{Z: -50}, g.rng)
	e.ShootTimer = 100
	g.enemies = append(g.enemies, e)
	g.lifeSpheres = append(g.lifeSpheres, NewLifeSphere(Vec3{Z: -40}))

	g.Step(0.016)
	snap := g.Snapshot()

	if snap.State != "running" {
		t.Errorf("snapshot state = %q, want running", snap.State)
	}
	if len(snap.Entities) != 2 {
		t.Fatalf("snapshot entities = %d, want 2", len(snap.Entities))
	}
	if snap.Player.Lives != PlayerStartingLives {
		t.Errorf("snapshot lives = %d, want %d", snap.Player.Lives, PlayerStartingLives)
	}
	if snap.Entities[0].Color != ColorEnemy {
		t.Error("enemy snapshot should carry the enemy color")
	}
	if snap.Entities[0].Model == "" {
		t.Error("snapshot entities need a render-model handle")
	}
}

func TestSnapshotProjectionTracksViewport(t *testing.T) {
	g := newTestGame()

	snap := g.Snapshot()
	if got := snap.Camera.Proj.At(1, 1) / snap.Camera.Proj.At(0, 0); math.Abs(got-DefaultAspect) > 1e-9 {
		t.Errorf("default projection aspect = %f, want %f", got, float64(DefaultAspect))
	}

	g.SetViewport(800, 600)
	snap = g.Snapshot()
	proj := snap.Camera.Proj
	if got := proj.At(1, 1) / proj.At(0, 0); math.Abs(got-800.0/600.0) > 1e-9 {
		t.Errorf("projection aspect = %f, want %f", got, 800.0/600.0)
	}
	want := 1.0 / math.Tan(CameraFOV*math.Pi/180.0/2.0)
	if math.Abs(proj.At(1, 1)-want) > 1e-9 {
		t.Errorf("projection focal = %f, want %f", proj.At(1, 1), want)
	}

	// Degenerate dimensions leave the viewport untouched
	g.SetViewport(0, -1)
	snap = g.Snapshot()
	if got := snap.Camera.Proj.At(1, 1) / snap.Camera.Proj.At(0, 0); math.Abs(got-800.0/600.0) > 1e-9 {
		t.Errorf("aspect changed on degenerate resize: %f", got)
	}
}

func TestRunStats(t *testing.T) {
	g := newTestGame()
	e := NewEnemy(Vec3{Z: -10}, g.rng)
	e.ShootTimer = 100
	g.enemies = append(g.enemies, e)
	g.projectiles = append(g.projectiles, NewProjectile(Vec3{Z: -10}, Vec3{0, 0, -1}, OwnerPlayer))

	g.Step(0.001)
	g.Step(0.001)

	score, duration, kills, spheres := g.RunStats()
	if score != 1 || kills != 1 || spheres != 0 {
		t.Errorf("stats = score %d kills %d spheres %d, want 1/1/0", score, kills, spheres)
	}
	if math.Abs(duration-0.002) > 1e-12 {
		t.Errorf("duration = %f, want 0.002", duration)
	}
}
