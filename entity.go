package main

// Entity holds the state shared by every simulated object. Variants
// embed it and layer their own behavior on top of the base Update.
type Entity struct {
	ID       string
	Position Vec3
	Velocity Vec3
	Rotation [3]float64 // radians per axis
	Scale    [3]float64 // render-only, not used for collision
	Alive    bool
	Radius   float64 // collision radius, fixed at construction
	Model    string  // opaque render-model handle for the client
}

// NewEntity creates a live entity at the given position
func NewEntity(pos Vec3, model string) Entity {
	return Entity{
		ID:       GenerateID(3),
		Position: pos,
		Scale:    [3]float64{1, 1, 1},
		Alive:    true,
		Radius:   1.0,
		Model:    model,
	}
}

// Update integrates position by velocity. Variant Update methods must
// call this before their own behavior.
func (e *Entity) Update(dt float64) {
	e.Position = e.Position.Add(e.Velocity.Scale(dt))
}

// Rotate adds to the current per-axis rotation
func (e *Entity) Rotate(drx, dry, drz float64) {
	e.Rotation[0] += drx
	e.Rotation[1] += dry
	e.Rotation[2] += drz
}

// Destroy marks the entity for purge. Idempotent.
func (e *Entity) Destroy() {
	e.Alive = false
}

// IsAlive reports whether the entity is still live
func (e *Entity) IsAlive() bool {
	return e.Alive
}

// GetRadius returns the collision radius
func (e *Entity) GetRadius() float64 {
	return e.Radius
}
