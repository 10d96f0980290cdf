package main

import "encoding/json"

// Client -> server message types
const (
	MsgStart    = "start" // begin a run (optional pilot name/token)
	MsgInput    = "input"
	MsgPause    = "pause" // toggle pause
	MsgRestart  = "restart"
	MsgRegister = "register"
	MsgLogin    = "login"
	MsgAuth     = "auth"   // resume with a session token
	MsgResize   = "resize" // viewport dimensions changed
	MsgScores   = "scores"
)

// Server -> client message types
const (
	MsgWelcome     = "welcome"
	MsgState       = "state" // msgpack binary frame
	MsgGameOver    = "gameover"
	MsgAuthOK      = "auth_ok"
	MsgHighScore   = "highscores"
	MsgAchievement = "achievements"
	MsgError       = "error"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids
// double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput carries the held-key state, accumulated mouse deltas and
// the fire intent. Sent every client frame.
type ClientInput struct {
	Forward     bool    `json:"f,omitempty"`
	Backward    bool    `json:"b,omitempty"`
	StrafeLeft  bool    `json:"l,omitempty"`
	StrafeRight bool    `json:"r,omitempty"`
	MouseDX     float64 `json:"mx,omitempty"`
	MouseDY     float64 `json:"my,omitempty"`
	Fire        bool    `json:"fi,omitempty"`
}

// ResizeMsg reports new viewport dimensions in pixels
type ResizeMsg struct {
	W int `json:"w"`
	H int `json:"h"`
}

// StartMsg begins a run
type StartMsg struct {
	Name  string `json:"name,omitempty"`
	Token string `json:"token,omitempty"`
}

// RegisterMsg / LoginMsg / AuthMsg are the pilot account messages
type RegisterMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

type LoginMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms registration/login with a session token
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PilotID  int64  `json:"pid"`
}

// WelcomeMsg is sent once after start
type WelcomeMsg struct {
	RunID string `json:"rid"`
	Seed  int64  `json:"seed"`
}

// Vec3State is a position/direction triple in the snapshot
type Vec3State struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// EntityState is one live entity in the snapshot: pose, scale, color
// and the render-model handle the client resolves to a mesh.
type EntityState struct {
	ID    string     `json:"id" msgpack:"id"`
	Pos   Vec3State  `json:"p" msgpack:"p"`
	Rot   [3]float64 `json:"r" msgpack:"r"`
	Scale [3]float64 `json:"s" msgpack:"s"`
	Color [3]float64 `json:"c" msgpack:"c"`
	Model string     `json:"m" msgpack:"m"`
}

// PlayerState is the HUD view of the player
type PlayerState struct {
	Pos           Vec3State `json:"p" msgpack:"p"`
	Lives         int       `json:"li" msgpack:"li"`
	CooldownRatio float64   `json:"cd" msgpack:"cd"` // 0..1
	DamageFlash   float64   `json:"df" msgpack:"df"`
	Alive         bool      `json:"a" msgpack:"a"`
}

// CameraState is the view pose, with ready view and projection matrices
type CameraState struct {
	Yaw   float64   `json:"yw" msgpack:"yw"`
	Pitch float64   `json:"pt" msgpack:"pt"`
	Front Vec3State `json:"fr" msgpack:"fr"`
	View  Mat4      `json:"v" msgpack:"v"`
	Proj  Mat4      `json:"pj" msgpack:"pj"`
}

// ShipAnimState carries the camera-derived cockpit animation scalars
type ShipAnimState struct {
	Roll        float64 `json:"ro" msgpack:"ro"`
	PitchOffset float64 `json:"po" msgpack:"po"`
	Sway        float64 `json:"sw" msgpack:"sw"`
}

// GameState is the full per-tick snapshot handed to the renderer
type GameState struct {
	Tick     uint64        `json:"tick" msgpack:"tick"`
	Score    int           `json:"sc" msgpack:"sc"`
	State    string        `json:"st" msgpack:"st"`
	Entities []EntityState `json:"e" msgpack:"e"`
	Player   PlayerState   `json:"pl" msgpack:"pl"`
	Camera   CameraState   `json:"cam" msgpack:"cam"`
	Ship     ShipAnimState `json:"ship" msgpack:"ship"`
}

// GameOverMsg reports the final score
type GameOverMsg struct {
	Score    int     `json:"score"`
	Duration float64 `json:"duration"`
}

// HighScoreEntry is one leaderboard row
type HighScoreEntry struct {
	Rank     int     `json:"rank"`
	Pilot    string  `json:"pilot"`
	Score    int     `json:"score"`
	Duration float64 `json:"duration"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

func vecState(v Vec3) Vec3State {
	return Vec3State{X: v.X, Y: v.Y, Z: v.Z}
}

func entityState(e *Entity, color [3]float64) EntityState {
	return EntityState{
		ID:    e.ID,
		Pos:   vecState(e.Position),
		Rot:   e.Rotation,
		Scale: e.Scale,
		Color: color,
		Model: e.Model,
	}
}
