package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120
)

// Client represents a WebSocket connection. Each client owns its own
// Game: one connection, one pilot, one run at a time.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string
	msgCount   int
	msgResetAt time.Time

	game     *Game
	lastSent string // run state of the previous snapshot, for the gameover edge

	// Auth state
	authPilotID  int64  // 0 = unauthenticated/guest
	authUsername string // "" = unauthenticated
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		// Binary input messages: 6 bytes [0x01, flags, dx_hi, dx_lo, dy_hi, dy_lo]
		if msgType == websocket.BinaryMessage && len(message) == 6 && message[0] == 0x01 {
			c.handleBinaryInput(message)
		} else {
			c.handleMessage(message)
		}
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message
// Prefixes with 0xFF marker byte so WritePump can distinguish from text
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF // binary marker
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgStart:
		c.handleStart(env.D)
	case MsgInput:
		c.handleInput(env.D)
	case MsgPause:
		c.handlePause()
	case MsgRestart:
		c.handleRestart()
	case MsgResize:
		c.handleResize(env.D)
	case MsgRegister:
		c.handleRegister(env.D)
	case MsgLogin:
		c.handleLogin(env.D)
	case MsgAuth:
		c.handleAuth(env.D)
	case MsgScores:
		c.handleScores()
	}
}

// handleStart creates this connection's Game and begins the run
func (c *Client) handleStart(data json.RawMessage) {
	var msg StartMsg
	if len(data) > 0 {
		json.Unmarshal(data, &msg)
	}
	if msg.Token != "" && c.hub.auth != nil {
		if id, username, err := c.hub.auth.ValidateToken(msg.Token); err == nil {
			c.authPilotID = id
			c.authUsername = username
		}
	}
	if c.game != nil {
		c.game.Stop()
	}

	seed := time.Now().UnixNano()
	game := NewGame(seed)
	game.SetAnalytics(c.hub.analytics)
	game.SetStateHandler(c.pushState)
	c.game = game
	c.lastSent = StateRunning.String()

	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{RunID: game.RunID(), Seed: seed}})
	go game.Run()
}

// pushState ships one snapshot to the renderer as a msgpack binary
// frame, and emits the gameover envelope on the running->gameover edge.
func (c *Client) pushState(state GameState) {
	data, err := msgpack.Marshal(&state)
	if err != nil {
		log.Printf("msgpack marshal error: %v", err)
		return
	}
	c.SendBinary(data)

	if state.State == "gameover" && c.lastSent != "gameover" {
		c.finishRun()
	}
	c.lastSent = state.State
}

// finishRun records the run and reports the final score
func (c *Client) finishRun() {
	if c.game == nil {
		return
	}
	score, duration, kills, spheres := c.game.RunStats()
	c.SendJSON(Envelope{T: MsgGameOver, Data: GameOverMsg{Score: score, Duration: duration}})
	if c.hub.db != nil {
		if _, err := c.hub.db.RecordRun(c.authPilotID, score, duration, kills, spheres); err != nil {
			log.Printf("record run: %v", err)
		}
		if newly := CheckAchievements(c.hub.db, c.authPilotID, score, kills, spheres, duration); len(newly) > 0 {
			c.SendJSON(Envelope{T: MsgAchievement, Data: newly})
		}
	}
}

// handleBinaryInput decodes a compact 6-byte binary input message
func (c *Client) handleBinaryInput(msg []byte) {
	if c.game == nil {
		return
	}
	// Decode: [0x01, flags, dx_hi, dx_lo, dy_hi, dy_lo]
	flags := msg[1]
	dx := float64(int16(uint16(msg[2])<<8 | uint16(msg[3])))
	dy := float64(int16(uint16(msg[4])<<8 | uint16(msg[5])))

	c.game.HandleInput(ClientInput{
		Forward:     flags&0x01 != 0,
		Backward:    flags&0x02 != 0,
		StrafeLeft:  flags&0x04 != 0,
		StrafeRight: flags&0x08 != 0,
		Fire:        flags&0x10 != 0,
		MouseDX:     dx,
		MouseDY:     dy,
	})
}

func (c *Client) handleInput(data json.RawMessage) {
	if c.game == nil {
		return
	}
	var input ClientInput
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	c.game.HandleInput(input)
}

func (c *Client) handlePause() {
	if c.game == nil {
		return
	}
	c.game.TogglePause()
}

func (c *Client) handleRestart() {
	if c.game == nil {
		return
	}
	c.game.Restart()
	c.lastSent = StateRunning.String()
}

func (c *Client) handleResize(data json.RawMessage) {
	if c.game == nil {
		return
	}
	var msg ResizeMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	c.game.SetViewport(msg.W, msg.H)
}

func (c *Client) handleRegister(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg RegisterMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Register(msg.Username, msg.Password)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authPilotID = id
	c.authUsername = msg.Username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{
		Token:    token,
		Username: msg.Username,
		PilotID:  id,
	}})
}

func (c *Client) handleLogin(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg LoginMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Login(msg.Username, msg.Password, c.remoteAddr)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authPilotID = id
	c.authUsername = msg.Username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{
		Token:    token,
		Username: msg.Username,
		PilotID:  id,
	}})
}

func (c *Client) handleAuth(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg AuthMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, username, err := c.hub.auth.ValidateToken(msg.Token)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "invalid token"}})
		return
	}
	c.authPilotID = id
	c.authUsername = username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{
		Token:    msg.Token,
		Username: username,
		PilotID:  id,
	}})
}

func (c *Client) handleScores() {
	if c.hub.db == nil {
		c.SendJSON(Envelope{T: MsgHighScore, Data: []HighScoreEntry{}})
		return
	}
	entries, err := c.hub.db.TopRuns(10)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "scores unavailable"}})
		return
	}
	c.SendJSON(Envelope{T: MsgHighScore, Data: entries})
}

// stopGame halts this client's run, called by the hub on unregister
func (c *Client) stopGame() {
	if c.game != nil {
		c.game.Stop()
		c.game = nil
	}
}
