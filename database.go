package main

import (
	"database/sql"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite results store. Only run outcomes and pilot
// accounts land here; no simulation state is ever persisted.
type DB struct {
	conn *sql.DB
}

// PilotRow represents a pilot account record
type PilotRow struct {
	ID        int64
	Username  string
	PassHash  string
	CreatedAt time.Time
}

// RunRow represents a completed run
type RunRow struct {
	ID        int64
	PilotID   int64 // 0 = guest
	Score     int
	Duration  float64 // seconds
	Kills     int
	Spheres   int
	CreatedAt time.Time
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL keeps the async analytics writer from blocking readers
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pilots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		pass_hash TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pilot_id INTEGER NOT NULL DEFAULT 0,
		score INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		kills INTEGER NOT NULL DEFAULT 0,
		spheres INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		run_id TEXT NOT NULL DEFAULT '',
		data TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS achievements (
		pilot_id INTEGER NOT NULL,
		achievement_id TEXT NOT NULL,
		unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (pilot_id, achievement_id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// CreatePilot creates a new pilot account and returns its ID
func (db *DB) CreatePilot(username, passHash string) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO pilots (username, pass_hash) VALUES (?, ?)",
		username, passHash,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetPilotByUsername returns a pilot by username, nil if absent
func (db *DB) GetPilotByUsername(username string) (*PilotRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, pass_hash, created_at FROM pilots WHERE username = ?",
		username,
	)
	p := &PilotRow{}
	err := row.Scan(&p.ID, &p.Username, &p.PassHash, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// UsernameExists checks if a username is taken
func (db *DB) UsernameExists(username string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM pilots WHERE username = ?", username).Scan(&count)
	return count > 0, err
}

// RecordRun records a completed run and returns its ID
func (db *DB) RecordRun(pilotID int64, score int, duration float64, kills, spheres int) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO runs (pilot_id, score, duration, kills, spheres) VALUES (?, ?, ?, ?, ?)",
		pilotID, score, duration, kills, spheres,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// TopRuns returns the highest-scoring runs with pilot names
func (db *DB) TopRuns(limit int) ([]HighScoreEntry, error) {
	rows, err := db.conn.Query(`
		SELECT COALESCE(p.username, 'Guest'), r.score, r.duration
		FROM runs r LEFT JOIN pilots p ON p.id = r.pilot_id
		ORDER BY r.score DESC, r.duration ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []HighScoreEntry
	rank := 1
	for rows.Next() {
		var e HighScoreEntry
		if err := rows.Scan(&e.Pilot, &e.Score, &e.Duration); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		result = append(result, e)
	}
	return result, rows.Err()
}

// InsertEvents writes a batch of analytics events in one transaction
func (db *DB) InsertEvents(events []AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO events (type, run_id, data, created_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(e.Type, e.RunID, e.Data, e.Timestamp); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetSetting returns a setting value, "" if absent
func (db *DB) GetSetting(key string) string {
	var v string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err != nil {
		return ""
	}
	return v
}

// SetSetting upserts a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// PilotTotals aggregates a pilot's lifetime run stats
type PilotTotals struct {
	Runs      int
	BestScore int
	Kills     int
	Spheres   int
	Playtime  float64 // seconds
}

// GetPilotTotals aggregates all recorded runs for a pilot
func (db *DB) GetPilotTotals(pilotID int64) (*PilotTotals, error) {
	t := &PilotTotals{}
	err := db.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(SUM(kills), 0),
		       COALESCE(SUM(spheres), 0), COALESCE(SUM(duration), 0)
		FROM runs WHERE pilot_id = ?`,
		pilotID,
	).Scan(&t.Runs, &t.BestScore, &t.Kills, &t.Spheres, &t.Playtime)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetUnlockedAchievements returns the IDs a pilot has already unlocked
func (db *DB) GetUnlockedAchievements(pilotID int64) (map[string]bool, error) {
	rows, err := db.conn.Query("SELECT achievement_id FROM achievements WHERE pilot_id = ?", pilotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unlocked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		unlocked[id] = true
	}
	return unlocked, rows.Err()
}

// UnlockAchievement records an unlock, idempotently
func (db *DB) UnlockAchievement(pilotID int64, achievementID string) error {
	_, err := db.conn.Exec(
		"INSERT OR IGNORE INTO achievements (pilot_id, achievement_id) VALUES (?, ?)",
		pilotID, achievementID,
	)
	return err
}
