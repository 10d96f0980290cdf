package main

import (
	"fmt"
	"sync"
	"time"
)

// Event types recorded during a run
const (
	EvtRunStart        = "run_start"
	EvtRunEnd          = "run_end"
	EvtEnemyKilled     = "enemy_killed"
	EvtSphereCollected = "sphere_collected"
	EvtMeteoriteHit    = "meteorite_hit"
)

const (
	analyticsBufSize    = 1024
	analyticsBatchMax   = 64
	analyticsFlushEvery = 2 * time.Second
)

// AnalyticsEvent is a single trackable event
type AnalyticsEvent struct {
	Type      string
	RunID     string
	Data      string
	Timestamp time.Time
}

// Analytics batches run events to SQLite off the game loop. Track
// never blocks: when the buffer is full the event is dropped.
type Analytics struct {
	db     *DB
	events chan AnalyticsEvent
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewAnalytics creates and starts the background writer
func NewAnalytics(db *DB) *Analytics {
	a := &Analytics{
		db:     db,
		events: make(chan AnalyticsEvent, analyticsBufSize),
		stop:   make(chan struct{}),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Track enqueues an event for async persistence (non-blocking)
func (a *Analytics) Track(evtType, runID, data string) {
	select {
	case a.events <- AnalyticsEvent{
		Type:      evtType,
		RunID:     runID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// Buffer full, drop rather than stall the game loop
	}
}

// TrackRunEnd records the final score and duration of a run
func (a *Analytics) TrackRunEnd(runID string, score int, duration float64) {
	a.Track(EvtRunEnd, runID, fmt.Sprintf(`{"score":%d,"duration":%.2f}`, score, duration))
}

// Stop flushes pending events and shuts the writer down
func (a *Analytics) Stop() {
	close(a.stop)
	a.wg.Wait()
}

// writer batches events and commits them periodically
func (a *Analytics) writer() {
	defer a.wg.Done()

	ticker := time.NewTicker(analyticsFlushEvery)
	defer ticker.Stop()

	batch := make([]AnalyticsEvent, 0, analyticsBatchMax)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		// Lost telemetry is acceptable; an unbounded batch is not
		_ = a.db.InsertEvents(batch)
		batch = batch[:0]
	}

	for {
		select {
		case e := <-a.events:
			batch = append(batch, e)
			if len(batch) >= analyticsBatchMax {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-a.stop:
			for {
				select {
				case e := <-a.events:
					batch = append(batch, e)
				default:
					flush()
					return
				}
			}
		}
	}
}
