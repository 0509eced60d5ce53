// Package monitor polls a pasteboard for changes and turns each change
// into at most one history write. Change detection runs on the polling
// goroutine; hashing, classification, and persistence run on a single
// worker goroutine so the polling cadence is never blocked. The
// last-observed change counter only advances after a change has been
// fully processed, so a rapid second change is never silently
// coalesced with the first.
package monitor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/clipvault/clipvault/internal/clipboard"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/history"
	"github.com/clipvault/clipvault/internal/sensitive"
	"github.com/clipvault/clipvault/internal/store"
)

// EventType identifies what a monitor event reports.
type EventType string

const (
	// EventRecorded fires after a change was written to the store.
	EventRecorded EventType = "recorded"
	// EventSkipped fires when a change was acknowledged but produced no
	// row (sensitive text with storage disabled, or empty clipboard).
	EventSkipped EventType = "skipped"
)

// Event is a notification about a processed clipboard change.
type Event struct {
	Type        EventType
	ContentType store.ContentType
	Sensitive   bool
}

// job carries one detected change from the polling goroutine to the
// worker.
type job struct {
	count   uint64
	text    string
	hasText bool
	image   []byte
}

// Monitor watches a pasteboard and writes observations through the
// history engine.
type Monitor struct {
	pasteboard clipboard.Pasteboard
	engine     *history.Engine
	cfg        *config.Config
	logger     *log.Logger

	lastChange atomic.Uint64
	inFlight   atomic.Bool
	running    atomic.Bool
	jobs       chan job
	events     chan Event
}

// NewMonitor creates a monitor. A nil logger uses the process default.
func NewMonitor(pb clipboard.Pasteboard, engine *history.Engine, cfg *config.Config, logger *log.Logger) *Monitor {
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{
		pasteboard: pb,
		engine:     engine,
		cfg:        cfg,
		logger:     logger,
		jobs:       make(chan job, 1),
		events:     make(chan Event, 100),
	}
}

// Events returns the notification channel. Events are dropped, not
// blocked on, when no one is listening.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// Start begins polling until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return fmt.Errorf("monitor is already running")
	}

	// Baseline: whatever is on the clipboard at startup is not a change.
	m.lastChange.Store(m.pasteboard.ChangeCount())

	go m.pollLoop(ctx)
	go m.worker(ctx)

	m.logger.Printf("monitor: started (poll interval %s)", m.cfg.PollInterval())
	return nil
}

// pollLoop detects changes at the configured cadence and hands them to
// the worker. A tick that lands while a previous change is still being
// processed leaves the counter untouched and retries next tick.
func (m *Monitor) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.running.Store(false)
			return
		case <-ticker.C:
			m.checkOnce()
		}
	}
}

// checkOnce performs one change-detection pass.
func (m *Monitor) checkOnce() {
	current := m.pasteboard.ChangeCount()
	if current == m.lastChange.Load() {
		return
	}
	if !m.inFlight.CompareAndSwap(false, true) {
		// Previous change still processing; retry on the next tick.
		return
	}

	// Capture representations on the detection side: text first, image
	// only when no text is available.
	j := job{count: current}
	if text, ok := m.pasteboard.ReadText(); ok {
		j.text = text
		j.hasText = true
	} else if image, ok := m.pasteboard.ReadImage(); ok {
		j.image = image
	}
	m.jobs <- j
}

// worker processes detected changes one at a time, advancing the
// last-observed counter only after each write completes.
func (m *Monitor) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-m.jobs:
			m.process(j)
			m.lastChange.Store(j.count)
			m.inFlight.Store(false)
		}
	}
}

// process turns one captured change into zero or one store write.
func (m *Monitor) process(j job) {
	switch {
	case j.hasText:
		m.processText(j.text)
	case len(j.image) > 0:
		m.engine.Record(&store.InsertInput{
			ContentType: store.ContentTypeImage,
			ImageData:   j.image,
			Hash:        hashBytes(j.image),
		})
		m.notify(Event{Type: EventRecorded, ContentType: store.ContentTypeImage})
	default:
		m.notify(Event{Type: EventSkipped})
	}
}

func (m *Monitor) processText(text string) {
	input := &store.InsertInput{
		ContentType: store.ContentTypeText,
		TextContent: text,
		Hash:        hashBytes([]byte(text)),
	}

	if sensitive.IsSensitive(text) {
		if !m.cfg.StoreSensitive {
			m.logger.Printf("monitor: skipped sensitive clipboard text")
			m.notify(Event{Type: EventSkipped, ContentType: store.ContentTypeText, Sensitive: true})
			return
		}
		expiresAt := time.Now().Add(m.cfg.SensitiveTTL())
		input.Sensitive = true
		input.ExpiresAt = &expiresAt
	}

	m.engine.Record(input)
	m.notify(Event{Type: EventRecorded, ContentType: store.ContentTypeText, Sensitive: input.Sensitive})
}

func (m *Monitor) notify(event Event) {
	select {
	case m.events <- event:
	default:
	}
}

// hashBytes returns the hex-encoded SHA256 of the payload.
func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
