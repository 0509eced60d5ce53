// Package history provides the Engine, the consumer-facing façade over
// an EntryStore. The Engine absorbs storage failures: every operation
// logs and degrades to a no-op or empty result instead of returning an
// error, so a disk problem never crashes the host application. Callers
// treat "no effect" as the failure signal.
package history

import (
	"log"

	"github.com/clipvault/clipvault/internal/store"
)

// Engine wraps an EntryStore with failure absorption and default
// limits. A nil store (storage could not be opened) yields an engine
// whose every operation is a logged no-op.
type Engine struct {
	store  store.EntryStore
	logger *log.Logger
}

// NewEngine creates an engine over the given store. A nil logger uses
// the process-wide default logger.
func NewEngine(s store.EntryStore, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{store: s, logger: logger}
}

// Degraded reports whether the engine has no usable store behind it.
func (e *Engine) Degraded() bool {
	return e.store == nil
}

// Record applies an insert-or-touch. Exactly zero or one row changes;
// on failure nothing changes and the error is logged.
func (e *Engine) Record(input *store.InsertInput) {
	if e.store == nil {
		return
	}
	if err := e.store.InsertOrTouch(input); err != nil {
		e.logger.Printf("history: record failed: %v", err)
	}
}

// Entries lists non-expired entries, pinned-first then newest first.
func (e *Engine) Entries(limit int, includeImageData bool) []*store.Entry {
	if e.store == nil {
		return nil
	}
	entries, err := e.store.List(limit, includeImageData)
	if err != nil {
		e.logger.Printf("history: list failed: %v", err)
		return nil
	}
	return entries
}

// Search filters entries by literal substring; an empty query lists.
func (e *Engine) Search(query string) []*store.Entry {
	if e.store == nil {
		return nil
	}
	entries, err := e.store.Search(query)
	if err != nil {
		e.logger.Printf("history: search failed: %v", err)
		return nil
	}
	return entries
}

// ImageData fetches the image payload for one entry, nil when absent.
func (e *Engine) ImageData(id int64) []byte {
	if e.store == nil {
		return nil
	}
	data, err := e.store.ImageData(id)
	if err != nil {
		e.logger.Printf("history: image fetch failed: %v", err)
		return nil
	}
	return data
}

// SetPinned toggles the pin flag.
func (e *Engine) SetPinned(id int64, pinned bool) {
	if e.store == nil {
		return
	}
	if err := e.store.SetPinned(id, pinned); err != nil {
		e.logger.Printf("history: set pinned failed: %v", err)
	}
}

// SetTags replaces an entry's tag set.
func (e *Engine) SetTags(id int64, tags []string) {
	if e.store == nil {
		return
	}
	if err := e.store.SetTags(id, tags); err != nil {
		e.logger.Printf("history: set tags failed: %v", err)
	}
}

// AddTag merges one tag into an entry's tag set.
func (e *Engine) AddTag(id int64, tag string) {
	if e.store == nil {
		return
	}
	if err := e.store.AddTag(id, tag); err != nil {
		e.logger.Printf("history: add tag failed: %v", err)
	}
}

// SweepExpired deletes entries whose expiry has passed.
func (e *Engine) SweepExpired() {
	if e.store == nil {
		return
	}
	if err := e.store.SweepExpired(); err != nil {
		e.logger.Printf("history: sweep failed: %v", err)
	}
}

// Count returns the number of live entries, zero on failure.
func (e *Engine) Count() int {
	if e.store == nil {
		return 0
	}
	count, err := e.store.Count()
	if err != nil {
		e.logger.Printf("history: count failed: %v", err)
		return 0
	}
	return count
}

// Clear removes all entries.
func (e *Engine) Clear() {
	if e.store == nil {
		return
	}
	if err := e.store.Clear(); err != nil {
		e.logger.Printf("history: clear failed: %v", err)
	}
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}
