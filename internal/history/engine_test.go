package history

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/clipvault/clipvault/internal/store"
	"github.com/clipvault/clipvault/internal/store/memstore"
)

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func textInput(text string) *store.InsertInput {
	return &store.InsertInput{
		ContentType: store.ContentTypeText,
		TextContent: text,
		Hash:        hashText(text),
	}
}

func newTestEngine() *Engine {
	return NewEngine(memstore.NewMemoryStore(0), log.New(io.Discard, "", 0))
}

func TestEngineRecordAndList(t *testing.T) {
	engine := newTestEngine()

	engine.Record(textInput("first"))
	engine.Record(textInput("second"))

	entries := engine.Entries(0, false)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].TextContent != "second" {
		t.Errorf("newest entry first, got %q", entries[0].TextContent)
	}
}

func TestEngineDegradedModeIsSilentNoop(t *testing.T) {
	engine := NewEngine(nil, log.New(io.Discard, "", 0))

	if !engine.Degraded() {
		t.Error("engine with nil store should report degraded")
	}

	// None of these may panic, and all reads come back empty.
	engine.Record(textInput("ignored"))
	engine.SetPinned(1, true)
	engine.AddTag(1, "tag")
	engine.SetTags(1, []string{"a"})
	engine.SweepExpired()
	engine.Clear()

	if got := engine.Entries(0, false); got != nil {
		t.Errorf("Entries in degraded mode = %v, want nil", got)
	}
	if got := engine.Search("anything"); got != nil {
		t.Errorf("Search in degraded mode = %v, want nil", got)
	}
	if got := engine.ImageData(1); got != nil {
		t.Errorf("ImageData in degraded mode = %v, want nil", got)
	}
	if got := engine.Count(); got != 0 {
		t.Errorf("Count in degraded mode = %d, want 0", got)
	}
	if err := engine.Close(); err != nil {
		t.Errorf("Close in degraded mode = %v, want nil", err)
	}
}

// failingStore returns an error from every operation.
type failingStore struct{}

var errBroken = errors.New("disk on fire")

func (failingStore) InsertOrTouch(*store.InsertInput) error            { return errBroken }
func (failingStore) List(int, bool) ([]*store.Entry, error)            { return nil, errBroken }
func (failingStore) Search(string) ([]*store.Entry, error)             { return nil, errBroken }
func (failingStore) ImageData(int64) ([]byte, error)                   { return nil, errBroken }
func (failingStore) SetPinned(int64, bool) error                       { return errBroken }
func (failingStore) SetTags(int64, []string) error                     { return errBroken }
func (failingStore) AddTag(int64, string) error                        { return errBroken }
func (failingStore) SweepExpired() error                               { return errBroken }
func (failingStore) Count() (int, error)                               { return 0, errBroken }
func (failingStore) Clear() error                                      { return errBroken }
func (failingStore) Close() error                                      { return nil }

func TestEngineAbsorbsStoreFailures(t *testing.T) {
	engine := NewEngine(failingStore{}, log.New(io.Discard, "", 0))

	engine.Record(textInput("x"))
	engine.SetPinned(1, true)
	engine.SweepExpired()

	if got := engine.Entries(0, false); got != nil {
		t.Errorf("Entries over failing store = %v, want nil", got)
	}
	if got := engine.Search("x"); got != nil {
		t.Errorf("Search over failing store = %v, want nil", got)
	}
	if got := engine.Count(); got != 0 {
		t.Errorf("Count over failing store = %d, want 0", got)
	}
}

func TestEngineSweepRemovesExpired(t *testing.T) {
	engine := newTestEngine()

	past := time.Now().Add(-time.Minute)
	input := textInput("expired secret")
	input.Sensitive = true
	input.ExpiresAt = &past
	engine.Record(input)
	engine.Record(textInput("keep me"))

	engine.SweepExpired()

	entries := engine.Entries(0, false)
	if len(entries) != 1 || entries[0].TextContent != "keep me" {
		t.Errorf("after sweep got %d entries, want only the unexpired one", len(entries))
	}
}
