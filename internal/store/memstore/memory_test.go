package memstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/clipvault/clipvault/internal/store"
)

// Interface compliance check.
var _ store.EntryStore = (*MemoryStore)(nil)

func hashOf(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func textInput(text string) *store.InsertInput {
	return &store.InsertInput{
		ContentType: store.ContentTypeText,
		TextContent: text,
		Hash:        hashOf(text),
	}
}

func TestInsertAndDedup(t *testing.T) {
	m := NewMemoryStore(0)

	if err := m.InsertOrTouch(textInput("hello")); err != nil {
		t.Fatalf("InsertOrTouch() error = %v", err)
	}
	first, _ := m.List(0, false)

	time.Sleep(2 * time.Millisecond)
	if err := m.InsertOrTouch(textInput("hello")); err != nil {
		t.Fatalf("duplicate InsertOrTouch() error = %v", err)
	}

	entries, _ := m.List(0, false)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ID != first[0].ID {
		t.Error("touch must not change identity")
	}
	if !entries[0].CreatedAt.After(first[0].CreatedAt) {
		t.Error("touch must bump CreatedAt")
	}
}

func TestTrimRespectsPins(t *testing.T) {
	m := NewMemoryStore(2)

	if err := m.InsertOrTouch(textInput("keep pinned")); err != nil {
		t.Fatal(err)
	}
	entries, _ := m.List(0, false)
	if err := m.SetPinned(entries[0].ID, true); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := m.InsertOrTouch(textInput(fmt.Sprintf("filler %d", i))); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
	}

	entries, _ = m.List(0, false)
	foundPinned := false
	unpinned := 0
	for _, entry := range entries {
		if entry.TextContent == "keep pinned" {
			foundPinned = true
		}
		if !entry.Pinned {
			unpinned++
		}
	}
	if !foundPinned {
		t.Error("pinned entry was trimmed")
	}
	if unpinned > 2 {
		t.Errorf("%d unpinned entries, cap is 2", unpinned)
	}
}

func TestExpiryFilteringAndSweep(t *testing.T) {
	m := NewMemoryStore(0)

	past := time.Now().Add(-time.Second)
	input := textInput("gone")
	input.ExpiresAt = &past
	if err := m.InsertOrTouch(input); err != nil {
		t.Fatal(err)
	}
	if err := m.InsertOrTouch(textInput("alive")); err != nil {
		t.Fatal(err)
	}

	entries, _ := m.List(0, false)
	if len(entries) != 1 || entries[0].TextContent != "alive" {
		t.Fatalf("expired entry visible, got %d entries", len(entries))
	}

	if err := m.SweepExpired(); err != nil {
		t.Fatal(err)
	}
	if len(m.entries) != 1 {
		t.Errorf("sweep left %d physical entries, want 1", len(m.entries))
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	m := NewMemoryStore(0)
	for _, text := range []string{"Hello World", "hello there", "goodbye"} {
		if err := m.InsertOrTouch(textInput(text)); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := m.Search("HELLO")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d results, want 2", len(entries))
	}
}

func TestSearchFoldsASCIIOnly(t *testing.T) {
	m := NewMemoryStore(0)
	if err := m.InsertOrTouch(textInput("CAFÉ menu")); err != nil {
		t.Fatal(err)
	}

	// SQLite LIKE does not fold non-ASCII letters, so "é" must not
	// match the stored "É".
	entries, err := m.Search("café")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("non-ASCII fold matched %d results, want 0", len(entries))
	}

	entries, err = m.Search("cafÉ")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("exact non-ASCII with folded ASCII matched %d results, want 1", len(entries))
	}
}

func TestListReturnsClones(t *testing.T) {
	m := NewMemoryStore(0)
	if err := m.InsertOrTouch(textInput("original")); err != nil {
		t.Fatal(err)
	}

	entries, _ := m.List(0, false)
	entries[0].TextContent = "mutated"
	entries[0].Tags = append(entries[0].Tags, "sneaky")

	fresh, _ := m.List(0, false)
	if fresh[0].TextContent != "original" {
		t.Error("caller mutation leaked into the store")
	}
	if len(fresh[0].Tags) != 0 {
		t.Error("caller tag mutation leaked into the store")
	}
}

func TestTagOperations(t *testing.T) {
	m := NewMemoryStore(0)
	if err := m.InsertOrTouch(textInput("tagged")); err != nil {
		t.Fatal(err)
	}
	entries, _ := m.List(0, false)
	id := entries[0].ID

	if err := m.AddTag(id, " dup "); err != nil {
		t.Fatal(err)
	}
	if err := m.AddTag(id, "dup"); err != nil {
		t.Fatal(err)
	}

	entries, _ = m.List(0, false)
	if len(entries[0].Tags) != 1 || entries[0].Tags[0] != "dup" {
		t.Errorf("tags = %v, want [dup]", entries[0].Tags)
	}

	if err := m.SetTags(id, nil); err != nil {
		t.Fatal(err)
	}
	entries, _ = m.List(0, false)
	if len(entries[0].Tags) != 0 {
		t.Errorf("tags = %v, want cleared", entries[0].Tags)
	}
}

func TestImageDataRoundTrip(t *testing.T) {
	m := NewMemoryStore(0)
	png := []byte{0x89, 'P', 'N', 'G'}
	sum := sha256.Sum256(png)
	if err := m.InsertOrTouch(&store.InsertInput{
		ContentType: store.ContentTypeImage,
		ImageData:   png,
		Hash:        hex.EncodeToString(sum[:]),
	}); err != nil {
		t.Fatal(err)
	}

	entries, _ := m.List(0, false)
	if entries[0].ImageData != nil {
		t.Error("listing should omit image data by default")
	}

	data, err := m.ImageData(entries[0].ID)
	if err != nil {
		t.Fatalf("ImageData() error = %v", err)
	}
	if len(data) != len(png) {
		t.Errorf("image data length = %d, want %d", len(data), len(png))
	}

	if data, _ := m.ImageData(9999); data != nil {
		t.Error("missing entry should have nil image data")
	}
}
