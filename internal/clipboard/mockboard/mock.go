// Package mockboard provides a scriptable pasteboard for testing.
package mockboard

import (
	"sync"
)

// MockPasteboard implements clipboard.Pasteboard for tests. Every Set
// call bumps the change counter, mimicking NSPasteboard-style change
// counting.
type MockPasteboard struct {
	mu    sync.Mutex
	count uint64
	text  string
	image []byte
}

// New creates an empty MockPasteboard with change count zero.
func New() *MockPasteboard {
	return &MockPasteboard{}
}

// ChangeCount implements Pasteboard.ChangeCount.
func (m *MockPasteboard) ChangeCount() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// ReadText implements Pasteboard.ReadText.
func (m *MockPasteboard) ReadText() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.text != ""
}

// ReadImage implements Pasteboard.ReadImage.
func (m *MockPasteboard) ReadImage() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.image) == 0 {
		return nil, false
	}
	data := make([]byte, len(m.image))
	copy(data, m.image)
	return data, true
}

// SetText places text on the mock pasteboard and bumps the counter.
func (m *MockPasteboard) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.image = nil
	m.count++
}

// SetImage places image bytes on the mock pasteboard and bumps the
// counter.
func (m *MockPasteboard) SetImage(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = ""
	m.image = append([]byte(nil), data...)
	m.count++
}

// Clear empties the pasteboard and bumps the counter.
func (m *MockPasteboard) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = ""
	m.image = nil
	m.count++
}
