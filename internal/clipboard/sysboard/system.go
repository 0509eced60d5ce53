// Package sysboard implements the pasteboard interface on top of
// golang.design/x/clipboard. The platform clipboard exposes no change
// counter of its own, so one is derived: each ChangeCount call samples
// the current contents and bumps the counter when their digest differs
// from the previous sample.
package sysboard

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// SystemPasteboard implements clipboard.Pasteboard for the OS
// clipboard. Image reads return PNG-encoded bytes (the encoding
// golang.design/x/clipboard uses on every platform).
type SystemPasteboard struct {
	mu         sync.Mutex
	count      uint64
	lastDigest [sha256.Size]byte
	primed     bool
}

// New initializes the system clipboard and returns a pasteboard over
// it. Initialization fails when the platform has no usable clipboard
// (e.g. a headless Linux session without X).
func New() (*SystemPasteboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize system clipboard: %w", err)
	}
	return &SystemPasteboard{}, nil
}

// ChangeCount samples the clipboard and returns a counter that bumps
// whenever the observed contents differ from the previous sample.
func (p *SystemPasteboard) ChangeCount() uint64 {
	text := clipboard.Read(clipboard.FmtText)
	image := clipboard.Read(clipboard.FmtImage)

	h := sha256.New()
	fmt.Fprintf(h, "%d:", len(text))
	h.Write(text)
	h.Write(image)
	var digest [sha256.Size]byte
	h.Sum(digest[:0])

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.primed {
		// First sample establishes the baseline without counting as a
		// change, so startup does not re-ingest the current clipboard.
		p.primed = true
		p.lastDigest = digest
		return p.count
	}
	if digest != p.lastDigest {
		p.lastDigest = digest
		p.count++
	}
	return p.count
}

// ReadText returns the current plain-text contents, if any.
func (p *SystemPasteboard) ReadText() (string, bool) {
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// ReadImage returns the current image contents as PNG bytes, if any.
func (p *SystemPasteboard) ReadImage() ([]byte, bool) {
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

// WriteText places text on the system clipboard.
func (p *SystemPasteboard) WriteText(text string) {
	clipboard.Write(clipboard.FmtText, []byte(text))
}

// WriteImage places PNG-encoded image bytes on the system clipboard.
func (p *SystemPasteboard) WriteImage(data []byte) {
	clipboard.Write(clipboard.FmtImage, data)
}
