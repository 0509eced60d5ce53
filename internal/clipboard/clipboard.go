// Package clipboard defines the narrow pasteboard interface the
// monitor polls. The core never depends on a concrete platform
// clipboard; sysboard provides the real implementation and mockboard a
// scriptable one for tests.
package clipboard

// Pasteboard exposes the shared system clipboard at the boundary the
// history engine needs: a monotonically increasing change counter plus
// the current representations.
type Pasteboard interface {
	// ChangeCount returns a counter that increases every time the
	// clipboard contents change. Values are only meaningful for
	// equality comparison against earlier values.
	ChangeCount() uint64

	// ReadText returns the current plain-text contents, if any.
	ReadText() (string, bool)

	// ReadImage returns the current image contents as PNG-encoded
	// bytes, if any. Implementations transcode raw raster forms.
	ReadImage() ([]byte, bool)
}
