// Package chunk provides a reader that yields a source in fixed-size pieces.
package chunk

import "io"

// DefaultSize is the chunk size used for file streaming.
const DefaultSize = 64 * 1024

// Reader wraps a source reader so that no single Read returns more than the
// configured chunk size. It is lazy (the source is only read on demand),
// finite, and non-restartable.
type Reader struct {
	src  io.Reader
	size int
}

// NewReader creates a Reader over src. A non-positive size falls back to
// DefaultSize.
func NewReader(src io.Reader, size int) *Reader {
	if size <= 0 {
		size = DefaultSize
	}
	return &Reader{src: src, size: size}
}

// Read implements io.Reader, capping each read at the chunk size.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) > r.size {
		p = p[:r.size]
	}
	return r.src.Read(p)
}
