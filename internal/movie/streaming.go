package movie

// streaming.go normalizes raw input before it reaches the CSV reader:
//
//   - a UTF-8 byte order mark (common in files saved on Windows) is removed
//   - invalid UTF-8 sequences are replaced with U+FFFD
//   - bytes are counted for metrics
//
// The work is done on the fly, so memory use does not grow with file size.

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NormalizeReader strips a leading BOM and repairs invalid UTF-8.
func NormalizeReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}
