package segment

import (
	"fmt"
	"io"
	"os"
)

// Source is a sequentially readable byte stream with a known total size.
// The engine makes a single forward pass; no seeking is required.
type Source interface {
	io.Reader

	// Size returns the total number of bytes the source will yield.
	Size() int64
}

// FileSource implements Source for a log file on disk.
type FileSource struct {
	file *os.File
	size int64
}

// OpenFile opens path as a Source. The caller must Close it when done.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return &FileSource{file: f, size: info.Size()}, nil
}

// Read reads the next sequential bytes from the file.
func (s *FileSource) Read(p []byte) (int, error) {
	return s.file.Read(p)
}

// Size returns the file size captured at open time.
func (s *FileSource) Size() int64 {
	return s.size
}

// Close releases the underlying file handle.
func (s *FileSource) Close() error {
	return s.file.Close()
}

// ReaderSource adapts an io.Reader with a declared total size.
type ReaderSource struct {
	r    io.Reader
	size int64
}

// NewReaderSource wraps r as a Source that will yield size bytes.
func NewReaderSource(r io.Reader, size int64) *ReaderSource {
	return &ReaderSource{r: r, size: size}
}

// Read reads the next sequential bytes from the wrapped reader.
func (s *ReaderSource) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Size returns the declared total size.
func (s *ReaderSource) Size() int64 {
	return s.size
}
