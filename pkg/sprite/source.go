package sprite

import (
	"fmt"
	"os"
)

// Source is the raw image data behind a sprite: either a file path or an
// in-memory buffer.
type Source struct {
	path string
	data []byte
}

// File returns a source that reads the image at path.
func File(path string) Source {
	return Source{path: path}
}

// Bytes returns a source backed by data. The slice must not be modified
// afterwards.
func Bytes(data []byte) Source {
	return Source{data: data}
}

// IsZero reports whether the source points at nothing.
func (s Source) IsZero() bool {
	return s.path == "" && s.data == nil
}

// Path returns the file path, or "" for in-memory sources.
func (s Source) Path() string {
	return s.path
}

// ReadAll returns the raw image data.
func (s Source) ReadAll() ([]byte, error) {
	if s.path != "" {
		return os.ReadFile(s.path)
	}
	if s.data == nil {
		return nil, fmt.Errorf("empty sprite source")
	}
	return s.data, nil
}

// String describes the source for logs.
func (s Source) String() string {
	if s.path != "" {
		return s.path
	}
	return fmt.Sprintf("<%d bytes>", len(s.data))
}
