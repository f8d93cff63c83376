// Package output persists sheet textures and descriptors.
//
// A [Store] is the only thing the writer needs: it receives a slash-free file
// name and the bytes to put there. [DirStore] writes into a directory on disk
// and [MemStore] keeps everything in memory, which is handy in tests and for
// callers that upload the results elsewhere.
package output

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store persists named blobs.
type Store interface {
	// WriteFile stores data under name and returns the location written.
	WriteFile(ctx context.Context, name string, data []byte) (string, error)
}

// DirStore writes files into a directory, creating it on first use.
type DirStore struct {
	dir  string
	once sync.Once
	err  error
}

// NewDirStore returns a store rooted at dir. The directory is created lazily.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Dir returns the root directory.
func (s *DirStore) Dir() string { return s.dir }

// WriteFile writes data to dir/name. Safe for concurrent use.
func (s *DirStore) WriteFile(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.once.Do(func() {
		s.err = os.MkdirAll(s.dir, 0755)
	})
	if s.err != nil {
		return "", s.err
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// MemStore keeps written files in memory. Safe for concurrent use.
type MemStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string][]byte)}
}

// WriteFile records data under name and returns name.
func (s *MemStore) WriteFile(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	return name, nil
}

// Get returns the bytes stored under name.
func (s *MemStore) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

// Names lists stored file names in sorted order.
func (s *MemStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	_ Store = (*DirStore)(nil)
	_ Store = (*MemStore)(nil)
)
