package output

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDirStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	s := NewDirStore(dir)

	path, err := s.WriteFile(context.Background(), "sheet.png", []byte("png"))
	if err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if path != filepath.Join(dir, "sheet.png") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "png" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
}

func TestDirStoreMkdirError(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	s := NewDirStore(filepath.Join(blocker, "sub"))
	if _, err := s.WriteFile(context.Background(), "a", []byte("x")); err == nil {
		t.Error("expected error when the directory cannot be created")
	}
}

func TestStoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, s := range map[string]Store{"dir": NewDirStore(t.TempDir()), "mem": NewMemStore()} {
		if _, err := s.WriteFile(ctx, "a", nil); err == nil {
			t.Errorf("%s: expected context error", name)
		}
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	buf := []byte("abc")
	if _, err := s.WriteFile(context.Background(), "b.plist", buf); err != nil {
		t.Fatal(err)
	}
	if _, err := s.WriteFile(context.Background(), "a.png", []byte("x")); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'z'

	got, ok := s.Get("b.plist")
	if !ok || string(got) != "abc" {
		t.Errorf("Get() = %q, %v", got, ok)
	}
	if names := s.Names(); !reflect.DeepEqual(names, []string{"a.png", "b.plist"}) {
		t.Errorf("Names() = %v", names)
	}
}
