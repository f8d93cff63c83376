package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchMatcher(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "atlas.toml")
	filter, err := newOutputFilter(packOpts{output: dir, name: "atlas", nameFormat: defaultNameFormat})
	if err != nil {
		t.Fatal(err)
	}
	match := watchMatcher(cfg, filter.Match)

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(dir, "hero.png"), true},
		{filepath.Join(dir, "HERO.PNG"), true},
		{filepath.Join(dir, "notes.txt"), false},
		{cfg, true},
		{filepath.Join(dir, "other.toml"), false},
		{filepath.Join(dir, "atlas.png"), false},
		{filepath.Join(dir, "atlas-1.png"), false},
		{filepath.Join(dir, "atlas.plist"), false},
	}
	for _, tt := range tests {
		if got := match(tt.path); got != tt.want {
			t.Errorf("match(%s) = %v, want %v", filepath.Base(tt.path), got, tt.want)
		}
	}

	if watchMatcher("", nil)(cfg) {
		t.Error("project files should not match without a config")
	}
}

func TestWatcherReportsImages(t *testing.T) {
	dir := t.TempDir()
	w, err := newWatcher(watchMatcher("", nil), dir)
	if err != nil {
		t.Fatalf("newWatcher() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	img := filepath.Join(dir, "hero.png")
	if err := os.WriteFile(img, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != img {
			t.Errorf("event for %s, want %s", got, img)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := newWatcher(watchMatcher("", nil), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
