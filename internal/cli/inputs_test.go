package cli

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"hero.png", "ui/button.png", "ui/icons/coin.webp", "notes.txt"} {
		writeFile(t, filepath.Join(dir, "sprites", name), "x")
	}
	writeFile(t, filepath.Join(dir, "extra", "star.png"), "x")
	writeFile(t, filepath.Join(dir, "extra", "moon.jpg"), "x")

	got, err := collectInputs([]string{
		filepath.Join(dir, "sprites"),
		filepath.Join(dir, "extra", "*.png"),
	}, nil)
	if err != nil {
		t.Fatalf("collectInputs() error: %v", err)
	}

	want := []inputFile{
		{Name: "hero.png", Path: filepath.Join(dir, "sprites", "hero.png")},
		{Name: "star.png", Path: filepath.Join(dir, "extra", "star.png")},
		{Name: "ui/button.png", Path: filepath.Join(dir, "sprites", "ui", "button.png"), Group: "ui"},
		{Name: "ui/icons/coin.webp", Path: filepath.Join(dir, "sprites", "ui", "icons", "coin.webp"), Group: "ui"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("collectInputs() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestCollectInputsSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	writeFile(t, path, "x")

	got, err := collectInputs([]string{path, path}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "logo.png" || got[0].Group != "" {
		t.Errorf("collectInputs() = %+v", got)
	}
}

func TestCollectInputsConflict(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "logo.png")
	b := filepath.Join(dir, "b", "logo.png")
	writeFile(t, a, "x")
	writeFile(t, b, "x")

	if _, err := collectInputs([]string{a, b}, nil); err == nil {
		t.Error("expected an error for two sprites named logo.png")
	}
}

func TestCollectInputsSkip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hero.png"), "x")
	writeFile(t, filepath.Join(dir, "atlas.png"), "x")
	writeFile(t, filepath.Join(dir, "atlas-3.png"), "x")
	writeFile(t, filepath.Join(dir, "ui", "atlas.png"), "x")

	filter, err := newOutputFilter(packOpts{output: dir, name: "atlas", nameFormat: defaultNameFormat})
	if err != nil {
		t.Fatal(err)
	}
	got, err := collectInputs([]string{dir}, filter.Match)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, f := range got {
		names = append(names, f.Name)
	}
	if want := []string{"hero.png", "ui/atlas.png"}; !reflect.DeepEqual(names, want) {
		t.Errorf("collectInputs() = %v, want %v", names, want)
	}
}

func TestCollectInputsMissing(t *testing.T) {
	if _, err := collectInputs([]string{filepath.Join(t.TempDir(), "nope")}, nil); err == nil {
		t.Error("expected an error for a missing input")
	}
}

func TestWatchDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sprites", "ui", "a.png"), "x")
	writeFile(t, filepath.Join(dir, "single.png"), "x")

	got, err := watchDirs([]string{
		filepath.Join(dir, "sprites"),
		filepath.Join(dir, "single.png"),
		filepath.Join(dir, "glob", "*.png"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		dir,
		filepath.Join(dir, "glob"),
		filepath.Join(dir, "sprites"),
		filepath.Join(dir, "sprites", "ui"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("watchDirs() = %v, want %v", got, want)
	}
}
