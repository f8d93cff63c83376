package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExts are the file extensions picked up from directories.
var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

func isImageFile(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// inputFile is one sprite found on disk.
type inputFile struct {
	Name  string // sprite name, slash separated
	Path  string
	Group string // first directory below the input root, if any
}

// collectInputs expands files, directories and glob patterns into sprites.
// Files inside a directory are named by their path relative to it; plain
// files and glob matches by their base name. Paths for which skip reports
// true are left out; skip may be nil. The result is sorted by name.
func collectInputs(args []string, skip func(path string) bool) ([]inputFile, error) {
	var out []inputFile
	seen := make(map[string]string)

	add := func(f inputFile) error {
		if skip != nil && skip(f.Path) {
			return nil
		}
		if prev, ok := seen[f.Name]; ok && prev != f.Path {
			return fmt.Errorf("sprite name %q used by both %s and %s", f.Name, prev, f.Path)
		} else if ok {
			return nil
		}
		seen[f.Name] = f.Path
		out = append(out, f)
		return nil
	}

	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			for _, m := range matches {
				if !isImageFile(m) {
					continue
				}
				if err := add(inputFile{Name: filepath.Base(m), Path: m}); err != nil {
					return nil, err
				}
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if err := add(inputFile{Name: filepath.Base(arg), Path: arg}); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isImageFile(path) {
				return nil
			}
			rel, err := filepath.Rel(arg, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			f := inputFile{Name: rel, Path: path}
			if i := strings.IndexByte(rel, '/'); i > 0 {
				f.Group = rel[:i]
			}
			return add(f)
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// watchDirs returns the directories to watch for the given inputs.
func watchDirs(args []string) ([]string, error) {
	set := make(map[string]bool)
	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			set[filepath.Dir(arg)] = true
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			set[filepath.Dir(arg)] = true
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				set[path] = true
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	dirs := make([]string, 0, len(set))
	for d := range set {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs, nil
}
