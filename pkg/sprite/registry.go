// Package sprite holds the named inputs of a packing session and what has
// been learned about each of them.
//
// Every sprite carries an explicit [State]. A sprite starts [Pending], becomes
// [Decoded] once its source has been read, [Cropped] once its transparent
// border was removed and [Packed] after it was placed on a sheet. Decoding and
// cropping happen once per sprite; only packing is repeated.
package sprite

import (
	"image"

	"github.com/chocolatl/cocos-texture-packer/pkg/crop"
	errs "github.com/chocolatl/cocos-texture-packer/pkg/errors"
)

// State tags how far a sprite has been processed.
type State int

const (
	Pending State = iota
	Decoded
	Cropped
	Packed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Decoded:
		return "decoded"
	case Cropped:
		return "cropped"
	case Packed:
		return "packed"
	}
	return "unknown"
}

// Entry is one registered sprite.
type Entry struct {
	Name   string
	Source Source
	Group  string
	State  State

	// Image is the decoded image; cropped once State >= Cropped.
	Image *image.NRGBA

	// Trim is valid once State >= Cropped.
	Trim crop.Trim
}

// Placement is where packing put a sprite. It belongs to one generation of
// sheets and is never stored on the Entry.
type Placement struct {
	Sheet    int
	Position [2]int
	Rotated  bool
}

// Registry stores sprites by name in insertion order. It is not safe for
// concurrent use.
type Registry struct {
	order   []string
	entries map[string]*Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Add registers a new pending sprite. It fails without side effects if the
// name is empty, the source is empty or the name is taken.
func (r *Registry) Add(name string, src Source, group string) error {
	if name == "" {
		return errs.New(errs.ErrCodeInvalidInput, "sprite name cannot be empty")
	}
	if src.IsZero() {
		return errs.New(errs.ErrCodeInvalidInput, "sprite %q has no source", name)
	}
	if _, ok := r.entries[name]; ok {
		return errs.New(errs.ErrCodeDuplicateName, "duplicated sprite name: %s", name)
	}
	r.entries[name] = &Entry{Name: name, Source: src, Group: group}
	r.order = append(r.order, name)
	return nil
}

// Remove deletes a sprite and reports whether it existed.
func (r *Registry) Remove(name string) bool {
	if _, ok := r.entries[name]; !ok {
		return false
	}
	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the entry for name. The returned pointer stays owned by the
// registry.
func (r *Registry) Get(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Len returns the number of sprites.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns all sprite names in insertion order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// InState returns the names of sprites in state s, in insertion order.
func (r *Registry) InState(s State) []string {
	var names []string
	for _, n := range r.order {
		if r.entries[n].State == s {
			names = append(names, n)
		}
	}
	return names
}

// Entries returns all entries in insertion order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, len(r.order))
	for i, n := range r.order {
		out[i] = r.entries[n]
	}
	return out
}
