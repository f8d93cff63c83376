// Package maxrects packs rectangles into a minimal number of bins using the
// MaxRects algorithm.
//
// # Contract
//
// [Pack] takes a set of rectangles and returns one or more [Bin]s, each no
// larger than the configured maximum size. Every input rectangle appears in
// exactly one bin with its top-left coordinate and a rotation flag. A rotated
// rectangle occupies Height x Width in the bin.
//
// Rectangles are placed longest edge first. Each rectangle goes into the
// first bin that can hold it; a new bin is opened when none can. Inside a bin
// the free space is kept as a list of maximal free rectangles and the
// placement with the smallest leftover short side wins.
//
// # Options
//
//   - Padding: gap between neighbouring rectangles
//   - Border: empty margin along the bin edges
//   - Smart: shrink each bin to its content instead of using the maximum size
//   - POT: round bin sides up to powers of two
//   - Square: make bins square
//   - AllowRotation: allow 90 degree rotation when it gives a better fit
//   - Tag: never mix rectangles of different groups in one bin
//
// A rectangle that cannot fit an empty bin is reported as an [*OversizeError].
package maxrects

import (
	"fmt"
	"sort"
)

// Options configures a packing run.
type Options struct {
	MaxWidth      int
	MaxHeight     int
	Padding       int
	Border        int
	Smart         bool
	POT           bool
	Square        bool
	AllowRotation bool
	Tag           bool
}

// Rect is a rectangle to pack.
type Rect struct {
	ID     string // caller's identifier, returned untouched in placements
	Group  string // only honoured with Options.Tag
	Width  int
	Height int
}

// Placement is the position of one rectangle inside a bin.
type Placement struct {
	ID      string
	X, Y    int
	Rotated bool
}

// Bin is one packed region.
type Bin struct {
	Width      int
	Height     int
	Group      string
	Placements []Placement
}

// OversizeError is returned when a rectangle is larger than an empty bin.
type OversizeError struct {
	ID            string
	Width, Height int
	MaxW, MaxH    int
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("rectangle %q (%dx%d) does not fit into %dx%d", e.ID, e.Width, e.Height, e.MaxW, e.MaxH)
}

// Validate checks that the options describe a usable bin.
func (o Options) Validate() error {
	if o.MaxWidth <= 0 || o.MaxHeight <= 0 {
		return fmt.Errorf("max size must be positive, got %dx%d", o.MaxWidth, o.MaxHeight)
	}
	if o.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", o.Padding)
	}
	if o.Border < 0 {
		return fmt.Errorf("border must not be negative, got %d", o.Border)
	}
	if 2*o.Border >= o.MaxWidth || 2*o.Border >= o.MaxHeight {
		return fmt.Errorf("border %d leaves no room in %dx%d", o.Border, o.MaxWidth, o.MaxHeight)
	}
	return nil
}

// Pack places all rects into bins.
func Pack(rects []Rect, opts Options) ([]Bin, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := rects[order[a]], rects[order[b]]
		ea, eb := max(ra.Width, ra.Height), max(rb.Width, rb.Height)
		if ea != eb {
			return ea > eb
		}
		return ra.Width*ra.Height > rb.Width*rb.Height
	})

	var bins []*bin
	for _, i := range order {
		r := rects[i]
		if r.Width <= 0 || r.Height <= 0 {
			return nil, fmt.Errorf("rectangle %q has empty size %dx%d", r.ID, r.Width, r.Height)
		}

		placed := false
		for _, b := range bins {
			if opts.Tag && b.group != r.Group {
				continue
			}
			if b.insert(r) {
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		b := newBin(opts, r.Group)
		if !b.insert(r) {
			return nil, &OversizeError{
				ID:    r.ID,
				Width: r.Width, Height: r.Height,
				MaxW: opts.MaxWidth - 2*opts.Border, MaxH: opts.MaxHeight - 2*opts.Border,
			}
		}
		bins = append(bins, b)
	}

	out := make([]Bin, len(bins))
	for i, b := range bins {
		w, h := b.size()
		out[i] = Bin{Width: w, Height: h, Group: b.group, Placements: b.placed}
	}
	return out, nil
}
