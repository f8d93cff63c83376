package maxrects

import (
	"errors"
	"fmt"
	"testing"
)

func defaultOpts() Options {
	return Options{
		MaxWidth:      64,
		MaxHeight:     64,
		Padding:       2,
		Border:        1,
		Smart:         true,
		POT:           true,
		AllowRotation: true,
	}
}

// checkBins verifies that every rect is placed exactly once, inside its bin,
// without overlapping any other rect of the same bin.
func checkBins(t *testing.T, rects []Rect, bins []Bin, opts Options) {
	t.Helper()

	byID := make(map[string]Rect, len(rects))
	for _, r := range rects {
		byID[r.ID] = r
	}

	seen := make(map[string]bool)
	for bi, b := range bins {
		if b.Width > opts.MaxWidth || b.Height > opts.MaxHeight {
			t.Errorf("bin %d is %dx%d, larger than max %dx%d", bi, b.Width, b.Height, opts.MaxWidth, opts.MaxHeight)
		}
		var placed []area
		for _, p := range b.Placements {
			if seen[p.ID] {
				t.Errorf("rect %q placed twice", p.ID)
			}
			seen[p.ID] = true

			r := byID[p.ID]
			w, h := r.Width, r.Height
			if p.Rotated {
				w, h = h, w
			}
			a := area{x: p.X, y: p.Y, w: w, h: h}
			if a.x < opts.Border || a.y < opts.Border || a.x+a.w > b.Width-opts.Border || a.y+a.h > b.Height-opts.Border {
				t.Errorf("rect %q at %+v is outside bin %d (%dx%d, border %d)", p.ID, a, bi, b.Width, b.Height, opts.Border)
			}
			padded := area{x: a.x, y: a.y, w: a.w + opts.Padding, h: a.h + opts.Padding}
			for _, o := range placed {
				if padded.intersects(o) {
					t.Errorf("rect %q at %+v overlaps %+v in bin %d", p.ID, a, o, bi)
				}
			}
			placed = append(placed, padded)
		}
	}

	for _, r := range rects {
		if !seen[r.ID] {
			t.Errorf("rect %q was not placed", r.ID)
		}
	}
}

func TestPackTwoSquares(t *testing.T) {
	opts := Options{MaxWidth: 32, MaxHeight: 32, Smart: true, POT: true, AllowRotation: true}
	rects := []Rect{
		{ID: "a", Width: 10, Height: 10},
		{ID: "b", Width: 10, Height: 10},
	}

	bins, err := Pack(rects, opts)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if len(bins) != 1 {
		t.Fatalf("len(bins) = %d, want 1", len(bins))
	}
	checkBins(t, rects, bins, opts)

	b := bins[0]
	if b.Width != 32 || b.Height != 16 {
		t.Errorf("bin size = %dx%d, want 32x16", b.Width, b.Height)
	}
	if p := b.Placements[0]; p.X != 0 || p.Y != 0 {
		t.Errorf("first placement = (%d,%d), want (0,0)", p.X, p.Y)
	}
	if p := b.Placements[1]; p.X != 10 || p.Y != 0 {
		t.Errorf("second placement = (%d,%d), want (10,0)", p.X, p.Y)
	}
}

func TestPackSmartOff(t *testing.T) {
	opts := Options{MaxWidth: 50, MaxHeight: 40}
	bins, err := Pack([]Rect{{ID: "a", Width: 3, Height: 3}}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if bins[0].Width != 50 || bins[0].Height != 40 {
		t.Errorf("bin size = %dx%d, want 50x40", bins[0].Width, bins[0].Height)
	}
}

func TestPackSquare(t *testing.T) {
	opts := Options{MaxWidth: 64, MaxHeight: 64, Smart: true, Square: true}
	bins, err := Pack([]Rect{{ID: "a", Width: 20, Height: 5}}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if bins[0].Width != 20 || bins[0].Height != 20 {
		t.Errorf("bin size = %dx%d, want 20x20", bins[0].Width, bins[0].Height)
	}
}

func TestPackPOTClampedToMax(t *testing.T) {
	opts := Options{MaxWidth: 40, MaxHeight: 40, Smart: true, POT: true}
	bins, err := Pack([]Rect{{ID: "a", Width: 35, Height: 3}}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if bins[0].Width != 40 || bins[0].Height != 4 {
		t.Errorf("bin size = %dx%d, want 40x4", bins[0].Width, bins[0].Height)
	}
}

func TestPackRotation(t *testing.T) {
	opts := Options{MaxWidth: 16, MaxHeight: 32, Smart: true, AllowRotation: true}
	rects := []Rect{{ID: "wide", Width: 30, Height: 10}}

	bins, err := Pack(rects, opts)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if !bins[0].Placements[0].Rotated {
		t.Error("wide rect should be rotated to fit")
	}
	if bins[0].Width != 10 || bins[0].Height != 30 {
		t.Errorf("bin size = %dx%d, want 10x30", bins[0].Width, bins[0].Height)
	}
	checkBins(t, rects, bins, opts)

	opts.AllowRotation = false
	_, err = Pack(rects, opts)
	var oe *OversizeError
	if !errors.As(err, &oe) {
		t.Fatalf("Pack() without rotation error = %v, want OversizeError", err)
	}
	if oe.ID != "wide" {
		t.Errorf("OversizeError.ID = %q, want wide", oe.ID)
	}
}

func TestPackOverflow(t *testing.T) {
	opts := defaultOpts()
	var rects []Rect
	for i := 0; i < 20; i++ {
		rects = append(rects, Rect{ID: fmt.Sprintf("r%02d", i), Width: 20, Height: 20})
	}

	bins, err := Pack(rects, opts)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	// 64 - 2*1 border = 62 usable, 22 per padded rect: 2x2 per bin.
	if len(bins) != 5 {
		t.Errorf("len(bins) = %d, want 5", len(bins))
	}
	checkBins(t, rects, bins, opts)
}

func TestPackMixedSizes(t *testing.T) {
	opts := defaultOpts()
	opts.MaxWidth, opts.MaxHeight = 128, 128
	var rects []Rect
	for i := 0; i < 40; i++ {
		rects = append(rects, Rect{ID: fmt.Sprintf("s%02d", i), Width: 3 + (i*7)%29, Height: 2 + (i*11)%23})
	}

	bins, err := Pack(rects, opts)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	checkBins(t, rects, bins, opts)
}

func TestPackTagGroups(t *testing.T) {
	opts := defaultOpts()
	opts.Tag = true
	rects := []Rect{
		{ID: "ui/a", Group: "ui", Width: 4, Height: 4},
		{ID: "fx/a", Group: "fx", Width: 4, Height: 4},
		{ID: "ui/b", Group: "ui", Width: 4, Height: 4},
	}

	bins, err := Pack(rects, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(bins) != 2 {
		t.Fatalf("len(bins) = %d, want 2", len(bins))
	}
	for _, b := range bins {
		for _, p := range b.Placements {
			if got := p.ID[:2]; got != b.Group {
				t.Errorf("rect %q in bin of group %q", p.ID, b.Group)
			}
		}
	}
	checkBins(t, rects, bins, opts)

	opts.Tag = false
	bins, err = Pack(rects, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(bins) != 1 {
		t.Errorf("without tag: len(bins) = %d, want 1", len(bins))
	}
}

func TestPackErrors(t *testing.T) {
	tests := []struct {
		name  string
		rects []Rect
		opts  Options
	}{
		{"zero max size", []Rect{{ID: "a", Width: 1, Height: 1}}, Options{}},
		{"negative padding", nil, Options{MaxWidth: 8, MaxHeight: 8, Padding: -1}},
		{"border too large", nil, Options{MaxWidth: 8, MaxHeight: 8, Border: 4}},
		{"empty rect", []Rect{{ID: "a"}}, Options{MaxWidth: 8, MaxHeight: 8}},
		{"oversize", []Rect{{ID: "a", Width: 9, Height: 1}}, Options{MaxWidth: 8, MaxHeight: 8}},
		{"oversize with border", []Rect{{ID: "a", Width: 8, Height: 8}}, Options{MaxWidth: 8, MaxHeight: 8, Border: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Pack(tt.rects, tt.opts); err == nil {
				t.Error("Pack() should fail")
			}
		})
	}
}

func TestPackExactFit(t *testing.T) {
	// Trailing padding may run past the far edge.
	opts := Options{MaxWidth: 8, MaxHeight: 8, Padding: 2}
	bins, err := Pack([]Rect{{ID: "a", Width: 8, Height: 8}}, opts)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if len(bins) != 1 {
		t.Errorf("len(bins) = %d, want 1", len(bins))
	}
}

func TestPackEmpty(t *testing.T) {
	bins, err := Pack(nil, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	if len(bins) != 0 {
		t.Errorf("len(bins) = %d, want 0", len(bins))
	}
}
