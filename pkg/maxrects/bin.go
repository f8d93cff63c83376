package maxrects

type area struct{ x, y, w, h int }

func (a area) contains(b area) bool {
	return b.x >= a.x && b.y >= a.y && b.x+b.w <= a.x+a.w && b.y+b.h <= a.y+a.h
}

func (a area) intersects(b area) bool {
	return a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
}

// bin tracks the free space of one bin. Every placed rectangle reserves its
// size plus padding on the right and bottom, so the initial free area is
// enlarged by one padding to let rectangles touch the far edges.
type bin struct {
	opts   Options
	group  string
	free   []area
	placed []Placement

	// right and bottom are the content extent, without trailing padding.
	right, bottom int
}

func newBin(opts Options, group string) *bin {
	b, p := opts.Border, opts.Padding
	return &bin{
		opts:  opts,
		group: group,
		free:  []area{{x: b, y: b, w: opts.MaxWidth + p - 2*b, h: opts.MaxHeight + p - 2*b}},
	}
}

type candidate struct {
	node        area
	rotated     bool
	short, long int
	ok          bool
}

func (c candidate) better(o candidate) bool {
	if !o.ok {
		return true
	}
	if c.short != o.short {
		return c.short < o.short
	}
	if c.long != o.long {
		return c.long < o.long
	}
	if c.node.y != o.node.y {
		return c.node.y < o.node.y
	}
	return c.node.x < o.node.x
}

// insert places r if there is room and reports whether it did.
func (b *bin) insert(r Rect) bool {
	p := b.opts.Padding
	best := b.find(r.Width+p, r.Height+p, false)
	if b.opts.AllowRotation && r.Width != r.Height {
		if c := b.find(r.Height+p, r.Width+p, true); c.ok && c.better(best) {
			best = c
		}
	}
	if !best.ok {
		return false
	}

	b.split(best.node)
	b.prune()

	b.placed = append(b.placed, Placement{ID: r.ID, X: best.node.x, Y: best.node.y, Rotated: best.rotated})
	b.right = max(b.right, best.node.x+best.node.w-p)
	b.bottom = max(b.bottom, best.node.y+best.node.h-p)
	return true
}

// find returns the best-short-side-fit node of size w x h.
func (b *bin) find(w, h int, rotated bool) candidate {
	var best candidate
	for _, f := range b.free {
		if f.w < w || f.h < h {
			continue
		}
		dw, dh := f.w-w, f.h-h
		c := candidate{
			node:    area{x: f.x, y: f.y, w: w, h: h},
			rotated: rotated,
			short:   min(dw, dh),
			long:    max(dw, dh),
			ok:      true,
		}
		if c.better(best) {
			best = c
		}
	}
	return best
}

// split carves node out of every free area it overlaps.
func (b *bin) split(node area) {
	next := make([]area, 0, len(b.free)+4)
	for _, f := range b.free {
		if !f.intersects(node) {
			next = append(next, f)
			continue
		}
		if node.x > f.x {
			next = append(next, area{x: f.x, y: f.y, w: node.x - f.x, h: f.h})
		}
		if node.x+node.w < f.x+f.w {
			next = append(next, area{x: node.x + node.w, y: f.y, w: f.x + f.w - node.x - node.w, h: f.h})
		}
		if node.y > f.y {
			next = append(next, area{x: f.x, y: f.y, w: f.w, h: node.y - f.y})
		}
		if node.y+node.h < f.y+f.h {
			next = append(next, area{x: f.x, y: node.y + node.h, w: f.w, h: f.y + f.h - node.y - node.h})
		}
	}
	b.free = next
}

// prune drops free areas fully contained in another one.
func (b *bin) prune() {
	keep := make([]area, 0, len(b.free))
	for i, f := range b.free {
		redundant := false
		for j, g := range b.free {
			if i == j || !g.contains(f) {
				continue
			}
			// Identical areas: keep the first one.
			if f == g && i < j {
				continue
			}
			redundant = true
			break
		}
		if !redundant {
			keep = append(keep, f)
		}
	}
	b.free = keep
}

// size returns the final bin dimensions.
func (b *bin) size() (int, int) {
	o := b.opts
	w, h := o.MaxWidth, o.MaxHeight
	if o.Smart {
		w, h = b.right+o.Border, b.bottom+o.Border
	}
	if o.POT {
		w, h = nextPow2(w), nextPow2(h)
	}
	if o.Square {
		w = max(w, h)
		h = w
	}
	return min(w, o.MaxWidth), min(h, o.MaxHeight)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
