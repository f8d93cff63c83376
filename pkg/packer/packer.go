package packer

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/chocolatl/cocos-texture-packer/pkg/crop"
	"github.com/chocolatl/cocos-texture-packer/pkg/maxrects"
	"github.com/chocolatl/cocos-texture-packer/pkg/sprite"
)

// RectPacker places rectangles into bins.
type RectPacker interface {
	Pack(rects []maxrects.Rect, opts maxrects.Options) ([]maxrects.Bin, error)
}

// RectPackerFunc adapts a function to RectPacker.
type RectPackerFunc func(rects []maxrects.Rect, opts maxrects.Options) ([]maxrects.Bin, error)

// Pack calls f.
func (f RectPackerFunc) Pack(rects []maxrects.Rect, opts maxrects.Options) ([]maxrects.Bin, error) {
	return f(rects, opts)
}

// TexturePacker packs registered sprites into sheets. The zero value is not
// usable; call [New].
type TexturePacker struct {
	registry   *sprite.Registry
	packages   []Package
	placements map[string]sprite.Placement

	rects       RectPacker
	logger      *log.Logger
	concurrency int
}

// Option configures a TexturePacker.
type Option func(*TexturePacker)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(tp *TexturePacker) {
		if l != nil {
			tp.logger = l
		}
	}
}

// WithRectPacker replaces the MaxRects packing service.
func WithRectPacker(rp RectPacker) Option {
	return func(tp *TexturePacker) {
		if rp != nil {
			tp.rects = rp
		}
	}
}

// WithConcurrency limits how many sprites are decoded and how many files are
// written at the same time. n <= 0 means no limit.
func WithConcurrency(n int) Option {
	return func(tp *TexturePacker) {
		tp.concurrency = n
	}
}

// New returns an empty TexturePacker.
func New(opts ...Option) *TexturePacker {
	tp := &TexturePacker{
		registry:   sprite.NewRegistry(),
		placements: make(map[string]sprite.Placement),
		rects:      RectPackerFunc(maxrects.Pack),
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(tp)
	}
	return tp
}

// =============================================================================
// Registration
// =============================================================================

// AddOption configures a sprite at registration time.
type AddOption func(*addConfig)

type addConfig struct {
	group string
}

// InGroup places the sprite in a group. With Options.Tag, sprites of different
// groups never share a sheet.
func InGroup(group string) AddOption {
	return func(c *addConfig) { c.group = group }
}

// Add registers a sprite. It fails with DUPLICATE_NAME, leaving the packer
// unchanged, when name is already registered.
func (tp *TexturePacker) Add(name string, src sprite.Source, opts ...AddOption) error {
	var cfg addConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := tp.registry.Add(name, src, cfg.group); err != nil {
		return err
	}
	tp.logger.Debug("added sprite", "name", name, "source", src)
	return nil
}

// AddFile registers the image file at path under name. An empty name uses
// the file's base name.
func (tp *TexturePacker) AddFile(name, path string, opts ...AddOption) error {
	if name == "" {
		name = filepath.Base(path)
	}
	return tp.Add(name, sprite.File(path), opts...)
}

// AddBytes registers an in-memory encoded image under name.
func (tp *TexturePacker) AddBytes(name string, data []byte, opts ...AddOption) error {
	return tp.Add(name, sprite.Bytes(data), opts...)
}

// Remove unregisters a sprite. Sheets produced by an earlier Generate are
// kept as they are until the next Generate.
func (tp *TexturePacker) Remove(name string) bool {
	if !tp.registry.Remove(name) {
		return false
	}
	tp.logger.Debug("removed sprite", "name", name)
	return true
}

// Names returns the registered sprite names in registration order.
func (tp *TexturePacker) Names() []string {
	return tp.registry.Names()
}

// State returns the processing state of a sprite.
func (tp *TexturePacker) State(name string) (sprite.State, bool) {
	e, ok := tp.registry.Get(name)
	if !ok {
		return sprite.Pending, false
	}
	return e.State, true
}

// Trim returns the crop result of a sprite. ok is false until the sprite has
// been cropped by Generate.
func (tp *TexturePacker) Trim(name string) (crop.Trim, bool) {
	e, ok := tp.registry.Get(name)
	if !ok || e.State < sprite.Cropped {
		return crop.Trim{}, false
	}
	return e.Trim, true
}

// Placement returns where the last successful Generate put a sprite.
func (tp *TexturePacker) Placement(name string) (sprite.Placement, bool) {
	p, ok := tp.placements[name]
	return p, ok
}

// =============================================================================
// Results
// =============================================================================

// SpriteSheetCount returns the number of sheets of the last successful
// Generate, or 0 before the first one.
func (tp *TexturePacker) SpriteSheetCount() int {
	return len(tp.packages)
}

// Packages returns the sheets of the last successful Generate. The slice is
// a copy; the images are shared and must not be modified.
func (tp *TexturePacker) Packages() []Package {
	return append([]Package(nil), tp.packages...)
}
