package packer

import (
	"github.com/chocolatl/cocos-texture-packer/pkg/encoder"
	errs "github.com/chocolatl/cocos-texture-packer/pkg/errors"
	"github.com/chocolatl/cocos-texture-packer/pkg/maxrects"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultMaxWidth  = 2048
	DefaultMaxHeight = 2048
	DefaultPadding   = 2
	DefaultBorder    = 5

	// DefaultTextureExtension is the extension of sheet textures.
	DefaultTextureExtension = ".png"

	// DefaultPixelFormat is reported to descriptors when none is given.
	DefaultPixelFormat = encoder.RGBA8888
)

// =============================================================================
// Packing Options
// =============================================================================

// Options configures how sprites are packed into sheets.
type Options struct {
	MaxWidth      int  `json:"max_width" toml:"max_width" yaml:"max_width"`
	MaxHeight     int  `json:"max_height" toml:"max_height" yaml:"max_height"`
	Padding       int  `json:"padding" toml:"padding" yaml:"padding"`
	Border        int  `json:"border" toml:"border" yaml:"border"`
	Smart         bool `json:"smart" toml:"smart" yaml:"smart"`                            // trim sheets to content
	POT           bool `json:"pot" toml:"pot" yaml:"pot"`                                  // power-of-two sheet sides
	Square        bool `json:"square" toml:"square" yaml:"square"`                         // force square sheets
	AllowRotation bool `json:"allow_rotation" toml:"allow_rotation" yaml:"allow_rotation"` // permit 90 degree rotation
	Tag           bool `json:"tag" toml:"tag" yaml:"tag"`                                  // keep groups on separate sheets
}

// DefaultOptions returns the options used when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		MaxWidth:      DefaultMaxWidth,
		MaxHeight:     DefaultMaxHeight,
		Padding:       DefaultPadding,
		Border:        DefaultBorder,
		Smart:         true,
		POT:           true,
		Square:        false,
		AllowRotation: true,
		Tag:           false,
	}
}

// Overrides holds caller-supplied option values. A nil field keeps the
// value it is merged onto.
type Overrides struct {
	MaxWidth      *int  `json:"max_width,omitempty" toml:"max_width" yaml:"max_width,omitempty"`
	MaxHeight     *int  `json:"max_height,omitempty" toml:"max_height" yaml:"max_height,omitempty"`
	Padding       *int  `json:"padding,omitempty" toml:"padding" yaml:"padding,omitempty"`
	Border        *int  `json:"border,omitempty" toml:"border" yaml:"border,omitempty"`
	Smart         *bool `json:"smart,omitempty" toml:"smart" yaml:"smart,omitempty"`
	POT           *bool `json:"pot,omitempty" toml:"pot" yaml:"pot,omitempty"`
	Square        *bool `json:"square,omitempty" toml:"square" yaml:"square,omitempty"`
	AllowRotation *bool `json:"allow_rotation,omitempty" toml:"allow_rotation" yaml:"allow_rotation,omitempty"`
	Tag           *bool `json:"tag,omitempty" toml:"tag" yaml:"tag,omitempty"`
}

// Merge returns o with every non-nil field of ov applied.
func (o Options) Merge(ov Overrides) Options {
	setInt(&o.MaxWidth, ov.MaxWidth)
	setInt(&o.MaxHeight, ov.MaxHeight)
	setInt(&o.Padding, ov.Padding)
	setInt(&o.Border, ov.Border)
	setBool(&o.Smart, ov.Smart)
	setBool(&o.POT, ov.POT)
	setBool(&o.Square, ov.Square)
	setBool(&o.AllowRotation, ov.AllowRotation)
	setBool(&o.Tag, ov.Tag)
	return o
}

// Merge layers next on top of ov; fields set in next win.
func (ov Overrides) Merge(next Overrides) Overrides {
	pick := func(a, b *int) *int {
		if b != nil {
			return b
		}
		return a
	}
	pickBool := func(a, b *bool) *bool {
		if b != nil {
			return b
		}
		return a
	}
	return Overrides{
		MaxWidth:      pick(ov.MaxWidth, next.MaxWidth),
		MaxHeight:     pick(ov.MaxHeight, next.MaxHeight),
		Padding:       pick(ov.Padding, next.Padding),
		Border:        pick(ov.Border, next.Border),
		Smart:         pickBool(ov.Smart, next.Smart),
		POT:           pickBool(ov.POT, next.POT),
		Square:        pickBool(ov.Square, next.Square),
		AllowRotation: pickBool(ov.AllowRotation, next.AllowRotation),
		Tag:           pickBool(ov.Tag, next.Tag),
	}
}

// Validate reports unusable option combinations as INVALID_OPTIONS.
func (o Options) Validate() error {
	if err := o.packOptions().Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidOptions, err, "invalid packing options")
	}
	return nil
}

func (o Options) packOptions() maxrects.Options {
	return maxrects.Options{
		MaxWidth:      o.MaxWidth,
		MaxHeight:     o.MaxHeight,
		Padding:       o.Padding,
		Border:        o.Border,
		Smart:         o.Smart,
		POT:           o.POT,
		Square:        o.Square,
		AllowRotation: o.AllowRotation,
		Tag:           o.Tag,
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Int returns a pointer to v, for building Overrides literals.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for building Overrides literals.
func Bool(v bool) *bool { return &v }

// =============================================================================
// Write Options
// =============================================================================

// WriteOptions adjusts the package infos handed to encoders. Empty fields
// take the defaults.
type WriteOptions struct {
	// TextureExtension is used for textureFileName inside descriptors. The
	// texture itself is always written as PNG.
	TextureExtension string `json:"texture_extension,omitempty" toml:"texture_extension" yaml:"texture_extension,omitempty"`

	// PixelFormat is reported to descriptors.
	PixelFormat string `json:"pixel_format,omitempty" toml:"pixel_format" yaml:"pixel_format,omitempty"`
}

func (w WriteOptions) withDefaults() WriteOptions {
	if w.TextureExtension == "" {
		w.TextureExtension = DefaultTextureExtension
	}
	if w.PixelFormat == "" {
		w.PixelFormat = DefaultPixelFormat
	}
	return w
}
