package packer

import (
	"image"

	"github.com/chocolatl/cocos-texture-packer/pkg/crop"
	"github.com/chocolatl/cocos-texture-packer/pkg/encoder"
	"github.com/chocolatl/cocos-texture-packer/pkg/sprite"
)

// Package is one generated sheet.
type Package struct {
	// Index is the sheet's position in the generation, starting at 0.
	Index int

	// Group is the sprite group of the sheet when packing with Options.Tag.
	Group string

	Sheet encoder.SheetMeta

	// Names lists the sprites on the sheet in placement order.
	Names []string

	// Image is the composed sheet.
	Image *image.NRGBA

	members []member
}

// member joins a sprite's immutable trim with its placement on this sheet.
type member struct {
	name      string
	trim      crop.Trim
	placement sprite.Placement
}

// Sprites returns the full metadata of every sprite on the sheet.
func (p Package) Sprites() []encoder.SpriteMeta {
	out := make([]encoder.SpriteMeta, len(p.members))
	for i, m := range p.members {
		out[i] = encoder.SpriteMeta{
			Name:       m.name,
			Offset:     m.trim.Offset,
			Position:   m.placement.Position,
			Size:       m.trim.Size,
			SourceSize: m.trim.SourceSize,
			Rotated:    m.placement.Rotated,
			Crop:       m.trim.Crop,
		}
	}
	return out
}

// Info builds the encoder view of the sheet.
func (p Package) Info(fileName string, w WriteOptions) encoder.PackageInfo {
	w = w.withDefaults()
	return encoder.PackageInfo{
		FileName:         fileName,
		TextureExtension: w.TextureExtension,
		PixelFormat:      w.PixelFormat,
		Sheet:            p.Sheet,
		Sprites:          p.Sprites(),
	}
}
