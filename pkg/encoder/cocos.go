package encoder

import (
	"fmt"

	"howett.net/plist"
)

// cocosFormat is the Cocos2d-x sprite frame format version written to metadata.
const cocosFormat = 3

type cocosFrame struct {
	Aliases          []string `plist:"aliases"`
	SpriteOffset     string   `plist:"spriteOffset"`     // {x,y}
	SpriteSize       string   `plist:"spriteSize"`       // {w,h}
	SpriteSourceSize string   `plist:"spriteSourceSize"` // {w,h}
	TextureRect      string   `plist:"textureRect"`      // {{x,y},{w,h}}
	TextureRotated   bool     `plist:"textureRotated"`
}

type cocosMetadata struct {
	Format           int    `plist:"format"`
	PixelFormat      string `plist:"pixelFormat"`
	PremultiplyAlpha bool   `plist:"premultiplyAlpha"`
	Size             string `plist:"size"`
	TextureFileName  string `plist:"textureFileName"`
}

type cocosSheet struct {
	Frames   map[string]cocosFrame `plist:"frames"`
	Metadata cocosMetadata         `plist:"metadata"`
}

// Cocos writes Cocos2d-x sprite sheet property lists (format 3).
type Cocos struct{}

const cocosExtension = ".plist"

func (Cocos) Encode(info PackageInfo) (Descriptor, bool, error) {
	data, err := encodeCocos(info)
	if err != nil {
		return Descriptor{}, false, err
	}
	return Descriptor{Extension: cocosExtension, Data: data}, true, nil
}

func (Cocos) EncodeMultiple(infos []PackageInfo) (MultiDescriptor, bool, error) {
	return encodeEach(infos, cocosExtension, encodeCocos)
}

func encodeCocos(info PackageInfo) ([]byte, error) {
	sheet := cocosSheet{
		Frames: make(map[string]cocosFrame, len(info.Sprites)),
		Metadata: cocosMetadata{
			Format:           cocosFormat,
			PixelFormat:      info.PixelFormat,
			PremultiplyAlpha: info.Sheet.PremultiplyAlpha,
			Size:             brace(info.Sheet.Size),
			TextureFileName:  info.TextureFileName(),
		},
	}
	for _, s := range info.Sprites {
		sheet.Frames[s.Name] = cocosFrame{
			Aliases:          []string{},
			SpriteOffset:     brace(s.Offset),
			SpriteSize:       brace(s.Size),
			SpriteSourceSize: brace(s.SourceSize),
			TextureRect:      braceRect(s.Position, s.Size),
			TextureRotated:   s.Rotated,
		}
	}
	return plist.MarshalIndent(sheet, plist.XMLFormat, "  ")
}

// brace renders a pair as "{a,b}".
func brace(v [2]int) string {
	return fmt.Sprintf("{%d,%d}", v[0], v[1])
}

// braceRect renders a rectangle as "{{x,y},{w,h}}".
func braceRect(pos, size [2]int) string {
	return "{" + brace(pos) + "," + brace(size) + "}"
}
