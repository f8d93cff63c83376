// Package encoder turns packed sheet metadata into descriptor files.
//
// An [Encoder] receives one [PackageInfo] per sheet and returns the bytes of
// a side-car descriptor. Returning ok == false means no descriptor should be
// written at all, which is how texture-only output is produced.
//
// # Built-in encoders
//
//   - none: no descriptor, textures only
//   - cocos: Cocos2d-x property list, one file per sheet
//   - json: TexturePacker JSON (hash), one file per sheet
//   - json-array: TexturePacker multi-pack JSON, one file for all sheets
//
// Use [ByName] to look one up:
//
//	enc, err := encoder.ByName("cocos")
//	if err != nil {
//	    return err
//	}
//	desc, ok, err := enc.Encode(info)
package encoder

import (
	"sort"

	"github.com/chocolatl/cocos-texture-packer/pkg/crop"
	errs "github.com/chocolatl/cocos-texture-packer/pkg/errors"
)

// PixelFormat names the pixel layout of a sheet texture.
type PixelFormat = string

// RGBA8888 is the default pixel format.
const RGBA8888 PixelFormat = "RGBA8888"

// SheetMeta describes one sheet texture.
type SheetMeta struct {
	// Size is the texture's [w, h].
	Size [2]int

	// PremultiplyAlpha is always false: textures are written straight.
	PremultiplyAlpha bool
}

// SpriteMeta is the full placement record of one sprite.
type SpriteMeta struct {
	Name string

	// Offset is the center shift caused by cropping.
	Offset [2]int

	// Position is the top-left corner in the sheet.
	Position [2]int

	// Size is the cropped [w, h], before rotation.
	Size [2]int

	// SourceSize is the uncropped [w, h].
	SourceSize [2]int

	// Rotated reports that the sprite is stored 90 degrees clockwise.
	Rotated bool

	// Crop is the removed transparent border.
	Crop crop.Rect
}

// Trimmed reports whether any transparent border was removed.
func (s SpriteMeta) Trimmed() bool {
	return s.Size != s.SourceSize
}

// PackageInfo is the encoder's view of one sheet.
type PackageInfo struct {
	// FileName is the sheet's base file name, without extension.
	FileName string

	// TextureExtension is appended to FileName to name the texture file.
	TextureExtension string

	PixelFormat PixelFormat
	Sheet       SheetMeta
	Sprites     []SpriteMeta
}

// TextureFileName returns the texture file name referenced by descriptors.
func (p PackageInfo) TextureFileName() string {
	return p.FileName + p.TextureExtension
}

// Descriptor is an encoded descriptor for one sheet.
type Descriptor struct {
	Extension string // e.g. ".plist"
	Data      []byte
}

// MultiDescriptor is the result of encoding several sheets at once.
//
// Buffers has either one element, shared by all sheets, or one element per
// sheet in the order the infos were given.
type MultiDescriptor struct {
	Extension string
	Buffers   [][]byte
}

// Encoder serializes sheet metadata.
type Encoder interface {
	// Encode returns the descriptor for a single sheet.
	Encode(info PackageInfo) (Descriptor, bool, error)

	// EncodeMultiple returns the descriptors for all sheets of a run.
	EncodeMultiple(infos []PackageInfo) (MultiDescriptor, bool, error)
}

// =============================================================================
// Registry
// =============================================================================

var registry = map[string]func() Encoder{
	"none":       func() Encoder { return None{} },
	"cocos":      func() Encoder { return Cocos{} },
	"json":       func() Encoder { return JSONHash{} },
	"json-array": func() Encoder { return JSONArray{} },
}

// ByName returns the built-in encoder registered under name.
func ByName(name string) (Encoder, error) {
	f, ok := registry[name]
	if !ok {
		return nil, errs.New(errs.ErrCodeUnsupported, "unknown encoder %q (must be one of: %v)", name, Names())
	}
	return f(), nil
}

// Names lists the built-in encoder names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// encodeEach runs encode once per info and collects the buffers.
func encodeEach(infos []PackageInfo, ext string, encode func(PackageInfo) ([]byte, error)) (MultiDescriptor, bool, error) {
	out := MultiDescriptor{Extension: ext, Buffers: make([][]byte, len(infos))}
	for i, info := range infos {
		data, err := encode(info)
		if err != nil {
			return MultiDescriptor{}, false, errs.Wrap(errs.ErrCodeEncode, err, "encode %s", info.FileName)
		}
		out.Buffers[i] = data
	}
	return out, true, nil
}
