package encoder

import (
	"encoding/json"

	"github.com/chocolatl/cocos-texture-packer/pkg/buildinfo"
)

const jsonExtension = ".json"

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonMeta struct {
	App     string    `json:"app"`
	Version string    `json:"version"`
	Image   string    `json:"image,omitempty"`
	Format  string    `json:"format,omitempty"`
	Size    *jsonSize `json:"size,omitempty"`
	Scale   string    `json:"scale,omitempty"`
}

type jsonHashSheet struct {
	Frames map[string]jsonFrame `json:"frames"`
	Meta   jsonMeta             `json:"meta"`
}

type jsonTexture struct {
	Image  string               `json:"image"`
	Format string               `json:"format"`
	Size   jsonSize             `json:"size"`
	Scale  string               `json:"scale"`
	Frames map[string]jsonFrame `json:"frames"`
}

type jsonArraySheet struct {
	Textures []jsonTexture `json:"textures"`
	Meta     jsonMeta      `json:"meta"`
}

// JSONHash writes TexturePacker "JSON (Hash)" descriptors, one per sheet.
type JSONHash struct{}

func (JSONHash) Encode(info PackageInfo) (Descriptor, bool, error) {
	data, err := encodeJSONHash(info)
	if err != nil {
		return Descriptor{}, false, err
	}
	return Descriptor{Extension: jsonExtension, Data: data}, true, nil
}

func (JSONHash) EncodeMultiple(infos []PackageInfo) (MultiDescriptor, bool, error) {
	return encodeEach(infos, jsonExtension, encodeJSONHash)
}

// JSONArray writes a single TexturePacker multi-pack descriptor listing every
// sheet under "textures".
type JSONArray struct{}

func (JSONArray) Encode(info PackageInfo) (Descriptor, bool, error) {
	data, err := encodeJSONArray([]PackageInfo{info})
	if err != nil {
		return Descriptor{}, false, err
	}
	return Descriptor{Extension: jsonExtension, Data: data}, true, nil
}

func (JSONArray) EncodeMultiple(infos []PackageInfo) (MultiDescriptor, bool, error) {
	data, err := encodeJSONArray(infos)
	if err != nil {
		return MultiDescriptor{}, false, err
	}
	return MultiDescriptor{Extension: jsonExtension, Buffers: [][]byte{data}}, true, nil
}

func encodeJSONHash(info PackageInfo) ([]byte, error) {
	size := jsonSize{W: info.Sheet.Size[0], H: info.Sheet.Size[1]}
	sheet := jsonHashSheet{
		Frames: jsonFrames(info.Sprites),
		Meta: jsonMeta{
			App:     buildinfo.App,
			Version: buildinfo.Version,
			Image:   info.TextureFileName(),
			Format:  info.PixelFormat,
			Size:    &size,
			Scale:   "1",
		},
	}
	return json.MarshalIndent(sheet, "", "  ")
}

func encodeJSONArray(infos []PackageInfo) ([]byte, error) {
	sheet := jsonArraySheet{
		Textures: make([]jsonTexture, len(infos)),
		Meta:     jsonMeta{App: buildinfo.App, Version: buildinfo.Version},
	}
	for i, info := range infos {
		sheet.Textures[i] = jsonTexture{
			Image:  info.TextureFileName(),
			Format: info.PixelFormat,
			Size:   jsonSize{W: info.Sheet.Size[0], H: info.Sheet.Size[1]},
			Scale:  "1",
			Frames: jsonFrames(info.Sprites),
		}
	}
	return json.MarshalIndent(sheet, "", "  ")
}

func jsonFrames(sprites []SpriteMeta) map[string]jsonFrame {
	frames := make(map[string]jsonFrame, len(sprites))
	for _, s := range sprites {
		frames[s.Name] = jsonFrame{
			Frame:            jsonRect{X: s.Position[0], Y: s.Position[1], W: s.Size[0], H: s.Size[1]},
			Rotated:          s.Rotated,
			Trimmed:          s.Trimmed(),
			SpriteSourceSize: jsonRect{X: s.Crop.Left, Y: s.Crop.Top, W: s.Size[0], H: s.Size[1]},
			SourceSize:       jsonSize{W: s.SourceSize[0], H: s.SourceSize[1]},
		}
	}
	return frames
}
