package encoder

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"howett.net/plist"

	"github.com/chocolatl/cocos-texture-packer/pkg/buildinfo"
	"github.com/chocolatl/cocos-texture-packer/pkg/crop"
	errs "github.com/chocolatl/cocos-texture-packer/pkg/errors"
)

func testInfo(name string) PackageInfo {
	return PackageInfo{
		FileName:         name,
		TextureExtension: ".png",
		PixelFormat:      RGBA8888,
		Sheet:            SheetMeta{Size: [2]int{64, 32}},
		Sprites: []SpriteMeta{
			{
				Name:       "hero.png",
				Offset:     [2]int{1, -1},
				Position:   [2]int{5, 5},
				Size:       [2]int{10, 8},
				SourceSize: [2]int{12, 10},
				Crop:       crop.Rect{Top: 2, Bottom: 0, Left: 2, Right: 0},
			},
			{
				Name:       "coin.png",
				Position:   [2]int{17, 5},
				Size:       [2]int{6, 4},
				SourceSize: [2]int{6, 4},
				Rotated:    true,
			},
		},
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want Encoder
	}{
		{"none", None{}},
		{"cocos", Cocos{}},
		{"json", JSONHash{}},
		{"json-array", JSONArray{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByName(tt.name)
			if err != nil {
				t.Fatalf("ByName(%q) error: %v", tt.name, err)
			}
			if reflect.TypeOf(got) != reflect.TypeOf(tt.want) {
				t.Errorf("ByName(%q) = %T, want %T", tt.name, got, tt.want)
			}
		})
	}

	if _, err := ByName("xml"); !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("ByName(xml) error = %v, want UNSUPPORTED", err)
	}
	if got := Names(); !reflect.DeepEqual(got, []string{"cocos", "json", "json-array", "none"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestNone(t *testing.T) {
	if _, ok, err := (None{}).Encode(testInfo("a")); ok || err != nil {
		t.Errorf("Encode() ok=%v err=%v, want false, nil", ok, err)
	}
	if _, ok, err := (None{}).EncodeMultiple([]PackageInfo{testInfo("a")}); ok || err != nil {
		t.Errorf("EncodeMultiple() ok=%v err=%v, want false, nil", ok, err)
	}
}

func TestCocosEncode(t *testing.T) {
	info := testInfo("sheet")
	info.TextureExtension = ".pvr.ccz"

	desc, ok, err := Cocos{}.Encode(info)
	if err != nil || !ok {
		t.Fatalf("Encode() ok=%v err=%v", ok, err)
	}
	if desc.Extension != ".plist" {
		t.Errorf("Extension = %q", desc.Extension)
	}
	if !strings.Contains(string(desc.Data), "<plist") {
		t.Errorf("expected an XML plist, got:\n%s", desc.Data)
	}

	var got cocosSheet
	if _, err := plist.Unmarshal(desc.Data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	hero := got.Frames["hero.png"]
	want := cocosFrame{
		Aliases:          []string{},
		SpriteOffset:     "{1,-1}",
		SpriteSize:       "{10,8}",
		SpriteSourceSize: "{12,10}",
		TextureRect:      "{{5,5},{10,8}}",
	}
	if hero.SpriteOffset != want.SpriteOffset || hero.SpriteSize != want.SpriteSize ||
		hero.SpriteSourceSize != want.SpriteSourceSize || hero.TextureRect != want.TextureRect ||
		hero.TextureRotated || len(hero.Aliases) != 0 {
		t.Errorf("hero frame = %+v, want %+v", hero, want)
	}
	if !got.Frames["coin.png"].TextureRotated {
		t.Error("coin frame should be rotated")
	}

	meta := got.Metadata
	if meta.Format != 3 || meta.PixelFormat != "RGBA8888" || meta.PremultiplyAlpha ||
		meta.Size != "{64,32}" || meta.TextureFileName != "sheet.pvr.ccz" {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestCocosEncodeMultiple(t *testing.T) {
	infos := []PackageInfo{testInfo("s-0"), testInfo("s-1"), testInfo("s-2")}
	md, ok, err := Cocos{}.EncodeMultiple(infos)
	if err != nil || !ok {
		t.Fatalf("EncodeMultiple() ok=%v err=%v", ok, err)
	}
	if md.Extension != ".plist" || len(md.Buffers) != len(infos) {
		t.Fatalf("got ext %q with %d buffers", md.Extension, len(md.Buffers))
	}
	for i, buf := range md.Buffers {
		want := infos[i].TextureFileName()
		if !strings.Contains(string(buf), want) {
			t.Errorf("buffer %d does not reference %s", i, want)
		}
	}
}

func TestBrace(t *testing.T) {
	if got := brace([2]int{3, -4}); got != "{3,-4}" {
		t.Errorf("brace() = %q", got)
	}
	if got := braceRect([2]int{1, 2}, [2]int{3, 4}); got != "{{1,2},{3,4}}" {
		t.Errorf("braceRect() = %q", got)
	}
}

func TestJSONHash(t *testing.T) {
	desc, ok, err := JSONHash{}.Encode(testInfo("sheet"))
	if err != nil || !ok {
		t.Fatalf("Encode() ok=%v err=%v", ok, err)
	}
	if desc.Extension != ".json" {
		t.Errorf("Extension = %q", desc.Extension)
	}

	var got jsonHashSheet
	if err := json.Unmarshal(desc.Data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	hero := got.Frames["hero.png"]
	if hero.Frame != (jsonRect{X: 5, Y: 5, W: 10, H: 8}) {
		t.Errorf("hero frame = %+v", hero.Frame)
	}
	if !hero.Trimmed || hero.SpriteSourceSize != (jsonRect{X: 2, Y: 2, W: 10, H: 8}) {
		t.Errorf("hero trim = %v %+v", hero.Trimmed, hero.SpriteSourceSize)
	}
	if hero.SourceSize != (jsonSize{W: 12, H: 10}) {
		t.Errorf("hero sourceSize = %+v", hero.SourceSize)
	}
	coin := got.Frames["coin.png"]
	if !coin.Rotated || coin.Trimmed {
		t.Errorf("coin = %+v", coin)
	}
	if got.Meta.App != buildinfo.App || got.Meta.Version != buildinfo.Version {
		t.Errorf("meta generator = %s %s", got.Meta.App, got.Meta.Version)
	}
	if got.Meta.Image != "sheet.png" || got.Meta.Size == nil || *got.Meta.Size != (jsonSize{W: 64, H: 32}) {
		t.Errorf("meta = %+v", got.Meta)
	}
}

func TestJSONArray(t *testing.T) {
	infos := []PackageInfo{testInfo("s-0"), testInfo("s-1")}
	md, ok, err := JSONArray{}.EncodeMultiple(infos)
	if err != nil || !ok {
		t.Fatalf("EncodeMultiple() ok=%v err=%v", ok, err)
	}
	if len(md.Buffers) != 1 {
		t.Fatalf("len(Buffers) = %d, want 1", len(md.Buffers))
	}

	var got jsonArraySheet
	if err := json.Unmarshal(md.Buffers[0], &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(got.Textures) != 2 {
		t.Fatalf("len(textures) = %d", len(got.Textures))
	}
	for i, tex := range got.Textures {
		if tex.Image != infos[i].TextureFileName() || len(tex.Frames) != 2 {
			t.Errorf("texture %d = %s with %d frames", i, tex.Image, len(tex.Frames))
		}
	}

	desc, ok, err := JSONArray{}.Encode(infos[0])
	if err != nil || !ok || desc.Extension != ".json" {
		t.Errorf("Encode() = %q ok=%v err=%v", desc.Extension, ok, err)
	}
}
