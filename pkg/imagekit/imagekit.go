// Package imagekit is the image service used by the packer.
//
// It decodes sprite sources into NRGBA buffers, crops and rotates them,
// composites them onto sheets and encodes the result. Decoding and encoding
// are delegated to [github.com/disintegration/imaging]; PNG, JPEG, GIF, BMP,
// TIFF and WebP sources are understood.
//
// Every function returns a new image unless documented otherwise, so the
// registry's decoded sprites are never modified by rotation or compositing.
package imagekit

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Decode reads an image from r and converts it to NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	return toNRGBA(img), nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (*image.NRGBA, error) {
	return Decode(bytes.NewReader(data))
}

// Open decodes the image file at path.
func Open(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return toNRGBA(img), nil
}

// toNRGBA returns img as a zero-origin NRGBA image, copying only when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// Crop returns a copy of the region r of img. The copy's origin is (0, 0).
func Crop(img image.Image, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, r.Add(img.Bounds().Min))
}

// RotateCW returns a copy of img rotated 90 degrees clockwise.
func RotateCW(img image.Image) *image.NRGBA {
	return imaging.Rotate270(img)
}

// NewCanvas returns a fully transparent w x h image.
func NewCanvas(w, h int) *image.NRGBA {
	return imaging.New(w, h, color.Transparent)
}

// Composite copies src onto dst with its top-left corner at at. Pixels are
// copied unblended, so sprites keep their exact non-premultiplied values; the
// target region of dst is expected to be empty. dst is modified in place.
func Composite(dst draw.Image, src image.Image, at image.Point) {
	b := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(b.Size())}
	d, dok := dst.(*image.NRGBA)
	s, sok := src.(*image.NRGBA)
	if !dok || !sok {
		draw.Draw(dst, r, src, b.Min, draw.Src)
		return
	}

	// NRGBA onto NRGBA: copy rows directly, draw.Draw would round-trip
	// through premultiplied alpha.
	r = r.Intersect(d.Rect)
	n := 4 * r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := d.PixOffset(r.Min.X, y)
		si := s.PixOffset(b.Min.X+r.Min.X-at.X, b.Min.Y+y-at.Y)
		copy(d.Pix[di:di+n], s.Pix[si:si+n])
	}
}

// EncodePNG encodes img as PNG into a new buffer.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
