// Package crop finds and removes fully transparent borders around sprites.
//
// [ComputeRect] measures the transparent border on each side of an image.
// [Correct] turns that measurement into a [Trim]: the border is adjusted so
// that the cropped size keeps the parity of the source size, which makes the
// center offset between the cropped and the original image a whole number of
// pixels.
//
// A pixel counts as transparent when its 8-bit alpha is at most
// [AlphaThreshold]. Rows and columns are scanned independently over the
// original image, so the horizontal and vertical results never interact.
package crop

import (
	"image"
)

// AlphaThreshold is the highest 8-bit alpha value still treated as transparent.
const AlphaThreshold = 5

// Rect is the thickness of the fully transparent border on each side of an image.
type Rect struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// IsZero reports whether there is nothing to crop.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// ComputeRect returns the transparent border of img.
//
// If the image is transparent from top to bottom, Top and Bottom are both 0;
// likewise Left and Right when it is transparent from left to right. A blank
// sprite is therefore never cropped down to nothing.
func ComputeRect(img image.Image) Rect {
	a := alphaReader(img)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rowClear := func(y int) bool {
		for x := 0; x < w; x++ {
			if a(x, y) > AlphaThreshold {
				return false
			}
		}
		return true
	}
	colClear := func(x int) bool {
		for y := 0; y < h; y++ {
			if a(x, y) > AlphaThreshold {
				return false
			}
		}
		return true
	}

	var r Rect
	for y := 0; y < h && rowClear(y); y++ {
		r.Top++
	}
	for y := h - 1; y >= 0 && rowClear(y); y-- {
		r.Bottom++
	}
	if r.Top+r.Bottom >= h {
		r.Top, r.Bottom = 0, 0
	}

	for x := 0; x < w && colClear(x); x++ {
		r.Left++
	}
	for x := w - 1; x >= 0 && colClear(x); x-- {
		r.Right++
	}
	if r.Left+r.Right >= w {
		r.Left, r.Right = 0, 0
	}

	return r
}

// alphaReader returns a function yielding the 8-bit alpha at (x, y), relative
// to the image's top-left corner.
func alphaReader(img image.Image) func(x, y int) uint8 {
	b := img.Bounds()
	switch m := img.(type) {
	case *image.NRGBA:
		return func(x, y int) uint8 {
			return m.Pix[m.PixOffset(b.Min.X+x, b.Min.Y+y)+3]
		}
	case *image.RGBA:
		return func(x, y int) uint8 {
			return m.Pix[m.PixOffset(b.Min.X+x, b.Min.Y+y)+3]
		}
	case *image.Alpha:
		return func(x, y int) uint8 {
			return m.Pix[m.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return func(x, y int) uint8 {
		_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return uint8(a >> 8)
	}
}
