package crop

import "image"

// Trim is the result of cropping one sprite. It is computed once and never
// changes afterwards.
type Trim struct {
	// Crop is the border actually removed, after parity correction.
	Crop Rect `json:"crop"`

	// Offset is the shift of the cropped image's center relative to the
	// center of the source image, in pixels. Y grows upwards.
	Offset [2]int `json:"offset"`

	// Size is the cropped [w, h].
	Size [2]int `json:"size"`

	// SourceSize is the uncropped [w, h].
	SourceSize [2]int `json:"sourceSize"`
}

// Bounds returns the region of the source image kept by the trim, relative to
// the source's top-left corner.
func (t Trim) Bounds() image.Rectangle {
	return image.Rect(t.Crop.Left, t.Crop.Top, t.Crop.Left+t.Size[0], t.Crop.Top+t.Size[1])
}

// Correct derives the trim for a source image of size srcW x srcH with the
// measured transparent border r.
//
// When the cropped width would have a different parity than srcW, one pixel
// of border is given back (on the left if there is any, else on the right) so
// that (Left-Right) is even. Height is handled the same way with Top and
// Bottom. The offsets are then exact integer halves.
func Correct(r Rect, srcW, srcH int) Trim {
	w := srcW - r.Left - r.Right
	h := srcH - r.Top - r.Bottom

	if w%2 != srcW%2 {
		if r.Left > 0 {
			r.Left--
		} else {
			r.Right--
		}
		w++
	}
	if h%2 != srcH%2 {
		if r.Top > 0 {
			r.Top--
		} else {
			r.Bottom--
		}
		h++
	}

	return Trim{
		Crop:       r,
		Offset:     [2]int{(r.Left - r.Right) / 2, (r.Bottom - r.Top) / 2},
		Size:       [2]int{w, h},
		SourceSize: [2]int{srcW, srcH},
	}
}

// Analyze measures img and returns its corrected trim.
func Analyze(img image.Image) Trim {
	b := img.Bounds()
	return Correct(ComputeRect(img), b.Dx(), b.Dy())
}
