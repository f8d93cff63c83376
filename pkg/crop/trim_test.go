package crop

import (
	"image"
	"testing"
)

func TestCorrect(t *testing.T) {
	tests := []struct {
		name       string
		r          Rect
		srcW, srcH int
		want       Trim
	}{
		{
			name: "no crop",
			srcW: 10, srcH: 10,
			want: Trim{Size: [2]int{10, 10}, SourceSize: [2]int{10, 10}},
		},
		{
			name: "even border",
			r:    Rect{Top: 2, Bottom: 4, Left: 1, Right: 3},
			srcW: 10, srcH: 10,
			want: Trim{
				Crop:       Rect{Top: 2, Bottom: 4, Left: 1, Right: 3},
				Offset:     [2]int{-1, 1},
				Size:       [2]int{6, 4},
				SourceSize: [2]int{10, 10},
			},
		},
		{
			name: "odd width gives back the left pixel",
			r:    Rect{Left: 3},
			srcW: 10, srcH: 10,
			want: Trim{
				Crop:       Rect{Left: 2},
				Offset:     [2]int{1, 0},
				Size:       [2]int{8, 10},
				SourceSize: [2]int{10, 10},
			},
		},
		{
			name: "odd width without left border gives back the right pixel",
			r:    Rect{Right: 1},
			srcW: 9, srcH: 9,
			want: Trim{
				Size:       [2]int{9, 9},
				SourceSize: [2]int{9, 9},
			},
		},
		{
			name: "odd height gives back the top pixel",
			r:    Rect{Top: 1, Bottom: 2},
			srcW: 4, srcH: 11,
			want: Trim{
				Crop:       Rect{Top: 0, Bottom: 2},
				Offset:     [2]int{0, 1},
				Size:       [2]int{4, 9},
				SourceSize: [2]int{4, 11},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Correct(tt.r, tt.srcW, tt.srcH); got != tt.want {
				t.Errorf("Correct() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCorrectInvariants(t *testing.T) {
	for srcW := 1; srcW <= 9; srcW++ {
		for srcH := 1; srcH <= 9; srcH++ {
			for l := 0; l < srcW; l++ {
				for r := 0; l+r < srcW; r++ {
					for top := 0; top < srcH; top++ {
						bottom := (srcH - top - 1) / 2
						tr := Correct(Rect{Top: top, Bottom: bottom, Left: l, Right: r}, srcW, srcH)

						if tr.Size[0]%2 != srcW%2 || tr.Size[1]%2 != srcH%2 {
							t.Fatalf("parity broken for %dx%d l=%d r=%d t=%d b=%d: %+v", srcW, srcH, l, r, top, bottom, tr)
						}
						if tr.Offset[0]*2 != tr.Crop.Left-tr.Crop.Right {
							t.Fatalf("x offset not exact: %+v", tr)
						}
						if tr.Offset[1]*2 != tr.Crop.Bottom-tr.Crop.Top {
							t.Fatalf("y offset not exact: %+v", tr)
						}
						if tr.Crop.Left < 0 || tr.Crop.Right < 0 || tr.Crop.Top < 0 || tr.Crop.Bottom < 0 {
							t.Fatalf("negative crop: %+v", tr)
						}
						if tr.Size[0]+tr.Crop.Left+tr.Crop.Right != srcW || tr.Size[1]+tr.Crop.Top+tr.Crop.Bottom != srcH {
							t.Fatalf("crop does not add up: %+v", tr)
						}
					}
				}
			}
		}
	}
}

func TestAnalyze(t *testing.T) {
	tr := Analyze(newSprite(12, 10, 1, 2, 3, 0))

	if tr.SourceSize != [2]int{12, 10} {
		t.Errorf("SourceSize = %v, want [12 10]", tr.SourceSize)
	}
	// width 12-3=9 is odd: left border shrinks to 2
	if tr.Size != [2]int{10, 8} {
		t.Errorf("Size = %v, want [10 8]", tr.Size)
	}
	// height 10-3=7 is odd: top border shrinks to 0
	if tr.Offset != [2]int{1, 1} {
		t.Errorf("Offset = %v, want [1 1]", tr.Offset)
	}
	if got, want := tr.Bounds(), image.Rect(2, 0, 12, 8); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}
