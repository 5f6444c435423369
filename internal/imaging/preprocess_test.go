package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// createLabelImage builds a synthetic label: dark rectangles ("text") on a
// light, slightly uneven background.
func createLabelImage(t *testing.T, width, height int) *image.RGBA {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Background brightness drifts across the image to exercise
			// the adaptive equalization step.
			bg := uint8(180 + 40*x/max(width, 1))
			img.Set(x, y, color.RGBA{R: bg, G: bg, B: bg, A: 255})
		}
	}
	// Text-like dark strokes.
	for y := height / 3; y < height/3+6; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func TestPreprocessBinaryOutput(t *testing.T) {
	src := createLabelImage(t, 200, 120)

	out := Preprocess(src)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := out.GrayAt(x, y).Y
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want strictly 0 or 255", x, y, v)
			}
		}
	}
}

func TestPreprocessDownscale(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		wantWidth  int
		wantHeight int
	}{
		{"wide image shrinks", 1800, 600, 900, 300},
		{"narrow image untouched", 400, 200, 400, 200},
		{"exact target untouched", 900, 450, 900, 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := createLabelImage(t, tt.width, tt.height)
			out := Preprocess(src)
			if got := out.Bounds().Dx(); got != tt.wantWidth {
				t.Errorf("width = %d, want %d", got, tt.wantWidth)
			}
			if got := out.Bounds().Dy(); got != tt.wantHeight {
				t.Errorf("height = %d, want %d", got, tt.wantHeight)
			}
		})
	}
}

func TestPreprocessDeterministic(t *testing.T) {
	src := createLabelImage(t, 240, 160)

	first := Preprocess(src)
	second := Preprocess(src)

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("two runs over the same image produced different output")
	}
}

func TestPreprocessDoesNotMutateSource(t *testing.T) {
	src := createLabelImage(t, 100, 80)
	before := make([]uint8, len(src.Pix))
	copy(before, src.Pix)

	Preprocess(src)

	if !bytes.Equal(before, src.Pix) {
		t.Error("source image was mutated")
	}
}

func TestOtsuLevelBimodal(t *testing.T) {
	// Half the pixels at 40, half at 200: the optimal split lies between.
	img := image.NewGray(image.Rect(0, 0, 100, 2))
	for x := 0; x < 100; x++ {
		img.SetGray(x, 0, color.Gray{Y: 40})
		img.SetGray(x, 1, color.Gray{Y: 200})
	}

	level := otsuLevel(img)
	if level < 40 || level >= 200 {
		t.Errorf("otsuLevel = %d, want a value in [40, 200)", level)
	}
}

func TestClampIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{-1, 8, 0},
		{0, 8, 0},
		{7, 8, 7},
		{8, 8, 7},
		{100, 8, 7},
	}
	for _, tt := range tests {
		if got := clampIndex(tt.i, tt.n); got != tt.want {
			t.Errorf("clampIndex(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
