package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	dimaging "github.com/disintegration/imaging"
)

const (
	// targetWidth is the maximum width of a preprocessed image. Wider
	// inputs are shrunk to this; narrower inputs are never enlarged.
	targetWidth = 900

	// equalizeTiles is the tile grid dimension for adaptive histogram
	// equalization (an 8x8 grid of tiles).
	equalizeTiles = 8

	// equalizeClipLimit caps per-tile histogram bins to avoid amplifying
	// noise in flat regions.
	equalizeClipLimit = 2.0
)

// Preprocess normalizes a photograph into a binary image suitable for OCR.
//
// The pipeline is fixed: grayscale, downscale to at most 900px wide,
// contrast-limited adaptive histogram equalization, median denoise, mild
// Gaussian smoothing, Otsu binarization, and one morphological closing
// pass. The result contains only the values 0 and 255.
//
// Preprocess is total: given any decoded image it produces a result and
// never fails. It allocates its own buffers and never mutates src.
func Preprocess(src image.Image) *image.Gray {
	gray := asGray(effect.Grayscale(src))
	gray = downscale(gray)
	gray = equalizeAdaptive(gray, equalizeTiles, equalizeClipLimit)
	gray = asGray(effect.Grayscale(effect.Median(gray, 1)))
	gray = asGray(effect.Grayscale(blur.Gaussian(gray, 1)))
	binary := segment.Threshold(gray, otsuLevel(gray))
	return closeStrokes(binary)
}

// downscale shrinks an image to targetWidth preserving aspect ratio.
// Images at or below the target width pass through unchanged.
func downscale(g *image.Gray) *image.Gray {
	if g.Bounds().Dx() <= targetWidth {
		return g
	}
	resized := dimaging.Resize(g, targetWidth, 0, dimaging.Lanczos)
	return asGray(effect.Grayscale(resized))
}

// asGray converts the RGBA output of bild's effect functions to *image.Gray.
// bild's Grayscale sets R, G, and B to the same luminance value, so taking a
// single channel is lossless.
func asGray(rgba *image.RGBA) *image.Gray {
	b := rgba.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetGray(x, y, color.Gray{Y: rgba.RGBAAt(x, y).R})
		}
	}
	return dst
}

// closeStrokes applies one morphological closing pass (dilate then erode,
// small square element) to reconnect broken character strokes. Closing a
// binary image yields a binary image.
func closeStrokes(binary *image.Gray) *image.Gray {
	dilated := effect.Dilate(binary, 1)
	return asGray(effect.Grayscale(effect.Erode(dilated, 1)))
}

// otsuLevel picks the global threshold that maximizes between-class
// variance over the grayscale histogram.
func otsuLevel(g *image.Gray) uint8 {
	var hist [256]int
	b := g.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[g.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	best := -1.0
	level := uint8(0)
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			level = uint8(t)
		}
	}
	return level
}

// equalizeAdaptive performs contrast-limited adaptive histogram
// equalization over a tiles x tiles grid.
//
// Each tile gets a clipped, redistributed histogram whose CDF becomes a
// per-tile intensity mapping; output pixels bilinearly interpolate between
// the mappings of the four surrounding tile centers, which avoids visible
// seams at tile borders.
func equalizeAdaptive(src *image.Gray, tiles int, clip float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	tw := (w + tiles - 1) / tiles
	th := (h + tiles - 1) / tiles
	nx := (w + tw - 1) / tw
	ny := (h + th - 1) / th

	luts := make([][]uint8, nx*ny)
	for ty := 0; ty < ny; ty++ {
		for tx := 0; tx < nx; tx++ {
			x0, y0 := tx*tw, ty*th
			x1, y1 := min(x0+tw, w), min(y0+th, h)
			luts[ty*nx+tx] = tileLUT(src, b, x0, y0, x1, y1, clip)
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		fy := (float64(y) - float64(th)/2) / float64(th)
		ty0 := int(math.Floor(fy))
		dy := fy - float64(ty0)
		ty1 := clampIndex(ty0+1, ny)
		ty0 = clampIndex(ty0, ny)

		for x := 0; x < w; x++ {
			fx := (float64(x) - float64(tw)/2) / float64(tw)
			tx0 := int(math.Floor(fx))
			dx := fx - float64(tx0)
			tx1 := clampIndex(tx0+1, nx)
			tx0 = clampIndex(tx0, nx)

			v := src.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			tl := float64(luts[ty0*nx+tx0][v])
			tr := float64(luts[ty0*nx+tx1][v])
			bl := float64(luts[ty1*nx+tx0][v])
			br := float64(luts[ty1*nx+tx1][v])
			top := tl + (tr-tl)*dx
			bot := bl + (br-bl)*dx
			dst.SetGray(x, y, color.Gray{Y: uint8(top + (bot-top)*dy + 0.5)})
		}
	}
	return dst
}

// tileLUT computes the clipped-equalization intensity mapping for one tile.
func tileLUT(src *image.Gray, b image.Rectangle, x0, y0, x1, y1 int, clip float64) []uint8 {
	var hist [256]int
	area := (x1 - x0) * (y1 - y0)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[src.GrayAt(b.Min.X+x, b.Min.Y+y).Y]++
		}
	}

	limit := int(clip * float64(area) / 256.0)
	if limit < 1 {
		limit = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > limit {
			excess += hist[i] - limit
			hist[i] = limit
		}
	}
	share, rem := excess/256, excess%256
	for i := range hist {
		hist[i] += share
		if i < rem {
			hist[i]++
		}
	}

	lut := make([]uint8, 256)
	cum := 0
	for i := range hist {
		cum += hist[i]
		lut[i] = uint8(cum * 255 / area)
	}
	return lut
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
