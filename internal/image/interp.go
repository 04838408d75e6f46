package image

import "math"

// InterpolationMode defines how source sampling is performed.
type InterpolationMode uint8

const (
	// InterpNearest selects the pixel containing the coordinate.
	// Fast but produces blocky results when scaling.
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring pixels.
	InterpBilinear
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	default:
		return unknownMode
	}
}

// Texel is an unrounded RGBA sample with channels in the 0-255 range.
// Channels stay in float64 until Quantize so interpolation never rounds
// mid-computation.
type Texel [4]float64

// Quantize rounds each channel to the nearest integer and clamps it to [0, 255].
// Non-finite channels quantize to 0.
func (t Texel) Quantize() (r, g, b, a uint8) {
	return quantize(t[0]), quantize(t[1]), quantize(t[2]), quantize(t[3])
}

func quantize(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(clampFloat(math.Round(v), 0, 255))
}

// texelAt reads pixel (x, y) as a Texel. Coordinates must already be in range.
func texelAt(img *ImageBuf, x, y int) Texel {
	r, g, b, a := img.GetRGBA(x, y)
	return Texel{float64(r), float64(g), float64(b), float64(a)}
}

// SampleNearest returns the pixel containing the continuous pixel-space
// coordinate (x, y). Pixel (i, j) covers [i, i+1) × [j, j+1).
// The integer pixel index is resolved through the spread mode.
func SampleNearest(img *ImageBuf, x, y float64, spread SpreadMode) Texel {
	w, h := img.Bounds()

	px := wrapIndex(int(math.Floor(x)), w, spread)
	py := wrapIndex(int(math.Floor(y)), h, spread)

	return texelAt(img, px, py)
}

// SampleBilinear interpolates the four pixels whose centers surround the
// continuous pixel-space coordinate (x, y). Pixel centers sit at i+0.5.
// Each neighbor index is resolved through the spread mode independently,
// so with SpreadRepeat the right neighbor of the last column is column 0.
func SampleBilinear(img *ImageBuf, x, y float64, spread SpreadMode) Texel {
	w, h := img.Bounds()

	// Shift so that pixel centers land on integers
	fx := x - 0.5
	fy := y - 0.5

	fx0 := math.Floor(fx)
	fy0 := math.Floor(fy)
	tx := fx - fx0
	ty := fy - fy0

	x0 := wrapIndex(int(fx0), w, spread)
	y0 := wrapIndex(int(fy0), h, spread)
	x1 := wrapIndex(int(fx0)+1, w, spread)
	y1 := wrapIndex(int(fy0)+1, h, spread)

	c00 := texelAt(img, x0, y0)
	c10 := texelAt(img, x1, y0)
	c01 := texelAt(img, x0, y1)
	c11 := texelAt(img, x1, y1)

	var out Texel
	for i := range out {
		out[i] = lerp2D(c00[i], c10[i], c01[i], c11[i], tx, ty)
	}
	return out
}

// clampFloat clamps a float64 value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}
