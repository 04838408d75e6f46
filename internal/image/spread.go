package image

import "math"

// SpreadMode determines how to handle pixel coordinates outside the image.
type SpreadMode uint8

const (
	// SpreadPad clamps coordinates to the nearest edge pixel.
	SpreadPad SpreadMode = iota

	// SpreadRepeat tiles the image: coordinates wrap modulo the image size,
	// treating the source as periodic in both axes.
	SpreadRepeat

	// SpreadReflect mirrors the image at each boundary.
	SpreadReflect
)

const unknownMode = "Unknown"

// String returns a string representation of the spread mode.
func (s SpreadMode) String() string {
	switch s {
	case SpreadPad:
		return "Pad"
	case SpreadRepeat:
		return "Repeat"
	case SpreadReflect:
		return "Reflect"
	default:
		return unknownMode
	}
}

// wrapIndex maps an arbitrary integer pixel index into [0, n).
func wrapIndex(i, n int, mode SpreadMode) int {
	switch mode {
	case SpreadRepeat:
		return floorMod(i, n)

	case SpreadReflect:
		m := floorMod(i, 2*n)
		if m >= n {
			return 2*n - 1 - m
		}
		return m

	default:
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
}

// floorMod returns i mod n in [0, n) for n > 0, including negative i.
func floorMod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}

// ReduceCoord maps a continuous coordinate into [0, n) the way the spread
// mode does for pixel indices. For SpreadRepeat this is x mod n with the
// sign of the result always non-negative.
func ReduceCoord(x float64, n int, mode SpreadMode) float64 {
	size := float64(n)
	switch mode {
	case SpreadRepeat:
		m := math.Mod(x, size)
		if m < 0 {
			m += size
		}
		// m can round up to size for tiny negative x
		if m >= size {
			m = 0
		}
		return m

	case SpreadReflect:
		period := 2 * size
		m := math.Mod(x, period)
		if m < 0 {
			m += period
		}
		if m >= size {
			m = period - m
		}
		return m

	default:
		return clampFloat(x, 0, size)
	}
}
