// Package image provides the pixel buffers, samplers and codecs used by the
// conformal warping engine.
//
// All buffers hold 8-bit non-premultiplied RGBA. Decoders convert whatever the
// container stores into that layout once, so the resampling code never has to
// branch on pixel formats.
package image

import "errors"

var (
	// ErrInvalidDimensions is returned for a non-positive width or height.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrOutOfBounds is returned when a pixel write misses the buffer.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// ImageBuf is a tightly packed RGBA8 raster, row-major with no padding.
//
// Reads may be concurrent. Writes may be concurrent only when each goroutine
// owns a disjoint set of pixels, which is how the engine fills a destination
// tile by tile.
type ImageBuf struct {
	pix    []byte
	width  int
	height int
}

// NewImageBuf allocates a transparent black width×height buffer.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ImageBuf{
		pix:    make([]byte, width*height*BytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// Clone returns a deep copy.
func (b *ImageBuf) Clone() *ImageBuf {
	return &ImageBuf{
		pix:    append([]byte(nil), b.pix...),
		width:  b.width,
		height: b.height,
	}
}

// Width returns the width in pixels.
func (b *ImageBuf) Width() int { return b.width }

// Height returns the height in pixels.
func (b *ImageBuf) Height() int { return b.height }

// Bounds returns (width, height).
func (b *ImageBuf) Bounds() (int, int) { return b.width, b.height }

// Data returns the pixel bytes. Pixel (x, y) starts at PixelOffset(x, y).
func (b *ImageBuf) Data() []byte { return b.pix }

func (b *ImageBuf) stride() int { return b.width * BytesPerPixel }

// RowBytes returns row y, or nil if y is outside the buffer.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride()
	return b.pix[start : start+b.stride()]
}

// PixelOffset returns the index of pixel (x, y) in Data, or -1 if the pixel
// is outside the buffer.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if uint(x) >= uint(b.width) || uint(y) >= uint(b.height) {
		return -1
	}
	return (y*b.width + x) * BytesPerPixel
}

// GetRGBA reads pixel (x, y). Pixels outside the buffer read as transparent
// black.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.pix[off : off+BytesPerPixel : off+BytesPerPixel]
	return p[0], p[1], p[2], p[3]
}

// SetRGBA writes pixel (x, y).
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	p := b.pix[off : off+BytesPerPixel : off+BytesPerPixel]
	p[0], p[1], p[2], p[3] = r, g, bl, a
	return nil
}

// Fill paints every pixel with one color.
func (b *ImageBuf) Fill(r, g, bl, a uint8) {
	px := [BytesPerPixel]byte{r, g, bl, a}
	for off := 0; off < len(b.pix); off += BytesPerPixel {
		copy(b.pix[off:off+BytesPerPixel], px[:])
	}
}
