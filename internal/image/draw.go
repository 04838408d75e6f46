package image

import (
	stdimage "image"
	"image/color"
)

// Rect represents a rectangular region in pixel coordinates.
type Rect struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions
}

// rectFrom converts a standard library rectangle, clipped to (w, h).
func rectFrom(r stdimage.Rectangle, w, h int) Rect {
	r = r.Intersect(stdimage.Rect(0, 0, w, h))
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// DrawOver composites src onto dst with the Porter-Duff "source over"
// operator, restricted to the rectangle r given in dst coordinates.
// src is addressed in the same coordinate space as dst (as GIF frames are).
func DrawOver(dst *ImageBuf, src stdimage.Image, r stdimage.Rectangle) {
	dw, dh := dst.Bounds()
	clip := rectFrom(r.Intersect(src.Bounds()), dw, dh)

	for y := clip.Y; y < clip.Y+clip.Height; y++ {
		for x := clip.X; x < clip.X+clip.Width; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dr, dg, db, da := dst.GetRGBA(x, y)
			or, og, ob, oa := blendNormal(c.R, c.G, c.B, c.A, dr, dg, db, da)
			_ = dst.SetRGBA(x, y, or, og, ob, oa)
		}
	}
}

// FillRect sets every pixel of r (clipped to dst) to the given color.
func FillRect(dst *ImageBuf, r stdimage.Rectangle, cr, cg, cb, ca uint8) {
	dw, dh := dst.Bounds()
	clip := rectFrom(r, dw, dh)

	for y := clip.Y; y < clip.Y+clip.Height; y++ {
		for x := clip.X; x < clip.X+clip.Width; x++ {
			_ = dst.SetRGBA(x, y, cr, cg, cb, ca)
		}
	}
}

// CopyRect copies the pixels of r from src into dst. Both buffers must have
// the same dimensions; r is clipped to them.
func CopyRect(dst, src *ImageBuf, r stdimage.Rectangle) {
	dw, dh := dst.Bounds()
	if sw, sh := src.Bounds(); sw != dw || sh != dh {
		return
	}
	clip := rectFrom(r, dw, dh)
	if clip.Width <= 0 || clip.Height <= 0 {
		return
	}

	n := clip.Width * BytesPerPixel
	for y := clip.Y; y < clip.Y+clip.Height; y++ {
		off := dst.PixelOffset(clip.X, y)
		copy(dst.pix[off:off+n], src.pix[off:off+n])
	}
}

// blendNormal performs standard alpha blending (source over destination)
// on non-premultiplied colors.
func blendNormal(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA uint8) (r, g, b, a byte) {
	if srcA == 255 {
		// Fully opaque source, just return source
		return srcR, srcG, srcB, 255
	}

	if dstA == 0 {
		// Transparent destination, just return source
		return srcR, srcG, srcB, srcA
	}

	// Porter-Duff "source over" formula
	// out_a = src_a + dst_a * (1 - src_a)
	// out_c = (src_c * src_a + dst_c * dst_a * (1 - src_a)) / out_a

	srcAlpha := float64(srcA) / 255.0
	dstAlpha := float64(dstA) / 255.0

	outAlpha := srcAlpha + dstAlpha*(1-srcAlpha)

	if outAlpha == 0 {
		return 0, 0, 0, 0
	}

	r = quantize((float64(srcR)*srcAlpha + float64(dstR)*dstAlpha*(1-srcAlpha)) / outAlpha)
	g = quantize((float64(srcG)*srcAlpha + float64(dstG)*dstAlpha*(1-srcAlpha)) / outAlpha)
	b = quantize((float64(srcB)*srcAlpha + float64(dstB)*dstAlpha*(1-srcAlpha)) / outAlpha)
	a = quantize(outAlpha * 255.0)

	return r, g, b, a
}
