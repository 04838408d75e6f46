package conformal

import "github.com/gogpu/conformal/internal/image"

// Grid relates a destination pixel grid and a source image to the complex
// domain.
//
// One domain unit is one source pixel, the origin is the image center and
// the imaginary axis points up. The destination is scaled uniformly by
// s = max(sw/W, sh/H) so that the whole source extent fits it and the aspect
// ratio is kept.
type Grid struct {
	toDomain image.Affine
	toPixel  image.Affine
	toSource image.Affine
}

// NewGrid creates the grid for a destination of size dst and a source image
// of srcW×srcH pixels.
func NewGrid(dst Resolution, srcW, srcH int) Grid {
	dw, dh := float64(dst.Width), float64(dst.Height)
	sw, sh := float64(srcW), float64(srcH)

	s := max(sw/dw, sh/dh)

	toDomain := image.Translate(-dw/2, -dh/2).Then(image.Scale(s, -s))
	toPixel, _ := toDomain.Invert()

	return Grid{
		// z = s·(x − W/2) − i·s·(y − H/2)
		toDomain: toDomain,
		toPixel:  toPixel,
		// sx = re z + sw/2, sy = sh/2 − im z
		toSource: image.Scale(1, -1).Then(image.Translate(sw/2, sh/2)),
	}
}

// Domain returns the domain point at the center of destination pixel
// (dx, dy).
func (g Grid) Domain(dx, dy int) complex128 {
	x, y := g.toDomain.Apply(float64(dx)+0.5, float64(dy)+0.5)
	return complex(x, y)
}

// Source returns the continuous source pixel coordinates of domain point z.
// The result may lie outside the source image.
func (g Grid) Source(z complex128) (sx, sy float64) {
	return g.toSource.Apply(real(z), imag(z))
}

// Pixel returns the continuous destination pixel coordinates of domain
// point z. It inverts Domain: Pixel(Domain(dx, dy)) is (dx+0.5, dy+0.5).
func (g Grid) Pixel(z complex128) (x, y float64) {
	return g.toPixel.Apply(real(z), imag(z))
}
