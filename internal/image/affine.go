package image

// Affine is a 2-D affine transform
//
//	x' = a·x + b·y + c
//	y' = d·x + e·y + f
//
// The warping engine builds its pixel↔domain conventions (centering,
// uniform scale, y-axis flip) out of Translate and Scale steps chained with
// Then. The zero value is not the identity; use Identity.
type Affine struct {
	a, b, c float64
	d, e, f float64
}

// Identity returns the transform that leaves every point unchanged.
func Identity() Affine {
	return Affine{a: 1, e: 1}
}

// Translate returns the transform that shifts points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{a: 1, c: tx, e: 1, f: ty}
}

// Scale returns the transform that scales about the origin. A negative
// factor flips the axis.
func Scale(sx, sy float64) Affine {
	return Affine{a: sx, e: sy}
}

// Then returns the transform that applies t and then next.
func (t Affine) Then(next Affine) Affine {
	return Affine{
		a: next.a*t.a + next.b*t.d,
		b: next.a*t.b + next.b*t.e,
		c: next.a*t.c + next.b*t.f + next.c,
		d: next.d*t.a + next.e*t.d,
		e: next.d*t.b + next.e*t.e,
		f: next.d*t.c + next.e*t.f + next.f,
	}
}

// Invert returns the inverse transform, or false if t collapses the plane.
func (t Affine) Invert() (Affine, bool) {
	det := t.a*t.e - t.b*t.d
	if det == 0 {
		return Affine{}, false
	}

	return Affine{
		a: t.e / det,
		b: -t.b / det,
		c: (t.b*t.f - t.c*t.e) / det,
		d: -t.d / det,
		e: t.a / det,
		f: (t.c*t.d - t.a*t.f) / det,
	}, true
}

// Apply transforms the point (x, y).
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.a*x + t.b*y + t.c, t.d*x + t.e*y + t.f
}
