package conformal

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Map is a conformal map used in its inverse sense: Eval sends a point of
// the destination plane to the point of the source plane that supplies its
// color.
//
// Eval returns ok == false at a singularity of the map. Implementations are
// immutable values, so Eval may be called from any number of goroutines in
// any order.
//
// The set of implementations is closed: [Mobius], [MobiusInverse] and
// [Spiral].
type Map interface {
	Eval(z complex128) (w complex128, ok bool)
	String() string

	sealed()
}

// Map names accepted by ParseMap.
const (
	MapSpiral        = "spiral"
	MapMobius        = "mobius"
	MapMobiusInverse = "mobius-inverse"
)

// MapNames returns the names accepted by ParseMap.
func MapNames() []string {
	return []string{MapSpiral, MapMobius, MapMobiusInverse}
}

// Mobius is the Möbius transform f(z) = (a·z + b) / (c·z + d).
// It has a pole where c·z + d == 0.
type Mobius struct {
	a, b, c, d complex128
}

// NewMobius creates a Möbius transform. All coefficients must be finite.
// A degenerate transform (a·d == b·c) is accepted.
func NewMobius(a, b, c, d complex128) (Mobius, error) {
	if err := checkFinite(a, b, c, d); err != nil {
		return Mobius{}, fmt.Errorf("mobius: %w", err)
	}
	return Mobius{a: a, b: b, c: c, d: d}, nil
}

// Eval evaluates the transform at z.
func (m Mobius) Eval(z complex128) (complex128, bool) {
	den := m.c*z + m.d
	if den == 0 {
		return 0, false
	}
	return (m.a*z + m.b) / den, true
}

// Coefficients returns a, b, c, d.
func (m Mobius) Coefficients() (a, b, c, d complex128) {
	return m.a, m.b, m.c, m.d
}

// Inverse returns the algebraic inverse built from the same coefficients.
func (m Mobius) Inverse() MobiusInverse {
	return MobiusInverse{a: m.a, b: m.b, c: m.c, d: m.d}
}

func (m Mobius) String() string {
	return fmt.Sprintf("mobius(a=%v, b=%v, c=%v, d=%v)", m.a, m.b, m.c, m.d)
}

func (Mobius) sealed() {}

// MobiusInverse is the algebraic inverse of the Möbius transform with the
// same coefficients: f⁻¹(z) = (d·z − b) / (−c·z + a).
// It has a pole where −c·z + a == 0.
type MobiusInverse struct {
	a, b, c, d complex128
}

// NewMobiusInverse creates the inverse of the Möbius transform (a, b, c, d).
// All coefficients must be finite.
func NewMobiusInverse(a, b, c, d complex128) (MobiusInverse, error) {
	if err := checkFinite(a, b, c, d); err != nil {
		return MobiusInverse{}, fmt.Errorf("mobius inverse: %w", err)
	}
	return MobiusInverse{a: a, b: b, c: c, d: d}, nil
}

// Eval evaluates the inverse transform at z.
func (m MobiusInverse) Eval(z complex128) (complex128, bool) {
	den := -m.c*z + m.a
	if den == 0 {
		return 0, false
	}
	return (m.d*z - m.b) / den, true
}

// Coefficients returns the a, b, c, d of the forward transform.
func (m MobiusInverse) Coefficients() (a, b, c, d complex128) {
	return m.a, m.b, m.c, m.d
}

// Inverse returns the forward transform.
func (m MobiusInverse) Inverse() Mobius {
	return Mobius{a: m.a, b: m.b, c: m.c, d: m.d}
}

func (m MobiusInverse) String() string {
	return fmt.Sprintf("mobius-inverse(a=%v, b=%v, c=%v, d=%v)", m.a, m.b, m.c, m.d)
}

func (MobiusInverse) sealed() {}

// spiralRotation is e^{−iπ/4}.
var spiralRotation = cmplx.Exp(complex(0, -math.Pi/4))

// Spiral maps a point to its principal logarithm, rotated by −π/4 and scaled
// by diagonal/(2π), where diagonal is the diagonal of the source image.
// Forward mapping the result by e^z spirals the image.
//
// Eval is undefined at z = 0. The principal argument jumps by 2π across the
// negative real axis, so the output has a visible seam there.
type Spiral struct {
	height, width float64
	diagonal      float64
	phi           float64
	scale         complex128
}

// NewSpiral creates a spiral map for a source image of the given height and
// width in pixels. Both values must be finite.
func NewSpiral(height, width float64) (Spiral, error) {
	if !isFinite(height) || !isFinite(width) {
		return Spiral{}, fmt.Errorf("spiral: %w", ErrNonFiniteParameter)
	}

	diagonal := math.Hypot(height, width)
	return Spiral{
		height:   height,
		width:    width,
		diagonal: diagonal,
		phi:      math.Atan2(height, width),
		scale:    spiralRotation * complex(diagonal/(2*math.Pi), 0),
	}, nil
}

// Eval evaluates the spiral map at z.
func (s Spiral) Eval(z complex128) (complex128, bool) {
	if z == 0 {
		return 0, false
	}
	return cmplx.Log(z) * s.scale, true
}

// Diagonal returns √(height² + width²).
func (s Spiral) Diagonal() float64 { return s.diagonal }

// Phi returns atan2(height, width). It does not take part in evaluation;
// the rotation applied by Eval is always −π/4.
func (s Spiral) Phi() float64 { return s.phi }

func (s Spiral) String() string {
	return fmt.Sprintf("spiral(height=%g, width=%g)", s.height, s.width)
}

func (Spiral) sealed() {}

// ParseMap builds a map by name. width and height are the source image
// dimensions, used by the spiral map. Möbius maps take exactly four
// coefficients a, b, c, d; with none they default to the identity. The
// spiral map takes none.
func ParseMap(name string, coeffs []complex128, width, height int) (Map, error) {
	var (
		m   Map
		err error
	)

	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case MapSpiral:
		if len(coeffs) != 0 {
			return nil, fmt.Errorf("%w: %s takes no coefficients, got %d", ErrInvalidCoefficients, key, len(coeffs))
		}
		m, err = NewSpiral(float64(height), float64(width))

	case MapMobius, MapMobiusInverse:
		if len(coeffs) == 0 {
			coeffs = []complex128{1, 0, 0, 1}
		}
		if len(coeffs) != 4 {
			return nil, fmt.Errorf("%w: %s needs 4 coefficients, got %d", ErrInvalidCoefficients, key, len(coeffs))
		}
		if key == MapMobius {
			m, err = NewMobius(coeffs[0], coeffs[1], coeffs[2], coeffs[3])
		} else {
			m, err = NewMobiusInverse(coeffs[0], coeffs[1], coeffs[2], coeffs[3])
		}

	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownMap, name, strings.Join(MapNames(), ", "))
	}

	if err != nil {
		return nil, err
	}
	return m, nil
}

func checkFinite(values ...complex128) error {
	for _, v := range values {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return fmt.Errorf("%w: %v", ErrNonFiniteParameter, v)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finite reports whether both parts of z are finite.
func finite(z complex128) bool {
	return isFinite(real(z)) && isFinite(imag(z))
}
