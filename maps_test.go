package conformal

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

var (
	_ Map = Mobius{}
	_ Map = MobiusInverse{}
	_ Map = Spiral{}
)

func approxEqual(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol*math.Max(1, cmplx.Abs(b))
}

func TestMobiusRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d complex128
	}{
		{"identity", 1, 0, 0, 1},
		{"translation", 1, complex(3, -2), 0, 1},
		{"inversion", 0, 1, 1, 0},
		{"general", complex(2, 1), complex(-1, 0.5), complex(0.25, -0.75), complex(1, 1)},
	}
	points := []complex128{0.5, complex(-3, 2), complex(10, -7), complex(0.1, 0.1), complex(-100, 250)}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMobius(tt.a, tt.b, tt.c, tt.d)
			if err != nil {
				t.Fatalf("NewMobius failed: %v", err)
			}
			inv := m.Inverse()

			for _, z := range points {
				w, ok := m.Eval(z)
				if !ok {
					continue
				}
				back, ok := inv.Eval(w)
				if !ok {
					t.Errorf("inverse singular at f(%v) = %v", z, w)
					continue
				}
				if !approxEqual(back, z, 1e-9) {
					t.Errorf("f⁻¹(f(%v)) = %v, want %v", z, back, z)
				}
			}
		})
	}
}

func TestMobiusEval(t *testing.T) {
	m, _ := NewMobius(1, 2, 3, 4)

	w, ok := m.Eval(1)
	if !ok || !approxEqual(w, complex(3.0/7.0, 0), 1e-12) {
		t.Errorf("Eval(1) = %v, %v; want 3/7", w, ok)
	}
}

func TestMobiusPole(t *testing.T) {
	m, err := NewMobius(1, 0, 1, 0)
	if err != nil {
		t.Fatalf("NewMobius failed: %v", err)
	}

	w, ok := m.Eval(0)
	if ok {
		t.Errorf("Eval(0) ok = true, want false at the pole")
	}
	if cmplx.IsNaN(w) || cmplx.IsInf(w) {
		t.Errorf("Eval(0) = %v, want a finite placeholder", w)
	}
}

func TestMobiusInversePole(t *testing.T) {
	// Pole where −c·z + a == 0, that is z = a/c.
	inv, _ := NewMobiusInverse(2, 1, 4, 1)

	if _, ok := inv.Eval(0.5); ok {
		t.Error("Eval(a/c) ok = true, want false")
	}
	if _, ok := inv.Eval(0.25); !ok {
		t.Error("Eval(0.25) ok = false, want true")
	}
}

func TestMobiusInverseFormula(t *testing.T) {
	inv, _ := NewMobiusInverse(1, 2, 3, 4)
	// (4z − 2)/(−3z + 1) at z = 2: 6 / −5
	w, ok := inv.Eval(2)
	if !ok || !approxEqual(w, -1.2, 1e-12) {
		t.Errorf("Eval(2) = %v, %v; want -1.2", w, ok)
	}

	if got := inv.Inverse().Inverse(); got != inv {
		t.Errorf("Inverse().Inverse() = %v, want %v", got, inv)
	}
	a, b, c, d := inv.Coefficients()
	if a != 1 || b != 2 || c != 3 || d != 4 {
		t.Errorf("Coefficients() = %v %v %v %v", a, b, c, d)
	}
}

func TestNonFiniteParameters(t *testing.T) {
	nan := complex(math.NaN(), 0)
	inf := complex(0, math.Inf(1))

	tests := []struct {
		name string
		fn   func() error
	}{
		{"mobius NaN", func() error { _, err := NewMobius(nan, 0, 0, 1); return err }},
		{"mobius Inf", func() error { _, err := NewMobius(1, 0, 0, inf); return err }},
		{"mobius inverse NaN", func() error { _, err := NewMobiusInverse(1, nan, 0, 1); return err }},
		{"mobius inverse Inf", func() error { _, err := NewMobiusInverse(1, 0, inf, 1); return err }},
		{"spiral NaN height", func() error { _, err := NewSpiral(math.NaN(), 1); return err }},
		{"spiral Inf width", func() error { _, err := NewSpiral(1, math.Inf(-1)); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrNonFiniteParameter) {
				t.Errorf("error = %v, want ErrNonFiniteParameter", err)
			}
		})
	}
}

func TestSpiralDerivedParameters(t *testing.T) {
	s, err := NewSpiral(3, 4)
	if err != nil {
		t.Fatalf("NewSpiral failed: %v", err)
	}

	if s.Diagonal() != 5 {
		t.Errorf("Diagonal() = %v, want 5", s.Diagonal())
	}
	if want := math.Atan2(3, 4); s.Phi() != want {
		t.Errorf("Phi() = %v, want %v", s.Phi(), want)
	}
}

func TestSpiralEval(t *testing.T) {
	s, _ := NewSpiral(300, 400)
	scale := 500 / (2 * math.Pi)

	tests := []struct {
		name string
		z    complex128
		want complex128
	}{
		{"unit", 1, 0},
		{"e", complex(math.E, 0), cmplx.Rect(scale, -math.Pi/4)},
		{"i", complex(0, 1), complex(0, math.Pi/2) * cmplx.Rect(scale, -math.Pi/4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Eval(tt.z)
			if !ok {
				t.Fatalf("Eval(%v) ok = false", tt.z)
			}
			if !approxEqual(got, tt.want, 1e-12) {
				t.Errorf("Eval(%v) = %v, want %v", tt.z, got, tt.want)
			}
		})
	}
}

func TestSpiralOrigin(t *testing.T) {
	s, _ := NewSpiral(10, 10)
	if _, ok := s.Eval(0); ok {
		t.Error("Eval(0) ok = true, want false (log of zero)")
	}
}

// The principal argument jumps by 2π across the negative real axis, so the
// spiral output has a seam of length diagonal there and nowhere else.
func TestSpiralSeam(t *testing.T) {
	s, _ := NewSpiral(120, 160)
	const eps = 1e-9

	for _, r := range []float64{0.5, 3, 40, 1000} {
		above, _ := s.Eval(complex(-r, eps))
		below, _ := s.Eval(complex(-r, -eps))
		if jump := cmplx.Abs(above - below); math.Abs(jump-s.Diagonal()) > 1e-6 {
			t.Errorf("seam at -%v: jump = %v, want %v", r, jump, s.Diagonal())
		}

		right1, _ := s.Eval(complex(r, eps))
		right2, _ := s.Eval(complex(r, -eps))
		if jump := cmplx.Abs(right1 - right2); jump > 1e-6 {
			t.Errorf("positive real axis at %v: jump = %v, want continuity", r, jump)
		}
	}
}

func TestParseMap(t *testing.T) {
	tests := []struct {
		name    string
		coeffs  []complex128
		want    string
		wantErr error
	}{
		{"spiral", nil, "spiral(height=20, width=10)", nil},
		{"Spiral", nil, "spiral(height=20, width=10)", nil},
		{"spiral", []complex128{1, 2}, "", ErrInvalidCoefficients},
		{"mobius", nil, "mobius(a=(1+0i), b=(0+0i), c=(0+0i), d=(1+0i))", nil},
		{"mobius-inverse", []complex128{1, 2, 3, 4}, "mobius-inverse(a=(1+0i), b=(2+0i), c=(3+0i), d=(4+0i))", nil},
		{"mobius", []complex128{1, 2}, "", ErrInvalidCoefficients},
		{"mobius", []complex128{1, 0, complex(math.NaN(), 0), 1}, "", ErrNonFiniteParameter},
		{"escher", nil, "", ErrUnknownMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMap(tt.name, tt.coeffs, 10, 20)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseMap error = %v, want %v", err, tt.wantErr)
				}
				if m != nil {
					t.Errorf("ParseMap returned map %v alongside an error", m)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMap failed: %v", err)
			}
			if m.String() != tt.want {
				t.Errorf("ParseMap = %s, want %s", m, tt.want)
			}
		})
	}
}

func BenchmarkSpiralEval(b *testing.B) {
	s, _ := NewSpiral(512, 512)
	z := complex(123.4, -56.7)
	b.ReportAllocs()
	for b.Loop() {
		_, _ = s.Eval(z)
	}
}
