package image

// Sampler reads colors from an image at continuous pixel-space coordinates.
//
// It combines a spread mode for out-of-range coordinates with an
// interpolation mode. A Sampler never modifies its image and holds no
// mutable state after configuration, so one Sampler may be shared by any
// number of goroutines.
type Sampler struct {
	image  *ImageBuf
	spread SpreadMode
	interp InterpolationMode
}

// NewSampler creates a sampler for img.
//
// Default settings:
//   - SpreadRepeat (tiled source)
//   - InterpBilinear interpolation
//
// Returns nil if img is nil.
func NewSampler(img *ImageBuf) *Sampler {
	if img == nil {
		return nil
	}
	return &Sampler{
		image:  img,
		spread: SpreadRepeat,
		interp: InterpBilinear,
	}
}

// WithSpreadMode sets the spread mode. Returns the sampler for method chaining.
func (s *Sampler) WithSpreadMode(mode SpreadMode) *Sampler {
	s.spread = mode
	return s
}

// WithInterpolation sets the interpolation mode. Returns the sampler for
// method chaining.
func (s *Sampler) WithInterpolation(mode InterpolationMode) *Sampler {
	s.interp = mode
	return s
}

// At returns the unrounded color at pixel-space coordinates (x, y).
// Returns a zero Texel if the sampler or image is nil.
func (s *Sampler) At(x, y float64) Texel {
	if s == nil || s.image == nil {
		return Texel{}
	}

	// Reduce first so that huge but finite coordinates never overflow the
	// integer pixel index.
	w, h := s.image.Bounds()
	x = ReduceCoord(x, w, s.spread)
	y = ReduceCoord(y, h, s.spread)

	switch s.interp {
	case InterpNearest:
		return SampleNearest(s.image, x, y, s.spread)
	default:
		return SampleBilinear(s.image, x, y, s.spread)
	}
}

// Image returns the underlying image buffer.
func (s *Sampler) Image() *ImageBuf {
	if s == nil {
		return nil
	}
	return s.image
}

// SpreadMode returns the current spread mode.
func (s *Sampler) SpreadMode() SpreadMode {
	if s == nil {
		return SpreadRepeat
	}
	return s.spread
}

// Interpolation returns the current interpolation mode.
func (s *Sampler) Interpolation() InterpolationMode {
	if s == nil {
		return InterpBilinear
	}
	return s.interp
}
