package conformal

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/conformal/internal/image"
)

// Interpolation selects how the source image is sampled.
type Interpolation = image.InterpolationMode

// Interpolation modes.
const (
	InterpNearest  = image.InterpNearest
	InterpBilinear = image.InterpBilinear
)

// SpreadMode selects what source coordinates outside the image sample.
type SpreadMode = image.SpreadMode

// Spread modes. SpreadRepeat tiles the source and is the default.
const (
	SpreadPad     = image.SpreadPad
	SpreadRepeat  = image.SpreadRepeat
	SpreadReflect = image.SpreadReflect
)

// ParseInterpolation parses "nearest" or "bilinear".
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest":
		return InterpNearest, nil
	case "bilinear":
		return InterpBilinear, nil
	default:
		return InterpBilinear, fmt.Errorf("conformal: unknown interpolation %q", s)
	}
}

// ProgressFunc is called after each frame with the number of frames
// finished so far and the total. Calls never overlap.
type ProgressFunc func(done, total int)

// EngineOption configures an Engine during creation.
//
// Example:
//
//	// Defaults: GOMAXPROCS workers, bilinear, tiled source
//	eng := conformal.NewEngine()
//
//	// Single worker, nearest sampling
//	eng := conformal.NewEngine(conformal.WithWorkers(1), conformal.WithInterpolation(conformal.InterpNearest))
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	workers      int
	interp       Interpolation
	spread       SpreadMode
	fallback     color.NRGBA
	frameWorkers int
	progress     ProgressFunc
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		workers:      0, // GOMAXPROCS
		interp:       InterpBilinear,
		spread:       SpreadRepeat,
		fallback:     color.NRGBA{}, // transparent
		frameWorkers: 1,
	}
}

// WithWorkers sets the number of tile workers. Zero or negative uses
// GOMAXPROCS. The output does not depend on this value.
func WithWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithInterpolation sets the sampling mode.
func WithInterpolation(mode Interpolation) EngineOption {
	return func(o *engineOptions) {
		o.interp = mode
	}
}

// WithSpreadMode sets the out-of-range policy for source coordinates.
func WithSpreadMode(mode SpreadMode) EngineOption {
	return func(o *engineOptions) {
		o.spread = mode
	}
}

// WithFallback sets the color written where the map is singular or
// produces a non-finite value. The default is transparent black.
func WithFallback(c color.Color) EngineOption {
	return func(o *engineOptions) {
		o.fallback = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
}

// WithFrameWorkers sets how many frames of an animation may be warped at
// the same time. Output order never changes. Values below 1 mean 1.
func WithFrameWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		o.frameWorkers = max(n, 1)
	}
}

// WithProgress sets a callback invoked after each warped frame.
func WithProgress(fn ProgressFunc) EngineOption {
	return func(o *engineOptions) {
		o.progress = fn
	}
}
