package conformal

import (
	"errors"

	"github.com/gogpu/conformal/internal/image"
)

// Construction and boundary errors. Singularities met during evaluation are
// never reported as errors: the affected pixel gets the fallback sample and
// is counted in [Stats].
var (
	// ErrNonFiniteParameter is returned by map constructors when a
	// parameter is NaN or infinite.
	ErrNonFiniteParameter = errors.New("conformal: map parameter is not finite")

	// ErrInvalidResolution is returned for resolutions that are malformed
	// or have a non-positive component.
	ErrInvalidResolution = errors.New("conformal: invalid resolution")

	// ErrInvalidInput is returned when a source image is nil or empty.
	ErrInvalidInput = errors.New("conformal: invalid input image")

	// ErrUnknownMap is returned by ParseMap for an unrecognized map name.
	ErrUnknownMap = errors.New("conformal: unknown map")

	// ErrInvalidCoefficients is returned by ParseMap when a Möbius map is
	// given a coefficient count other than four.
	ErrInvalidCoefficients = errors.New("conformal: invalid map coefficients")

	// ErrAnimatedOutput is returned when an animated input would be written
	// to a format that cannot hold more than one frame.
	ErrAnimatedOutput = errors.New("conformal: animated input requires a .png or .gif output")

	// ErrUnsupportedFormat is returned when an image container cannot be
	// decoded or an output extension cannot be encoded.
	ErrUnsupportedFormat = image.ErrUnsupportedFormat
)
