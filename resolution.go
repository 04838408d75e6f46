package conformal

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is the size of a destination pixel grid.
type Resolution struct {
	Width, Height int
}

// DefaultResolution is used when no resolution is given.
var DefaultResolution = Resolution{Width: 512, Height: 512}

// ParseResolution parses a resolution written as "W:H", for example
// "1920:1080". Both components must be positive integers.
func ParseResolution(s string) (Resolution, error) {
	ws, hs, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q is not W:H", ErrInvalidResolution, s)
	}

	w, err := strconv.Atoi(ws)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: width %q: %w", ErrInvalidResolution, ws, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: height %q: %w", ErrInvalidResolution, hs, err)
	}

	r := Resolution{Width: w, Height: h}
	if err := r.Validate(); err != nil {
		return Resolution{}, err
	}
	return r, nil
}

// Validate returns ErrInvalidResolution unless both components are positive.
func (r Resolution) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, r.Width, r.Height)
	}
	return nil
}

// String formats the resolution as "W:H".
func (r Resolution) String() string {
	return strconv.Itoa(r.Width) + ":" + strconv.Itoa(r.Height)
}

// Pixels returns Width × Height.
func (r Resolution) Pixels() int {
	return r.Width * r.Height
}
