package image

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
)

// EncodeAnimatedPNG writes frames as an animated PNG that shows each frame
// for delay and repeats forever. Unlike EncodeAnimation, colors are kept at
// full RGBA8 precision; every frame replaces the previous one.
//
// All frames must have the same size.
func EncodeAnimatedPNG(w io.Writer, frames []*ImageBuf, delay time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("image: encode animated png: %w", ErrEmptyData)
	}

	ms := uint16(min(max(delay.Milliseconds(), 0), math.MaxUint16))

	// LoopCount 0 plays forever.
	a := apng.APNG{Frames: make([]apng.Frame, len(frames))}
	for i, frame := range frames {
		a.Frames[i] = apng.Frame{
			Image:            frame.ToStdImage(),
			DelayNumerator:   ms,
			DelayDenominator: 1000,
		}
	}

	if err := apng.Encode(w, a); err != nil {
		return fmt.Errorf("image: encode animated png: %w", err)
	}
	return nil
}
