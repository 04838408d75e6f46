package image

import (
	"fmt"
	stdimage "image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"math"
	"time"

	"golang.org/x/image/draw"
)

// gifPalette is used for every animated output frame: the web-safe cube
// plus a fully transparent entry so fallback pixels survive quantization.
var gifPalette = func() color.Palette {
	p := make(color.Palette, 0, len(palette.WebSafe)+1)
	p = append(p, palette.WebSafe...)
	return append(p, color.Transparent)
}()

// decodeGIF decodes every frame of a GIF and composites each onto a
// persistent canvas, honoring the per-frame disposal method, so that every
// returned frame is a complete picture.
func decodeGIF(r io.Reader) (*Decoded, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, decodeError(err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("image: decode gif: %w", ErrEmptyData)
	}

	width, height := g.Config.Width, g.Config.Height
	if width <= 0 || height <= 0 {
		var union stdimage.Rectangle
		for _, frame := range g.Image {
			union = union.Union(frame.Bounds())
		}
		width, height = union.Max.X, union.Max.Y
	}

	canvas, err := NewImageBuf(width, height)
	if err != nil {
		return nil, fmt.Errorf("image: decode gif: %w", err)
	}

	out := &Decoded{
		Codec:     CodecGIF,
		Frames:    make([]*ImageBuf, 0, len(g.Image)),
		Delays:    make([]int, 0, len(g.Image)),
		LoopCount: g.LoopCount,
	}

	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var saved *ImageBuf
		if disposal == gif.DisposalPrevious {
			saved = canvas.Clone()
		}

		DrawOver(canvas, frame, frame.Bounds())
		out.Frames = append(out.Frames, canvas.Clone())

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		out.Delays = append(out.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			FillRect(canvas, frame.Bounds(), 0, 0, 0, 0)
		case gif.DisposalPrevious:
			CopyRect(canvas, saved, frame.Bounds())
		}
	}

	return out, nil
}

// toPaletted dithers src onto gifPalette with Floyd-Steinberg error
// diffusion.
func toPaletted(src *stdimage.NRGBA) *stdimage.Paletted {
	dst := stdimage.NewPaletted(src.Rect, gifPalette)
	draw.FloydSteinberg.Draw(dst, src.Rect, src, src.Rect.Min)
	return dst
}

// EncodeAnimation writes frames as an animated GIF that shows each frame for
// delay and repeats forever. Palette reduction happens only at this point.
func EncodeAnimation(w io.Writer, frames []*ImageBuf, delay time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("image: encode animation: %w", ErrEmptyData)
	}

	centis := int(math.Round(float64(delay) / float64(10*time.Millisecond)))

	g := &gif.GIF{
		Image:     make([]*stdimage.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		Disposal:  make([]byte, len(frames)),
		LoopCount: 0,
	}

	for i, frame := range frames {
		g.Image[i] = toPaletted(frame.ToStdImage())
		g.Delay[i] = centis
		g.Disposal[i] = gif.DisposalBackground
	}

	if err := gif.EncodeAll(w, g); err != nil {
		return fmt.Errorf("image: encode animation: %w", err)
	}
	return nil
}
