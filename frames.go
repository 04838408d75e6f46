package conformal

import (
	"context"
	"fmt"
	stdimage "image"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/conformal/internal/image"
)

// WarpFrames warps every frame of an animation with the same map and
// resolution. The result has one image per input frame, in input order.
// Each frame's grid is derived from that frame's own dimensions.
//
// Frames run one at a time unless WithFrameWorkers allows more; the output
// is the same either way. The progress callback, if set, is called once per
// finished frame. The first error cancels the frames that have not started.
func (e *Engine) WarpFrames(ctx context.Context, m Map, frames []stdimage.Image, res Resolution) ([]*stdimage.NRGBA, []Stats, error) {
	bufs := make([]*image.ImageBuf, len(frames))
	for i, f := range frames {
		if f == nil || f.Bounds().Empty() {
			return nil, nil, fmt.Errorf("frame %d: %w", i, ErrInvalidInput)
		}
		bufs[i] = image.FromStdImage(f)
	}

	out, stats, err := e.warpFrames(ctx, m, bufs, res)
	if err != nil {
		return nil, stats, err
	}

	imgs := make([]*stdimage.NRGBA, len(out))
	for i, b := range out {
		imgs[i] = b.ToStdImage()
	}
	return imgs, stats, nil
}

// warpFrames is WarpFrames on internal buffers.
func (e *Engine) warpFrames(ctx context.Context, m Map, frames []*image.ImageBuf, res Resolution) ([]*image.ImageBuf, []Stats, error) {
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("%w: no frames", ErrInvalidInput)
	}
	if err := res.Validate(); err != nil {
		return nil, nil, err
	}

	out := make([]*image.ImageBuf, len(frames))
	stats := make([]Stats, len(frames))

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.frameWorkers)

	for i, frame := range frames {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			dst, st, err := e.warp(gctx, m, frame, res)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			out[i] = dst
			stats[i] = st

			if e.opts.progress != nil {
				mu.Lock()
				done++
				e.opts.progress(done, len(frames))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	// A canceled parent can stop the loop before any goroutine reports it.
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	total := Stats{}
	for _, st := range stats {
		total.Pixels += st.Pixels
		total.Fallbacks += st.Fallbacks
	}
	Logger().Info("warped frames",
		"frames", len(frames),
		"resolution", res.String(),
		"pixels", total.Pixels,
		"fallbacks", total.Fallbacks)

	return out, stats, nil
}
