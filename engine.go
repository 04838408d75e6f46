package conformal

import (
	"context"
	"fmt"
	stdimage "image"
	"sync/atomic"

	"github.com/gogpu/conformal/internal/image"
	"github.com/gogpu/conformal/internal/parallel"
)

// Stats describes one warped frame.
type Stats struct {
	// Pixels is the number of destination pixels written.
	Pixels int

	// Fallbacks is the number of pixels that got the fallback color because
	// the map was singular or produced a non-finite value there.
	Fallbacks int

	// Tiles is the number of 64x64 tiles the frame was split into.
	Tiles int
}

// Engine resamples images through conformal maps.
//
// An Engine owns a worker pool and is safe for concurrent use. Call Close
// when done to stop the workers. Warps already queueing tiles when Close is
// called finish on the workers; a closed Engine still works but runs every
// tile on the calling goroutine.
type Engine struct {
	opts engineOptions
	pool *parallel.WorkerPool
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		opts: o,
		pool: parallel.NewWorkerPool(o.workers),
	}
}

// Close stops the engine's workers. Close is safe to call multiple times.
func (e *Engine) Close() {
	e.pool.Close()
}

// Workers returns the number of tile workers.
func (e *Engine) Workers() int {
	return e.pool.Workers()
}

// Warp produces a res-sized image whose every pixel is sampled from src at
// the point m sends the pixel's domain point to.
//
// Singular pixels get the fallback color and are counted in Stats; they are
// never an error. Warp returns ctx.Err() if ctx is canceled before all
// tiles have run.
func (e *Engine) Warp(ctx context.Context, m Map, src stdimage.Image, res Resolution) (*stdimage.NRGBA, Stats, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, Stats{}, ErrInvalidInput
	}

	dst, stats, err := e.warp(ctx, m, image.FromStdImage(src), res)
	if err != nil {
		return nil, stats, err
	}
	return dst.ToStdImage(), stats, nil
}

// warp is Warp on internal buffers.
func (e *Engine) warp(ctx context.Context, m Map, src *image.ImageBuf, res Resolution) (*image.ImageBuf, Stats, error) {
	if m == nil {
		return nil, Stats{}, fmt.Errorf("%w: nil map", ErrInvalidInput)
	}
	if src == nil || src.Width() == 0 || src.Height() == 0 {
		return nil, Stats{}, ErrInvalidInput
	}
	if err := res.Validate(); err != nil {
		return nil, Stats{}, err
	}

	dst, err := image.NewImageBuf(res.Width, res.Height)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("conformal: allocate destination: %w", err)
	}

	grid := NewGrid(res, src.Width(), src.Height())
	sampler := image.NewSampler(src).
		WithSpreadMode(e.opts.spread).
		WithInterpolation(e.opts.interp)

	var fallbacks atomic.Int64

	err = parallel.ForEachTile(ctx, e.pool, res.Width, res.Height, func(t parallel.Tile) {
		n := e.warpTile(dst, t, m, grid, sampler)
		if n > 0 {
			fallbacks.Add(int64(n))
		}
	})

	stats := Stats{
		Pixels:    res.Pixels(),
		Fallbacks: int(fallbacks.Load()),
		Tiles:     len(parallel.SplitTiles(res.Width, res.Height, parallel.TileWidth, parallel.TileHeight)),
	}

	if err != nil {
		Logger().Warn("warp canceled", "map", m.String(), "err", err)
		return nil, stats, err
	}

	Logger().Debug("warped frame",
		"map", m.String(),
		"resolution", res.String(),
		"tiles", stats.Tiles,
		"workers", e.pool.Workers(),
		"fallbacks", stats.Fallbacks)

	return dst, stats, nil
}

// warpTile resamples the pixels of one tile and returns how many of them
// got the fallback color. It writes only inside t.
func (e *Engine) warpTile(dst *image.ImageBuf, t parallel.Tile, m Map, grid Grid, sampler *image.Sampler) int {
	data := dst.Data()
	fb := e.opts.fallback
	fallbacks := 0

	for dy := t.Y; dy < t.Y+t.Height; dy++ {
		for dx := t.X; dx < t.X+t.Width; dx++ {
			off := dst.PixelOffset(dx, dy)

			sx, sy, ok := sourcePoint(m, grid, dx, dy)
			if !ok {
				data[off+0] = fb.R
				data[off+1] = fb.G
				data[off+2] = fb.B
				data[off+3] = fb.A
				fallbacks++
				continue
			}

			r, g, b, a := sampler.At(sx, sy).Quantize()
			data[off+0] = r
			data[off+1] = g
			data[off+2] = b
			data[off+3] = a
		}
	}

	return fallbacks
}

// sourcePoint maps destination pixel (dx, dy) to source pixel coordinates.
// ok is false at a singularity of m or when any intermediate value is not
// finite.
func sourcePoint(m Map, grid Grid, dx, dy int) (sx, sy float64, ok bool) {
	w, ok := m.Eval(grid.Domain(dx, dy))
	if !ok || !finite(w) {
		return 0, 0, false
	}

	sx, sy = grid.Source(w)
	if !isFinite(sx) || !isFinite(sy) {
		return 0, 0, false
	}
	return sx, sy, true
}
