// Package parallel provides tile-based parallel execution for the resampling
// engine.
//
// The destination grid is divided into 64x64 pixel tiles. Every destination
// pixel belongs to exactly one tile, so tiles can be resampled independently
// with no locking: each task writes only the cells it owns.
package parallel

import "context"

// Tile size constants optimized for cache efficiency and work distribution.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	// 64x64 RGBA is 16KB, which fits in L1 cache.
	TileHeight = 64
)

// Tile is a rectangular block of destination pixels.
// Edge tiles are smaller when the grid is not evenly divisible.
type Tile struct {
	// X, Y is the top-left pixel of the tile.
	X, Y int

	// Width, Height are the actual tile dimensions in pixels.
	Width, Height int
}

// Pixels returns the number of pixels covered by the tile.
func (t Tile) Pixels() int {
	return t.Width * t.Height
}

// Contains returns true if pixel (x, y) lies inside the tile.
func (t Tile) Contains(x, y int) bool {
	return x >= t.X && x < t.X+t.Width && y >= t.Y && y < t.Y+t.Height
}

// SplitTiles splits a width×height grid into tiles of at most
// tileW×tileH pixels, in row-major order. Tiles at the right and bottom
// edges are smaller if the grid is not divisible.
// Returns nil for empty grids or non-positive tile sizes.
func SplitTiles(width, height, tileW, tileH int) []Tile {
	if width <= 0 || height <= 0 || tileW <= 0 || tileH <= 0 {
		return nil
	}

	tilesX := (width + tileW - 1) / tileW
	tilesY := (height + tileH - 1) / tileH
	tiles := make([]Tile, 0, tilesX*tilesY)

	for oy := 0; oy < height; oy += tileH {
		th := min(tileH, height-oy)
		for ox := 0; ox < width; ox += tileW {
			tw := min(tileW, width-ox)
			tiles = append(tiles, Tile{X: ox, Y: oy, Width: tw, Height: th})
		}
	}

	return tiles
}

// ForEachTile runs fn once for every 64x64 tile of a width×height grid on
// the pool and returns when all tiles have finished.
//
// fn must only write pixels inside the tile it receives. Tiles that have not
// started when ctx is canceled are skipped, and ForEachTile then returns
// ctx.Err().
func ForEachTile(ctx context.Context, pool *WorkerPool, width, height int, fn func(Tile)) error {
	tiles := SplitTiles(width, height, TileWidth, TileHeight)
	if len(tiles) == 0 || fn == nil {
		return ctx.Err()
	}

	work := make([]func(), len(tiles))
	for i, tile := range tiles {
		work[i] = func() {
			if ctx.Err() != nil {
				return
			}
			fn(tile)
		}
	}

	pool.ExecuteAll(work)
	return ctx.Err()
}
