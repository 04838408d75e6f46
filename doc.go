// Package conformal warps raster images through complex-valued conformal
// maps.
//
// # Overview
//
// A conformal map is a function from the complex plane to itself that
// preserves angles locally. conformal applies such a map to an image by
// inverse mapping: every destination pixel is converted to a point of the
// complex plane, the map sends it back to the source plane, and the source
// image is sampled there.
//
// # Quick Start
//
//	import "github.com/gogpu/conformal"
//
//	m, err := conformal.NewSpiral(float64(src.Bounds().Dy()), float64(src.Bounds().Dx()))
//	if err != nil {
//	    return err
//	}
//
//	eng := conformal.NewEngine()
//	defer eng.Close()
//
//	out, stats, err := eng.Warp(ctx, m, src, conformal.Resolution{Width: 512, Height: 512})
//
// # Maps
//
// The set of maps is closed: [Mobius], [MobiusInverse] and [Spiral]. Each is
// an immutable value safe for concurrent use. A map reports a singularity
// (a pole, or the logarithm of zero) by returning ok == false; the engine
// then writes a transparent pixel and keeps going.
//
// # Coordinate System
//
// One domain unit is one source pixel. The origin of the domain is the
// center of the image and the imaginary axis points up:
//   - Destination pixel (dx, dy) is sampled at its center (dx+0.5, dy+0.5)
//   - z = s·(x − W/2) − i·s·(y − H/2) where s = max(sw/W, sh/H)
//   - Source coordinates are sx = re z + sw/2, sy = sh/2 − im z
//
// Source coordinates outside the image wrap around, so the source behaves
// as an infinite periodic tiling. Sampling is bilinear with pixel centers at
// integer+0.5.
//
// # Concurrency
//
// The destination grid is split into 64x64 tiles that run on a persistent
// worker pool. Output does not depend on the number of workers.
package conformal

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
