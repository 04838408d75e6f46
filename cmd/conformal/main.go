// Command conformal warps an image, or every frame of an animated GIF,
// through a conformal map.
//
// Usage:
//
//	conformal <input> [-o|--output path] [-r|--resolution W:H]
//
// The output format follows the output extension. Animated input is written
// as an animated PNG, or as an animated GIF for a .gif output.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
