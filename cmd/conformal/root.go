package main

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/conformal"
	"github.com/gogpu/conformal/internal/image"
)

const (
	defaultOutput = "output.png"

	// frameDelay is the display time of each frame of an animated output.
	frameDelay = 33 * time.Millisecond
)

// options holds the parsed command line.
type options struct {
	input      string
	output     string
	resolution string
	mapName    string
	coeffs     string
	interp     string
	workers    int
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "conformal <input>",
		Short: "Warp an image through a conformal map",
		Long: `conformal resamples an image through a complex-valued conformal map.

Every destination pixel is mapped into the complex plane, sent through the
map and sampled from the source image, which repeats periodically in every
direction. Animated GIF input is processed frame by frame and written as an
animated PNG, or as an animated GIF when the output ends in .gif.`,
		Version:       conformal.Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			err := run(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "conformal: %v\n", err)
			}
			return err
		},
	}

	bindFlags(cmd.Flags(), opts)

	return cmd
}

// bindFlags registers the command line flags on f.
func bindFlags(f *pflag.FlagSet, opts *options) {
	f.SortFlags = false
	f.StringVarP(&opts.output, "output", "o", defaultOutput, "output file; the extension selects the format")
	f.StringVarP(&opts.resolution, "resolution", "r", conformal.DefaultResolution.String(), "output resolution as W:H")
	f.StringVarP(&opts.mapName, "map", "m", conformal.MapSpiral, "map to apply: "+strings.Join(conformal.MapNames(), ", "))
	f.StringVarP(&opts.coeffs, "coeffs", "c", "", "Möbius coefficients a,b,c,d (for example 1,0,0.01i,1)")
	f.StringVar(&opts.interp, "interp", "bilinear", "sampling: bilinear or nearest")
	f.IntVarP(&opts.workers, "workers", "w", 0, "tile workers (0 uses all CPUs)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log per-frame statistics")
}

// run performs one conversion. The output file is written only after the
// whole result has been encoded.
func run(ctx context.Context, opts *options, stderr io.Writer) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	conformal.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer conformal.SetLogger(nil)

	res, err := conformal.ParseResolution(opts.resolution)
	if err != nil {
		return err
	}
	interp, err := conformal.ParseInterpolation(opts.interp)
	if err != nil {
		return err
	}
	coeffs, err := parseCoeffs(opts.coeffs)
	if err != nil {
		return err
	}

	dec, err := image.LoadAll(opts.input)
	if err != nil {
		return err
	}

	animated := dec.Animated()
	codec, err := resolveOutput(opts.output, animated)
	if err != nil {
		return err
	}

	first := dec.Frames[0]
	m, err := conformal.ParseMap(opts.mapName, coeffs, first.Width(), first.Height())
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)

	engOpts := []conformal.EngineOption{
		conformal.WithWorkers(opts.workers),
		conformal.WithInterpolation(interp),
	}
	if animated {
		engOpts = append(engOpts, conformal.WithProgress(func(done, _ int) {
			p.Fprintf(stderr, "\rComputing frame: %d", done)
		}))
	}
	eng := conformal.NewEngine(engOpts...)
	defer eng.Close()

	frames := make([]stdimage.Image, len(dec.Frames))
	for i, f := range dec.Frames {
		frames[i] = f.ToStdImage()
	}

	out, stats, err := eng.WarpFrames(ctx, m, frames, res)
	if err != nil {
		if animated {
			fmt.Fprintln(stderr)
		}
		return err
	}
	if animated {
		p.Fprintln(stderr, "\ndone")
	}

	data, err := encode(out, codec, animated)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fallbacks := 0
	for _, st := range stats {
		fallbacks += st.Fallbacks
	}
	conformal.Logger().Info("wrote output",
		"path", opts.output,
		"map", m.String(),
		"frames", len(out),
		"resolution", res.String(),
		"fallbacks", p.Sprintf("%d", fallbacks))

	return nil
}

// resolveOutput picks the output codec from the path. Animated input needs
// a container that holds frames: PNG (written as APNG) or GIF.
func resolveOutput(path string, animated bool) (image.Codec, error) {
	codec, err := image.CodecForPath(path)
	if err != nil {
		return "", err
	}
	if animated && codec != image.CodecPNG && codec != image.CodecGIF {
		return "", fmt.Errorf("%w: %s", conformal.ErrAnimatedOutput, filepath.Base(path))
	}
	return codec, nil
}

// parseCoeffs parses a comma-separated list of complex numbers such as
// "1,0,0.5+1i,1". An empty string yields no coefficients.
func parseCoeffs(s string) ([]complex128, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	coeffs := make([]complex128, len(fields))
	for i, f := range fields {
		c, err := strconv.ParseComplex(strings.TrimSpace(f), 128)
		if err != nil {
			return nil, fmt.Errorf("%w: coefficient %d: %w", conformal.ErrInvalidCoefficients, i, err)
		}
		coeffs[i] = c
	}
	return coeffs, nil
}

// encode serializes the warped frames into memory.
func encode(frames []*stdimage.NRGBA, codec image.Codec, animated bool) ([]byte, error) {
	bufs := make([]*image.ImageBuf, len(frames))
	for i, f := range frames {
		bufs[i] = image.FromStdImage(f)
	}

	if !animated {
		return bufs[0].EncodeToBytes(codec)
	}

	var buf bytes.Buffer
	var err error
	if codec == image.CodecGIF {
		err = image.EncodeAnimation(&buf, bufs, frameDelay)
	} else {
		err = image.EncodeAnimatedPNG(&buf, bufs, frameDelay)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
