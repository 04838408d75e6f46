package image

import (
	"bytes"
	"errors"
	"fmt"
	stdimage "image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Codec identifies an image container. Values match the format names
// reported by the standard library's image.Decode.
type Codec string

// Supported codecs.
const (
	CodecPNG  Codec = "png"
	CodecJPEG Codec = "jpeg"
	CodecGIF  Codec = "gif"
	CodecBMP  Codec = "bmp"
	CodecTIFF Codec = "tiff"
	CodecWebP Codec = "webp"
)

// jpegQuality is used for all JPEG output.
const jpegQuality = 90

// CodecForPath selects an output codec from the file extension.
// Returns ErrUnsupportedFormat for extensions without an encoder.
func CodecForPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return CodecPNG, nil
	case ".jpg", ".jpeg":
		return CodecJPEG, nil
	case ".gif":
		return CodecGIF, nil
	case ".bmp":
		return CodecBMP, nil
	case ".tif", ".tiff":
		return CodecTIFF, nil
	default:
		return "", fmt.Errorf("%w: no encoder for %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decoded holds every frame of a decoded file.
//
// Still images have exactly one frame. Animated GIFs have one fully
// composited canvas per frame, all of the same size.
type Decoded struct {
	// Codec is the detected container format.
	Codec Codec

	// Frames are the decoded RGBA8 frames in display order.
	Frames []*ImageBuf

	// Delays holds per-frame delays in 100ths of a second (GIF only).
	Delays []int

	// LoopCount is the GIF loop count (0 loops forever).
	LoopCount int
}

// Animated reports whether the file holds more than one frame.
func (d *Decoded) Animated() bool {
	return d != nil && len(d.Frames) > 1
}

// LoadAll reads and decodes the file at path, keeping every GIF frame.
func LoadAll(path string) (*Decoded, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: read file: %w", err)
	}
	return DecodeAll(data)
}

// DecodeAll decodes data, auto-detecting the format. GIF input is decoded
// frame by frame; all other formats yield a single frame.
func DecodeAll(data []byte) (*Decoded, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	_, format, err := stdimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(err)
	}

	if Codec(format) == CodecGIF {
		return decodeGIF(bytes.NewReader(data))
	}

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Decoded{Codec: Codec(format), Frames: []*ImageBuf{img}}, nil
}

// Decode decodes a single image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := stdimage.Decode(r)
	if err != nil {
		return nil, decodeError(err)
	}
	return FromStdImage(img), nil
}

// decodeError maps the standard library's unknown-format error onto
// ErrUnsupportedFormat and wraps everything else.
func decodeError(err error) error {
	if errors.Is(err, stdimage.ErrFormat) {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return fmt.Errorf("image: decode: %w", err)
}

// Encode writes the image to w using the given codec.
func (b *ImageBuf) Encode(w io.Writer, codec Codec) error {
	img := b.ToStdImage()

	var err error
	switch codec {
	case CodecPNG:
		err = png.Encode(w, img)
	case CodecJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case CodecGIF:
		err = gif.Encode(w, toPaletted(img), nil)
	case CodecBMP:
		err = bmp.Encode(w, img)
	case CodecTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, codec)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", codec, err)
	}
	return nil
}

// EncodeToBytes encodes the image with the given codec and returns the bytes.
func (b *ImageBuf) EncodeToBytes(codec Codec) ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Encode(&buf, codec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromStdImage creates an RGBA8 ImageBuf from a standard library image.
// Colors are converted to non-premultiplied alpha.
func FromStdImage(img stdimage.Image) *ImageBuf {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	buf, err := NewImageBuf(width, height)
	if err != nil {
		return nil
	}

	// Fast path for NRGBA images
	if nrgba, ok := img.(*stdimage.NRGBA); ok {
		for y := range height {
			srcStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), nrgba.Pix[srcStart:srcStart+width*BytesPerPixel])
		}
		return buf
	}

	// Generic path: draw through the NRGBA color model
	dst := &stdimage.NRGBA{Pix: buf.pix, Stride: buf.stride(), Rect: stdimage.Rect(0, 0, width, height)}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)

	return buf
}

// ToStdImage returns an *image.NRGBA sharing the buffer's pixel data.
func (b *ImageBuf) ToStdImage() *stdimage.NRGBA {
	return &stdimage.NRGBA{
		Pix:    b.pix,
		Stride: b.stride(),
		Rect:   stdimage.Rect(0, 0, b.width, b.height),
	}
}
