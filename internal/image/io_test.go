package image

import (
	"bytes"
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestCodecForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Codec
		wantErr bool
	}{
		{"out.png", CodecPNG, false},
		{"OUT.PNG", CodecPNG, false},
		{"photo.jpg", CodecJPEG, false},
		{"photo.jpeg", CodecJPEG, false},
		{"anim.gif", CodecGIF, false},
		{"a/b/c.bmp", CodecBMP, false},
		{"scan.tif", CodecTIFF, false},
		{"scan.tiff", CodecTIFF, false},
		{"image.webp", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := CodecForPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("CodecForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("CodecForPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestFromStdImage_NRGBA(t *testing.T) {
	src := stdimage.NewNRGBA(stdimage.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	buf := FromStdImage(src)
	r, g, b, a := buf.GetRGBA(1, 1)
	if r != 10 || g != 20 || b != 30 || a != 128 {
		t.Errorf("pixel = (%d,%d,%d,%d), want (10,20,30,128)", r, g, b, a)
	}
}

func TestFromStdImage_OffsetBounds(t *testing.T) {
	src := stdimage.NewNRGBA(stdimage.Rect(0, 0, 4, 4)).SubImage(stdimage.Rect(2, 2, 4, 4)).(*stdimage.NRGBA)
	src.SetNRGBA(2, 2, color.NRGBA{R: 99, A: 255})

	buf := FromStdImage(src)
	if w, h := buf.Bounds(); w != 2 || h != 2 {
		t.Fatalf("Bounds = (%d, %d), want (2, 2)", w, h)
	}
	if r, _, _, _ := buf.GetRGBA(0, 0); r != 99 {
		t.Errorf("sub-image origin red = %d, want 99", r)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	src := stdimage.NewGray(stdimage.Rect(0, 0, 1, 1))
	src.SetGray(0, 0, color.Gray{Y: 77})

	buf := FromStdImage(src)
	r, g, b, a := buf.GetRGBA(0, 0)
	if r != 77 || g != 77 || b != 77 || a != 255 {
		t.Errorf("gray pixel = (%d,%d,%d,%d), want (77,77,77,255)", r, g, b, a)
	}
}

func TestFromStdImage_Premultiplied(t *testing.T) {
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, A: 200})

	buf := FromStdImage(src)
	r, _, _, a := buf.GetRGBA(0, 0)
	// 100 premultiplied by 200/255 is 127.5 straight
	if a != 200 || r < 127 || r > 128 {
		t.Errorf("unpremultiplied pixel = (r=%d, a=%d), want (r≈127, a=200)", r, a)
	}
}

func TestToStdImageSharesData(t *testing.T) {
	buf, _ := NewImageBuf(2, 2)
	img := buf.ToStdImage()
	img.SetNRGBA(1, 0, color.NRGBA{G: 5, A: 255})

	if _, g, _, _ := buf.GetRGBA(1, 0); g != 5 {
		t.Errorf("ToStdImage should share pixel data, got g=%d", g)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src, _ := NewImageBuf(3, 2)
	src.Fill(200, 100, 50, 255)

	for _, codec := range []Codec{CodecPNG, CodecBMP, CodecTIFF} {
		t.Run(string(codec), func(t *testing.T) {
			data, err := src.EncodeToBytes(codec)
			if err != nil {
				t.Fatalf("EncodeToBytes failed: %v", err)
			}

			dec, err := DecodeAll(data)
			if err != nil {
				t.Fatalf("DecodeAll failed: %v", err)
			}
			if dec.Codec != codec {
				t.Errorf("Codec = %q, want %q", dec.Codec, codec)
			}
			if dec.Animated() {
				t.Error("still image reported as animated")
			}
			r, g, b, a := dec.Frames[0].GetRGBA(2, 1)
			if r != 200 || g != 100 || b != 50 || a != 255 {
				t.Errorf("decoded pixel = (%d,%d,%d,%d), want (200,100,50,255)", r, g, b, a)
			}
		})
	}
}

func TestEncodeJPEG(t *testing.T) {
	src, _ := NewImageBuf(8, 8)
	src.Fill(128, 128, 128, 255)

	data, err := src.EncodeToBytes(CodecJPEG)
	if err != nil {
		t.Fatalf("EncodeToBytes failed: %v", err)
	}
	dec, err := DecodeAll(data)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	r, _, _, _ := dec.Frames[0].GetRGBA(4, 4)
	if r < 120 || r > 136 {
		t.Errorf("JPEG gray = %d, want ≈128", r)
	}
}

func TestEncodeUnknownCodec(t *testing.T) {
	src, _ := NewImageBuf(1, 1)
	if err := src.Encode(&bytes.Buffer{}, CodecWebP); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(webp) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeAllErrors(t *testing.T) {
	if _, err := DecodeAll(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeAll(nil) error = %v, want ErrEmptyData", err)
	}
	if _, err := DecodeAll([]byte("definitely not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecodeAll(garbage) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")

	src := stdimage.NewNRGBA(stdimage.Rect(0, 0, 2, 3))
	src.SetNRGBA(0, 2, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	dec, err := LoadAll(path)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if w, h := dec.Frames[0].Bounds(); w != 2 || h != 3 {
		t.Errorf("Bounds = (%d, %d), want (2, 3)", w, h)
	}
	if _, _, b, _ := dec.Frames[0].GetRGBA(0, 2); b != 255 {
		t.Errorf("blue = %d, want 255", b)
	}
}

func TestLoadAll_NotFound(t *testing.T) {
	_, err := LoadAll(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadAll(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestEncodeGIFStillKeepsTransparency(t *testing.T) {
	src, _ := NewImageBuf(3, 3)
	src.Fill(255, 0, 0, 255)
	_ = src.SetRGBA(1, 1, 0, 0, 0, 0)

	data, err := src.EncodeToBytes(CodecGIF)
	if err != nil {
		t.Fatalf("EncodeToBytes failed: %v", err)
	}
	dec, err := DecodeAll(data)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if dec.Animated() {
		t.Error("single-frame GIF reported as animated")
	}
	if _, _, _, a := dec.Frames[0].GetRGBA(1, 1); a != 0 {
		t.Errorf("center alpha = %d, want 0", a)
	}
	if r, _, _, a := dec.Frames[0].GetRGBA(0, 0); r != 255 || a != 255 {
		t.Errorf("corner = (r=%d, a=%d), want opaque red", r, a)
	}
}
