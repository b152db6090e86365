package resizer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"downsize/pkg/imgutil"
)

func TestEncodeKeepsFamily(t *testing.T) {
	img := gradient(40, 30)

	for _, kind := range []imgutil.Kind{imgutil.KindJPEG, imgutil.KindPNG, imgutil.KindBMP, imgutil.KindTIFF, imgutil.KindGIF} {
		var buf bytes.Buffer
		if err := encode(&buf, img, kind, DefaultQuality); err != nil {
			t.Fatalf("%s: encode: %v", kind, err)
		}

		got, err := imgutil.SniffReader(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("%s: sniff: %v", kind, err)
		}
		if got != kind {
			t.Fatalf("encoded %s, sniffed %s", kind, got)
		}

		cfg, err := decodeConfig(bytes.NewReader(buf.Bytes()), kind)
		if err != nil {
			t.Fatalf("%s: decode config: %v", kind, err)
		}
		if cfg.Width != 40 || cfg.Height != 30 {
			t.Fatalf("%s: got %dx%d, expected 40x30", kind, cfg.Width, cfg.Height)
		}

		if _, err := decode(bytes.NewReader(buf.Bytes()), kind); err != nil {
			t.Fatalf("%s: decode: %v", kind, err)
		}
	}
}

func TestEncodeJPEGQuality(t *testing.T) {
	img := gradient(200, 200)

	var low, high bytes.Buffer
	if err := encode(&low, img, imgutil.KindJPEG, 10); err != nil {
		t.Fatal(err)
	}
	if err := encode(&high, img, imgutil.KindJPEG, 100); err != nil {
		t.Fatal(err)
	}
	if low.Len() >= high.Len() {
		t.Fatalf("quality 10 produced %d bytes, quality 100 produced %d", low.Len(), high.Len())
	}
}

func TestEncodeUnknown(t *testing.T) {
	var buf bytes.Buffer
	err := encode(&buf, gradient(2, 2), imgutil.KindUnknown, DefaultQuality)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func gradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: uint8((x ^ y) & 0xff),
				A: 0xff,
			})
		}
	}
	return img
}
