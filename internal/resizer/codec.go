package resizer

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"downsize/pkg/imgutil"
)

func decodeConfig(r io.Reader, kind imgutil.Kind) (image.Config, error) {
	var (
		cfg image.Config
		err error
	)
	switch kind {
	case imgutil.KindBMP:
		cfg, err = bmp.DecodeConfig(r)
	case imgutil.KindTIFF:
		cfg, err = tiff.DecodeConfig(r)
	default:
		cfg, _, err = image.DecodeConfig(r)
	}
	if err != nil {
		return cfg, fmt.Errorf("decode %s header: %w", kind, err)
	}
	return cfg, nil
}

func decode(r io.Reader, kind imgutil.Kind) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return img, nil
}

// encode writes img in the given family. Quality is honored for JPEG only;
// image/jpeg has no optimized Huffman tables, so JPEG output uses the standard
// ones. PNG and TIFF use their strongest lossless compression. GIF is
// re-quantized to 256 colors.
func encode(w io.Writer, img image.Image, kind imgutil.Kind, quality int) error {
	var err error
	switch kind {
	case imgutil.KindJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case imgutil.KindPNG:
		err = imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	case imgutil.KindBMP:
		err = bmp.Encode(w, img)
	case imgutil.KindGIF:
		err = imaging.Encode(w, img, imaging.GIF)
	case imgutil.KindTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	return nil
}
