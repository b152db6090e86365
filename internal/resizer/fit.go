package resizer

import "math"

// Fit returns the largest size with the aspect ratio of width x height that
// fits within maxWidth x maxHeight. The last value reports whether the image
// exceeds the bound at all; images are never upscaled.
func Fit(width, height, maxWidth, maxHeight int) (int, int, bool) {
	if width <= maxWidth && height <= maxHeight {
		return width, height, false
	}

	scale := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	w := clamp(int(math.Round(float64(width)*scale)), 1, maxWidth)
	h := clamp(int(math.Round(float64(height)*scale)), 1, maxHeight)
	return w, h, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
