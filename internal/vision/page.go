// Package vision implements pixel-level page analysis: complexity heuristics,
// blank-page detection, and perceptual fingerprinting for duplicate detection.
// All functions are pure over the page buffer and safe to run in parallel
// across pages.
package vision

import "image"

// Page is a single rendered document page backed by an RGBA pixel buffer.
type Page struct {
	Number int
	Pix    *image.RGBA
}

// Complexity is the per-page signal produced by Analyze. It is computed fresh
// for every page and never cached across pages.
type Complexity struct {
	HasImages     bool    `json:"has_images"`
	HasTables     bool    `json:"has_tables"`
	TextDensity   float64 `json:"text_density"`
	IsHandwritten bool    `json:"is_handwritten"`
	Confidence    float64 `json:"confidence"`
}

// rgbAt returns the color channels at (x, y) without alpha.
func rgbAt(img *image.RGBA, x, y int) (uint8, uint8, uint8) {
	i := img.PixOffset(x, y)
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// brightness returns the mean of the three color channels.
func brightness(r, g, b uint8) int {
	return (int(r) + int(g) + int(b)) / 3
}
