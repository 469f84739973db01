package vision

const (
	// blankSampleStep trades accuracy for speed: only every Nth pixel of each
	// sampled row contributes to the brightness histogram.
	blankSampleStep = 10

	// darkBrightnessCeiling marks a sample as non-background content.
	darkBrightnessCeiling = 250

	// blankDarkRatio is the dark-sample fraction below which a page counts as blank.
	blankDarkRatio = 0.01
)

// IsBlank reports whether a page is effectively empty. It samples every Nth
// pixel and declares the page blank when fewer than 1% of samples are darker
// than near-white.
func IsBlank(p Page) bool {
	bounds := p.Pix.Bounds()

	var sampled, dark int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += blankSampleStep {
		for x := bounds.Min.X; x < bounds.Max.X; x += blankSampleStep {
			sampled++
			if brightness(rgbAt(p.Pix, x, y)) < darkBrightnessCeiling {
				dark++
			}
		}
	}

	if sampled == 0 {
		return true
	}
	return float64(dark)/float64(sampled) < blankDarkRatio
}
