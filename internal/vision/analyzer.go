package vision

const (
	// edgeDelta is the minimum intensity step between neighboring pixels for
	// the pixel to count as a text edge.
	edgeDelta = 30

	// colorDivergence is the channel spread beyond which a pixel counts as
	// colorful rather than grayscale.
	colorDivergence = 20

	// darkChannelCeiling marks a pixel as colorful when every channel falls
	// below it, catching dark illustration regions with no channel spread.
	darkChannelCeiling = 200

	// nearWhiteFloor excludes background pixels: when every channel is at or
	// above it, the pixel is treated as page background.
	nearWhiteFloor = 230

	// analyzeStep is the sampling stride for the analysis passes.
	analyzeStep = 2

	imageRatioThreshold = 0.15
	tableDensityProxy   = 0.25
)

// Analyze runs the complexity heuristics over a page and returns its signal.
//
// Text density counts horizontal and vertical intensity gradients; image
// presence counts colorful pixels against the sampled total; table detection
// is a density proxy and handwriting detection is a stub, both acknowledged
// heuristic gaps reflected in the confidence score.
func Analyze(p Page) Complexity {
	density := textDensity(p)
	hasImages := imagePresence(p)

	c := Complexity{
		TextDensity:   density,
		HasImages:     hasImages,
		HasTables:     density > tableDensityProxy,
		IsHandwritten: detectHandwriting(p),
	}
	c.Confidence = confidence(c)

	return c
}

// textDensity measures the ratio of edge pixels to sampled pixels using
// local horizontal and vertical gradient steps.
func textDensity(p Page) float64 {
	bounds := p.Pix.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 2 || h < 2 {
		return 0
	}

	var sampled, edges int
	for y := bounds.Min.Y; y < bounds.Max.Y-1; y += analyzeStep {
		for x := bounds.Min.X; x < bounds.Max.X-1; x += analyzeStep {
			sampled++

			center := brightness(rgbAt(p.Pix, x, y))
			right := brightness(rgbAt(p.Pix, x+1, y))
			below := brightness(rgbAt(p.Pix, x, y+1))

			if abs(center-right) > edgeDelta || abs(center-below) > edgeDelta {
				edges++
			}
		}
	}

	if sampled == 0 {
		return 0
	}
	return float64(edges) / float64(sampled)
}

// imagePresence reports whether the colorful-pixel ratio exceeds the image
// threshold. Near-white background pixels never count as colorful.
func imagePresence(p Page) bool {
	bounds := p.Pix.Bounds()

	var sampled, colorful int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += analyzeStep {
		for x := bounds.Min.X; x < bounds.Max.X; x += analyzeStep {
			sampled++

			r, g, b := rgbAt(p.Pix, x, y)
			if r >= nearWhiteFloor && g >= nearWhiteFloor && b >= nearWhiteFloor {
				continue
			}

			spread := maxChannel(r, g, b) - minChannel(r, g, b)
			if int(spread) > colorDivergence {
				colorful++
				continue
			}
			if r < darkChannelCeiling && g < darkChannelCeiling && b < darkChannelCeiling {
				colorful++
			}
		}
	}

	if sampled == 0 {
		return false
	}
	return float64(colorful)/float64(sampled) > imageRatioThreshold
}

// detectHandwriting is a stub: stroke-variance analysis is not implemented,
// so every page reports false. The confidence rule accounts for this gap.
func detectHandwriting(Page) bool {
	return false
}

func confidence(c Complexity) float64 {
	switch {
	case c.TextDensity > 0.1 && !c.HasImages:
		return 0.9 // simple text page
	case c.HasImages || c.TextDensity < 0.05:
		return 0.7 // complex or nearly empty
	default:
		return 0.6 // ambiguous
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func maxChannel(r, g, b uint8) uint8 {
	return max(r, g, b)
}

func minChannel(r, g, b uint8) uint8 {
	return min(r, g, b)
}
