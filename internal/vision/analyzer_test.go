package vision_test

import (
	"image"
	"image/draw"
	"testing"

	"github.com/csattler/tessera/internal/vision"
)

// linedPage draws one-pixel black vertical strokes every 16 pixels on a
// white background, approximating sparse printed text.
func linedPage(number, width, height int) vision.Page {
	page := solidPage(number, width, height, white)
	for x := 0; x < width; x += 16 {
		draw.Draw(page.Pix, image.Rect(x, 0, x+1, height), &image.Uniform{black}, image.Point{}, draw.Src)
	}
	return page
}

func TestAnalyzeTextPage(t *testing.T) {
	c := vision.Analyze(linedPage(1, 128, 128))

	if c.TextDensity <= 0.1 {
		t.Errorf("text density: got %.3f, want > 0.1", c.TextDensity)
	}
	if c.HasImages {
		t.Error("sparse strokes should not register as images")
	}
	if c.IsHandwritten {
		t.Error("handwriting detection should report false")
	}
	if c.Confidence != 0.9 {
		t.Errorf("confidence: got %.2f, want 0.9", c.Confidence)
	}
}

func TestAnalyzeImagePage(t *testing.T) {
	page := solidPage(1, 128, 128, white)
	// a colorful block covering a quarter of the page
	draw.Draw(page.Pix, image.Rect(0, 0, 64, 64), &image.Uniform{red}, image.Point{}, draw.Src)

	c := vision.Analyze(page)

	if !c.HasImages {
		t.Error("colorful region should register as an image")
	}
	if c.Confidence != 0.7 {
		t.Errorf("confidence: got %.2f, want 0.7", c.Confidence)
	}
}

func TestAnalyzeUniformPage(t *testing.T) {
	c := vision.Analyze(solidPage(1, 128, 128, white))

	if c.TextDensity != 0 {
		t.Errorf("uniform page density: got %.3f, want 0", c.TextDensity)
	}
	if c.HasImages {
		t.Error("white page should not register images")
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name     string
		page     vision.Page
		expected bool
	}{
		{"white page", solidPage(1, 200, 200, white), true},
		{"lined page", linedPage(2, 200, 200), false},
		{"black page", solidPage(3, 200, 200, black), false},
		{"empty bounds", vision.Page{Number: 4, Pix: image.NewRGBA(image.Rect(0, 0, 0, 0))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vision.IsBlank(tt.page); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}
