// Package optimize compresses rendered pages into JPEG payloads sized for
// the remote extraction endpoint.
package optimize

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// maxDimension caps the longest edge of an uploaded page. Remote vision
// endpoints tile anything larger without improving recognition.
const maxDimension = 2048

// Encoded is a compressed page image ready for upload.
type Encoded struct {
	Data    []byte
	Quality int
	Width   int
	Height  int
	// Ratio is encoded size over raw RGBA size.
	Ratio float64
}

// Compress downscales img to fit maxDimension and encodes it as JPEG at the
// given quality (1-100).
func Compress(img *image.RGBA, quality int) (Encoded, error) {
	if img == nil {
		return Encoded{}, fmt.Errorf("compress: nil image")
	}
	if quality < 1 || quality > 100 {
		return Encoded{}, fmt.Errorf("compress: quality %d out of range", quality)
	}

	scaled := downscale(img)
	bounds := scaled.Bounds()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
		return Encoded{}, fmt.Errorf("compress: %w", err)
	}

	raw := len(img.Pix)
	encoded := Encoded{
		Data:    buf.Bytes(),
		Quality: quality,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	}
	if raw > 0 {
		encoded.Ratio = float64(buf.Len()) / float64(raw)
	}

	return encoded, nil
}

func downscale(img *image.RGBA) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	longest := max(width, height)
	if longest <= maxDimension {
		return img
	}

	scale := float64(maxDimension) / float64(longest)
	target := image.Rect(0, 0,
		max(1, int(float64(width)*scale)),
		max(1, int(float64(height)*scale)),
	)

	dst := image.NewRGBA(target)
	draw.ApproxBiLinear.Scale(dst, target, img, bounds, draw.Over, nil)
	return dst
}
