// Package render turns uploaded document bytes into per-page RGBA images
// for the processing pipeline.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	_ "image/jpeg"
	_ "image/png"

	"github.com/gen2brain/go-fitz"

	"github.com/csattler/tessera/internal/profile"
	"github.com/csattler/tessera/internal/vision"
)

// renderDPI balances recognition accuracy against memory per page.
const renderDPI = 150

// Pages renders a document into ordered page images. PDFs render one image
// per page, standalone images become a single page, and audio produces no
// pages at all.
func Pages(data []byte, format profile.Format) ([]vision.Page, error) {
	switch format {
	case profile.FormatAudio:
		return nil, nil
	case profile.FormatImage:
		return imagePage(data)
	default:
		return documentPages(data)
	}
}

func documentPages(data []byte) ([]vision.Page, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("render: open document: %w", err)
	}
	defer doc.Close()

	count := doc.NumPage()
	pages := make([]vision.Page, 0, count)

	for i := range count {
		img, err := doc.ImageDPI(i, renderDPI)
		if err != nil {
			return nil, fmt.Errorf("render: page %d: %w", i+1, err)
		}

		pages = append(pages, vision.Page{
			Number: i + 1,
			Pix:    img,
		})
	}

	return pages, nil
}

func imagePage(data []byte) ([]vision.Page, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("render: decode image: %w", err)
	}

	return []vision.Page{{Number: 1, Pix: toRGBA(decoded)}}, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}
