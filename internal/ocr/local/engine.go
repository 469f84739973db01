// Package local wraps the Tesseract engine used by the free strategy.
package local

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/csattler/tessera/internal/vision"
)

// Engine recognizes page text with a locally installed Tesseract runtime.
type Engine struct {
	languages []string
}

// New creates a local engine. With no languages Tesseract falls back to its
// default traineddata.
func New(languages ...string) *Engine {
	return &Engine{languages: languages}
}

// Recognize renders the page to PNG and runs it through Tesseract. A fresh
// client per call keeps the engine safe for concurrent pages; client state
// is not shareable across goroutines.
func (e *Engine) Recognize(ctx context.Context, page vision.Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if page.Pix == nil {
		return "", fmt.Errorf("recognize page %d: nil image", page.Number)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, page.Pix); err != nil {
		return "", fmt.Errorf("recognize page %d: encode: %w", page.Number, err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(e.languages) > 0 {
		if err := client.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("recognize page %d: language: %w", page.Number, err)
		}
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("recognize page %d: %w", page.Number, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize page %d: %w", page.Number, err)
	}

	return text, nil
}
