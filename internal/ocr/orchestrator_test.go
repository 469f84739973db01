package ocr_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"testing"

	"github.com/csattler/tessera/internal/ocr"
	"github.com/csattler/tessera/internal/pipeline"
	"github.com/csattler/tessera/internal/profile"
	"github.com/csattler/tessera/internal/vision"
)

func fastProfile() profile.DocumentProfile {
	return profile.DocumentProfile{
		Format:       profile.FormatPDF,
		SizeBytes:    1024 * 1024,
		PageCount:    5,
		ContentClass: profile.ClassTextHeavy,
		TextDensity:  0.85,
		Complexity:   0.2,
		UserTier:     profile.UserStandard,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func whitePage(number int) vision.Page {
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)
	return vision.Page{Number: number, Pix: img}
}

// strokedPage carries sparse vertical strokes: non-blank, measurable text
// density, no colorful regions.
func strokedPage(number int) vision.Page {
	page := whitePage(number)
	for x := 0; x < 128; x += 16 {
		draw.Draw(page.Pix, image.Rect(x, 0, x+1, 128), &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)
	}
	return page
}

type stubEngine struct {
	text  string
	err   error
	calls int
}

func (s *stubEngine) Recognize(context.Context, vision.Page) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubExtractor struct {
	text   string
	err    error
	calls  int
	detail string
}

func (s *stubExtractor) Extract(_ context.Context, _ []byte, _ int, detail string) (string, error) {
	s.calls++
	s.detail = detail
	return s.text, s.err
}

// configWith pins the strategy thresholds so dispatch can be steered
// independently of the analyzer's exact density values.
func configWith(free, cheap float64) pipeline.Config {
	cfg := pipeline.BuildConfig(fastProfile(), pipeline.TierBalanced)
	cfg.Thresholds = pipeline.Thresholds{Free: free, Cheap: cheap}
	return cfg
}

func TestFilterBlankPage(t *testing.T) {
	o := ocr.NewOrchestrator(&stubEngine{}, &stubExtractor{}, testLogger())

	result, skip := o.Filter(whitePage(3), vision.NewHashSet())

	if !skip {
		t.Fatal("blank page should be skipped")
	}
	if result.SkipReason != ocr.SkipBlank {
		t.Errorf("reason: got %s, want %s", result.SkipReason, ocr.SkipBlank)
	}
	if result.Cost != 0 {
		t.Errorf("cost: got %.0f, want 0", result.Cost)
	}
	if result.PageNumber != 3 {
		t.Errorf("page: got %d, want 3", result.PageNumber)
	}
}

func TestFilterDuplicatePage(t *testing.T) {
	o := ocr.NewOrchestrator(&stubEngine{}, &stubExtractor{}, testLogger())
	hashes := vision.NewHashSet()

	if _, skip := o.Filter(strokedPage(1), hashes); skip {
		t.Fatal("first page should pass the filter")
	}

	result, skip := o.Filter(strokedPage(2), hashes)
	if !skip {
		t.Fatal("repeated page should be skipped")
	}
	if result.SkipReason != ocr.SkipDuplicate {
		t.Errorf("reason: got %s, want %s", result.SkipReason, ocr.SkipDuplicate)
	}
	if result.Cost != 0 {
		t.Errorf("cost: got %.0f, want 0", result.Cost)
	}
}

func TestProcessFreeStrategy(t *testing.T) {
	engine := &stubEngine{text: "recognized"}
	extractor := &stubExtractor{}
	o := ocr.NewOrchestrator(engine, extractor, testLogger())

	result, err := o.Process(context.Background(), strokedPage(1), configWith(0.05, 0.01))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if result.Strategy != "free" {
		t.Errorf("strategy: got %s, want free", result.Strategy)
	}
	if result.Cost != 0 {
		t.Errorf("cost: got %.0f, want 0", result.Cost)
	}
	if result.Text != "recognized" {
		t.Errorf("text: got %q", result.Text)
	}
	if engine.calls != 1 || extractor.calls != 0 {
		t.Errorf("backend calls: engine %d, extractor %d", engine.calls, extractor.calls)
	}
}

func TestProcessCheapStrategy(t *testing.T) {
	engine := &stubEngine{}
	extractor := &stubExtractor{text: "extracted"}
	o := ocr.NewOrchestrator(engine, extractor, testLogger())

	result, err := o.Process(context.Background(), strokedPage(1), configWith(0.9, 0.05))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if result.Strategy != "cheap" {
		t.Errorf("strategy: got %s, want cheap", result.Strategy)
	}
	if result.Cost != pipeline.CostCheapPage {
		t.Errorf("cost: got %.0f, want %.0f", result.Cost, float64(pipeline.CostCheapPage))
	}
	if extractor.detail != ocr.DetailLow {
		t.Errorf("detail: got %s, want %s", extractor.detail, ocr.DetailLow)
	}
	if engine.calls != 0 {
		t.Errorf("local engine should not run, got %d calls", engine.calls)
	}
}

func TestProcessPremiumStrategy(t *testing.T) {
	extractor := &stubExtractor{text: "extracted"}
	o := ocr.NewOrchestrator(&stubEngine{}, extractor, testLogger())

	result, err := o.Process(context.Background(), strokedPage(1), configWith(0.9, 0.8))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if result.Strategy != "premium" {
		t.Errorf("strategy: got %s, want premium", result.Strategy)
	}
	if result.Cost != pipeline.CostPremiumPage {
		t.Errorf("cost: got %.0f, want %.0f", result.Cost, float64(pipeline.CostPremiumPage))
	}
	if extractor.detail != ocr.DetailHigh {
		t.Errorf("detail: got %s, want %s", extractor.detail, ocr.DetailHigh)
	}
}

func TestProcessPremiumHighQualityOverride(t *testing.T) {
	extractor := &stubExtractor{text: "extracted"}
	o := ocr.NewOrchestrator(&stubEngine{}, extractor, testLogger())

	cfg := configWith(0.9, 0.8)
	cfg.RequireHighQuality = true

	result, err := o.Process(context.Background(), strokedPage(1), cfg)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if result.Cost != pipeline.CostPremiumMaxPage {
		t.Errorf("cost: got %.0f, want %.0f", result.Cost, float64(pipeline.CostPremiumMaxPage))
	}
}

func TestProcessBackendFailure(t *testing.T) {
	engine := &stubEngine{err: errors.New("tesseract unavailable")}
	o := ocr.NewOrchestrator(engine, &stubExtractor{}, testLogger())

	_, err := o.Process(context.Background(), strokedPage(7), configWith(0.05, 0.01))
	if !errors.Is(err, ocr.ErrRecognition) {
		t.Errorf("got %v, want ErrRecognition", err)
	}
}

func TestProcessPageComposesFilter(t *testing.T) {
	engine := &stubEngine{text: "text"}
	o := ocr.NewOrchestrator(engine, &stubExtractor{}, testLogger())
	hashes := vision.NewHashSet()

	result, err := o.ProcessPage(context.Background(), whitePage(1), configWith(0.05, 0.01), hashes)
	if err != nil {
		t.Fatalf("blank page should not error: %v", err)
	}
	if !result.Skipped {
		t.Error("blank page should be skipped")
	}
	if engine.calls != 0 {
		t.Error("skipped page must not reach a backend")
	}

	result, err = o.ProcessPage(context.Background(), strokedPage(2), configWith(0.05, 0.01), hashes)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if result.Skipped || result.Text != "text" {
		t.Errorf("unexpected result: %+v", result)
	}
}
