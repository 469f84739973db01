package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/csattler/tessera/internal/ocr/optimize"
	"github.com/csattler/tessera/internal/pipeline"
	"github.com/csattler/tessera/internal/vision"
)

// Engine performs local text recognition on a rendered page.
type Engine interface {
	Recognize(ctx context.Context, page vision.Page) (string, error)
}

// Extractor calls the remote vision endpoint with an encoded page image.
// Detail is DetailLow or DetailHigh.
type Extractor interface {
	Extract(ctx context.Context, image []byte, pageNumber int, detail string) (string, error)
}

// Orchestrator runs the per-page processing chain: filter, analyze, select,
// dispatch. Filtering mutates the run's fingerprint set and must stay on a
// single goroutine; Process is safe to call concurrently.
type Orchestrator struct {
	engine    Engine
	extractor Extractor
	logger    *slog.Logger
}

func NewOrchestrator(engine Engine, extractor Extractor, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		engine:    engine,
		extractor: extractor,
		logger:    logger.With("system", "ocr"),
	}
}

// Filter checks a page against the blank detector and the run's fingerprint
// set. It returns a skip result and true when the page should not be
// processed further.
func (o *Orchestrator) Filter(page vision.Page, hashes *vision.HashSet) (Result, bool) {
	if vision.IsBlank(page) {
		o.logger.Debug("page skipped", "page", page.Number, "reason", SkipBlank)
		return skipped(page.Number, SkipBlank), true
	}

	if hashes.Observe(vision.ComputeFingerprint(page)) {
		o.logger.Debug("page skipped", "page", page.Number, "reason", SkipDuplicate)
		return skipped(page.Number, SkipDuplicate), true
	}

	return Result{}, false
}

// Process analyzes a page, selects a strategy under the active pipeline
// configuration, and dispatches to the matching backend. The page is
// assumed to have already passed Filter.
func (o *Orchestrator) Process(ctx context.Context, page vision.Page, cfg pipeline.Config) (Result, error) {
	complexity := vision.Analyze(page)
	strategy := SelectForTier(complexity, cfg)

	o.logger.Debug("page routed",
		"page", page.Number,
		"strategy", strategy.String(),
		"density", complexity.TextDensity,
		"images", complexity.HasImages,
		"tables", complexity.HasTables,
	)

	switch strategy {
	case StrategyFree:
		return o.processFree(ctx, page)
	case StrategyCheap:
		return o.processRemote(ctx, page, cfg, strategy, DetailLow, pipeline.CostCheapPage)
	case StrategyPremium:
		cost := pipeline.CostPremiumPage
		if cfg.RequireHighQuality {
			cost = pipeline.CostPremiumMaxPage
		}
		return o.processRemote(ctx, page, cfg, strategy, DetailHigh, cost)
	default:
		return Result{}, fmt.Errorf("page %d: unhandled strategy %q", page.Number, strategy)
	}
}

// ProcessPage composes Filter and Process for callers that do not manage
// the filtering step themselves.
func (o *Orchestrator) ProcessPage(ctx context.Context, page vision.Page, cfg pipeline.Config, hashes *vision.HashSet) (Result, error) {
	if result, skip := o.Filter(page, hashes); skip {
		return result, nil
	}
	return o.Process(ctx, page, cfg)
}

func (o *Orchestrator) processFree(ctx context.Context, page vision.Page) (Result, error) {
	text, err := o.engine.Recognize(ctx, page)
	if err != nil {
		return Result{}, fmt.Errorf("page %d: %w: %w", page.Number, ErrRecognition, err)
	}

	return Result{
		PageNumber: page.Number,
		Text:       text,
		Strategy:   StrategyFree.String(),
		Cost:       pipeline.CostFreePage,
	}, nil
}

func (o *Orchestrator) processRemote(ctx context.Context, page vision.Page, cfg pipeline.Config, strategy Strategy, detail string, cost float64) (Result, error) {
	encoded, err := optimize.Compress(page.Pix, cfg.CompressionQuality)
	if err != nil {
		return Result{}, fmt.Errorf("page %d: %w: %w", page.Number, ErrEncoding, err)
	}

	text, err := o.extractor.Extract(ctx, encoded.Data, page.Number, detail)
	if err != nil {
		return Result{}, fmt.Errorf("page %d: %w: %w", page.Number, ErrExtraction, err)
	}

	return Result{
		PageNumber: page.Number,
		Text:       text,
		Strategy:   strategy.String(),
		Cost:       cost,
	}, nil
}
