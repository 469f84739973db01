// Package extraction coordinates a full document run: profile, tier
// selection, pipeline configuration, rendering, and batched page
// processing, with the routing decision recorded for audit.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/csattler/tessera/internal/documents"
	"github.com/csattler/tessera/internal/executor"
	"github.com/csattler/tessera/internal/ocr"
	"github.com/csattler/tessera/internal/pipeline"
	"github.com/csattler/tessera/internal/profile"
	"github.com/csattler/tessera/internal/render"
	"github.com/csattler/tessera/internal/telemetry"
)

var (
	ErrDownloadFailed = errors.New("document download failed")
	ErrRenderFailed   = errors.New("document render failed")
)

// MapHTTPStatus translates extraction errors into HTTP status codes.
// Document errors pass through to the documents mapping.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrRenderFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrDownloadFailed):
		return http.StatusBadGateway
	default:
		return documents.MapHTTPStatus(err)
	}
}

// Result is the full outcome of one extraction run.
type Result struct {
	DocumentID uuid.UUID               `json:"document_id"`
	Profile    profile.DocumentProfile `json:"profile"`
	Config     pipeline.Config         `json:"config"`
	Run        executor.RunResult      `json:"run"`
	Note       string                  `json:"note,omitempty"`
}

// Coordinator wires the profiling, routing, rendering, and execution stages
// behind a single Extract operation.
type Coordinator struct {
	documents documents.System
	telemetry telemetry.System
	profiler  *profile.Profiler
	executor  *executor.Executor
	logger    *slog.Logger
}

func NewCoordinator(
	docs documents.System,
	tel telemetry.System,
	engine ocr.Engine,
	extractor ocr.Extractor,
	logger *slog.Logger,
) *Coordinator {
	orchestrator := ocr.NewOrchestrator(engine, extractor, logger)

	return &Coordinator{
		documents: docs,
		telemetry: tel,
		profiler:  profile.NewProfiler(logger),
		executor:  executor.New(orchestrator, logger),
		logger:    logger.With("system", "extraction"),
	}
}

// Extract runs the pipeline against a stored document. The routing decision
// is recorded best-effort; a telemetry failure never fails the run.
func (c *Coordinator) Extract(ctx context.Context, id uuid.UUID) (Result, error) {
	doc, download, err := c.documents.Download(ctx, id)
	if err != nil {
		if errors.Is(err, documents.ErrStorageFailed) {
			return Result{}, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
		}
		return Result{}, err
	}
	defer download.Body.Close()

	data, err := io.ReadAll(download.Body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	profiled := c.profiler.Profile(profile.File{
		Data:        data,
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
	}, doc.UserTier)

	tier := pipeline.SelectTier(profiled)
	cfg := pipeline.BuildConfig(profiled, tier)

	c.logger.Info("document routed",
		"document", id,
		"tier", tier,
		"format", profiled.Format,
		"pages", profiled.PageCount,
		"confidence", cfg.Confidence,
	)

	decision := telemetry.NewDecision(id, profiled, cfg)

	result := Result{
		DocumentID: id,
		Profile:    profiled,
		Config:     cfg,
	}

	if profiled.Format == profile.FormatAudio {
		result.Note = "audio documents carry no pages; transcription is handled elsewhere"
		result.Run = executor.RunResult{Tier: tier, Pages: []ocr.Result{}, Success: true}
		c.record(ctx, decision.WithOutcome(telemetry.Outcome{Success: true}))
		return result, nil
	}

	pages, err := render.Pages(data, profiled.Format)
	if err != nil {
		c.record(ctx, decision.WithOutcome(telemetry.Outcome{Error: err.Error()}))
		return Result{}, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	result.Run = c.executor.Run(ctx, pages, cfg)
	c.record(ctx, decision.WithOutcome(telemetry.Outcome{
		Cost:           result.Run.TotalCost,
		Elapsed:        result.Run.Elapsed,
		PagesProcessed: result.Run.PagesProcessed,
		PagesSkipped:   result.Run.PagesSkipped,
		Success:        result.Run.Success,
		Error:          result.Run.Error,
	}))

	return result, nil
}

// record persists a decision best-effort; telemetry never fails a run.
func (c *Coordinator) record(ctx context.Context, d telemetry.RouterDecision) {
	if err := c.telemetry.Record(ctx, d); err != nil {
		c.logger.Warn("decision record failed", "document", d.DocumentID, "error", err)
	}
}
