// Package executor drives a full pipeline run: sequential blank/duplicate
// filtering, batched concurrent page processing, and result assembly.
package executor

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/csattler/tessera/internal/ocr"
	"github.com/csattler/tessera/internal/pipeline"
	"github.com/csattler/tessera/internal/vision"
)

// Executor runs rendered pages through the orchestrator under an active
// pipeline configuration.
type Executor struct {
	orchestrator *ocr.Orchestrator
	logger       *slog.Logger
}

func New(orchestrator *ocr.Orchestrator, logger *slog.Logger) *Executor {
	return &Executor{
		orchestrator: orchestrator,
		logger:       logger.With("system", "executor"),
	}
}

// Run processes pages in waves of PagesPerBatch times ParallelBatches, all
// pages within a wave concurrent. Filtering runs first on a single goroutine
// so the run's fingerprint set needs no locking. A page failure aborts
// remaining work; the result keeps every page completed before the failure
// plus a zero-cost entry for the failed page itself.
func (e *Executor) Run(ctx context.Context, pages []vision.Page, cfg pipeline.Config) RunResult {
	started := time.Now()

	kept, skipped := e.filter(pages)

	results, failure := e.process(ctx, kept, cfg)

	run := assemble(cfg, results, skipped, failure)
	run.Elapsed = time.Since(started)

	e.logRun(run, len(pages))
	return run
}

// pageFailure pins the first failed page by its position in the kept slice
// so partial results truncate deterministically.
type pageFailure struct {
	index int
	page  int
	err   error
}

func (e *Executor) filter(pages []vision.Page) ([]vision.Page, []ocr.Result) {
	hashes := vision.NewHashSet()

	kept := make([]vision.Page, 0, len(pages))
	skipped := make([]ocr.Result, 0)

	for _, page := range pages {
		if result, skip := e.orchestrator.Filter(page, hashes); skip {
			skipped = append(skipped, result)
			continue
		}
		kept = append(kept, page)
	}

	return kept, skipped
}

func (e *Executor) process(ctx context.Context, kept []vision.Page, cfg pipeline.Config) ([]ocr.Result, *pageFailure) {
	results := make([]ocr.Result, len(kept))
	failures := make([]error, len(kept))

	waveSize := cfg.PagesPerBatch * cfg.ParallelBatches

	for start := 0; start < len(kept); start += waveSize {
		end := min(start+waveSize, len(kept))

		group, gctx := errgroup.WithContext(ctx)
		group.SetLimit(waveSize)

		for i := start; i < end; i++ {
			group.Go(func() error {
				if err := gctx.Err(); err != nil {
					failures[i] = err
					return err
				}

				result, err := e.orchestrator.Process(gctx, kept[i], cfg)
				if err != nil {
					failures[i] = err
					return err
				}

				results[i] = result
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			failure := pinFailure(kept, failures, err)
			return completedPrefix(results, failure), failure
		}
	}

	return results, nil
}

// pinFailure locates the page that actually failed. A sibling page cut short
// by group cancellation records context.Canceled at its own index, so the
// scan skips cancellations first and falls back to them only when no real
// backend error was recorded.
func pinFailure(kept []vision.Page, failures []error, waitErr error) *pageFailure {
	for i, err := range failures {
		if err != nil && !errors.Is(err, context.Canceled) {
			return &pageFailure{index: i, page: kept[i].Number, err: err}
		}
	}
	for i, err := range failures {
		if err != nil {
			return &pageFailure{index: i, page: kept[i].Number, err: err}
		}
	}
	return &pageFailure{index: len(kept), err: waitErr}
}

// completedPrefix keeps every result finished before the failed page and
// appends a zero-cost entry for the failed page itself. Slots left empty by
// cancelled siblings below the failure index are dropped.
func completedPrefix(results []ocr.Result, failure *pageFailure) []ocr.Result {
	end := min(failure.index, len(results))

	prefix := make([]ocr.Result, 0, end+1)
	for _, result := range results[:end] {
		if result.PageNumber != 0 {
			prefix = append(prefix, result)
		}
	}

	if failure.page > 0 {
		prefix = append(prefix, ocr.Result{PageNumber: failure.page})
	}

	return prefix
}

func assemble(cfg pipeline.Config, processed, skipped []ocr.Result, failure *pageFailure) RunResult {
	pages := make([]ocr.Result, 0, len(processed)+len(skipped))
	pages = append(pages, processed...)

	// Partial output is a clean prefix: skipped pages past the failed page
	// are dropped along with the unprocessed ones.
	included := 0
	for _, skip := range skipped {
		if failure != nil && failure.page > 0 && skip.PageNumber > failure.page {
			continue
		}
		pages = append(pages, skip)
		included++
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})

	var cost float64
	var texts []string
	for _, page := range pages {
		cost += page.Cost
		if page.Text != "" {
			texts = append(texts, page.Text)
		}
	}

	// The failed page contributes an entry but not a success.
	successful := len(processed)
	if failure != nil && failure.page > 0 {
		successful--
	}

	run := RunResult{
		Tier:           cfg.Tier,
		Text:           strings.Join(texts, "\n\n"),
		Pages:          pages,
		TotalCost:      cost,
		PagesProcessed: successful,
		PagesSkipped:   included,
		Success:        failure == nil,
	}

	if failure != nil {
		run.FailedPage = failure.page
		run.Error = failure.err.Error()
	}

	return run
}

func (e *Executor) logRun(run RunResult, pageCount int) {
	attrs := []any{
		"tier", run.Tier,
		"pages", pageCount,
		"processed", run.PagesProcessed,
		"skipped", run.PagesSkipped,
		"cost", run.TotalCost,
		"elapsed", run.Elapsed,
		"success", run.Success,
	}

	if !run.Success {
		attrs = append(attrs, "failedPage", run.FailedPage, "error", run.Error)
		e.logger.Error("run failed", attrs...)
		return
	}

	if run.Tier == pipeline.TierPremium {
		attrs = append(attrs, "strategies", strategyBreakdown(run.Pages))
	}

	e.logger.Info("run complete", attrs...)
}

// strategyBreakdown counts processed pages per strategy for premium-tier
// run logs.
func strategyBreakdown(pages []ocr.Result) map[string]int {
	counts := make(map[string]int)
	for _, page := range pages {
		if page.Strategy != "" {
			counts[page.Strategy]++
		}
	}
	return counts
}
