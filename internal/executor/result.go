package executor

import (
	"time"

	"github.com/csattler/tessera/internal/ocr"
	"github.com/csattler/tessera/internal/pipeline"
)

// RunResult is the assembled outcome of a pipeline run. On failure the
// page list is the clean prefix completed before the first failed page and
// Success is false; text and cost reflect only that prefix.
type RunResult struct {
	Tier           pipeline.Tier `json:"tier"`
	Text           string        `json:"text"`
	Pages          []ocr.Result  `json:"pages"`
	TotalCost      float64       `json:"total_cost"`
	PagesProcessed int           `json:"pages_processed"`
	PagesSkipped   int           `json:"pages_skipped"`
	Elapsed        time.Duration `json:"elapsed"`
	Success        bool          `json:"success"`
	FailedPage     int           `json:"failed_page,omitempty"`
	Error          string        `json:"error,omitempty"`
}
