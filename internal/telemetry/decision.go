// Package telemetry records routing decisions so tier selection can be
// audited and tuned after the fact.
package telemetry

import (
	"time"

	"github.com/google/uuid"

	"github.com/csattler/tessera/internal/pipeline"
	"github.com/csattler/tessera/internal/profile"
)

// RouterDecision is one tier-selection outcome, captured alongside the
// profile snapshot that produced it.
type RouterDecision struct {
	ID            uuid.UUID            `json:"id"`
	DocumentID    uuid.UUID            `json:"document_id"`
	Tier          pipeline.Tier        `json:"tier"`
	Format        profile.Format       `json:"format"`
	ContentClass  profile.ContentClass `json:"content_class"`
	PageCount     int                  `json:"page_count"`
	SizeBytes     int64                `json:"size_bytes"`
	Rationale     string               `json:"rationale"`
	EstimatedCost float64              `json:"estimated_cost"`
	EstimatedTime time.Duration        `json:"estimated_time"`
	Confidence    float64              `json:"confidence"`

	// Actuals are captured once the run finishes; they are what makes the
	// audit log useful for recalibrating the estimate constants.
	ActualCost     float64       `json:"actual_cost"`
	ActualTime     time.Duration `json:"actual_time"`
	PagesProcessed int           `json:"pages_processed"`
	PagesSkipped   int           `json:"pages_skipped"`
	Success        bool          `json:"success"`
	Error          string        `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Outcome is what a finished run actually cost.
type Outcome struct {
	Cost           float64
	Elapsed        time.Duration
	PagesProcessed int
	PagesSkipped   int
	Success        bool
	Error          string
}

// WithOutcome returns a copy of the decision annotated with run actuals.
func (d RouterDecision) WithOutcome(o Outcome) RouterDecision {
	d.ActualCost = o.Cost
	d.ActualTime = o.Elapsed
	d.PagesProcessed = o.PagesProcessed
	d.PagesSkipped = o.PagesSkipped
	d.Success = o.Success
	d.Error = o.Error
	return d
}

// NewDecision snapshots a pipeline configuration and the profile behind it.
func NewDecision(documentID uuid.UUID, p profile.DocumentProfile, cfg pipeline.Config) RouterDecision {
	return RouterDecision{
		ID:            uuid.New(),
		DocumentID:    documentID,
		Tier:          cfg.Tier,
		Format:        p.Format,
		ContentClass:  p.ContentClass,
		PageCount:     p.PageCount,
		SizeBytes:     p.SizeBytes,
		Rationale:     cfg.Rationale,
		EstimatedCost: cfg.EstimatedCost,
		EstimatedTime: cfg.EstimatedTime,
		Confidence:    cfg.Confidence,
		CreatedAt:     time.Now().UTC(),
	}
}
