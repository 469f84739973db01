package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/csattler/tessera/pkg/database"
	"github.com/csattler/tessera/pkg/pagination"
	"github.com/csattler/tessera/pkg/query"
	"github.com/csattler/tessera/pkg/repository"
)

var (
	ErrNotFound  = errors.New("router decision not found")
	ErrDuplicate = errors.New("router decision already recorded")
)

// MapHTTPStatus translates telemetry errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("tessera", "router_decisions", "rd").
		Project("id", "id").
		Project("document_id", "document_id").
		Project("tier", "tier").
		Project("format", "format").
		Project("content_class", "content_class").
		Project("page_count", "page_count").
		Project("size_bytes", "size_bytes").
		Project("rationale", "rationale").
		Project("estimated_cost", "estimated_cost").
		Project("estimated_time_ms", "estimated_time_ms").
		Project("confidence", "confidence").
		Project("actual_cost", "actual_cost").
		Project("actual_time_ms", "actual_time_ms").
		Project("pages_processed", "pages_processed").
		Project("pages_skipped", "pages_skipped").
		Project("success", "success").
		Project("error", "error").
		Project("created_at", "created_at")
}

func scanDecision(s repository.Scanner) (RouterDecision, error) {
	var d RouterDecision
	var estimatedMs, actualMs int64

	err := s.Scan(
		&d.ID,
		&d.DocumentID,
		&d.Tier,
		&d.Format,
		&d.ContentClass,
		&d.PageCount,
		&d.SizeBytes,
		&d.Rationale,
		&d.EstimatedCost,
		&estimatedMs,
		&d.Confidence,
		&d.ActualCost,
		&actualMs,
		&d.PagesProcessed,
		&d.PagesSkipped,
		&d.Success,
		&d.Error,
		&d.CreatedAt,
	)

	d.EstimatedTime = time.Duration(estimatedMs) * time.Millisecond
	d.ActualTime = time.Duration(actualMs) * time.Millisecond
	return d, err
}

// Repository persists router decisions.
type Repository struct {
	db     database.System
	logger *slog.Logger
}

func NewRepository(db database.System, logger *slog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger.With("system", "telemetry"),
	}
}

// Record inserts a decision. Telemetry is best-effort: callers treat a
// returned error as advisory and never fail a run over it.
func (r *Repository) Record(ctx context.Context, d RouterDecision) error {
	const statement = `
		INSERT INTO tessera.router_decisions
			(id, document_id, tier, format, content_class, page_count, size_bytes,
			 rationale, estimated_cost, estimated_time_ms, confidence,
			 actual_cost, actual_time_ms, pages_processed, pages_skipped,
			 success, error, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	err := repository.ExecExpectOne(ctx, r.db.Connection(), statement,
		d.ID,
		d.DocumentID,
		d.Tier,
		d.Format,
		d.ContentClass,
		d.PageCount,
		d.SizeBytes,
		d.Rationale,
		d.EstimatedCost,
		d.EstimatedTime.Milliseconds(),
		d.Confidence,
		d.ActualCost,
		d.ActualTime.Milliseconds(),
		d.PagesProcessed,
		d.PagesSkipped,
		d.Success,
		d.Error,
		d.CreatedAt,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Debug("decision recorded",
		"document", d.DocumentID,
		"tier", d.Tier,
		"confidence", d.Confidence,
	)

	return nil
}

// List returns a page of decisions, optionally scoped to one document.
func (r *Repository) List(ctx context.Context, req pagination.PageRequest, documentID *uuid.UUID) (pagination.PageResult[RouterDecision], error) {
	var empty pagination.PageResult[RouterDecision]

	builder := query.NewBuilder(projection(), query.SortField{Field: "created_at", Descending: true}).
		OrderByFields(req.Sort)

	if documentID != nil {
		builder.WhereEquals("document_id", *documentID)
	}

	countStatement, countArgs := builder.BuildCount()
	total, err := repository.QueryOne(ctx, r.db.Connection(), countStatement, countArgs,
		func(s repository.Scanner) (int, error) {
			var n int
			return n, s.Scan(&n)
		},
	)
	if err != nil {
		return empty, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	statement, args := builder.BuildPage(req.Page, req.PageSize)
	decisions, err := repository.QueryMany(ctx, r.db.Connection(), statement, args, scanDecision)
	if err != nil {
		return empty, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return pagination.NewPageResult(decisions, total, req.Page, req.PageSize), nil
}
