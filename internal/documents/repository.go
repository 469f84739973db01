package documents

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/csattler/tessera/internal/profile"
	"github.com/csattler/tessera/pkg/database"
	"github.com/csattler/tessera/pkg/pagination"
	"github.com/csattler/tessera/pkg/query"
	"github.com/csattler/tessera/pkg/repository"
	"github.com/csattler/tessera/pkg/storage"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("tessera", "documents", "d").
		Project("id", "id").
		Project("filename", "filename").
		Project("content_type", "content_type").
		Project("size_bytes", "size_bytes").
		Project("page_count", "page_count").
		Project("format", "format").
		Project("user_tier", "user_tier").
		Project("storage_key", "storage_key").
		Project("created_at", "created_at")
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.Format,
		&d.UserTier,
		&d.StorageKey,
		&d.CreatedAt,
	)
	return d, err
}

// Repository persists document metadata in Postgres and raw bytes in blob
// storage.
type Repository struct {
	db       database.System
	store    storage.System
	profiler *profile.Profiler
	logger   *slog.Logger
}

func NewRepository(db database.System, store storage.System, logger *slog.Logger) *Repository {
	return &Repository{
		db:       db,
		store:    store,
		profiler: profile.NewProfiler(logger),
		logger:   logger.With("system", "documents"),
	}
}

// Create uploads the raw bytes, then inserts the metadata row. A failed
// insert deletes the uploaded blob so storage never holds orphans.
func (r *Repository) Create(ctx context.Context, cmd CreateCommand) (Document, error) {
	if err := cmd.validate(); err != nil {
		return Document{}, err
	}

	profiled := r.profiler.Profile(profile.File{
		Data:        cmd.Data,
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
	}, cmd.UserTier)

	doc := Document{
		ID:          uuid.New(),
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		SizeBytes:   int64(len(cmd.Data)),
		PageCount:   profiled.PageCount,
		Format:      profiled.Format,
		UserTier:    cmd.UserTier,
		CreatedAt:   time.Now().UTC(),
	}
	doc.StorageKey = storageKey(doc.ID, doc.Filename)

	if err := r.store.Upload(ctx, doc.StorageKey, bytes.NewReader(cmd.Data), doc.ContentType); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	if err := r.insert(ctx, doc); err != nil {
		if cleanup := r.store.Delete(ctx, doc.StorageKey); cleanup != nil {
			r.logger.Error("orphaned blob after failed insert",
				"key", doc.StorageKey,
				"error", cleanup,
			)
		}
		return Document{}, err
	}

	r.logger.Info("document created",
		"id", doc.ID,
		"filename", doc.Filename,
		"size", doc.SizeBytes,
		"pages", doc.PageCount,
	)

	return doc, nil
}

func (r *Repository) insert(ctx context.Context, doc Document) error {
	const statement = `
		INSERT INTO tessera.documents
			(id, filename, content_type, size_bytes, page_count, format, user_tier, storage_key, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	err := repository.ExecExpectOne(ctx, r.db.Connection(), statement,
		doc.ID,
		doc.Filename,
		doc.ContentType,
		doc.SizeBytes,
		doc.PageCount,
		doc.Format,
		doc.UserTier,
		doc.StorageKey,
		doc.CreatedAt,
	)

	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

// Get returns document metadata by id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Document, error) {
	statement, args := query.NewBuilder(projection()).BuildSingle("id", id)

	doc, err := repository.QueryOne(ctx, r.db.Connection(), statement, args, scanDocument)
	if err != nil {
		return Document{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return doc, nil
}

// List returns a page of documents, optionally filtered by filename search.
func (r *Repository) List(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[Document], error) {
	var empty pagination.PageResult[Document]

	builder := query.NewBuilder(projection(), query.SortField{Field: "created_at", Descending: true}).
		WhereSearch(req.Search, "filename").
		OrderByFields(req.Sort)

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
	docs, err := repository.QueryMany(ctx, r.db.Connection(), statement, args, scanDocument)
	if err != nil {
		return empty, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return pagination.NewPageResult(docs, total, req.Page, req.PageSize), nil
}

// Download returns the metadata and a reader over the stored bytes.
func (r *Repository) Download(ctx context.Context, id uuid.UUID) (Document, *storage.DownloadResult, error) {
	doc, err := r.Get(ctx, id)
	if err != nil {
		return Document{}, nil, err
	}

	result, err := r.store.Download(ctx, doc.StorageKey)
	if err != nil {
		return Document{}, nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	return doc, result, nil
}

// Delete removes the metadata row, then the blob. A missing blob is not an
// error; the row is the source of truth.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	const statement = `DELETE FROM tessera.documents WHERE id = $1`
	if err := repository.ExecExpectOne(ctx, r.db.Connection(), statement, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.store.Delete(ctx, doc.StorageKey); err != nil {
		r.logger.Warn("blob delete failed after row delete",
			"id", id,
			"key", doc.StorageKey,
			"error", err,
		)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}
