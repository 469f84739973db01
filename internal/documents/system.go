package documents

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/csattler/tessera/pkg/database"
	"github.com/csattler/tessera/pkg/module"
	"github.com/csattler/tessera/pkg/pagination"
	"github.com/csattler/tessera/pkg/routes"
	"github.com/csattler/tessera/pkg/storage"
)

// System exposes the document endpoints and the repository operations other
// systems depend on.
type System interface {
	Module() *module.Module
	Get(ctx context.Context, id uuid.UUID) (Document, error)
	Download(ctx context.Context, id uuid.UUID) (Document, *storage.DownloadResult, error)
}

type system struct {
	repo    *Repository
	handler *handler
}

func NewSystem(db database.System, store storage.System, pageCfg pagination.Config, logger *slog.Logger) System {
	repo := NewRepository(db, store, logger)

	return &system{
		repo: repo,
		handler: &handler{
			repo:       repo,
			pagination: pageCfg,
			logger:     logger.With("system", "documents"),
		},
	}
}

func (s *system) Module() *module.Module {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/upload", Handler: s.handler.upload},
			{Method: http.MethodGet, Pattern: "/", Handler: s.handler.list},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: s.handler.get},
			{Method: http.MethodGet, Pattern: "/{id}/download", Handler: s.handler.download},
			{Method: http.MethodDelete, Pattern: "/{id}", Handler: s.handler.remove},
		},
	})

	return module.New("/documents", mux)
}

func (s *system) Get(ctx context.Context, id uuid.UUID) (Document, error) {
	return s.repo.Get(ctx, id)
}

func (s *system) Download(ctx context.Context, id uuid.UUID) (Document, *storage.DownloadResult, error) {
	return s.repo.Download(ctx, id)
}
