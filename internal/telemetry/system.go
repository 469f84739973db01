package telemetry

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/csattler/tessera/pkg/database"
	"github.com/csattler/tessera/pkg/handlers"
	"github.com/csattler/tessera/pkg/module"
	"github.com/csattler/tessera/pkg/pagination"
	"github.com/csattler/tessera/pkg/routes"
)

// System records router decisions and serves them for inspection.
type System interface {
	Module() *module.Module
	Record(ctx context.Context, d RouterDecision) error
}

type system struct {
	repo       *Repository
	pagination pagination.Config
	logger     *slog.Logger
}

func NewSystem(db database.System, pageCfg pagination.Config, logger *slog.Logger) System {
	return &system{
		repo:       NewRepository(db, logger),
		pagination: pageCfg,
		logger:     logger.With("system", "telemetry"),
	}
}

func (s *system) Module() *module.Module {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/", Handler: s.list},
		},
	})

	return module.New("/decisions", mux)
}

func (s *system) Record(ctx context.Context, d RouterDecision) error {
	return s.repo.Record(ctx, d)
}

func (s *system) list(w http.ResponseWriter, r *http.Request) {
	req := pagination.PageRequestFromQuery(r.URL.Query(), s.pagination)

	var documentID *uuid.UUID
	if raw := r.URL.Query().Get("document"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondError(w, s.logger, http.StatusBadRequest, err)
			return
		}
		documentID = &id
	}

	page, err := s.repo.List(r.Context(), req, documentID)
	if err != nil {
		handlers.RespondError(w, s.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, page)
}
