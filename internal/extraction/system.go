package extraction

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/csattler/tessera/pkg/handlers"
	"github.com/csattler/tessera/pkg/module"
	"github.com/csattler/tessera/pkg/routes"
)

// System exposes the extraction endpoint.
type System interface {
	Module() *module.Module
}

type system struct {
	coordinator *Coordinator
	logger      *slog.Logger
}

func NewSystem(coordinator *Coordinator, logger *slog.Logger) System {
	return &system{
		coordinator: coordinator,
		logger:      logger.With("system", "extraction"),
	}
}

func (s *system) Module() *module.Module {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/{id}", Handler: s.extract},
		},
	})

	return module.New("/extractions", mux)
}

// extract runs the pipeline synchronously. A failed run still responds 200
// with success=false and the completed page prefix; only errors before the
// run produce an error status.
func (s *system) extract(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, s.logger, http.StatusBadRequest, err)
		return
	}

	result, err := s.coordinator.Extract(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, s.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
