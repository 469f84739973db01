package api

import (
	"net/http"

	"github.com/csattler/tessera/pkg/handlers"
	"github.com/csattler/tessera/pkg/middleware"
	"github.com/csattler/tessera/pkg/module"
)

// router assembles the module router: domain modules mounted by prefix,
// health endpoints on the native mux, shared middleware on every module.
func (a *API) router() *module.Router {
	router := module.NewRouter()

	for _, m := range []*module.Module{
		a.domain.Documents.Module(),
		a.domain.Telemetry.Module(),
		a.domain.Extraction.Module(),
	} {
		m.Use(middleware.Logger(a.runtime.Logger))
		if a.runtime.Config.CORS.Enabled {
			m.Use(middleware.CORS(&a.runtime.Config.CORS))
		}
		router.Mount(m)
	}

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !a.runtime.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	return router
}
