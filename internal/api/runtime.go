package api

import (
	"log/slog"

	"github.com/csattler/tessera/internal/config"
	"github.com/csattler/tessera/pkg/database"
	"github.com/csattler/tessera/pkg/lifecycle"
	"github.com/csattler/tessera/pkg/storage"
)

// Runtime holds the infrastructure systems every domain depends on.
type Runtime struct {
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle *lifecycle.Coordinator
	Database  database.System
	Storage   storage.System
}

// NewRuntime builds the infrastructure systems from configuration. Systems
// are constructed here and started by Start once lifecycle hooks are wired.
func NewRuntime(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		Lifecycle: lifecycle.New(),
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers infrastructure startup and shutdown hooks on the
// lifecycle coordinator.
func (r *Runtime) Start() error {
	if err := r.Database.Start(r.Lifecycle); err != nil {
		return err
	}

	return r.Storage.Start(r.Lifecycle)
}
