// Package config assembles the application configuration: TOML base file,
// environment variable overlay, then per-section validation.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/csattler/tessera/internal/ocr/remote"
	"github.com/csattler/tessera/pkg/database"
	"github.com/csattler/tessera/pkg/middleware"
	"github.com/csattler/tessera/pkg/pagination"
	"github.com/csattler/tessera/pkg/storage"
)

// Config is the full application configuration tree.
type Config struct {
	Server     ServerConfig          `toml:"server"`
	Database   database.Config       `toml:"database"`
	Storage    storage.Config        `toml:"storage"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OCR        OCRConfig             `toml:"ocr"`
}

// Load reads the optional TOML file at path, overlays it onto defaults,
// applies TESSERA_* environment variables, and validates every section.
// An empty path or missing file falls back to defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			var overlay Config
			if err := toml.Unmarshal(data, &overlay); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
			cfg.merge(&overlay)
		}
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OCR.Merge(&overlay.OCR)
}

func (c *Config) finalize() error {
	if err := c.Server.Finalize(&ServerEnv{
		Port:            "TESSERA_SERVER_PORT",
		ShutdownTimeout: "TESSERA_SERVER_SHUTDOWN_TIMEOUT",
	}); err != nil {
		return err
	}

	if err := c.Database.Finalize(&database.Env{
		Host:            "TESSERA_DB_HOST",
		Port:            "TESSERA_DB_PORT",
		Name:            "TESSERA_DB_NAME",
		User:            "TESSERA_DB_USER",
		Password:        "TESSERA_DB_PASSWORD",
		SSLMode:         "TESSERA_DB_SSL_MODE",
		MaxOpenConns:    "TESSERA_DB_MAX_OPEN_CONNS",
		MaxIdleConns:    "TESSERA_DB_MAX_IDLE_CONNS",
		ConnMaxLifetime: "TESSERA_DB_CONN_MAX_LIFETIME",
		ConnTimeout:     "TESSERA_DB_CONN_TIMEOUT",
	}); err != nil {
		return err
	}

	if err := c.Storage.Finalize(&storage.Env{
		ContainerName:    "TESSERA_STORAGE_CONTAINER",
		ConnectionString: "TESSERA_STORAGE_CONNECTION_STRING",
	}); err != nil {
		return err
	}

	if err := c.CORS.Finalize(&middleware.CORSEnv{
		Enabled:          "TESSERA_CORS_ENABLED",
		Origins:          "TESSERA_CORS_ORIGINS",
		AllowedMethods:   "TESSERA_CORS_ALLOWED_METHODS",
		AllowedHeaders:   "TESSERA_CORS_ALLOWED_HEADERS",
		AllowCredentials: "TESSERA_CORS_ALLOW_CREDENTIALS",
		MaxAge:           "TESSERA_CORS_MAX_AGE",
	}); err != nil {
		return err
	}

	if err := c.Pagination.Finalize(&pagination.ConfigEnv{
		DefaultPageSize: "TESSERA_PAGINATION_DEFAULT_PAGE_SIZE",
		MaxPageSize:     "TESSERA_PAGINATION_MAX_PAGE_SIZE",
	}); err != nil {
		return err
	}

	return c.OCR.Finalize(&OCREnv{
		Languages: "TESSERA_OCR_LANGUAGES",
		Remote: remote.Env{
			BaseURL:     "TESSERA_OCR_REMOTE_BASE_URL",
			Model:       "TESSERA_OCR_REMOTE_MODEL",
			Token:       "TESSERA_OCR_REMOTE_TOKEN",
			Timeout:     "TESSERA_OCR_REMOTE_TIMEOUT",
			MaxAttempts: "TESSERA_OCR_REMOTE_MAX_ATTEMPTS",
		},
	})
}
