package config

import (
	"os"
	"strings"

	"github.com/csattler/tessera/internal/ocr/remote"
)

// OCRConfig groups the local engine languages and the remote endpoint
// settings.
type OCRConfig struct {
	Languages []string      `toml:"languages"`
	Remote    remote.Config `toml:"remote"`
}

// OCREnv maps OCR config fields to environment variable names.
type OCREnv struct {
	Languages string
	Remote    remote.Env
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *OCRConfig) Finalize(env *OCREnv) error {
	if len(c.Languages) == 0 {
		c.Languages = []string{"eng"}
	}

	var remoteEnv *remote.Env
	if env != nil {
		if value := os.Getenv(env.Languages); value != "" {
			c.Languages = splitList(value)
		}
		remoteEnv = &env.Remote
	}

	return c.Remote.Finalize(remoteEnv)
}

// Merge overwrites non-zero fields from overlay.
func (c *OCRConfig) Merge(overlay *OCRConfig) {
	if overlay == nil {
		return
	}

	if len(overlay.Languages) > 0 {
		c.Languages = overlay.Languages
	}

	c.Remote.Merge(&overlay.Remote)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
