// Package documents manages uploaded document records: blob storage for the
// raw bytes and Postgres for the metadata the pipeline profiles against.
package documents

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/csattler/tessera/internal/profile"
)

// Document is a stored upload. StorageKey locates the raw bytes in blob
// storage; the remaining fields feed the document profiler.
type Document struct {
	ID          uuid.UUID        `json:"id"`
	Filename    string           `json:"filename"`
	ContentType string           `json:"content_type"`
	SizeBytes   int64            `json:"size_bytes"`
	PageCount   int              `json:"page_count"`
	Format      profile.Format   `json:"format"`
	UserTier    profile.UserTier `json:"user_tier"`
	StorageKey  string           `json:"storage_key"`
	CreatedAt   time.Time        `json:"created_at"`
}

// CreateCommand carries a validated upload into the repository.
type CreateCommand struct {
	Filename    string
	ContentType string
	UserTier    profile.UserTier
	Data        []byte
}

func (c *CreateCommand) validate() error {
	if len(c.Data) == 0 {
		return ErrEmptyUpload
	}

	if c.Filename == "" {
		c.Filename = "upload"
	}

	switch c.UserTier {
	case "":
		c.UserTier = profile.UserStandard
	case profile.UserStandard, profile.UserPremium:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTier, c.UserTier)
	}

	return nil
}

func storageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s", id, filename)
}
