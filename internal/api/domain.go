package api

import (
	"github.com/csattler/tessera/internal/documents"
	"github.com/csattler/tessera/internal/extraction"
	"github.com/csattler/tessera/internal/ocr/local"
	"github.com/csattler/tessera/internal/ocr/remote"
	"github.com/csattler/tessera/internal/telemetry"
)

// Domain holds the application systems built on top of the runtime.
type Domain struct {
	Documents  documents.System
	Telemetry  telemetry.System
	Extraction extraction.System
}

// NewDomain wires the domain systems: document management, decision
// telemetry, and the extraction coordinator with its OCR backends.
func NewDomain(r *Runtime) *Domain {
	docs := documents.NewSystem(r.Database, r.Storage, r.Config.Pagination, r.Logger)
	tel := telemetry.NewSystem(r.Database, r.Config.Pagination, r.Logger)

	coordinator := extraction.NewCoordinator(
		docs,
		tel,
		local.New(r.Config.OCR.Languages...),
		remote.NewClient(&r.Config.OCR.Remote, r.Logger),
		r.Logger,
	)

	return &Domain{
		Documents:  docs,
		Telemetry:  tel,
		Extraction: extraction.NewSystem(coordinator, r.Logger),
	}
}
