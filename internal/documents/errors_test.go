package documents_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/csattler/tessera/internal/documents"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", documents.ErrNotFound, http.StatusNotFound},
		{"duplicate", documents.ErrDuplicate, http.StatusConflict},
		{"empty upload", documents.ErrEmptyUpload, http.StatusBadRequest},
		{"missing file", documents.ErrMissingFile, http.StatusBadRequest},
		{"invalid tier", documents.ErrInvalidTier, http.StatusBadRequest},
		{"upload too big", documents.ErrUploadTooBig, http.StatusRequestEntityTooLarge},
		{"storage failure", documents.ErrStorageFailed, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documents.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatusWrapped(t *testing.T) {
	err := fmt.Errorf("upload report.pdf: %w", documents.ErrInvalidTier)
	if got := documents.MapHTTPStatus(err); got != http.StatusBadRequest {
		t.Errorf("got %d, want 400", got)
	}
}
