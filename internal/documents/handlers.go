package documents

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/csattler/tessera/internal/profile"
	"github.com/csattler/tessera/pkg/handlers"
	"github.com/csattler/tessera/pkg/pagination"
)

// maxUploadBytes bounds multipart parsing; anything larger is rejected
// before it reaches storage.
const maxUploadBytes = 256 << 20

type handler struct {
	repo       *Repository
	pagination pagination.Config
	logger     *slog.Logger
}

func (h *handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.respondError(w, fmt.Errorf("%w: limit %d bytes", ErrUploadTooBig, tooBig.Limit))
			return
		}
		h.respondError(w, fmt.Errorf("%w: %w", ErrMissingFile, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, fmt.Errorf("%w: %w", ErrMissingFile, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, fmt.Errorf("read upload: %w", err))
		return
	}

	doc, err := h.repo.Create(r.Context(), CreateCommand{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		UserTier:    profile.UserTier(r.FormValue("tier")),
		Data:        data,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, doc)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	doc, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	req := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	page, err := h.repo.List(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, page)
}

func (h *handler) download(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	doc, result, err := h.repo.Download(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", result.ContentLength))
	}

	if _, err := io.Copy(w, result.Body); err != nil {
		h.logger.Warn("download interrupted", "id", id, "error", err)
	}
}

func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) respondError(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", ErrNotFound)
	}
	return id, nil
}
