package documents

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrDuplicate     = errors.New("document already exists")
	ErrEmptyUpload   = errors.New("uploaded file is empty")
	ErrUploadTooBig  = errors.New("uploaded file exceeds the size limit")
	ErrMissingFile   = errors.New("multipart form is missing a file field")
	ErrInvalidTier   = errors.New("invalid user tier")
	ErrStorageFailed = errors.New("document storage failed")
)

// MapHTTPStatus translates document errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyUpload),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, ErrInvalidTier):
		return http.StatusBadRequest
	case errors.Is(err, ErrUploadTooBig):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
