// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate signals a uniqueness constraint rejection (duplicate code).
	ErrDuplicate = errors.New("duplicate entry")
	// ErrMissingReference signals a foreign-key rejection: the write named a
	// company or industry that does not exist. Surfaced as 404, not 500.
	ErrMissingReference = errors.New("referenced resource does not exist")
	ErrValidation       = errors.New("validation failed")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrMissingReference):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
