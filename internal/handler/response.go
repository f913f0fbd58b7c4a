package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
	"dispatch/internal/store"
)

var (
	errInvalidBody     = errors.New("invalid request body")
	errInvalidDateTime = errors.New("date-time must be RFC 3339")
	errMissingIndex    = errors.New("from and to are required")
	errMissingOrder    = errors.New("order is required")
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	_ = c.Error(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps store/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, errInvalidBody),
		errors.Is(err, errInvalidDateTime),
		errors.Is(err, errMissingIndex),
		errors.Is(err, errMissingOrder),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidDriverID),
		errors.Is(err, store.ErrInvalidCargoID),
		errors.Is(err, store.ErrInvalidIndex):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrReorderInProgress):
		return http.StatusConflict

	// The document store is a remote dependency.
	case repository.IsStorageError(err):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// validateDateTime accepts an empty value or an RFC 3339 timestamp.
func validateDateTime(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return errInvalidDateTime
	}
	return nil
}
