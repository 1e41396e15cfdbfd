// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/Alp4ka/pagesearch"
	"github.com/gin-gonic/gin"
)

// ErrInvalidParams marks request parameters that could not be decoded.
var ErrInvalidParams = errors.New("invalid request parameters")

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Step    string `json:"step,omitempty"`
}

// MapError converts a search error into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	var queryErr *pagesearch.QueryExecutionError

	switch {
	case errors.Is(err, ErrInvalidParams):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_params", Message: err.Error()}
	case errors.Is(err, pagesearch.ErrInvalidPageRequest):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_page_request", Message: err.Error()}
	case errors.Is(err, pagesearch.ErrInvalidSort):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_sort", Message: err.Error()}
	case errors.As(err, &queryErr):
		// The storage cause stays in the logs, only the failed step is exposed.
		return http.StatusInternalServerError, ErrorPayload{Error: "query_failed", Step: string(queryErr.Step)}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
