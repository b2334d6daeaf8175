package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gmdcok-crypto/meal-manage/internal/httputil"
	"github.com/gmdcok-crypto/meal-manage/internal/metrics"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodeInternalError   = "internal_error"
	ErrCodeValidationError = "validation_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// validationErrors are the request-shape sentinels that map to 400.
var validationErrors = []error{
	models.ErrMissingSubject,
	models.ErrMissingMealType,
	models.ErrNegativeGuests,
	models.ErrMissingVoidReason,
	models.ErrInvalidPath,
	models.ErrInvalidWindow,
}

// mapServiceError translates domain sentinels into HTTP responses and
// reports whether it handled the error. Unknown errors are left for the
// handler's own 500 path so it can log with its action context.
func mapServiceError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, models.ErrEventNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "event not found")
	case errors.Is(err, models.ErrPolicyNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "policy not found")
	case errors.Is(err, models.ErrEmployeeNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "employee not found")
	case errors.Is(err, models.ErrAlreadyVoided):
		respondError(c, http.StatusConflict, ErrCodeConflict, "event is already voided")
	default:
		for _, sentinel := range validationErrors {
			if errors.Is(err, sentinel) {
				respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
				return true
			}
		}

		// Timestamps come in as user-supplied strings; a parse failure is
		// the caller's fault, not ours.
		var parseErr *time.ParseError
		if errors.As(err, &parseErr) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, "invalid timestamp")
			return true
		}

		return false
	}

	return true
}
