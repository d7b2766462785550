package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebook/internal/repository"
	"ridebook/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondFailure sends err as-is for client errors and hides it behind message
// for server errors, keeping the cause in details.
func respondFailure(c *gin.Context, err error, message string) {
	code := mapErrorToHTTPStatus(err)
	if code != http.StatusInternalServerError {
		c.JSON(code, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(code, ErrorResponse{Error: message, Details: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingFavoriteLocationFields),
		errors.Is(err, service.ErrMissingSavedRouteFields),
		errors.Is(err, service.ErrInvalidPickupLocation),
		errors.Is(err, service.ErrInvalidDropoffLocation),
		errors.Is(err, service.ErrInvalidStop),
		errors.Is(err, service.ErrInvalidCoordinates),
		errors.Is(err, service.ErrMissingFavoriteDriverFields),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidPassengerID),
		errors.Is(err, service.ErrInvalidPassengerCount),
		errors.Is(err, service.ErrMissingBookingUpdate),
		errors.Is(err, service.ErrInvalidBookingAction),
		errors.Is(err, service.ErrInvalidBookingStatus),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUnknownIdentifierKind):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrBookingClosed),
		errors.Is(err, service.ErrBookingBusy),
		errors.Is(err, service.ErrDriverOffline),
		errors.Is(err, service.ErrDriverLocationUnknown):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
