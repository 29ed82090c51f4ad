package response

import (
	"errors"
	"net/http"
	"strings"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/storage"
)

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrUnauthorized = ErrorResponse{
		Status:  "error",
		Error:   "unauthorized",
		Details: "Missing access assertion",
	}

	ErrInternal = ErrorResponse{
		Status: "error",
		Error:  "internal_error",
	}
)

// StatusFor maps a service error to the HTTP status and body returned to the client.
// Store failures never expose their details.
func StatusFor(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, models.ErrUnknownSectionType):
		return http.StatusBadRequest, ErrorResponseWithDetails("unknown_section_type", err.Error())
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, ErrorResponseWithDetails("validation_failed", validationDetails(err))
	case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrInvalidFileType):
		return http.StatusBadRequest, ErrorResponseWithDetails("invalid_file", err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, ErrUnauthorized
	case errors.Is(err, models.ErrGuestNotFound):
		return http.StatusForbidden, ErrorResponseWithDetails("guest_not_found",
			"Your name was not found in our guest list. Please contact the couple if you believe this is an error.")
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, ErrorResponseWithDetails("forbidden", validationDetails(err))
	case errors.Is(err, models.ErrNotFound), errors.Is(err, storage.ErrFileNotFound), errors.Is(err, storage.ErrInvalidKey):
		return http.StatusNotFound, ErrorResponseWithDetails("not_found", "Resource not found")
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, ErrorResponseWithDetails("conflict", "The resource was changed or already exists")
	}
	return http.StatusInternalServerError, ErrInternal
}

func validationDetails(err error) string {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return strings.Join(ve.Errors, "; ")
	}
	var se *models.SectionValidationError
	if errors.As(err, &se) {
		return se.Error()
	}
	var fe *models.ForbiddenError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return err.Error()
}
