package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrGuestNotFound      = errors.New("guest not found")
	ErrUnknownSectionType = errors.New("unknown section type")
)

// ValidationError collects every problem found in a single input.
type ValidationError struct {
	Errors []string
}

func NewValidationError(errs ...string) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SectionValidationError reports a content section that does not conform to its type schema.
type SectionValidationError struct {
	SectionID string
	Type      SectionType
	Errors    []string
}

func (e *SectionValidationError) Error() string {
	return fmt.Sprintf("section %s (%s) validation failed: %s", e.SectionID, e.Type, strings.Join(e.Errors, "; "))
}

func (e *SectionValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidationError reports whether err carries per-field validation details.
func IsValidationError(err error) bool {
	var ve *ValidationError
	var se *SectionValidationError

	return errors.As(err, &ve) || errors.As(err, &se)
}

// ForbiddenError is a business-rule denial with a reason that can be shown to the caller.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}
