package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation creates a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports a uniqueness or referential-integrity violation.
// Details carries the identifiers of the colliding record so the client
// can offer "edit existing instead".
type ConflictError struct {
	Message string
	Details map[string]string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict creates a ConflictError with optional colliding identifiers.
func NewConflict(message string, details map[string]string) *ConflictError {
	return &ConflictError{Message: message, Details: details}
}

// NotFoundError reports an unknown identifier on a read, update, or delete.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NewNotFound creates a NotFoundError for the named resource.
func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// Respond writes the JSON error response for err. Validation, conflict and
// not-found errors surface their own message; anything else is an internal
// error and the caller-facing message stays generic.
func Respond(c echo.Context, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		body := map[string]string{"error": ve.Message}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		return c.JSON(http.StatusBadRequest, body)
	}

	var ce *ConflictError
	if errors.As(err, &ce) {
		body := map[string]interface{}{"error": ce.Message}
		if len(ce.Details) > 0 {
			for k, v := range ce.Details {
				body[k] = v
			}
		}
		return c.JSON(http.StatusConflict, body)
	}

	var ne *NotFoundError
	if errors.As(err, &ne) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": ne.Error()})
	}

	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "An internal error occurred"})
}
