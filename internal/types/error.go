package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error types reported in the response body
const (
	ErrTypeAuth       = "auth"
	ErrTypeValidation = "validation"
	ErrTypeNotFound   = "notFound"
	ErrTypeMethod     = "method"
	ErrTypeUpstream   = "upstream"
	ErrTypeInternal   = "internal"
)

// CustomError is an error that carries its HTTP status and a client facing message.
// Details holds the underlying cause, which is only shown to clients when configured.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Details string `json:"details,omitempty"`
	cause   error
}

func (e *CustomError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%d: %s [type: %s] %s", e.Code, e.Message, e.Type, e.Details)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

func newError(code int, errorType, message string, cause error) *CustomError {
	e := &CustomError{Code: code, Message: message, Type: errorType, cause: cause}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// Unauthorized is returned for a missing or rejected token
func Unauthorized(message string, cause error) *CustomError {
	return newError(fiber.StatusUnauthorized, ErrTypeAuth, message, cause)
}

// BadRequest is returned for malformed or incomplete input
func BadRequest(message string) *CustomError {
	return newError(fiber.StatusBadRequest, ErrTypeValidation, message, nil)
}

// NotFound is returned for unknown routes and missing records
func NotFound(message string) *CustomError {
	return newError(fiber.StatusNotFound, ErrTypeNotFound, message, nil)
}

// MethodNotAllowed is returned when an endpoint does not serve the method
func MethodNotAllowed() *CustomError {
	return newError(fiber.StatusMethodNotAllowed, ErrTypeMethod, "Method not allowed", nil)
}

// Upstream wraps a storage provider failure
func Upstream(cause error) *CustomError {
	return newError(fiber.StatusInternalServerError, ErrTypeUpstream, "Internal server error", cause)
}

// Internal wraps any other failure
func Internal(cause error) *CustomError {
	return newError(fiber.StatusInternalServerError, ErrTypeInternal, "Internal server error", cause)
}

// AsCustomError returns the CustomError in err's chain, if any
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
