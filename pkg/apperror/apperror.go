package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrDuplicateTitle    = errors.New("duplicate title")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrGateway           = errors.New("enrichment gateway failure")
	ErrCredentialMissing = errors.New("credential missing")
	ErrInternal          = errors.New("internal server error")
)

// AppError carries a taxonomy sentinel plus a human readable message.
// errors.Is matches against the sentinel.
type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

// Cause returns the underlying error, if any.
func (e *AppError) Cause() error {
	return e.Err
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewAlreadyExists(key string) *AppError {
	return NewAppError(ErrAlreadyExists, "Section already present", fmt.Sprintf("section '%s' is already in the order", key), nil)
}

func NewDuplicateTitle(title string) *AppError {
	return NewAppError(ErrDuplicateTitle, "A section with this title already exists", fmt.Sprintf("title '%s' collides with an existing section", title), nil)
}

func NewInvalidOrder(details string) *AppError {
	return NewAppError(ErrInvalidOrder, "Invalid section order", details, nil)
}

func NewIndexOutOfRange(index, length int) *AppError {
	return NewAppError(ErrIndexOutOfRange, "Index out of range", fmt.Sprintf("index %d not in [0,%d)", index, length), nil)
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

// NewGateway wraps any failure of the enrichment service into the single
// opaque gateway error surfaced to callers.
func NewGateway(msg string, err error) *AppError {
	return NewAppError(ErrGateway, msg, "the enrichment service request failed", err)
}

func NewCredentialMissing() *AppError {
	return NewAppError(ErrCredentialMissing, "No enrichment API key configured", "set a key before using AI features", nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrDuplicateTitle):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidOrder), errors.Is(err, ErrIndexOutOfRange), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrCredentialMissing):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrGateway):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// ToJSON renders the error body returned by the HTTP adapter.
func ToJSON(err error) fiber.Map {
	var ae *AppError
	if errors.As(err, &ae) {
		return fiber.Map{
			"error":   ae.BaseError.Error(),
			"message": ae.Message,
			"details": ae.Details,
		}
	}
	return fiber.Map{"error": ErrInternal.Error(), "message": "An internal server error occurred"}
}
