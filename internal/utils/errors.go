package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError represents an error occurring during data validation.
type ValidationError struct {
	Message string
}

// Error returns the error message string.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError with a specific message.
//
// Parameters:
//   - message: The validation error message.
//
// Returns:
//   - An error interface wrapping the ValidationError.
func NewValidationError(message string) error {
	return &ValidationError{
		Message: message,
	}
}

// NewValidationErrorf creates a new ValidationError with a formatted message.
func NewValidationErrorf(format string, args ...interface{}) error {
	return &ValidationError{
		Message: fmt.Sprintf(format, args...),
	}
}

// Error codes returned to API clients.
const (
	CodeInvalidLane      = "INVALID_LANE"
	CodeUnknownChampions = "UNKNOWN_CHAMPIONS"
	CodeUnknownChampion  = "UNKNOWN_CHAMPION"
	CodeChampionNotFound = "CHAMPION_NOT_FOUND"
	CodeItemNotFound     = "ITEM_NOT_FOUND"
	CodeMissingQuery     = "MISSING_QUERY"
	CodeValidation       = "VALIDATION_ERROR"
	CodeRefreshRunning   = "REFRESH_IN_PROGRESS"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError is a client-facing failure with an HTTP status and a stable code.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError with optional details.
func NewAppError(status int, code, message string, details interface{}) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Details: details}
}

func NewInvalidLaneError(lane string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidLane, fmt.Sprintf("Invalid lane: %s", lane), nil)
}

func NewUnknownChampionsError(inputs []string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeUnknownChampions,
		fmt.Sprintf("Could not identify champions: %s", strings.Join(inputs, ", ")), map[string]interface{}{"unknown": inputs})
}

func NewUnknownChampionError(input string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeUnknownChampion,
		fmt.Sprintf("Could not identify your champion: %s", input), nil)
}

func NewNotFoundError(code, kind, id string) *AppError {
	return NewAppError(http.StatusNotFound, code, fmt.Sprintf("%s not found: %s", kind, id), nil)
}

func NewMissingQueryError(param string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeMissingQuery, fmt.Sprintf("Query parameter %q is required", param), nil)
}

func NewRefreshInProgressError() *AppError {
	return NewAppError(http.StatusConflict, CodeRefreshRunning, "A data refresh is already running", nil)
}

// NewInternalError hides err from clients but keeps it for logging.
func NewInternalError(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error", Err: err}
}

// AsAppError unwraps err into an AppError. Validation errors map to 400;
// anything else becomes an internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewAppError(http.StatusBadRequest, CodeValidation, validationErr.Message, nil)
	}
	return NewInternalError(err)
}
