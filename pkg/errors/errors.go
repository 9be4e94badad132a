package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Application error codes
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternalServer    = errors.New("internal server error")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("invalid token")
)

// Response codes carried by AppError.Code
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "PERMISSION_DENIED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "ALREADY_EXISTS"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
)

// Detail gives a machine-readable reason for an error
type Detail struct {
	Reason   string
	Metadata map[string]string
}

// AppError represents an application-specific error
type AppError struct {
	Code     string
	HTTPCode int
	Message  string
	Details  []Detail
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches a reason to the error
func (e *AppError) WithDetail(reason string, metadata map[string]string) *AppError {
	e.Details = append(e.Details, Detail{Reason: reason, Metadata: metadata})
	return e
}

// NewAppError creates a new application error
func NewAppError(httpCode int, code, message string, err error) *AppError {
	return &AppError{
		Code:     code,
		HTTPCode: httpCode,
		Message:  message,
		Err:      err,
	}
}

// NotFoundError creates a not found error
func NotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s not found", resource), ErrNotFound)
}

// AlreadyExistsError creates an already exists error
func AlreadyExistsError(resource string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, fmt.Sprintf("%s already exists", resource), ErrAlreadyExists)
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

// ForbiddenError creates a forbidden error
func ForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

// ValidationError creates a validation error
func ValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidationError, message, ErrInvalidInput)
}

// InternalError creates an internal server error
func InternalError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, err)
}

// GetAppError returns the AppError in err's chain, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if the error is a forbidden error
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
