// Package errors defines application-level error types that carry an HTTP
// status and a stable business error code alongside the user-facing message.
package errors

import (
	"fmt"
	"net/http"

	"bountyhub/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrInvalidCredentials is the single rejection for unknown email and wrong
	// password alike. The wording must stay identical for both cases so the
	// response cannot be used to enumerate registered addresses.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrInvalidTwoFactorCode = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_2FA_CODE",
		"Invalid 2FA code",
		"",
	)

	ErrEmailAlreadyRegistered = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_REGISTERED",
		"User with this email already exists",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrTwoFactorAlreadyEnabled = NewBaseError(
		http.StatusBadRequest,
		"2FA_ALREADY_ENABLED",
		"2FA is already enabled",
		"",
	)

	ErrTwoFactorNotEnabled = NewBaseError(
		http.StatusBadRequest,
		"2FA_NOT_ENABLED",
		"2FA is not enabled",
		"",
	)

	ErrNoPendingTwoFactorSetup = NewBaseError(
		http.StatusBadRequest,
		"NO_PENDING_2FA_SETUP",
		"No 2FA setup in progress",
		"",
	)

	// ErrInvalidToken is the single rejection for every kind of token failure.
	// Expired, malformed and wrong-key tokens all read the same from outside.
	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Forbidden",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource already exists",
		"",
	)

	ErrProgramNotFound = NewBaseError(
		http.StatusNotFound,
		"PROGRAM_NOT_FOUND",
		"Program not found",
		"",
	)

	ErrReportNotFound = NewBaseError(
		http.StatusNotFound,
		"REPORT_NOT_FOUND",
		"Report not found",
		"",
	)

	ErrAlreadyEnrolled = NewBaseError(
		http.StatusConflict,
		"ALREADY_ENROLLED",
		"Already enrolled in this program",
		"",
	)

	ErrNotEnrolled = NewBaseError(
		http.StatusForbidden,
		"NOT_ENROLLED",
		"Not enrolled in this program",
		"",
	)

	ErrProgramNotAcceptingReports = NewBaseError(
		http.StatusBadRequest,
		"PROGRAM_NOT_ACTIVE",
		"Program is not accepting reports",
		"",
	)
)

// NewAccountLockedError reports a lockout with the remaining time in minutes.
// Unlike the credential rejections above this is deliberately precise: the
// legitimate account owner is the one most likely to be hitting it.
func NewAccountLockedError(remainingMinutes int) *BaseError {
	return NewBaseError(
		http.StatusLocked,
		"ACCOUNT_LOCKED",
		fmt.Sprintf("Account locked. Try again in %d minutes.", remainingMinutes),
		"",
	)
}

// NewDatabaseExecuteError wraps a storage failure as a generic internal error.
// The underlying detail stays in the details field for logs and never reaches
// the response body.
func NewDatabaseExecuteError(err error, message string) *BaseError {
	return NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		"Internal server error",
		fmt.Sprintf("%s: %v", message, err),
	)
}
