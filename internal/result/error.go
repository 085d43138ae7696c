package result

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Code is a stable, machine-readable failure token carried by an Error.
type Code string

const (
	// Validation
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeInvalidOperation Code = "INVALID_OPERATION"
	CodeBadRequest       Code = "BAD_REQUEST"

	// Authentication & authorization
	CodeUnauthorized            Code = "UNAUTHORIZED"
	CodeForbidden               Code = "FORBIDDEN"
	CodeLoginFailed             Code = "LOGIN_FAILED"
	CodeInvalidCredentials      Code = "INVALID_CREDENTIALS"
	CodeTokenExpired            Code = "TOKEN_EXPIRED"
	CodeTokenInvalid            Code = "TOKEN_INVALID"
	CodeInsufficientPermissions Code = "INSUFFICIENT_PERMISSIONS"

	// Missing resources
	CodeNotFound         Code = "NOT_FOUND"
	CodeUserNotFound     Code = "USER_NOT_FOUND"
	CodeResourceNotFound Code = "RESOURCE_NOT_FOUND"

	// Uniqueness and state conflicts
	CodeConflict           Code = "CONFLICT"
	CodeDuplicateEntry     Code = "DUPLICATE_ENTRY"
	CodeUserAlreadyExists  Code = "USER_ALREADY_EXISTS"
	CodeEmailAlreadyExists Code = "EMAIL_ALREADY_EXISTS"
	CodeNameAlreadyExists  Code = "NAME_ALREADY_EXISTS"
	CodePhoneAlreadyExists Code = "PHONE_ALREADY_EXISTS"

	// Business rules
	CodePasswordMismatch   Code = "PASSWORD_MISMATCH"
	CodeUserCreationFailed Code = "USER_CREATION_FAILED"
	CodeAccountLocked      Code = "ACCOUNT_LOCKED"
	CodeAccountDisabled    Code = "ACCOUNT_DISABLED"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeDataNull           Code = "DATA_NULL"

	// Faults
	CodeInternal           Code = "INTERNAL_SERVER_ERROR"
	CodeDatabase           Code = "DATABASE_ERROR"
	CodeTimeout            Code = "TIMEOUT"
	CodeCanceled           Code = "CANCELED"
	CodeExternalService    Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
)

// Error is a structured, coded failure description. It is a value type;
// the factories below are the only intended way to build one.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Error satisfies [error].
func (e Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var _ error = Error{}

// Validation reports missing or malformed input for a single field.
func Validation(field, message string) Error {
	return Error{Code: CodeValidation, Message: message, Field: field}
}

// NotFound reports a missing resource, e.g. NotFound("Note").
func NotFound(resource string) Error {
	return Error{Code: CodeNotFound, Message: resource + " not found", Source: resource}
}

// Unauthorized reports a missing or invalid identity.
func Unauthorized(message string) Error {
	if message == "" {
		message = "Unauthorized access"
	}
	return Error{Code: CodeUnauthorized, Message: message}
}

// Forbidden reports an identity that may not perform the operation.
func Forbidden(message string) Error {
	if message == "" {
		message = "Access forbidden"
	}
	return Error{Code: CodeForbidden, Message: message}
}

// Business reports a domain-specific precondition failure.
func Business(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

// Conflict reports a uniqueness or state conflict attributed to field.
func Conflict(code Code, field, message string) Error {
	return Error{Code: code, Message: message, Field: field}
}

// FromError converts an unanticipated fault into an Error whose code names
// the fault's category. The fault text stays out of the public error.
func FromError(err error) Error {
	code := Category(err)
	return Error{Code: code, Message: categoryMessages[code], Source: "server"}
}

var categoryMessages = map[Code]string{
	CodeTimeout:  "The operation timed out",
	CodeCanceled: "The operation was canceled",
	CodeDatabase: "A storage error occurred",
	CodeInternal: "An internal error occurred",
}

// Category classifies a fault into a failure code.
func Category(err error) Code {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, sql.ErrTxDone):
		return CodeDatabase
	default:
		return CodeInternal
	}
}
