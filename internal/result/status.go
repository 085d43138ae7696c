package result

import (
	"net/http"
	"strings"
)

// statusByCode is the only place failure statuses are decided.
var statusByCode = map[Code]int{
	CodeValidation:       http.StatusBadRequest,
	CodeInvalidArgument:  http.StatusBadRequest,
	CodeInvalidOperation: http.StatusBadRequest,
	CodeBadRequest:       http.StatusBadRequest,

	CodeUnauthorized:            http.StatusUnauthorized,
	CodeLoginFailed:             http.StatusUnauthorized,
	CodeInvalidCredentials:      http.StatusUnauthorized,
	CodeTokenExpired:            http.StatusUnauthorized,
	CodeTokenInvalid:            http.StatusUnauthorized,
	CodeForbidden:               http.StatusForbidden,
	CodeInsufficientPermissions: http.StatusForbidden,

	CodeNotFound:         http.StatusNotFound,
	CodeUserNotFound:     http.StatusNotFound,
	CodeResourceNotFound: http.StatusNotFound,

	CodeConflict:           http.StatusConflict,
	CodeDuplicateEntry:     http.StatusConflict,
	CodeUserAlreadyExists:  http.StatusConflict,
	CodeEmailAlreadyExists: http.StatusConflict,
	CodeNameAlreadyExists:  http.StatusConflict,
	CodePhoneAlreadyExists: http.StatusConflict,

	CodePasswordMismatch:   http.StatusBadRequest,
	CodeUserCreationFailed: http.StatusInternalServerError,
	CodeAccountLocked:      http.StatusLocked,
	CodeAccountDisabled:    http.StatusLocked,
	CodeRateLimited:        http.StatusTooManyRequests,
	CodeDataNull:           http.StatusInternalServerError,

	CodeInternal:           http.StatusInternalServerError,
	CodeDatabase:           http.StatusInternalServerError,
	CodeTimeout:            http.StatusGatewayTimeout,
	CodeCanceled:           http.StatusServiceUnavailable,
	CodeExternalService:    http.StatusBadGateway,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
}

// StatusFor maps an error code to an HTTP status. Lookup is case-insensitive;
// unknown and empty codes map to 500.
func StatusFor(code Code) int {
	if status, ok := statusByCode[Code(strings.ToUpper(string(code)))]; ok {
		return status
	}
	return http.StatusInternalServerError
}
