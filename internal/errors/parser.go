package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries a parsed status/code/message triple
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
}

// ParseError converts database-layer errors into a response triple
// without leaking driver internals to the caller.
func ParseError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{StatusCode: http.StatusInternalServerError, Code: InternalServerError, Message: "An internal error occurred"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{StatusCode: http.StatusNotFound, Code: ResourceNotFound, Message: "Resource not found"}
	}

	errStr := strings.ToLower(err.Error())

	// postgres 23505, sqlite "UNIQUE constraint failed"
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		if strings.Contains(errStr, "email") {
			return ErrorInfo{StatusCode: http.StatusConflict, Code: AuthEmailAlreadyExists, Message: "This email address is already registered"}
		}
		return ErrorInfo{StatusCode: http.StatusConflict, Code: ResourceAlreadyExists, Message: "A record with this value already exists"}
	}

	// postgres 23503
	if strings.Contains(errStr, "foreign key constraint") {
		return ErrorInfo{StatusCode: http.StatusConflict, Code: ResourceConflict, Message: "Operation conflicts with related records"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{StatusCode: http.StatusInternalServerError, Code: InternalDatabaseError, Message: "Database is temporarily unavailable. Please try again later"}
	}

	return ErrorInfo{StatusCode: http.StatusInternalServerError, Code: InternalServerError, Message: "An internal error occurred"}
}
