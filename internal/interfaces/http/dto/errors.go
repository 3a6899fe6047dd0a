package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeValidation   = "ERR_VALIDATION"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Hierarchy error codes mirror the application's domain error codes.
const (
	ErrCodeDepartmentNotFound  = "DEPARTMENT_NOT_FOUND"
	ErrCodeParentNotFound      = "PARENT_NOT_FOUND"
	ErrCodeNoParent            = "NO_PARENT"
	ErrCodeCircularDependency  = "CIRCULAR_DEPENDENCY"
	ErrCodeDataIntegrity       = "DATA_INTEGRITY"
	ErrCodeInvalidDeptName     = "INVALID_DEPARTMENT_NAME"
	ErrCodeEmployeeNotFound    = "EMPLOYEE_NOT_FOUND"
	ErrCodeInvalidEmployeeName = "INVALID_EMPLOYEE_NAME"
	ErrCodeInvalidEmail        = "INVALID_EMAIL"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeDepartmentNotFound:  http.StatusNotFound,
	ErrCodeParentNotFound:      http.StatusNotFound,
	ErrCodeNoParent:            http.StatusNotFound,
	ErrCodeCircularDependency:  http.StatusConflict,
	ErrCodeDataIntegrity:       http.StatusInternalServerError,
	ErrCodeInvalidDeptName:     http.StatusBadRequest,
	ErrCodeEmployeeNotFound:    http.StatusNotFound,
	ErrCodeInvalidEmployeeName: http.StatusBadRequest,
	ErrCodeInvalidEmail:        http.StatusBadRequest,

	// Shared domain error codes
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
