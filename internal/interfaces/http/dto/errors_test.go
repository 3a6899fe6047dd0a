package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeDepartmentNotFound, http.StatusNotFound},
		{ErrCodeParentNotFound, http.StatusNotFound},
		{ErrCodeNoParent, http.StatusNotFound},
		{ErrCodeEmployeeNotFound, http.StatusNotFound},
		{ErrCodeCircularDependency, http.StatusConflict},
		{ErrCodeDataIntegrity, http.StatusInternalServerError},
		{ErrCodeInvalidDeptName, http.StatusBadRequest},
		{ErrCodeInvalidEmployeeName, http.StatusBadRequest},
		{ErrCodeInvalidEmail, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"NOT_FOUND", http.StatusNotFound},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeDepartmentNotFound, "Department not found")
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, ErrCodeDepartmentNotFound, resp.Error.Code)
	assert.Equal(t, "Department not found", resp.Error.Message)
	assert.Empty(t, resp.Error.RequestID)

	withID := NewErrorResponseWithRequestID(ErrCodeInternal, "boom", "req-123")
	assert.Equal(t, "req-123", withID.Error.RequestID)
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"name": "Engineering"})
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
}
