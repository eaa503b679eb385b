package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		code     string
		expected string
		status   int
	}{
		{"UPSTREAM_UNAVAILABLE", ErrCodeUpstreamUnavailable, http.StatusServiceUnavailable},
		{"ACCOUNT_NOT_FOUND", ErrCodeNotFound, http.StatusNotFound},
		{"NOT_FOUND", ErrCodeNotFound, http.StatusNotFound},
		{"DUPLICATE_REQUEST", ErrCodeAlreadyExists, http.StatusConflict},
		{"INVALID_INPUT", ErrCodeInvalidInput, http.StatusBadRequest},
		{"INVALID_VOUCHER_TYPE", ErrCodeValidation, http.StatusBadRequest},
		{"INVALID_DATE", ErrCodeValidation, http.StatusBadRequest},
		{"INTERNAL_ERROR", ErrCodeInternal, http.StatusInternalServerError},
		{"ERR_NOT_FOUND", ErrCodeNotFound, http.StatusNotFound},
		{"SOMETHING_ELSE", "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := NormalizeErrorCode(tt.code)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.status, GetHTTPStatus(got))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	empty := NewSuccessResponseWithMeta([]string{}, 0, 1, 20)
	assert.Equal(t, 0, empty.Meta.TotalPages)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "amount", Message: "must not be negative"},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "ERR_VALIDATION",
			"message": "Request validation failed",
			"request_id": "req-1",
			"details": [{"field": "amount", "message": "must not be negative"}]
		}
	}`, string(raw))
}

func TestListRequest_ToFilter(t *testing.T) {
	f := ListRequest{}.ToFilter()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "created_at", f.OrderBy)

	f = ListRequest{Page: 3, PageSize: 5, OrderBy: "name", OrderDir: "asc", Search: "mills"}.ToFilter()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 5, f.PageSize)
	assert.Equal(t, "name", f.OrderBy)
	assert.Equal(t, "asc", f.OrderDir)
	assert.Equal(t, "mills", f.Search)
}
