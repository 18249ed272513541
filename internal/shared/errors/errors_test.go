package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
		typ  ErrorType
	}{
		{"validation", NewValidationError("missing_fields"), http.StatusBadRequest, ErrorTypeValidation},
		{"not found", NewNotFoundError("not_found"), http.StatusNotFound, ErrorTypeNotFound},
		{"conflict", NewConflictError("already_assigned"), http.StatusConflict, ErrorTypeConflict},
		{"unauthorized", NewUnauthorizedError("not_authenticated"), http.StatusUnauthorized, ErrorTypeUnauthorized},
		{"forbidden", NewForbiddenError("forbidden"), http.StatusForbidden, ErrorTypeForbidden},
		{"internal", NewInternalError("boom"), http.StatusInternalServerError, ErrorTypeInternal},
		{"rate limited", NewRateLimitedError("too_many_attempts"), http.StatusTooManyRequests, ErrorTypeRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.typ, tt.err.Type)
		})
	}
}

func TestGetAppError_Wrapped(t *testing.T) {
	base := NewConflictError("already_assigned").WithExtra("assigned_to", uint(7))
	wrapped := fmt.Errorf("assign: %w", base)

	got := GetAppError(wrapped)
	assert.NotNil(t, got)
	assert.True(t, IsConflictError(wrapped))
	assert.Equal(t, uint(7), got.Extra["assigned_to"])
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, IsDuplicateError(&mysql.MySQLError{Number: 1452}))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: users.email")))
	assert.False(t, IsDuplicateError(nil))
}
