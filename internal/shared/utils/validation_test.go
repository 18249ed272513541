package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

type bindTarget struct {
	Name   string `json:"name" binding:"notblank"`
	Email  string `json:"email" binding:"required,email"`
	Status string `json:"status" binding:"omitempty,oneof=new replied closed"`
}

func newJSONContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"valid", `{"name":"Ana","email":"ana@example.com"}`, ""},
		{"blank name", `{"name":"   ","email":"ana@example.com"}`, "missing_fields"},
		{"missing email", `{"name":"Ana"}`, "missing_fields"},
		{"bad enum", `{"name":"Ana","email":"ana@example.com","status":"x"}`, "invalid_fields"},
		{"malformed", `{"name":`, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst bindTarget
			err := BindJSON(newJSONContext(tt.body), &dst)
			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Message)
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
		})
	}
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, IsLoopback("127.0.0.1"))
	assert.True(t, IsLoopback("127.0.0.1:5123"))
	assert.True(t, IsLoopback("::1"))
	assert.True(t, IsLoopback("[::1]:80"))
	assert.True(t, IsLoopback("::ffff:127.0.0.1"))
	assert.False(t, IsLoopback("10.0.0.4"))
	assert.False(t, IsLoopback("not-an-ip"))
}
