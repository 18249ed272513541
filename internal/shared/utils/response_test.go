package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessResponse_MergesPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessResponse(c, gin.H{"ticketId": 5})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(5), body["ticketId"])
}

func TestErrorResponseWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("app error keeps status and extras", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		ErrorResponseWithError(c, errors.NewConflictError("already_assigned").WithExtra("assigned_to", 3))

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["ok"])
		assert.Equal(t, "already_assigned", body["error"])
		assert.Equal(t, float64(3), body["assigned_to"])
	})

	t.Run("plain error is a 500 with its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		ErrorResponseWithError(c, fmt.Errorf("dial tcp: refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "dial tcp: refused", decode(t, w)["error"])
	})
}
