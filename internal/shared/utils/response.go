package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

// SuccessResponse writes {ok: true, ...payload} with status 200.
func SuccessResponse(c *gin.Context, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// OKResponse writes {ok: true}.
func OKResponse(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ErrorResponse writes {ok: false, error: code} with the given status.
func ErrorResponse(c *gin.Context, statusCode int, code string) {
	c.JSON(statusCode, gin.H{"ok": false, "error": code})
}

// ErrorResponseWithError maps err onto the response envelope. AppErrors keep
// their status and code; anything else is a 500 carrying the error text.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	body := gin.H{"ok": false, "error": appErr.Message}
	if appErr.Details != "" {
		body["message"] = appErr.Details
	}
	for k, v := range appErr.Extra {
		body[k] = v
	}
	c.JSON(appErr.Code, body)
}

// AbortWithError is ErrorResponseWithError for middleware.
func AbortWithError(c *gin.Context, err error) {
	ErrorResponseWithError(c, err)
	c.Abort()
}
