package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/shared/constants"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

// InternalAPI admits loopback callers that present the shared key. An
// empty configured key closes the internal API entirely.
func InternalAPI(apiKey string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		remote := c.Request.RemoteAddr
		if !utils.IsLoopback(remote) {
			log.Warnw("internal api call from non-loopback address", "remote_addr", remote, "path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusForbidden, "forbidden")
			c.Abort()
			return
		}

		provided := c.GetHeader(constants.HeaderInternalAPIKey)
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			log.Warnw("internal api call with bad key", "path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusForbidden, "forbidden")
			c.Abort()
			return
		}

		c.Next()
	}
}
