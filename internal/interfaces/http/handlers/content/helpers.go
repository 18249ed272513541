// Package content provides HTTP handlers for the public site content and
// its admin screens.
package content

import (
	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/shared/i18n"
)

func langOf(c *gin.Context) i18n.Lang {
	return i18n.Pick(c.Query("lang"), c.GetHeader("Accept-Language"))
}
