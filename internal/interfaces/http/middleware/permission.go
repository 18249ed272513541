package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

// PermissionMiddleware gates routes on the capability policy. It must run
// after RequireAuth.
type PermissionMiddleware struct {
	policy authorization.Policy
	logger logger.Interface
}

func NewPermissionMiddleware(policy authorization.Policy, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		policy: policy,
		logger: logger,
	}
}

func (m *PermissionMiddleware) RequirePermission(resource authorization.Resource, action authorization.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(constants.ContextKeyUserID); !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "not_authenticated")
			c.Abort()
			return
		}

		role := CurrentRole(c)
		if !m.policy.Can(c.Request.Context(), role, resource, action) {
			m.logger.Warnw("permission denied",
				"user_id", c.GetUint(constants.ContextKeyUserID),
				"role", role,
				"resource", resource,
				"action", action,
			)
			utils.ErrorResponse(c, http.StatusForbidden, "forbidden")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRole admits only the listed roles.
func (m *PermissionMiddleware) RequireRole(roles ...authorization.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(constants.ContextKeyUserID); !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "not_authenticated")
			c.Abort()
			return
		}

		role := CurrentRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "forbidden")
		c.Abort()
	}
}

func (m *PermissionMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(authorization.RoleAdmin)
}

func (m *PermissionMiddleware) RequireStaff() gin.HandlerFunc {
	return m.RequireRole(authorization.RoleAdmin, authorization.RoleSupport)
}
