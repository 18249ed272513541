package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/cache"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/utils"
)

// SessionCookie reads the session id carried by the browser.
type SessionCookie interface {
	Read(r *http.Request) string
}

// SessionLoader resolves a session id to its server-side record.
type SessionLoader interface {
	Get(ctx context.Context, id string) (*cache.Session, error)
}

type AuthMiddleware struct {
	cookie   SessionCookie
	sessions SessionLoader
	logger   logger.Interface
}

func NewAuthMiddleware(cookie SessionCookie, sessions SessionLoader, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		cookie:   cookie,
		sessions: sessions,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a live session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.load(c)
		if !ok {
			return
		}
		if session == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "not_authenticated")
			c.Abort()
			return
		}
		setSession(c, session)
		c.Next()
	}
}

// OptionalAuth attaches the session when there is one and never rejects.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.load(c)
		if !ok {
			return
		}
		if session != nil {
			setSession(c, session)
		}
		c.Next()
	}
}

// load returns ok=false after writing a 500 when the store fails.
func (m *AuthMiddleware) load(c *gin.Context) (*cache.Session, bool) {
	sid := m.cookie.Read(c.Request)
	if sid == "" {
		return nil, true
	}
	session, err := m.sessions.Get(c.Request.Context(), sid)
	if err != nil {
		m.logger.Errorw("failed to load session", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "session_unavailable")
		c.Abort()
		return nil, false
	}
	return session, true
}

func setSession(c *gin.Context, session *cache.Session) {
	user := session.User
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUserRole, user.Role)
	c.Set(constants.ContextKeySessionID, session.ID)
	c.Set(constants.ContextKeySession, &user)
}

// CurrentUser returns the session user set by RequireAuth.
func CurrentUser(c *gin.Context) (*cache.SessionUser, bool) {
	v, ok := c.Get(constants.ContextKeySession)
	if !ok {
		return nil, false
	}
	user, ok := v.(*cache.SessionUser)
	return user, ok && user != nil
}

func CurrentRole(c *gin.Context) authorization.UserRole {
	v, _ := c.Get(constants.ContextKeyUserRole)
	role, _ := v.(authorization.UserRole)
	return role
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(constants.ContextKeySessionID)
}
