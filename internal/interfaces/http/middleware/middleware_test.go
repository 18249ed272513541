package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/cache"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/ratelimit"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers/testutil"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/constants"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/t", handlers...)
	return r
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// =====================================================================
// Rate limit
// =====================================================================

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), "login",
		ratelimit.Rule{Limit: 2, Window: time.Minute}, testutil.NewMockLogger())
	r := newEngine(rl.Limit())

	for i := 0; i < 2; i++ {
		w := do(r, httptest.NewRequest(http.MethodGet, "/t", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := do(r, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"ok":false,"error":"too_many_requests"}`, w.Body.String())
}

type failingLimiter struct{}

func (failingLimiter) Allow(ctx context.Context, key string, rule ratelimit.Rule) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, stderrors.New("connection refused")
}

func (failingLimiter) Reset(ctx context.Context, key string) error { return nil }

func TestRateLimiter_FailsOpen(t *testing.T) {
	rl := NewRateLimiter(failingLimiter{}, "contact", ratelimit.Rule{Limit: 1, Window: time.Minute}, testutil.NewMockLogger())
	r := newEngine(rl.Limit())

	w := do(r, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// =====================================================================
// Internal API
// =====================================================================

func TestInternalAPI(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		remote     string
		key        string
		wantStatus int
	}{
		{"loopback with key", "s3cret", "127.0.0.1:5000", "s3cret", http.StatusOK},
		{"ipv6 loopback", "s3cret", "[::1]:5000", "s3cret", http.StatusOK},
		{"wrong key", "s3cret", "127.0.0.1:5000", "nope", http.StatusForbidden},
		{"remote caller", "s3cret", "203.0.113.9:5000", "s3cret", http.StatusForbidden},
		{"closed when unset", "", "127.0.0.1:5000", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(InternalAPI(tt.configured, testutil.NewMockLogger()))
			req := httptest.NewRequest(http.MethodGet, "/t", nil)
			req.RemoteAddr = tt.remote
			if tt.key != "" {
				req.Header.Set(constants.HeaderInternalAPIKey, tt.key)
			}
			w := do(r, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// =====================================================================
// Auth + permission
// =====================================================================

type stubCookie struct{ id string }

func (s stubCookie) Read(r *http.Request) string { return s.id }

type stubSessions struct {
	session *cache.Session
	err     error
}

func (s stubSessions) Get(ctx context.Context, id string) (*cache.Session, error) {
	return s.session, s.err
}

func sessionFor(role authorization.UserRole) *cache.Session {
	return &cache.Session{ID: "sid", User: cache.SessionUser{ID: 3, Username: "u", Role: role}}
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		sessions   stubSessions
		wantStatus int
		wantCode   string
	}{
		{"no cookie", "", stubSessions{}, http.StatusUnauthorized, "not_authenticated"},
		{"expired session", "sid", stubSessions{}, http.StatusUnauthorized, "not_authenticated"},
		{"store down", "sid", stubSessions{err: stderrors.New("redis down")}, http.StatusInternalServerError, "session_unavailable"},
		{"live session", "sid", stubSessions{session: sessionFor(authorization.RoleClient)}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddleware(stubCookie{id: tt.cookie}, tt.sessions, testutil.NewMockLogger())
			w := do(newEngine(m.RequireAuth()), httptest.NewRequest(http.MethodGet, "/t", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Contains(t, w.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestOptionalAuth_PassesAnonymous(t *testing.T) {
	m := NewAuthMiddleware(stubCookie{}, stubSessions{}, testutil.NewMockLogger())
	w := do(newEngine(m.OptionalAuth()), httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission(t *testing.T) {
	policy := authorization.NewStaticPolicy(authorization.DefaultCapabilities())
	perm := NewPermissionMiddleware(policy, testutil.NewMockLogger())

	tests := []struct {
		name       string
		role       authorization.UserRole
		resource   authorization.Resource
		action     authorization.Action
		wantStatus int
	}{
		{"admin manages users", authorization.RoleAdmin, authorization.ResourceUser, authorization.ActionWrite, http.StatusOK},
		{"support reads leads", authorization.RoleSupport, authorization.ResourceLead, authorization.ActionRead, http.StatusOK},
		{"support cannot edit content", authorization.RoleSupport, authorization.ResourceContent, authorization.ActionWrite, http.StatusForbidden},
		{"client cannot read leads", authorization.RoleClient, authorization.ResourceLead, authorization.ActionRead, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewAuthMiddleware(stubCookie{id: "sid"}, stubSessions{session: sessionFor(tt.role)}, testutil.NewMockLogger())
			r := newEngine(auth.RequireAuth(), perm.RequirePermission(tt.resource, tt.action))
			w := do(r, httptest.NewRequest(http.MethodGet, "/t", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireStaff(t *testing.T) {
	perm := NewPermissionMiddleware(authorization.NewStaticPolicy(nil), testutil.NewMockLogger())

	for role, want := range map[authorization.UserRole]int{
		authorization.RoleAdmin:   http.StatusOK,
		authorization.RoleSupport: http.StatusOK,
		authorization.RoleClient:  http.StatusForbidden,
	} {
		auth := NewAuthMiddleware(stubCookie{id: "sid"}, stubSessions{session: sessionFor(role)}, testutil.NewMockLogger())
		w := do(newEngine(auth.RequireAuth(), perm.RequireStaff()), httptest.NewRequest(http.MethodGet, "/t", nil))
		assert.Equal(t, want, w.Code, "role %s", role)
	}

	w := do(newEngine(perm.RequireStaff()), httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLogger_RequestID(t *testing.T) {
	r := newEngine(RequestLogger(testutil.NewMockLogger(), "/health"))

	w := do(r, httptest.NewRequest(http.MethodGet, "/t", nil))
	require.Equal(t, http.StatusOK, w.Code)
	generated := w.Header().Get(constants.HeaderRequestID)
	assert.Len(t, generated, 36)

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(constants.HeaderRequestID, "edge-42")
	w = do(r, req)
	assert.Equal(t, "edge-42", w.Header().Get(constants.HeaderRequestID))
}

func TestIsQuiet(t *testing.T) {
	assert.True(t, isQuiet("/uploads/a.png", []string{"/health", "/uploads"}))
	assert.False(t, isQuiet("/api/tickets", []string{"/health", "/uploads"}))
	assert.False(t, isQuiet("/api", []string{""}))
}
