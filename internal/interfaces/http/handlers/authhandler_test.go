package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/application/user/dto"
	"github.com/cerberus-dev/cerberus/internal/application/user/usecases"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/handlers/testutil"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockLoginUC struct {
	result *usecases.LoginResult
	err    error
	got    usecases.LoginCommand
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockLogoutUC struct {
	sessionID string
	err       error
}

func (m *mockLogoutUC) Execute(ctx context.Context, sessionID string) error {
	m.sessionID = sessionID
	return m.err
}

type mockChangePasswordUC struct {
	got usecases.ChangePasswordCommand
	err error
}

func (m *mockChangePasswordUC) Execute(ctx context.Context, cmd usecases.ChangePasswordCommand) error {
	m.got = cmd
	return m.err
}

type mockRequestResetUC struct {
	err error
}

func (m *mockRequestResetUC) Execute(ctx context.Context, email string) error {
	return m.err
}

type mockResetPasswordUC struct {
	err error
}

func (m *mockResetPasswordUC) Execute(ctx context.Context, cmd usecases.ResetPasswordCommand) error {
	return m.err
}

type mockSessionCookie struct {
	written  string
	cleared  bool
	writeErr error
}

func (m *mockSessionCookie) Write(w http.ResponseWriter, r *http.Request, id string) error {
	m.written = id
	return m.writeErr
}

func (m *mockSessionCookie) Clear(w http.ResponseWriter, r *http.Request) error {
	m.cleared = true
	return nil
}

type authHandlerMocks struct {
	login   *mockLoginUC
	logout  *mockLogoutUC
	change  *mockChangePasswordUC
	request *mockRequestResetUC
	reset   *mockResetPasswordUC
	cookie  *mockSessionCookie
}

func newTestAuthHandler() (*AuthHandler, *authHandlerMocks) {
	m := &authHandlerMocks{
		login:   &mockLoginUC{},
		logout:  &mockLogoutUC{},
		change:  &mockChangePasswordUC{},
		request: &mockRequestResetUC{},
		reset:   &mockResetPasswordUC{},
		cookie:  &mockSessionCookie{},
	}
	h := NewAuthHandler(m.login, m.logout, m.change, m.request, m.reset, m.cookie, testutil.NewMockLogger())
	return h, m
}

// =====================================================================
// Login
// =====================================================================

func TestAuthHandler_Login_Success(t *testing.T) {
	h, m := newTestAuthHandler()
	m.login.result = &usecases.LoginResult{
		SessionID:          "sess-1",
		User:               &dto.UserDTO{ID: 7, Username: "ana", Role: "client"},
		MustChangePassword: true,
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	env, raw := testutil.DecodeEnvelope(w)
	assert.True(t, env.OK)
	assert.JSONEq(t, "true", string(raw["mustChangePassword"]))
	assert.Equal(t, "sess-1", m.cookie.written)
	assert.Equal(t, "ana@example.com", m.login.got.Login)
}

func TestAuthHandler_Login_UsernameWins(t *testing.T) {
	h, m := newTestAuthHandler()
	m.login.result = &usecases.LoginResult{SessionID: "s", User: &dto.UserDTO{ID: 1}}

	c, _ := testutil.NewTestContext(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "ana",
		"email":    "ana@example.com",
		"password": "secret123",
	})
	h.Login(c)

	assert.Equal(t, "ana", m.login.got.Login)
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	h, _ := newTestAuthHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "ana",
		"password": "   ",
	})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env, _ := testutil.DecodeEnvelope(w)
	assert.False(t, env.OK)
	assert.Equal(t, "missing_fields", env.Error)
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", errors.NewUnauthorizedError("invalid_credentials"), http.StatusUnauthorized, "invalid_credentials"},
		{"disabled account", errors.NewForbiddenError("account_disabled"), http.StatusForbidden, "account_disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestAuthHandler()
			m.login.err = tt.err

			c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", map[string]string{
				"username": "ana",
				"password": "secret123",
			})
			h.Login(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			env, _ := testutil.DecodeEnvelope(w)
			assert.Equal(t, tt.wantCode, env.Error)
			assert.Empty(t, m.cookie.written)
		})
	}
}

func TestAuthHandler_Login_CookieFailure(t *testing.T) {
	h, m := newTestAuthHandler()
	m.login.result = &usecases.LoginResult{SessionID: "s", User: &dto.UserDTO{ID: 1}}
	m.cookie.writeErr = stderrors.New("encode failed")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "ana",
		"password": "secret123",
	})
	h.Login(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env, _ := testutil.DecodeEnvelope(w)
	assert.Equal(t, "session_unavailable", env.Error)
}

// =====================================================================
// Logout / Session
// =====================================================================

func TestAuthHandler_Logout_DeletesSessionAndClearsCookie(t *testing.T) {
	h, m := newTestAuthHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/logout", nil)
	testutil.SetAuthContext(c, 3, authorization.RoleSupport)
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-session-id", m.logout.sessionID)
	assert.True(t, m.cookie.cleared)
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	h, m := newTestAuthHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/logout", nil)
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, m.logout.sessionID)
	assert.True(t, m.cookie.cleared)
}

func TestAuthHandler_Session(t *testing.T) {
	h, _ := newTestAuthHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/api/session", nil)
	h.Session(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/session", nil)
	testutil.SetAuthContext(c, 9, authorization.RoleAdmin)
	h.Session(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
	assert.Contains(t, w.Body.String(), `"mustChangePassword":false`)
}

// =====================================================================
// Passwords
// =====================================================================

func TestAuthHandler_ChangePassword_PassesSession(t *testing.T) {
	h, m := newTestAuthHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/change-password", map[string]string{
		"current_password": "old-secret",
		"new_password":     "new-secret",
	})
	testutil.SetAuthContext(c, 4, authorization.RoleClient)
	h.ChangePassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), m.change.got.UserID)
	assert.Equal(t, "test-session-id", m.change.got.SessionID)
}

func TestAuthHandler_ForgotPassword_AlwaysOK(t *testing.T) {
	h, m := newTestAuthHandler()
	m.request.err = stderrors.New("smtp down")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/password/forgot", map[string]string{
		"email": "nobody@example.com",
	})
	h.ForgotPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env, _ := testutil.DecodeEnvelope(w)
	assert.True(t, env.OK)
}

func TestAuthHandler_ResetPassword_InvalidToken(t *testing.T) {
	h, m := newTestAuthHandler()
	m.reset.err = errors.NewBadRequestError("invalid_token")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/password/reset", map[string]string{
		"token":        "bad",
		"new_password": "whatever1",
	})
	h.ResetPassword(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env, _ := testutil.DecodeEnvelope(w)
	assert.Equal(t, "invalid_token", env.Error)
}
