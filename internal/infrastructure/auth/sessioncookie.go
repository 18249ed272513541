package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/cerberus-dev/cerberus/internal/shared/config"
)

const sessionIDKey = "sid"

// SessionCookie holds the session id in a signed cookie. The session body
// itself lives server-side.
type SessionCookie struct {
	store *sessions.CookieStore
	name  string
}

func NewSessionCookie(cfg config.SessionConfig) *SessionCookie {
	store := sessions.NewCookieStore([]byte(cfg.CookieSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TTL().Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	name := cfg.CookieName
	if name == "" {
		name = "cerberus_sid"
	}
	return &SessionCookie{store: store, name: name}
}

// Read returns the session id, or "" when the cookie is missing or its
// signature does not verify.
func (c *SessionCookie) Read(r *http.Request) string {
	session, err := c.store.Get(r, c.name)
	if err != nil {
		return ""
	}
	id, _ := session.Values[sessionIDKey].(string)
	return id
}

func (c *SessionCookie) Write(w http.ResponseWriter, r *http.Request, id string) error {
	session, _ := c.store.Get(r, c.name)
	session.Values[sessionIDKey] = id
	return session.Save(r, w)
}

func (c *SessionCookie) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := c.store.Get(r, c.name)
	session.Options.MaxAge = -1
	delete(session.Values, sessionIDKey)
	return session.Save(r, w)
}
