package cache

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

const (
	// SessionKeyPrefix is the Redis key prefix for login sessions.
	SessionKeyPrefix = "session:"
	// DefaultSessionTTL applies when the store is built without a TTL.
	DefaultSessionTTL = 24 * time.Hour
)

// SessionUser is the user snapshot stored with a login session.
type SessionUser struct {
	ID                 uint                   `json:"id"`
	Username           string                 `json:"username"`
	Email              string                 `json:"email"`
	DisplayName        string                 `json:"display_name"`
	Role               authorization.UserRole `json:"role"`
	MustChangePassword bool                   `json:"must_change_password"`
	PM2Access          bool                   `json:"pm2_access"`
}

// Session is the server-side record. The browser only holds ID.
type Session struct {
	ID        string      `json:"id"`
	User      SessionUser `json:"user"`
	CreatedAt int64       `json:"created_at"`
}

// SessionStore keeps login sessions in Redis with a sliding TTL.
type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		client: client,
		prefix: SessionKeyPrefix,
		ttl:    ttl,
	}
}

// newSessionID returns 32 random bytes, URL-safe encoded.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Create stores a new session for user and returns it.
func (s *SessionStore) Create(ctx context.Context, user SessionUser) (*Session, error) {
	if user.ID == 0 {
		return nil, errors.New("session user id cannot be zero")
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        id,
		User:      user,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session and extends its TTL. Returns nil, nil when the
// session does not exist or has expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}

	data, err := s.client.GetEx(ctx, s.prefix+id, s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// UpdateUser replaces the user snapshot of an existing session.
func (s *SessionStore) UpdateUser(ctx context.Context, id string, user SessionUser) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	session.User = user
	return s.save(ctx, session)
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+session.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}
