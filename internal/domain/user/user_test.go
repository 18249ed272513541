package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		role     authorization.UserRole
		hash     string
		wantErr  bool
	}{
		{name: "valid client", username: "ana", role: authorization.RoleClient, hash: "h"},
		{name: "valid support", username: "soporte", role: authorization.RoleSupport, hash: "h"},
		{name: "blank username", username: "  ", role: authorization.RoleClient, hash: "h", wantErr: true},
		{name: "bad role", username: "x", role: "root", hash: "h", wantErr: true},
		{name: "no hash", username: "x", role: authorization.RoleAdmin, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.username, "a@b.mx", "", tt.role, tt.hash)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, u.IsActive())
			assert.False(t, u.MustChangePassword())
			assert.Equal(t, tt.username, u.DisplayName())
		})
	}
}

func TestUser_PasswordFlags(t *testing.T) {
	u, err := NewUser("ana", "ana@example.com", "Ana", authorization.RoleClient, "old")
	require.NoError(t, err)

	u.AssignTemporaryPassword("temp")
	assert.True(t, u.MustChangePassword())
	assert.Equal(t, "temp", u.PasswordHash())

	u.ChangePassword("chosen")
	assert.False(t, u.MustChangePassword())
	assert.Equal(t, "chosen", u.PasswordHash())
}

func TestReconstructUser(t *testing.T) {
	_, err := ReconstructUser(UserData{})
	assert.Error(t, err)

	now := time.Now().UTC()
	u, err := ReconstructUser(UserData{ID: 3, Username: "sop", Role: "support", IsActive: true, CreatedAt: now})
	require.NoError(t, err)
	assert.True(t, u.IsStaff())
	assert.Equal(t, authorization.RoleSupport, u.Role())

	u.RecordLogin(now)
	require.NotNil(t, u.LastLoginAt())
}
