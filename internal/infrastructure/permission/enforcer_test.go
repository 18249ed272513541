package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	e, err := NewEnforcer(db, "", logger.NewNopLogger())
	require.NoError(t, err)
	return e, db
}

func TestEnforcer_SeedDefaultsMatchesStaticPolicy(t *testing.T) {
	e, _ := newTestEnforcer(t)

	n, err := e.SeedDefaults()
	require.NoError(t, err)
	assert.Equal(t, len(authorization.DefaultCapabilities()), n)

	static := authorization.NewStaticPolicy(authorization.DefaultCapabilities())
	ctx := context.Background()
	for _, role := range authorization.AllRoles() {
		for _, res := range []authorization.Resource{
			authorization.ResourceTicket, authorization.ResourceTicketInternal,
			authorization.ResourceLead, authorization.ResourceStorage,
			authorization.ResourceUser, authorization.ResourceContent,
		} {
			for _, act := range []authorization.Action{
				authorization.ActionRead, authorization.ActionWrite,
				authorization.ActionAssign, authorization.ActionClose,
			} {
				assert.Equal(t, static.Can(ctx, role, res, act), e.Can(ctx, role, res, act),
					"%s %s %s", role, res, act)
			}
		}
	}

	again, err := e.SeedDefaults()
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestEnforcer_PolicyPersists(t *testing.T) {
	e, db := newTestEnforcer(t)
	ctx := context.Background()

	assert.False(t, e.Can(ctx, authorization.RoleClient, authorization.ResourceLead, authorization.ActionRead))
	require.NoError(t, e.AddPolicy("client", "lead", "read"))
	assert.True(t, e.Can(ctx, authorization.RoleClient, authorization.ResourceLead, authorization.ActionRead))

	reloaded, err := NewEnforcer(db, "", logger.NewNopLogger())
	require.NoError(t, err)
	assert.True(t, reloaded.Can(ctx, authorization.RoleClient, authorization.ResourceLead, authorization.ActionRead))

	rules, err := reloaded.PoliciesForRole("client")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"lead", "read"}}, rules)

	require.NoError(t, e.RemovePolicy("client", "lead", "read"))
	assert.False(t, e.Can(ctx, authorization.RoleClient, authorization.ResourceLead, authorization.ActionRead))
}
