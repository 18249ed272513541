package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/auth"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/repository"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

func newUserRepo(t *testing.T) user.Repository {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(&models.UserModel{}))
	return repository.NewUserRepository(gdb, logger.NewNopLogger())
}

func TestCreateAdmin(t *testing.T) {
	repo := newUserRepo(t)
	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	ctx := context.Background()

	u, err := createAdmin(ctx, repo, hasher, logger.NewNopLogger(), adminInput{
		Username: " root ", Email: "Root@CerberusDev.pro", Password: "supersecret", DisplayName: "Root",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID())

	stored, err := repo.GetByLogin(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, authorization.RoleAdmin, stored.Role())
	assert.Equal(t, "root@cerberusdev.pro", stored.Email())
	assert.NoError(t, hasher.Verify("supersecret", stored.PasswordHash()))
}

func TestCreateAdmin_Rejects(t *testing.T) {
	repo := newUserRepo(t)
	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	ctx := context.Background()
	log := logger.NewNopLogger()

	_, err := createAdmin(ctx, repo, hasher, log, adminInput{Username: "root", Email: "root@cerberusdev.pro", Password: "supersecret"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   adminInput
	}{
		{"duplicate username", adminInput{Username: "root", Email: "other@cerberusdev.pro", Password: "supersecret"}},
		{"duplicate email", adminInput{Username: "other", Email: "ROOT@cerberusdev.pro", Password: "supersecret"}},
		{"short password", adminInput{Username: "new", Email: "new@cerberusdev.pro", Password: "short"}},
		{"bad email", adminInput{Username: "new", Email: "nope", Password: "supersecret"}},
		{"blank username", adminInput{Username: "  ", Email: "new@cerberusdev.pro", Password: "supersecret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createAdmin(ctx, repo, hasher, log, tt.in)
			assert.Error(t, err)
		})
	}
}
