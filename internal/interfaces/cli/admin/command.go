// Package admin holds operator commands that act on accounts directly.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cerberus-dev/cerberus/internal/domain/user"
	vo "github.com/cerberus-dev/cerberus/internal/domain/user/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/auth"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/config"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/database"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/repository"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

const minPasswordLength = 8

var (
	env         string
	username    string
	email       string
	password    string
	displayName string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Account administration",
	}
	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		Long:  `Create the first administrator, or another one, without going through the API.`,
		RunE:  runCreate,
	}
	create.Flags().StringVar(&username, "username", "", "Login name (required)")
	create.Flags().StringVar(&email, "email", "", "Email address (required)")
	create.Flags().StringVar(&password, "password", "", "Initial password (required)")
	create.Flags().StringVar(&displayName, "name", "", "Display name")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}

type adminInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

func runCreate(cmd *cobra.Command, args []string) error {
	in := adminInput{Username: username, Email: email, Password: password, DisplayName: displayName}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.Init(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	u, err := createAdmin(ctx, repository.NewUserRepository(db, log), auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost), log, in)
	if err != nil {
		return err
	}
	fmt.Printf("Administrator %s created (id %d)\n", u.Username(), u.ID())
	return nil
}

func createAdmin(ctx context.Context, repo user.Repository, hasher user.PasswordHasher, log logger.Interface, in adminInput) (*user.User, error) {
	uname := strings.TrimSpace(in.Username)
	if uname == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	mail, err := vo.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	exists, err := repo.ExistsByUsernameOrEmail(ctx, uname, mail)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("a user with username %q or email %q already exists", uname, mail)
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u, err := user.NewUser(uname, mail, in.DisplayName, authorization.RoleAdmin, hash)
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	log.Infow("administrator created", "user_id", u.ID(), "username", uname)
	return u, nil
}
