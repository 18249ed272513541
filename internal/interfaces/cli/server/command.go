package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/config"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/database"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/migration"
	httpServer "github.com/cerberus-dev/cerberus/internal/interfaces/http"
	"github.com/cerberus-dev/cerberus/internal/shared/biztime"
	sharedConfig "github.com/cerberus-dev/cerberus/internal/shared/config"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

const shutdownTimeout = 30 * time.Second

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Cerberus back office HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending database migrations on startup")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == gin.DebugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	config.Watch(func(e fsnotify.Event, lc sharedConfig.LoggerConfig) {
		logger.SetLevel(logger.ParseLevel(lc.Level))
		log.Infow("log level reloaded", "file", e.Name, "level", lc.Level)
	})

	if err := biztime.Init(cfg.App.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	log.Infow("starting server",
		"environment", env,
		"auto_migrate", autoMigrate,
		"admin_path", cfg.Server.GetAdminPath())

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Init(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := handleMigrations(db, log); err != nil {
		_ = database.Close()
		return fmt.Errorf("migration handling failed: %w", err)
	}

	if cfg.InternalAPI.APIKey == "" {
		log.Warnw("internal_api.api_key is empty, internal routes are closed")
	}

	container, err := httpServer.NewContainer(ctx, db, cfg, log)
	if err != nil {
		_ = database.Close()
		return err
	}
	container.SetupRoutes()
	container.StartScheduler()

	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           container.GetEngine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"base_url", cfg.Server.BaseURL,
			"mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Infow("shutting down server...")
	case err := <-serveErr:
		if err != nil {
			log.Errorw("server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		errs = append(errs, err)
	}
	if err := container.Shutdown(shutdownCtx); err != nil {
		log.Errorw("failed to release resources", "error", err)
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		log.Infow("server exited gracefully")
	}
	return errors.Join(errs...)
}

func handleMigrations(db *gorm.DB, log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	strategy := migration.NewGooseStrategy("mysql")

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment")
		}
		log.Infow("running auto-migration")
		if err := strategy.Migrate(db); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed successfully")
		return nil
	}

	version, err := strategy.GetVersion(db)
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
