// Package worker runs background jobs outside the HTTP server, for hosts
// that drive them from cron instead of the built-in scheduler.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cerberus-dev/cerberus/internal/application/clientservice/usecases"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/config"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/database"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/email"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/repository"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/biztime"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

const (
	scanTimeout  = 30 * time.Minute
	drainTimeout = 2 * time.Minute
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run background jobs once",
	}
	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(&cobra.Command{
		Use:   "scan-storage",
		Short: "Measure every monitored client folder and send due alerts",
		RunE:  runScanStorage,
	})
	return cmd
}

func runScanStorage(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger().Named("worker.scan-storage")

	if err := biztime.Init(cfg.App.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.Init(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	renderer, err := email.NewRenderer(cfg.App.Name, repository.NewEmailTemplateRepository(db), log)
	if err != nil {
		return fmt.Errorf("failed to load email templates: %w", err)
	}
	mailer := email.NewSMTPMailer(email.SMTPConfigFrom(cfg.Email))
	emails := email.NewService(mailer, renderer, repository.NewEmailLogRepository(db), cfg.Email.AdminEmail, cfg.Email.BulkWorkers, log)
	effects := sideeffect.NewAsyncRunner(log, time.Minute)

	scan := usecases.NewScanStorageUseCase(
		repository.NewClientServiceRepository(db),
		repository.NewUserRepository(db, log),
		repository.NewNotificationRepository(db),
		storage.NewScanner(),
		emails, effects,
		cfg.Storage.AlertCooldown(), cfg.App.PortalURL, log,
	)

	scanCtx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	start := time.Now()
	scanned, scanErr := scan.Execute(scanCtx)

	// Alerts are dispatched asynchronously; let them finish before exit.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), drainTimeout)
	defer drainCancel()
	if err := effects.Wait(drainCtx); err != nil {
		log.Warnw("alerts still pending at exit", "error", err)
	}

	if scanErr != nil {
		return fmt.Errorf("storage scan failed: %w", scanErr)
	}
	log.Infow("storage scan finished", "services", scanned, "duration", time.Since(start).String())
	return nil
}
