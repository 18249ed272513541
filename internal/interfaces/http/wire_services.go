package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/auth"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/cache"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/email"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/permission"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/pubsub"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/ratelimit"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/scheduler"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/services"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/goroutine"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

const (
	sideEffectTimeout = 30 * time.Second
	commentRateLimit  = 5
	commentRateWindow = 10 * time.Minute
)

// ============================================================
// Section 1: Infrastructure - Redis, policy, repositories
// ============================================================

// initInfrastructure dials Redis, loads the capability policy and creates
// the repositories and session services.
func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg

	client, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	c.redis = client
	c.log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	enforcer, err := permission.NewEnforcer(c.db, cfg.Auth.PolicyModel, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize policy enforcer: %w", err)
	}
	seeded, err := enforcer.SeedDefaults()
	if err != nil {
		return fmt.Errorf("failed to seed default policy: %w", err)
	}
	if seeded > 0 {
		c.log.Infow("default capability policy seeded", "rules", seeded)
	}
	c.enforcer = enforcer

	c.repos = newRepositories(c.db, c.log)

	c.sessionCookie = auth.NewSessionCookie(cfg.Auth.Session)
	c.sessionStore = cache.NewSessionStore(client, cfg.Auth.Session.TTL())
	c.resetTokens = auth.NewResetTokenService(cfg.Auth.ResetToken.Secret, cfg.Auth.ResetToken.TTLMinutes)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)

	return nil
}

// ============================================================
// Section 2: Mail, uploads and side effects
// ============================================================

func (c *Container) initSupport() error {
	cfg := c.cfg

	renderer, err := email.NewRenderer(cfg.App.Name, c.repos.emailTemplateRepo, c.log)
	if err != nil {
		return fmt.Errorf("failed to load email templates: %w", err)
	}
	mailer := email.NewSMTPMailer(email.SMTPConfigFrom(cfg.Email))
	c.emailService = email.NewService(mailer, renderer, c.repos.emailLogRepo, cfg.Email.AdminEmail, cfg.Email.BulkWorkers, c.log)
	if cfg.Email.AdminEmail == "" {
		c.log.Warnw("email.admin_email is not set, admin alerts will be skipped")
	}

	c.effects = sideeffect.NewAsyncRunner(c.log, sideEffectTimeout)

	c.scanner = storage.NewScanner()
	c.uploads = storage.NewFileStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix, cfg.Uploads.MaxBytes)

	return nil
}

// ============================================================
// Section 3: Ticket rooms and the cross-instance bus
// ============================================================

// initRealtime creates the ticket hub and subscribes it to events
// published by other instances.
func (c *Container) initRealtime() {
	c.ticketBus = pubsub.NewRedisTicketEventBus(c.redis, c.log)
	c.ticketHub = services.NewTicketHub(c.ticketBus, c.log)

	busCtx, cancel := context.WithCancel(context.Background())
	c.ticketBusCancelMu.Lock()
	c.ticketBusCancel = cancel
	c.ticketBusCancelMu.Unlock()

	goroutine.SafeGo(c.log, "ticket-event-subscriber", func() {
		if err := c.ticketHub.Run(busCtx, c.ticketBus); err != nil {
			logSubscriberExit(c.log, "ticket event subscriber", err)
		}
	})
	c.log.Infow("ticket event bus started", "instance_id", c.ticketBus.InstanceID())
}

// ============================================================
// Section 5: Scheduled storage scans
// ============================================================

func (c *Container) initScheduler() error {
	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterStorageScanJob(c.ucs.scanStorage, c.cfg.Storage.ScanInterval()); err != nil {
		return fmt.Errorf("failed to register storage scan job: %w", err)
	}
	c.schedulerManager = manager
	return nil
}

// ============================================================
// Section 6: Middlewares
// ============================================================

func (c *Container) initMiddlewares() {
	cfg := c.cfg
	limiter := ratelimit.NewRedisRateLimiter(c.redis)

	c.authMiddleware = middleware.NewAuthMiddleware(c.sessionCookie, c.sessionStore, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)

	c.loginLimiter = middleware.NewRateLimiter(limiter, "login", ratelimit.Rule{
		Limit:  cfg.Auth.LoginLimit.Limit,
		Window: time.Duration(cfg.Auth.LoginLimit.WindowMinutes) * time.Minute,
	}, c.log)
	c.contactLimiter = middleware.NewRateLimiter(limiter, "contact", ratelimit.Rule{
		Limit:  cfg.Auth.ContactRate.Limit,
		Window: time.Duration(cfg.Auth.ContactRate.WindowMinutes) * time.Minute,
	}, c.log)
	c.commentLimiter = middleware.NewRateLimiter(limiter, "comment", ratelimit.Rule{
		Limit:  commentRateLimit,
		Window: commentRateWindow,
	}, c.log)
}

// logSubscriberExit logs a subscriber exit at the appropriate level.
// Context cancellation during shutdown is expected and logged at INFO;
// unexpected errors are logged at ERROR.
func logSubscriberExit(log logger.Interface, name string, err error) {
	if errors.Is(err, context.Canceled) {
		log.Infow(name+" stopped", "reason", "context canceled")
		return
	}
	log.Errorw(name+" failed", "error", err)
}
