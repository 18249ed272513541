package http

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/auth"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/cache"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/config"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/email"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/permission"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/pubsub"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/scheduler"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/services"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/interfaces/http/middleware"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services. It wires everything together and
// provides Shutdown for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Auth
	sessionCookie *auth.SessionCookie
	sessionStore  *cache.SessionStore
	resetTokens   *auth.ResetTokenService
	hasher        *auth.BcryptPasswordHasher
	enforcer      *permission.Enforcer

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	loginLimiter         *middleware.RateLimiter
	contactLimiter       *middleware.RateLimiter
	commentLimiter       *middleware.RateLimiter

	// Mail and side effects
	emailService *email.Service
	effects      *sideeffect.AsyncRunner

	// Storage
	scanner *storage.Scanner
	uploads *storage.FileStore

	// Realtime
	ticketHub         *services.TicketHub
	ticketBus         *pubsub.RedisTicketEventBus
	ticketBusCancel   context.CancelFunc
	ticketBusCancelMu sync.Mutex

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer builds the whole object graph. db must already be open;
// Redis is dialled here.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, policy, repositories
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}

	// Section 2: Mail, uploads and side effects
	if err := c.initSupport(); err != nil {
		return nil, err
	}

	// Section 3: Ticket rooms and the cross-instance bus
	c.initRealtime()

	// Section 4: Use cases
	if err := c.initUseCases(); err != nil {
		return nil, err
	}

	// Section 5: Scheduled storage scans
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	// Section 6: Middlewares and handlers
	c.initMiddlewares()
	c.initHandlers()

	return c, nil
}
