package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-service/cmd/api/infrastructure"
	"invoice-service/internal/adapter/cache"
	"invoice-service/internal/adapter/db/postgres"
	ginhandler "invoice-service/internal/adapter/gin/handler"
	"invoice-service/internal/adapter/render"
	"invoice-service/internal/adapter/repository/cached"
	"invoice-service/internal/config"
	"invoice-service/internal/usecase/auth"
	"invoice-service/internal/usecase/invoice"
	redisclient "invoice-service/pkg/redis"
	"invoice-service/pkg/token"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	RedisClient    *redisclient.Client
	TokenMaker     *token.Maker
	AuthUC         auth.Usecase
	InvoiceUC      invoice.Usecase
	AuthHandler    *ginhandler.AuthHandler
	InvoiceHandler *ginhandler.InvoiceHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis client
	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Initialize token maker
	tokenMaker, err := token.NewMaker(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLSeconds)*time.Second,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}

	// Initialize cache layer
	userCache := cache.NewRedisUserCache(
		rdb.Client,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		l,
	)

	// Initialize repositories
	userRepo := cached.NewCachedUserRepository(postgres.NewUserRepoPG(db, l), userCache, l)
	invoiceRepo := postgres.NewInvoiceRepoPG(db, l)

	// Initialize renderer
	renderer := render.NewChromeRenderer(
		time.Duration(cfg.Render.TimeoutSeconds)*time.Second,
		l,
	)

	// Initialize use cases
	authUC := auth.New(userRepo, tokenMaker, cfg.Auth.BcryptCost, l)
	invoiceUC := invoice.New(invoiceRepo, renderer, l)

	// Initialize Gin handlers
	authHandler := ginhandler.NewAuthHandler(authUC, l)
	invoiceHandler := ginhandler.NewInvoiceHandler(invoiceUC, l)

	return &Container{
		Config:         cfg,
		Logger:         l,
		DB:             db,
		RedisClient:    rdb,
		TokenMaker:     tokenMaker,
		AuthUC:         authUC,
		InvoiceUC:      invoiceUC,
		AuthHandler:    authHandler,
		InvoiceHandler: invoiceHandler,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
