package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"invoice-service/cmd/api/di"
	"invoice-service/internal/adapter/gin/middleware"
	ginrouter "invoice-service/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the Gin REST API server. The write
// timeout leaves headroom for a full PDF render pass.
func SetupGinServer(c *di.Container, addr string, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(
		c.AuthHandler,
		c.InvoiceHandler,
		c.TokenMaker,
		c.RedisClient,
		middleware.RateLimitConfig{
			Enabled:           c.Config.RateLimit.Enabled,
			RequestsPerSecond: c.Config.RateLimit.RequestsPerSecond,
			BurstCapacity:     c.Config.RateLimit.BurstCapacity,
		},
		l,
	)

	l.Info("Gin REST API configured", zap.String("address", addr))

	writeTimeout := time.Duration(c.Config.Render.TimeoutSeconds+10) * time.Second

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}
