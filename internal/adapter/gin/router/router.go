package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"invoice-service/api/swagger"
	"invoice-service/internal/adapter/gin/handler"
	"invoice-service/internal/adapter/gin/middleware"
	redisclient "invoice-service/pkg/redis"
	"invoice-service/pkg/token"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	authHandler *handler.AuthHandler,
	invoiceHandler *handler.InvoiceHandler,
	tokenMaker *token.Maker,
	redisClient *redisclient.Client,
	rateLimit middleware.RateLimitConfig,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	if redisClient != nil {
		router.Use(middleware.RateLimiter(redisClient.Client, rateLimit, log))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "invoice-service",
		})
	})

	// Swagger UI over the embedded API document. The JSON is served from the
	// same wildcard because gin does not allow a literal route next to it.
	swaggerUI := httpSwagger.Handler(httpSwagger.URL("/swagger/invoice.swagger.json"))
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/invoice.swagger.json" {
			c.Data(http.StatusOK, "application/json", swagger.Document)
			return
		}
		swaggerUI.ServeHTTP(c.Writer, c.Request)
	})

	// API routes; paths match the service's original external contract.
	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/generate-pdf", invoiceHandler.GeneratePDF)
			authRoutes.GET("/profile", middleware.RequireAuth(tokenMaker, log), authHandler.GetProfile)
		}

		api.GET("/invoices", middleware.RequireAuth(tokenMaker, log), invoiceHandler.ListInvoices)
	}

	return router
}
