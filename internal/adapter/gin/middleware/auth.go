package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoice-service/pkg/token"
)

// claimsContextKey is the gin context key the verified claims are stored under.
const claimsContextKey = "authClaims"

// RequireAuth returns a middleware that rejects requests without a valid
// bearer token and stores the verified claims for downstream handlers.
func RequireAuth(maker *token.Maker, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header"})
			return
		}

		claims, err := maker.Verify(parts[1])
		if err != nil {
			log.Warn("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims set by RequireAuth, or nil
// when the request was not authenticated.
func ClaimsFromContext(c *gin.Context) *token.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}
