package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mascot-logo-backend/internal/models"
)

// Allower is the admission check the middleware runs; satisfied by
// *ratelimit.Limiter.
type Allower interface {
	Allow(ctx context.Context, identity string, limit int) (bool, error)
}

// RateLimit rejects requests over the per-identity limit before the handler
// runs, so the expensive pipeline behind it is never invoked for a throttled
// client.
func RateLimit(limiter Allower, limit int, jwtSecret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := ClientIdentity(c, jwtSecret)

		allowed, err := limiter.Allow(c.Request.Context(), identity, limit)
		if err != nil {
			logger.Error("rate limiter unavailable", zap.String("identity", identity), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
				Status:  "error",
				Message: "rate limiter unavailable",
			})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Status:  "error",
				Message: "Rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
