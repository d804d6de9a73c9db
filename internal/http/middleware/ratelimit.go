// README: Per-caller fixed-window rate limiting middleware.
package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"nosh/internal/ratelimit"
)

// RateLimit enforces the shared Redis window per caller+route. A counter
// failure fails open: throttling is protection, not authorization.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		caller := CallerUID(c)
		if caller == "" {
			caller = c.ClientIP()
		}
		ok, err := limiter.Allow(c.Request.Context(), ratelimit.Key(caller, c.FullPath()))
		if err != nil {
			log.Printf("ratelimit: %v", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
