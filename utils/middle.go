package utils

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// AuthMiddleware verifies JWT and sets user context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		claims, err := VerifyToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Set("username", claims.Username)
		c.Set("user_id", claims.UserId)
		c.Next()
	}
}

// UploadRateLimiter throttles uploads per user with a token bucket.
func UploadRateLimiter(r float64, burst int) gin.HandlerFunc {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if r > 0 {
		limit = rate.Limit(r)
	}
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		userID, _ := c.MustGet("user_id").(string)
		mu.Lock()
		limiter, ok := limiters[userID]
		if !ok {
			limiter = rate.NewLimiter(limit, burst)
			limiters[userID] = limiter
		}
		mu.Unlock()
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many uploads"})
			c.Abort()
			return
		}
		c.Next()
	}
}
