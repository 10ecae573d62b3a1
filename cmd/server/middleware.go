package main

import (
	"fmt"
	"time"

	"codeberg.org/geniusgpt/server/internal/errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// requests per minute per client across the whole API
const rateLimitFormat = "60-M"

// configures cross-origin access for the web frontend
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// builds a redis-backed per-IP rate limiter for the API
func RateLimitMiddleware(redisClient *redis.Client) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(rateLimitFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit: %w", err)
	}

	store, err := sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{
		Prefix:   "geniusgpt:ratelimit",
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	middleware := mgin.NewMiddleware(
		limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "")
		}),
	)

	return middleware, nil
}
