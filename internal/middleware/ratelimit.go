package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"todolists/internal/config"
	"todolists/internal/logging"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int64
}

// NewRateLimitConfigFromEnv creates rate limit config from environment variables
func NewRateLimitConfigFromEnv() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled:        config.GetEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerMin: int64(config.GetEnvInt("RATE_LIMIT_REQUESTS_PER_MIN", 60)),
	}
}

// GlobalRateLimiter limits every request by client IP
func GlobalRateLimiter(cfg *RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		logging.Logger.Info("Rate limiting is disabled")
		return passThrough
	}

	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  cfg.RequestsPerMin,
	}

	logging.Logger.Infof("Rate limiting enabled: %d requests per minute", cfg.RequestsPerMin)
	return newRateLimiter(rate, "global", "Too many requests. Please try again later.", nil)
}

// ReadRateLimiter creates a rate limiter for read operations (GET requests)
func ReadRateLimiter(cfg *RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}

	// Read operations can have higher limits
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  cfg.RequestsPerMin * 2,
	}
	return newRateLimiter(rate, "read", "Too many read requests. Please try again later.", nil)
}

// WriteRateLimiter creates a stricter rate limiter for form posts. Requests are
// counted per session when one is bound, so clients behind one NAT do not share
// a budget.
func WriteRateLimiter(cfg *RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}

	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  max(cfg.RequestsPerMin/2, 1),
	}
	return newRateLimiter(rate, "write", "Too many write requests. Please try again later.", sessionOrIPKey)
}

func sessionOrIPKey(c *gin.Context) string {
	if id := c.GetString(ContextKeySessionID); id != "" {
		return "session:" + id
	}
	return "ip:" + c.ClientIP()
}

func newRateLimiter(rate limiter.Rate, limitType, message string, keyGetter mgin.KeyGetter) gin.HandlerFunc {
	instance := limiter.New(memory.NewStore(), rate)

	options := []mgin.Option{
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logging.Logger.WithFields(map[string]interface{}{
				"client_ip":     c.ClientIP(),
				"path":          c.Request.URL.Path,
				"method":        c.Request.Method,
				"rate_limited":  true,
				"limit_type":    limitType,
				"limit_per_min": rate.Limit,
			}).Warn("Rate limit exceeded")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    message,
				"retryAfter": int(rate.Period.Seconds()),
				"limit":      rate.Limit,
			})
			c.Abort()
		}),
	}
	if keyGetter != nil {
		options = append(options, mgin.WithKeyGetter(keyGetter))
	}

	return mgin.NewMiddleware(instance, options...)
}

func passThrough(c *gin.Context) {
	c.Next()
}
