package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todolists/internal/logging"
)

// RequestLogger is a middleware that logs HTTP requests with detailed information
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		logEntry := logging.Logger.WithFields(logrus.Fields{
			"client_ip": c.ClientIP(),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"query":     c.Request.URL.RawQuery,
		})

		if userAgent := c.GetHeader("User-Agent"); userAgent != "" {
			logEntry = logEntry.WithField("user_agent", userAgent)
		}

		c.Next()

		statusCode := c.Writer.Status()
		logEntry = logEntry.WithFields(logrus.Fields{
			"status":        statusCode,
			"latency_ms":    time.Since(startTime).Milliseconds(),
			"response_size": c.Writer.Size(),
		})

		// Session is bound further down the chain, so read it after Next
		if id := c.GetString(ContextKeySessionID); id != "" {
			// Log only the first 8 characters of the cookie value
			logEntry = logEntry.WithField("session_prefix", truncate(id, 8))
		}

		if len(c.Errors) > 0 {
			logEntry = logEntry.WithField("errors", c.Errors.String())
		}

		if statusCode == http.StatusTooManyRequests {
			logEntry = logEntry.WithField("rate_limited", true)
		}

		switch {
		case statusCode >= 500:
			logEntry.Error("Server error")
		case statusCode >= 400:
			logEntry.Warn("Client error")
		case statusCode >= 300:
			logEntry.Info("Redirect")
		default:
			logEntry.Info("Request completed")
		}
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
