package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todolists/internal/database"
)

// Version is reported by the detailed health check; set with -ldflags at build time
var Version = "1.0.0"

// HealthHandler handles health check requests. A nil db means the session
// backend is in use and database checks are skipped.
type HealthHandler struct {
	db        *gorm.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Version   string                 `json:"version"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// BasicHealth is a simple health check (backwards compatible)
func (h *HealthHandler) BasicHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// DetailedHealth provides comprehensive health information
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	checks := make(map[string]HealthCheck)
	overallStatus := "healthy"

	dbCheck := h.checkDatabase()
	checks["database"] = dbCheck
	if dbCheck.Status == "unhealthy" {
		overallStatus = "unhealthy"
	}

	checks["schema"] = h.checkSchema()

	// System information
	checks["system"] = h.getSystemInfo()

	// Calculate uptime
	uptime := time.Since(h.startTime)

	response := HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    formatDuration(uptime),
		Version:   Version,
		Checks:    checks,
	}

	// Return 503 if unhealthy
	if overallStatus == "unhealthy" {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ReadinessProbe checks if the application is ready to serve traffic
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	// Check if database is accessible
	dbCheck := h.checkDatabase()

	if dbCheck.Status == "unhealthy" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not_ready",
			"reason":  "database_unavailable",
			"message": dbCheck.Message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessProbe checks if the application is alive
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// checkDatabase verifies database connectivity
func (h *HealthHandler) checkDatabase() HealthCheck {
	if h.db == nil {
		return HealthCheck{
			Status:  "skipped",
			Message: "Session storage in use",
		}
	}

	// Get underlying SQL database
	sqlDB, err := h.db.DB()
	if err != nil {
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Failed to get database instance",
		}
	}

	// Ping database with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Database ping failed",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
	}

	// Get database stats
	stats := sqlDB.Stats()

	return HealthCheck{
		Status:  "healthy",
		Message: "Database connection is healthy",
		Details: map[string]interface{}{
			"open_connections":    stats.OpenConnections,
			"in_use":              stats.InUse,
			"idle":                stats.Idle,
			"wait_count":          stats.WaitCount,
			"wait_duration_ms":    stats.WaitDuration.Milliseconds(),
			"max_idle_closed":     stats.MaxIdleClosed,
			"max_lifetime_closed": stats.MaxLifetimeClosed,
		},
	}
}

// checkSchema verifies the lists and todos tables exist
func (h *HealthHandler) checkSchema() HealthCheck {
	if h.db == nil {
		return HealthCheck{
			Status:  "skipped",
			Message: "Session storage in use",
		}
	}

	migrator := h.db.Migrator()
	missing := make([]string, 0)
	for _, table := range database.Tables {
		if !migrator.HasTable(table) {
			missing = append(missing, table)
		}
	}

	if len(missing) > 0 {
		return HealthCheck{
			Status:  "warning",
			Message: "Schema is incomplete",
			Details: map[string]interface{}{
				"missing_tables": missing,
			},
		}
	}

	return HealthCheck{
		Status:  "healthy",
		Message: "Schema is present",
		Details: map[string]interface{}{
			"tables": database.Tables,
		},
	}
}

// getSystemInfo returns system information
func (h *HealthHandler) getSystemInfo() HealthCheck {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return HealthCheck{
		Status:  "info",
		Message: "System information",
		Details: map[string]interface{}{
			"goroutines":      runtime.NumGoroutine(),
			"memory_alloc_mb": m.Alloc / 1024 / 1024,
			"memory_sys_mb":   m.Sys / 1024 / 1024,
			"num_gc":          m.NumGC,
			"go_version":      runtime.Version(),
		},
	}
}

// formatDuration formats a duration into a human-readable string
func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
