package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/shopfloor/internal/config"
	"github.com/localnerve/shopfloor/internal/storage"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Storage      string            `json:"storage"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(message string, err error) {
	r.Status = "unhealthy"
	msg := fmt.Sprintf("%s: %v", message, err)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage += "; " + msg
	}
	log.Printf("Health check failed - %s", msg)
}

// HealthCheck checks database and storage reachability.
// A nil store is skipped.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, store storage.Store) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.fail("Database connection error", err)
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.fail("Database ping failed", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
	}

	if store == nil {
		result.Storage = "skipped"
	} else if err := store.Ping(ctx); err != nil {
		result.Storage = "unreachable"
		result.Details["storage_error"] = err.Error()
		result.fail("Storage ping failed", err)
	} else {
		result.Storage = "ok"
		result.Details["storage_backend"] = store.Name()
	}

	return result
}
