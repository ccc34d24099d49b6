package services

import (
	"fmt"
	"log"

	"github.com/fieldscope/inspection-worker/internal/config"
	"github.com/fieldscope/inspection-worker/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Store        string            `json:"store"`
	Origin       string            `json:"origin"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck verifies the local store and origin reachability. The
// worker is healthy offline; an unreachable origin is reported as a
// detail rather than a failure.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Store = "error"
		result.Details["store_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Local store error: %v", err)
		log.Printf("Health check failed - local store: %v", err)
	} else if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Store = "unreachable"
		result.Details["store_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Local store ping failed: %v", err)
		log.Printf("Health check failed - local store ping: %v", err)
	} else {
		result.Store = "ok"
		result.Details["store_path"] = cfg.DBPath
	}

	if err := utils.PingOrigin(cfg.OriginURL); err != nil {
		result.Origin = "offline"
		result.Details["origin_error"] = err.Error()
	} else {
		result.Origin = "ok"
	}

	return result
}
