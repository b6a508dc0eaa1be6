package api

import (
	"context"
	"net/http"

	"userhub/backend/internal/common"
	"userhub/backend/internal/models/entities"
)

// HealthReporter produces the three health reports.
type HealthReporter interface {
	Live() entities.HealthStatus
	Ready(ctx context.Context) entities.HealthStatus
	Comprehensive(ctx context.Context) entities.HealthStatus
}

// LivenessHandler handles GET /api/health/live
//
// @Summary Liveness probe
// @Description Reports that the process is running. Never checks dependencies.
// @Tags Health
// @Produce json
// @Success 200 {object} entities.HealthStatus
// @Router /api/health/live [get]
func LivenessHandler(reporter HealthReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, reporter.Live())
	}
}

// ReadinessHandler handles GET /api/health/ready
//
// @Summary Readiness probe
// @Description Checks the database. 503 when it is unreachable.
// @Tags Health
// @Produce json
// @Success 200 {object} entities.HealthStatus
// @Failure 503 {object} entities.HealthStatus
// @Router /api/health/ready [get]
func ReadinessHandler(reporter HealthReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, reporter.Ready(r.Context()))
	}
}

// HealthCheckHandler handles GET /api/health
//
// @Summary Comprehensive health check
// @Description Database check plus uptime, memory and service metadata.
// @Tags Health
// @Produce json
// @Success 200 {object} entities.HealthStatus
// @Failure 503 {object} entities.HealthStatus
// @Router /api/health [get]
func HealthCheckHandler(reporter HealthReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, reporter.Comprehensive(r.Context()))
	}
}

func writeHealth(w http.ResponseWriter, status entities.HealthStatus) {
	w.Header().Set("Cache-Control", "no-store")
	common.WriteJSON(w, healthStatusCode(status), status)
}

func healthStatusCode(status entities.HealthStatus) int {
	if status.Status == entities.StatusUp {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
