package health

import (
	"context"
	"fmt"
	"time"

	"userhub/backend/internal/constants"
	"userhub/backend/internal/logging"
	"userhub/backend/internal/metrics"
	"userhub/backend/internal/models/entities"
)

const (
	probeQueryType = "health_probe"

	// Used when the driver returns an error with no message.
	unknownProbeError = "database unavailable"
)

// Querier is the subset of *sqlx.DB the probe needs. The probe borrows the
// pool and never closes it.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// DatabaseProbe runs a single round trip against the database.
type DatabaseProbe struct {
	db      Querier
	metrics *metrics.MetricsRegistry
	now     func() time.Time
}

// NewDatabaseProbe creates a probe over db. metricsReg may be nil.
func NewDatabaseProbe(db Querier, metricsReg *metrics.MetricsRegistry) *DatabaseProbe {
	return &DatabaseProbe{
		db:      db,
		metrics: metricsReg,
		now:     time.Now,
	}
}

// Check issues SELECT 1 once, without retries. Any error becomes a DOWN
// result carrying the driver's error message.
func (p *DatabaseProbe) Check(ctx context.Context) entities.CheckResult {
	var one int

	start := p.now()
	err := p.db.GetContext(ctx, &one, constants.HealthProbeQuery)
	elapsed := p.now().Sub(start)

	p.observe(elapsed, err)

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = unknownProbeError
		}
		logging.Warn("Database health probe failed",
			"error", msg,
			"duration_ms", elapsed.Milliseconds(),
		)
		return entities.CheckResult{
			Status: entities.StatusDown,
			Error:  msg,
		}
	}

	return entities.CheckResult{
		Status:       entities.StatusUp,
		ResponseTime: fmt.Sprintf("%dms", elapsed.Milliseconds()),
	}
}

func (p *DatabaseProbe) observe(elapsed time.Duration, err error) {
	if p.metrics == nil {
		return
	}
	status := "up"
	if err != nil {
		status = "down"
	}
	p.metrics.DBQueriesTotal.WithLabelValues(probeQueryType, status).Inc()
	p.metrics.DBQueryDuration.WithLabelValues(probeQueryType).Observe(elapsed.Seconds())
}
