package health

import (
	"context"
	"math"
	"time"

	"userhub/backend/internal/models/entities"
)

// CheckDatabase is the key of the database check in HealthStatus.Checks.
const CheckDatabase = "database"

// timestampLayout matches JavaScript's Date.toISOString on UTC times.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Prober runs one dependency check.
type Prober interface {
	Check(ctx context.Context) entities.CheckResult
}

// Aggregator builds the three health reports. It is safe for concurrent use;
// its only state is fixed at construction.
type Aggregator struct {
	database  Prober
	service   entities.ServiceInfo
	startedAt time.Time

	now    func() time.Time
	memory func() MemorySnapshot
}

// NewAggregator creates an Aggregator. startedAt is the process start time
// used for uptime.
func NewAggregator(database Prober, service entities.ServiceInfo, startedAt time.Time) *Aggregator {
	return &Aggregator{
		database:  database,
		service:   service,
		startedAt: startedAt,
		now:       time.Now,
		memory:    ReadMemory,
	}
}

// Live reports that the process is up. It checks nothing.
func (a *Aggregator) Live() entities.HealthStatus {
	return entities.HealthStatus{
		Status:    entities.StatusUp,
		Timestamp: a.timestamp(),
	}
}

// Ready probes the database once.
func (a *Aggregator) Ready(ctx context.Context) entities.HealthStatus {
	checks := a.runChecks(ctx)
	return entities.HealthStatus{
		Status:    Overall(checks),
		Timestamp: a.timestamp(),
		Checks:    checks,
	}
}

// Comprehensive probes the database once and adds service metadata,
// uptime and a memory snapshot.
func (a *Aggregator) Comprehensive(ctx context.Context) entities.HealthStatus {
	now := a.now()
	uptime := math.Max(now.Sub(a.startedAt).Seconds(), 0)
	mem := a.memory()
	service := a.service

	checks := a.runChecks(ctx)

	return entities.HealthStatus{
		Status:    Overall(checks),
		Timestamp: now.UTC().Format(timestampLayout),
		Service:   &service,
		Uptime: &entities.UptimeInfo{
			Seconds:   int64(uptime),
			Formatted: FormatUptime(uptime),
		},
		Memory: &entities.MemoryInfo{
			HeapUsed:  FormatBytes(mem.HeapUsed),
			HeapTotal: FormatBytes(mem.HeapTotal),
			RSS:       FormatBytes(mem.RSS),
			External:  FormatBytes(mem.External),
		},
		Checks: checks,
	}
}

func (a *Aggregator) runChecks(ctx context.Context) map[string]entities.CheckResult {
	return map[string]entities.CheckResult{
		CheckDatabase: a.database.Check(ctx),
	}
}

func (a *Aggregator) timestamp() string {
	return a.now().UTC().Format(timestampLayout)
}

// Overall is DOWN if any check is DOWN, UP otherwise.
func Overall(checks map[string]entities.CheckResult) entities.Status {
	for _, c := range checks {
		if c.Status == entities.StatusDown {
			return entities.StatusDown
		}
	}
	return entities.StatusUp
}
