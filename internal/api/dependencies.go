package api

import (
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"userhub/backend/internal/common"
	"userhub/backend/internal/config"
	"userhub/backend/internal/db/repositories"
	"userhub/backend/internal/health"
	"userhub/backend/internal/metrics"
	"userhub/backend/internal/models/entities"
	"userhub/backend/internal/services"
)

type Repositories struct {
	User *repositories.UserRepositoryGORM
}

type Services struct {
	Cache  common.CacheInterface
	User   *services.UserService
	Health *health.Aggregator
}

type Dependencies struct {
	Config   *config.Config
	Metrics  *metrics.MetricsRegistry
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services. The caller owns the
// pools; startedAt is the process start time reported as uptime.
func InitDependencies(cfg *config.Config, pool *sqlx.DB, orm *gorm.DB, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry, startedAt time.Time) *Dependencies {
	repos := &Repositories{
		User: repositories.NewUserRepositoryGORM(orm),
	}

	serviceInfo := entities.ServiceInfo{
		Name:        cfg.ServiceName,
		Version:     cfg.ServiceVersion,
		Environment: cfg.Environment,
		GoVersion:   runtime.Version(),
	}

	svcs := &Services{
		Cache:  cache,
		User:   services.NewUserService(repos.User, cache, cfg.CacheTTL, metricsReg),
		Health: health.NewAggregator(health.NewDatabaseProbe(pool, metricsReg), serviceInfo, startedAt),
	}

	return &Dependencies{
		Config:   cfg,
		Metrics:  metricsReg,
		Repo:     repos,
		Services: svcs,
	}
}
