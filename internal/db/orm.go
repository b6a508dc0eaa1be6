package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitPostgresORM wraps the existing pool in GORM so both share one set of
// connections.
func InitPostgresORM(pool *sqlx.DB, production bool) (*gorm.DB, error) {
	logLevel := logger.Info
	if production {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: pool.DB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm on postgres pool: %w", err)
	}
	return db, nil
}
