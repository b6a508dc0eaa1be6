package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"userhub/backend/internal/logging"
)

const (
	connectAttempts = 10
	connectBackoff  = 500 * time.Millisecond
)

// InitPostgres opens the shared connection pool. The database may still be
// starting when the server boots, so the connection is retried.
func InitPostgres(dsn string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	for i := 0; i < connectAttempts; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxOpenConns(10)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(30 * time.Minute)
			return db, nil
		}
		logging.Warn("Postgres not ready, retrying",
			"attempt", i+1,
			"error", err.Error(),
		)
		time.Sleep(connectBackoff)
	}
	return nil, fmt.Errorf("connect to postgres after %d attempts: %w", connectAttempts, err)
}
