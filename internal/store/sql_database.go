package store

import (
	"database/sql"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/migrations"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Migrate applies all pending goose migrations. Server side only; the agent
// bootstraps its SQLite schema directly on connect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
