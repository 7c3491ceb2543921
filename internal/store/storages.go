package store

import (
	"context"
	"fmt"

	"github.com/quickflicks/quickflicks/internal/config"
	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/migrations"
)

// Storages bundles every repository backed by the shared database handle.
type Storages struct {
	AccountRepository    AccountRepository
	SessionRepository    SessionRepository
	ResetTokenRepository ResetTokenRepository
	ShelfRepository      ShelfRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations and wires
// all repositories onto the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = migrations.Migrate(db.DB); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		AccountRepository:    NewAccountRepository(db, log),
		SessionRepository:    NewSessionRepository(db, log),
		ResetTokenRepository: NewResetTokenRepository(db, log),
		ShelfRepository:      NewShelfRepository(db, log),
		db:                   db,
	}, nil
}

// Close releases the underlying database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
