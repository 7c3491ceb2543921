// Package migrations embeds the SQL schema (accounts, groups, sessions,
// reset tokens, saved items) and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schemaFS embed.FS

// Migrate brings the connected database up to the latest schema version.
// Running it against an already-current database is a no-op, so the server
// calls it unconditionally on every start.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(schemaFS)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("error setting migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("error applying schema migrations: %w", err)
	}

	return nil
}
