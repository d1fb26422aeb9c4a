package postgres

import (
	"context"
	"embed"
	"io/fs"

	"github.com/kozaktomas/name-that-face/internal/database"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var dialect = database.Dialect{
	CreateTable: `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`,
	Record: "INSERT INTO schema_migrations (version) VALUES ($1)",
}

// Migrate applies all pending migrations automatically on startup
func (p *Pool) Migrate(ctx context.Context) error {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return database.Wrap("migrate", err)
	}
	return database.Migrate(ctx, p.db, sub, dialect)
}

// MigrationsApplied returns the list of applied migrations
func (p *Pool) MigrationsApplied(ctx context.Context) ([]string, error) {
	return database.MigrationsApplied(ctx, p.db)
}
