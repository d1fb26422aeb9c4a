package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
)

// Dialect holds the backend-specific statements the migration runner needs.
type Dialect struct {
	// CreateTable creates the schema_migrations bookkeeping table
	CreateTable string
	// Record inserts one applied version; it takes a single bind parameter
	Record string
}

// getAppliedMigrations returns a set of already-applied migration versions.
func getAppliedMigrations(ctx context.Context, db *sql.DB, d Dialect) (map[string]bool, error) {
	if _, err := db.ExecContext(ctx, d.CreateTable); err != nil {
		return nil, fmt.Errorf("create migrations table: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations: %w", err)
	}
	return applied, nil
}

// getPendingMigrationFiles returns sorted SQL migration filenames not yet applied.
func getPendingMigrationFiles(fsys fs.FS, applied map[string]bool) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") && !applied[e.Name()] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Migrate applies all pending migrations found at the root of fsys, each in its own transaction.
func Migrate(ctx context.Context, db *sql.DB, fsys fs.FS, d Dialect) error {
	applied, err := getAppliedMigrations(ctx, db, d)
	if err != nil {
		return Wrap("migrate", err)
	}

	files, err := getPendingMigrationFiles(fsys, applied)
	if err != nil {
		return Wrap("migrate", err)
	}

	for _, file := range files {
		if err := applyMigration(ctx, db, fsys, d, file); err != nil {
			return Wrap("migrate", err)
		}
		log.Printf("Applied migration: %s", file)
	}

	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, fsys fs.FS, d Dialect, file string) error {
	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", file, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction for %s: %w", file, err)
	}

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("execute migration %s: %w", file, err)
	}

	if _, err := tx.ExecContext(ctx, d.Record, file); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", file, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", file, err)
	}
	return nil
}

// MigrationsApplied returns the list of applied migrations
func MigrationsApplied(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, Wrap("migrate", fmt.Errorf("query applied migrations: %w", err))
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, Wrap("migrate", fmt.Errorf("scan migration version: %w", err))
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap("migrate", fmt.Errorf("iterate migration versions: %w", err))
	}
	return versions, nil
}
