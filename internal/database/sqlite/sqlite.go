// Package sqlite implements the face store on an embedded SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/constants"
	"github.com/kozaktomas/name-that-face/internal/database"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/mattn/go-sqlite3"
)

// driverName is go-sqlite3 with the FACE_NAME collation registered on every connection.
const driverName = "sqlite3_faces"

//go:embed migrations/*.sql
var migrationsFS embed.FS

var dialect = database.Dialect{
	CreateTable: `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`,
	Record: "INSERT INTO schema_migrations (version) VALUES (?)",
}

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterCollation("FACE_NAME", face.CompareNames)
		},
	})

	database.Register("sqlite", func(ctx context.Context, cfg *config.DatabaseConfig) (database.Store, error) {
		pool, err := NewPool(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		if err := pool.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return NewFaceRepository(pool), nil
	})
}

// Pool wraps the SQLite handle.
type Pool struct {
	db *sql.DB
}

// dsn turns a file path into a go-sqlite3 DSN with foreign keys and WAL enabled.
func dsn(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
}

// NewPool opens (creating if needed) the database file at path.
func NewPool(ctx context.Context, path string) (*Pool, error) {
	if path == "" {
		return nil, errors.New("sqlite database path is required")
	}
	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(driverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// The store is single-writer; one connection avoids SQLITE_BUSY between pooled handles.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, constants.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Pool{db: db}, nil
}

// DB returns the underlying sql.DB for direct access.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Close closes the database handle.
func (p *Pool) Close() error {
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			return fmt.Errorf("closing database connection: %w", err)
		}
	}
	return nil
}

// Migrate applies all pending migrations.
func (p *Pool) Migrate(ctx context.Context) error {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return database.Wrap("migrate", err)
	}
	return database.Migrate(ctx, p.db, sub, dialect)
}
