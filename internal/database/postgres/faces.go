package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kozaktomas/name-that-face/internal/database"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/lib/pq"
)

const selectFaces = `
	SELECT f.id::text, f.name, f.latitude, f.longitude, i.data
	FROM faces f
	JOIN face_images i ON i.face_id = f.id
`

// uniqueViolation is the SQLSTATE for duplicate primary keys.
const uniqueViolation = "23505"

// ErrDuplicateID is returned when inserting a face whose ID is already stored.
var ErrDuplicateID = errors.New("face id already exists")

// FaceRepository provides PostgreSQL-backed face storage
type FaceRepository struct {
	pool *Pool
}

// NewFaceRepository creates a new PostgreSQL face repository
func NewFaceRepository(pool *Pool) *FaceRepository {
	return &FaceRepository{pool: pool}
}

// Insert stores the face row and its image in one transaction
func (r *FaceRepository) Insert(ctx context.Context, f face.Face) error {
	if err := f.CheckStorable(); err != nil {
		return database.Wrap("insert", err)
	}

	tx, err := r.pool.db.BeginTx(ctx, nil)
	if err != nil {
		return database.Wrap("insert", fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	lat, lng := database.NullCoordinates(f)
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO faces (id, name, latitude, longitude) VALUES ($1, $2, $3, $4)",
		f.ID.String(), f.Name, lat, lng,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			err = fmt.Errorf("%w: %s", ErrDuplicateID, f.ID)
		}
		return database.Wrap("insert", fmt.Errorf("insert face: %w", err))
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO face_images (face_id, data) VALUES ($1, $2)",
		f.ID.String(), f.Image,
	); err != nil {
		return database.Wrap("insert", fmt.Errorf("insert face image: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return database.Wrap("insert", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// List returns all faces ordered by name
func (r *FaceRepository) List(ctx context.Context) ([]face.Face, error) {
	rows, err := r.pool.db.QueryContext(ctx, selectFaces+` ORDER BY lower(f.name) COLLATE "C", f.id`)
	if err != nil {
		return nil, database.Wrap("list", fmt.Errorf("query faces: %w", err))
	}
	faces, err := database.ScanFaces(rows)
	if err != nil {
		return nil, database.Wrap("list", err)
	}
	return faces, nil
}

// Get retrieves a face by ID, returns nil if not found
func (r *FaceRepository) Get(ctx context.Context, id uuid.UUID) (*face.Face, error) {
	var row database.FaceRow
	err := r.pool.db.QueryRowContext(ctx, selectFaces+" WHERE f.id = $1", id.String()).Scan(
		&row.ID, &row.Name, &row.Latitude, &row.Longitude, &row.Image,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Wrap("get", fmt.Errorf("get face: %w", err))
	}

	f, err := row.ToFace()
	if err != nil {
		return nil, database.Wrap("get", err)
	}
	return &f, nil
}

// Count returns the total number of faces stored
func (r *FaceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM faces").Scan(&count); err != nil {
		return 0, database.Wrap("count", fmt.Errorf("count faces: %w", err))
	}
	return count, nil
}

// Delete removes a face; the image row goes with it through ON DELETE CASCADE.
// Deleting an unknown ID is not an error.
func (r *FaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.db.ExecContext(ctx, "DELETE FROM faces WHERE id = $1", id.String()); err != nil {
		return database.Wrap("delete", fmt.Errorf("delete face: %w", err))
	}
	return nil
}

// Close closes the underlying pool
func (r *FaceRepository) Close() error {
	return r.pool.Close()
}
