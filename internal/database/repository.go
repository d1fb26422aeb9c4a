package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/kozaktomas/name-that-face/internal/face"
)

// FaceReader provides read-only access to the face collection
type FaceReader interface {
	// List returns every stored face ordered by name ascending (ties broken by ID)
	List(ctx context.Context) ([]face.Face, error)
	// Get retrieves a face by ID, returns nil if not found
	Get(ctx context.Context, id uuid.UUID) (*face.Face, error)
	// Count returns the total number of faces stored
	Count(ctx context.Context) (int, error)
}

// FaceWriter provides write access to the face collection
type FaceWriter interface {
	FaceReader

	// Insert stores a new face together with its image bytes
	Insert(ctx context.Context, f face.Face) error

	// Delete removes the face with the given ID. Unknown IDs are a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store is a FaceWriter owning a database connection
type Store interface {
	FaceWriter

	// Close releases the underlying connection pool
	Close() error
}
