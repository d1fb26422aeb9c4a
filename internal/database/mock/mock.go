// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/kozaktomas/name-that-face/internal/database"
	"github.com/kozaktomas/name-that-face/internal/face"
)

var errDuplicate = errors.New("face id already exists")

// MockFaceStore is an in-memory implementation of database.Store
type MockFaceStore struct {
	mu    sync.RWMutex
	faces map[uuid.UUID]face.Face

	// Call counters
	InsertCalls int
	ListCalls   int
	DeleteCalls int

	// Error injection
	InsertError error
	ListError   error
	GetError    error
	CountError  error
	DeleteError error
	CloseError  error
}

// NewMockFaceStore creates a new empty mock face store
func NewMockFaceStore() *MockFaceStore {
	return &MockFaceStore{
		faces: make(map[uuid.UUID]face.Face),
	}
}

// AddFace seeds the store without going through Insert
func (m *MockFaceStore) AddFace(f face.Face) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces[f.ID] = f
}

// Insert stores a face
func (m *MockFaceStore) Insert(ctx context.Context, f face.Face) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertError != nil {
		return database.Wrap("insert", m.InsertError)
	}
	if err := f.CheckStorable(); err != nil {
		return database.Wrap("insert", err)
	}
	if _, exists := m.faces[f.ID]; exists {
		return &database.StorageError{Op: "insert", Err: errDuplicate}
	}
	m.faces[f.ID] = f
	return nil
}

// List returns all faces in face.Compare order
func (m *MockFaceStore) List(ctx context.Context) ([]face.Face, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()
	if m.ListError != nil {
		return nil, database.Wrap("list", m.ListError)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	faces := make([]face.Face, 0, len(m.faces))
	for _, f := range m.faces {
		faces = append(faces, f)
	}
	slices.SortFunc(faces, face.Compare)
	return faces, nil
}

// Get retrieves a face by ID
func (m *MockFaceStore) Get(ctx context.Context, id uuid.UUID) (*face.Face, error) {
	if m.GetError != nil {
		return nil, database.Wrap("get", m.GetError)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.faces[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// Count returns the number of stored faces
func (m *MockFaceStore) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, database.Wrap("count", m.CountError)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.faces), nil
}

// Delete removes a face; unknown IDs are ignored
func (m *MockFaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteError != nil {
		return database.Wrap("delete", m.DeleteError)
	}
	delete(m.faces, id)
	return nil
}

// Close implements database.Store
func (m *MockFaceStore) Close() error {
	return m.CloseError
}

// Verify interface compliance
var _ database.Store = (*MockFaceStore)(nil)
