//go:build integration

package mariadb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestContainer(t *testing.T) (*Pool, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mariadb:11",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MARIADB_USER":          "test",
			"MARIADB_PASSWORD":      "test",
			"MARIADB_DATABASE":      "testdb",
			"MARIADB_ROOT_PASSWORD": "root",
		},
		WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available or container failed to start, skipping integration test: %v", err)
		return nil, func() {}
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.DatabaseConfig{
		URL:          fmt.Sprintf("test:test@tcp(%s:%s)/testdb", host, port.Port()),
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}

	// The port opens before the server accepts logins; retry the ping for a while.
	var pool *Pool
	deadline := time.Now().Add(60 * time.Second)
	for {
		pool, err = NewPool(ctx, cfg)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to create pool: %v", err)
	}

	if err := pool.Migrate(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return pool, func() {
		pool.Close()
		container.Terminate(ctx)
	}
}

func TestFaceRepository(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	repo := NewFaceRepository(pool)

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	img := buf.Bytes()

	zed := face.New(img, "Zed", nil)
	amy := face.New(img, "Amy", &face.Coordinates{Latitude: -33.86, Longitude: 151.21})

	for _, f := range []face.Face{zed, amy} {
		if err := repo.Insert(ctx, f); err != nil {
			t.Fatalf("Failed to insert %s: %v", f.Name, err)
		}
	}

	faces, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(faces) != 2 || faces[0].Name != "Amy" || faces[1].Name != "Zed" {
		t.Fatalf("Expected [Amy Zed], got %v", faces)
	}
	if faces[0].Coordinates == nil || faces[0].Coordinates.Longitude != 151.21 {
		t.Errorf("Unexpected coordinates %+v", faces[0].Coordinates)
	}

	if err := repo.Insert(ctx, zed); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}

	if err := repo.Delete(ctx, zed.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if err := repo.Delete(ctx, uuid.New()); err != nil {
		t.Errorf("Expected no-op delete, got %v", err)
	}

	got, err := repo.Get(ctx, zed.ID)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got != nil {
		t.Error("Expected deleted face to be gone")
	}
	if count, _ := repo.Count(ctx); count != 1 {
		t.Errorf("Expected 1 face, got %d", count)
	}

	for _, name := range []string{"bob", "Carl", "adam"} {
		if err := repo.Insert(ctx, face.New(img, name, nil)); err != nil {
			t.Fatalf("Failed to insert %s: %v", name, err)
		}
	}
	faces, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if !slices.IsSortedFunc(faces, face.Compare) {
		t.Errorf("List order does not ignore case: %v", faces)
	}
}
