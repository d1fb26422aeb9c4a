package database

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kozaktomas/name-that-face/internal/config"
)

// Opener connects to a backend, applies its migrations and returns a ready Store.
type Opener func(ctx context.Context, cfg *config.DatabaseConfig) (Store, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Opener)
)

// Register makes a backend available under the given driver name.
// This is called from the backend packages' init functions to avoid import cycles.
func Register(driver string, open Opener) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if open == nil {
		panic("database: Register opener is nil")
	}
	if _, dup := backends[driver]; dup {
		panic("database: Register called twice for driver " + driver)
	}
	backends[driver] = open
}

// Drivers returns the sorted names of the registered backends.
func Drivers() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open returns a Store for cfg.Driver.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (Store, error) {
	backendsMu.RLock()
	open, ok := backends[cfg.Driver]
	backendsMu.RUnlock()
	if !ok {
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("unknown database driver %q (available: %v)", cfg.Driver, Drivers())}
	}

	store, err := open(ctx, cfg)
	if err != nil {
		return nil, Wrap("open", err)
	}
	return store, nil
}
