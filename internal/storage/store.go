package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Snapshot keys owned by the application state containers.
const (
	SettingsKey   = "settings-storage"
	PlayerKey     = "player-storage"
	ConfessionKey = "confession-storage"
	RegistryKey   = "notification-registry"
)

// Store is a string-keyed blob store. Values are opaque serialized snapshots.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
