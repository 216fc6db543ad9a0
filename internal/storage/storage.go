package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const (
	UsersKey       = "focusup-users"
	CurrentUserKey = "focusup-currentUser"
	VersionKey     = "focusup-storage-version"

	progressKeyPrefix = "userProgress_"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// KV is a synchronous local key-value store holding JSON values.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Clear() error
	Close() error
}

func ProgressKey(userID string) string {
	return progressKeyPrefix + userID
}

// Owned reports whether key belongs to focusup's namespace.
func Owned(key string) bool {
	return strings.HasPrefix(key, "focusup-") || strings.HasPrefix(key, progressKeyPrefix)
}

// Open returns the store for the configured backend rooted at dataDir.
func Open(backend, dataDir string) (KV, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(dataDir)
	case BackendSQLite:
		return NewSQLiteStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// Load decodes the value under key. Missing, unreadable or corrupt values
// yield def; read problems are logged and never returned.
func Load[T any](kv KV, key string, def T) T {
	data, ok, err := kv.Get(key)
	if err != nil {
		log.Printf("storage: read %s: %v", key, err)
		return def
	}
	if !ok || len(data) == 0 {
		return def
	}

	v := def
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("storage: decode %s: %v", key, err)
		return def
	}
	return v
}

func Save[T any](kv KV, key string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Put(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
