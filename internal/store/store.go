// Package store keeps plugin-tracker records as JSON documents in keyed
// collections. It has get/put/add/delete/clear semantics per collection, plus
// bulk export and import.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// codec is used for every document; records are exchanged as json.RawMessage.
var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Collection names.
const (
	Apps     = "apps"
	Groups   = "groups"
	Plugins  = "plugins"
	Settings = "settings"
)

// Collections lists every collection in export order.
var Collections = []string{Apps, Groups, Plugins, Settings}

var (
	ErrNotFound          = errors.New("record not found")
	ErrExists            = errors.New("record already exists")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrMissingID         = errors.New("record has no id")
)

// Store is a keyed document store. GetAll returns records in insertion order;
// Put keeps a replaced record's position.
type Store interface {
	GetAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	Put(ctx context.Context, collection, id string, value any) error
	Add(ctx context.Context, collection, id string, value any) error
	Delete(ctx context.Context, collection, id string) error
	Clear(ctx context.Context, collection string) error
	Close() error
}

// Transactor is implemented by stores that can apply a group of writes
// atomically. Import uses it when available.
type Transactor interface {
	InTx(ctx context.Context, fn func(Store) error) error
}

// Config selects and configures the backing store.
type Config struct {
	Driver string `mapstructure:"driver" yaml:"driver"` // "sqlite" (default) or "memory"
	Path   string `mapstructure:"path" yaml:"path"`     // database file; empty uses the XDG data dir
}

// NewStore creates the store named by cfg.Driver.
func NewStore(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLiteStore(cfg)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// NewID returns a fresh record id.
func NewID() string {
	return uuid.NewString()
}

// GetDataDir returns the XDG data directory for plugtrack.
// Uses $XDG_DATA_HOME if set, otherwise ~/.local/share
func GetDataDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "plugtrack"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "plugtrack"), nil
}

// GetDBPath returns the default database path.
func GetDBPath() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "plugtrack.db"), nil
}

func checkCollection(collection string) error {
	for _, c := range Collections {
		if c == collection {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
}

func encode(value any) ([]byte, error) {
	if raw, ok := value.(json.RawMessage); ok {
		if !codec.Valid(raw) {
			return nil, errors.New("invalid JSON document")
		}
		return raw, nil
	}
	return codec.Marshal(value)
}

// Encode marshals value into a record document.
func Encode(value any) (json.RawMessage, error) {
	data, err := encode(value)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// RecordID extracts the "id" field of a JSON document.
func RecordID(raw json.RawMessage) (string, error) {
	var head struct {
		ID string `json:"id"`
	}
	if err := codec.Unmarshal(raw, &head); err != nil {
		return "", fmt.Errorf("decode record: %w", err)
	}
	if head.ID == "" {
		return "", ErrMissingID
	}
	return head.ID, nil
}
