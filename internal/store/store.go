// Package store provides the record store and its key-value persistence backends.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Keys under which the two record lists are persisted.
const (
	MemoriesKey = "life_os_memories"
	MessagesKey = "life_os_messages"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

var (
	// ErrUnknownDriver is returned by Open for an unsupported backend name.
	ErrUnknownDriver = errors.New("unknown storage driver")
	// ErrNotFound is returned when a record lookup has no match.
	ErrNotFound = errors.New("not found")
)

// KV is the persistence port behind Records: string values under string keys.
type KV interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases the backend.
	Close() error
}

// Open returns the KV backend for driver at path. path is ignored by the memory driver.
func Open(driver, path string) (KV, error) {
	switch driver {
	case DriverSQLite, "":
		return NewSQLiteKV(path)
	case DriverBolt:
		return NewBoltKV(path)
	case DriverMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: sqlite, bolt, memory)", ErrUnknownDriver, driver)
	}
}
