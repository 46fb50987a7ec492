// Package kvstore defines the local key/value persistence boundary.
//
// A Store holds string values under short string keys, the way a browser's
// local storage does. Writes are whole-value overwrites; the last write wins.
// Backends that can observe writes made by other processes also implement
// Watcher.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("kvstore: store is closed")
	// ErrInvalidKey is returned for keys that are empty or not a plain name.
	ErrInvalidKey = errors.New("kvstore: invalid key")
)

// Store is a synchronous local key/value store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the store's resources.
	Close() error
}

// Change reports that the value under Key was written or removed.
type Change struct {
	Key string
}

// Watcher is implemented by stores that can report changes, including
// changes made by other processes sharing the same storage.
type Watcher interface {
	// Watch delivers a Change for every observed write. The channel is closed
	// when ctx is done or the store is closed.
	Watch(ctx context.Context) (<-chan Change, error)
}

// ValidateKey rejects keys that cannot be stored safely by every backend.
// Keys must be non-empty plain names: no path separators, no leading dot.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidKey, key)
	}
	return nil
}
