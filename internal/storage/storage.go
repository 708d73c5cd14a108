// ABOUTME: Key-value persistence boundary shared by every store in gratitude.
// ABOUTME: Backends (charm KV, SQLite, memory) translate their not-found errors to ErrNotFound.

package storage

import "errors"

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("key not found")

// KV is a durable key-value store. Every call completes or fails before returning.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
