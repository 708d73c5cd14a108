// ABOUTME: SQLite-backed key-value store implementing storage.KV.
// ABOUTME: Each key is one row in the kv table; Set is an upsert.

package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harper/gratitude/internal/storage"
)

type KV struct {
	db *sql.DB
}

func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

// OpenKV opens the database at path and wraps it.
func OpenKV(path string) (*KV, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewKV(db), nil
}

func (k *KV) Get(key string) ([]byte, error) {
	var value []byte
	err := k.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (k *KV) Set(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := k.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	return err
}

func (k *KV) Delete(key string) error {
	_, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// UpdatedAt reports when key was last written.
func (k *KV) UpdatedAt(key string) (time.Time, error) {
	var at time.Time
	err := k.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, storage.ErrNotFound
	}
	return at, err
}

func (k *KV) Close() error {
	return k.db.Close()
}
