// ABOUTME: Charm KV client wrapper using transactional Do API
// ABOUTME: Short-lived connections to avoid lock contention with other MCP servers

package charm

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	charmproto "github.com/charmbracelet/charm/proto"
	"github.com/dgraph-io/badger/v3"
	"github.com/harper/gratitude/internal/storage"
	"go.uber.org/zap"
)

const (
	// DBName is the name of the charm kv database for gratitude.
	DBName = "gratitude"
)

// Client implements storage.KV on a charm kv database.
// It does NOT hold a persistent connection: each operation opens the
// database, performs the operation, and closes it.
type Client struct {
	dbName         string
	host           string
	autoSync       bool
	staleThreshold time.Duration
	logger         *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDBName sets the database name.
func WithDBName(name string) Option {
	return func(c *Client) {
		c.dbName = name
	}
}

// WithHost points the client at a self-hosted charm server.
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = host
	}
}

// WithAutoSync enables or disables auto-sync after writes.
func WithAutoSync(enabled bool) Option {
	return func(c *Client) {
		c.autoSync = enabled
	}
}

// WithStaleThreshold sets how old the last sync may be before reads pull first.
// Zero disables the check.
func WithStaleThreshold(d time.Duration) Option {
	return func(c *Client) {
		c.staleThreshold = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		dbName:   DBName,
		autoSync: true,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// The charm libraries read the server from the environment.
	if c.host != "" {
		if err := os.Setenv("CHARM_HOST", c.host); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DBName returns the charm kv database this client uses.
func (c *Client) DBName() string {
	return c.dbName
}

// translate maps charm kv lookups of missing keys to storage.ErrNotFound.
func translate(val []byte, err error) ([]byte, error) {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, storage.ErrNotFound
	}
	return val, nil
}

// Get retrieves a value by key (read-only, no lock contention).
func (c *Client) Get(key string) ([]byte, error) {
	if err := c.SyncIfStale(); err != nil {
		c.logger.Warn("stale sync failed, reading local copy", zap.Error(err))
	}
	var val []byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		val, err = k.Get([]byte(key))
		return err
	})
	return translate(val, err)
}

// Set stores a value with the given key.
func (c *Client) Set(key string, value []byte) error {
	return c.Do(func(k *kv.KV) error {
		return k.Set([]byte(key), value)
	})
}

// Delete removes a key. Missing keys are not an error.
func (c *Client) Delete(key string) error {
	return c.Do(func(k *kv.KV) error {
		err := k.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Do executes a function with write access to the database.
func (c *Client) Do(fn func(k *kv.KV) error) error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		if err := fn(k); err != nil {
			return err
		}
		if c.autoSync {
			if err := k.Sync(); err != nil {
				return err
			}
			c.logger.Debug("synced after write", zap.String("db", c.dbName))
		}
		return nil
	})
}

// Sync triggers a manual sync with the charm server.
func (c *Client) Sync() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Sync()
	})
}

// LastSyncTime returns the timestamp of the last sync operation.
func (c *Client) LastSyncTime() time.Time {
	var lastSync time.Time
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		lastSync = k.LastSyncTime()
		return nil
	})
	return lastSync
}

// IsStale checks if the data is stale based on the configured threshold.
func (c *Client) IsStale() bool {
	if c.staleThreshold == 0 {
		return false
	}
	var isStale bool
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		isStale = k.IsStale(c.staleThreshold)
		return nil
	})
	return isStale
}

// SyncIfStale syncs with the charm server if data is stale.
func (c *Client) SyncIfStale() error {
	if !c.IsStale() {
		return nil
	}
	c.logger.Info("data stale, syncing",
		zap.String("db", c.dbName),
		zap.Duration("threshold", c.staleThreshold))
	return c.Sync()
}

// Reset clears all data (nuclear option).
func (c *Client) Reset() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Reset()
	})
}

// ID returns the charm user ID for this device.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", err
	}
	return cc.ID()
}

// User returns the current charm user information.
func (c *Client) User() (*charmproto.User, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return nil, err
	}
	return cc.Bio()
}

// Link initiates the charm linking process for this device.
func (c *Client) Link() error {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return err
	}
	_, err = cc.Bio()
	return err
}

// Unlink removes the charm account association from this device.
func (c *Client) Unlink() error {
	return c.Reset()
}

// Close is a no-op; connections close after each operation.
func (c *Client) Close() error {
	return nil
}
