// Package storage implements the persistence channels for the quote cart and
// the archive of submitted quotes.
//
// The primary channel is either a key/value table in the SQLite database
// (the default) or a JSON document on disk. The secondary channel is a cookie
// jar file holding the cart as a percent-encoded cookie. All channels live in
// the configured data directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/emphz/rfqcart/pkg/types"
)

// File names inside DataDir.
const (
	DatabaseFile  = "rfq.db"
	CartFile      = types.CartKey + ".json"
	CookieJarFile = "cookies.txt"
)

// Backend owns the database handle and the channels built on top of it.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sqlx.DB
	logger   *zap.Logger

	channels []types.Channel
	quotes   *QuoteArchive
}

// NewBackend creates a storage backend. The backend is not attached; call
// Attach with a Config to open it. A nil logger disables logging.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{logger: logger}
}

// Attach opens the database in config.DataDir, creating the directory and the
// schema if needed, and builds the channels in priority order.
// Returns ErrAlreadyAttached if called while attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := openDB(filepath.Join(dataDir, DatabaseFile))
	if err != nil {
		return err
	}

	var primary types.Channel
	switch config.Backend {
	case types.BackendFile:
		primary = NewFileChannel(filepath.Join(dataDir, CartFile))
	default:
		primary = NewLocalChannel(db, types.CartKey)
	}

	channels := []types.Channel{primary}
	if config.CookieEnabled {
		channels = append(channels, NewCookieChannel(filepath.Join(dataDir, CookieJarFile)))
	}

	b.db = db
	b.config = config
	b.channels = channels
	b.quotes = NewQuoteArchive(db)
	b.attached = true

	b.logger.Debug("storage attached",
		zap.String("backend", config.Backend),
		zap.String("data_dir", dataDir),
		zap.Int("channels", len(channels)))
	return nil
}

// Detach closes the database. Idempotent: multiple calls succeed.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	b.channels = nil
	b.quotes = nil

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
		b.db = nil
	}
	return nil
}

// Channels returns the cart channels in read priority order.
func (b *Backend) Channels() ([]types.Channel, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	out := make([]types.Channel, len(b.channels))
	copy(out, b.channels)
	return out, nil
}

// Quotes returns the submitted-quote archive.
func (b *Backend) Quotes() (*QuoteArchive, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.quotes, nil
}
