package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/emphz/rfqcart/pkg/types"
)

// LocalChannel stores the cart under a fixed key in the local_storage table.
// Values are unbounded and never expire.
type LocalChannel struct {
	db  *sqlx.DB
	key string
}

// NewLocalChannel returns a channel bound to key in db.
func NewLocalChannel(db *sqlx.DB, key string) *LocalChannel {
	return &LocalChannel{db: db, key: key}
}

// Name implements types.Channel.
func (c *LocalChannel) Name() string { return "local" }

// Read implements types.Channel.
func (c *LocalChannel) Read() (string, error) {
	var value string
	err := c.db.Get(&value, "SELECT value FROM local_storage WHERE key = ?", c.key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", types.ErrNoValue
	}
	if err != nil {
		return "", fmt.Errorf("read local storage: %w", err)
	}
	return value, nil
}

// Write implements types.Channel.
func (c *LocalChannel) Write(value string) error {
	_, err := c.db.Exec(
		`INSERT INTO local_storage (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		c.key, value)
	if err != nil {
		return fmt.Errorf("write local storage: %w", err)
	}
	return nil
}
