package types

import "errors"

// CartKey is the storage key and cookie name under which the serialized cart
// is persisted.
const CartKey = "emphz_rfq_cart"

// Channel is one persistence channel for the serialized cart. The store writes
// the same serialized value to every channel on each mutation and reads them in
// priority order on startup.
type Channel interface {
	// Name identifies the channel in log output.
	Name() string

	// Read returns the stored value. Returns ErrNoValue if the channel holds
	// nothing (never written, cleared, or expired).
	Read() (string, error)

	// Write replaces the stored value.
	Write(value string) error
}

// Channel errors.
var (
	ErrNoValue = errors.New("no stored value")
)

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)
