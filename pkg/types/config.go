package types

import "errors"

// Config holds backend selection and parameters for opening the cart's
// persistence channels.
type Config struct {
	Backend       string `json:"backend" yaml:"backend"`
	DataDir       string `json:"data_dir" yaml:"data_dir"`
	CatalogFile   string `json:"catalog_file,omitempty" yaml:"catalog_file,omitempty"`
	CookieEnabled bool   `json:"cookie_enabled" yaml:"cookie_enabled"`
}

// Supported primary backend names.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendFile:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
