// Package config loads rfq settings from <config_dir>/config.yaml and the
// RFQ_* environment, writing a default config.yaml on first run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/emphz/rfqcart/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "RFQ"
)

// Config keys.
const (
	KeyBackend       = "backend"
	KeyDataDir       = "data_dir"
	KeyCatalogFile   = "catalog_file"
	KeyCookieEnabled = "cookie.enabled"
	KeyLogLevel      = "log.level"
	KeyServerAddr    = "server.addr"
)

// Defaults.
const (
	DefaultBackend    = types.BackendSQLite
	DefaultLogLevel   = "info"
	DefaultServerAddr = "127.0.0.1:8080"
)

// envKeys are bound to RFQ_<KEY> variables. data_dir is resolved by the
// paths package so that config.yaml keeps precedence over RFQ_DATA_DIR.
var envKeys = []string{
	KeyBackend,
	KeyCatalogFile,
	KeyCookieEnabled,
	KeyLogLevel,
	KeyServerAddr,
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# rfq configuration

# Primary cart storage: sqlite or file
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Product catalog YAML (optional; the built-in catalog is used when unset)
# catalog_file:

cookie:
  # Mirror the cart into a 30-day cookie jar as a fallback channel
  enabled: true

log:
  level: info

server:
  addr: 127.0.0.1:8080
`

// Settings is the decoded configuration.
type Settings struct {
	Backend       string
	DataDir       string
	CatalogFile   string
	CookieEnabled bool
	LogLevel      string
	ServerAddr    string
}

// StorageConfig returns the storage configuration for dataDir.
func (s Settings) StorageConfig(dataDir string) types.Config {
	return types.Config{
		Backend:       s.Backend,
		DataDir:       dataDir,
		CatalogFile:   s.CatalogFile,
		CookieEnabled: s.CookieEnabled,
	}
}

// Load reads config.yaml from configDir using Viper. It creates the directory
// and a default config.yaml on first run. A missing config.yaml is not an
// error.
func Load(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := EnsureDefaultFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := New()
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// New returns a Viper instance with defaults and environment bindings but no
// config file.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyCookieEnabled, true)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyServerAddr, DefaultServerAddr)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)

	v.SetEnvPrefix(envPrefix)
	// cookie.enabled -> RFQ_COOKIE_ENABLED
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// Decode extracts Settings from v and validates the backend.
func Decode(v *viper.Viper) (Settings, error) {
	s := Settings{
		Backend:       v.GetString(KeyBackend),
		DataDir:       v.GetString(KeyDataDir),
		CatalogFile:   v.GetString(KeyCatalogFile),
		CookieEnabled: v.GetBool(KeyCookieEnabled),
		LogLevel:      v.GetString(KeyLogLevel),
		ServerAddr:    v.GetString(KeyServerAddr),
	}
	if err := s.StorageConfig("").Validate(); err != nil {
		return Settings{}, fmt.Errorf("config %s %q: %w", KeyBackend, s.Backend, err)
	}
	return s, nil
}

// EnsureDefaultFile creates a default config.yaml if the file does not exist
// in configDir.
func EnsureDefaultFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
