// Package cli implements the rfq command-line interface: cart, catalog and
// quote commands over the local store, plus the HTTP API server.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emphz/rfqcart/internal/config"
	"github.com/emphz/rfqcart/internal/paths"
	"github.com/emphz/rfqcart/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// session carries state resolved once in PersistentPreRunE.
type session struct {
	flags    rootFlags
	v        *viper.Viper
	settings config.Settings
	logger   *zap.Logger
}

// NewRootCmd creates the top-level "rfq" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	s := &session{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "rfq",
		Short: "Quote cart and product catalog for EMPHZ composite products",
		Long: `rfq manages a request-for-quote cart against the EMPHZ product catalog.

Browse and filter the catalog, compare up to three products side by side,
collect products in the quote cart and submit it as a quote request. The
cart is kept between runs in the data directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = s.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&s.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&s.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&s.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newCartCmd(s))
	root.AddCommand(newCatalogCmd(s))
	root.AddCommand(newQuoteCmd(s))
	root.AddCommand(newServeCmd(s))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// setup loads configuration and builds the logger.
func (s *session) setup() error {
	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := config.Load(configDir)
	if err != nil {
		return err
	}
	settings, err := config.Decode(v)
	if err != nil {
		return err
	}

	logger, err := newLogger(settings.LogLevel, s.flags.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	s.v = v
	s.settings = settings
	s.logger = logger
	return nil
}

// dataDir returns the data directory: --data-dir > config data_dir >
// RFQ_DATA_DIR > platform default.
func (s *session) dataDir() (string, error) {
	return paths.ResolveDataDir(s.flags.dataDir, s.settings.DataDir)
}

// newLogger builds a production zap logger writing to stderr. verbose forces
// debug level; otherwise level comes from configuration.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// userErrors are mistakes in the invocation rather than system failures.
var userErrors = []error{
	types.ErrProductNotFound,
	types.ErrInvalidItem,
	types.ErrInvalidQuantity,
	types.ErrInvalidContact,
	types.ErrEmptyCart,
	types.ErrCompareFull,
	types.ErrBackendUnknown,
	types.ErrBackendEmpty,
	types.ErrQuoteNotFound,
	errUsage,
}

// errUsage marks argument errors detected by the commands themselves.
var errUsage = errors.New("usage error")

func exitCode(err error) int {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// notice prints a highlighted informational line to w.
func notice(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, format+"\n", args...)
}
