package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emphz/rfqcart/internal/server"
)

func newServeCmd(s *session) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cart and catalog over a local HTTP JSON API",
		Long: `Serve exposes the quote cart, the catalog, the compare engine and quote
submission over HTTP. Cart responses carry the cart cookie.

The listen address defaults to server.addr from config.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if addr == "" {
				addr = s.settings.ServerAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.store, a.catalog, a.quotes, s.logger.Named("http"))
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (host:port)")
	return cmd
}
