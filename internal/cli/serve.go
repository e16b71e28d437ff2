package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/cobra/internal/version"
	"github.com/example/cobra/internal/wire"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

// ServeCmd returns the serve command.
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the COBRA HTTP server",
		Long: `Start the REST API and websocket hub.

The server reads cobra.yaml from the data directory (default ~/.cobra),
overlaid with COBRA_* environment variables. Identity is taken from the
X-User-* request headers; there is no real authentication in this build.

Examples:
  cobra serve                 # Listen on the configured address
  cobra serve --addr :9090    # Override the listen address`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Cfg()
			if addr == "" {
				addr = cfg.ListenAddr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go wire.Hub().Run(ctx)

			server := &http.Server{
				Addr:    addr,
				Handler: wire.Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe()
			}()

			fmt.Printf("%s COBRA %s listening on %s\n",
				color.New(color.FgHiGreen).Sprint("✓"), version.String(), addr)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			fmt.Println("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}
