// Package serve handles the HTTP API command
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/clinic-journal/cmd/root"
	"fjacquet/clinic-journal/internal/api"
	"fjacquet/clinic-journal/internal/container"
	"fjacquet/clinic-journal/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal, ledger and exports over HTTP",
	Long: `Start the read API:
  GET /api/v1/years/:year/journal?q=
  GET /api/v1/years/:year/ledger?q=&opening=true
  GET /api/v1/years/:year/gaps
  GET /api/v1/years/:year/export/:book?format=csv|xlsx|json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return Run(ctx, root.AppContainer, address)
	},
}

func init() {
	Cmd.Flags().StringVar(&address, "addr", "", "Listen address (default: server.address)")
}

// NewServer builds the HTTP server of the read API.
func NewServer(c *container.Container, addr string) *http.Server {
	if addr == "" {
		addr = c.GetConfig().Server.Address
	}
	if c.GetConfig().Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers := api.NewHandlers(c.GetService(), c.GetGenerator(), c.GetConfig().Export.Format, c.GetLogger())
	return &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, c *container.Container, addr string) error {
	srv := NewServer(c, addr)
	logger := c.GetLogger()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening", logging.F("address", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	logger.Info("HTTP API stopped")
	return nil
}
