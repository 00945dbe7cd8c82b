package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/msto63/mdwcalc/internal/preferences"
	"github.com/msto63/mdwcalc/internal/remote"
	"github.com/msto63/mdwcalc/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stellt den Rechner per WebSocket bereit",
	Long: `Startet den Rechner als WebSocket-Server.

Jede Verbindung erhält einen eigenen Rechner. Das Farbschema wird
mit der TUI geteilt.

Routen:
  /ws       - WebSocket (press, state, ping, theme)
  /healthz  - Health Report (JSON)

Beispiele:
  mdwcalc serve               # 127.0.0.1:8089
  mdwcalc serve --port 9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host (überschreibt Config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port (überschreibt Config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.New("serve")

	cfg := remote.ConfigFrom(appConfig.Server)
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	var store preferences.Store
	if s, err := openStore(); err != nil {
		logger.Warn("Preferences unavailable, theme messages disabled", "error", err)
	} else {
		store = s
		defer store.Close()
	}

	srv, err := remote.New(cfg, store)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "mDW Rechner läuft auf ws://%s%s\n", srv.Address(), remote.PathWebSocket)

	// Wait for signal or error
	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		printError("Shutdown", err)
		return err
	}
	return nil
}
