package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oerlens/oerlens/internal/server"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the evaluation engine as an HTTP API",
	Long: `Serve exposes the evaluation engine over HTTP:

  POST /api/v1/evaluate {"url": "..."}  evaluate a resource URL
  GET  /healthz                         liveness check

Connectivity is probed per request, so the API keeps answering from the
cache when the host loses its network.

Example:
  oerlens serve
  oerlens serve --addr :8423`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "addr", "127.0.0.1:8420", "listen address")
	serveCmd.Flags().StringVar(&cacheBackend, "cache-backend", "", "cache backend (disk, sqlite)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	eng, s, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	srv := server.NewServer(listenAddr, eng, verbose)

	fmt.Fprintf(os.Stderr, "Listening on %s\n", listenAddr)
	if err := srv.HTTPServer().ListenAndServe(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
