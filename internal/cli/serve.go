package cli

import (
	"github.com/spf13/cobra"

	"github.com/revue-dev/revue/internal/api"
	"github.com/revue-dev/revue/internal/config"
	"github.com/revue-dev/revue/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the review engine.

Endpoints:
  GET  /health      — Health check
  POST /api/review  — Review submitted facts or source
  GET  /api/rules   — List registered rules
  GET  /api/ws      — WebSocket for streaming review sessions`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "listen address (host:port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	config.LoadDotenv()
	logging.Setup()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Serve.Addr = addr
	}

	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	return api.New(cfg.Serve.Addr, reg).ListenAndServe()
}
