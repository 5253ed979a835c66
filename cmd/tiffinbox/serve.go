package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tiffinbox/tiffinbox/bootstrap"
	"github.com/tiffinbox/tiffinbox/config"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the tiffinbox API server.

The server will:
  - Load configuration from tiffinbox.yaml (or --config)
  - Or load configuration from TIFFINBOX_* environment variables
  - Connect to the database and run migrations
  - Serve the menu, coupon, order, and auth endpoints

Environment variables (for Docker deployments):
  TIFFINBOX_DATABASE_DSN   - Database path (default: tiffinbox.db)
  TIFFINBOX_SERVER_PORT    - Server port (default: 8080)
  TIFFINBOX_JWT_SECRET     - Secret for JWT signing
  TIFFINBOX_LOG_LEVEL      - Log level: debug, info, warn, error
  TIFFINBOX_ADMIN_EMAIL    - Admin email for first-run bootstrap

Examples:
  tiffinbox serve
  tiffinbox serve --config /etc/tiffinbox/config.yaml
  tiffinbox serve --hot-reload=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	var app *bootstrap.App
	var err error

	if hasConfigFile && hotReload {
		// Hot reload only works with a config file
		app, err = bootstrap.NewWithHotReload(cfgFile)
	} else {
		cfg, loadErr := config.LoadWithFallback(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}

		if !hasConfigFile {
			fmt.Println("Running with environment variables (no config file)")
		}

		app, err = bootstrap.New(cfg)
	}

	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
