package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pidim-smart/report-dashboard/pkg/config"
	"github.com/pidim-smart/report-dashboard/pkg/handlers/reports"
	"github.com/pidim-smart/report-dashboard/pkg/server"
	"github.com/pidim-smart/report-dashboard/pkg/services/dashboard"
	"github.com/pidim-smart/report-dashboard/pkg/store/client"
	"github.com/pidim-smart/report-dashboard/pkg/view"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the branch reports dashboard server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (optional, DASH_* env vars override)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	api := client.NewHTTP(cfg.APIBase, &http.Client{Timeout: cfg.ClientTimeout})
	svc := dashboard.New(api)

	// Initial load; a failure leaves the dashboard in the failed state with
	// a retry action instead of an endless loading indicator.
	if err := svc.LoadFixed(ctx); err != nil {
		logger.Error().Err(err).Str("api_base", cfg.APIBase).
			Msg("initial reports load failed, dashboard starts in failed state")
	}

	templates, err := view.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to build template engine: %w", err)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports: reports.NewHandler(svc, api, templates),
		},
	})

	return webAPI.Start()
}
