package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/textanalytics/config"
	"github.com/spacesedan/textanalytics/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	appEnv   string
	logLevel string

	cfg config.Config
)

// rootCmd serves the API when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "textanalytics",
	Short: "Text Analytics API: sentiment, named entities and zero-shot classification",
	Long: `textanalytics serves a small cookie-authenticated HTTP API over three
transformer pipelines.

Configuration is read from config/envs/.env.<APP_ENV> and the process
environment. Run without arguments to start the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv(appEnv)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}

		logging.InitLogger(cfg.LogLevel, cfg.LogFile)
		if cfg.AppEnv != "dev" {
			gin.SetMode(gin.ReleaseMode)
		}
		return nil
	},
	RunE: runServe,
}

func init() {
	defaultEnv := os.Getenv("APP_ENV")
	if defaultEnv == "" {
		defaultEnv = "dev"
	}

	rootCmd.PersistentFlags().StringVar(&appEnv, "env", defaultEnv, "environment file to load from config/envs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(downloadCmd)
}
