package main

import (
	"log/slog"

	"github.com/spacesedan/textanalytics/internal/app"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the configured models into MODEL_DIR and exit",
	Long: `Fetches the sentiment, NER and zero-shot models from the Hugging Face hub
so that the first serve does not block on downloads. Models already present
in MODEL_DIR are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.DownloadModels(cfg); err != nil {
			return err
		}
		slog.Info("[Main] Models ready", slog.String("dir", cfg.ModelDir))
		return nil
	},
}
