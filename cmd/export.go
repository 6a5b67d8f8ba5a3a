package cmd

import (
	"fmt"

	"jobwatch/core/config"
	"jobwatch/core/dataset"
	"jobwatch/core/logger"
	"jobwatch/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd rebuilds the spreadsheet exports from the stored dataset
// without scraping.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Rebuild the xlsx and csv exports from the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		store := dataset.NewStore(cfg.Dataset)
		records, err := store.Load()
		if err != nil {
			return err
		}

		flat := export.Flatten(records)
		if err := export.WriteXLSX(cfg.Export.XLSXPath, flat, nil); err != nil {
			return err
		}
		if err := export.WriteCSV(cfg.Export.CSVPath, flat); err != nil {
			return err
		}

		logg.Info("Exports rebuilt",
			zap.Int("postings", len(flat)),
			zap.String("xlsx", cfg.Export.XLSXPath),
			zap.String("csv", cfg.Export.CSVPath),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
}
