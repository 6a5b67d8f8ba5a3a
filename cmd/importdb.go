package cmd

import (
	"context"
	"fmt"

	"jobwatch/core/config"
	"jobwatch/core/database"
	"jobwatch/core/dataset"
	"jobwatch/core/logger"
	"jobwatch/feature/jobdb"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cleanStaleDays int

// importdbCmd mirrors the dataset into the relational database.
var importdbCmd = &cobra.Command{
	Use:   "importdb",
	Short: "Import the dataset into the MySQL mirror",
	Long: `Copies every posting not yet present into the jobs table, with
skill tags extracted from position titles. Existing rows are skipped; the
JSON dataset remains the source of truth.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

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

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		imp, err := jobdb.NewImporter(db, logg)
		if err != nil {
			return err
		}

		stats, err := imp.Import(ctx, records)
		if err != nil {
			return err
		}
		logg.Info("Import finished",
			zap.Int("total", stats.Total),
			zap.Int("added", stats.Added),
			zap.Int("skipped", stats.Skipped),
		)

		if cleanStaleDays > 0 {
			removed, err := imp.CleanStale(ctx, cleanStaleDays)
			if err != nil {
				return err
			}
			logg.Info("Stale jobs cleaned",
				zap.Int("days", cleanStaleDays),
				zap.Int64("removed", removed),
			)
		}
		return nil
	},
}

func init() {
	importdbCmd.Flags().IntVar(&cleanStaleDays, "clean-stale", 0,
		"Also delete jobs not seen for this many days (0 disables)")
	RootCmd.AddCommand(importdbCmd)
}
