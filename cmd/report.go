package cmd

import (
	"fmt"

	"jobwatch/core/config"
	"jobwatch/core/logger"
	"jobwatch/core/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reportCmd prints the report persisted by the most recent run.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the latest run report",
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

		rep, err := report.Load(cfg.Dataset.ReportPath)
		if err != nil {
			return err
		}

		logg.Info("Latest run",
			zap.Time("generated_at", rep.GeneratedAt),
			zap.Time("reference_date", rep.ReferenceDate),
			zap.Int("active", rep.TotalActive),
			zap.Int("new", rep.Summary.New),
			zap.Int("updated", rep.Summary.Updated),
			zap.Int("unchanged", rep.Summary.Unchanged),
			zap.Int("expired", rep.Summary.Expired),
			zap.Int("skipped", rep.Summary.Skipped),
		)

		for _, rec := range rep.New {
			logg.Info("New posting",
				zap.String("company", rec.Company),
				zap.String("title", rec.Title),
				zap.String("location", rec.Location),
				zap.String("deadline", rec.DeadlineRaw),
			)
		}
		for _, rec := range rep.Updated {
			logg.Info("Updated posting",
				zap.String("company", rec.Company),
				zap.String("title", rec.Title),
				zap.String("location", rec.Location),
				zap.String("deadline", rec.DeadlineRaw),
			)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)
}
