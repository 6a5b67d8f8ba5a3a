package cmd

import (
	"context"
	"fmt"
	"time"

	"jobwatch/core/archive"
	"jobwatch/core/config"
	"jobwatch/core/dataset"
	"jobwatch/core/logger"
	"jobwatch/core/reconcile"
	"jobwatch/core/report"
	"jobwatch/feature/export"
	"jobwatch/feature/notify"
	"jobwatch/feature/scrape"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var allowPartial bool

// runCmd executes one full scrape-reconcile-report cycle.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape listings and reconcile them into the dataset",
	Long: `Fetches the configured listing pages, reconciles the candidates
against the stored dataset, writes the updated dataset and run report,
refreshes the spreadsheet exports, and sends the digest.

A failed scrape aborts the run and leaves the dataset untouched; pass
--allow-partial to continue with whatever pages did complete.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().BoolVar(&allowPartial, "allow-partial", false,
		"Continue the run when some listing pages failed to fetch")
	RootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
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
	zap.ReplaceGlobals(logg)

	runID := uuid.NewString()
	refDate := time.Now().UTC()
	logg = logg.With(zap.String("run_id", runID))

	mailer := notify.NewMailer(cfg.Mail, logg)
	tg, err := notify.NewTelegram(cfg.Telegram, logg)
	if err != nil {
		logg.Warn("Telegram channel unavailable", zap.Error(err))
	}

	store := dataset.NewStore(cfg.Dataset)
	if err := store.Lock(); err != nil {
		return err
	}
	defer store.Unlock()

	existing, err := store.Load()
	if err != nil {
		return err
	}
	logg.Info("Loaded dataset",
		zap.String("path", store.Path()),
		zap.Int("postings", len(existing)),
	)

	scraper := scrape.New(cfg.Scrape, logg)
	rows, scrapeErr := scraper.FetchAll(ctx)
	if scrapeErr != nil {
		if !allowPartial || len(rows) == 0 {
			logg.Error("Scrape failed, dataset left untouched", zap.Error(scrapeErr))
			notifyFailure(mailer, tg, refDate, scrapeErr, logg)
			return scrapeErr
		}
		logg.Warn("Scrape partially failed, continuing with fetched pages",
			zap.Int("rows", len(rows)), zap.Error(scrapeErr))
	}
	logg.Info("Scrape finished", zap.Int("candidates", len(rows)))

	updated, diff := reconcile.Reconcile(existing, rows, refDate, cfg.Reconcile.Options())
	logReconcile(logg, diff)

	if err := store.Save(updated); err != nil {
		return err
	}

	rep := report.Build(diff, refDate, len(updated))
	if err := report.Save(cfg.Dataset.ReportPath, rep); err != nil {
		return err
	}

	flat := export.Flatten(updated)
	freshKeys := mapset.NewThreadUnsafeSet[string]()
	for _, rec := range diff.NewRecords {
		freshKeys.Add(rec.IdentityKey)
	}
	if err := export.WriteXLSX(cfg.Export.XLSXPath, flat, freshKeys); err != nil {
		logg.Error("Workbook export failed", zap.Error(err))
	}
	if err := export.WriteCSV(cfg.Export.CSVPath, flat); err != nil {
		logg.Error("CSV export failed", zap.Error(err))
	}

	if err := mailer.SendDigest(rep, cfg.Export.XLSXPath); err != nil {
		logg.Error("Digest delivery failed", zap.Error(err))
	}
	tg.NotifyDigest(rep)

	archiveRun(ctx, cfg, logg, runID, refDate)

	logg.Info("Run complete",
		zap.Int("active", rep.TotalActive),
		zap.Int("new", rep.Summary.New),
		zap.Int("updated", rep.Summary.Updated),
		zap.Int("expired", rep.Summary.Expired),
	)
	return nil
}

func logReconcile(logg *zap.Logger, diff reconcile.Diff) {
	for _, reason := range diff.SkipReasons {
		logg.Warn("Skipped candidate", zap.String("reason", reason))
	}
	for _, key := range diff.ExpiredKeys {
		logg.Info("Posting expired", zap.String("key", key))
	}
	logg.Info("Reconciliation finished",
		zap.Int("new", diff.Summary.New),
		zap.Int("updated", diff.Summary.Updated),
		zap.Int("unchanged", diff.Summary.Unchanged),
		zap.Int("expired", diff.Summary.Expired),
		zap.Int("skipped", diff.Summary.Skipped),
	)
}

func notifyFailure(mailer *notify.Mailer, tg *notify.Telegram, refDate time.Time, runErr error, logg *zap.Logger) {
	day := refDate.Format("2006-01-02")
	if err := mailer.SendFailure(day, runErr); err != nil {
		logg.Error("Failure notice delivery failed", zap.Error(err))
	}
	tg.NotifyFailure(day, runErr)
}

// archiveRun uploads the run artifacts to object storage when configured.
// Archive problems are logged, never fatal: the local files remain the
// source of truth.
func archiveRun(ctx context.Context, cfg *config.Config, logg *zap.Logger, runID string, refDate time.Time) {
	if !cfg.Archive.Enabled() {
		return
	}

	client, err := archive.NewClient(cfg.Archive)
	if err != nil {
		logg.Error("Archive client unavailable", zap.Error(err))
		return
	}

	archiver := archive.New(client, cfg.Archive.Bucket, logg)
	err = archiver.StoreRun(ctx, runID, refDate,
		cfg.Dataset.Path,
		cfg.Dataset.ReportPath,
		cfg.Export.XLSXPath,
		cfg.Export.CSVPath,
	)
	if err != nil {
		logg.Error("Run archive failed", zap.Error(err))
	}
}
