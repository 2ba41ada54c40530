// Package cmd defines and implements the CLI commands for the nhldata executable.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JakeFAU/nhl-stats-crawler/internal/api"
	"github.com/JakeFAU/nhl-stats-crawler/internal/clock/system"
	"github.com/JakeFAU/nhl-stats-crawler/internal/config"
	"github.com/JakeFAU/nhl-stats-crawler/internal/logging"
	"github.com/JakeFAU/nhl-stats-crawler/internal/metadata"
	"github.com/JakeFAU/nhl-stats-crawler/internal/metrics"
	"github.com/JakeFAU/nhl-stats-crawler/internal/nhl"
	"github.com/JakeFAU/nhl-stats-crawler/internal/notify"
	"github.com/JakeFAU/nhl-stats-crawler/internal/storage"
	"github.com/JakeFAU/nhl-stats-crawler/internal/version"
)

const queryDateLayout = "2006-01-02"

// newPutter builds the blob putter for the configured provider. It's a
// variable so tests can substitute an in-process putter and inspect what
// the command wrote.
var newPutter = func(ctx context.Context, cfg config.StorageConfig) (storage.BlobPutter, func(), error) {
	switch cfg.Provider {
	case "gcs":
		putter, err := storage.NewGCSPutter(ctx, cfg.Endpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("init gcs putter: %w", err)
		}
		return putter, func() {
			if cerr := putter.Close(); cerr != nil {
				logging.L.Warn("Failed to close storage client", zap.Error(cerr))
			}
		}, nil
	case "memory":
		return storage.NewMemoryPutter(), func() {}, nil
	case "noop":
		return storage.NoOpPutter{}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}

// newGamesCmd creates and configures the 'games' subcommand.
func newGamesCmd() *cobra.Command {
	var (
		apiVersion string
		fromDate   string
		toDate     string
	)

	cmd := &cobra.Command{
		Use:   "games",
		Short: "Crawls game boxscores for a date range",
		Long: `Fetches the schedule for the given date range, then downloads the
boxscore for every scheduled game and stores one CSV of flattened player
statistics per game. Dates default to yesterday through today so a daily
scheduled run picks up the previous night's games.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGamesCommand(cmd, apiVersion, fromDate, toDate)
		},
	}

	cmd.Flags().StringVar(&apiVersion, "api-version", "", "statsapi schema version (default from config)")
	cmd.Flags().StringVar(&fromDate, "from-date", "", "first schedule date, YYYY-MM-DD (default yesterday)")
	cmd.Flags().StringVar(&toDate, "to-date", "", "last schedule date, YYYY-MM-DD (default today)")

	return cmd
}

func runGamesCommand(cmd *cobra.Command, apiVersion, fromDate, toDate string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiVersion == "" {
		apiVersion = cfg.API.Version
	}

	clk := system.New()
	start, stop, err := resolveDateRange(clk.Now(), fromDate, toDate)
	if err != nil {
		return err
	}

	putter, closePutter, err := newPutter(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closePutter()

	store := storage.New(putter, cfg.Storage.DataBucket, cfg.Storage.JobsBucket)
	meta := metadata.New(version.Version, clk.Now(), start, stop)

	metrics.Init()
	if cfg.Metrics.ListenAddr != "" {
		srv := api.NewServer(cfg.Metrics.ListenAddr, logging.L.Named("api"))
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if serr := srv.Shutdown(shutdownCtx); serr != nil {
				logging.L.Warn("Failed to shut down debug server", zap.Error(serr))
			}
		}()
	}

	logging.L.Info("Starting crawl",
		zap.String("job_id", meta.ID),
		zap.String("api_version", apiVersion),
		zap.String("start", start.Format(queryDateLayout)),
		zap.String("end", stop.Format(queryDateLayout)),
	)

	crawlErr := runCrawl(ctx, cfg, store, apiVersion, start, stop)
	if crawlErr != nil {
		// The scheduler only sees stdout and the audit record; exit codes
		// stay zero so a failed crawl never wedges the pipeline.
		cmd.Println("JOB RUN FAILED")
		cmd.Println(crawlErr.Error())
		logging.L.Error("Crawl failed", zap.String("job_id", meta.ID), zap.Error(crawlErr))
		meta.MarkFailed(crawlErr)
		metrics.RecordJob("failure")
	} else {
		logging.L.Info("Crawl finished", zap.String("job_id", meta.ID))
		metrics.RecordJob("success")
	}

	if err := store.StoreJob(ctx, meta.Object(), meta.CSV()); err != nil {
		logging.L.Error("Failed to store job metadata",
			zap.String("object", meta.Object()), zap.Error(err))
	}

	notifyJobFinished(ctx, cfg.Notify, meta.ID, crawlErr == nil)
	return nil
}

func runCrawl(ctx context.Context, cfg config.Config, store *storage.Storage, apiVersion string, start, stop time.Time) error {
	adapter, err := nhl.NewRegistry().AdapterFor(apiVersion)
	if err != nil {
		return err
	}
	crawler := adapter.NewCrawler(cfg, store, logging.L.Named("crawler"))
	return crawler.Crawl(ctx, start, stop)
}

// resolveDateRange applies the yesterday-through-today defaults and parses
// any explicit flag overrides.
func resolveDateRange(now time.Time, fromDate, toDate string) (time.Time, time.Time, error) {
	start := now.AddDate(0, 0, -1)
	stop := now

	if fromDate != "" {
		parsed, err := time.Parse(queryDateLayout, fromDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from-date %q: %w", fromDate, err)
		}
		start = parsed
	}
	if toDate != "" {
		parsed, err := time.Parse(queryDateLayout, toDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to-date %q: %w", toDate, err)
		}
		stop = parsed
	}
	if stop.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("date range ends %s before it starts %s",
			stop.Format(queryDateLayout), start.Format(queryDateLayout))
	}
	return start, stop, nil
}

// notifyJobFinished publishes the completion event when a topic is
// configured. Notification failures are logged, never fatal.
func notifyJobFinished(ctx context.Context, cfg config.NotifyConfig, jobID string, successful bool) {
	if cfg.ProjectID == "" || cfg.TopicName == "" {
		return
	}
	notifier, err := notify.NewPubSub(ctx, cfg.ProjectID, cfg.TopicName)
	if err != nil {
		logging.L.Warn("Failed to build notifier", zap.Error(err))
		return
	}
	defer func() {
		if cerr := notifier.Close(); cerr != nil {
			logging.L.Warn("Failed to close notifier", zap.Error(cerr))
		}
	}()

	if err := notifier.JobFinished(ctx, jobID, successful); err != nil {
		logging.L.Warn("Failed to publish job notification", zap.Error(err))
	}
}
