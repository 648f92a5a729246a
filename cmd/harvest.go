package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rfpwatch/harvester/internal/config"
	"github.com/rfpwatch/harvester/internal/fetch"
	"github.com/rfpwatch/harvester/internal/harvest"
	"github.com/rfpwatch/harvester/internal/logging"
	"github.com/rfpwatch/harvester/internal/store"
)

// newHarvestCmd creates the 'harvest' subcommand, which runs one full pass
// over every configured portal.
func newHarvestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "harvest",
		Short: "Run one harvest pass over the configured portals",
		Long: `Visits each configured landing page, downloads any new PDF or Word
documents, extracts issue dates and deadlines, and merges the results into
the catalog file. Unreachable portals and broken documents are logged and
skipped; the catalog is always rewritten at the end of the pass.`,
		RunE: runHarvestCommand,
	}
}

func runHarvestCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	docs, err := store.New(store.Config{Dir: cfg.Store.Dir})
	if err != nil {
		return fmt.Errorf("init document store: %w", err)
	}

	client := fetch.New(fetch.Config{
		UserAgent:  cfg.HTTP.UserAgent,
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.HTTP.MaxRetries,
		Backoff:    cfg.Backoff(),
	}, logger)

	harvester := harvest.New(harvest.Config{
		Sources:     cfg.Sources,
		CatalogPath: cfg.Catalog.Path,
	}, client, docs, nil, logger)

	summary, err := harvester.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run harvest: %w", err)
	}

	logger.Info("Done",
		zap.Int("new_records", summary.New),
		zap.Int("catalog_total", summary.Total),
		zap.String("catalog", cfg.Catalog.Path),
	)
	return nil
}
