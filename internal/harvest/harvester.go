// Package harvest drives the harvest-and-merge pipeline: visit each
// configured portal, discover document links, download what is new, extract
// metadata, and fold the results into the persistent catalog.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rfpwatch/harvester/internal/catalog"
	"github.com/rfpwatch/harvester/internal/extract"
	"github.com/rfpwatch/harvester/internal/identity"
	"github.com/rfpwatch/harvester/internal/links"
	"github.com/rfpwatch/harvester/internal/store"
)

// Fetcher fetches a URL and returns the body bytes.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Config captures the read-only inputs of a harvest run.
type Config struct {
	// Sources maps portal tags to landing-page URLs.
	Sources map[string]string
	// CatalogPath is the JSON catalog file read and rewritten each run.
	CatalogPath string
}

// Summary reports what one run accomplished.
type Summary struct {
	// New is the number of freshly harvested records this run.
	New int
	// Total is the catalog size after merging.
	Total int
}

// Harvester wires the pipeline together. All failure isolation lives here:
// a dead portal or a bad document is logged and skipped, never fatal.
type Harvester struct {
	cfg     Config
	fetcher Fetcher
	docs    *store.Store
	extract extract.Func
	logger  *zap.Logger
}

// New builds a Harvester. extractFn may be nil, in which case the default
// format-dispatching extractor is used.
func New(cfg Config, fetcher Fetcher, docs *store.Store, extractFn extract.Func, logger *zap.Logger) *Harvester {
	if extractFn == nil {
		extractFn = extract.ForFile
	}
	return &Harvester{
		cfg:     cfg,
		fetcher: fetcher,
		docs:    docs,
		extract: extractFn,
		logger:  logger,
	}
}

// Run executes one full harvest pass and always finishes by writing the
// merged catalog, even when nothing new was found.
func (h *Harvester) Run(ctx context.Context) (Summary, error) {
	logger := h.logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("Harvest starting", zap.Int("sources", len(h.cfg.Sources)))

	seen, err := h.docs.Seen()
	if err != nil {
		return Summary{}, fmt.Errorf("load seen documents: %w", err)
	}

	fresh := h.harvestSources(ctx, logger, seen)

	existing, err := catalog.Load(h.cfg.CatalogPath)
	if err != nil {
		var corrupt *catalog.CorruptError
		if !errors.As(err, &corrupt) {
			return Summary{}, fmt.Errorf("load catalog: %w", err)
		}
		logger.Warn("Catalog is corrupt; starting from an empty catalog", zap.Error(err))
	}

	merged := catalog.Merge(existing, fresh)
	if err := catalog.Save(h.cfg.CatalogPath, merged); err != nil {
		return Summary{}, fmt.Errorf("save catalog: %w", err)
	}

	summary := Summary{New: len(fresh), Total: len(merged)}
	logger.Info("Harvest complete",
		zap.Int("new_records", summary.New),
		zap.Int("catalog_total", summary.Total),
	)
	return summary, nil
}

// harvestSources visits portals one at a time, in tag order for stable logs.
func (h *Harvester) harvestSources(ctx context.Context, logger *zap.Logger, seen map[string]struct{}) []catalog.Record {
	tags := make([]string, 0, len(h.cfg.Sources))
	for tag := range h.cfg.Sources {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var fresh []catalog.Record
	for _, tag := range tags {
		pageURL := h.cfg.Sources[tag]
		srcLogger := logger.With(zap.String("portal", tag), zap.String("page", pageURL))
		srcLogger.Info("Visiting source")
		SourcesVisited.Inc()

		page, err := h.fetcher.Get(ctx, pageURL)
		if err != nil {
			srcLogger.Warn("Skipping unreachable source", zap.Error(err))
			SourceErrors.Inc()
			continue
		}
		base, err := url.Parse(pageURL)
		if err != nil {
			srcLogger.Warn("Skipping source with unparsable URL", zap.Error(err))
			SourceErrors.Inc()
			continue
		}

		found := links.Extract(page, base)
		LinksDiscovered.Add(float64(len(found)))
		srcLogger.Info("Discovered links", zap.Int("count", len(found)))

		for _, link := range found {
			if record, ok := h.harvestLink(ctx, srcLogger, seen, tag, link); ok {
				fresh = append(fresh, record)
			}
		}
	}
	return fresh
}

// harvestLink downloads, stores, and describes one discovered document.
// Every skip reason returns ok=false; the caller moves on to the next link.
func (h *Harvester) harvestLink(
	ctx context.Context,
	logger *zap.Logger,
	seen map[string]struct{},
	tag, link string,
) (catalog.Record, bool) {
	kind, ok := extract.KindForURL(link)
	if !ok {
		logger.Info("Skipping unsupported file type", zap.String("link", link))
		LinksSkipped.Inc()
		return catalog.Record{}, false
	}

	id := identity.FromURL(link)
	if _, dup := seen[id]; dup {
		logger.Debug("Skipping already stored document", zap.String("link", link))
		LinksSkipped.Inc()
		return catalog.Record{}, false
	}

	logger.Info("Downloading document", zap.String("link", link))
	data, err := h.fetcher.Get(ctx, link)
	if err != nil {
		logger.Warn("Download failed", zap.String("link", link), zap.Error(err))
		DownloadErrors.Inc()
		return catalog.Record{}, false
	}

	if _, err := h.docs.Save(id, string(kind), data); err != nil {
		logger.Warn("Failed to store document", zap.String("link", link), zap.Error(err))
		return catalog.Record{}, false
	}
	seen[id] = struct{}{}
	DocumentsDownloaded.Inc()

	meta := h.extract(link, data)
	return catalog.Record{
		Posted:   meta.Posted,
		Deadline: meta.Deadline,
		Snippet:  meta.Snippet,
		Portal:   tag,
		Source:   link,
	}, true
}
