package harvest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourcesVisited tracks the number of landing pages fetched.
	SourcesVisited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_sources_visited_total",
		Help: "The total number of source landing pages visited.",
	})
	// SourceErrors tracks sources skipped because the landing page fetch failed.
	SourceErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_source_errors_total",
		Help: "The total number of sources skipped due to fetch failures.",
	})
	// LinksDiscovered tracks candidate document links found on landing pages.
	LinksDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_links_discovered_total",
		Help: "The total number of candidate document links discovered.",
	})
	// LinksSkipped tracks links skipped as unsupported or already stored.
	LinksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_links_skipped_total",
		Help: "The total number of links skipped (unsupported type or already seen).",
	})
	// DocumentsDownloaded tracks documents fetched and persisted to the store.
	DocumentsDownloaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_documents_downloaded_total",
		Help: "The total number of documents downloaded and stored.",
	})
	// DownloadErrors tracks document fetches that failed after retries.
	DownloadErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_download_errors_total",
		Help: "The total number of failed document downloads.",
	})
)
