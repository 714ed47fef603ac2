package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline counters, registered on the default registry and scraped from the
// worker's /metrics endpoint.
var (
	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_runs_completed_total",
		Help: "Pipeline runs completed.",
	})

	ImagesOptimized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_images_optimized_total",
		Help: "Source images converted to the optimized format.",
	})

	OptimizeSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_optimize_skipped_total",
		Help: "Optimize passes skipped because the source was already tracked.",
	})

	OptimizeFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_optimize_failed_total",
		Help: "Optimize passes that failed and were left untracked.",
	})

	ThumbnailsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_thumbnails_written_total",
		Help: "Thumbnails generated (regenerated every run).",
	})

	ThumbnailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_thumbnails_failed_total",
		Help: "Thumbnail passes that failed.",
	})
)
