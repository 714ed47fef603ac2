package pipeline

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/tendant/catalog-image-pipeline/internal/config"
	"github.com/tendant/catalog-image-pipeline/internal/convert"
	"github.com/tendant/catalog-image-pipeline/internal/metrics"
	"github.com/tendant/catalog-image-pipeline/internal/storage"
	"github.com/tendant/catalog-image-pipeline/internal/tracker"
	"github.com/tendant/catalog-image-pipeline/internal/watermark"
	"github.com/tendant/catalog-image-pipeline/pkg/catalog"
)

// Runner executes the conversion pipeline: enumerate sources, optimize
// untracked files, regenerate every thumbnail, persist the tracker.
type Runner struct {
	source    *storage.Source
	derived   *storage.DerivedStore
	converter *convert.Converter
	tracker   *tracker.Tracker
}

// New wires a runner from configuration.
func New(cfg config.Config) *Runner {
	source := storage.NewSource(cfg.SourceDir, cfg.TrackerFile)
	derived := storage.NewDerivedStore(cfg.OptimizedDir, cfg.ThumbDir)
	generator := watermark.NewGenerator(cfg.WatermarkText)

	return &Runner{
		source:    source,
		derived:   derived,
		converter: convert.New(source, derived, generator, cfg.ThumbSize, cfg.Quality),
		tracker:   tracker.New(cfg.TrackerFile),
	}
}

// Run executes one sequential pass over the source directory. Per-image
// failures are logged and never abort the run; the returned error covers only
// the setup conditions nothing degrades around (output directories cannot be
// created, source directory cannot be read).
func (r *Runner) Run(ctx context.Context) (*catalog.Result, error) {
	runID := uuid.New().String()
	log.Printf("[%s] Starting catalog run over %s", runID, r.source.Dir())

	if err := r.derived.EnsureDirs(); err != nil {
		return nil, err
	}

	tracked := r.tracker.Load()
	log.Printf("[%s] Tracker loaded: %d files already optimized", runID, len(tracked))

	names, err := r.source.ListImages(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("[%s] Found %d candidate source images", runID, len(names))

	result := &catalog.Result{RunID: runID, Scanned: len(names)}

	for _, name := range names {
		if tracked.Has(name) {
			result.OptimizeSkipped++
			metrics.OptimizeSkipped.Inc()
		} else {
			written, err := r.converter.Optimize(ctx, name)
			switch {
			case err != nil:
				log.Printf("[%s] Failed to optimize %s: %v", runID, name, err)
				result.OptimizeFailed++
				metrics.OptimizeFailed.Inc()
			case written:
				tracked.Add(name)
				result.Optimized++
				metrics.ImagesOptimized.Inc()
				log.Printf("[%s] ✓ Optimized %s", runID, name)
			default:
				result.OptimizeSkipped++
				metrics.OptimizeSkipped.Inc()
			}
		}

		// Thumbnails are regenerated every run regardless of tracked
		// status; a failed thumbnail is simply retried next run.
		if err := r.converter.Thumbnail(ctx, name); err != nil {
			log.Printf("[%s] Failed to thumbnail %s: %v", runID, name, err)
			result.ThumbnailFailed++
			metrics.ThumbnailsFailed.Inc()
		} else {
			result.Thumbnails++
			metrics.ThumbnailsWritten.Inc()
		}
	}

	if err := r.tracker.Save(tracked); err != nil {
		// The run's outputs are already on disk; a tracker save failure
		// costs redundant reprocessing next run, not correctness.
		log.Printf("[%s] Failed to save tracker: %v", runID, err)
	}
	result.Tracked = len(tracked)

	metrics.RunsCompleted.Inc()
	log.Printf("[%s] Run complete: %d optimized, %d skipped, %d thumbnails, %d tracked",
		runID, result.Optimized, result.OptimizeSkipped, result.Thumbnails, result.Tracked)

	return result, nil
}
