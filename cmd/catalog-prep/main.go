package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/tendant/catalog-image-pipeline/internal/config"
	"github.com/tendant/catalog-image-pipeline/internal/pipeline"
)

// One-shot batch run over the configured source directory. Per-image failures
// are logged and the process still exits zero; only setup failures (output
// directories, unreadable source directory) are fatal.
func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg := config.FromEnv()
	cfg.WithDefaults()

	log.Printf("Catalog image preparation")
	log.Printf("  Source directory:    %s", cfg.SourceDir)
	log.Printf("  Optimized directory: %s", cfg.OptimizedDir)
	log.Printf("  Thumbnail directory: %s", cfg.ThumbDir)
	log.Printf("  Tracker file:        %s", cfg.TrackerFile)

	runner := pipeline.New(cfg)
	result, err := runner.Run(context.Background())
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	log.Printf("✓ %d newly optimized, %d thumbnails regenerated, %d files tracked",
		result.Optimized, result.Thumbnails, result.Tracked)
	if result.OptimizeFailed > 0 || result.ThumbnailFailed > 0 {
		log.Printf("  %d optimize failures, %d thumbnail failures (will retry next run)",
			result.OptimizeFailed, result.ThumbnailFailed)
	}
}
