package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/tendant/catalog-image-pipeline/internal/config"
	"github.com/tendant/catalog-image-pipeline/internal/pipeline"
	"github.com/tendant/catalog-image-pipeline/internal/publish"
)

// Runs one conversion pass, then stages, commits, and pushes the outputs.
// Unlike the core run, the publish chain aborts on the first failing step and
// exits non-zero.
func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg := config.FromEnv()
	cfg.WithDefaults()

	repoDir := os.Getenv("CATALOG_REPO_DIR")
	if repoDir == "" {
		repoDir = "."
	}

	ctx := context.Background()

	runner := pipeline.New(cfg)
	result, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("✓ Run complete: %d newly optimized, %d thumbnails", result.Optimized, result.Thumbnails)

	publisher := publish.New(repoDir, cfg.GitRemote, cfg.GitBranch,
		cfg.OptimizedDir, cfg.ThumbDir, cfg.TrackerFile)
	if err := publisher.Publish(ctx); err != nil {
		log.Fatalf("Publish failed: %v", err)
	}
}
