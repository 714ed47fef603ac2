package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendant/catalog-image-pipeline/internal/config"
	"github.com/tendant/catalog-image-pipeline/internal/handlers"
	"github.com/tendant/catalog-image-pipeline/internal/pipeline"
)

// Long-running trigger service: runs the batch pipeline on demand and exposes
// run counters for scraping.
func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg := config.FromEnv()
	cfg.WithDefaults()

	log.Printf("Catalog pipeline worker")
	log.Printf("  Source directory: %s", cfg.SourceDir)
	log.Printf("  HTTP address:     %s", cfg.HTTPAddr)

	runner := pipeline.New(cfg)
	runHandler := handlers.NewRunHandler(runner)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/v1/run", runHandler.HandleRun)
	mux.HandleFunc("/v1/runs/last", runHandler.HandleLast)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("✓ Catalog worker ready on %s", cfg.HTTPAddr)
		log.Printf("")
		log.Printf("Available endpoints:")
		log.Printf("  GET  /health       - Health check")
		log.Printf("  POST /v1/run       - Run one batch conversion pass")
		log.Printf("  GET  /v1/runs/last - Most recent run result")
		log.Printf("  GET  /metrics      - Prometheus metrics")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// handleHealth returns health status
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}
