package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/tendant/catalog-image-pipeline/internal/pipeline"
	"github.com/tendant/catalog-image-pipeline/pkg/catalog"
)

// RunHandler triggers pipeline runs over HTTP. The pipeline is single-run by
// contract, so overlapping triggers are rejected rather than queued.
type RunHandler struct {
	runner *pipeline.Runner

	mu      sync.Mutex
	running bool
	last    *catalog.Result
}

// NewRunHandler creates a handler around the given runner.
func NewRunHandler(runner *pipeline.Runner) *RunHandler {
	return &RunHandler{runner: runner}
}

// HandleRun handles POST /v1/run - executes one batch run synchronously and
// returns its result.
func (h *RunHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		http.Error(w, "A run is already in progress", http.StatusConflict)
		return
	}
	h.running = true
	h.mu.Unlock()

	result, err := h.runner.Run(r.Context())

	h.mu.Lock()
	h.running = false
	if result != nil {
		h.last = result
	}
	h.mu.Unlock()

	if err != nil {
		log.Printf("Run failed: %v", err)
		http.Error(w, "Run failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// HandleLast handles GET /v1/runs/last - returns the most recent completed
// run result.
func (h *RunHandler) HandleLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	last := h.last
	h.mu.Unlock()

	if last == nil {
		http.Error(w, "No completed runs", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(last)
}
