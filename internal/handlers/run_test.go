package handlers

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/tendant/catalog-image-pipeline/internal/config"
	"github.com/tendant/catalog-image-pipeline/internal/pipeline"
	"github.com/tendant/catalog-image-pipeline/pkg/catalog"
)

func newTestHandler(t *testing.T) *RunHandler {
	t.Helper()

	cfg := config.Config{SourceDir: t.TempDir()}
	cfg.WithDefaults()

	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(cfg.SourceDir, "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}

	return NewRunHandler(pipeline.New(cfg))
}

func TestHandleRun(t *testing.T) {
	h := newTestHandler(t)

	t.Run("rejects GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.HandleRun(rec, httptest.NewRequest(http.MethodGet, "/v1/run", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
	})

	t.Run("runs the pipeline and returns the result", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.HandleRun(rec, httptest.NewRequest(http.MethodPost, "/v1/run", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}

		var res catalog.Result
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if res.Optimized != 1 || res.Thumbnails != 1 {
			t.Errorf("got optimized=%d thumbnails=%d, want 1/1", res.Optimized, res.Thumbnails)
		}
		if res.RunID == "" {
			t.Error("result missing run_id")
		}
	})
}

func TestHandleLast(t *testing.T) {
	h := newTestHandler(t)

	t.Run("404 before any run", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.HandleLast(rec, httptest.NewRequest(http.MethodGet, "/v1/runs/last", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("returns the most recent result", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.HandleRun(rec, httptest.NewRequest(http.MethodPost, "/v1/run", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("run failed: %d %s", rec.Code, rec.Body)
		}

		rec = httptest.NewRecorder()
		h.HandleLast(rec, httptest.NewRequest(http.MethodGet, "/v1/runs/last", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var res catalog.Result
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if res.Scanned != 1 {
			t.Errorf("scanned = %d, want 1", res.Scanned)
		}
	})
}
