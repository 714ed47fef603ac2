package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds pipeline configuration, populated from the environment.
type Config struct {
	// SourceDir is the directory scanned for catalog source images.
	SourceDir string

	// OptimizedDir receives full-size watermarked outputs.
	// Optional. Defaults to <SourceDir>/optimized.
	OptimizedDir string

	// ThumbDir receives bounded-box thumbnails.
	// Optional. Defaults to <SourceDir>/thumbs.
	ThumbDir string

	// TrackerFile is the JSON array of already-optimized source filenames.
	// Optional. Defaults to <SourceDir>/converted.json.
	TrackerFile string

	// WatermarkText is the brand label composited onto every output.
	WatermarkText string

	// ThumbSize is the square bounding box for thumbnails, in pixels.
	ThumbSize int

	// Quality is the webp encoding quality for both output kinds.
	Quality int

	// HTTPAddr is the listen address for the worker command.
	HTTPAddr string

	// GitRemote and GitBranch configure the publish step. When GitRemote is
	// empty, publish pushes to the repository's default upstream.
	GitRemote string
	GitBranch string
}

// FromEnv reads configuration from CATALOG_* environment variables.
func FromEnv() Config {
	return Config{
		SourceDir:     os.Getenv("CATALOG_SOURCE_DIR"),
		OptimizedDir:  os.Getenv("CATALOG_OPTIMIZED_DIR"),
		ThumbDir:      os.Getenv("CATALOG_THUMB_DIR"),
		TrackerFile:   os.Getenv("CATALOG_TRACKER_FILE"),
		WatermarkText: os.Getenv("CATALOG_WATERMARK_TEXT"),
		ThumbSize:     envInt("CATALOG_THUMB_SIZE"),
		Quality:       envInt("CATALOG_QUALITY"),
		HTTPAddr:      os.Getenv("WORKER_HTTP_ADDR"),
		GitRemote:     os.Getenv("CATALOG_GIT_REMOTE"),
		GitBranch:     os.Getenv("CATALOG_GIT_BRANCH"),
	}
}

// WithDefaults fills in default values for optional fields.
func (c *Config) WithDefaults() {
	if c.SourceDir == "" {
		c.SourceDir = "catalog"
	}
	if c.OptimizedDir == "" {
		c.OptimizedDir = filepath.Join(c.SourceDir, "optimized")
	}
	if c.ThumbDir == "" {
		c.ThumbDir = filepath.Join(c.SourceDir, "thumbs")
	}
	if c.TrackerFile == "" {
		c.TrackerFile = filepath.Join(c.SourceDir, "converted.json")
	}
	if c.WatermarkText == "" {
		c.WatermarkText = "© Catalog"
	}
	if c.ThumbSize == 0 {
		c.ThumbSize = 400
	}
	if c.Quality == 0 {
		c.Quality = 80
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
