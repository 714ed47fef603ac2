package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tendant/catalog-image-pipeline/pkg/catalog"
)

// imageExts is the allow-list of source image extensions.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Source enumerates and reads catalog source images from a local directory.
type Source struct {
	dir         string
	trackerName string
}

// NewSource creates a source over dir. trackerFile is the tracker's path; its
// base name is excluded from candidates since the tracker conventionally lives
// inside the source directory.
func NewSource(dir, trackerFile string) *Source {
	return &Source{
		dir:         dir,
		trackerName: filepath.Base(trackerFile),
	}
}

// Dir returns the source directory.
func (s *Source) Dir() string {
	return s.dir
}

// ListImages returns the candidate source filenames: regular, non-hidden
// files with an allow-listed extension that are not already in the target
// output format and not the tracker file. Order follows the directory
// listing; callers must not rely on it beyond visiting each file once.
func (s *Source) ListImages(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == s.trackerName {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == catalog.TargetExt || !imageExts[ext] {
			continue
		}
		names = append(names, name)
	}

	return names, nil
}

// Open returns a reader for the named source file.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path := filepath.Join(s.dir, name)

	// Security: prevent directory traversal
	if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.dir)) {
		return nil, fmt.Errorf("invalid name: path traversal detected")
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source file not found: %s", name)
		}
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}

	return file, nil
}
