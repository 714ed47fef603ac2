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

// DerivedStore writes derived outputs into one directory per output kind.
type DerivedStore struct {
	dirs map[catalog.Kind]string
}

// NewDerivedStore creates a store writing optimized outputs to optimizedDir
// and thumbnails to thumbDir.
func NewDerivedStore(optimizedDir, thumbDir string) *DerivedStore {
	return &DerivedStore{
		dirs: map[catalog.Kind]string{
			catalog.KindOptimized: optimizedDir,
			catalog.KindThumbnail: thumbDir,
		},
	}
}

// EnsureDirs creates the output directories. Failure here is the one setup
// condition the run does not degrade around.
func (ds *DerivedStore) EnsureDirs() error {
	for kind, dir := range ds.dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", kind, err)
		}
	}
	return nil
}

// OutputName maps a source filename to its derived filename.
func OutputName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + catalog.TargetExt
}

// Has reports whether a derived output of the given kind already exists for
// the source filename.
func (ds *DerivedStore) Has(ctx context.Context, kind catalog.Kind, name string) (bool, error) {
	path, err := ds.outputPath(kind, name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat derived output: %w", err)
	}
	return true, nil
}

// Put writes (or overwrites) the derived output for the source filename and
// returns its path.
func (ds *DerivedStore) Put(ctx context.Context, kind catalog.Kind, name string, r io.Reader) (string, error) {
	path, err := ds.outputPath(kind, name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create derived output: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write derived output: %w", err)
	}

	return path, nil
}

func (ds *DerivedStore) outputPath(kind catalog.Kind, name string) (string, error) {
	dir, ok := ds.dirs[kind]
	if !ok {
		return "", fmt.Errorf("unknown output kind: %s", kind)
	}

	path := filepath.Join(dir, OutputName(name))

	// Security: prevent directory traversal
	if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(dir)) {
		return "", fmt.Errorf("invalid name: path traversal detected")
	}

	return path, nil
}
