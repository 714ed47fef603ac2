package catalog

// Kind identifies a family of derived outputs.
type Kind string

const (
	KindOptimized Kind = "optimized"
	KindThumbnail Kind = "thumbnail"
)

// TargetExt is the extension every derived output is written with. Source
// files already carrying it are never treated as candidates.
const TargetExt = ".webp"

// Result summarizes a single pipeline run.
type Result struct {
	RunID           string `json:"run_id"`
	Scanned         int    `json:"scanned"`
	Optimized       int    `json:"optimized"`
	OptimizeSkipped int    `json:"optimize_skipped"`
	OptimizeFailed  int    `json:"optimize_failed"`
	Thumbnails      int    `json:"thumbnails"`
	ThumbnailFailed int    `json:"thumbnail_failed"`
	Tracked         int    `json:"tracked"`
}
