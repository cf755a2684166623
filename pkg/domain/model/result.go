package model

// ScaffoldResult reports what a completed scaffold run produced
type ScaffoldResult struct {
	TargetDir   string // Final shop directory
	SourceURL   string // Archive URL the distribution came from
	Release     string // Explicit version requested, empty for latest stable
	TempArchive string // Downloaded archive path (removed when the run ends)
	TempDir     string // Extraction directory (removed when the run ends)
}
