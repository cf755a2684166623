package interfaces

import "context"

// Fetcher downloads a URL body into a local file
type Fetcher interface {
	// Fetch issues a single GET and writes the full response body to dest,
	// overwriting any existing file
	Fetch(ctx context.Context, url, dest string) error
}

// Extractor unpacks an archive file into a directory
type Extractor interface {
	// Extract opens the archive and extracts every entry preserving relative
	// paths, creating the destination directory structure as needed
	Extract(ctx context.Context, archivePath, destDir string) error
}
