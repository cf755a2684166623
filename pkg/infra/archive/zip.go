package archive

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/prestahub/psnew/pkg/domain/types"
)

// ZipExtractor unpacks zip archives to a directory
type ZipExtractor struct{}

// NewZip creates a ZipExtractor
func NewZip() *ZipExtractor {
	return &ZipExtractor{}
}

// Extract opens the archive and extracts every entry preserving relative
// paths, creating the destination directory as needed.
func (x *ZipExtractor) Extract(ctx context.Context, archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return goerr.Wrap(err, "failed to open archive",
			goerr.T(types.TagExtraction),
			goerr.V("archive", archivePath))
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create extraction directory",
			goerr.T(types.TagExtraction),
			goerr.V("dest", destDir))
	}

	for _, f := range r.File {
		if err := extractEntry(f, destDir); err != nil {
			return goerr.Wrap(err, "failed to extract entry",
				goerr.T(types.TagExtraction),
				goerr.V("entry", f.Name))
		}
	}

	ctxlog.From(ctx).Debug("extracted archive",
		"archive", archivePath,
		"dest", destDir,
		"entries", len(r.File),
	)

	return nil
}

// extractEntry writes a single archive entry under destDir
func extractEntry(f *zip.File, destDir string) error {
	// Reject entries escaping the destination via ".." components
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("entry escapes destination directory",
			goerr.V("entry", f.Name))
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := f.FileInfo().Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	w, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, rc); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}
