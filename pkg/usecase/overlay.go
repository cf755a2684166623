package usecase

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/prestahub/psnew/pkg/domain/model"
)

// overlay mirrors the packaged fixture bundle into the target directory,
// overwriting files at the same relative path. A missing bundle directory is
// a packaging gap, not a user error: skip silently.
func (uc *scaffoldUseCase) overlay(ctx context.Context, fixture model.Fixture, target string) error {
	if fixture == model.FixtureNone {
		return nil
	}

	src := filepath.Join(uc.fixturesDir, string(fixture))
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		ctxlog.From(ctx).Debug("fixture bundle not found, skipping overlay",
			"fixture", string(fixture),
			"path", src,
		)
		return nil
	}

	if err := copyTree(src, target); err != nil {
		return goerr.Wrap(err, "failed to apply fixture overlay",
			goerr.V("fixture", string(fixture)),
			goerr.V("src", src),
			goerr.V("target", target))
	}

	ctxlog.From(ctx).Debug("applied fixture overlay",
		"fixture", string(fixture),
		"target", target,
	)

	return nil
}

// copyTree recursively copies src into dst, overwriting existing files
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		destPath := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(destPath, 0o755)
		}
		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
