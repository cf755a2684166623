package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/prestahub/psnew/pkg/domain/interfaces"
	"github.com/prestahub/psnew/pkg/domain/model"
	"github.com/prestahub/psnew/pkg/domain/types"
	"github.com/prestahub/psnew/pkg/utils/tempname"
)

const (
	// DefaultURLTemplate builds a release URL from an explicit version
	DefaultURLTemplate = "https://download.prestashop.com/download/releases/prestashop_%s.zip"

	// DefaultFixturesDir is where packaged fixture bundles live, relative to
	// the tool installation
	DefaultFixturesDir = "fixtures"

	// archiveRoot is the single top-level directory every release archive is
	// expected to contain. Its absence means upstream format drift.
	archiveRoot = "prestashop"
)

type scaffoldUseCase struct {
	feed      interfaces.FeedClient
	fetcher   interfaces.Fetcher
	extractor interfaces.Extractor

	names       *tempname.Generator
	urlTemplate string
	fixturesDir string
	progress    func(msg string)
}

// Option configures the scaffold use case
type Option func(*scaffoldUseCase)

// WithURLTemplate replaces the explicit-version download URL template
func WithURLTemplate(tmpl string) Option {
	return func(uc *scaffoldUseCase) {
		if tmpl != "" {
			uc.urlTemplate = tmpl
		}
	}
}

// WithFixturesDir replaces the packaged fixtures directory
func WithFixturesDir(dir string) Option {
	return func(uc *scaffoldUseCase) {
		if dir != "" {
			uc.fixturesDir = dir
		}
	}
}

// WithNameGenerator replaces the temp name generator
func WithNameGenerator(g *tempname.Generator) Option {
	return func(uc *scaffoldUseCase) {
		if g != nil {
			uc.names = g
		}
	}
}

// WithProgress registers a callback for user-facing progress messages
func WithProgress(fn func(msg string)) Option {
	return func(uc *scaffoldUseCase) {
		if fn != nil {
			uc.progress = fn
		}
	}
}

// NewScaffold creates a new instance of ScaffoldUseCase
func NewScaffold(
	feedClient interfaces.FeedClient,
	fetcher interfaces.Fetcher,
	extractor interfaces.Extractor,
	opts ...Option,
) interfaces.ScaffoldUseCase {
	uc := &scaffoldUseCase{
		feed:        feedClient,
		fetcher:     fetcher,
		extractor:   extractor,
		names:       tempname.New("psnew"),
		urlTemplate: DefaultURLTemplate,
		fixturesDir: DefaultFixturesDir,
		progress:    func(string) {},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Scaffold runs the full create-new-shop pipeline: existence guard, URL
// resolution, download, extraction, relocation, fixture overlay. Temp
// artifacts are removed in a finalizer on both success and failure paths.
func (uc *scaffoldUseCase) Scaffold(ctx context.Context, req *model.ScaffoldRequest) (*model.ScaffoldResult, error) {
	logger := ctxlog.From(ctx)

	r := *req
	if r.WorkDir == "" {
		r.WorkDir = "."
	}
	target := r.TargetPath()

	// The guard runs once, before any network or disk work. Not atomic
	// against other processes; acceptable for a single-operator CLI.
	if _, err := os.Stat(target); err == nil {
		return nil, goerr.New("destination already exists",
			goerr.T(types.TagAlreadyExists),
			goerr.V("path", target))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, goerr.Wrap(err, "failed to inspect destination",
			goerr.T(types.TagAlreadyExists),
			goerr.V("path", target))
	}

	res := &model.ScaffoldResult{
		TargetDir:   target,
		Release:     strings.TrimSpace(r.Release),
		TempArchive: filepath.Join(r.WorkDir, uc.names.Next(".zip")),
		TempDir:     filepath.Join(r.WorkDir, uc.names.Next("")),
	}
	defer uc.cleanup(ctx, res)

	uc.progress(fmt.Sprintf("Creating a new shop in %s", target))

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"resolve", func(ctx context.Context) error {
			url, err := uc.resolveURL(ctx, res.Release)
			if err != nil {
				return err
			}
			res.SourceURL = url
			uc.progress(fmt.Sprintf("Downloading PrestaShop from %s", url))
			return nil
		}},
		{"download", func(ctx context.Context) error {
			return uc.fetcher.Fetch(ctx, res.SourceURL, res.TempArchive)
		}},
		{"extract", func(ctx context.Context) error {
			uc.progress("Extracting files...")
			return uc.extractor.Extract(ctx, res.TempArchive, res.TempDir)
		}},
		{"relocate", func(ctx context.Context) error {
			return uc.relocate(res.TempDir, target)
		}},
		{"overlay", func(ctx context.Context) error {
			return uc.overlay(ctx, r.Fixture, target)
		}},
	}

	for _, step := range steps {
		started := time.Now()
		if err := step.run(ctx); err != nil {
			return nil, err
		}
		logger.Debug("scaffold step completed",
			"step", step.name,
			"elapsed", time.Since(started),
		)
	}

	return res, nil
}

// resolveURL builds the download URL from an explicit version, or asks the
// feed for the latest stable link. An explicit version performs no network
// call and no remote validation; a bad version surfaces as a download error.
func (uc *scaffoldUseCase) resolveURL(ctx context.Context, release string) (string, error) {
	if release != "" {
		return fmt.Sprintf(uc.urlTemplate, release), nil
	}
	return uc.feed.LatestStable(ctx)
}

// relocate moves the archive's single expected top-level directory to the
// target path with one atomic rename.
func (uc *scaffoldUseCase) relocate(tempDir, target string) error {
	src := filepath.Join(tempDir, archiveRoot)
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return goerr.New("archive does not contain the expected root directory",
			goerr.T(types.TagLayout),
			goerr.V("expected", archiveRoot),
			goerr.V("temp_dir", tempDir))
	}

	if err := os.Rename(src, target); err != nil {
		return goerr.Wrap(err, "failed to move shop into place",
			goerr.T(types.TagLayout),
			goerr.V("src", src),
			goerr.V("target", target))
	}

	return nil
}

// cleanup removes temp artifacts. Best effort: by the time it matters the
// primary operation already succeeded, so failures are logged, not returned.
func (uc *scaffoldUseCase) cleanup(ctx context.Context, res *model.ScaffoldResult) {
	logger := ctxlog.From(ctx)

	if err := os.Remove(res.TempArchive); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to remove temp archive",
			"path", res.TempArchive,
			"error", err,
		)
	}
	if err := os.RemoveAll(res.TempDir); err != nil {
		logger.Warn("failed to remove temp directory",
			"path", res.TempDir,
			"error", err,
		)
	}
}
