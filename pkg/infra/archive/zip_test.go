package archive_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/prestahub/psnew/pkg/domain/types"
	"github.com/prestahub/psnew/pkg/infra/archive"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		gt.NoError(t, err)
		_, err = w.Write([]byte(content))
		gt.NoError(t, err)
	}
	gt.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "test.zip")
	gt.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExtract_PreservesRelativePaths(t *testing.T) {
	archivePath := writeZip(t, map[string]string{
		"prestashop/index.php":            "<?php",
		"prestashop/img/logo.png":         "png-bytes",
		"prestashop/config/settings.php":  "<?php // settings",
		"prestashop/themes/default/a.tpl": "tpl",
	})

	dest := filepath.Join(t.TempDir(), "out")
	x := archive.NewZip()
	gt.NoError(t, x.Extract(context.Background(), archivePath, dest))

	for rel, want := range map[string]string{
		"prestashop/index.php":            "<?php",
		"prestashop/img/logo.png":         "png-bytes",
		"prestashop/config/settings.php":  "<?php // settings",
		"prestashop/themes/default/a.tpl": "tpl",
	} {
		got, err := os.ReadFile(filepath.Join(dest, rel))
		gt.NoError(t, err)
		gt.Equal(t, string(got), want)
	}
}

func TestExtract_CreatesDestination(t *testing.T) {
	archivePath := writeZip(t, map[string]string{"a.txt": "a"})

	// dest does not exist beforehand
	dest := filepath.Join(t.TempDir(), "deep", "nested", "out")
	x := archive.NewZip()
	gt.NoError(t, x.Extract(context.Background(), archivePath, dest))

	_, err := os.Stat(filepath.Join(dest, "a.txt"))
	gt.NoError(t, err)
}

func TestExtract_CorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	gt.NoError(t, os.WriteFile(path, []byte("this is not a zip"), 0o644))

	x := archive.NewZip()
	err := x.Extract(context.Background(), path, filepath.Join(t.TempDir(), "out"))
	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.TagExtraction), true)
}

func TestExtract_RejectsPathTraversal(t *testing.T) {
	archivePath := writeZip(t, map[string]string{
		"../escape.txt": "nope",
	})

	x := archive.NewZip()
	err := x.Extract(context.Background(), archivePath, filepath.Join(t.TempDir(), "out"))
	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.TagExtraction), true)
}
