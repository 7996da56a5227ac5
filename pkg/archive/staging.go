// Package archive stages compressed scene archives into scoped temporary
// directories. Every archive is extracted into its own directory which is
// removed again on all paths, success or failure, so repeated ingests never
// accumulate staging state.
package archive

import (
	"archive/tar"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/USGS-EROS/lcmap-data/pkg/consts"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// WithStaging extracts the archive at path into a fresh temporary directory,
// invokes fn with that directory, and removes the directory before
// returning. The directory is released even when extraction or fn fails, and
// the first error encountered is returned.
//
// Example:
//
//	err := archive.WithStaging("scene.tar.gz", func(dir string) error {
//	    return ingestor.Ingest(ctx, dir)
//	})
func WithStaging(path string, fn func(dir string) error) error {
	dir, err := os.MkdirTemp("", "lcmap-stage-")
	if err != nil {
		return errors.Wrap(err, "failed to create staging directory")
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			slog.Warn("Failed to remove staging directory", "dir", dir, "err", err)
		}
	}()

	if err := Extract(path, dir); err != nil {
		return errors.Wrapf(err, "failed to extract %s", path)
	}

	return fn(dir)
}

// Extract unpacks a tar archive into dest. Archives ending in .gz or .tgz
// are decompressed first. Only regular files and directories are extracted;
// entries that would escape dest are rejected.
func Extract(path, dest string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open archive")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return errors.Wrap(err, "failed to read gzip header")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	case strings.HasSuffix(path, ".tar"):
	default:
		return errors.Errorf("unsupported archive format: %s", filepath.Base(path))
	}

	return untar(r, dest)
}

func untar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to read tar entry")
		}

		name := filepath.Clean(hdr.Name)
		if !filepath.IsLocal(name) {
			return errors.Errorf("archive entry escapes staging directory: %s", hdr.Name)
		}
		target := filepath.Join(dest, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, consts.ModeDir); err != nil {
				return errors.Wrapf(err, "failed to create directory %s", name)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return errors.Wrapf(err, "failed to extract %s", name)
			}
		default:
			// Symlinks and special files have no place in scene archives.
			slog.Debug("Skipping archive entry", "name", hdr.Name, "type", hdr.Typeflag)
		}
	}
}

func writeFile(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), consts.ModeDir); err != nil {
		return err
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.ModeFile)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
