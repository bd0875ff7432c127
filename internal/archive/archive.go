/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */

// Package archive packs a book project into a single zip file for sharing or
// backup, and unpacks such archives into a project root. The local search
// index and timestamped backups are never archived; both are derivable.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "gobookpress/internal/log"
	"gobookpress/internal/storage"
)

const manifestEntryName = "bookpack.manifest.txt"

// skippedDirs are project subtrees excluded from archives. Backups are
// machine-local history and the .gbp index can be rebuilt from the manifest.
var skippedDirs = []string{storage.BackupsDirName, storage.IndexDirName}

// PackProject zips the project at projectRoot into destZipPath. The archive
// preserves the directory structure relative to the project root and carries
// a small text manifest at the root for quick human inspection.
func PackProject(projectRoot string, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("archive"), "pack").With(slog.String("project", projectRoot))
	if strings.TrimSpace(projectRoot) == "" {
		return errors.New("projectRoot is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	if _, err := os.Stat(filepath.Join(projectRoot, storage.ManifestFileName)); err != nil {
		return fmt.Errorf("not a book project (missing %s): %w", storage.ManifestFileName, err)
	}

	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)

	manifest := fmt.Sprintf("GoBookPress Project Archive\nCreated: %s\nProject: %s\n\nContents mirror the project root; backups and the search index are omitted.\n",
		time.Now().Format(time.RFC3339), projectRoot)
	w, err := zw.Create(manifestEntryName)
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	added := 0
	err = filepath.Walk(projectRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(projectRoot, path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			for _, skip := range skippedDirs {
				if rel == skip {
					return filepath.SkipDir
				}
			}
			return nil
		}
		// Do not archive a previous archive sitting inside the project
		if filepath.Clean(path) == filepath.Clean(destZipPath) {
			return nil
		}
		// Normalize to forward slashes inside the zip
		zipName := filepath.ToSlash(rel)
		fw, err := zw.Create(zipName)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		if _, err := io.Copy(fw, f); err != nil {
			return err
		}
		added++
		return nil
	})
	if err != nil {
		_ = zw.Close()
		l.Error("zip build failed", slog.Any("err", err))
		return fmt.Errorf("build zip: %w", err)
	}
	// Close flushes the central directory; a failure here means a truncated
	// archive, which must not be reported as success.
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	if err := zf.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	l.Info("project archive written", slog.Int("files", added), slog.String("zip", destZipPath))
	return nil
}

// UnpackProject extracts a project archive into destRoot, creating it if
// needed. Existing files are not overwritten; they are skipped with a warning.
// Returns the count of files written (skipped files are not counted).
func UnpackProject(archivePath string, destRoot string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("archive"), "unpack").With(slog.String("dest", destRoot))
	if strings.TrimSpace(archivePath) == "" {
		return 0, errors.New("archivePath is required")
	}
	if strings.TrimSpace(destRoot) == "" {
		return 0, errors.New("destRoot is required")
	}
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return 0, fmt.Errorf("ensure dest dir: %w", err)
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = r.Close() }()

	written := 0
	for _, f := range r.File {
		name := f.Name
		if name == manifestEntryName {
			continue
		}
		// Reject entries that would escape the destination root
		clean := filepath.Clean(filepath.FromSlash(name))
		if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
			l.Warn("skip unsafe entry", slog.String("name", name))
			continue
		}
		targetPath := filepath.Join(destRoot, clean)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return written, err
			}
			continue
		}
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing file", slog.String("path", targetPath))
			continue
		}
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return written, err
		}
		rc, err := f.Open()
		if err != nil {
			return written, err
		}
		out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			_ = rc.Close()
			return written, err
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return written, err
		}
		_ = out.Close()
		_ = rc.Close()
		written++
	}
	l.Info("project archive unpacked", slog.Int("files", written))
	return written, nil
}
