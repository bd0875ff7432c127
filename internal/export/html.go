/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gobookpress/internal/layout"
	"gobookpress/internal/render"
	"gobookpress/internal/storage"
)

// ExportInteriorHTML runs the layout engine and writes the interior preview
// as a standalone HTML document at outPath. Relative paths land under the
// project exports folder.
func ExportInteriorHTML(ph *storage.ProjectHandle, outPath string) error {
	if ph == nil {
		return fmt.Errorf("project handle is nil")
	}
	res, err := layout.Layout(ph.Manifest.Book, ph.Manifest.Settings)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	outPath = resolveOutPath(ph, outPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create html: %w", err)
	}
	defer f.Close()
	if err := render.WriteInterior(f, res, ph.Manifest.Settings); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}
