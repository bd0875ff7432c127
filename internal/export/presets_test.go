/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBatchExportPrintPreset(t *testing.T) {
	ph := exportTestProject(t)
	if err := BatchExport(ph, BatchOptions{Preset: PresetPrint}); err != nil {
		t.Fatalf("batch export: %v", err)
	}
	base := filepath.Join(ph.Root, "exports", "print")
	for _, name := range []string{"interior.pdf", "cover.pdf"} {
		st, err := os.Stat(filepath.Join(base, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if st.Size() <= 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

func TestBatchExportWebPreset(t *testing.T) {
	ph := exportTestProject(t)
	if err := BatchExport(ph, BatchOptions{Preset: PresetWeb}); err != nil {
		t.Fatalf("batch export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ph.Root, "exports", "web", "interior.html")); err != nil {
		t.Fatalf("missing interior.html: %v", err)
	}
}

func TestBatchExportUnknownFormat(t *testing.T) {
	ph := exportTestProject(t)
	err := BatchExport(ph, BatchOptions{Preset: PresetPrint, Formats: []string{"docx"}})
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestBatchExportEmptyBook(t *testing.T) {
	ph := exportTestProject(t)
	ph.Manifest.Book.Chapters = nil
	if err := BatchExport(ph, BatchOptions{Preset: PresetPrint}); err == nil {
		t.Fatalf("expected error for empty book")
	}
}
