/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gobookpress/internal/domain"
	"gobookpress/internal/storage"
)

func exportTestProject(t *testing.T) *storage.ProjectHandle {
	t.Helper()
	root := t.TempDir()
	book := domain.BookContent{
		Title:    "Export Test",
		Metadata: domain.Metadata{Author: "A. Writer", Publisher: "Test House", Year: "2025"},
		Chapters: []domain.Chapter{
			{ID: "ch-1", Title: "One", Content: strings.Repeat("word ", 300), Level: 1},
			{ID: "ch-2", Title: "Two", Content: "Short chapter.", Level: 1},
		},
	}
	ph, err := storage.InitProject(root, storage.NewManifest(book))
	if err != nil {
		t.Fatalf("init project: %v", err)
	}
	return ph
}

func TestExportInteriorPDF_CreatesFile(t *testing.T) {
	ph := exportTestProject(t)
	out := filepath.Join(ph.Root, "exports", "interior-test.pdf")
	if err := ExportInteriorPDF(ph, out, PDFOptions{IncludeGuides: true}); err != nil {
		t.Fatalf("export: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("pdf file empty")
	}
}

func TestExportInteriorPDF_RelativePathLandsInExports(t *testing.T) {
	ph := exportTestProject(t)
	if err := ExportInteriorPDF(ph, "rel.pdf", PDFOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ph.Root, "exports", "rel.pdf")); err != nil {
		t.Fatalf("expected file under exports: %v", err)
	}
}

func TestExportInteriorPDF_RejectsInvalidSettings(t *testing.T) {
	ph := exportTestProject(t)
	ph.Manifest.Settings.FontSize = 40
	if err := ExportInteriorPDF(ph, "bad.pdf", PDFOptions{}); err == nil {
		t.Fatalf("expected error for out-of-range font size")
	}
}

func TestExportCoverPDF_CreatesFile(t *testing.T) {
	ph := exportTestProject(t)
	out := filepath.Join(ph.Root, "exports", "cover-test.pdf")
	if err := ExportCoverPDF(ph, out, CoverOptions{IncludeGuides: true, PageCount: 300}); err != nil {
		t.Fatalf("export cover: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("cover pdf empty")
	}
}

func TestExportCoverPDF_ThinSpineStillExports(t *testing.T) {
	ph := exportTestProject(t)
	// 40 pages on white stock is well under the legible-spine floor
	out := filepath.Join(ph.Root, "exports", "thin-cover.pdf")
	if err := ExportCoverPDF(ph, out, CoverOptions{PageCount: 40}); err != nil {
		t.Fatalf("export cover: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
