/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"gobookpress/internal/layout"
	applog "gobookpress/internal/log"
	"gobookpress/internal/storage"
)

// CoverOptions controls cover-wrap export.
// PageCount is the interior physical page count used for spine width; when 0
// it is estimated from the manuscript word counts.
type CoverOptions struct {
	IncludeGuides bool
	PageCount     int
}

// ExportCoverPDF writes a single-page PDF template for the full cover wrap:
// back cover, spine, front cover, with bleed on the outer edges when enabled.
// Guides mark the spine fold lines and the trim boundary. Spines too thin for
// legible text are exported anyway and logged at warn.
func ExportCoverPDF(ph *storage.ProjectHandle, outPath string, opt CoverOptions) error {
	if ph == nil {
		return fmt.Errorf("project handle is nil")
	}
	s := ph.Manifest.Settings
	pageCount := opt.PageCount
	if pageCount <= 0 {
		pageCount = layout.EstimateBookPages(ph.Manifest.Book, s)
	}
	if pageCount <= 0 {
		return fmt.Errorf("book has no pages to bind")
	}

	wrap, err := layout.ResolveCoverWrap(s.TrimSize, pageCount, s.PaperType, s.Bleed)
	if err != nil {
		return err
	}
	if !layout.SpineFitsText(wrap.SpineIn) {
		applog.WithComponent("export").Warn("spine too thin for text",
			slog.Float64("spine_in", wrap.SpineIn),
			slog.Int("page_count", pageCount),
		)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: wrap.WidthIn, Ht: wrap.HeightIn},
		OrientationStr: "",
	})
	pdf.SetTitle(ph.Manifest.Book.Title+" cover", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: wrap.WidthIn, Ht: wrap.HeightIn})

	dims, err := layout.ResolveDimensions(s.TrimSize)
	if err != nil {
		return err
	}
	b := wrap.BleedIn
	spineLeft := b + dims.WidthIn
	spineRight := spineLeft + wrap.SpineIn

	if opt.IncludeGuides {
		pdf.SetLineWidth(0.003)
		// Outer bleed boundary
		pdf.SetDrawColor(255, 0, 0)
		pdf.Rect(0, 0, wrap.WidthIn, wrap.HeightIn, "D")
		// Trim boundary
		pdf.Rect(b, b, wrap.WidthIn-2*b, wrap.HeightIn-2*b, "D")
		// Spine fold lines
		pdf.SetDrawColor(0, 0, 255)
		pdf.Line(spineLeft, 0, spineLeft, wrap.HeightIn)
		pdf.Line(spineRight, 0, spineRight, wrap.HeightIn)
		pdf.SetDrawColor(0, 0, 0)
	}

	// Front cover title block
	face := coreFont(s.FontFamily)
	pdf.SetFont(face, "B", 24)
	frontLeft := spineRight + 0.5
	frontW := wrap.WidthIn - b - frontLeft - 0.5
	if frontW > 0 {
		pdf.SetXY(frontLeft, wrap.HeightIn/3)
		pdf.MultiCell(frontW, 0.4, ph.Manifest.Book.Title, "", "C", false)
		if a := ph.Manifest.Book.Metadata.Author; a != "" {
			pdf.SetFont(face, "", 14)
			pdf.SetXY(frontLeft, pdf.GetY()+0.3)
			pdf.MultiCell(frontW, 0.25, a, "", "C", false)
		}
	}

	// Spine text only when it fits
	if layout.SpineFitsText(wrap.SpineIn) {
		pdf.SetFont(face, "B", 12)
		pdf.TransformBegin()
		pdf.TransformRotate(-90, spineLeft+wrap.SpineIn/2, wrap.HeightIn/2)
		pdf.SetXY(spineLeft+wrap.SpineIn/2-wrap.HeightIn/2, wrap.HeightIn/2-0.1)
		pdf.CellFormat(wrap.HeightIn, 0.2, ph.Manifest.Book.Title, "", 0, "C", false, 0, "")
		pdf.TransformEnd()
	}

	outPath = resolveOutPath(ph, outPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write cover pdf: %w", err)
	}
	return nil
}
