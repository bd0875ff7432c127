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
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"gobookpress/internal/domain"
	"gobookpress/internal/layout"
	"gobookpress/internal/storage"
)

// PDFOptions controls interior PDF export behavior.
// All geometry is expressed in inches to match the layout engine.
//
// Coordinates:
// - Page origin is top-left.
// - Bleed is applied as an outer band beyond trim when enabled in settings.
//
// Boxes:
// - MediaBox = trim + 2*bleed (full page size in PDF)
// - Trim box drawn as a hairline guide when IncludeGuides is set
//
// Text uses PDF core fonts for portability; named interior fonts map onto the
// closest core face. Font embedding can be added later using TTFs.
type PDFOptions struct {
	IncludeGuides bool
	Pages         []int // 1-based logical page numbers; if empty, export all pages
}

// ExportInteriorPDF runs the layout engine on the project manifest and writes
// the interior as a multi-page PDF at outPath. Relative paths land under the
// project exports folder.
func ExportInteriorPDF(ph *storage.ProjectHandle, outPath string, opt PDFOptions) error {
	if ph == nil {
		return fmt.Errorf("project handle is nil")
	}
	s := ph.Manifest.Settings
	res, err := layout.Layout(ph.Manifest.Book, s)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	dims, err := layout.ResolveDimensions(s.TrimSize)
	if err != nil {
		return err
	}
	bleed := 0.0
	if s.Bleed {
		bleed = layout.BleedIn
	}
	mediaW := dims.WidthIn + 2*bleed
	mediaH := dims.HeightIn + 2*bleed

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: mediaW, Ht: mediaH},
		OrientationStr: "",
	})
	pdf.SetTitle(ph.Manifest.Book.Title, true)
	if a := ph.Manifest.Book.Metadata.Author; a != "" {
		pdf.SetAuthor(a, true)
	}
	pdf.SetAutoPageBreak(false, 0)

	face := coreFont(s.FontFamily)
	lineH := float64(s.FontSize) / 72.0 * s.LineSpacing

	// Content box inside trim; inside margin is used on the left for every
	// page since the PDF model here does not mirror for binding side.
	left := bleed + s.MarginInside
	right := mediaW - bleed - s.MarginOutside
	top := bleed + s.MarginTop
	bottom := mediaH - bleed - s.MarginBottom
	textW := right - left

	want := pageFilter(opt.Pages)
	for _, pg := range res.Pages {
		if want != nil && !want[pg.PageNumber] {
			continue
		}
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: mediaW, Ht: mediaH})

		if opt.IncludeGuides {
			pdf.SetDrawColor(255, 0, 0)
			pdf.SetLineWidth(0.003)
			pdf.Rect(0, 0, mediaW, mediaH, "D")
			pdf.Rect(bleed, bleed, dims.WidthIn, dims.HeightIn, "D")
			pdf.SetDrawColor(0, 0, 0)
		}

		switch pg.Kind {
		case layout.PageTitle:
			pdf.SetFont(face, "B", float64(s.FontSize)*2)
			pdf.SetXY(left, mediaH/3)
			pdf.MultiCell(textW, lineH*2, pg.Title, "", "C", false)
			pdf.SetFont(face, "", float64(s.FontSize))
			if pg.Meta.Author != "" {
				pdf.SetXY(left, pdf.GetY()+lineH)
				pdf.MultiCell(textW, lineH, pg.Meta.Author, "", "C", false)
			}
			if pg.Meta.Publisher != "" || pg.Meta.Year != "" {
				imprint := pg.Meta.Publisher
				if pg.Meta.Year != "" {
					if imprint != "" {
						imprint += ", "
					}
					imprint += pg.Meta.Year
				}
				pdf.SetXY(left, bottom-lineH)
				pdf.MultiCell(textW, lineH, imprint, "", "C", false)
			}
		case layout.PageTOC:
			pdf.SetFont(face, "B", float64(s.FontSize)+4)
			pdf.SetXY(left, top)
			pdf.MultiCell(textW, lineH*1.5, "Contents", "", "L", false)
			pdf.SetFont(face, "", float64(s.FontSize))
			y := pdf.GetY() + lineH
			for _, e := range pg.Entries {
				if y > bottom-lineH {
					break
				}
				pdf.SetXY(left, y)
				pdf.CellFormat(textW-0.5, lineH, e.Title, "", 0, "L", false, 0, "")
				pdf.CellFormat(0.5, lineH, fmt.Sprintf("%d", e.EstimatedPage), "", 0, "R", false, 0, "")
				y += lineH
			}
		case layout.PageChapter:
			pdf.SetFont(face, "B", float64(s.FontSize)+4)
			pdf.SetXY(left, top)
			pdf.MultiCell(textW, lineH*1.5, pg.ChapterTitle, "", "L", false)
			pdf.SetFont(face, "", float64(s.FontSize))
			y := pdf.GetY() + lineH
			for _, para := range pg.Paragraphs {
				if y > bottom-lineH {
					break
				}
				pdf.SetXY(left, y)
				pdf.MultiCell(textW, lineH, para, "", "L", false)
				y = pdf.GetY() + lineH/2
			}
		}

		if pg.Typography.PageNumbers {
			pdf.SetFont(face, "", float64(s.FontSize)-2)
			pdf.SetXY(left, bottom)
			pdf.CellFormat(textW, lineH, fmt.Sprintf("%d", pg.PageNumber), "", 0, "C", false, 0, "")
			pdf.SetFont(face, "", float64(s.FontSize))
		}
	}

	outPath = resolveOutPath(ph, outPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// coreFont maps a named interior font to a PDF core face. Serif faces fall
// back to Times, monospace to Courier.
func coreFont(f domain.FontFamily) string {
	switch f {
	case domain.FontCourier:
		return "Courier"
	case domain.FontGaramond, domain.FontGeorgia, domain.FontTimes, domain.FontPalatino:
		return "Times"
	default:
		return "Times"
	}
}

func pageFilter(specific []int) map[int]bool {
	if len(specific) == 0 {
		return nil
	}
	m := make(map[int]bool, len(specific))
	for _, n := range specific {
		m[n] = true
	}
	return m
}

// resolveOutPath anchors relative output paths under <project>/exports.
func resolveOutPath(ph *storage.ProjectHandle, outPath string) string {
	if filepath.IsAbs(outPath) {
		return outPath
	}
	return filepath.Join(ph.Root, "exports", outPath)
}
