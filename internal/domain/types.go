/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for gobookpress: the manuscript under
// formatting (BookContent) and the physical/typographic configuration
// (FormattingSettings). Both serialize into the human-readable JSON manifest.

// BookContent is the manuscript under formatting. Chapter order is print
// order and is preserved throughout layout; the engine never reorders it.
type BookContent struct {
	Title    string    `json:"title"`
	Metadata Metadata  `json:"metadata,omitempty"`
	Chapters []Chapter `json:"chapters"`
}

// Metadata contains optional descriptive metadata for a book.
type Metadata struct {
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Year      string `json:"year,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
}

// Chapter is one structural unit of the book. ID is stable and unique within
// a BookContent and is used for targeted edits. Content is raw text with
// paragraphs separated by a blank line; it may be empty.
type Chapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Level   int    `json:"level"` // heading depth, 1 = top-level chapter
}

// TrimSize identifies the final physical page dimensions of a printed book.
type TrimSize string

const (
	Trim5x8   TrimSize = "5x8"
	Trim6x9   TrimSize = "6x9"
	Trim7x10  TrimSize = "7x10"
	Trim85x11 TrimSize = "8.5x11"
)

// PaperType is the interior paper stock; it determines spine thickness per page.
type PaperType string

const (
	PaperWhite PaperType = "white"
	PaperCream PaperType = "cream"
	PaperColor PaperType = "color"
)

// FontFamily is a named interior font. The export layer maps these to
// concrete PDF core fonts; the layout engine treats them as opaque.
type FontFamily string

const (
	FontGaramond FontFamily = "garamond"
	FontGeorgia  FontFamily = "georgia"
	FontTimes    FontFamily = "times"
	FontPalatino FontFamily = "palatino"
	FontCourier  FontFamily = "courier"
)

// FormattingSettings is the physical and typographic configuration for
// interior layout. All lengths are in inches; font size is in points.
type FormattingSettings struct {
	TrimSize  TrimSize  `json:"trimSize"`
	PaperType PaperType `json:"paperType"`

	MarginTop     float64 `json:"marginTop"`
	MarginBottom  float64 `json:"marginBottom"`
	MarginInside  float64 `json:"marginInside"`
	MarginOutside float64 `json:"marginOutside"`
	Bleed         bool    `json:"bleed"` // adds 0.125in per edge when true

	FontFamily  FontFamily `json:"fontFamily"`
	FontSize    int        `json:"fontSize"`    // points, 8-16
	LineSpacing float64    `json:"lineSpacing"` // multiplier, 1.0-2.0

	IncludeTOC         bool `json:"includeTOC"`
	IncludePageNumbers bool `json:"includePageNumbers"`
	IncludeTitlePage   bool `json:"includeTitlePage"`
}

// DefaultSettings returns KDP-friendly interior defaults: 6x9 trim on white
// paper, 0.75in vertical and 0.5in horizontal margins, Georgia 11pt at 1.5
// spacing, with title page, TOC and page numbers enabled.
func DefaultSettings() FormattingSettings {
	return FormattingSettings{
		TrimSize:           Trim6x9,
		PaperType:          PaperWhite,
		MarginTop:          0.75,
		MarginBottom:       0.75,
		MarginInside:       0.5,
		MarginOutside:      0.5,
		Bleed:              false,
		FontFamily:         FontGeorgia,
		FontSize:           11,
		LineSpacing:        1.5,
		IncludeTOC:         true,
		IncludePageNumbers: true,
		IncludeTitlePage:   true,
	}
}
