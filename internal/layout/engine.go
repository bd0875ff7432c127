/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout is the book layout engine: it converts an ordered list of
// chapters plus physical formatting settings into a deterministic sequence
// of page descriptors (title page, TOC, chapter pages) with computed
// dimensions and page-count estimates. It performs no I/O; persistence,
// preview rendering and PDF generation are collaborators that consume its
// output.
package layout

import (
	"fmt"

	"gobookpress/internal/domain"
)

// Supported typographic bounds, re-validated here so the engine does not
// trust its caller blindly. The engine rejects rather than clamps.
const (
	MinFontSize    = 8
	MaxFontSize    = 16
	MinLineSpacing = 1.0
	MaxLineSpacing = 2.0
)

// Layout runs the full engine: validate settings, compose the page sequence,
// and report the total. It is a pure function of its two inputs; calling it
// twice with structurally equal inputs yields structurally equal output, so
// it is safe to recompute on every content or settings change.
func Layout(book domain.BookContent, s domain.FormattingSettings) (Result, error) {
	if err := ValidateSettings(s); err != nil {
		return Result{}, err
	}
	pages := Compose(book, s)
	return Result{Pages: pages, TotalPages: len(pages)}, nil
}

// ValidateSettings checks enumerated fields against the supported tables and
// numeric fields against their ranges. Unknown trim size or paper type yield
// a ConfigurationError; out-of-range numbers yield a ValidationError. No
// partial output is produced on failure.
func ValidateSettings(s domain.FormattingSettings) error {
	dims, err := ResolveDimensions(s.TrimSize)
	if err != nil {
		return err
	}
	if _, ok := spineMultipliers[s.PaperType]; !ok {
		return &ConfigurationError{Field: "paper type", Value: string(s.PaperType)}
	}

	margins := []struct {
		name  string
		value float64
		limit float64 // half the corresponding trim dimension
	}{
		{"top margin", s.MarginTop, dims.HeightIn / 2},
		{"bottom margin", s.MarginBottom, dims.HeightIn / 2},
		{"inside margin", s.MarginInside, dims.WidthIn / 2},
		{"outside margin", s.MarginOutside, dims.WidthIn / 2},
	}
	for _, m := range margins {
		if m.value < MinMarginIn {
			return &ValidationError{Field: m.name, Reason: fmt.Sprintf("%.3fin below KDP minimum %.2fin", m.value, MinMarginIn)}
		}
		if m.value > m.limit {
			// Anything larger leaves no printable content area.
			return &ValidationError{Field: m.name, Reason: fmt.Sprintf("%.3fin exceeds half the trim dimension (%.2fin)", m.value, m.limit)}
		}
	}

	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		return &ValidationError{Field: "font size", Reason: fmt.Sprintf("%dpt outside supported range %d-%d", s.FontSize, MinFontSize, MaxFontSize)}
	}
	if s.LineSpacing < MinLineSpacing || s.LineSpacing > MaxLineSpacing {
		return &ValidationError{Field: "line spacing", Reason: fmt.Sprintf("%.2f outside supported range %.1f-%.1f", s.LineSpacing, MinLineSpacing, MaxLineSpacing)}
	}
	return nil
}
