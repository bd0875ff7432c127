/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"fmt"

	"gobookpress/internal/domain"
)

// Physical constants for KDP print geometry. All lengths in inches.
const (
	// BleedIn is the extra margin per edge when bleed is enabled.
	BleedIn = 0.125
	// MinMarginIn is the KDP minimum for each interior margin.
	MinMarginIn = 0.25
	// MinSpineTextIn is the practical floor below which spine text is not
	// legible (~63 pages on white stock). Thinner spines are a warning for
	// the caller, never an error here.
	MinSpineTextIn = 0.25
)

// Dimensions is a physical page size in inches.
type Dimensions struct {
	WidthIn  float64
	HeightIn float64
}

// trimSizes is the fixed KDP trim-size table.
var trimSizes = map[domain.TrimSize]Dimensions{
	domain.Trim5x8:   {WidthIn: 5, HeightIn: 8},
	domain.Trim6x9:   {WidthIn: 6, HeightIn: 9},
	domain.Trim7x10:  {WidthIn: 7, HeightIn: 10},
	domain.Trim85x11: {WidthIn: 8.5, HeightIn: 11},
}

// spineMultipliers maps paper stock to spine inches per interior page.
var spineMultipliers = map[domain.PaperType]float64{
	domain.PaperWhite: 0.002252,
	domain.PaperCream: 0.0025,
	domain.PaperColor: 0.002347,
}

// ResolveDimensions maps a trim size to its physical page width and height.
func ResolveDimensions(ts domain.TrimSize) (Dimensions, error) {
	d, ok := trimSizes[ts]
	if !ok {
		return Dimensions{}, &ConfigurationError{Field: "trim size", Value: string(ts)}
	}
	return d, nil
}

// ResolveSpineWidth computes the spine thickness for a page count on the
// given paper stock. Page counts below the legible-spine floor are the
// caller's concern; see SpineFitsText.
func ResolveSpineWidth(pageCount int, paper domain.PaperType) (float64, error) {
	m, ok := spineMultipliers[paper]
	if !ok {
		return 0, &ConfigurationError{Field: "paper type", Value: string(paper)}
	}
	if pageCount <= 0 {
		return 0, &ValidationError{Field: "page count", Reason: fmt.Sprintf("must be positive, got %d", pageCount)}
	}
	return float64(pageCount) * m, nil
}

// SpineFitsText reports whether the spine is thick enough for legible text.
func SpineFitsText(spineIn float64) bool { return spineIn >= MinSpineTextIn }

// CoverWrap describes the full cover-wrap sheet: back cover, spine, front
// cover, plus bleed on every outer edge.
type CoverWrap struct {
	WidthIn  float64
	HeightIn float64
	SpineIn  float64
	BleedIn  float64
}

// ResolveCoverWrap computes the cover-wrap dimensions for a trim size, page
// count and paper stock. Bleed adds 0.125in per outer edge when enabled.
func ResolveCoverWrap(ts domain.TrimSize, pageCount int, paper domain.PaperType, bleed bool) (CoverWrap, error) {
	dims, err := ResolveDimensions(ts)
	if err != nil {
		return CoverWrap{}, err
	}
	spine, err := ResolveSpineWidth(pageCount, paper)
	if err != nil {
		return CoverWrap{}, err
	}
	b := 0.0
	if bleed {
		b = BleedIn
	}
	return CoverWrap{
		WidthIn:  2*dims.WidthIn + spine + 2*b,
		HeightIn: dims.HeightIn + 2*b,
		SpineIn:  spine,
		BleedIn:  b,
	}, nil
}
