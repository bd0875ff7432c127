/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns the layout engine's page descriptors into a
// standalone HTML document for interactive preview. It is a consumer of the
// structured output; the engine itself knows nothing about markup.
package render

import (
	"fmt"
	"io"
	"strings"

	"gobookpress/internal/domain"
	"gobookpress/internal/layout"
)

// cssFontStacks maps the named interior fonts to CSS font stacks.
var cssFontStacks = map[domain.FontFamily]string{
	domain.FontGaramond: `Garamond, "EB Garamond", serif`,
	domain.FontGeorgia:  `Georgia, serif`,
	domain.FontTimes:    `"Times New Roman", Times, serif`,
	domain.FontPalatino: `Palatino, "Palatino Linotype", serif`,
	domain.FontCourier:  `"Courier New", Courier, monospace`,
}

// Interior renders the full page sequence to an HTML string. Escaping of
// user text happens here, at the rendering boundary; stored chapter content
// is never mutated.
func Interior(res layout.Result, s domain.FormattingSettings) (string, error) {
	var sb strings.Builder
	if err := WriteInterior(&sb, res, s); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteInterior writes the interior preview document to w.
func WriteInterior(w io.Writer, res layout.Result, s domain.FormattingSettings) error {
	dims, err := layout.ResolveDimensions(s.TrimSize)
	if err != nil {
		return err
	}
	stack, ok := cssFontStacks[s.FontFamily]
	if !ok {
		stack = cssFontStacks[domain.FontTimes]
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<style>\n")
	fmt.Fprintf(&sb, ".page { width: %.3fin; height: %.3fin; padding: %.3fin %.3fin %.3fin %.3fin; box-sizing: border-box; background: #fff; margin: 0.25in auto; box-shadow: 0 0 4px rgba(0,0,0,.3); overflow: hidden; position: relative; }\n",
		dims.WidthIn, dims.HeightIn, s.MarginTop, s.MarginOutside, s.MarginBottom, s.MarginInside)
	fmt.Fprintf(&sb, ".page { font-family: %s; font-size: %dpt; line-height: %.2f; }\n", stack, s.FontSize, s.LineSpacing)
	sb.WriteString(".page-title { text-align: center; } .page-title h1 { margin-top: 2.5in; }\n")
	sb.WriteString(".toc-entry { display: flex; justify-content: space-between; }\n")
	sb.WriteString(".page-number { position: absolute; bottom: 0.2in; left: 0; right: 0; text-align: center; font-size: 9pt; }\n")
	sb.WriteString("</style>\n</head>\n<body>\n")

	for _, p := range res.Pages {
		switch p.Kind {
		case layout.PageTitle:
			sb.WriteString("<section class=\"page page-title\">\n")
			fmt.Fprintf(&sb, "<h1>%s</h1>\n", layout.EscapeMarkup(p.Title))
			if p.Meta.Author != "" {
				fmt.Fprintf(&sb, "<p class=\"author\">%s</p>\n", layout.EscapeMarkup(p.Meta.Author))
			}
			if p.Meta.Publisher != "" {
				fmt.Fprintf(&sb, "<p class=\"publisher\">%s</p>\n", layout.EscapeMarkup(p.Meta.Publisher))
			}
			if p.Meta.Year != "" {
				fmt.Fprintf(&sb, "<p class=\"year\">%s</p>\n", layout.EscapeMarkup(p.Meta.Year))
			}
		case layout.PageTOC:
			sb.WriteString("<section class=\"page page-toc\">\n<h2>Contents</h2>\n")
			for _, e := range p.Entries {
				fmt.Fprintf(&sb, "<div class=\"toc-entry\"><span>%s</span><span>%d</span></div>\n",
					layout.EscapeMarkup(e.Title), e.EstimatedPage)
			}
		case layout.PageChapter:
			sb.WriteString("<section class=\"page page-chapter\">\n")
			fmt.Fprintf(&sb, "<h2>Chapter %d</h2>\n<h3>%s</h3>\n", p.ChapterIndex, layout.EscapeMarkup(p.ChapterTitle))
			for _, para := range p.Paragraphs {
				fmt.Fprintf(&sb, "<p>%s</p>\n", layout.EscapeMarkup(para))
			}
		}
		if p.Typography.PageNumbers {
			fmt.Fprintf(&sb, "<div class=\"page-number\">%d</div>\n", p.PageNumber)
		}
		sb.WriteString("</section>\n")
	}

	if len(res.Pages) == 0 {
		// Downstream consumers must handle an empty sequence gracefully.
		sb.WriteString("<p class=\"empty\">No content yet.</p>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	_, err = io.WriteString(w, sb.String())
	return err
}
