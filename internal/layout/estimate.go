/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */

package layout

import (
	"strings"

	"gobookpress/internal/domain"
)

// WordsPerPage is the fixed heuristic used to pre-compute TOC page numbers.
// It is independent of trim size, font size and line spacing, so TOC numbers
// are best-effort estimates, not guarantees; the authoritative page count
// comes from the composer.
const WordsPerPage = 250

// EstimateChapterPages estimates how many physical pages a chapter occupies.
// A chapter always occupies at least one page, even with empty content, to
// keep TOC numbering monotonic.
func EstimateChapterPages(ch domain.Chapter) int {
	words := len(strings.Fields(ch.Content))
	if words == 0 {
		return 1
	}
	return (words + WordsPerPage - 1) / WordsPerPage
}

// EstimateBookPages sums per-chapter estimates plus front matter, giving the
// physical page count used for spine-width calculation before export.
func EstimateBookPages(book domain.BookContent, s domain.FormattingSettings) int {
	total := 0
	if s.IncludeTitlePage {
		total++
	}
	if s.IncludeTOC {
		total++
	}
	for _, ch := range book.Chapters {
		total += EstimateChapterPages(ch)
	}
	return total
}
