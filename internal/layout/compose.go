/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"log/slog"

	"gobookpress/internal/domain"
	applog "gobookpress/internal/log"
)

// Compose assembles the ordered page sequence for a book: optional title
// page, optional table of contents, then one chapter page per chapter with
// non-empty content, in chapter order. Deterministic single pass; never
// fails, even for a book with zero chapters (consumers must handle an empty
// sequence gracefully).
//
// A chapter whose content segments to zero paragraphs is omitted from the
// physical sequence while still being listed in the TOC with an estimated
// page number. That mismatch is logged at warn level rather than raised: it
// is acceptable degraded behavior, not a failure of the contract.
func Compose(book domain.BookContent, s domain.FormattingSettings) []PageDescriptor {
	l := applog.WithComponent("layout")
	typ := Typography{
		FontFamily:  s.FontFamily,
		FontSize:    s.FontSize,
		LineSpacing: s.LineSpacing,
		PageNumbers: s.IncludePageNumbers,
	}

	var pages []PageDescriptor
	pageNumber := 0

	if s.IncludeTitlePage {
		pageNumber++
		pages = append(pages, PageDescriptor{
			Kind:       PageTitle,
			PageNumber: pageNumber,
			Typography: typ,
			Title:      book.Title,
			Meta:       book.Metadata,
		})
	}

	if s.IncludeTOC {
		pageNumber++
		entries := make([]TOCEntry, 0, len(book.Chapters))
		// Estimates start on the page right after the TOC and accumulate
		// per chapter in chapter order.
		next := pageNumber + 1
		for _, ch := range book.Chapters {
			entries = append(entries, TOCEntry{Title: ch.Title, EstimatedPage: next})
			next += EstimateChapterPages(ch)
		}
		pages = append(pages, PageDescriptor{
			Kind:       PageTOC,
			PageNumber: pageNumber,
			Typography: typ,
			Entries:    entries,
		})
	}

	chapterIndex := 0
	for _, ch := range book.Chapters {
		paragraphs := SegmentParagraphs(ch.Content)
		if len(paragraphs) == 0 {
			l.Warn("chapter has no content, omitted from page sequence",
				slog.String("chapter", ch.ID), slog.String("title", ch.Title))
			continue
		}
		chapterIndex++
		pageNumber++
		pages = append(pages, PageDescriptor{
			Kind:         PageChapter,
			PageNumber:   pageNumber,
			Typography:   typ,
			ChapterIndex: chapterIndex,
			ChapterTitle: ch.Title,
			Paragraphs:   paragraphs,
		})
	}

	return pages
}
