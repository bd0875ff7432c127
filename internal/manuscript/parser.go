/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package manuscript

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"gobookpress/internal/domain"
)

// Parse parses a plain-text manuscript into a structured Document.
// Supported syntax (minimal):
// - Title: a line starting with "%" before the first heading sets the book title.
// - Chapter headings:
//   - Lines starting with "#" introduce a new chapter. The number of '#'
//     marks is the heading level; the rest of the line is the title.
//   - Lines matching "Chapter N:" or "Chapter N" (case-insensitive) start a
//     level-1 chapter titled by the remainder (or "Chapter N" when bare).
//
// - Everything else accumulates as body text of the current chapter.
// - Text before the first heading becomes an implicit "Untitled" chapter.
// Blank lines are preserved inside bodies as paragraph separators.
func Parse(input string) (Document, []Error) {
	d := Document{Sections: []Section{}}
	var errs []Error

	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	var current *Section
	var body strings.Builder

	// Patterns
	reHeading := regexp.MustCompile(`^(#+)\s*(.*)$`)
	reChapter := regexp.MustCompile(`^(?i)\s*Chapter\s+(\d+)\s*:?\s*(.*)$`)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimRight(body.String(), "\n")
		d.Sections = append(d.Sections, *current)
		current = nil
		body.Reset()
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trim := strings.TrimSpace(line)

		// Title line before any heading
		if strings.HasPrefix(trim, "%") && current == nil && len(d.Sections) == 0 {
			d.Title = strings.TrimSpace(strings.TrimPrefix(trim, "%"))
			continue
		}

		// Heading
		if m := reHeading.FindStringSubmatch(trim); m != nil {
			flush()
			current = &Section{Title: strings.TrimSpace(m[2]), Level: len(m[1]), LineNo: lineNo}
			continue
		}
		if m := reChapter.FindStringSubmatch(trim); m != nil {
			flush()
			title := strings.TrimSpace(m[2])
			if title == "" {
				title = "Chapter " + m[1]
			}
			current = &Section{Title: title, Level: 1, LineNo: lineNo}
			continue
		}

		if trim == "" {
			// Paragraph separator inside a chapter body
			if current != nil && body.Len() > 0 && !strings.HasSuffix(body.String(), "\n\n") {
				body.WriteString("\n\n")
			}
			continue
		}

		// Body text before the first heading starts an implicit chapter
		if current == nil {
			current = &Section{Title: "Untitled", Level: 1, LineNo: lineNo}
		}
		if body.Len() > 0 && !strings.HasSuffix(body.String(), "\n") {
			body.WriteString("\n")
		}
		body.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		errs = append(errs, Error{Line: lineNo, Message: err.Error()})
	}
	return d, errs
}

// ToBook converts a parsed Document into the engine's book model. Chapter IDs
// are assigned in print order as ch-1, ch-2, and so on. The fallback title is
// used when the manuscript carries no "%" title line.
func ToBook(d Document, fallbackTitle string) domain.BookContent {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = fallbackTitle
	}
	book := domain.BookContent{Title: title, Chapters: make([]domain.Chapter, 0, len(d.Sections))}
	for i, sec := range d.Sections {
		book.Chapters = append(book.Chapters, domain.Chapter{
			ID:      fmt.Sprintf("ch-%d", i+1),
			Title:   sec.Title,
			Content: sec.Body,
			Level:   sec.Level,
		})
	}
	return book
}
