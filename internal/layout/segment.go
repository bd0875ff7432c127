/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"regexp"
	"strings"
)

var (
	reManyNewlines = regexp.MustCompile(`\n{3,}`)
	reInnerSpace   = regexp.MustCompile(`\s+`)
)

// SegmentParagraphs splits raw chapter text into normalized paragraphs.
// Normalization: CR/CRLF folded to LF, leading/trailing whitespace trimmed,
// runs of 3+ newlines collapsed to the double-newline paragraph separator,
// and whitespace runs inside a paragraph collapsed to a single space.
// Whitespace is never collapsed across a paragraph boundary: the split on
// the separator happens first. Empty paragraphs are dropped, so empty or
// whitespace-only input yields a nil slice.
func SegmentParagraphs(raw string) []string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = reManyNewlines.ReplaceAllString(s, "\n\n")

	parts := strings.Split(s, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(reInnerSpace.ReplaceAllString(p, " "))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// markupEscaper escapes text for embedding in HTML/XML attribute or element
// content. Applied only at the rendering boundary; stored chapter content is
// never mutated.
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeMarkup returns s with markup-significant characters escaped.
func EscapeMarkup(s string) string { return markupEscaper.Replace(s) }
