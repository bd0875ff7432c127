/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import "gobookpress/internal/domain"

// PageKind discriminates the page descriptor variants.
type PageKind string

const (
	PageTitle   PageKind = "title"
	PageTOC     PageKind = "toc"
	PageChapter PageKind = "chapter"
)

// Typography carries the rendering parameters attached uniformly to every
// page descriptor. It does not affect pagination math: each chapter occupies
// exactly one logical page in this model, and fine-grained print pagination
// is left to the rendering/export collaborator.
type Typography struct {
	FontFamily  domain.FontFamily `json:"fontFamily"`
	FontSize    int               `json:"fontSize"`
	LineSpacing float64           `json:"lineSpacing"`
	PageNumbers bool              `json:"pageNumbers"`
}

// TOCEntry is one table-of-contents line: a chapter title with its estimated
// (not guaranteed) physical page number.
type TOCEntry struct {
	Title         string `json:"title"`
	EstimatedPage int    `json:"estimatedPage"`
}

// PageDescriptor is the engine's output unit: a structured, independently
// renderable page. Fields beyond Kind/PageNumber/Typography are populated
// per variant. Consumers must treat descriptors as immutable.
type PageDescriptor struct {
	Kind       PageKind   `json:"kind"`
	PageNumber int        `json:"pageNumber"` // 1-based sequence position
	Typography Typography `json:"typography"`

	// Kind == PageTitle
	Title string          `json:"title,omitempty"`
	Meta  domain.Metadata `json:"meta,omitempty"`

	// Kind == PageTOC
	Entries []TOCEntry `json:"entries,omitempty"`

	// Kind == PageChapter
	ChapterIndex int      `json:"chapterIndex,omitempty"` // 1-based across emitted chapter pages
	ChapterTitle string   `json:"chapterTitle,omitempty"`
	Paragraphs   []string `json:"paragraphs,omitempty"`
}

// Result is the finalized output of a layout run.
type Result struct {
	Pages      []PageDescriptor `json:"pages"`
	TotalPages int              `json:"totalPages"`
}
