/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */

package layout

import (
	"strings"
	"testing"

	"gobookpress/internal/domain"
)

func TestEstimateChapterPages(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{249, 1},
		{250, 1},
		{251, 2},
		{500, 2},
		{501, 3},
	}
	for _, c := range cases {
		ch := domain.Chapter{ID: "c", Content: strings.TrimSpace(strings.Repeat("word ", c.words))}
		if got := EstimateChapterPages(ch); got != c.want {
			t.Fatalf("EstimateChapterPages(%d words) = %d, want %d", c.words, got, c.want)
		}
	}
}

func TestEstimateBookPagesIncludesFrontMatter(t *testing.T) {
	book := domain.BookContent{
		Title: "T",
		Chapters: []domain.Chapter{
			{ID: "1", Content: strings.Repeat("w ", 300)}, // 2 pages
			{ID: "2", Content: ""},                        // still 1 page in the estimate
		},
	}
	s := domain.DefaultSettings()
	if got := EstimateBookPages(book, s); got != 1+1+2+1 {
		t.Fatalf("EstimateBookPages = %d, want 5", got)
	}
	s.IncludeTitlePage = false
	s.IncludeTOC = false
	if got := EstimateBookPages(book, s); got != 3 {
		t.Fatalf("EstimateBookPages without front matter = %d, want 3", got)
	}
}
