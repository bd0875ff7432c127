/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */

package domain

import (
	"encoding/json"
	"testing"
)

func TestBookContentJSONRoundTrip(t *testing.T) {
	b := BookContent{
		Title:    "My Book",
		Metadata: Metadata{Author: "A. Writer", Year: "2025"},
		Chapters: []Chapter{
			{ID: "ch-1", Title: "One", Content: "Hello.\n\nWorld.", Level: 1},
			{ID: "ch-2", Title: "Two", Content: "", Level: 1},
		},
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got BookContent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Title != b.Title || len(got.Chapters) != 2 || got.Chapters[0].ID != "ch-1" {
		t.Fatalf("round trip mismatch: %#v", got)
	}
	if got.Chapters[1].Content != "" {
		t.Fatalf("empty chapter content must survive round trip")
	}
}

func TestDefaultSettingsAreKDPLegal(t *testing.T) {
	s := DefaultSettings()
	if s.TrimSize != Trim6x9 {
		t.Fatalf("default trim = %q", s.TrimSize)
	}
	for name, m := range map[string]float64{
		"top": s.MarginTop, "bottom": s.MarginBottom,
		"inside": s.MarginInside, "outside": s.MarginOutside,
	} {
		if m < 0.25 {
			t.Fatalf("default %s margin %v below KDP minimum", name, m)
		}
	}
	if s.FontSize < 8 || s.FontSize > 16 {
		t.Fatalf("default font size out of range: %d", s.FontSize)
	}
	if s.LineSpacing < 1.0 || s.LineSpacing > 2.0 {
		t.Fatalf("default line spacing out of range: %v", s.LineSpacing)
	}
}
