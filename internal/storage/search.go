/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SearchQuery describes the in-app chapter search request.
// Text uses SQLite FTS5 syntax (simple terms, phrases in quotes, AND/OR/NOT).
// Filters are optional. Level restricts to a heading level; 0 means unset.
// MinWords/MaxWords bound the chapter word count; 0 means unset.
// Limit/Offset implement pagination; reasonable defaults applied if zero.
type SearchQuery struct {
	Text     string
	Level    int
	MinWords int
	MaxWords int
	Limit    int
	Offset   int
}

// SearchResult represents a single match row.
// Snippet is an optional highlighted excerpt using [ ] markers when FTS text is used.
// Ord is the 0-based position of the chapter in print order.
type SearchResult struct {
	ChapterID string
	Title     string
	Ord       int
	WordCount int
	EstPages  int
	Snippet   string
}

// Search performs full-text search with optional filters over the embedded index.
// When q.Text is empty, it falls back to a non-FTS scan over chapters with filters applied.
func Search(ctx context.Context, projectRoot string, q SearchQuery) ([]SearchResult, error) {
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return searchDB(ctx, db, q)
}

func searchDB(ctx context.Context, db *sql.DB, q SearchQuery) ([]SearchResult, error) {
	// Build dynamic SQL
	var args []any
	var sb strings.Builder
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		sb.WriteString("SELECT c.chapter_id, c.title, c.ord, c.word_count, c.est_pages, snippet(fts_chapters, 1, '[', ']', '…', 10)\n")
		sb.WriteString("FROM fts_chapters JOIN chapters c ON fts_chapters.rowid = c.rowid\n")
		sb.WriteString("WHERE fts_chapters MATCH ?\n")
		args = append(args, q.Text)
	} else {
		sb.WriteString("SELECT c.chapter_id, c.title, c.ord, c.word_count, c.est_pages, ''\n")
		sb.WriteString("FROM chapters c\nWHERE 1=1\n")
	}
	// Filters
	if q.Level > 0 {
		sb.WriteString(" AND c.level = ?\n")
		args = append(args, q.Level)
	}
	if q.MinWords > 0 {
		sb.WriteString(" AND c.word_count >= ?\n")
		args = append(args, q.MinWords)
	}
	if q.MaxWords > 0 {
		sb.WriteString(" AND c.word_count <= ?\n")
		args = append(args, q.MaxWords)
	}
	// Order and pagination
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	sb.WriteString("ORDER BY c.ord\n")
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, q.Offset)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var sn sql.NullString
		if err := rows.Scan(&r.ChapterID, &r.Title, &r.Ord, &r.WordCount, &r.EstPages, &sn); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if sn.Valid {
			r.Snippet = sn.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
