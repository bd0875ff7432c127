/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gobookpress/internal/storage"
)

// SearchPG executes a chapter search over the Postgres chapters table using
// tsvector and filters and returns results mapped to storage.SearchResult to
// ease parity checks against the local SQLite index.
func SearchPG(ctx context.Context, db *sql.DB, projectID int64, q storage.SearchQuery) ([]storage.SearchResult, error) {
	var (
		args []any
		b    strings.Builder
	)
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		b.WriteString("SELECT c.chapter_id, c.title, c.ord, c.word_count, c.est_pages, ")
		b.WriteString("COALESCE(ts_headline('simple', COALESCE(c.body,''), plainto_tsquery('simple', $1), 'StartSel=[, StopSel=], MaxFragments=1, MaxWords=12'), '') AS snippet ")
		b.WriteString("FROM chapters c WHERE c.project_id = $2 AND c.search_vector @@ plainto_tsquery('simple', $1) ")
		args = append(args, q.Text, projectID)
	} else {
		b.WriteString("SELECT c.chapter_id, c.title, c.ord, c.word_count, c.est_pages, '' AS snippet ")
		b.WriteString("FROM chapters c WHERE c.project_id = $1 ")
		args = append(args, projectID)
	}

	// Helper to add parameter and return placeholder like $n
	place := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Level > 0 {
		b.WriteString(" AND c.level = " + place(q.Level) + " ")
	}
	if q.MinWords > 0 {
		b.WriteString(" AND c.word_count >= " + place(q.MinWords) + " ")
	}
	if q.MaxWords > 0 {
		b.WriteString(" AND c.word_count <= " + place(q.MaxWords) + " ")
	}

	// Order and pagination
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	b.WriteString(" ORDER BY c.ord ")
	b.WriteString(" LIMIT " + place(limit) + " OFFSET " + place(offset))

	rows, err := db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search pg query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []storage.SearchResult
	for rows.Next() {
		var r storage.SearchResult
		if err := rows.Scan(&r.ChapterID, &r.Title, &r.Ord, &r.WordCount, &r.EstPages, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
