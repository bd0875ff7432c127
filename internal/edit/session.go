/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package edit applies chapter content changes to an open project with
// undo/redo support. Changes are tracked in-memory for the session and
// persisted as deltas in the project index, so the most recent edits can
// still be undone by a later session.
package edit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	applog "gobookpress/internal/log"
	"gobookpress/internal/storage"
	"gobookpress/internal/undo"
)

// Change is the delta recorded per edit: the chapter content before and
// after. Undo applies Before, redo applies After.
type Change struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Session edits chapters of one open project.
type Session struct {
	ph  *storage.ProjectHandle
	mgr *undo.Manager
}

// NewSession wraps an open project handle with an edit session using default
// undo caps.
func NewSession(ph *storage.ProjectHandle) *Session {
	return &Session{ph: ph, mgr: undo.NewManager(undo.Config{})}
}

// ReplaceContent sets a chapter's content, records the change for undo, and
// saves the manifest. A no-op change records nothing. The delta is also
// persisted to the project index; index failures are logged, not fatal.
func (s *Session) ReplaceContent(ctx context.Context, chapterID, content string) error {
	idx, err := s.chapterIndex(chapterID)
	if err != nil {
		return err
	}
	old := s.ph.Manifest.Book.Chapters[idx].Content
	if old == content {
		return nil
	}
	delta, err := json.Marshal(Change{Before: old, After: content})
	if err != nil {
		return fmt.Errorf("encode delta: %w", err)
	}
	now := time.Now()
	s.mgr.PushSnapshot(undo.Snapshot{ChapterID: chapterID, Blob: delta, TS: now})
	s.ph.Manifest.Book.Chapters[idx].Content = content
	if err := storage.Save(s.ph); err != nil {
		return err
	}
	if err := storage.SaveSnapshot(ctx, s.ph, chapterID, delta, now); err != nil {
		applog.WithComponent("edit").Warn("persist edit delta failed", slog.String("chapter", chapterID), slog.Any("err", err))
	}
	return nil
}

// Undo reverts the most recent edit of the chapter and saves the manifest.
// It prefers the in-memory stack and falls back to the delta persisted by a
// previous session. Returns false when there is nothing to undo.
func (s *Session) Undo(ctx context.Context, chapterID string) (bool, error) {
	var delta []byte
	if snap, ok := s.mgr.Undo(chapterID); ok {
		delta = snap.Blob
		// keep the persisted trail in step with the in-memory stack
		_, _, _ = storage.PopLatestSnapshot(ctx, s.ph, chapterID)
	} else {
		blob, _, err := storage.PopLatestSnapshot(ctx, s.ph, chapterID)
		if err != nil {
			return false, err
		}
		if blob == nil {
			return false, nil
		}
		delta = blob
	}
	c, err := decodeChange(delta)
	if err != nil {
		return false, err
	}
	return true, s.setContent(chapterID, c.Before)
}

// Redo re-applies the last undone edit of the chapter. Redo is session-local;
// it is not available across processes.
func (s *Session) Redo(chapterID string) (bool, error) {
	snap, ok := s.mgr.Redo(chapterID)
	if !ok {
		return false, nil
	}
	c, err := decodeChange(snap.Blob)
	if err != nil {
		return false, err
	}
	return true, s.setContent(chapterID, c.After)
}

func (s *Session) setContent(chapterID, content string) error {
	idx, err := s.chapterIndex(chapterID)
	if err != nil {
		return err
	}
	s.ph.Manifest.Book.Chapters[idx].Content = content
	return storage.Save(s.ph)
}

func (s *Session) chapterIndex(chapterID string) (int, error) {
	for i, ch := range s.ph.Manifest.Book.Chapters {
		if ch.ID == chapterID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown chapter %q", chapterID)
}

func decodeChange(delta []byte) (Change, error) {
	var c Change
	if err := json.Unmarshal(delta, &c); err != nil {
		return Change{}, fmt.Errorf("decode delta: %w", err)
	}
	return c, nil
}
