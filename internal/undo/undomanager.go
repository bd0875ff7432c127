/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Snapshot represents a reversible state blob for a chapter.
// Blob content is opaque to the manager; size is estimated as len(Blob).
// TS is when the snapshot was captured.
type Snapshot struct {
	ChapterID string
	Blob      []byte
	TS        time.Time
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; older entries are pruned when exceeded.
	MaxBytes int
	// MaxPerChapter limits number of snapshots per chapter kept in memory (0 means unlimited).
	MaxPerChapter int
	// MinInterval coalesces snapshots captured within the interval for the same chapter,
	// replacing the previous one instead of pushing a new entry.
	MinInterval time.Duration
}

// Manager provides an in-memory undo/redo stack per chapter with performance
// safeguards. It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex
	// per-chapter stacks
	undo map[string][]Snapshot
	redo map[string][]Snapshot
	// accounting
	totalBytes int
}

func NewManager(cfg Config) *Manager {
	// Set conservative defaults if not provided
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg, undo: make(map[string][]Snapshot), redo: make(map[string][]Snapshot)}
}

// PushSnapshot records a snapshot for a chapter. If within MinInterval from the last
// snapshot on the same chapter, it replaces the last one. Clears redo stack for that chapter.
func (m *Manager) PushSnapshot(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[s.ChapterID]
	if n := len(stack); n > 0 {
		last := stack[n-1]
		if s.TS.Sub(last.TS) < m.cfg.MinInterval {
			// Coalesce: adjust accounting and replace
			m.totalBytes -= len(last.Blob)
			m.totalBytes += len(s.Blob)
			stack[n-1] = s
			m.undo[s.ChapterID] = stack
			m.redo[s.ChapterID] = nil
			m.enforceCapsLocked(s.ChapterID)
			return
		}
	}
	// Push new
	stack = append(stack, s)
	m.undo[s.ChapterID] = stack
	m.totalBytes += len(s.Blob)
	// Any new change invalidates redo for the chapter
	m.redo[s.ChapterID] = nil
	m.enforceCapsLocked(s.ChapterID)
}

// Undo pops from the chapter undo stack and pushes to redo stack, returning the snapshot.
func (m *Manager) Undo(chapterID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[chapterID]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	s := stack[len(stack)-1]
	m.undo[chapterID] = stack[:len(stack)-1]
	m.totalBytes -= len(s.Blob)
	m.redo[chapterID] = append(m.redo[chapterID], s)
	return s, true
}

// Redo pops from redo and pushes back to undo.
func (m *Manager) Redo(chapterID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[chapterID]
	if len(r) == 0 {
		return Snapshot{}, false
	}
	s := r[len(r)-1]
	m.redo[chapterID] = r[:len(r)-1]
	m.undo[chapterID] = append(m.undo[chapterID], s)
	m.totalBytes += len(s.Blob)
	m.enforceCapsLocked(chapterID)
	return s, true
}

// ClearChapter clears undo/redo stacks for a chapter to free memory.
func (m *Manager) ClearChapter(chapterID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.undo[chapterID] {
		m.totalBytes -= len(s.Blob)
	}
	delete(m.undo, chapterID)
	delete(m.redo, chapterID)
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes int, chapters int, totalSnapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chapters = len(m.undo)
	for _, v := range m.undo {
		totalSnapshots += len(v)
	}
	return m.totalBytes, chapters, totalSnapshots
}

func (m *Manager) enforceCapsLocked(chapterID string) {
	// Per-chapter depth cap
	if m.cfg.MaxPerChapter > 0 {
		stack := m.undo[chapterID]
		if len(stack) > m.cfg.MaxPerChapter {
			// drop the oldest extras
			toDrop := len(stack) - m.cfg.MaxPerChapter
			for i := 0; i < toDrop; i++ {
				m.totalBytes -= len(stack[i].Blob)
			}
			m.undo[chapterID] = append([]Snapshot{}, stack[toDrop:]...)
		}
	}
	// Global memory cap: prune oldest across all chapters
	for m.cfg.MaxBytes > 0 && m.totalBytes > m.cfg.MaxBytes {
		oldestChapter := ""
		oldestIdx := -1
		var oldestTS time.Time
		for ch, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if oldestIdx == -1 || stack[0].TS.Before(oldestTS) {
				oldestChapter = ch
				oldestIdx = 0
				oldestTS = stack[0].TS
			}
		}
		if oldestIdx == -1 {
			break
		}
		stack := m.undo[oldestChapter]
		m.totalBytes -= len(stack[0].Blob)
		m.undo[oldestChapter] = stack[1:]
		if len(m.undo[oldestChapter]) == 0 {
			delete(m.undo, oldestChapter)
		}
	}
}
