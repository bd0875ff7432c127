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
	"testing"
	"time"
)

func TestClearChapterAndStats(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024, MaxPerChapter: 10, MinInterval: time.Millisecond})
	ch := "ch-7"
	m.PushSnapshot(Snapshot{ChapterID: ch, Blob: []byte("abcdef"), TS: time.Now()})
	tb, chapters, total := m.Stats()
	if tb == 0 || chapters != 1 || total != 1 {
		t.Fatalf("unexpected stats before clear: tb=%d chapters=%d total=%d", tb, chapters, total)
	}
	m.ClearChapter(ch)
	tb2, chapters2, total2 := m.Stats()
	if tb2 != 0 || chapters2 != 0 || total2 != 0 {
		t.Fatalf("expected cleared stats to be zero, got tb=%d chapters=%d total=%d", tb2, chapters2, total2)
	}
}

func TestGlobalPruneAcrossChapters(t *testing.T) {
	// Very small MaxBytes so pruning triggers across chapters
	m := NewManager(Config{MaxBytes: 8, MaxPerChapter: 0, MinInterval: time.Millisecond})
	t0 := time.Now()
	// Older snapshot on the first chapter
	m.PushSnapshot(Snapshot{ChapterID: "ch-1", Blob: []byte("xxxx"), TS: t0})
	// Newer snapshot on the second chapter
	m.PushSnapshot(Snapshot{ChapterID: "ch-2", Blob: []byte("yyyy"), TS: t0.Add(time.Second)})

	// Add another snapshot to exceed cap and force prune of the oldest entry
	m.PushSnapshot(Snapshot{ChapterID: "ch-2", Blob: []byte("zzzz"), TS: t0.Add(2 * time.Second)})

	// After pruning, oldest (ch-1) should be removed
	_, chapters, total := m.Stats()
	if chapters == 0 || total == 0 {
		t.Fatalf("expected some snapshots to remain")
	}
	// Undo on ch-1 should now be empty
	if _, ok := m.Undo("ch-1"); ok {
		t.Fatalf("expected ch-1 to have been pruned")
	}
	// Undo on ch-2 should still work
	if _, ok := m.Undo("ch-2"); !ok {
		t.Fatalf("expected ch-2 to have snapshots")
	}
}
