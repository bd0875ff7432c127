/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"bytes"
	"context"
	"testing"
	"time"

	"gobookpress/internal/domain"
)

func snapshotProject(t *testing.T) *ProjectHandle {
	t.Helper()
	root := t.TempDir()
	book := domain.BookContent{Title: "Snapshots", Chapters: []domain.Chapter{{ID: "ch-1", Title: "One", Content: "text"}}}
	ph, err := InitProject(root, NewManifest(book))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	return ph
}

func TestSaveAndGetLatestSnapshot(t *testing.T) {
	ph := snapshotProject(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t0 := time.Now().Add(-time.Minute)
	if err := SaveSnapshot(ctx, ph, "ch-1", []byte("older"), t0); err != nil {
		t.Fatalf("save older: %v", err)
	}
	if err := SaveSnapshot(ctx, ph, "ch-1", []byte("newer"), t0.Add(30*time.Second)); err != nil {
		t.Fatalf("save newer: %v", err)
	}

	blob, ts, err := GetLatestSnapshot(ctx, ph, "ch-1")
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if !bytes.Equal(blob, []byte("newer")) {
		t.Fatalf("latest blob = %q, want %q", blob, "newer")
	}
	if ts.IsZero() {
		t.Fatalf("expected a parsed timestamp")
	}
}

func TestGetLatestSnapshotNoneReturnsNil(t *testing.T) {
	ph := snapshotProject(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	blob, _, err := GetLatestSnapshot(ctx, ph, "ch-missing")
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if blob != nil {
		t.Fatalf("expected nil blob for unknown chapter, got %q", blob)
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	ph := snapshotProject(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		if err := SaveSnapshot(ctx, ph, "ch-1", []byte{byte('a' + i)}, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	list, err := ListSnapshots(ctx, ph, "ch-1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if !bytes.Equal(list[0].Blob, []byte("c")) {
		t.Fatalf("first entry = %q, want newest 'c'", list[0].Blob)
	}
	for i := 1; i < len(list); i++ {
		if list[i].TS.After(list[i-1].TS) {
			t.Fatalf("list not ordered newest first at %d", i)
		}
	}
}

func TestPopLatestSnapshotConsumesNewest(t *testing.T) {
	ph := snapshotProject(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t0 := time.Now().Add(-time.Minute)
	if err := SaveSnapshot(ctx, ph, "ch-1", []byte("older"), t0); err != nil {
		t.Fatalf("save older: %v", err)
	}
	if err := SaveSnapshot(ctx, ph, "ch-1", []byte("newer"), t0.Add(30*time.Second)); err != nil {
		t.Fatalf("save newer: %v", err)
	}

	blob, ts, err := PopLatestSnapshot(ctx, ph, "ch-1")
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if !bytes.Equal(blob, []byte("newer")) {
		t.Fatalf("popped blob = %q, want %q", blob, "newer")
	}
	if ts.IsZero() {
		t.Fatalf("expected a parsed timestamp")
	}

	// The popped row is gone; the older one is now latest
	blob, _, err = PopLatestSnapshot(ctx, ph, "ch-1")
	if err != nil {
		t.Fatalf("second pop: %v", err)
	}
	if !bytes.Equal(blob, []byte("older")) {
		t.Fatalf("second pop = %q, want %q", blob, "older")
	}
	blob, _, err = PopLatestSnapshot(ctx, ph, "ch-1")
	if err != nil {
		t.Fatalf("third pop: %v", err)
	}
	if blob != nil {
		t.Fatalf("expected nil blob once drained, got %q", blob)
	}
}

func TestPruneOldSnapshotsKeepsNewest(t *testing.T) {
	ph := snapshotProject(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		if err := SaveSnapshot(ctx, ph, "ch-1", []byte{byte('a' + i)}, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	deleted, err := PruneOldSnapshots(ctx, ph, "ch-1", 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d, want 3", deleted)
	}
	list, err := ListSnapshots(ctx, ph, "ch-1", 10)
	if err != nil {
		t.Fatalf("list after prune: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("kept = %d, want 2", len(list))
	}
	if !bytes.Equal(list[0].Blob, []byte("e")) {
		t.Fatalf("newest kept = %q, want 'e'", list[0].Blob)
	}
}
