package duplicates

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// writeFile creates a file with the given content and returns a
// classified entry for it.
func writeFile(t *testing.T, dir, name string, content []byte) models.ClassifiedFile {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return models.ClassifiedFile{
		FileRecord: models.FileRecord{
			Path:         path,
			Name:         name,
			Size:         int64(len(content)),
			LastAccessed: time.Now(),
			LastModified: time.Now(),
			Extension:    models.ExtensionOf(name),
		},
		Category: models.CategoryOther,
	}
}

func TestFind_IdenticalFilesFormOneGroup(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("duplicate content "), 500)

	files := []models.ClassifiedFile{
		writeFile(t, dir, "a.bin", content),
		writeFile(t, dir, "b.bin", content),
		writeFile(t, dir, "c.bin", content),
		writeFile(t, dir, "unique.bin", []byte("something else entirely")),
	}

	groups := New(nil).Find(files, nil, nil)

	if len(groups) != 1 {
		t.Fatalf("Find() returned %d groups, want 1", len(groups))
	}
	for hash, group := range groups {
		if len(hash) != 32 {
			t.Errorf("group key %q is not an MD5 hex digest", hash)
		}
		if len(group) != 3 {
			t.Errorf("group has %d members, want 3", len(group))
		}
		for _, f := range group {
			if f.Size != int64(len(content)) {
				t.Errorf("member %s has size %d, want %d", f.Name, f.Size, len(content))
			}
		}
	}
}

func TestFind_DistinctSizesYieldNothing(t *testing.T) {
	dir := t.TempDir()
	files := []models.ClassifiedFile{
		writeFile(t, dir, "a.bin", []byte("x")),
		writeFile(t, dir, "b.bin", []byte("xx")),
		writeFile(t, dir, "c.bin", []byte("xxx")),
	}

	groups := New(nil).Find(files, nil, nil)
	if len(groups) != 0 {
		t.Errorf("Find() returned %d groups, want 0", len(groups))
	}
}

func TestFind_EmptyFilesAreNeverGrouped(t *testing.T) {
	dir := t.TempDir()
	files := []models.ClassifiedFile{
		writeFile(t, dir, "a.empty", nil),
		writeFile(t, dir, "b.empty", nil),
	}

	groups := New(nil).Find(files, nil, nil)
	if len(groups) != 0 {
		t.Errorf("Find() grouped empty files: %d groups", len(groups))
	}
}

func TestFind_EqualPrefixDifferentTail(t *testing.T) {
	// Same size, same first 4096 bytes, different content after the
	// partial-hash window: must not be reported together.
	dir := t.TempDir()
	prefix := bytes.Repeat([]byte{0xAB}, partialHashSize)

	one := append(append([]byte{}, prefix...), []byte("tail-one")...)
	two := append(append([]byte{}, prefix...), []byte("tail-two")...)

	files := []models.ClassifiedFile{
		writeFile(t, dir, "one.bin", one),
		writeFile(t, dir, "two.bin", two),
	}

	groups := New(nil).Find(files, nil, nil)
	if len(groups) != 0 {
		t.Errorf("Find() returned %d groups for partial-hash collision, want 0", len(groups))
	}
}

func TestFind_UnreadableCandidateIsDropped(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("payload"), 100)

	files := []models.ClassifiedFile{
		writeFile(t, dir, "a.bin", content),
		writeFile(t, dir, "b.bin", content),
	}

	// A vanished file with the same claimed size must be dropped
	// without aborting the search.
	ghost := writeFile(t, dir, "ghost.bin", content)
	if err := os.Remove(ghost.Path); err != nil {
		t.Fatal(err)
	}
	files = append(files, ghost)

	groups := New(nil).Find(files, nil, nil)

	if len(groups) != 1 {
		t.Fatalf("Find() returned %d groups, want 1", len(groups))
	}
	for _, group := range groups {
		if len(group) != 2 {
			t.Errorf("group has %d members, want 2", len(group))
		}
		for _, f := range group {
			if f.Name == "ghost.bin" {
				t.Error("vanished file appeared in a group")
			}
		}
	}
}

func TestFind_StopBeforeStart(t *testing.T) {
	dir := t.TempDir()
	content := []byte("same content")
	files := []models.ClassifiedFile{
		writeFile(t, dir, "a.bin", content),
		writeFile(t, dir, "b.bin", content),
	}

	groups := New(nil).Find(files, nil, func() bool { return true })
	if len(groups) != 0 {
		t.Errorf("Find() with immediate stop returned %d groups, want 0", len(groups))
	}
}

func TestFind_ProgressStagesAndCompletion(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("z"), 64)
	files := []models.ClassifiedFile{
		writeFile(t, dir, "a.bin", content),
		writeFile(t, dir, "b.bin", content),
	}

	type call struct {
		stage          string
		current, total int
	}
	var calls []call
	New(nil).Find(files, func(stage string, current, total int) {
		calls = append(calls, call{stage, current, total})
	}, nil)

	if len(calls) < 3 {
		t.Fatalf("got %d progress calls, want at least 3", len(calls))
	}
	if calls[0].stage != StageSizing {
		t.Errorf("first stage = %q, want %q", calls[0].stage, StageSizing)
	}
	last := calls[len(calls)-1]
	if last.stage != StageComplete {
		t.Errorf("last stage = %q, want %q", last.stage, StageComplete)
	}
	if last.current != last.total {
		t.Errorf("terminal progress %d/%d, want current == total", last.current, last.total)
	}

	// Counters never decrease within a stage.
	byStage := make(map[string]int)
	for _, c := range calls {
		if prev, ok := byStage[c.stage]; ok && c.current < prev {
			t.Errorf("stage %q counter decreased: %d after %d", c.stage, c.current, prev)
		}
		byStage[c.stage] = c.current
	}
}

func TestStats(t *testing.T) {
	group := make([]models.ClassifiedFile, 3)
	for i := range group {
		group[i] = models.ClassifiedFile{
			FileRecord: models.FileRecord{Size: 1000},
		}
	}
	groups := models.DuplicateGroups{"abc123": group}

	stats := Stats(groups)

	if stats.TotalGroups != 1 {
		t.Errorf("TotalGroups = %d, want 1", stats.TotalGroups)
	}
	if stats.TotalFiles != 3 {
		t.Errorf("TotalFiles = %d, want 3", stats.TotalFiles)
	}
	if stats.WastedBytes != 2000 {
		t.Errorf("WastedBytes = %d, want 2000", stats.WastedBytes)
	}
}

func TestStats_Empty(t *testing.T) {
	stats := Stats(models.DuplicateGroups{})
	if stats.TotalGroups != 0 || stats.TotalFiles != 0 || stats.WastedBytes != 0 {
		t.Errorf("Stats on empty groups = %+v, want zeros", stats)
	}
}
