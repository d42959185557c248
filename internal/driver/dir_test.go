package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"ember/internal/diag"
)

func TestListDumps(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeDump(t, dir, "b.hir.json", cleanDump)
	writeDump(t, sub, "a.hir.json", cleanDump)
	writeDump(t, dir, "notes.txt", "not a dump")
	writeDump(t, dir, "main.em", "fn main() {}")

	files, err := ListDumps(dir)
	if err != nil {
		t.Fatalf("ListDumps: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 dumps, got %v", files)
	}
	// Отсортировано по полному пути: b.hir.json < nested/a.hir.json
	if filepath.Base(files[0]) != "b.hir.json" || filepath.Base(files[1]) != "a.hir.json" {
		t.Errorf("unexpected order: %v", files)
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "clean.hir.json", cleanDump)
	writeDump(t, dir, "point.hir.json", inlineDump)
	writeDump(t, dir, "skipped.txt", "not a dump")

	results, err := CheckDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Результаты идут в порядке отсортированных путей.
	if filepath.Base(results[0].Path) != "clean.hir.json" {
		t.Errorf("unexpected first result %q", results[0].Path)
	}
	if filepath.Base(results[1].Path) != "point.hir.json" {
		t.Errorf("unexpected second result %q", results[1].Path)
	}

	if results[0].Bag.Len() != 0 {
		t.Errorf("clean dump produced diagnostics: %+v", results[0].Bag.Items())
	}
	if !results[1].Bag.HasErrors() {
		t.Error("expected errors for the @inline dump")
	}
	if results[1].Bag.Items()[0].Code != diag.SemaAttrInlineTarget {
		t.Errorf("unexpected code %v", results[1].Bag.Items()[0].Code)
	}

	// У каждого файла собственный FileSet
	if results[0].FileSet == results[1].FileSet {
		t.Error("results must not share a FileSet")
	}
}

func TestCheckDirEmpty(t *testing.T) {
	results, err := CheckDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results for an empty directory, got %d", len(results))
	}
}

func TestCheckDirMissingDir(t *testing.T) {
	_, err := CheckDir(context.Background(), filepath.Join(t.TempDir(), "absent"), Options{})
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestCheckDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "clean.hir.json", cleanDump)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CheckDir(ctx, dir, Options{})
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
}

type eventCollector struct {
	mu     sync.Mutex
	events []Event
}

func (c *eventCollector) OnEvent(evt Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
}

func (c *eventCollector) snapshot() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func TestCheckDirEmitsEvents(t *testing.T) {
	dir := t.TempDir()
	cleanPath := writeDump(t, dir, "clean.hir.json", cleanDump)
	pointPath := writeDump(t, dir, "point.hir.json", inlineDump)

	sink := &eventCollector{}
	// Jobs: 1 для детерминированного порядка событий
	_, err := CheckDir(context.Background(), dir, Options{Jobs: 1, Progress: sink})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}

	events := sink.snapshot()
	if len(events) < 4 {
		t.Fatalf("expected queued and completion events, got %+v", events)
	}

	// Сначала queued для всех файлов в отсортированном порядке.
	if events[0].File != cleanPath || events[0].Status != StatusQueued {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].File != pointPath || events[1].Status != StatusQueued {
		t.Errorf("unexpected second event %+v", events[1])
	}

	final := map[string]Status{}
	for _, evt := range events {
		if evt.Status == StatusDone || evt.Status == StatusError {
			final[evt.File] = evt.Status
		}
	}
	if final[cleanPath] != StatusDone {
		t.Errorf("clean dump finished with %q", final[cleanPath])
	}
	if final[pointPath] != StatusError {
		t.Errorf("dump with errors finished with %q", final[pointPath])
	}
}
