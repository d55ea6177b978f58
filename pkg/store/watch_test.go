package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchLibraryEmitsOnWrite(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := WatchLibrary(ctx, dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "new.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case _, ok := <-events:
		if !ok {
			t.Fatalf("event channel closed early")
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no event after library write")
	}
}

func TestWatchLibraryClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := WatchLibrary(ctx, dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			// Drain anything emitted before the close lands.
			for range events {
			}
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("channel not closed after cancel")
	}
}

func TestWatchLibraryRequiresPath(t *testing.T) {
	if _, err := WatchLibrary(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
