package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// Event signals that the photo library changed on disk and the catalog
// should be rescanned.
type Event struct {
	Path string
}

// WatchLibrary streams change events for the photo library tree until
// ctx is cancelled. Bursts of filesystem activity are coalesced so a
// bulk import produces one rescan instead of hundreds.
func WatchLibrary(ctx context.Context, dir string) (<-chan Event, error) {
	if dir == "" {
		return nil, errors.New("store: library path required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				klog.Errorf("store: watcher close: %v", err)
			}
		})
	}

	dirs, err := collectDirs(dir)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", d, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, d := range dirs {
			watched[d] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop when the consumer lags; the next rescan picks
				// up whatever was missed.
			}
		}

		var mu sync.Mutex
		var timer *time.Timer
		pending := ""
		enqueue := func(path string) {
			mu.Lock()
			pending = path
			if timer == nil {
				timer = time.AfterFunc(100*time.Millisecond, func() {
					mu.Lock()
					p := pending
					timer = nil
					mu.Unlock()
					send(Event{Path: p})
				})
			}
			mu.Unlock()
		}

		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				klog.V(1).Infof("store: watch error: %v", err)
				enqueue("")
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					// New directories need their own watch to catch
					// subsequent writes.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						abs := filepath.Clean(evt.Name)
						if _, found := watched[abs]; !found {
							if err := watcher.Add(abs); err != nil {
								klog.Errorf("store: watch %s: %v", abs, err)
							} else {
								watched[abs] = struct{}{}
							}
						}
					}
				}
				enqueue(evt.Name)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories to watch.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}
