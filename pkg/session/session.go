// Package session preserves timeline state across view entries so a
// returning user lands where they left off without re-fetching. The
// cache is an explicit context object handed to whoever owns the view
// lifecycle; there is no ambient global state.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/foto/pkg/photo"
)

const snapshotKey = "timeline"

// Snapshot captures everything needed to rebuild the default timeline
// view: the loaded groups, the pagination cursor, and where the user
// was scrolled to.
type Snapshot struct {
	LastIndex int           `json:"lastIndex"`
	Groups    []photo.Group `json:"groups"`
	Page      int           `json:"page"`
	HasMore   bool          `json:"hasMore"`
	SavedAt   time.Time     `json:"savedAt"`
}

// Empty reports whether the snapshot carries no usable state.
func (s Snapshot) Empty() bool { return len(s.Groups) == 0 }

// Cache holds the last-seen timeline snapshot. With a backing store it
// also survives process restarts; without one it is purely in-memory.
type Cache struct {
	snap  Snapshot
	have  bool
	store *diskv.Diskv
}

// New returns an in-memory session cache.
func New() *Cache {
	return &Cache{}
}

// NewPersistent returns a session cache backed by a diskv store rooted
// at dir. A snapshot persisted by an earlier run is loaded eagerly.
func NewPersistent(dir string) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("session: cache directory required")
	}
	c := &Cache{
		store: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 1024 * 1024,
		}),
	}
	if data, err := c.store.Read(snapshotKey); err == nil {
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err == nil && !snap.Empty() {
			c.snap = snap
			c.have = true
		}
	}
	return c, nil
}

// Save records the snapshot, replacing any previous one.
func (c *Cache) Save(snap Snapshot) error {
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now()
	}
	c.snap = snap
	c.have = !snap.Empty()
	if c.store == nil || !c.have {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session: encode snapshot: %w", err)
	}
	if err := c.store.Write(snapshotKey, data); err != nil {
		return fmt.Errorf("session: persist snapshot: %w", err)
	}
	return nil
}

// Load returns the cached snapshot and whether one is present.
func (c *Cache) Load() (Snapshot, bool) {
	return c.snap, c.have
}

// Clear drops the cached snapshot, including the persisted copy.
func (c *Cache) Clear() {
	c.snap = Snapshot{}
	c.have = false
	if c.store != nil {
		_ = c.store.Erase(snapshotKey)
	}
}

// Dispose releases the cache. The in-memory snapshot is dropped; a
// persisted snapshot stays on disk for the next run.
func (c *Cache) Dispose() {
	c.snap = Snapshot{}
	c.have = false
	c.store = nil
}
