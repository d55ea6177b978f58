// Package store persists the photo catalog. Photos are stored as JSON
// blobs in a diskv tree keyed by month so the timeline can page through
// months without loading the whole library.
package store

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/foto/pkg/photo"
)

const monthLayout = "2006-01"

// Catalog is the diskv-backed photo index. It implements the timeline
// Source and Locator contracts: one page is a run of month groups in
// reverse-chronological order.
type Catalog struct {
	d        *diskv.Diskv
	basePath string
}

// Open returns a catalog rooted at the configured cache directory.
func Open(cfg *Config) (*Catalog, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if cfg.CacheDir == "" {
		return nil, errors.New("store: cache directory required")
	}
	return &Catalog{
		d: diskv.New(diskv.Options{
			BasePath:          cfg.CacheDir,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: cfg.CacheDir,
	}, nil
}

// Put stores a photo under its month bucket. Photos without an ID get a
// stable content-derived one.
func (c *Catalog) Put(p *photo.Photo) error {
	if p == nil {
		return errors.New("store: nil photo")
	}
	if p.TakenAt.IsZero() {
		return errors.New("store: photo needs a taken-at time")
	}
	if p.ID == "" {
		b, _ := json.Marshal(p)
		id := md5.Sum(b)
		p.ID = fmt.Sprintf("%x", id[:8])
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.d.Write(toKey(p), data)
}

// Months returns the distinct month titles, newest first.
func (c *Catalog) Months(ctx context.Context) []string {
	seen := map[string]struct{}{}
	for key := range c.d.Keys(ctx.Done()) {
		seen[monthOfKey(key)] = struct{}{}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		if m != "" {
			months = append(months, m)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// List returns the photos of one month, newest first.
func (c *Catalog) List(ctx context.Context, month string) []photo.Photo {
	photos := make([]photo.Photo, 0)
	for key := range c.d.Keys(ctx.Done()) {
		if monthOfKey(key) != month {
			continue
		}
		p, err := c.read(key)
		if err != nil {
			continue
		}
		photos = append(photos, p)
	}
	sortPhotos(photos)
	return photos
}

// Group assembles the full month group for the given title.
func (c *Catalog) Group(ctx context.Context, month string) photo.Group {
	items := c.List(ctx, month)
	return photo.Group{
		Title: month,
		Photos: photo.Paged{
			Page:     1,
			PageSize: len(items),
			Total:    len(items),
			Items:    items,
		},
	}
}

// TimelinePage serves pageSize month groups for the 1-based page,
// newest months first. A short or empty result signals exhaustion.
func (c *Catalog) TimelinePage(ctx context.Context, page, pageSize int) ([]photo.Group, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("store: invalid page %d/%d", page, pageSize)
	}
	months := c.Months(ctx)
	start := (page - 1) * pageSize
	if start >= len(months) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(months) {
		end = len(months)
	}
	groups := make([]photo.Group, 0, end-start)
	for _, m := range months[start:end] {
		groups = append(groups, c.Group(ctx, m))
	}
	return groups, nil
}

// OffsetForLabel translates a label such as "2019" or "2019-07" into
// the offset of the first matching month group.
func (c *Catalog) OffsetForLabel(ctx context.Context, label string) (int, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return -1, errors.New("store: label required")
	}
	for i, m := range c.Months(ctx) {
		if m == label || strings.HasPrefix(m, label) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("store: no month matches %q", label)
}

func (c *Catalog) read(key string) (photo.Photo, error) {
	val, err := c.d.Read(key)
	if err != nil {
		return photo.Photo{}, err
	}
	var p photo.Photo
	if err := json.Unmarshal(val, &p); err != nil {
		return photo.Photo{}, err
	}
	if p.ID == "" {
		p.ID = keyToPathTransform(key).FileName
	}
	return p, nil
}

func sortPhotos(photos []photo.Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		lt, rt := photos[i].TakenAt, photos[j].TakenAt
		if lt.Equal(rt) {
			return photos[i].ID < photos[j].ID
		}
		return lt.After(rt)
	})
}

// toKey makes `YYYY-MM-id`; the month becomes the diskv directory path.
func toKey(p *photo.Photo) string {
	return fmt.Sprintf("%s-%s", p.TakenAt.Format(monthLayout), p.ID)
}

func monthOfKey(key string) string {
	pk := keyToPathTransform(key)
	return strings.Join(pk.Path, "-")
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
