package photo

import (
	"strings"
	"time"
)

// FallbackRatio is used whenever a photo is missing usable dimensions.
// 4:3 matches the most common sensor aspect and keeps layout math sane.
const FallbackRatio = 4.0 / 3.0

// Photo is a single library image. Width and Height may be zero when the
// decoder could not determine geometry; layout code must go through
// AspectRatio instead of reading the fields directly.
type Photo struct {
	ID      string    `json:"id"`
	Title   string    `json:"title,omitempty"`
	Path    string    `json:"path,omitempty"`
	Hash    string    `json:"hash,omitempty"`
	Width   int       `json:"width,omitempty"`
	Height  int       `json:"height,omitempty"`
	TakenAt time.Time `json:"takenAt,omitempty"`
}

// AspectRatio returns width/height, or FallbackRatio when either
// dimension is missing or non-positive.
func (p Photo) AspectRatio() float64 {
	if p.Width > 0 && p.Height > 0 {
		return float64(p.Width) / float64(p.Height)
	}
	return FallbackRatio
}

// Paged is one page of a group's photo collection. Total reports the
// full group size, which may exceed len(Items).
type Paged struct {
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
	Total    int     `json:"total"`
	Items    []Photo `json:"items"`
}

// Group is a titled bucket of photos, typically a calendar month in
// "YYYY-MM" form. Groups arrive ordered from the source and are never
// re-sorted here.
type Group struct {
	Title  string `json:"title"`
	Photos Paged  `json:"photos"`
}

// Count returns the group's reported total, falling back to the number
// of loaded items when the source did not report one.
func (g Group) Count() int {
	if g.Photos.Total > 0 {
		return g.Photos.Total
	}
	return len(g.Photos.Items)
}

// MatchesLabel reports whether the group title matches or starts with
// the given label, e.g. label "2019" matches title "2019-07".
func (g Group) MatchesLabel(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	return g.Title == label || strings.HasPrefix(g.Title, label)
}

// Flatten concatenates the loaded photos of each group in order. The
// result is the flattened photo sequence selection ranges operate on.
func Flatten(groups []Group) []Photo {
	n := 0
	for _, g := range groups {
		n += len(g.Photos.Items)
	}
	out := make([]Photo, 0, n)
	for _, g := range groups {
		out = append(out, g.Photos.Items...)
	}
	return out
}
