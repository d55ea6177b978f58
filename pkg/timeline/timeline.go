// Package timeline drives incremental loading of grouped photo pages and
// keeps a flattened render list in sync with the loaded state. It is the
// glue between a paged Source, the layout engine, and whatever viewport
// consumes the render list.
package timeline

import (
	"context"
	"errors"

	"tableflip.dev/foto/pkg/layout"
	"tableflip.dev/foto/pkg/photo"
)

// Source provides pages of photo groups. A returned page shorter than
// pageSize signals exhaustion.
type Source interface {
	TimelinePage(ctx context.Context, page, pageSize int) ([]photo.Group, error)
}

// Locator is implemented by sources that can translate a human label
// (e.g. a year) into a group offset for fast jump navigation.
type Locator interface {
	OffsetForLabel(ctx context.Context, label string) (int, error)
}

// Sink receives outbound events from the controller. Implementations
// must not call back into the controller from within an event.
type Sink interface {
	// RenderListChanged is published after any mutation that changes
	// the flattened render list.
	RenderListChanged(items []layout.Item, totalPhotos int)

	// ActiveGroupChanged reports the title of the topmost visible group.
	ActiveGroupChanged(title string)

	// ScrollTo asks the viewport to move to the given render item index.
	ScrollTo(index int)
}

// State is the pagination state of a timeline instance.
type State int

const (
	// StateIdle means no fetch is outstanding and more data may exist.
	StateIdle State = iota

	// StateFetching means a fetch is in flight; further fetch requests
	// are refused until it completes.
	StateFetching

	// StateExhausted means the source reported no more data; no further
	// fetches will be attempted.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateExhausted:
		return "exhausted"
	default:
		return "idle"
	}
}

// FailurePolicy controls how fetch errors affect forward progress.
type FailurePolicy int

const (
	// FailExhaust treats a failed fetch like an empty page: hasMore
	// flips to false and no retry happens.
	FailExhaust FailurePolicy = iota

	// FailRetain keeps hasMore intact on error so the caller may
	// re-trigger the fetch manually.
	FailRetain
)

const (
	// defaultLookahead is how close (in render items) the visible index
	// must come to the end of the list before the next page is fetched.
	defaultLookahead = 15

	defaultPageSize = 50
)

// Options configure a Controller.
type Options struct {
	PageSize int
	Layout   layout.Options

	// Lookahead overrides the scroll prefetch window when positive.
	Lookahead int

	// MaxJumpFetches bounds how many pages JumpToOffset may pull in a
	// single resolution. Zero means unbounded, matching a source that
	// is trusted to exhaust.
	MaxJumpFetches int

	FailurePolicy FailurePolicy
}

// Controller owns the timeline state: the append-only group cache, the
// page cursor, and the derived render list. It is not safe for
// concurrent use; the expected caller is a single event loop.
type Controller struct {
	source Source
	sink   Sink
	opts   Options

	state       State
	groups      []photo.Group
	currentPage int
	hasMore     bool
	totalPhotos int
	lastErr     error

	items       []layout.Item
	activeGroup string
	restoring   bool
}

// New returns a controller over the given source. sink may be nil.
func New(source Source, sink Sink, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.Lookahead <= 0 {
		opts.Lookahead = defaultLookahead
	}
	return &Controller{
		source:  source,
		sink:    sink,
		opts:    opts,
		state:   StateIdle,
		hasMore: true,
	}
}

// Items returns the current flattened render list.
func (c *Controller) Items() []layout.Item { return c.items }

// Groups returns the loaded groups in source order.
func (c *Controller) Groups() []photo.Group { return c.groups }

// State reports the pagination state.
func (c *Controller) State() State { return c.state }

// HasMore reports whether further pages may exist.
func (c *Controller) HasMore() bool { return c.hasMore }

// CurrentPage is the last successfully loaded page, zero before any load.
func (c *Controller) CurrentPage() int { return c.currentPage }

// TotalPhotos is the sum of reported group totals, which may exceed the
// number of currently loaded photos.
func (c *Controller) TotalPhotos() int { return c.totalPhotos }

// LastErr returns the most recent fetch error, if any. Fetch errors are
// deliberately not surfaced as failures (see FailurePolicy); this is the
// hook for callers that want to show them anyway.
func (c *Controller) LastErr() error { return c.lastErr }

// ActiveGroup is the title of the topmost visible group header.
func (c *Controller) ActiveGroup() string { return c.activeGroup }

// FlattenedPhotos is the concatenation of all loaded groups' photos, the
// sequence selection ranges are computed over.
func (c *Controller) FlattenedPhotos() []photo.Photo { return photo.Flatten(c.groups) }

// FetchNextPage loads the page after the current cursor. The request is
// refused while a fetch is outstanding or the source is exhausted.
func (c *Controller) FetchNextPage(ctx context.Context) error {
	if c.state != StateIdle {
		return nil
	}
	c.state = StateFetching

	page := c.currentPage + 1
	groups, err := c.source.TimelinePage(ctx, page, c.opts.PageSize)
	if err != nil {
		c.lastErr = err
		if c.opts.FailurePolicy == FailRetain {
			c.state = StateIdle
			return err
		}
		c.state = StateExhausted
		c.hasMore = false
		return nil
	}

	if page == 1 {
		// First page replaces whatever is loaded so view re-entry does
		// not duplicate groups.
		c.groups = groups
	} else {
		c.groups = append(c.groups, groups...)
	}
	c.currentPage = page
	c.lastErr = nil

	if len(groups) < c.opts.PageSize {
		c.state = StateExhausted
		c.hasMore = false
	} else {
		c.state = StateIdle
	}

	c.recompute()
	return nil
}

// VisibleIndexChanged is the viewport's scroll report. It updates the
// active group and triggers a prefetch when the index comes within the
// lookahead window of the end of the render list. Prefetching is
// suppressed while a scroll restore is in progress.
func (c *Controller) VisibleIndexChanged(ctx context.Context, index int) error {
	c.updateActiveGroup(index)
	if c.restoring {
		return nil
	}
	if !c.hasMore || c.state != StateIdle {
		return nil
	}
	if index < len(c.items)-c.opts.Lookahead {
		return nil
	}
	return c.FetchNextPage(ctx)
}

// Resize updates the container width and relayouts without any fetching.
func (c *Controller) Resize(width int) {
	if width == c.opts.Layout.ContainerWidth {
		return
	}
	c.opts.Layout.ContainerWidth = width
	c.recompute()
}

// JumpToOffset resolves a group offset, fetching further pages until the
// offset is covered or the source is exhausted, then asks the viewport
// to scroll to the matching group header. A resolution miss is a no-op.
func (c *Controller) JumpToOffset(ctx context.Context, offset int, label string) error {
	if offset < 0 {
		return errors.New("timeline: negative offset")
	}

	fetches := 0
	for len(c.groups) < offset && c.hasMore {
		if c.opts.MaxJumpFetches > 0 && fetches >= c.opts.MaxJumpFetches {
			break
		}
		if err := c.FetchNextPage(ctx); err != nil {
			return err
		}
		fetches++
	}

	c.resolveJump(offset, label)
	return nil
}

// JumpToLabel resolves a label (e.g. "2019") to an offset via the
// source's Locator fast path when available, falling back to the groups
// already loaded.
func (c *Controller) JumpToLabel(ctx context.Context, label string) error {
	if loc, ok := c.source.(Locator); ok {
		offset, err := loc.OffsetForLabel(ctx, label)
		if err == nil && offset >= 0 {
			// The locator returns the group's 0-based index; fetch until
			// the group itself is loaded, not merely up to its offset.
			return c.JumpToOffset(ctx, offset+1, label)
		}
	}
	c.resolveJump(len(c.groups), label)
	return nil
}

func (c *Controller) resolveJump(offset int, label string) {
	title := ""
	if label != "" {
		for _, g := range c.groups {
			if g.MatchesLabel(label) {
				title = g.Title
				break
			}
		}
	} else if offset < len(c.groups) {
		title = c.groups[offset].Title
	}
	if title == "" {
		return
	}
	if idx := c.HeaderIndex(title); idx >= 0 && c.sink != nil {
		c.sink.ScrollTo(idx)
	}
}

// HeaderIndex returns the render list index of the header for the named
// group, or -1.
func (c *Controller) HeaderIndex(title string) int {
	for i, it := range c.items {
		if h, ok := it.(layout.Header); ok && h.Title == title {
			return i
		}
	}
	return -1
}

// Restore hydrates the timeline from a previous session instead of
// fetching page one, and arms the restore-suppression window so the
// scroll restoration itself cannot trigger a premature prefetch.
// Callers must invoke EndRestore once the viewport has settled.
func (c *Controller) Restore(groups []photo.Group, page int, hasMore bool) {
	c.groups = groups
	c.currentPage = page
	c.hasMore = hasMore
	if hasMore {
		c.state = StateIdle
	} else {
		c.state = StateExhausted
	}
	c.restoring = true
	c.recompute()
}

// EndRestore lifts the scroll-prefetch suppression.
func (c *Controller) EndRestore() { c.restoring = false }

// Restoring reports whether the restore-suppression window is active.
func (c *Controller) Restoring() bool { return c.restoring }

func (c *Controller) recompute() {
	c.totalPhotos = 0
	for _, g := range c.groups {
		c.totalPhotos += g.Count()
	}
	c.items = layout.Pack(c.groups, c.opts.Layout)
	if c.sink != nil {
		c.sink.RenderListChanged(c.items, c.totalPhotos)
	}
}

func (c *Controller) updateActiveGroup(index int) {
	if index < 0 || index >= len(c.items) {
		return
	}
	title := c.activeGroup
	for i := index; i >= 0; i-- {
		if h, ok := c.items[i].(layout.Header); ok {
			title = h.Title
			break
		}
	}
	if title != c.activeGroup {
		c.activeGroup = title
		if c.sink != nil {
			c.sink.ActiveGroupChanged(title)
		}
	}
}
