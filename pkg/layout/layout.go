// Package layout packs variable-aspect-ratio photos into justified rows
// of near-uniform height. Pack is a pure function: it is recomputed in
// full whenever the container width or the loaded groups change.
package layout

import (
	"math"

	"tableflip.dev/foto/pkg/photo"
)

const (
	// lookahead bounds how many photos are considered for a single row.
	lookahead = 12

	// overshoot stops extending a row once the accumulated width at
	// target height exceeds this multiple of the available width.
	overshoot = 1.5

	// lastRowStretch is the natural-height multiple past which a
	// trailing row is clamped to the target height instead of being
	// stretched to fill the width.
	lastRowStretch = 1.25

	// minContainerWidth guards against degenerate layouts during
	// resize transients.
	minContainerWidth = 200

	// sideMargin is subtracted from the container width before fitting.
	sideMargin = 8
)

// Options parameterize a packing pass.
type Options struct {
	ContainerWidth  int
	TargetRowHeight int
	Gap             int
}

// Item is one element of the flattened render list: either a Header or
// a Row. The virtualized viewport indexes into []Item directly.
type Item interface {
	renderItem()
}

// Header introduces a group in the render list.
type Header struct {
	Title string
	Count int
}

// Row is a horizontal strip of photos scaled to a common height.
// Widths holds the rendered width of each photo; for justified rows the
// widths absorb rounding so that widths plus gaps fill the available
// width exactly. A clamped trailing row keeps its natural widths and is
// deliberately left unjustified.
type Row struct {
	Photos  []photo.Photo
	Height  int
	Widths  []int
	Clamped bool
}

func (Header) renderItem() {}
func (Row) renderItem()    {}

// Pack lays out each group independently into a header followed by
// justified rows. Rows never span two groups. Deterministic and
// stateless; identical inputs yield identical output.
func Pack(groups []photo.Group, opts Options) []Item {
	width := opts.ContainerWidth
	if width < minContainerWidth {
		width = minContainerWidth
	}
	available := width - sideMargin

	items := make([]Item, 0, len(groups)*4)
	for _, g := range groups {
		items = append(items, Header{Title: g.Title, Count: g.Count()})
		items = appendRows(items, g.Photos.Items, available, opts)
	}
	return items
}

func appendRows(items []Item, photos []photo.Photo, available int, opts Options) []Item {
	start := 0
	for start < len(photos) {
		end := bestRowEnd(photos, start, available, opts)
		row := photos[start : end+1]
		height := fitHeight(row, available, opts.Gap)

		clamped := false
		last := end+1 == len(photos)
		if last && float64(height) > lastRowStretch*float64(opts.TargetRowHeight) {
			// Too few photos to justify; keep the trailing row at the
			// target height rather than stretching it to fill.
			height = opts.TargetRowHeight
			clamped = true
		}

		widths := scaledWidths(row, height)
		if !clamped {
			justify(widths, available-opts.Gap*(len(row)-1))
		}

		items = append(items, Row{Photos: row, Height: height, Widths: widths, Clamped: clamped})
		start = end + 1
	}
	return items
}

// bestRowEnd scans up to lookahead photos from start and returns the end
// index whose fitted height lands closest to the target row height.
func bestRowEnd(photos []photo.Photo, start, available int, opts Options) int {
	best := start
	bestDiff := math.MaxFloat64
	widthAtTarget := 0.0

	for j := start; j < len(photos) && j < start+lookahead; j++ {
		widthAtTarget += photos[j].AspectRatio() * float64(opts.TargetRowHeight)
		if j > start {
			widthAtTarget += float64(opts.Gap)
		}

		h := rawFitHeight(photos[start:j+1], available, opts.Gap)
		if diff := math.Abs(h - float64(opts.TargetRowHeight)); diff < bestDiff {
			bestDiff = diff
			best = j
		}

		if widthAtTarget > overshoot*float64(available) {
			break
		}
	}
	return best
}

// rawFitHeight solves for the row height at which the photos plus gaps
// exactly fill the available width.
func rawFitHeight(photos []photo.Photo, available, gap int) float64 {
	ratioSum := 0.0
	for _, p := range photos {
		ratioSum += p.AspectRatio()
	}
	if ratioSum <= 0 {
		return 0
	}
	usable := float64(available - gap*(len(photos)-1))
	return usable / ratioSum
}

func fitHeight(photos []photo.Photo, available, gap int) int {
	return int(math.Floor(rawFitHeight(photos, available, gap)))
}

func scaledWidths(photos []photo.Photo, height int) []int {
	widths := make([]int, len(photos))
	for i, p := range photos {
		widths[i] = ScaledWidth(p, height)
	}
	return widths
}

// justify spreads the difference between the summed widths and the
// usable width across the row so the total matches exactly. Integer
// height flooring can leave a few pixels short; each photo absorbs at
// most a pixel or two.
func justify(widths []int, usable int) {
	sum := 0
	for _, w := range widths {
		sum += w
	}
	diff := usable - sum
	if diff == 0 || len(widths) == 0 {
		return
	}
	step := 1
	if diff < 0 {
		step = -1
		diff = -diff
	}
	for i := 0; diff > 0; i = (i + 1) % len(widths) {
		widths[i] += step
		diff--
	}
}

// ScaledWidth returns the rendered width of a photo scaled to the given
// row height.
func ScaledWidth(p photo.Photo, height int) int {
	return int(math.Round(p.AspectRatio() * float64(height)))
}

// AvailableWidth reports the width rows are fitted against for a given
// container width, after clamping and margins. Exposed so render layers
// can verify fit without re-deriving the constants.
func AvailableWidth(containerWidth int) int {
	if containerWidth < minContainerWidth {
		containerWidth = minContainerWidth
	}
	return containerWidth - sideMargin
}
