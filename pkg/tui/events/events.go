// Package events defines the typed Bubble Tea messages the timeline
// controller publishes to the gallery view.
package events

import (
	"tableflip.dev/foto/pkg/layout"
)

// RenderListMsg is published whenever the flattened render list is
// recomputed (new page, relayout, restore).
type RenderListMsg struct {
	Items       []layout.Item
	TotalPhotos int
}

// ActiveGroupMsg reports the title of the topmost visible group, for
// the "currently viewing" indicator.
type ActiveGroupMsg struct {
	Title string
}

// ScrollToMsg asks the viewport to move to a render item index, emitted
// when an offset jump resolves.
type ScrollToMsg struct {
	Index int
}

// SelectionMsg reports the current selection size for toolbar actions.
type SelectionMsg struct {
	Count int
}

// LibraryChangedMsg signals that the on-disk library changed and the
// catalog contents may be stale.
type LibraryChangedMsg struct {
	Path string
}
