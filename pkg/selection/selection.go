// Package selection tracks the set of selected photos across the
// flattened timeline view.
package selection

import (
	"tableflip.dev/foto/pkg/photo"
)

// Model holds the ordered selection and the shift-click anchor. Range
// operations work over the flattened photo sequence (the concatenation
// of all loaded groups), not the packed row structure.
type Model struct {
	ordered []photo.Photo
	ids     map[string]int // id -> position in ordered
	anchor  int            // flattened index of the last toggle, -1 when unset
}

// New returns an empty selection.
func New() *Model {
	return &Model{
		ids:    make(map[string]int),
		anchor: -1,
	}
}

// Selected returns the selected photos in selection order. The returned
// slice is shared; callers must not mutate it.
func (m *Model) Selected() []photo.Photo { return m.ordered }

// Count reports how many photos are selected.
func (m *Model) Count() int { return len(m.ordered) }

// Contains reports whether the photo id is selected.
func (m *Model) Contains(id string) bool {
	_, ok := m.ids[id]
	return ok
}

// Anchor returns the flattened index of the last plain toggle, or -1.
func (m *Model) Anchor() int { return m.anchor }

// Toggle adds or removes a single photo. The anchor is left untouched.
func (m *Model) Toggle(p photo.Photo) {
	if m.Contains(p.ID) {
		m.remove(p.ID)
		return
	}
	m.add(p)
}

// ToggleAt toggles the photo at the given index of the flattened
// sequence. With extend set and a previous anchor present, every photo
// in the inclusive index range between anchor and index is added to the
// selection regardless of scan direction. The anchor always moves to
// index afterwards.
func (m *Model) ToggleAt(flattened []photo.Photo, index int, extend bool) {
	if index < 0 || index >= len(flattened) {
		return
	}
	if extend && m.anchor >= 0 {
		lo, hi := m.anchor, index
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi >= len(flattened) {
			hi = len(flattened) - 1
		}
		for i := lo; i <= hi; i++ {
			if !m.Contains(flattened[i].ID) {
				m.add(flattened[i])
			}
		}
	} else {
		m.Toggle(flattened[index])
	}
	m.anchor = index
}

// ToggleGroup bulk-toggles a group: when every loaded photo of the group
// is already selected the group is deselected, otherwise the missing
// photos are added. The bias toward selecting is intentional — it backs
// the "select all in month" affordance — and it invalidates the anchor.
func (m *Model) ToggleGroup(g photo.Group) {
	all := len(g.Photos.Items) > 0
	for _, p := range g.Photos.Items {
		if !m.Contains(p.ID) {
			all = false
			break
		}
	}

	if all {
		for _, p := range g.Photos.Items {
			m.remove(p.ID)
		}
	} else {
		for _, p := range g.Photos.Items {
			if !m.Contains(p.ID) {
				m.add(p)
			}
		}
	}
	m.anchor = -1
}

// GroupSelected reports whether every loaded photo of the group is
// currently selected.
func (m *Model) GroupSelected(g photo.Group) bool {
	if len(g.Photos.Items) == 0 {
		return false
	}
	for _, p := range g.Photos.Items {
		if !m.Contains(p.ID) {
			return false
		}
	}
	return true
}

// Clear empties the selection and resets the anchor.
func (m *Model) Clear() {
	m.ordered = m.ordered[:0]
	m.ids = make(map[string]int)
	m.anchor = -1
}

func (m *Model) add(p photo.Photo) {
	m.ids[p.ID] = len(m.ordered)
	m.ordered = append(m.ordered, p)
}

func (m *Model) remove(id string) {
	pos, ok := m.ids[id]
	if !ok {
		return
	}
	m.ordered = append(m.ordered[:pos], m.ordered[pos+1:]...)
	delete(m.ids, id)
	for i := pos; i < len(m.ordered); i++ {
		m.ids[m.ordered[i].ID] = i
	}
}
