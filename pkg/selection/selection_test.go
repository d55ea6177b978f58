package selection

import (
	"fmt"
	"testing"

	"tableflip.dev/foto/pkg/photo"
)

func flattened(n int) []photo.Photo {
	out := make([]photo.Photo, n)
	for i := range out {
		out[i] = photo.Photo{ID: fmt.Sprintf("p%d", i), Width: 400, Height: 300}
	}
	return out
}

func group(title string, photos []photo.Photo) photo.Group {
	return photo.Group{
		Title:  title,
		Photos: photo.Paged{Total: len(photos), Items: photos},
	}
}

func TestToggleAddsAndRemoves(t *testing.T) {
	m := New()
	p := photo.Photo{ID: "a"}

	m.Toggle(p)
	if !m.Contains("a") || m.Count() != 1 {
		t.Fatalf("expected a selected, count=%d", m.Count())
	}

	m.Toggle(p)
	if m.Contains("a") || m.Count() != 0 {
		t.Fatalf("expected a deselected, count=%d", m.Count())
	}
}

func TestRangeSelectionIsSymmetric(t *testing.T) {
	photos := flattened(10)

	// Forward: anchor at 2, extend to 5.
	m := New()
	m.ToggleAt(photos, 2, false)
	m.ToggleAt(photos, 5, true)
	for i := 2; i <= 5; i++ {
		if !m.Contains(photos[i].ID) {
			t.Fatalf("forward range missing index %d", i)
		}
	}
	if m.Count() != 4 {
		t.Fatalf("forward range selected %d, want 4", m.Count())
	}

	// Backward: anchor at 5, extend to 2 selects the same set.
	m = New()
	m.ToggleAt(photos, 5, false)
	m.ToggleAt(photos, 2, true)
	for i := 2; i <= 5; i++ {
		if !m.Contains(photos[i].ID) {
			t.Fatalf("backward range missing index %d", i)
		}
	}
	if m.Count() != 4 {
		t.Fatalf("backward range selected %d, want 4", m.Count())
	}
}

func TestRangeUnionsWithExistingSelection(t *testing.T) {
	photos := flattened(10)
	m := New()

	m.ToggleAt(photos, 8, false)
	m.ToggleAt(photos, 2, false)
	m.ToggleAt(photos, 4, true)

	for _, i := range []int{2, 3, 4, 8} {
		if !m.Contains(photos[i].ID) {
			t.Fatalf("expected index %d selected", i)
		}
	}
	if m.Count() != 4 {
		t.Fatalf("expected 4 selected, got %d", m.Count())
	}
	if m.Anchor() != 4 {
		t.Fatalf("expected anchor moved to 4, got %d", m.Anchor())
	}
}

func TestPlainToggleUpdatesAnchor(t *testing.T) {
	photos := flattened(6)
	m := New()

	m.ToggleAt(photos, 3, false)
	if m.Anchor() != 3 {
		t.Fatalf("expected anchor 3, got %d", m.Anchor())
	}

	// Toggle by photo keeps the anchor.
	m.Toggle(photos[0])
	if m.Anchor() != 3 {
		t.Fatalf("plain toggle must preserve anchor, got %d", m.Anchor())
	}
}

func TestToggleGroupIsSelectBiased(t *testing.T) {
	photos := flattened(4)
	g := group("2024-01", photos)
	m := New()

	// Partially selected: group toggle completes the selection.
	m.Toggle(photos[1])
	m.ToggleGroup(g)
	if m.Count() != 4 {
		t.Fatalf("expected all 4 selected, got %d", m.Count())
	}
	if !m.GroupSelected(g) {
		t.Fatalf("expected group fully selected")
	}

	// Fully selected: group toggle deselects exactly this group.
	other := photo.Photo{ID: "other"}
	m.Toggle(other)
	m.ToggleGroup(g)
	if m.Count() != 1 || !m.Contains("other") {
		t.Fatalf("expected only the outside photo to remain, count=%d", m.Count())
	}
}

func TestToggleGroupInvalidatesAnchor(t *testing.T) {
	photos := flattened(4)
	m := New()

	m.ToggleAt(photos, 1, false)
	m.ToggleGroup(group("2024-02", photos))
	if m.Anchor() != -1 {
		t.Fatalf("group toggle must reset anchor, got %d", m.Anchor())
	}
}

func TestClearResetsEverything(t *testing.T) {
	photos := flattened(4)
	m := New()

	m.ToggleAt(photos, 0, false)
	m.ToggleAt(photos, 3, true)
	m.Clear()
	if m.Count() != 0 {
		t.Fatalf("expected empty selection, got %d", m.Count())
	}
	if m.Anchor() != -1 {
		t.Fatalf("expected anchor reset, got %d", m.Anchor())
	}
}

func TestSelectionOrderIsStable(t *testing.T) {
	photos := flattened(5)
	m := New()

	m.Toggle(photos[4])
	m.Toggle(photos[0])
	m.Toggle(photos[2])
	m.Toggle(photos[0]) // remove

	got := m.Selected()
	if len(got) != 2 || got[0].ID != "p4" || got[1].ID != "p2" {
		t.Fatalf("unexpected order: %v", got)
	}
}
