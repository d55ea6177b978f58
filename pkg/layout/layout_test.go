package layout

import (
	"fmt"
	"reflect"
	"testing"

	"tableflip.dev/foto/pkg/photo"
)

func makePhotos(n, w, h int) []photo.Photo {
	out := make([]photo.Photo, n)
	for i := range out {
		out[i] = photo.Photo{ID: fmt.Sprintf("p%d", i), Width: w, Height: h}
	}
	return out
}

func makeGroup(title string, photos []photo.Photo) photo.Group {
	return photo.Group{
		Title: title,
		Photos: photo.Paged{
			Page:     1,
			PageSize: len(photos),
			Total:    len(photos),
			Items:    photos,
		},
	}
}

func rowsOf(items []Item) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		if r, ok := it.(Row); ok {
			rows = append(rows, r)
		}
	}
	return rows
}

func TestPackEmptyInput(t *testing.T) {
	if items := Pack(nil, Options{ContainerWidth: 1000, TargetRowHeight: 200, Gap: 6}); len(items) != 0 {
		t.Fatalf("expected no items for empty input, got %d", len(items))
	}
}

func TestPackEmitsHeaderPerGroup(t *testing.T) {
	groups := []photo.Group{
		makeGroup("2024-03", makePhotos(3, 400, 300)),
		makeGroup("2024-02", makePhotos(2, 300, 400)),
	}
	items := Pack(groups, Options{ContainerWidth: 1000, TargetRowHeight: 200, Gap: 6})

	h, ok := items[0].(Header)
	if !ok {
		t.Fatalf("expected first item to be a header, got %T", items[0])
	}
	if h.Title != "2024-03" || h.Count != 3 {
		t.Fatalf("unexpected header %+v", h)
	}

	headers := 0
	for _, it := range items {
		if _, ok := it.(Header); ok {
			headers++
		}
	}
	if headers != 2 {
		t.Fatalf("expected 2 headers, got %d", headers)
	}
}

func TestPackJustifiedRowsFillAvailableWidth(t *testing.T) {
	// Mixed aspect ratios including portrait, landscape, square and
	// panoramic shapes.
	photos := []photo.Photo{}
	dims := [][2]int{{400, 300}, {300, 400}, {500, 500}, {900, 300}, {640, 480}, {300, 500}, {1200, 400}, {800, 600}, {600, 800}, {450, 450}, {720, 480}, {350, 700}, {1024, 768}, {768, 1024}, {500, 375}, {375, 500}}
	for i, d := range dims {
		photos = append(photos, photo.Photo{ID: fmt.Sprintf("m%d", i), Width: d[0], Height: d[1]})
	}

	opts := Options{ContainerWidth: 1200, TargetRowHeight: 180, Gap: 4}
	items := Pack([]photo.Group{makeGroup("2023-11", photos)}, opts)
	rows := rowsOf(items)
	if len(rows) == 0 {
		t.Fatalf("expected at least one row")
	}

	available := AvailableWidth(opts.ContainerWidth)
	for i, row := range rows {
		if row.Clamped {
			continue
		}
		total := opts.Gap * (len(row.Photos) - 1)
		for _, w := range row.Widths {
			total += w
		}
		if diff := total - available; diff < -1 || diff > 1 {
			t.Fatalf("row %d fills %d of %d available", i, total, available)
		}
	}
}

func TestPackRowsNeverSpanGroups(t *testing.T) {
	groups := []photo.Group{
		makeGroup("2024-05", makePhotos(7, 400, 300)),
		makeGroup("2024-04", makePhotos(5, 400, 300)),
	}
	items := Pack(groups, Options{ContainerWidth: 1000, TargetRowHeight: 200, Gap: 6})

	// Photos between a header and the next header must count exactly
	// the group size.
	current := ""
	counts := map[string]int{}
	for _, it := range items {
		switch v := it.(type) {
		case Header:
			current = v.Title
		case Row:
			counts[current] += len(v.Photos)
		}
	}
	if counts["2024-05"] != 7 || counts["2024-04"] != 5 {
		t.Fatalf("rows span groups: %+v", counts)
	}
}

func TestPackFourteenPhotoScenario(t *testing.T) {
	opts := Options{ContainerWidth: 1000, TargetRowHeight: 200, Gap: 6}
	items := Pack([]photo.Group{makeGroup("2022-08", makePhotos(14, 400, 300))}, opts)
	rows := rowsOf(items)
	if len(rows) < 2 {
		t.Fatalf("expected multiple rows for 14 photos, got %d", len(rows))
	}

	last := rows[len(rows)-1]
	natural := rawFitHeight(last.Photos, AvailableWidth(opts.ContainerWidth), opts.Gap)
	if natural > 1.25*float64(opts.TargetRowHeight) {
		if !last.Clamped || last.Height != opts.TargetRowHeight {
			t.Fatalf("expected trailing row clamped to %d, got height %d (clamped=%v)", opts.TargetRowHeight, last.Height, last.Clamped)
		}
	} else if last.Height != int(natural) {
		t.Fatalf("expected natural trailing height %d, got %d", int(natural), last.Height)
	}

	for i, row := range rows[:len(rows)-1] {
		if row.Clamped {
			t.Fatalf("row %d clamped; only the trailing row may be", i)
		}
	}
}

func TestPackSingleDimensionlessPhoto(t *testing.T) {
	opts := Options{ContainerWidth: 1000, TargetRowHeight: 200, Gap: 6}
	items := Pack([]photo.Group{makeGroup("2021-01", []photo.Photo{{ID: "x"}})}, opts)
	rows := rowsOf(items)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if !row.Clamped || row.Height != opts.TargetRowHeight {
		t.Fatalf("expected clamped fallback row at height %d, got %+v", opts.TargetRowHeight, row)
	}
	want := ScaledWidth(photo.Photo{}, opts.TargetRowHeight)
	if row.Widths[0] != want {
		t.Fatalf("expected fallback width %d, got %d", want, row.Widths[0])
	}
}

func TestPackClampsDegenerateContainerWidth(t *testing.T) {
	opts := Options{ContainerWidth: 10, TargetRowHeight: 200, Gap: 6}
	items := Pack([]photo.Group{makeGroup("2021-02", makePhotos(3, 400, 300))}, opts)
	for _, it := range items {
		row, ok := it.(Row)
		if !ok {
			continue
		}
		if row.Height <= 0 {
			t.Fatalf("expected positive row height, got %d", row.Height)
		}
		for _, w := range row.Widths {
			if w <= 0 {
				t.Fatalf("expected positive widths, got %v", row.Widths)
			}
		}
	}
}

func TestPackIsIdempotent(t *testing.T) {
	groups := []photo.Group{
		makeGroup("2024-06", makePhotos(9, 640, 480)),
		makeGroup("2024-05", makePhotos(4, 480, 640)),
	}
	opts := Options{ContainerWidth: 1100, TargetRowHeight: 220, Gap: 8}
	first := Pack(groups, opts)
	second := Pack(groups, opts)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("pack is not deterministic")
	}
}
