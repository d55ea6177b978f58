package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tableflip.dev/foto/pkg/photo"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(&Config{CacheDir: t.TempDir()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return c
}

func seed(t *testing.T, c *Catalog, month string, n int) {
	t.Helper()
	taken, err := time.Parse("2006-01", month)
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	for i := 0; i < n; i++ {
		p := &photo.Photo{
			ID:      fmt.Sprintf("%s%02d", month, i),
			Width:   400,
			Height:  300,
			TakenAt: taken.Add(time.Duration(i) * time.Hour),
		}
		if err := c.Put(p); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
}

func TestPutAssignsStableID(t *testing.T) {
	c := testCatalog(t)
	p := &photo.Photo{Width: 100, Height: 100, TakenAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)}
	if err := c.Put(p); err != nil {
		t.Fatalf("put: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestMonthsNewestFirst(t *testing.T) {
	c := testCatalog(t)
	seed(t, c, "2023-11", 1)
	seed(t, c, "2024-02", 1)
	seed(t, c, "2022-07", 1)

	months := c.Months(context.Background())
	want := []string{"2024-02", "2023-11", "2022-07"}
	if len(months) != len(want) {
		t.Fatalf("expected %d months, got %v", len(want), months)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Fatalf("month order %v, want %v", months, want)
		}
	}
}

func TestListNewestFirstWithinMonth(t *testing.T) {
	c := testCatalog(t)
	seed(t, c, "2024-03", 3)

	photos := c.List(context.Background(), "2024-03")
	if len(photos) != 3 {
		t.Fatalf("expected 3 photos, got %d", len(photos))
	}
	for i := 1; i < len(photos); i++ {
		if photos[i].TakenAt.After(photos[i-1].TakenAt) {
			t.Fatalf("photos not newest-first: %v", photos)
		}
	}
}

func TestTimelinePagePagesMonths(t *testing.T) {
	c := testCatalog(t)
	for m := 1; m <= 7; m++ {
		seed(t, c, fmt.Sprintf("2024-%02d", m), 2)
	}
	ctx := context.Background()

	page1, err := c.TimelinePage(ctx, 1, 3)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page1) != 3 || page1[0].Title != "2024-07" {
		t.Fatalf("unexpected page 1: %+v", page1)
	}
	if page1[0].Count() != 2 {
		t.Fatalf("expected group count 2, got %d", page1[0].Count())
	}

	page3, err := c.TimelinePage(ctx, 3, 3)
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(page3) != 1 || page3[0].Title != "2024-01" {
		t.Fatalf("unexpected short page: %+v", page3)
	}

	page4, err := c.TimelinePage(ctx, 4, 3)
	if err != nil {
		t.Fatalf("page 4: %v", err)
	}
	if len(page4) != 0 {
		t.Fatalf("expected empty page past the end, got %+v", page4)
	}
}

func TestOffsetForLabel(t *testing.T) {
	c := testCatalog(t)
	seed(t, c, "2024-02", 1)
	seed(t, c, "2023-12", 1)
	seed(t, c, "2023-03", 1)
	ctx := context.Background()

	off, err := c.OffsetForLabel(ctx, "2023")
	if err != nil {
		t.Fatalf("offset: %v", err)
	}
	if off != 1 {
		t.Fatalf("expected offset 1 for first 2023 month, got %d", off)
	}

	if _, err := c.OffsetForLabel(ctx, "1999"); err == nil {
		t.Fatalf("expected miss for unknown year")
	}
}
