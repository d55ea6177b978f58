// Package months provides CLI runners that list catalog contents.
package months

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/foto/pkg/printers"
	"tableflip.dev/foto/pkg/store"
	"tableflip.dev/foto/pkg/timeutil"
)

// Months lists the month groups of the catalog, or the photos of a
// single month when Month is set.
type Months struct {
	ShowID  bool
	Month   string
	All     bool
	Catalog *store.Catalog
}

func (m *Months) Do(ctx context.Context) error {
	if m.Catalog == nil {
		return errors.New("can not list, no catalog")
	}

	pp := printers.PrettyPrint{ShowID: m.ShowID}
	fmt.Println("")

	if m.Month != "" {
		g := m.Catalog.Group(ctx, m.Month)
		pp.TitleWithCount(g.Title, g.Count())
		pp.Month(g.Photos.Items...)
		return nil
	}

	labels := m.Catalog.Months(ctx)

	if m.All {
		for _, label := range labels {
			g := m.Catalog.Group(ctx, label)
			pp.TitleWithCount(g.Title, g.Count())
			pp.Month(g.Photos.Items...)
		}
		return nil
	}

	bold := color.New(color.Bold)

	now := time.Now()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Month"), bold.Sprint("Photos"), bold.Sprint("Newest"))
	for _, label := range labels {
		g := m.Catalog.Group(ctx, label)
		newest := ""
		if len(g.Photos.Items) > 0 {
			newest = timeutil.Age(g.Photos.Items[0].TakenAt, now) + " ago"
		}
		tbl.AddRow(label, g.Count(), newest)
	}
	tbl.RightAlign(1)

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
	return nil
}
