// Package scan provides the CLI runner that indexes a library directory.
package scan

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	scanner "tableflip.dev/foto/pkg/scan"
	"tableflip.dev/foto/pkg/store"
)

// Scan walks a directory tree and stores every image it finds in the
// catalog.
type Scan struct {
	Dir     string
	Catalog *store.Catalog
}

func (s *Scan) Do(ctx context.Context) error {
	if s.Catalog == nil {
		return errors.New("can not scan, no catalog")
	}

	res, err := scanner.Dir(s.Dir, s.Catalog)
	if err != nil {
		return fmt.Errorf("scan: %s: %w", s.Dir, err)
	}

	b := color.New(color.Bold)
	f := color.New(color.Faint)

	fmt.Println("")
	_, _ = b.Printf("%d", res.Stored)
	_, _ = f.Printf(" stored of %d found", res.Found)
	if res.Skipped > 0 {
		_, _ = f.Printf(", %d skipped", res.Skipped)
	}
	fmt.Println("")
	return nil
}
