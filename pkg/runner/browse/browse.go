// Package browse provides the CLI runner that opens the gallery TUI.
package browse

import (
	"context"
	"errors"
	"path/filepath"

	"tableflip.dev/foto/pkg/layout"
	"tableflip.dev/foto/pkg/session"
	"tableflip.dev/foto/pkg/store"
	"tableflip.dev/foto/pkg/tui"
)

// Browse opens the full-screen gallery over the catalog.
type Browse struct {
	Catalog *store.Catalog
	Config  *store.Config

	// Fresh discards the saved session and starts at the top.
	Fresh bool
}

func (b *Browse) Do(ctx context.Context) error {
	if b.Catalog == nil {
		return errors.New("can not browse, no catalog")
	}
	if b.Config == nil {
		return errors.New("can not browse, no config")
	}

	sess, err := session.NewPersistent(filepath.Join(b.Config.CacheDir, "session"))
	if err != nil {
		return err
	}
	if b.Fresh {
		sess.Clear()
	}

	return tui.Run(tui.Options{
		Source:  b.Catalog,
		Session: sess,
		Layout: layout.Options{
			TargetRowHeight: b.Config.RowHeight,
			Gap:             b.Config.Gap,
		},
		PageSize:   b.Config.PageSize,
		LibraryDir: b.Config.LibraryDir,
	})
}
