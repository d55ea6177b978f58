// Package scan fills the photo catalog from a directory tree of image
// files. Geometry comes from the image headers; the month grouping comes
// from file modification time.
package scan

import (
	"crypto/md5"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"tableflip.dev/foto/pkg/photo"
)

// Putter is where scanned photos land; satisfied by store.Catalog.
type Putter interface {
	Put(p *photo.Photo) error
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// Result summarizes a library scan.
type Result struct {
	Found   int
	Stored  int
	Skipped int
}

// Dir walks root and stores every readable image into the catalog.
// Unreadable geometry is not an error: the photo is stored without
// dimensions and the layout falls back to 4:3.
func Dir(root string, cat Putter) (*Result, error) {
	if root == "" {
		return nil, fmt.Errorf("scan: library path required")
	}
	klog.Infof("scan: %s", root)

	res := &Result{}
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			base := filepath.Base(path)
			if base != "" && base[0] == '.' {
				return godirwalk.SkipThis
			}
			if de.IsDir() {
				return nil
			}
			if !imageExts[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			res.Found++
			p, err := Read(path)
			if err != nil {
				klog.Warningf("scan: skip %s: %v", path, err)
				res.Skipped++
				return nil
			}
			if err := cat.Put(p); err != nil {
				klog.Errorf("scan: store %s: %v", path, err)
				res.Skipped++
				return nil
			}
			res.Stored++
			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return nil, fmt.Errorf("scan: walk %s: %w", root, err)
	}

	klog.Infof("scan: %d found, %d stored, %d skipped", res.Found, res.Stored, res.Skipped)
	return res, nil
}

// Read builds a Photo from a single image file.
func Read(path string) (*photo.Photo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	p := &photo.Photo{
		Title:   filepath.Base(path),
		Path:    path,
		TakenAt: info.ModTime(),
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	if cfg, _, err := image.DecodeConfig(f); err == nil {
		p.Width = cfg.Width
		p.Height = cfg.Height
	} else {
		klog.V(1).Infof("scan: no geometry for %s: %v", path, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hash: %w", err)
	}
	sum := h.Sum(nil)
	p.Hash = fmt.Sprintf("%x", sum)
	p.ID = fmt.Sprintf("%x", sum[:8])

	return p, nil
}
