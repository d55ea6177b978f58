package printers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/foto/pkg/photo"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("0011223344556677  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" photo")
	default:
		_, _ = c.Println(" photos")
	}
}

func (pp *PrettyPrint) Month(photos ...photo.Photo) {
	if len(photos) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, p := range photos {
		if pp.ShowID {
			_, _ = y.Print(p.ID)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(p.ID)))
		}
		name := p.Title
		if name == "" {
			name = filepath.Base(p.Path)
		}
		_, _ = t.Printf("%s  %dx%d  %s\n", p.TakenAt.Format("Jan _2 15:04"), p.Width, p.Height, name)
	}
	_, _ = t.Println("")
}
