// Package tui hosts the Bubble Tea program for the foto gallery: a
// virtualized viewport over the flattened render list produced by the
// timeline controller.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/foto/pkg/layout"
	"tableflip.dev/foto/pkg/photo"
	"tableflip.dev/foto/pkg/selection"
	"tableflip.dev/foto/pkg/session"
	"tableflip.dev/foto/pkg/store"
	"tableflip.dev/foto/pkg/timeline"
	"tableflip.dev/foto/pkg/timeutil"
	"tableflip.dev/foto/pkg/tui/events"
	"tableflip.dev/foto/pkg/tui/theme"
)

// cellPx is how many layout pixels one terminal column represents. The
// packing engine thinks in pixels; the gallery divides everything by
// this factor when drawing.
const cellPx = 8

type mode int

const (
	modeBrowse mode = iota
	modeJump
)

// sink forwards controller events into the Bubble Tea loop.
type sink struct {
	ch chan tea.Msg
}

func (s *sink) RenderListChanged(items []layout.Item, totalPhotos int) {
	s.emit(events.RenderListMsg{Items: items, TotalPhotos: totalPhotos})
}

func (s *sink) ActiveGroupChanged(title string) {
	s.emit(events.ActiveGroupMsg{Title: title})
}

func (s *sink) ScrollTo(index int) {
	s.emit(events.ScrollToMsg{Index: index})
}

func (s *sink) emit(msg tea.Msg) {
	select {
	case s.ch <- msg:
	default:
	}
}

type bootMsg struct{}

// Model contains the gallery UI state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctl  *timeline.Controller
	sel  *selection.Model
	sess *session.Cache
	th   theme.Theme

	eventCh chan tea.Msg

	items []layout.Item
	total int

	cursor   int // render item index under the cursor
	photoIdx int // photo within the cursor row
	top      int // first visible render item

	width  int
	height int

	mode   mode
	jump   textinput.Model
	active string
	status string

	flatIndex     map[string]int // photo id -> flattened sequence index
	pendingScroll int            // scroll restore target, -1 when none
}

// Options bundle what the gallery needs from the surrounding command.
type Options struct {
	Source   timeline.Source
	Session  *session.Cache
	Layout   layout.Options
	PageSize int

	// LibraryDir, when set, is watched for on-disk changes.
	LibraryDir string
}

// New builds the gallery model. The timeline controller publishes its
// events onto the model's channel; the model drains it via listen.
func New(opts Options) Model {
	ch := make(chan tea.Msg, 64)
	ctx, cancel := context.WithCancel(context.Background())

	ctl := timeline.New(opts.Source, &sink{ch: ch}, timeline.Options{
		PageSize: opts.PageSize,
		Layout:   opts.Layout,
	})

	ti := textinput.New()
	ti.Placeholder = "year or year-month"
	ti.CharLimit = 16
	ti.Prompt = "jump to: "

	sess := opts.Session
	if sess == nil {
		sess = session.New()
	}

	return Model{
		ctx:           ctx,
		cancel:        cancel,
		ctl:           ctl,
		sel:           selection.New(),
		sess:          sess,
		th:            theme.Default(),
		eventCh:       ch,
		jump:          ti,
		mode:          modeBrowse,
		status:        "j/k move, h/l pick, space select, V range, a month, g jump, q quit",
		pendingScroll: -1,
	}
}

// Init schedules the initial hydrate-or-fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return bootMsg{} },
		m.listen(),
	)
}

func (m Model) listen() tea.Cmd {
	ch := m.eventCh
	return func() tea.Msg { return <-ch }
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case bootMsg:
		if snap, ok := m.sess.Load(); ok {
			// Re-entry: rebuild from the session instead of fetching
			// page one, then restore the scroll position once sized.
			m.ctl.Restore(snap.Groups, snap.Page, snap.HasMore)
			m.pendingScroll = snap.LastIndex
			if age := timeutil.Age(snap.SavedAt, time.Now()); !snap.SavedAt.IsZero() && age != "now" {
				m.status = "restored session from " + age + " ago"
			}
		} else if err := m.ctl.FetchNextPage(m.ctx); err != nil {
			m.status = "ERR: " + err.Error()
		}
		m.syncFromController()
		// The initial window size races the boot command; when the size
		// won, restore the scroll position here instead.
		if m.width > 0 {
			m.applyPendingScroll()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ctl.Resize(msg.Width * cellPx)
		m.syncFromController()
		m.applyPendingScroll()

	case events.RenderListMsg:
		m.syncFromController()
		cmds = append(cmds, m.listen())

	case events.ActiveGroupMsg:
		m.active = msg.Title
		cmds = append(cmds, m.listen())

	case events.ScrollToMsg:
		m.setCursor(msg.Index)
		cmds = append(cmds, m.listen())

	case events.SelectionMsg:
		cmds = append(cmds, m.listen())

	case events.LibraryChangedMsg:
		m.status = "library changed on disk; run `foto scan` to refresh"
		cmds = append(cmds, m.listen())

	case tea.KeyPressMsg:
		switch m.mode {
		case modeJump:
			switch msg.String() {
			case "esc":
				m.mode = modeBrowse
			case "enter":
				label := strings.TrimSpace(m.jump.Value())
				m.mode = modeBrowse
				if label != "" {
					if err := m.ctl.JumpToLabel(m.ctx, label); err != nil {
						m.status = "ERR: " + err.Error()
					}
					m.syncFromController()
				}
			default:
				var cmd tea.Cmd
				m.jump, cmd = m.jump.Update(msg)
				cmds = append(cmds, cmd)
			}
		default:
			m.handleBrowseKey(msg.String(), &cmds)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleBrowseKey(key string, cmds *[]tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.saveSession()
		m.cancel()
		*cmds = append(*cmds, tea.Quit)
	case "j", "down":
		m.setCursor(m.cursor + 1)
	case "k", "up":
		m.setCursor(m.cursor - 1)
	case "h", "left":
		m.movePhoto(-1)
	case "l", "right":
		m.movePhoto(1)
	case " ", "space", "x":
		m.toggleCurrent(false)
	case "V":
		m.toggleCurrent(true)
	case "a":
		m.toggleCurrentGroup()
	case "c":
		m.sel.Clear()
		m.status = "selection cleared"
	case "g":
		m.mode = modeJump
		m.jump.Reset()
		m.jump.Focus()
	case "r":
		// Manual re-trigger after a fetch failure.
		if err := m.ctl.FetchNextPage(m.ctx); err != nil {
			m.status = "ERR: " + err.Error()
		}
		m.syncFromController()
	}
}

// setCursor clamps, scrolls the window, and reports the visible index
// to the controller so it can prefetch.
func (m *Model) setCursor(idx int) {
	if len(m.items) == 0 {
		m.cursor = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.items) {
		idx = len(m.items) - 1
	}
	m.cursor = idx
	m.photoIdx = 0

	body := m.bodyHeight()
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if body > 0 && m.cursor >= m.top+body {
		m.top = m.cursor - body + 1
	}

	if err := m.ctl.VisibleIndexChanged(m.ctx, m.cursor); err != nil {
		m.status = "ERR: " + err.Error()
	}
	m.syncFromController()
}

func (m *Model) movePhoto(delta int) {
	row, ok := m.cursorRow()
	if !ok {
		return
	}
	m.photoIdx += delta
	if m.photoIdx < 0 {
		m.photoIdx = 0
	}
	if m.photoIdx >= len(row.Photos) {
		m.photoIdx = len(row.Photos) - 1
	}
}

func (m *Model) toggleCurrent(extend bool) {
	p, ok := m.cursorPhoto()
	if !ok {
		return
	}
	idx, ok := m.flatIndex[p.ID]
	if !ok {
		return
	}
	m.sel.ToggleAt(m.ctl.FlattenedPhotos(), idx, extend)
	m.publishSelection()
}

func (m *Model) toggleCurrentGroup() {
	title := m.cursorGroupTitle()
	if title == "" {
		return
	}
	for _, g := range m.ctl.Groups() {
		if g.Title == title {
			m.sel.ToggleGroup(g)
			m.publishSelection()
			return
		}
	}
}

func (m *Model) publishSelection() {
	select {
	case m.eventCh <- events.SelectionMsg{Count: m.sel.Count()}:
	default:
	}
}

// applyPendingScroll performs the one-shot scroll restoration after the
// first window size arrives, then lifts the prefetch suppression.
func (m *Model) applyPendingScroll() {
	if m.pendingScroll < 0 || len(m.items) == 0 {
		return
	}
	m.setCursor(m.pendingScroll)
	m.pendingScroll = -1
	m.ctl.EndRestore()
}

func (m *Model) syncFromController() {
	m.items = m.ctl.Items()
	m.total = m.ctl.TotalPhotos()
	m.active = m.ctl.ActiveGroup()

	m.flatIndex = make(map[string]int)
	for i, p := range m.ctl.FlattenedPhotos() {
		m.flatIndex[p.ID] = i
	}

	if m.cursor >= len(m.items) && len(m.items) > 0 {
		m.cursor = len(m.items) - 1
	}
}

func (m *Model) saveSession() {
	_ = m.sess.Save(session.Snapshot{
		LastIndex: m.cursor,
		Groups:    m.ctl.Groups(),
		Page:      m.ctl.CurrentPage(),
		HasMore:   m.ctl.HasMore(),
	})
}

func (m Model) cursorRow() (layout.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return layout.Row{}, false
	}
	row, ok := m.items[m.cursor].(layout.Row)
	return row, ok
}

func (m Model) cursorPhoto() (photo.Photo, bool) {
	row, ok := m.cursorRow()
	if !ok || len(row.Photos) == 0 {
		return photo.Photo{}, false
	}
	idx := m.photoIdx
	if idx >= len(row.Photos) {
		idx = len(row.Photos) - 1
	}
	return row.Photos[idx], true
}

func (m Model) cursorGroupTitle() string {
	for i := m.cursor; i >= 0 && i < len(m.items); i-- {
		if h, ok := m.items[i].(layout.Header); ok {
			return h.Title
		}
	}
	return ""
}

func (m Model) bodyHeight() int {
	h := m.height - 2 // title and status bars
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the visible slice of the flattened render list.
func (m Model) View() string {
	if m.width == 0 {
		return "loading…"
	}

	var b strings.Builder
	title := "foto"
	if m.active != "" {
		title += " — " + m.active
	}
	b.WriteString(m.th.Header.Render(title))
	b.WriteString("\n")

	body := m.bodyHeight()
	end := m.top + body
	if end > len(m.items) {
		end = len(m.items)
	}
	for i := m.top; i < end; i++ {
		switch it := m.items[i].(type) {
		case layout.Header:
			b.WriteString(m.renderHeader(it))
		case layout.Row:
			b.WriteString(m.renderRow(it, i == m.cursor))
		}
		b.WriteString("\n")
	}
	for i := end - m.top; i < body; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) renderHeader(h layout.Header) string {
	count := m.th.HeaderCount.Render(fmt.Sprintf(" %d photos", h.Count))
	return m.th.Header.Render(h.Title) + count
}

func (m Model) renderRow(row layout.Row, cursorRow bool) string {
	parts := make([]string, 0, len(row.Photos))
	for i, p := range row.Photos {
		cells := row.Widths[i] / cellPx
		if cells < 1 {
			cells = 1
		}
		block := strings.Repeat("█", cells)
		style := m.th.Photo
		switch {
		case cursorRow && i == m.photoIdx:
			style = m.th.PhotoCursor
		case m.sel.Contains(p.ID):
			style = m.th.PhotoSelected
		}
		parts = append(parts, style.Render(block))
	}
	line := " " + strings.Join(parts, " ")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m Model) statusLine() string {
	if m.mode == modeJump {
		return m.th.Prompt.Render(m.jump.View())
	}

	left := fmt.Sprintf("%d selected · %d photos · page %d · %s",
		m.sel.Count(), m.total, m.ctl.CurrentPage(), m.ctl.State())
	line := m.th.StatusKey.Render(left) + "  " + m.th.Status.Render(m.status)
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// Run launches the gallery program, forwarding library change
// notifications into the Bubble Tea loop.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())

	if opts.LibraryDir != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if ch, err := store.WatchLibrary(ctx, opts.LibraryDir); err == nil {
			go func() {
				for ev := range ch {
					p.Send(events.LibraryChangedMsg{Path: ev.Path})
				}
			}()
		}
	}

	_, err := p.Run()
	return err
}
