package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/richtext/composer"
	"github.com/iw2rmb/richtext/document"
)

// Model is a Bubble Tea component that renders and drives a composer.
//
// The composer is shared between copies of a Model; only the goroutine
// running Update may touch it.
type Model struct {
	cfg   Config
	c     *composer.Composer
	view  *focusView
	sched *scheduler

	viewport viewport.Model
	lay      layout

	lastVersion uint64
	lastSel     document.Range
	lastSelOK   bool
}

// focusView is the composer's host view.
type focusView struct{ focused bool }

func (v *focusView) Focus() error    { v.focused = true; return nil }
func (v *focusView) Blur() error     { v.focused = false; return nil }
func (v *focusView) IsFocused() bool { return v.focused }

// New builds the composer from cfg.Composer and focuses it.
func New(cfg Config) Model {
	m := Model{
		cfg:      cfg,
		view:     &focusView{},
		sched:    newScheduler(),
		viewport: viewport.New(0, 0),
	}
	opt := cfg.Composer
	if opt.Shortcuts == (composer.Shortcuts{}) {
		opt.Shortcuts = TerminalShortcuts()
	}
	opt.View = m.view
	opt.Schedule = m.sched.Schedule
	m.c = composer.New(opt)
	m.c.Focus(true)
	m.sched.drain()
	m.sync(true)
	return m
}

// Composer returns the hosted composer.
func (m Model) Composer() *composer.Composer { return m.c }

// Schedule runs fn on the goroutine running Update. It is safe to call from
// any goroutine and is how hosts touch the composer from elsewhere.
func (m Model) Schedule(fn func()) { m.sched.Schedule(fn) }

// Init starts listening for callbacks the composer schedules from other
// goroutines, such as a settled submit.
func (m Model) Init() tea.Cmd { return m.sched.listen() }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.sync(true)
	return m
}

func (m Model) Focus() Model {
	if !m.view.focused {
		m.c.Focus(false)
		m.sched.drain()
		m.sync(true)
	}
	return m
}

func (m Model) Blur() Model {
	if m.view.focused {
		m.c.Blur()
		m.sched.drain()
		m.sync(false)
	}
	return m
}

func (m Model) Focused() bool { return m.view.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case scheduledMsg:
		m.sched.drain()
		m.sync(false)
		return m, m.sched.listen()
	case tea.KeyMsg:
		m = m.updateKey(msg)
		m.sched.drain()
		m.sync(false)
		return m, nil
	default:
		// The host may have driven the composer directly.
		m.sched.drain()
		m.sync(false)
		return m, nil
	}
}

func (m Model) View() string {
	base := m.viewport.View()
	if v, ok := m.toolbarView(base); ok {
		return v
	}
	return base
}

// sync re-renders and scrolls to the caret when it moved or force is set.
func (m *Model) sync(force bool) {
	ed := m.c.Editor()
	ver := ed.Version()
	sel, ok := ed.Selection()
	moved := ver != m.lastVersion || ok != m.lastSelOK || (ok && !sel.Equal(m.lastSel))
	m.lastVersion, m.lastSel, m.lastSelOK = ver, sel, ok

	m.viewport.SetContent(m.renderContent())
	if moved || force {
		m.followCursor()
	}
}

func (m *Model) followCursor() {
	sel, ok := m.c.Editor().Selection()
	if !ok {
		return
	}
	li, col, ok := m.lay.locate(sel.Focus)
	if !ok {
		return
	}
	row := m.lay.rowOf(li, col)
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
