// Package tui implements the interactive scrolling list of the sequence.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibscroll/internal/sequence"
	"github.com/agbru/fibscroll/internal/sysmon"
)

// Layout constants.
const (
	headerHeight  = 1
	footerHeight  = 2
	listChrome    = 2 // top and bottom border of the list panel
	minListHeight = 3
	tickInterval  = time.Second
	historySize   = 20
)

// Source is what the list needs from a sequence.Generator.
type Source interface {
	ValueAtAsync(n int, onComplete func(sequence.Result)) error
	Stats() sequence.Stats
}

// Options configures the list.
type Options struct {
	// Initial is the number of rows requested at startup.
	Initial int
	// Prefetch is how close the cursor may get to the last requested row
	// before the next row is requested.
	Prefetch int
	Version  string
}

// rows is the data behind the list. Completions mutate it from inside
// Update; the pointer keeps it shared across model copies.
type rows struct {
	values        []int64
	requested     int
	overflow      bool
	overflowIndex int
	err           error
}

// Model is the root bubbletea model.
type Model struct {
	source Source
	opts   Options
	data   *rows

	cursor int
	offset int
	width  int
	height int

	keymap KeyMap
	help   help.Model

	start time.Time
	cpu   *history
	mem   *history
	rss   uint64

	ctx context.Context
}

// NewModel creates the list model. Completions from source must reach the
// model as deliveryMsg values (see programRef.Dispatcher).
func NewModel(ctx context.Context, source Source, opts Options) Model {
	if opts.Initial <= 0 {
		opts.Initial = 20
	}
	if opts.Prefetch <= 0 {
		opts.Prefetch = 5
	}
	return Model{
		source: source,
		opts:   opts,
		data:   &rows{},
		keymap: DefaultKeyMap(),
		help:   help.New(),
		start:  time.Now(),
		cpu:    newHistory(historySize),
		mem:    newHistory(historySize),
		ctx:    ctx,
	}
}

type tickMsg time.Time

type sysStatsMsg sysmon.Stats

type ctxDoneMsg struct{}

// Init requests the initial rows and starts the sampling ticker.
func (m Model) Init() tea.Cmd {
	for m.data.requested < m.opts.Initial && !m.data.overflow {
		if !m.request() {
			break
		}
	}
	return tea.Batch(tickCmd(), sampleSysCmd(), watchContextCmd(m.ctx))
}

// request asks for the next unrequested index. It reports false if the
// source refused the request.
func (m Model) request() bool {
	index := m.data.requested
	if err := m.source.ValueAtAsync(index, m.deliver); err != nil {
		m.data.err = err
		return false
	}
	m.data.requested++
	return true
}

// deliver runs inside Update, through deliveryMsg.
func (m Model) deliver(r sequence.Result) {
	d := m.data
	switch {
	case d.overflow:
	case r.Overflowed():
		d.overflow = true
		d.overflowIndex = r.Index
	case r.Err != nil:
		d.err = r.Err
	case r.Index == len(d.values):
		d.values = append(d.values, r.Value)
	}
}

// prefetch requests rows until the last requested index is more than
// Prefetch rows past the cursor, unless the end of the range is known.
func (m Model) prefetch() {
	for !m.data.overflow && m.data.err == nil && m.data.requested-1-m.cursor < m.opts.Prefetch {
		if !m.request() {
			return
		}
	}
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case deliveryMsg:
		msg.run()
		m.prefetch()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil

	case tickMsg:
		return m, tea.Batch(tickCmd(), sampleSysCmd())

	case sysStatsMsg:
		m.cpu.push(msg.CPUPercent)
		m.mem.push(msg.MemPercent)
		m.rss = msg.RSS
		return m, nil

	case ctxDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.data.values) - 1
	page := m.visibleRows()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.cursor--
	case key.Matches(msg, m.keymap.Down):
		m.cursor++
	case key.Matches(msg, m.keymap.PageUp):
		m.cursor -= page
	case key.Matches(msg, m.keymap.PageDown):
		m.cursor += page
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		m.cursor = last
	default:
		return m, nil
	}

	m.cursor = max(0, min(m.cursor, last))
	m.clampOffset()
	m.prefetch()
	return m, nil
}

// visibleRows is the number of list rows that fit on screen.
func (m Model) visibleRows() int {
	if m.height == 0 {
		return m.opts.Initial
	}
	return max(minListHeight, m.height-headerHeight-footerHeight-listChrome)
}

// clampOffset scrolls so the cursor stays on screen.
func (m *Model) clampOffset() {
	page := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = max(0, m.offset)
}

// View renders header, list and footer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.listView(), m.footerView())
}

func (m Model) listView() string {
	page := m.visibleRows()
	lines := make([]string, 0, page)
	end := min(m.offset+page, len(m.data.values))
	for i := m.offset; i < end; i++ {
		line := indexStyle.Render(fmt.Sprintf("n(%d):", i)) + " " + valueStyle.Render(fmt.Sprint(m.data.values[i]))
		if i == m.cursor {
			line = selectedStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	for len(lines) < page {
		lines = append(lines, "")
	}
	return listStyle.Width(max(0, m.width-2)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// tickCmd schedules the next sampling tick.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sampleSysCmd reads system-wide CPU and memory usage.
func sampleSysCmd() tea.Cmd {
	return func() tea.Msg {
		return sysStatsMsg(sysmon.Sample())
	}
}

// watchContextCmd quits the program when ctx ends.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ctxDoneMsg{}
	}
}

// Run starts the list on the terminal and blocks until the user quits or ctx
// ends. opts are applied to the generator it creates; its dispatcher is
// always the program's Update loop.
func Run(ctx context.Context, opts Options, genOpts ...sequence.Option) error {
	initStyles()

	ref := &programRef{}
	gen := sequence.New(append(genOpts, sequence.WithDispatcher(ref.Dispatcher()))...)

	model := NewModel(ctx, gen, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	ref.SetProgram(p)

	_, err := p.Run()
	// Deliveries still in flight are dropped once the program has exited.
	closeErr := gen.Close()
	switch {
	case err != nil:
		return fmt.Errorf("tui: %w", err)
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return closeErr
}
