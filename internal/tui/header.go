package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibscroll/internal/format"
	"github.com/agbru/fibscroll/internal/sequence"
)

func (m Model) headerView() string {
	title := "Fibonacci"
	if m.opts.Version != "" && m.opts.Version != "dev" {
		title += " " + m.opts.Version
	}
	pipe := dimStyle.Render(" | ")

	left := titleStyle.Render(title) + pipe +
		accentStyle.Render("Elapsed: "+format.FormatExecutionDuration(time.Since(m.start).Truncate(time.Second))) + pipe +
		dimStyle.Render(fmt.Sprintf("Cache %d/%d", m.source.Stats().Len, sequence.MaxIndex+1))

	right := dimStyle.Render(fmt.Sprintf("CPU %3.0f%% ", m.cpu.last())) + accentStyle.Render(sparkline(m.cpu.samples())) +
		dimStyle.Render(fmt.Sprintf("  MEM %3.0f%% ", m.mem.last())) + accentStyle.Render(sparkline(m.mem.samples()))
	if m.rss > 0 {
		right += dimStyle.Render("  RSS " + format.FormatBytes(m.rss))
	}

	gap := max(1, m.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return headerStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) footerView() string {
	var status string
	switch {
	case m.data.err != nil:
		status = overflowStyle.Render("Error: " + m.data.err.Error())
	case m.data.overflow:
		status = overflowStyle.Render(fmt.Sprintf("End of range: n(%d) does not fit in 64 bits. Last index is %d.",
			m.data.overflowIndex, sequence.MaxIndex))
	case len(m.data.values) < m.data.requested:
		status = dimStyle.Render(fmt.Sprintf("Row %d of %d, loading...", m.cursor+1, len(m.data.values)))
	default:
		status = dimStyle.Render(fmt.Sprintf("Row %d of %d", m.cursor+1, len(m.data.values)))
	}
	return footerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keymap)))
}
