package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	engine "github.com/sadopc/daybattery/internal/progress"
)

// statusModel renders the primary title line and one bar per mode.
type statusModel struct {
	width  int
	height int

	bars map[engine.Mode]progress.Model
}

func newStatusModel() statusModel {
	bars := make(map[engine.Mode]progress.Model, len(engine.Modes))
	for _, m := range engine.Modes {
		bars[m] = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	}
	return statusModel{bars: bars}
}

func (s *statusModel) setSize(w, h int) {
	s.width = w
	s.height = h
	barWidth := w - 30
	if barWidth < 10 {
		barWidth = 10
	}
	for m, b := range s.bars {
		b.Width = barWidth
		s.bars[m] = b
	}
}

func (s statusModel) view(snap engine.Snapshot, st engine.Settings) string {
	if s.width < 20 {
		return "Terminal too small"
	}
	w := s.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		s.renderTitlePanel(snap, st, w),
		s.renderBarsPanel(snap, st, w),
	)
}

func (s statusModel) renderTitlePanel(snap engine.Snapshot, st engine.Settings, w int) string {
	title := statusTitleStyle.Width(w - 6).Render(snap.Title(st.Mode, st.Format))

	resets := snap.ResetsAt(st.Mode)
	var hint string
	if resets.IsZero() {
		hint = errorStyle.Render("interval unavailable")
	} else {
		hint = mutedStyle.Render(fmt.Sprintf("%s resets %s (%s)",
			engine.ModeName(st.Mode),
			humanize.RelTime(resets, snap.At, "ago", "from now"),
			resets.Format("Mon Jan 2 15:04"),
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, hint)
	return activePanelStyle.Width(w).Render(content)
}

func (s statusModel) renderBarsPanel(snap engine.Snapshot, st engine.Settings, w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Progress"))

	for _, m := range engine.Modes {
		e := snap.Entry(m)
		style := normalItemStyle
		cursor := "  "
		if m == st.Mode {
			style = selectedItemStyle
			cursor = "> "
		}
		bar := s.bars[m].ViewAs(percentFraction(e.Percent))
		pct := percentStyle(e.Percent).Render(fmt.Sprintf("%3d%%", e.Percent))
		rows = append(rows, fmt.Sprintf("%s%s %s %s",
			cursor,
			style.Width(8).Render(engine.ModeName(m)),
			bar,
			pct,
		))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  day starts at %s  ·  updated %s",
		hourLabel(st.DayStart), snap.At.Format("15:04:05"))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
