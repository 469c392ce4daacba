package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybattery/internal/progress"
)

// overviewModel charts the three modes side by side.
type overviewModel struct {
	width  int
	height int

	chart barchart.Model
}

func newOverviewModel() overviewModel {
	return overviewModel{
		chart: barchart.New(40, 12, barchart.WithMaxValue(100)),
	}
}

func (o *overviewModel) setSize(w, h int) {
	o.width = w
	o.height = h
}

func (o *overviewModel) buildChart(snap progress.Snapshot, st progress.Settings) {
	chartWidth := o.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if o.height > 30 {
		chartHeight = 16
	}

	o.chart = barchart.New(chartWidth, chartHeight, barchart.WithMaxValue(100))

	var bars []barchart.BarData
	for _, m := range progress.Modes {
		e := snap.Entry(m)
		color := colorSubtle
		if m == st.Mode {
			color = colorPrimary
		}
		bars = append(bars, barchart.BarData{
			Label: progress.Text(m, e.Percent, progress.Short),
			Values: []barchart.BarValue{{
				Name:  progress.ModeName(m),
				Value: float64(e.Percent),
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}

	o.chart.PushAll(bars)
	o.chart.Draw()
}

func (o overviewModel) view(snap progress.Snapshot) string {
	w := o.width - 4

	from := snap.Entry(progress.Year).Interval.Start
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s · day start %s",
		snap.At.Format("Mon Jan 02, 2006 15:04"), hourLabel(snap.DayStart)))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Overview"), "  ", dateLabel,
	)

	table := o.renderTable(snap, w)

	var footer string
	if !from.IsZero() {
		footer = mutedStyle.Render(fmt.Sprintf("  year started %s", from.Format("Jan 02 15:04")))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", o.chart.View(), "", table, "", footer,
		),
	)
}

func (o overviewModel) renderTable(snap progress.Snapshot, w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-6s %7s  %-17s %-17s", "Mode", "Percent", "Start", "End")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(min(w-6, 52), 0))))

	for _, m := range progress.Modes {
		e := snap.Entry(m)
		if e.Err != nil {
			rows = append(rows, fmt.Sprintf("  %-6s %7s  %s", progress.ModeName(m), "0%", errorStyle.Render("unavailable")))
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-6s %7s  %-17s %-17s",
			progress.ModeName(m),
			fmt.Sprintf("%d%%", e.Percent),
			e.Interval.Start.Format("2006-01-02 15:04"),
			e.Interval.End.Format("2006-01-02 15:04"),
		))
	}
	return strings.Join(rows, "\n")
}
