package tui

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybattery/internal/export"
	"github.com/sadopc/daybattery/internal/progress"
	"github.com/sadopc/daybattery/internal/store"
)

// Options configure the App. Zero values fall back to defaults.
type Options struct {
	Interval  time.Duration
	ExportDir string
	Now       func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	settings progress.Settings
	refresh  refreshModel

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	status   statusModel
	overview overviewModel
	prefs    settingsModel

	help       help.Model
	statusText string
	statusErr  bool
}

func NewApp(s *store.Store, opts Options) App {
	if opts.Interval <= 0 {
		opts.Interval = 20 * time.Second
	}
	if opts.ExportDir == "" {
		opts.ExportDir = defaultExportDir()
	}

	h := help.New()
	h.ShowAll = false

	settings, err := s.LoadSettings()
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	r := newRefreshModel(opts.Interval)
	if opts.Now != nil {
		r.now = opts.Now
	}

	a := App{
		store:      s,
		settings:   settings,
		refresh:    r,
		activeView: viewStatus,
		exportDir:  opts.ExportDir,
		status:     newStatusModel(),
		overview:   newOverviewModel(),
		prefs:      newSettingsModel(s),
		help:       h,
	}
	a.recompute()
	return a
}

func (a App) Init() tea.Cmd {
	return a.refresh.tickCmd()
}

// defaultExportDir is the home directory, or the working directory when
// home cannot be resolved.
func defaultExportDir() string {
	home, err := os.UserHomeDir()
	if err == nil {
		return home
	}
	log.Printf("export dir: %v", err)
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("export dir: %v", err)
		return "."
	}
	return wd
}

// recompute refreshes the snapshot from the current settings.
func (a *App) recompute() {
	a.refresh.recompute(a.settings.DayStart)
	a.overview.buildChart(a.refresh.snapshot(), a.settings)
}

// Title is the primary status line for the current settings.
func (a App) Title() string {
	return a.refresh.snapshot().Title(a.settings.Mode, a.settings.Format)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.status.setSize(a.width, contentHeight)
		a.overview.setSize(a.width, contentHeight)
		a.prefs.setSize(a.width, contentHeight)
		a.overview.buildChart(a.refresh.snapshot(), a.settings)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A form captures all input while open.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Day):
			return a, a.changeMode(progress.Day)
		case key.Matches(msg, keys.Month):
			return a, a.changeMode(progress.Month)
		case key.Matches(msg, keys.Year):
			return a, a.changeMode(progress.Year)
		case key.Matches(msg, keys.Format):
			st := a.settings
			st.Format = nextFormat(st.Format)
			return a, saveSettings(a.store, st)
		case key.Matches(msg, keys.Refresh):
			a.recompute()
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewStatus
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewOverview
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		}

	case tickMsg:
		a.recompute()
		return a, a.refresh.tickCmd()

	case settingsChangedMsg:
		a.settings = msg.settings
		a.recompute()
		a.statusText = "Settings saved"
		a.statusErr = false
		return a, nil

	case statusMsg:
		a.statusText = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.statusText = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) changeMode(m progress.Mode) tea.Cmd {
	st := a.settings
	st.Mode = m
	return saveSettings(a.store, st)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.activeView == viewSettings {
		a.prefs, cmd = a.prefs.update(msg, a.settings)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewSettings && a.prefs.formActive
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	snap := a.refresh.snapshot()
	var content string
	switch a.activeView {
	case viewStatus:
		content = a.status.view(snap, a.settings)
	case viewOverview:
		content = a.overview.view(snap)
	case viewSettings:
		content = a.prefs.view(a.settings)
	}

	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("daybattery")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	var right []string
	lineStyle := highlightStyle
	if a.refresh.stale() {
		lineStyle = warningStyle
	}
	right = append(right, lineStyle.Render(a.Title()))
	if n := a.refresh.failures; n > 0 {
		right = append(right, errorStyle.Render(fmt.Sprintf("%d calendar errors", n)))
	}
	if a.statusText != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		right = append(right, style.Render(a.statusText))
	}

	left := footerStyle.Render(helpView)
	r := " " + strings.Join(right, "  ")

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(r) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, r)
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export Format"), ""}
	for i, k := range export.Kinds {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+strings.ToUpper(string(k))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Kinds)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Kinds[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(kind export.Kind) tea.Cmd {
	snap := a.refresh.snapshot()
	dir := a.exportDir
	return func() tea.Msg {
		path := export.DefaultPath(dir, kind, snap.At)
		if err := export.Write(kind, snap, path); err != nil {
			log.Printf("export %s: %v", kind, err)
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
