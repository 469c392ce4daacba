package tui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybattery/internal/progress"
	"github.com/sadopc/daybattery/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	mode     *int
	format   *int
	dayStart *int
}

func newSettingsModel(s *store.Store) settingsModel {
	m, f, d := 0, 0, 0
	return settingsModel{
		store:    s,
		mode:     &m,
		format:   &f,
		dayStart: &d,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg, current progress.Settings) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return s.showForm(current)
		}
	}
	return s, nil
}

func (s settingsModel) showForm(current progress.Settings) (settingsModel, tea.Cmd) {
	*s.mode = int(current.Mode)
	*s.format = int(current.Format)
	*s.dayStart = current.DayStart

	var modeOpts []huh.Option[int]
	for _, m := range progress.Modes {
		modeOpts = append(modeOpts, huh.NewOption(progress.ModeName(m), int(m)))
	}
	var formatOpts []huh.Option[int]
	for _, f := range progress.Formats {
		formatOpts = append(formatOpts, huh.NewOption(formatExample(f), int(f)))
	}
	var hourOpts []huh.Option[int]
	for h := 0; h < 24; h++ {
		hourOpts = append(hourOpts, huh.NewOption(hourLabel(h), h))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Show progress of").
				Options(modeOpts...).Value(s.mode),
			huh.NewSelect[int]().Title("Format").
				Options(formatOpts...).Value(s.format),
			huh.NewSelect[int]().Title("Day starts at").
				Description("Shifts day, month and year boundaries").
				Options(hourOpts...).Height(8).Value(s.dayStart),
		).Title("Preferences"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.save()
	}

	return s, cmd
}

func (s settingsModel) values() progress.Settings {
	return progress.Settings{
		Mode:     progress.Mode(*s.mode),
		Format:   progress.Format(*s.format),
		DayStart: *s.dayStart,
	}
}

func (s settingsModel) save() tea.Cmd {
	return saveSettings(s.store, s.values())
}

// saveSettings persists st and announces the change so the host recomputes
// immediately.
func saveSettings(st *store.Store, settings progress.Settings) tea.Cmd {
	if err := st.SaveSettings(settings); err != nil {
		log.Printf("save settings: %v", err)
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return func() tea.Msg { return settingsChangedMsg{settings: settings} }
}

func (s settingsModel) view(current progress.Settings) string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{title, ""}
	for _, kv := range [][2]string{
		{"Mode", progress.ModeName(current.Mode)},
		{"Format", formatExample(current.Format)},
		{"Day starts at", hourLabel(current.DayStart)},
	} {
		label := lipgloss.NewStyle().Width(16).Render(kv[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(kv[1])))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// formatExample shows what a format looks like, e.g. "Long (Day: 42%)".
func formatExample(f progress.Format) string {
	names := map[progress.Format]string{
		progress.Percent: "Percent",
		progress.Short:   "Short",
		progress.Long:    "Long",
	}
	return fmt.Sprintf("%s (%s)", names[f], progress.Text(progress.Day, 42, f))
}

func nextFormat(f progress.Format) progress.Format {
	return progress.Format((int(f) + 1) % len(progress.Formats))
}
