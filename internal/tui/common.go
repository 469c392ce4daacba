package tui

import (
	"time"

	"github.com/sadopc/daybattery/internal/progress"
)

// viewState represents the currently active view.
type viewState int

const (
	viewStatus viewState = iota
	viewOverview
	viewSettings
)

var viewNames = []string{"Status", "Overview", "Settings"}

// --- Messages ---

type tickMsg time.Time

// settingsChangedMsg is sent after every persisted settings mutation and
// forces an immediate recompute.
type settingsChangedMsg struct {
	settings progress.Settings
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// hourLabel names an hour of the day for the day-start picker.
func hourLabel(h int) string {
	return time.Date(2000, time.January, 1, h, 0, 0, 0, time.UTC).Format("15:04")
}

func percentFraction(p int) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 1
	}
	return float64(p) / 100
}
