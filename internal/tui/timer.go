package tui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/daybattery/internal/progress"
)

// refreshModel owns the periodic recompute: it holds the latest snapshot
// and schedules the next tick.
type refreshModel struct {
	interval time.Duration
	now      func() time.Time

	snap        progress.Snapshot
	lastRefresh time.Time
	failures    int // calendar errors since start, shown in the footer
}

func newRefreshModel(interval time.Duration) refreshModel {
	return refreshModel{
		interval: interval,
		now:      time.Now,
	}
}

func (r refreshModel) tickCmd() tea.Cmd {
	return tea.Tick(r.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// recompute takes a fresh snapshot for dayStart. Calendar failures are
// logged and read as 0 in the snapshot.
func (r *refreshModel) recompute(dayStart int) {
	now := r.now()
	r.snap = progress.Take(now, dayStart)
	r.lastRefresh = now
	for _, err := range r.snap.Errors() {
		r.failures++
		log.Printf("progress at %s (day start %d): %v", now.Format(time.RFC3339), dayStart, err)
	}
}

func (r refreshModel) snapshot() progress.Snapshot {
	return r.snap
}

// stale reports whether a tick has been missed. The next tick is scheduled
// after recompute, so half an interval of slack is allowed.
func (r refreshModel) stale() bool {
	if r.lastRefresh.IsZero() {
		return true
	}
	return r.now().Sub(r.lastRefresh) > r.interval+r.interval/2
}
