package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/daybattery/internal/progress"
)

var csvHeader = []string{"Mode", "Percent", "Start", "End", "Resets", "Remaining (s)", "Remaining", "Text"}

func ToCSV(snap progress.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range snap.Entries {
		remaining := int64(snap.Remaining(e.Mode) / time.Second)
		row := []string{
			progress.ModeName(e.Mode),
			fmt.Sprintf("%d", e.Percent),
			formatTime(e.Interval.Start),
			formatTime(e.Interval.End),
			formatTime(snap.ResetsAt(e.Mode)),
			fmt.Sprintf("%d", remaining),
			formatDuration(remaining),
			progress.Text(e.Mode, e.Percent, progress.Long),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
