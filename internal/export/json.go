package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/daybattery/internal/progress"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	At         string      `json:"at"`
	DayStart   int         `json:"day_start"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Mode         string `json:"mode"`
	Ordinal      int    `json:"ordinal"`
	Percent      int    `json:"percent"`
	Start        string `json:"start,omitempty"`
	End          string `json:"end,omitempty"`
	Resets       string `json:"resets,omitempty"`
	RemainingSec int64  `json:"remaining_seconds"`
	Remaining    string `json:"remaining"`
	Text         string `json:"text"`
	Error        string `json:"error,omitempty"`
}

func ToJSON(snap progress.Snapshot, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		At:         formatTime(snap.At),
		DayStart:   snap.DayStart,
	}

	for _, e := range snap.Entries {
		remaining := int64(snap.Remaining(e.Mode) / time.Second)
		je := jsonEntry{
			Mode:         progress.ModeName(e.Mode),
			Ordinal:      int(e.Mode),
			Percent:      e.Percent,
			Start:        formatTime(e.Interval.Start),
			End:          formatTime(e.Interval.End),
			Resets:       formatTime(snap.ResetsAt(e.Mode)),
			RemainingSec: remaining,
			Remaining:    formatDuration(remaining),
			Text:         progress.Text(e.Mode, e.Percent, progress.Long),
		}
		if e.Err != nil {
			je.Error = e.Err.Error()
		}
		export.Entries = append(export.Entries, je)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
