package store

import "time"

// Persisted setting keys. The names and their integer encodings are shared
// with stores written by earlier releases.
const (
	KeyMode     = "selectedMode"
	KeyFormat   = "selectedFormat"
	KeyDayStart = "selectedDayStart"
)

type Setting struct {
	Key       string
	Value     int
	UpdatedAt time.Time
}
