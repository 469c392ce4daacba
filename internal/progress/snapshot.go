package progress

import "time"

// Settings is the host-owned selection fed into the engine on every refresh.
type Settings struct {
	Mode     Mode
	Format   Format
	DayStart int // hour, 0-23
}

// DefaultSettings are used when nothing valid has been stored.
func DefaultSettings() Settings {
	return Settings{Mode: Day, Format: Long, DayStart: 0}
}

// Resolve replaces any out-of-range field with its default.
func (s Settings) Resolve() Settings {
	d := DefaultSettings()
	if !s.Mode.Valid() {
		s.Mode = d.Mode
	}
	if !s.Format.Valid() {
		s.Format = d.Format
	}
	if !ValidDayStart(s.DayStart) {
		s.DayStart = d.DayStart
	}
	return s
}

// ValidDayStart reports whether h is an hour of the day.
func ValidDayStart(h int) bool {
	return h >= 0 && h <= 23
}

// Entry is one mode's result inside a Snapshot.
type Entry struct {
	Mode     Mode
	Percent  int
	Interval Interval
	Err      error
}

// Snapshot holds every mode computed at the same instant.
type Snapshot struct {
	At       time.Time
	DayStart int
	Entries  []Entry
}

// Take computes all modes at now.
func Take(now time.Time, dayStart int) Snapshot {
	snap := Snapshot{At: now, DayStart: dayStart}
	for _, m := range Modes {
		e := Entry{Mode: m}
		e.Interval, e.Err = Bounds(now, m, dayStart)
		if e.Err == nil {
			e.Percent, e.Err = Progress(now, m, dayStart)
		}
		snap.Entries = append(snap.Entries, e)
	}
	return snap
}

// Entry returns the result for mode; a failed or missing mode reads as 0.
func (s Snapshot) Entry(mode Mode) Entry {
	for _, e := range s.Entries {
		if e.Mode == mode {
			return e
		}
	}
	return Entry{Mode: mode}
}

// Title is the primary status line for the chosen mode and format.
func (s Snapshot) Title(mode Mode, format Format) string {
	return Text(mode, s.Entry(mode).Percent, format)
}

// Errors returns the calendar failures recorded in the snapshot.
func (s Snapshot) Errors() []error {
	var errs []error
	for _, e := range s.Entries {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}
	return errs
}

// ResetsAt is the real instant at which mode's interval rolls over, with the
// day-start offset applied back.
func (s Snapshot) ResetsAt(mode Mode) time.Time {
	e := s.Entry(mode)
	if e.Interval.End.IsZero() {
		return time.Time{}
	}
	return e.Interval.End.Add(time.Second).Add(time.Duration(s.DayStart) * time.Hour)
}

// Remaining is the time left until mode resets, never negative.
func (s Snapshot) Remaining(mode Mode) time.Duration {
	r := s.ResetsAt(mode)
	if r.IsZero() || !r.After(s.At) {
		return 0
	}
	return r.Sub(s.At)
}
