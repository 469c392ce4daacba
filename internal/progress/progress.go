// Package progress computes how far an instant has advanced through its
// enclosing day, month or year, and renders the result as display text.
package progress

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCalendar is returned when interval boundaries cannot be derived for an
// instant: an unknown mode, or a location whose zone data never leaves the
// period containing a skipped midnight.
var ErrCalendar = errors.New("calendar computation failed")

// Mode is the granularity of the interval being measured. The ordinals are
// persisted and must not change.
type Mode int

const (
	Day Mode = iota
	Month
	Year
)

// Modes lists every mode in display order.
var Modes = []Mode{Day, Month, Year}

var modeNames = map[Mode]string{
	Day:   "Day",
	Month: "Month",
	Year:  "Year",
}

func (m Mode) Valid() bool {
	return m >= Day && m <= Year
}

func (m Mode) String() string {
	return ModeName(m)
}

// ModeName returns the English name of m.
func ModeName(m Mode) string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts a mode name ("day", "Month", ...) or its first letter.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes {
		name := strings.ToLower(modeNames[m])
		if s == name || s == name[:1] {
			return m, nil
		}
	}
	return Day, fmt.Errorf("unknown mode %q", s)
}

// Format controls how a percentage is rendered. The ordinals are persisted
// and must not change.
type Format int

const (
	Percent Format = iota
	Short
	Long
)

// Formats lists every format in display order.
var Formats = []Format{Percent, Short, Long}

var formatNames = map[Format]string{
	Percent: "percent",
	Short:   "short",
	Long:    "long",
}

func (f Format) Valid() bool {
	return f >= Percent && f <= Long
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts "percent", "short" or "long", case-insensitively.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats {
		if s == formatNames[f] {
			return f, nil
		}
	}
	return Long, fmt.Errorf("unknown format %q", s)
}

// Interval is the calendar span of one mode unit. End is one second before
// the start of the next unit.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Total is the length of the interval.
func (iv Interval) Total() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Bounds returns the interval of mode that encloses now once it has been
// shifted back by dayStart hours. Calendar fields are taken in now's location.
// A boundary whose local midnight falls in a DST gap starts at the first
// instant that exists on that date.
func Bounds(now time.Time, mode Mode, dayStart int) (Interval, error) {
	adjusted := shift(now, dayStart)
	loc := now.Location()
	y, mo, d := adjusted.Date()

	var sy, ny int
	var sm, nm time.Month
	var sd, nd int
	switch mode {
	case Day:
		sy, sm, sd = y, mo, d
		ny, nm, nd = y, mo, d+1
	case Month:
		sy, sm, sd = y, mo, 1
		ny, nm, nd = y, mo+1, 1
	case Year:
		sy, sm, sd = y, time.January, 1
		ny, nm, nd = y+1, time.January, 1
	default:
		return Interval{}, fmt.Errorf("%w: unknown mode %d", ErrCalendar, int(mode))
	}

	start, err := startOfDate(sy, sm, sd, loc)
	if err != nil {
		return Interval{}, err
	}
	next, err := startOfDate(ny, nm, nd, loc)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: next.Add(-time.Second)}, nil
}

// startOfDate returns the first instant in loc whose calendar date is on or
// after y-m-d. time.Date may resolve a skipped midnight to the hour before
// the gap, in which case the instant is moved to the end of that zone period.
func startOfDate(y int, m time.Month, d int, loc *time.Location) (time.Time, error) {
	want := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for civil(t).Before(want) {
		_, end := t.ZoneBounds()
		if end.IsZero() || !end.After(t) {
			return time.Time{}, fmt.Errorf("%w: no start of %s in %s", ErrCalendar,
				want.Format(time.DateOnly), loc)
		}
		t = end
	}
	return t, nil
}

// civil is t's wall-clock date as a UTC midnight, for date-only comparison.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Progress returns the truncated percentage of the enclosing interval that
// has elapsed at now.
func Progress(now time.Time, mode Mode, dayStart int) (int, error) {
	iv, err := Bounds(now, mode, dayStart)
	if err != nil {
		return 0, err
	}
	elapsed := shift(now, dayStart).Sub(iv.Start).Seconds()
	total := iv.Total().Seconds()
	return int(elapsed / total * 100), nil
}

// Compute is Progress with calendar failures reported as 0.
func Compute(now time.Time, mode Mode, dayStart int) int {
	pct, err := Progress(now, mode, dayStart)
	if err != nil {
		return 0
	}
	return pct
}

// Text renders percent for mode in the given format.
func Text(mode Mode, percent int, format Format) string {
	name := ModeName(mode)
	switch format {
	case Percent:
		return fmt.Sprintf("%d%%", percent)
	case Short:
		return fmt.Sprintf("%s: %d%%", name[:1], percent)
	default:
		return fmt.Sprintf("%s: %d%%", name, percent)
	}
}

func shift(now time.Time, dayStart int) time.Time {
	return now.Add(-time.Duration(dayStart) * time.Hour)
}
