// Package format converts raw project fields into the strings shown in the
// table and detail views.
package format

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidTimestamp is returned for timestamps that are missing, not
// finite, or outside years 0001-9999.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// months is the fixed abbreviation table used by Date.
var months = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Formatter renders dates in a fixed location.
// The zero value renders in time.Local.
type Formatter struct {
	loc *time.Location
}

// New returns a Formatter for loc. A nil loc means time.Local.
func New(loc *time.Location) Formatter {
	return Formatter{loc: loc}
}

func (f Formatter) location() *time.Location {
	if f.loc == nil {
		return time.Local
	}
	return f.loc
}

// Date formats unixSeconds as "Mon D, YYYY" using the formatter's calendar.
func (f Formatter) Date(unixSeconds float64) (string, error) {
	t, err := toTime(unixSeconds)
	if err != nil {
		return "", err
	}
	t = t.In(f.location())
	if err := checkYear(t); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d, %04d", months[t.Month()-1], t.Day(), t.Year()), nil
}

// DateRange formats start and end as "M/D/YYYY to M/D/YYYY".
// It always uses UTC calendar fields, unlike Date.
func (f Formatter) DateRange(start, end float64) (string, error) {
	s, err := utcDate(start)
	if err != nil {
		return "", fmt.Errorf("start: %w", err)
	}
	e, err := utcDate(end)
	if err != nil {
		return "", fmt.Errorf("end: %w", err)
	}
	return s + " to " + e, nil
}

// FormatDate formats unixSeconds in the local time zone.
func FormatDate(unixSeconds float64) (string, error) {
	return Formatter{}.Date(unixSeconds)
}

// FormatDateRange formats a start/end pair using UTC calendar fields.
func FormatDateRange(start, end float64) (string, error) {
	return Formatter{}.DateRange(start, end)
}

// ProgressRatio returns current/total as a whole percentage.
// It is 0 when total is 0 or either operand is not a finite number.
// Halves round up, and results outside 0-100 are not clamped.
func ProgressRatio(current, total float64) int {
	if total == 0 || !finite(current) || !finite(total) {
		return 0
	}
	v := math.Floor(current/total*100 + 0.5)
	switch {
	case v >= math.MaxInt:
		return math.MaxInt
	case v <= math.MinInt:
		return math.MinInt
	}
	return int(v)
}

func utcDate(unixSeconds float64) (string, error) {
	t, err := toTime(unixSeconds)
	if err != nil {
		return "", err
	}
	t = t.UTC()
	if err := checkYear(t); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d/%d/%04d", int(t.Month()), t.Day(), t.Year()), nil
}

// maxSeconds bounds inputs well outside the 4-digit year range so the
// millisecond conversion below cannot overflow.
const maxSeconds = 1e12

func toTime(unixSeconds float64) (time.Time, error) {
	if !finite(unixSeconds) || math.Abs(unixSeconds) > maxSeconds {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, unixSeconds)
	}
	return time.UnixMilli(int64(unixSeconds * 1000)), nil
}

func checkYear(t time.Time) error {
	if y := t.Year(); y < 1 || y > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidTimestamp, y)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
