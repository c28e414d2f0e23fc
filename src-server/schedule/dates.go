package schedule

import (
	"strings"
	"time"
)

// DateKeyLayout is the wire format of a date key. Keys are zero-padded and
// fixed-width, so plain lexicographic comparison orders them chronologically.
// Every "is this in the future" check in this package relies on that.
const DateKeyLayout = "2006-01-02"

// All calendar arithmetic happens on civil dates, so the actual location of
// the intermediate time.Time values doesn't matter as long as it's consistent.
// UTC avoids DST holes between midnight boundaries.
func parseDateKey(key string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func formatDateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// AddDaysToKey shifts a date key by n calendar days. Invalid keys are
// returned unchanged.
func AddDaysToKey(key string, n int) string {
	t, ok := parseDateKey(key)
	if !ok {
		return key
	}
	return formatDateKey(t.AddDate(0, 0, n))
}

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekdayName(name string) (time.Weekday, bool) {
	weekday, ok := weekdayByName[strings.ToLower(strings.TrimSpace(name))]
	return weekday, ok
}

// nthWeekdayOfMonth returns the date of the nth (1-based) given weekday in a
// month, or the final one when n is OrdinalLast. The boolean reports whether
// the month actually contains such a date; a "5th Monday" doesn't exist in
// most months.
func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) (time.Time, bool) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	if n == OrdinalLast {
		last := first
		for candidate := first.AddDate(0, 0, offset); candidate.Month() == month; candidate = candidate.AddDate(0, 0, 7) {
			last = candidate
		}
		if last.Weekday() != weekday {
			return time.Time{}, false
		}
		return last, true
	}
	candidate := first.AddDate(0, 0, offset+(n-1)*7)
	if candidate.Month() != month {
		return time.Time{}, false
	}
	return candidate, true
}
