package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
)

type PatternKind int

const (
	// PatternUnknown marks an event whose descriptor can't be resolved into
	// a schedule. These never produce dates; callers surface them separately.
	PatternUnknown PatternKind = iota
	PatternOneTime
	PatternWeekly
	PatternOrdinalMonthly
	PatternCustom
)

// OrdinalLast means "the last <weekday> of the month".
const OrdinalLast = -1

var ordinalByWord = map[string]int{
	"1st":  1,
	"2nd":  2,
	"3rd":  3,
	"4th":  4,
	"5th":  5,
	"last": OrdinalLast,
}

// Pattern is a recurrence descriptor parsed into a tagged variant, so the
// rule string is interpreted once at the boundary instead of at every call
// site.
type Pattern struct {
	Kind    PatternKind
	Date    string       // PatternOneTime
	Weekday time.Weekday // PatternWeekly, PatternOrdinalMonthly
	Ordinal int          // PatternOrdinalMonthly; 1-based, OrdinalLast for "last"
	Dates   []string     // PatternCustom; sorted, deduplicated
}

// ResolvePattern interprets an event's scheduling descriptor. It never
// fails: anything malformed or contradictory resolves to PatternUnknown.
func ResolvePattern(event *model.Event) Pattern {
	rule := strings.ToLower(strings.TrimSpace(event.RecurrenceRule))

	switch rule {
	case "", "none":
		if _, ok := parseDateKey(event.EventDate); ok {
			return Pattern{Kind: PatternOneTime, Date: event.EventDate}
		}
		return Pattern{Kind: PatternUnknown}
	case model.RecurrenceWeekly:
		weekday, ok := parseWeekdayName(event.DayOfWeek)
		if !ok {
			return Pattern{Kind: PatternUnknown}
		}
		return Pattern{Kind: PatternWeekly, Weekday: weekday}
	case model.RecurrenceCustom:
		dates := make([]string, 0)
		for _, key := range event.CustomDateKeys() {
			if _, ok := parseDateKey(key); ok {
				dates = append(dates, key)
			}
		}
		if len(dates) == 0 {
			return Pattern{Kind: PatternUnknown}
		}
		sort.Strings(dates)
		return Pattern{Kind: PatternCustom, Dates: dates}
	}

	return resolveOrdinalRule(rule, event.DayOfWeek)
}

// resolveOrdinalRule parses expressions like "2nd thursday" or "last
// friday". A bare ordinal ("2nd") borrows the weekday from day_of_week.
func resolveOrdinalRule(rule string, dayOfWeek string) Pattern {
	fields := strings.Fields(rule)
	if len(fields) == 0 || len(fields) > 2 {
		return Pattern{Kind: PatternUnknown}
	}

	ordinal, ok := ordinalByWord[fields[0]]
	if !ok {
		return Pattern{Kind: PatternUnknown}
	}

	weekdayName := dayOfWeek
	if len(fields) == 2 {
		weekdayName = fields[1]
	}
	weekday, ok := parseWeekdayName(weekdayName)
	if !ok {
		return Pattern{Kind: PatternUnknown}
	}

	return Pattern{Kind: PatternOrdinalMonthly, Weekday: weekday, Ordinal: ordinal}
}

// DatesBetween expands the pattern into an ordered, deduplicated list of
// date keys inside the inclusive [startKey, endKey] window. Unknown patterns
// and invalid windows expand to nothing.
func (p Pattern) DatesBetween(startKey string, endKey string) []string {
	start, startOk := parseDateKey(startKey)
	end, endOk := parseDateKey(endKey)
	if !startOk || !endOk || startKey > endKey {
		return nil
	}

	switch p.Kind {
	case PatternOneTime:
		if p.Date >= startKey && p.Date <= endKey {
			return []string{p.Date}
		}
		return nil

	case PatternWeekly:
		offset := (int(p.Weekday) - int(start.Weekday()) + 7) % 7
		dates := make([]string, 0)
		for t := start.AddDate(0, 0, offset); !t.After(end); t = t.AddDate(0, 0, 7) {
			dates = append(dates, formatDateKey(t))
		}
		return dates

	case PatternOrdinalMonthly:
		dates := make([]string, 0)
		// walk every month overlapping the window; months use their real
		// day counts, so a missing "5th monday" just yields nothing
		cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !cursor.After(end) {
			if t, ok := nthWeekdayOfMonth(cursor.Year(), cursor.Month(), p.Weekday, p.Ordinal); ok {
				key := formatDateKey(t)
				if key >= startKey && key <= endKey {
					dates = append(dates, key)
				}
			}
			cursor = cursor.AddDate(0, 1, 0)
		}
		return dates

	case PatternCustom:
		dates := make([]string, 0)
		for _, key := range p.Dates {
			if key >= startKey && key <= endKey {
				dates = append(dates, key)
			}
		}
		return dates
	}

	return nil
}
