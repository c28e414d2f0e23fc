package schedule

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
)

var titleCaser = cases.Title(language.AmericanEnglish)

var ordinalLabels = map[int]string{
	1: "1st",
	2: "2nd",
	3: "3rd",
	4: "4th",
	5: "5th",
}

// SummarizeRecurrence renders a descriptor as a short human sentence:
// "Every Monday", "2nd Thursday of the month", "One-time". Derived purely
// from the descriptor, never from expanded dates.
func SummarizeRecurrence(event *model.Event) string {
	pattern := ResolvePattern(event)

	switch pattern.Kind {
	case PatternOneTime:
		return "One-time"
	case PatternWeekly:
		return "Every " + weekdayLabel(pattern)
	case PatternOrdinalMonthly:
		if pattern.Ordinal == OrdinalLast {
			return fmt.Sprintf("Last %s of the month", weekdayLabel(pattern))
		}
		return fmt.Sprintf("%s %s of the month", ordinalLabels[pattern.Ordinal], weekdayLabel(pattern))
	case PatternCustom:
		if len(pattern.Dates) == 1 {
			return "1 selected date"
		}
		return fmt.Sprintf("%d selected dates", len(pattern.Dates))
	}

	return "Schedule to be announced"
}

// weekdayLabel title-cases the weekday so the summary reads the same no
// matter how day_of_week was capitalized on the way in.
func weekdayLabel(pattern Pattern) string {
	return titleCaser.String(strings.ToLower(pattern.Weekday.String()))
}
