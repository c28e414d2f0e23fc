package schedule

import (
	"sort"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
)

// TimelineResult is the calendar/timeline contract: active occurrences
// grouped by date, cancelled ones pulled out into their own bucket so views
// can render the gap explicitly.
type TimelineResult struct {
	GroupedEvents        map[string][]Occurrence `json:"groupedEvents"`
	CancelledOccurrences []Occurrence            `json:"cancelledOccurrences"`
	Metrics              Metrics                 `json:"metrics"`
}

// ExpandAndGroupEvents expands every event across the window, merges
// overrides, and groups the resulting occurrences by date key. A date with
// several events yields several entries, in input event order. Events whose
// descriptor can't be resolved are skipped; they never reach date-keyed
// output. The function never fails: malformed input degrades to a smaller
// result, and hitting a cap truncates and flags Metrics.WasCapped.
func ExpandAndGroupEvents(events []model.Event, opts ExpandOptions) TimelineResult {
	opts = opts.withDefaults(DefaultWindowDays)

	result := TimelineResult{
		GroupedEvents:        make(map[string][]Occurrence),
		CancelledOccurrences: make([]Occurrence, 0),
	}

	for i := range events {
		if result.Metrics.EventsProcessed >= opts.MaxEvents {
			result.Metrics.WasCapped = true
			break
		}
		event := &events[i]
		result.Metrics.EventsProcessed++

		dates, unknown, capped := generateOccurrenceDates(event, opts)
		if capped {
			result.Metrics.WasCapped = true
		}
		if unknown {
			continue
		}

		for _, dateKey := range dates {
			occurrence := newOccurrence(event, dateKey, opts.Overrides[OverrideKey(event.ID, dateKey)])
			result.Metrics.OccurrencesGenerated++

			if occurrence.IsCancelled {
				result.Metrics.CancelledCount++
				result.CancelledOccurrences = append(result.CancelledOccurrences, occurrence)
				continue
			}
			result.GroupedEvents[dateKey] = append(result.GroupedEvents[dateKey], occurrence)
		}
	}

	// stable keeps input event order for same-day cancellations
	sort.SliceStable(result.CancelledOccurrences, func(i, j int) bool {
		return result.CancelledOccurrences[i].DateKey < result.CancelledOccurrences[j].DateKey
	})

	return result
}
