package schedule

import (
	"sort"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
)

// SeriesEntry is the one-row-per-series aggregate: the next date, a capped
// preview of upcoming dates, and a human-readable recurrence summary.
//
// Unlike the timeline contract, cancelled occurrences stay inline in
// UpcomingOccurrences with IsCancelled set: the series view shows the gap
// instead of hiding it. That divergence is deliberate.
type SeriesEntry struct {
	Event               model.Event  `json:"event"`
	NextOccurrence      *Occurrence  `json:"nextOccurrence"`
	NextConfident       bool         `json:"nextConfident"`
	UpcomingOccurrences []Occurrence `json:"upcomingOccurrences"`
	TotalUpcomingCount  int          `json:"totalUpcomingCount"`
	RecurrenceSummary   string       `json:"recurrenceSummary"`
	IsOneTime           bool         `json:"isOneTime"`
}

type SeriesResult struct {
	Series        []SeriesEntry `json:"series"`
	UnknownEvents []model.Event `json:"unknownEvents"`
	Metrics       Metrics       `json:"metrics"`
}

// GroupEventsAsSeriesView builds one entry per event, sorted ascending
// across all events by next-occurrence date. Events with no confident next
// occurrence — unresolvable descriptors, or nothing upcoming in the
// lookahead window — go to UnknownEvents and are excluded from sorting.
// The window defaults to forward-looking from today; an explicit window
// override is still clipped to today so "upcoming" stays upcoming.
func GroupEventsAsSeriesView(events []model.Event, opts ExpandOptions) SeriesResult {
	opts = opts.withDefaults(seriesLookaheadDays)
	today := opts.Clock.Today()
	if opts.StartKey < today {
		opts.StartKey = today
	}

	result := SeriesResult{
		Series:        make([]SeriesEntry, 0, len(events)),
		UnknownEvents: make([]model.Event, 0),
	}

	for i := range events {
		event := &events[i]
		result.Metrics.EventsProcessed++

		dates, unknown, capped := generateOccurrenceDates(event, opts)
		if capped {
			result.Metrics.WasCapped = true
		}
		if unknown || len(dates) == 0 {
			result.UnknownEvents = append(result.UnknownEvents, *event)
			continue
		}

		pattern := ResolvePattern(event)
		entry := SeriesEntry{
			Event:             *event,
			NextConfident:     true,
			RecurrenceSummary: SummarizeRecurrence(event),
			IsOneTime:         pattern.Kind == PatternOneTime,
		}

		for _, dateKey := range dates {
			occurrence := newOccurrence(event, dateKey, opts.Overrides[OverrideKey(event.ID, dateKey)])
			result.Metrics.OccurrencesGenerated++
			if occurrence.IsCancelled {
				result.Metrics.CancelledCount++
			}

			// next occurrence skips cancelled dates; a cancelled "next"
			// would tell people to show up to nothing
			if entry.NextOccurrence == nil && !occurrence.IsCancelled {
				next := occurrence
				entry.NextOccurrence = &next
			}

			entry.TotalUpcomingCount++
			if len(entry.UpcomingOccurrences) < SeriesViewMaxUpcoming {
				entry.UpcomingOccurrences = append(entry.UpcomingOccurrences, occurrence)
			}
		}

		if entry.NextOccurrence == nil {
			// every remaining date is cancelled
			result.UnknownEvents = append(result.UnknownEvents, *event)
			continue
		}

		result.Series = append(result.Series, entry)
	}

	// stable keeps input order for same-date ties
	sort.SliceStable(result.Series, func(i, j int) bool {
		return result.Series[i].NextOccurrence.DateKey < result.Series[j].NextOccurrence.DateKey
	})

	if len(result.Series) > opts.MaxEvents {
		result.Series = result.Series[:opts.MaxEvents]
		result.Metrics.WasCapped = true
	}

	return result
}
