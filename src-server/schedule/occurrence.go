package schedule

import (
	"time"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
)

const (
	// DefaultWindowDays bounds the timeline window when the caller doesn't
	// supply one.
	DefaultWindowDays = 60
	// DefaultMaxOccurrences caps dates generated per event; roughly a year
	// of a weekly series.
	DefaultMaxOccurrences = 52
	// DefaultMaxEvents caps how many events a single expansion walks.
	DefaultMaxEvents = 200
	// SeriesViewMaxUpcoming caps the upcoming-dates preview on a series
	// entry; TotalUpcomingCount keeps the true count for "+N more" UIs.
	SeriesViewMaxUpcoming = 5
	// seriesLookaheadDays is the forward-looking window of the series view.
	seriesLookaheadDays = 120
)

// Occurrence is one concrete calendar instance of an event, computed fresh
// on every expansion and never persisted. Event already has any override
// merged in.
type Occurrence struct {
	Event       model.Event          `json:"event"`
	DateKey     string               `json:"dateKey"`
	StartTime   string               `json:"startTime"`
	EndTime     string               `json:"endTime"`
	IsCancelled bool                 `json:"isCancelled"`
	Override    *model.EventOverride `json:"override,omitempty"`
}

// Metrics are per-invocation counters returned alongside results; they feed
// "showing N of M" UI and the prometheus counters in src-server/metric.
type Metrics struct {
	EventsProcessed      int  `json:"eventsProcessed"`
	OccurrencesGenerated int  `json:"occurrencesGenerated"`
	CancelledCount       int  `json:"cancelledCount"`
	WasCapped            bool `json:"wasCapped"`
}

// ExpandOptions configures one expansion. The zero value is usable: every
// field has a safe default.
type ExpandOptions struct {
	StartKey       string
	EndKey         string
	MaxOccurrences int
	MaxEvents      int
	Overrides      map[string]*model.EventOverride
	Clock          *CivilClock
}

// The fallback civil zone when the host doesn't inject a clock. Denver is
// where the community lives; host-local time would make "today" depend on
// where the server runs.
var defaultClock = func() *CivilClock {
	location, err := time.LoadLocation("America/Denver")
	if err != nil {
		location = time.UTC
	}
	return NewCivilClock(location)
}()

func (o ExpandOptions) withDefaults(lookaheadDays int) ExpandOptions {
	if o.Clock == nil {
		o.Clock = defaultClock
	}
	if o.StartKey == "" {
		o.StartKey = o.Clock.Today()
	}
	if o.EndKey == "" {
		o.EndKey = AddDaysToKey(o.StartKey, lookaheadDays)
	}
	if o.MaxOccurrences <= 0 {
		o.MaxOccurrences = DefaultMaxOccurrences
	}
	if o.MaxEvents <= 0 {
		o.MaxEvents = DefaultMaxEvents
	}
	if o.Overrides == nil {
		o.Overrides = map[string]*model.EventOverride{}
	}
	return o
}

// generateOccurrenceDates expands one event across the window, applying the
// tighter of the event's own max_occurrences and the caller cap. It reports
// whether the event's descriptor was unresolvable and whether a cap bit.
func generateOccurrenceDates(event *model.Event, opts ExpandOptions) (dates []string, unknown bool, capped bool) {
	pattern := ResolvePattern(event)
	if pattern.Kind == PatternUnknown {
		return nil, true, false
	}

	dates = pattern.DatesBetween(opts.StartKey, opts.EndKey)

	limit := opts.MaxOccurrences
	if event.MaxOccurrences > 0 && event.MaxOccurrences < limit {
		limit = event.MaxOccurrences
	}
	if len(dates) > limit {
		dates = dates[:limit]
		capped = true
	}

	return dates, false, capped
}

// newOccurrence merges the event with its override (if any) for one date and
// classifies cancellation.
func newOccurrence(event *model.Event, dateKey string, override *model.EventOverride) Occurrence {
	merged := ApplyOccurrenceOverride(event, override)
	return Occurrence{
		Event:       merged,
		DateKey:     dateKey,
		StartTime:   merged.StartTime,
		EndTime:     merged.EndTime,
		IsCancelled: override != nil && override.Status == model.OverrideStatusCancelled,
		Override:    override,
	}
}
