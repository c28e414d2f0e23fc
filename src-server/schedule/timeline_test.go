package schedule_test

import (
	"testing"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
)

func TestExpandAndGroupEventsCancellation(t *testing.T) {
	eventModel := model.Event{
		ID:             "wednesday-circle",
		Title:          "Wednesday Song Circle",
		DayOfWeek:      "wednesday",
		RecurrenceRule: model.RecurrenceWeekly,
		StartTime:      "19:00",
	}
	overrideMap := schedule.BuildOverrideMap([]model.EventOverride{
		{EventID: "wednesday-circle", DateKey: "2026-01-14", Status: model.OverrideStatusCancelled},
	})

	result := schedule.ExpandAndGroupEvents([]model.Event{eventModel}, schedule.ExpandOptions{
		StartKey:  "2026-01-01",
		EndKey:    "2026-01-31",
		Overrides: overrideMap,
		Clock:     schedule.FixedCivilClock("2026-01-01"),
	})

	for _, key := range []string{"2026-01-07", "2026-01-21", "2026-01-28"} {
		if len(result.GroupedEvents[key]) != 1 {
			t.Errorf("expected one occurrence on %s, got %d", key, len(result.GroupedEvents[key]))
		}
	}
	if _, ok := result.GroupedEvents["2026-01-14"]; ok {
		t.Error("cancelled date must not appear in grouped events")
	}
	if len(result.CancelledOccurrences) != 1 {
		t.Fatalf("expected exactly one cancelled occurrence, got %d", len(result.CancelledOccurrences))
	}
	if got := result.CancelledOccurrences[0]; got.DateKey != "2026-01-14" || !got.IsCancelled {
		t.Errorf("cancelled occurrence wrong: %+v", got)
	}

	if result.Metrics.OccurrencesGenerated != 4 {
		t.Errorf("expected 4 generated occurrences, got %d", result.Metrics.OccurrencesGenerated)
	}
	if result.Metrics.CancelledCount != 1 {
		t.Errorf("expected 1 cancellation in metrics, got %d", result.Metrics.CancelledCount)
	}
	if result.Metrics.WasCapped {
		t.Error("nothing should be capped here")
	}
}

func TestExpandAndGroupEventsSharedDate(t *testing.T) {
	events := []model.Event{
		{ID: "first", Title: "First", DayOfWeek: "monday", RecurrenceRule: model.RecurrenceWeekly},
		{ID: "second", Title: "Second", DayOfWeek: "monday", RecurrenceRule: model.RecurrenceWeekly},
	}

	result := schedule.ExpandAndGroupEvents(events, schedule.ExpandOptions{
		StartKey: "2026-01-05",
		EndKey:   "2026-01-05",
		Clock:    schedule.FixedCivilClock("2026-01-05"),
	})

	occurrences := result.GroupedEvents["2026-01-05"]
	if len(occurrences) != 2 {
		t.Fatalf("expected both events on the shared date, got %d", len(occurrences))
	}
	// order follows input event order
	if occurrences[0].Event.ID != "first" || occurrences[1].Event.ID != "second" {
		t.Errorf("shared-date order wrong: %s, %s", occurrences[0].Event.ID, occurrences[1].Event.ID)
	}
}

func TestExpandAndGroupEventsUnknownAndOverrideMerge(t *testing.T) {
	events := []model.Event{
		{ID: "no-schedule", Title: "Mystery Night"},
		{
			ID:             "thursday-mic",
			Title:          "Thursday Open Mic",
			DayOfWeek:      "thursday",
			RecurrenceRule: model.RecurrenceWeekly,
			StartTime:      "19:00",
		},
	}
	overrideMap := schedule.BuildOverrideMap([]model.EventOverride{
		{
			EventID:       "thursday-mic",
			DateKey:       "2026-01-08",
			Status:        model.OverrideStatusNormal,
			OverridePatch: `{"start_time":"20:00","title":"Open Mic (late start)"}`,
		},
	})

	result := schedule.ExpandAndGroupEvents(events, schedule.ExpandOptions{
		StartKey:  "2026-01-01",
		EndKey:    "2026-01-14",
		Overrides: overrideMap,
		Clock:     schedule.FixedCivilClock("2026-01-01"),
	})

	// the unresolvable event never reaches date-keyed output
	for key, occurrences := range result.GroupedEvents {
		for _, occurrence := range occurrences {
			if occurrence.Event.ID == "no-schedule" {
				t.Errorf("unknown event appeared on %s", key)
			}
		}
	}

	patched := result.GroupedEvents["2026-01-08"]
	if len(patched) != 1 {
		t.Fatalf("expected one occurrence on the patched date, got %d", len(patched))
	}
	if patched[0].StartTime != "20:00" || patched[0].Event.Title != "Open Mic (late start)" {
		t.Errorf("override not merged into occurrence: %+v", patched[0])
	}

	// other dates keep template values
	plain := result.GroupedEvents["2026-01-01"]
	if len(plain) != 1 || plain[0].StartTime != "19:00" || plain[0].Event.Title != "Thursday Open Mic" {
		t.Errorf("template occurrence polluted by override: %+v", plain)
	}
}

func TestExpandAndGroupEventsCaps(t *testing.T) {
	// case: per-event max_occurrences truncates but still returns a result
	func() {
		eventModel := model.Event{
			ID:             "capped",
			Title:          "Capped",
			DayOfWeek:      "monday",
			RecurrenceRule: model.RecurrenceWeekly,
			MaxOccurrences: 2,
		}
		result := schedule.ExpandAndGroupEvents([]model.Event{eventModel}, schedule.ExpandOptions{
			StartKey: "2026-01-01",
			EndKey:   "2026-03-31",
			Clock:    schedule.FixedCivilClock("2026-01-01"),
		})
		if result.Metrics.OccurrencesGenerated != 2 {
			t.Errorf("expected 2 occurrences, got %d", result.Metrics.OccurrencesGenerated)
		}
		if !result.Metrics.WasCapped {
			t.Error("expected wasCapped to be set")
		}
	}()

	// case: global maxEvents stops walking the event list
	func() {
		events := []model.Event{
			{ID: "a", Title: "A", DayOfWeek: "monday", RecurrenceRule: model.RecurrenceWeekly},
			{ID: "b", Title: "B", DayOfWeek: "tuesday", RecurrenceRule: model.RecurrenceWeekly},
			{ID: "c", Title: "C", DayOfWeek: "wednesday", RecurrenceRule: model.RecurrenceWeekly},
		}
		result := schedule.ExpandAndGroupEvents(events, schedule.ExpandOptions{
			StartKey:  "2026-01-05",
			EndKey:    "2026-01-11",
			MaxEvents: 2,
			Clock:     schedule.FixedCivilClock("2026-01-05"),
		})
		if result.Metrics.EventsProcessed != 2 {
			t.Errorf("expected 2 events processed, got %d", result.Metrics.EventsProcessed)
		}
		if !result.Metrics.WasCapped {
			t.Error("expected wasCapped to be set")
		}
		if len(result.GroupedEvents["2026-01-07"]) != 0 {
			t.Error("event past the cap still produced occurrences")
		}
	}()
}
