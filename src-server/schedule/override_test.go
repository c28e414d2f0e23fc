package schedule_test

import (
	"reflect"
	"testing"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
)

func baseEvent() model.Event {
	return model.Event{
		ID:             "open-mic",
		Title:          "Thursday Open Mic",
		Description:    "Bring two songs",
		DayOfWeek:      "thursday",
		RecurrenceRule: model.RecurrenceWeekly,
		StartTime:      "19:00",
		EndTime:        "22:00",
		VenueName:      "The Walnut Room",
		Capacity:       30,
		Cost:           "Free",
		HostNotes:      "Sign up at the door",
		IsPublished:    true,
	}
}

func TestApplyOccurrenceOverrideWithoutOverride(t *testing.T) {
	eventModel := baseEvent()
	merged := schedule.ApplyOccurrenceOverride(&eventModel, nil)

	if !reflect.DeepEqual(merged, eventModel) {
		t.Error("merged event without override should equal the base event")
	}

	// a new value, not a view over the base
	merged.Title = "changed"
	if eventModel.Title != "Thursday Open Mic" {
		t.Error("mutating the merged event leaked into the base event")
	}
}

func TestApplyOccurrenceOverrideLegacyFields(t *testing.T) {
	eventModel := baseEvent()
	override := model.EventOverride{
		EventID:               eventModel.ID,
		DateKey:               "2026-01-08",
		Status:                model.OverrideStatusNormal,
		OverrideStartTime:     "20:00",
		OverrideCoverImageURL: "https://img.example.com/special.jpg",
		OverrideNotes:         "Holiday edition, sign up online",
	}

	merged := schedule.ApplyOccurrenceOverride(&eventModel, &override)
	if merged.StartTime != "20:00" {
		t.Errorf("expected legacy start time to apply, got %q", merged.StartTime)
	}
	if merged.CoverImageURL != "https://img.example.com/special.jpg" {
		t.Errorf("expected legacy cover image to apply, got %q", merged.CoverImageURL)
	}
	if merged.HostNotes != "Holiday edition, sign up online" {
		t.Errorf("expected legacy notes to apply, got %q", merged.HostNotes)
	}
	// untouched fields keep base values
	if merged.Title != eventModel.Title || merged.EndTime != eventModel.EndTime {
		t.Error("legacy override changed unrelated fields")
	}
}

func TestApplyOccurrenceOverridePatch(t *testing.T) {
	// case: a single-key patch leaves every other field alone
	func() {
		eventModel := baseEvent()
		override := model.EventOverride{OverridePatch: `{"title":"X"}`}
		merged := schedule.ApplyOccurrenceOverride(&eventModel, &override)
		if merged.Title != "X" {
			t.Errorf("expected patched title, got %q", merged.Title)
		}
		expected := eventModel
		expected.Title = "X"
		if !reflect.DeepEqual(merged, expected) {
			t.Error("patch changed fields beyond its keys")
		}
	}()

	// case: patch wins over legacy columns for the same field
	func() {
		eventModel := baseEvent()
		override := model.EventOverride{
			OverrideStartTime: "20:00",
			OverridePatch:     `{"start_time":"20:30"}`,
		}
		merged := schedule.ApplyOccurrenceOverride(&eventModel, &override)
		if merged.StartTime != "20:30" {
			t.Errorf("expected patch to win over legacy, got %q", merged.StartTime)
		}
	}()

	// case: explicit null clears the field, absent key leaves it
	func() {
		eventModel := baseEvent()
		override := model.EventOverride{OverridePatch: `{"description":null,"capacity":null}`}
		merged := schedule.ApplyOccurrenceOverride(&eventModel, &override)
		if merged.Description != "" {
			t.Errorf("expected null to clear description, got %q", merged.Description)
		}
		if merged.Capacity != 0 {
			t.Errorf("expected null to clear capacity, got %d", merged.Capacity)
		}
		if merged.HostNotes != eventModel.HostNotes {
			t.Error("absent patch key changed host notes")
		}
	}()

	// case: series-identity keys never apply, even when present
	func() {
		eventModel := baseEvent()
		override := model.EventOverride{
			OverridePatch: `{"recurrence_rule":"weekly","day_of_week":"monday","max_occurrences":1,"event_type":"showcase"}`,
		}
		merged := schedule.ApplyOccurrenceOverride(&eventModel, &override)
		if !reflect.DeepEqual(merged, eventModel) {
			t.Error("out-of-allowlist patch keys changed the merged result")
		}
	}()

	// case: malformed patches are ignored entirely
	func() {
		for _, patch := range []string{`null`, `[1,2,3]`, `"weekly"`, `{broken`} {
			eventModel := baseEvent()
			override := model.EventOverride{
				OverrideStartTime: "20:00",
				OverridePatch:     patch,
			}
			merged := schedule.ApplyOccurrenceOverride(&eventModel, &override)
			if merged.StartTime != "20:00" {
				t.Errorf("patch %q: legacy override should still apply, got %q", patch, merged.StartTime)
			}
			expected := eventModel
			expected.StartTime = "20:00"
			if !reflect.DeepEqual(merged, expected) {
				t.Errorf("patch %q: malformed patch changed fields", patch)
			}
		}
	}()

	// case: wrong-typed values are dropped, prior value survives
	func() {
		eventModel := baseEvent()
		override := model.EventOverride{OverridePatch: `{"capacity":"thirty","title":12}`}
		merged := schedule.ApplyOccurrenceOverride(&eventModel, &override)
		if merged.Capacity != eventModel.Capacity || merged.Title != eventModel.Title {
			t.Error("wrong-typed patch values should be dropped")
		}
	}()
}

func TestApplyOccurrenceOverrideStatusDoesNotTouchFields(t *testing.T) {
	eventModel := baseEvent()
	override := model.EventOverride{Status: model.OverrideStatusCancelled}
	merged := schedule.ApplyOccurrenceOverride(&eventModel, &override)
	if !reflect.DeepEqual(merged, eventModel) {
		t.Error("cancellation status alone should not change field values")
	}
}

func TestBuildOverrideMap(t *testing.T) {
	overrides := []model.EventOverride{
		{EventID: "a", DateKey: "2026-01-07", Status: model.OverrideStatusNormal},
		{EventID: "a", DateKey: "2026-01-14", Status: model.OverrideStatusNormal},
		{EventID: "a", DateKey: "2026-01-07", Status: model.OverrideStatusCancelled},
		{EventID: "b", DateKey: "2026-01-07", Status: model.OverrideStatusNormal},
	}
	overrideMap := schedule.BuildOverrideMap(overrides)

	if len(overrideMap) != 3 {
		t.Errorf("expected 3 entries, got %d", len(overrideMap))
	}
	// later rows win on duplicate composite keys
	if got := overrideMap[schedule.OverrideKey("a", "2026-01-07")]; got == nil || got.Status != model.OverrideStatusCancelled {
		t.Error("expected the later duplicate row to win")
	}
	if overrideMap[schedule.OverrideKey("b", "2026-01-14")] != nil {
		t.Error("lookup is exact match only")
	}
}
