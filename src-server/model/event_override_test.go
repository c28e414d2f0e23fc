package model_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
)

func TestEventOverrideUpsert(t *testing.T) {
	bundb := newTestDB(t)

	eventModel := model.Event{
		ID:             uuid.NewString(),
		Title:          "Thursday Open Mic",
		DayOfWeek:      "thursday",
		RecurrenceRule: model.RecurrenceWeekly,
		IsPublished:    true,
	}
	if err := eventModel.Upsert(context.Background(), bundb); err != nil {
		t.Error(err)
	}

	overrideModel := model.EventOverride{
		EventID:       eventModel.ID,
		DateKey:       "2026-01-08",
		Status:        model.OverrideStatusNormal,
		OverridePatch: `{"start_time":"20:00"}`,
	}
	if err := overrideModel.Upsert(context.Background(), bundb); err != nil {
		t.Error(err)
	}

	// a second upsert for the same (event_id, date_key) updates in place
	overrideModel.Status = model.OverrideStatusCancelled
	if err := overrideModel.Upsert(context.Background(), bundb); err != nil {
		t.Error(err)
	}
	count, err := bundb.NewSelect().Model((*model.EventOverride)(nil)).Count(context.Background())
	if err != nil {
		t.Error(err)
	}
	if count != 1 {
		t.Errorf("expected 1 override row, got %d", count)
	}

	overrides, err := model.GetOverridesForEvents(context.Background(), bundb, []string{eventModel.ID})
	if err != nil {
		t.Error(err)
	}
	if len(overrides) != 1 || overrides[0].Status != model.OverrideStatusCancelled {
		t.Errorf("unexpected override rows: %+v", overrides)
	}

	// a different date on the same series is a second row
	secondDate := model.EventOverride{
		EventID: eventModel.ID,
		DateKey: "2026-01-15",
		Status:  model.OverrideStatusNormal,
	}
	if err := secondDate.Upsert(context.Background(), bundb); err != nil {
		t.Error(err)
	}
	overrides, err = model.GetOverridesForEvents(context.Background(), bundb, []string{eventModel.ID})
	if err != nil {
		t.Error(err)
	}
	if len(overrides) != 2 {
		t.Errorf("expected 2 override rows, got %d", len(overrides))
	}
}

func TestEventOverrideUpsertValidation(t *testing.T) {
	bundb := newTestDB(t)

	eventModel := model.Event{
		ID:        uuid.NewString(),
		Title:     "Showcase",
		EventDate: "2026-02-14",
	}
	if err := eventModel.Upsert(context.Background(), bundb); err != nil {
		t.Error(err)
	}

	for name, overrideModel := range map[string]model.EventOverride{
		"blank event id": {DateKey: "2026-02-14", Status: model.OverrideStatusNormal},
		"blank date key": {EventID: eventModel.ID, Status: model.OverrideStatusNormal},
		"bad date key":   {EventID: eventModel.ID, DateKey: "Feb 14", Status: model.OverrideStatusNormal},
		"bad status":     {EventID: eventModel.ID, DateKey: "2026-02-14", Status: "postponed"},
		"bad patch":      {EventID: eventModel.ID, DateKey: "2026-02-14", Status: model.OverrideStatusNormal, OverridePatch: `[1,2]`},
		"missing event":  {EventID: uuid.NewString(), DateKey: "2026-02-14", Status: model.OverrideStatusNormal},
	} {
		if err := overrideModel.Upsert(context.Background(), bundb); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestEventOverridePatch(t *testing.T) {
	// case: blank column means no patch
	func() {
		overrideModel := model.EventOverride{}
		if overrideModel.Patch() != nil {
			t.Error("blank column should decode to nil")
		}
	}()

	// case: a valid object round-trips
	func() {
		overrideModel := model.EventOverride{OverridePatch: `{"title":"X","capacity":null}`}
		patch := overrideModel.Patch()
		if patch == nil {
			t.Fatal("valid object decoded to nil")
		}
		if patch["title"] != "X" {
			t.Errorf("unexpected title value %v", patch["title"])
		}
		if value, ok := patch["capacity"]; !ok || value != nil {
			t.Error("explicit null should survive as a present nil value")
		}
	}()

	// case: anything that isn't an object decodes to nil
	func() {
		for _, raw := range []string{`null`, `[1,2,3]`, `"weekly"`, `{broken`} {
			overrideModel := model.EventOverride{OverridePatch: raw}
			if overrideModel.Patch() != nil {
				t.Errorf("%q should decode to nil", raw)
			}
		}
	}()
}
