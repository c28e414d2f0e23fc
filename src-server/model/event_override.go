package model

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

const (
	OverrideStatusNormal    = "normal"
	OverrideStatusCancelled = "cancelled"
)

// EventOverride is a per-occurrence exception: it cancels or field-patches
// exactly one date of a series without touching the template. At most one
// row exists per (event_id, date_key); Upsert enforces that.
type EventOverride struct {
	bun.BaseModel `bun:"table:event_overrides"`

	EventID string `bun:"event_id,notnull"`
	DateKey string `bun:"date_key,notnull"` // YYYY-MM-DD
	Status  string `bun:"status,notnull"`   // normal | cancelled

	// legacy single-purpose columns, applied only when non-blank; superseded
	// by override_patch but still honored for rows written before it existed
	OverrideStartTime     string `bun:"override_start_time"`
	OverrideCoverImageURL string `bun:"override_cover_image_url"`
	OverrideNotes         string `bun:"override_notes"`

	// JSON object of field name -> value; an explicit null clears the field.
	// Keys outside the schedule package's allowlist are ignored on read.
	OverridePatch string `bun:"override_patch"`

	CreatedAt int64 `bun:"created_at,notnull"`
	UpdatedAt int64 `bun:"updated_at"`
}

// Patch decodes the override_patch column. A blank column, malformed JSON,
// or a JSON value that isn't an object all come back as nil; the caller
// treats that as "no patch" rather than an error.
func (o *EventOverride) Patch() map[string]any {
	if o.OverridePatch == "" {
		return nil
	}
	patch := make(map[string]any)
	if err := json.Unmarshal([]byte(o.OverridePatch), &patch); err != nil {
		return nil
	}
	return patch
}

func (o *EventOverride) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case o.EventID == "":
		return fmt.Errorf("(*EventOverride).Upsert: event id is blank")
	case o.DateKey == "":
		return fmt.Errorf("(*EventOverride).Upsert: date key is blank")
	case o.Status != OverrideStatusNormal && o.Status != OverrideStatusCancelled:
		return fmt.Errorf("(*EventOverride).Upsert: invalid status %q", o.Status)
	}
	if _, err := time.Parse("2006-01-02", o.DateKey); err != nil {
		return fmt.Errorf("(*EventOverride).Upsert: date key is invalid: %w", err)
	}
	if o.OverridePatch != "" {
		patch := make(map[string]any)
		if err := json.Unmarshal([]byte(o.OverridePatch), &patch); err != nil {
			return fmt.Errorf("(*EventOverride).Upsert: override patch is not a JSON object: %w", err)
		}
	}

	// the template must exist; an override against a deleted series is a bug
	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", o.EventID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*EventOverride).Upsert: %w", err)
	}
	if !exists {
		return fmt.Errorf("(*EventOverride).Upsert: event id not found")
	}

	if o.CreatedAt == 0 {
		o.CreatedAt = time.Now().UTC().Unix()
	}

	rowExists, err := db.NewSelect().
		Model((*EventOverride)(nil)).
		Where("event_id = ?", o.EventID).
		Where("date_key = ?", o.DateKey).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*EventOverride).Upsert: %w", err)
	}

	switch rowExists {
	case true:
		o.UpdatedAt = time.Now().UTC().Unix()
		if _, err := db.NewUpdate().
			Model(o).
			Where("event_id = ?", o.EventID).
			Where("date_key = ?", o.DateKey).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*EventOverride).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(o).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*EventOverride).Upsert: %w", err)
		}
	}

	return nil
}
