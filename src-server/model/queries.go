package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// GetPublishedEvents reads every published series template. Order is fixed
// (created_at, then id) so repeated reads feed the schedule package the same
// input order and its output stays stable.
func GetPublishedEvents(ctx context.Context, db bun.IDB) ([]Event, error) {
	events := make([]Event, 0)
	if err := db.NewSelect().
		Model(&events).
		Where("is_published = ?", true).
		Order("created_at ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("GetPublishedEvents: %w", err)
	}
	return events, nil
}

// GetOverridesForEvents reads the override rows for a set of series, ordered
// so later duplicate rows (which shouldn't exist, but see
// schedule.BuildOverrideMap) win deterministically.
func GetOverridesForEvents(ctx context.Context, db bun.IDB, eventIDs []string) ([]EventOverride, error) {
	if len(eventIDs) == 0 {
		return []EventOverride{}, nil
	}
	overrides := make([]EventOverride, 0)
	if err := db.NewSelect().
		Model(&overrides).
		Where("event_id IN (?)", bun.In(eventIDs)).
		Order("event_id ASC", "date_key ASC", "created_at ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("GetOverridesForEvents: %w", err)
	}
	return overrides, nil
}
