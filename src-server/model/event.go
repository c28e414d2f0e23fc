package model

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Recognized recurrence_rule values. Anything else is treated as an
// ordinal-monthly expression ("2nd thursday", "last friday") and parsed by
// the schedule package; expressions it can't parse land in the unknown
// bucket rather than erroring.
const (
	RecurrenceWeekly = "weekly"
	RecurrenceCustom = "custom"
)

// Event is the recurring template ("series") for a community happening: an
// open mic, a showcase, a song circle. Concrete calendar instances are never
// stored; the schedule package expands them on demand.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string `bun:"id,pk,notnull"` // required, uuid
	Title       string `bun:"title,notnull"` // required
	Description string `bun:"description"`
	EventType   string `bun:"event_type"` // open_mic, showcase, song_circle, workshop

	// scheduling descriptor; exactly one of event_date alone or
	// day_of_week+recurrence_rule drives expansion
	EventDate      string `bun:"event_date"`      // YYYY-MM-DD, one-time events
	DayOfWeek      string `bun:"day_of_week"`     // lowercase weekday name
	RecurrenceRule string `bun:"recurrence_rule"` // "", "weekly", "custom", or ordinal expression
	CustomDates    string `bun:"custom_dates"`    // comma-joined YYYY-MM-DD keys
	MaxOccurrences int    `bun:"max_occurrences"` // 0 = uncapped

	StartTime string `bun:"start_time"` // HH:MM, 24h
	EndTime   string `bun:"end_time"`

	VenueName string `bun:"venue_name"`
	Address   string `bun:"address"`
	City      string `bun:"city"`

	Capacity  int    `bun:"capacity"` // 0 = unlimited
	SignupURL string `bun:"signup_url"`
	Cost      string `bun:"cost"`

	CoverImageURL string `bun:"cover_image_url"`
	HostNotes     string `bun:"host_notes"`
	IsPublished   bool   `bun:"is_published"`

	CreatedAt int64 `bun:"created_at,notnull"`
	UpdatedAt int64 `bun:"updated_at"`
}

// CustomDateKeys splits the stored custom_dates column into a sorted,
// deduplicated list of date keys. Upsert normalizes the column, but callers
// get the guarantee regardless of what's in the database.
func (e *Event) CustomDateKeys() []string {
	if e.CustomDates == "" {
		return nil
	}
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, raw := range strings.Split(e.CustomDates, ",") {
		key := strings.TrimSpace(raw)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Upsert: event id is blank")
	case e.Title == "":
		return fmt.Errorf("(*Event).Upsert: title is blank")
	case e.EventDate != "":
		if _, err := time.Parse("2006-01-02", e.EventDate); err != nil {
			return fmt.Errorf("(*Event).Upsert: event date is invalid: %w", err)
		}
	case e.RecurrenceRule == RecurrenceCustom && e.CustomDates == "":
		return fmt.Errorf("(*Event).Upsert: custom recurrence without custom dates")
	case e.SignupURL != "":
		if _, err := url.ParseRequestURI(e.SignupURL); err != nil {
			return fmt.Errorf("(*Event).Upsert: signup url is invalid: %w", err)
		}
	}
	if e.StartTime != "" {
		if _, err := time.Parse("15:04", e.StartTime); err != nil {
			return fmt.Errorf("(*Event).Upsert: start time is invalid: %w", err)
		}
	}
	if e.EndTime != "" {
		if _, err := time.Parse("15:04", e.EndTime); err != nil {
			return fmt.Errorf("(*Event).Upsert: end time is invalid: %w", err)
		}
	}

	// normalize custom dates at the write boundary so readers never have to
	e.CustomDates = strings.Join(e.CustomDateKeys(), ",")
	e.DayOfWeek = strings.ToLower(strings.TrimSpace(e.DayOfWeek))
	e.RecurrenceRule = strings.ToLower(strings.TrimSpace(e.RecurrenceRule))

	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().UTC().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	switch exists {
	case true:
		e.UpdatedAt = time.Now().UTC().Unix()
		if _, err := db.NewUpdate().
			Model(e).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(e).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}

	return nil
}
