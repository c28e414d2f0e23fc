package schedule

import (
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
)

// Per-occurrence-safe fields. Series-identity fields (event_type,
// recurrence_rule, day_of_week, custom_dates, max_occurrences) are
// permanently excluded: they can only change on the template.
var overridableFields = map[string]struct{}{
	"title":           {},
	"description":     {},
	"start_time":      {},
	"end_time":        {},
	"venue_name":      {},
	"address":         {},
	"city":            {},
	"capacity":        {},
	"signup_url":      {},
	"cost":            {},
	"cover_image_url": {},
	"host_notes":      {},
	"is_published":    {},
}

// OverrideKey builds the composite lookup key for one occurrence. Safe to
// concatenate because event IDs are uuids and date keys are YYYY-MM-DD,
// neither of which can contain the delimiter.
func OverrideKey(eventID string, dateKey string) string {
	return eventID + ":" + dateKey
}

// BuildOverrideMap indexes override rows by (event_id, date_key). The store
// keeps the pair unique, but if duplicates sneak in the later row wins.
func BuildOverrideMap(overrides []model.EventOverride) map[string]*model.EventOverride {
	index := make(map[string]*model.EventOverride, len(overrides))
	for i := range overrides {
		override := overrides[i]
		index[OverrideKey(override.EventID, override.DateKey)] = &override
	}
	return index
}

// ApplyOccurrenceOverride produces the effective field values of one
// occurrence. It always returns a new value and never mutates the input.
// Precedence, lowest to highest: template fields, legacy single-purpose
// override columns (only when non-blank), allowlisted override_patch
// entries. An explicit null in the patch clears the field; keys outside the
// allowlist and wrong-typed values are dropped without error. Cancellation
// status is tracked separately and never changes field values here.
func ApplyOccurrenceOverride(event *model.Event, override *model.EventOverride) model.Event {
	merged := *event
	if override == nil {
		return merged
	}

	if override.OverrideStartTime != "" {
		merged.StartTime = override.OverrideStartTime
	}
	if override.OverrideCoverImageURL != "" {
		merged.CoverImageURL = override.OverrideCoverImageURL
	}
	if override.OverrideNotes != "" {
		merged.HostNotes = override.OverrideNotes
	}

	for key, value := range override.Patch() {
		if _, ok := overridableFields[key]; !ok {
			continue
		}
		applyPatchField(&merged, key, value)
	}

	return merged
}

func applyPatchField(event *model.Event, key string, value any) {
	switch key {
	case "title":
		setString(&event.Title, value)
	case "description":
		setString(&event.Description, value)
	case "start_time":
		setString(&event.StartTime, value)
	case "end_time":
		setString(&event.EndTime, value)
	case "venue_name":
		setString(&event.VenueName, value)
	case "address":
		setString(&event.Address, value)
	case "city":
		setString(&event.City, value)
	case "capacity":
		setInt(&event.Capacity, value)
	case "signup_url":
		setString(&event.SignupURL, value)
	case "cost":
		setString(&event.Cost, value)
	case "cover_image_url":
		setString(&event.CoverImageURL, value)
	case "host_notes":
		setString(&event.HostNotes, value)
	case "is_published":
		setBool(&event.IsPublished, value)
	}
}

// The setters apply an explicit null as "clear" and skip values of the
// wrong type, leaving the prior value untouched.

func setString(target *string, value any) {
	switch v := value.(type) {
	case nil:
		*target = ""
	case string:
		*target = v
	}
}

func setInt(target *int, value any) {
	switch v := value.(type) {
	case nil:
		*target = 0
	case float64: // encoding/json decodes numbers as float64
		*target = int(v)
	case int:
		*target = v
	}
}

func setBool(target *bool, value any) {
	switch v := value.(type) {
	case nil:
		*target = false
	case bool:
		*target = v
	}
}
