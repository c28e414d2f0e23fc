package route

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/metric"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/utils"
)

func Timeline(muxer *http.ServeMux, as *utils.AppState) {
	type OneDayRespBody struct {
		DateKey     string                `json:"dateKey"`
		Occurrences []schedule.Occurrence `json:"occurrences"`
	}

	type TimelineRespBody struct {
		Days      []OneDayRespBody      `json:"days"`
		Cancelled []schedule.Occurrence `json:"cancelled"`
		Metrics   schedule.Metrics      `json:"metrics"`
	}

	// cancel-aware calendar view: active occurrences grouped by date,
	// cancelled ones listed separately
	muxer.HandleFunc("GET /api/timeline", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		startKey, endKey, err := resolveWindow(as, r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid date parameters"}`))
			return
		}

		events, overrides, ok := loadEventSnapshot(w, r, as)
		if !ok {
			return
		}

		result := schedule.ExpandAndGroupEvents(events, schedule.ExpandOptions{
			StartKey:       startKey,
			EndKey:         endKey,
			MaxOccurrences: as.Config.GetMaxOccurrences(),
			MaxEvents:      as.Config.GetMaxEvents(),
			Overrides:      schedule.BuildOverrideMap(overrides),
			Clock:          as.Clock,
		})
		metric.ObserveExpansion("timeline", result.Metrics)

		respBody := TimelineRespBody{
			Days:      make([]OneDayRespBody, 0, len(result.GroupedEvents)),
			Cancelled: result.CancelledOccurrences,
			Metrics:   result.Metrics,
		}
		for dateKey, occurrences := range result.GroupedEvents {
			respBody.Days = append(respBody.Days, OneDayRespBody{
				DateKey:     dateKey,
				Occurrences: occurrences,
			})
		}
		sort.Slice(respBody.Days, func(i, j int) bool {
			return respBody.Days[i].DateKey < respBody.Days[j].DateKey
		})

		respBodyJson, err := json.Marshal(respBody)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"can't marshal response body"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})
}

// loadEventSnapshot reads the immutable input snapshot for one expansion.
// Writes an error response and returns ok=false on failure.
func loadEventSnapshot(w http.ResponseWriter, r *http.Request, as *utils.AppState) ([]model.Event, []model.EventOverride, bool) {
	events, err := model.GetPublishedEvents(r.Context(), as.BunDB)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"can't get events"}`))
		return nil, nil, false
	}

	eventIDs := make([]string, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}
	overrides, err := model.GetOverridesForEvents(r.Context(), as.BunDB, eventIDs)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"can't get overrides"}`))
		return nil, nil, false
	}

	return events, overrides, true
}
