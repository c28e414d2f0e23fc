package route

import (
	"encoding/json"
	"net/http"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/metric"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/utils"
)

func Series(muxer *http.ServeMux, as *utils.AppState) {
	// one row per series, next-occurrence-first, with a capped preview of
	// upcoming dates (cancelled ones kept inline)
	muxer.HandleFunc("GET /api/series", func(w http.ResponseWriter, r *http.Request) {
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

		result := schedule.GroupEventsAsSeriesView(events, schedule.ExpandOptions{
			StartKey:       startKey,
			EndKey:         endKey,
			MaxOccurrences: as.Config.GetMaxOccurrences(),
			MaxEvents:      as.Config.GetMaxEvents(),
			Overrides:      schedule.BuildOverrideMap(overrides),
			Clock:          as.Clock,
		})
		metric.ObserveExpansion("series", result.Metrics)

		respBodyJson, err := json.Marshal(result)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"can't marshal response body"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})
}
