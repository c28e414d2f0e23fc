package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
)

var (
	expansionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dsc_expansions_total",
		Help: "Number of occurrence expansions served, by view",
	}, []string{"view"})

	occurrencesGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dsc_occurrences_generated_total",
		Help: "Number of occurrences generated across all expansions, by view",
	}, []string{"view"})

	cancelledOccurrencesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dsc_cancelled_occurrences_total",
		Help: "Number of cancelled occurrences encountered, by view",
	}, []string{"view"})

	cappedExpansionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dsc_capped_expansions_total",
		Help: "Number of expansions that hit an event or occurrence cap, by view",
	}, []string{"view"})
)

// ObserveExpansion records one engine invocation. view is "timeline",
// "series" or "ical".
func ObserveExpansion(view string, m schedule.Metrics) {
	expansionsTotal.WithLabelValues(view).Inc()
	occurrencesGeneratedTotal.WithLabelValues(view).Add(float64(m.OccurrencesGenerated))
	cancelledOccurrencesTotal.WithLabelValues(view).Add(float64(m.CancelledCount))
	if m.WasCapped {
		cappedExpansionsTotal.WithLabelValues(view).Inc()
	}
}
