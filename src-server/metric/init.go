package metric

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/utils"
)

func databaseEmptyRead(as *utils.AppState, tickerInterval time.Duration) {
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dsc_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	databaseEmptyRead.Set(0)

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gracefulShutdownCh:
				switch prometheus.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("dsc_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("dsc_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func Init(as *utils.AppState) {
	databaseEmptyRead(as, as.Config.GetMetricCollectionInterval())
}
