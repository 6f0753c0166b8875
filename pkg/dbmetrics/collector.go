package dbmetrics

import (
	"database/sql"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/pkg/metrics"
)

const defaultPoolStatsInterval = 15 * time.Second

// StartPoolStatsCollector periodically publishes connection pool stats until
// stopCh is closed.
func StartPoolStatsCollector(db *sql.DB, m *metrics.Metrics, interval time.Duration, stopCh <-chan struct{}) {
	if m == nil {
		return
	}
	if interval <= 0 {
		interval = defaultPoolStatsInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.SetDBConnections(stats.OpenConnections, stats.InUse, stats.Idle)
			case <-stopCh:
				return
			}
		}
	}()
}
