// Package metrics holds the Prometheus collectors of the console. All
// collectors register with the default registry on package init and are
// served by promhttp at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecomputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opsconsole_table_recompute_seconds",
			Help:    "Latency of table operations that re-derive the visible page.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"screen", "op"},
	)

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "opsconsole_table_sessions_active",
		Help: "Number of currently mounted tables.",
	})

	ExpiredSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsconsole_table_sessions_expired_total",
		Help: "Mounted tables dropped after their idle timeout.",
	})

	ActionsInvoked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsconsole_table_actions_total",
			Help: "Row actions invoked by screen, action and variant.",
		},
		[]string{"screen", "action", "variant"},
	)

	AccessorFaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsconsole_table_accessor_faults_total",
			Help: "Accessor faults contained while deriving a view.",
		},
		[]string{"screen"},
	)

	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsconsole_table_exports_total",
			Help: "CSV exports by screen and outcome.",
		},
		[]string{"screen", "outcome"},
	)

	DatasetRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsconsole_dataset_refreshes_total",
			Help: "Dataset reloads by outcome.",
		},
		[]string{"outcome"},
	)

	httpStatusCounters = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsconsole_http_status",
			Help: "Count of various http status.",
		},
		[]string{"status"},
	)
)

// Instrument starts a timer for one table operation. Call the returned
// function when the operation completes.
func Instrument(screen, op string) func() time.Duration {
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		RecomputeDuration.WithLabelValues(screen, op).Observe(v)
	}))
	return timer.ObserveDuration
}

// RecordHTTPStats counts responses by status code.
func RecordHTTPStats(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpStatusCounters.WithLabelValues(strconv.Itoa(status)).Inc()
	})
}
