package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "budget_monitor"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	cyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cycle",
			Name:      "runs_total",
			Help:      "Total number of monitoring cycles per platform",
		},
		[]string{"platform", "status"},
	)

	cycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cycle",
			Name:      "duration_seconds",
			Help:      "Duration of a monitoring cycle in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200},
		},
		[]string{"platform"},
	)

	lastCycleSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cycle",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful cycle",
		},
		[]string{"platform"},
	)

	campaignsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "campaigns_total",
			Help:      "Total number of campaigns fetched from the ad platforms",
		},
		[]string{"platform"},
	)

	fetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "account_errors_total",
			Help:      "Total number of accounts whose fetch failed",
		},
		[]string{"platform"},
	)

	anomaliesDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "detector",
			Name:      "anomalies_total",
			Help:      "Total number of anomalies detected",
		},
		[]string{"platform", "category"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "notifications_total",
			Help:      "Total number of alert cards sent",
		},
		[]string{"platform", "status"},
	)

	acknowledgmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "acknowledgment",
			Name:      "anomalies_total",
			Help:      "Total number of anomalies acknowledged",
		},
		[]string{"false_positive"},
	)

	accountSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "account",
			Name:      "sync_total",
			Help:      "Total number of account syncs",
		},
		[]string{"platform", "status"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Instrument registra métricas HTTP usando o padrão da rota como rótulo, para
// que ids na URL não criem séries novas.
func Instrument(path string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			status := strconv.Itoa(wrapped.statusCode)
			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordCycle(platform, status string, duration time.Duration) {
	cyclesTotal.WithLabelValues(platform, status).Inc()
	cycleDuration.WithLabelValues(platform).Observe(duration.Seconds())
	if status == StatusSuccess {
		lastCycleSuccess.WithLabelValues(platform).SetToCurrentTime()
	}
}

func RecordCampaignsFetched(platform string, count int) {
	campaignsFetched.WithLabelValues(platform).Add(float64(count))
}

func RecordFetchError(platform string) {
	fetchErrors.WithLabelValues(platform).Inc()
}

func RecordAnomaly(platform, category string) {
	anomaliesDetected.WithLabelValues(platform, category).Inc()
}

func RecordNotification(platform, status string) {
	notificationsTotal.WithLabelValues(platform, status).Inc()
}

func RecordAcknowledgment(count int64, falsePositive bool) {
	acknowledgmentsTotal.WithLabelValues(strconv.FormatBool(falsePositive)).Add(float64(count))
}

func RecordAccountSync(platform, status string) {
	accountSyncTotal.WithLabelValues(platform, status).Inc()
}

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
