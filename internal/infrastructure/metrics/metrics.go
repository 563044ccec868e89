package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	TransactionsRecorded   *prometheus.CounterVec
	ObligationsProcessed   prometheus.Counter
	NotificationsGenerated *prometheus.CounterVec
	GoalAllocations        prometheus.Counter
	AchievementsEarned     prometheus.Counter
	ForecastRequests       prometheus.Histogram

	// Snapshot metrics
	SnapshotSaves        *prometheus.CounterVec
	SnapshotLoadDuration prometheus.Histogram
	SnapshotSize         prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finplan_transactions_recorded_total",
				Help: "Total transactions recorded by type",
			},
			[]string{"type"},
		),
		ObligationsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finplan_obligations_processed_total",
			Help: "Total recurring obligations materialized into transactions",
		}),
		NotificationsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finplan_notifications_generated_total",
				Help: "Total notifications generated by type",
			},
			[]string{"type"},
		),
		GoalAllocations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finplan_goal_allocations_total",
			Help: "Total auto-allocation runs that moved money",
		}),
		AchievementsEarned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finplan_achievements_earned_total",
			Help: "Total achievements earned",
		}),
		ForecastRequests: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finplan_forecast_duration_seconds",
			Help:    "Duration of cash flow projections",
			Buckets: prometheus.DefBuckets,
		}),

		SnapshotSaves: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finplan_snapshot_saves_total",
				Help: "Total snapshot save attempts by outcome",
			},
			[]string{"outcome"},
		),
		SnapshotLoadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finplan_snapshot_load_duration_seconds",
			Help:    "Duration of snapshot loads",
			Buckets: prometheus.DefBuckets,
		}),
		SnapshotSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "finplan_snapshot_size_bytes",
			Help: "Size of the last saved snapshot",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finplan_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finplan_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finplan_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
