package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Closing metrics
	ClosingsCompleted prometheus.Counter
	ClosingErrors     *prometheus.CounterVec
	ClosingDuration   prometheus.Histogram
	ClosingNetProfit  prometheus.Histogram

	// Period guard metrics
	GuardRejections *prometheus.CounterVec

	// Movement metrics
	ReadingsRecorded prometheus.Counter
	ExpensesRecorded prometheus.Counter
	AdvancesRecorded prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics
	SummaryCacheHits   prometheus.Counter
	SummaryCacheMisses prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Closing metrics
		ClosingsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fechamento_closings_completed_total",
			Help: "Total number of monthly closings completed",
		}),
		ClosingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fechamento_closing_errors_total",
				Help: "Total number of closing errors by type",
			},
			[]string{"error_type"},
		),
		ClosingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fechamento_closing_duration_seconds",
			Help:    "Duration of closing operations",
			Buckets: prometheus.DefBuckets,
		}),
		ClosingNetProfit: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fechamento_closing_net_profit",
			Help:    "Net profit distributed per closing",
			Buckets: []float64{-10000, -1000, 0, 100, 1000, 10000, 100000},
		}),

		// Period guard metrics
		GuardRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fechamento_guard_rejections_total",
				Help: "Total writes rejected because the period was closed",
			},
			[]string{"operation"},
		),

		// Movement metrics
		ReadingsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fechamento_readings_recorded_total",
			Help: "Total number of meter readings recorded",
		}),
		ExpensesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fechamento_expenses_recorded_total",
			Help: "Total number of expenses recorded",
		}),
		AdvancesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fechamento_advances_recorded_total",
			Help: "Total number of advances recorded",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fechamento_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fechamento_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Cache metrics
		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fechamento_summary_cache_hits_total",
			Help: "Total period summary cache hits",
		}),
		SummaryCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fechamento_summary_cache_misses_total",
			Help: "Total period summary cache misses",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fechamento_rate_limit_hits_total",
				Help: "Total rate limit rejections",
			},
			[]string{"path"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fechamento_audit_logs_created_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
