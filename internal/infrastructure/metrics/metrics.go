package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	DepositsTotal          prometheus.Counter
	WithdrawalsTotal       prometheus.Counter
	InternalTransfersTotal prometheus.Counter
	MovementAmount         prometheus.Histogram

	// Send-money metrics
	TransfersInitiated prometheus.Counter
	TransfersSettled   prometheus.Counter
	TransfersDeclined  prometheus.Counter

	// User metrics
	UsersRegistered prometheus.Counter
	AuthAttempts    *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors      *prometheus.CounterVec
	DBConnections prometheus.Gauge

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		DepositsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pennybank_deposits_total",
			Help: "Total number of completed deposits",
		}),
		WithdrawalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pennybank_withdrawals_total",
			Help: "Total number of completed withdrawals",
		}),
		InternalTransfersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pennybank_internal_transfers_total",
			Help: "Total number of transfers between a user's own accounts",
		}),
		MovementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pennybank_movement_amount",
			Help:    "Amounts moved by deposits, withdrawals and internal transfers",
			Buckets: []float64{1, 10, 100, 500, 1000, 2000, 5000, 10000},
		}),

		// Send-money metrics
		TransfersInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pennybank_transfers_initiated_total",
			Help: "Total number of pending transfers created",
		}),
		TransfersSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pennybank_transfers_settled_total",
			Help: "Total number of transfers accepted and settled",
		}),
		TransfersDeclined: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pennybank_transfers_declined_total",
			Help: "Total number of transfers declined",
		}),

		// User metrics
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pennybank_users_registered_total",
			Help: "Total number of registered users",
		}),
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pennybank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pennybank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pennybank_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pennybank_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "pennybank_db_connections",
			Help: "Current number of database connections",
		}),

		// Outbox metrics
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pennybank_events_published_total",
			Help: "Total outbox events published",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pennybank_event_publish_errors_total",
			Help: "Total outbox publish failures",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pennybank_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
