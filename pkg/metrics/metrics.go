package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus instruments, registered on a
// private registry so the /metrics endpoint only exposes what we own.
type Metrics struct {
	Registry *prometheus.Registry

	BookingsCreated    *prometheus.CounterVec
	CapacityRejections prometheus.Counter
	PoolRegistrations  prometheus.Counter
	PoolWithdrawals    prometheus.Counter
	PoolsAutoClosed    prometheus.Counter
	Substitutions      prometheus.Counter
	HTTPDuration       *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "club_bookings_created_total",
			Help: "Bookings created, by kind.",
		}, []string{"kind"}),
		CapacityRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "club_capacity_rejections_total",
			Help: "Booking writes rejected because the slot had too few rinks left.",
		}),
		PoolRegistrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "club_pool_registrations_total",
			Help: "Successful pool registrations.",
		}),
		PoolWithdrawals: factory.NewCounter(prometheus.CounterOpts{
			Name: "club_pool_withdrawals_total",
			Help: "Successful pool withdrawals.",
		}),
		PoolsAutoClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "club_pools_auto_closed_total",
			Help: "Pools closed by the auto-close sweep.",
		}),
		Substitutions: factory.NewCounter(prometheus.CounterOpts{
			Name: "club_substitutions_total",
			Help: "Roster substitutions recorded.",
		}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "club_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
