package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters on a private registry
type Metrics struct {
	Registry *prometheus.Registry

	DonationsSubmitted prometheus.Counter
	DonationsRejected  prometheus.Counter
	DonationsDeleted   prometheus.Counter
	LoginAttempts      *prometheus.CounterVec
	StorageErrors      *prometheus.CounterVec
}

// New registers the service counters on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		DonationsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "donations_submitted_total",
			Help: "Donations accepted and stored.",
		}),
		DonationsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "donations_rejected_total",
			Help: "Donation submissions rejected by validation.",
		}),
		DonationsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "donations_deleted_total",
			Help: "Donations removed by an admin.",
		}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_login_attempts_total",
			Help: "Admin login attempts by result.",
		}, []string{"result"}),
		StorageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storage_errors_total",
			Help: "Persistence failures by operation.",
		}, []string{"op"}),
	}

	reg.MustRegister(
		m.DonationsSubmitted,
		m.DonationsRejected,
		m.DonationsDeleted,
		m.LoginAttempts,
		m.StorageErrors,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
