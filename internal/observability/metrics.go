package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// BlogReadEvents counts successful blog read-and-increment operations.
	BlogReadEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_blog_read_events_total",
		Help: "Total number of blog read events recorded",
	})

	// SecondaryPhaseFailures counts failures of the best-effort author-side
	// update that follows a committed blog write. Each failure leaves the
	// author's denormalized counters stale until a reconcile pass runs.
	SecondaryPhaseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_secondary_phase_failures_total",
		Help: "Total number of author counter updates that failed after the primary write committed",
	}, []string{"phase"})
)

// Secondary phase labels.
const (
	PhasePublish = "publish"
	PhaseRead    = "read"
)
