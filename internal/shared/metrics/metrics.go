package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	evaluationsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "evaluations_submitted_total",
		Help: "Total evaluations accepted and persisted",
	})
	evaluationsFallback = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evaluations_fallback_total",
		Help: "Evaluations answered with the fallback result, by reason",
	}, []string{"reason"})
	evaluationsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "evaluations_rejected_total",
		Help: "Submissions rejected by validation",
	})
	aiDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "evaluation_ai_duration_seconds",
		Help:    "Duration of the AI provider call",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"provider"})
)

func init() {
	Registry.MustRegister(evaluationsSubmitted, evaluationsFallback, evaluationsRejected, aiDuration)
}

// IncSubmitted increments the persisted-evaluation counter.
func IncSubmitted() {
	evaluationsSubmitted.Inc()
}

// IncFallback records a fallback substitution.
func IncFallback(reason string) {
	evaluationsFallback.WithLabelValues(reason).Inc()
}

// IncRejected records a validation rejection.
func IncRejected() {
	evaluationsRejected.Inc()
}

// ObserveAIDuration records how long the provider call took.
func ObserveAIDuration(provider string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	aiDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
