package manager

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sdx",
			Subsystem: "generation",
			Name:      "total",
			Help:      "Generations by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sdx",
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Wall time of sd-cli runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
		},
		[]string{"model"},
	)

	imagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sdx",
			Subsystem: "generation",
			Name:      "images_total",
			Help:      "Images returned to HTTP callers",
		},
		[]string{"model"},
	)

	gateWaitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sdx",
			Subsystem: "gate",
			Name:      "wait_seconds",
			Help:      "Time spent waiting for the accelerator gate",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal, generationDuration, imagesTotal, gateWaitSeconds)
}

// RegisterGateMetrics exposes the busy and waiters gauges of g on reg. The
// gauges are read from g at scrape time. Registering again replaces the gate
// reported by an earlier call.
func RegisterGateMetrics(reg prometheus.Registerer, g *Gate) error {
	busy := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "sdx",
			Subsystem: "gate",
			Name:      "busy",
			Help:      "1 while a generation holds the accelerator gate",
		},
		func() float64 {
			if g.Busy() {
				return 1
			}
			return 0
		},
	)
	waiters := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "sdx",
			Subsystem: "gate",
			Name:      "waiters",
			Help:      "Callers blocked waiting for the accelerator gate",
		},
		func() float64 { return float64(g.Waiters()) },
	)
	for _, c := range []prometheus.Collector{busy, waiters} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
			reg.Unregister(are.ExistingCollector)
			if err := reg.Register(c); err != nil {
				return err
			}
		}
	}
	return nil
}
