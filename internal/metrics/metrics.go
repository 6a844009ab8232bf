package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Counter: cache-key fragments produced by the batch hasher, per digest algorithm.
	KeysGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imagekey_keys_generated_total",
			Help: "Total number of cache-key digests generated.",
		},
		[]string{"algorithm"},
	)

	// Counter: orientation reads by outcome (angle, no_tag, parse_failed, not_found).
	OrientationReadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imagekey_orientation_reads_total",
			Help: "Total number of image orientation reads by outcome.",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KeysGeneratedTotal,
			OrientationReadsTotal,
		)
	})
}
