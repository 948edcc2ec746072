package patrol

import "github.com/prometheus/client_golang/prometheus"

var (
	directionFlips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satscan",
			Subsystem: "patrol",
			Name:      "direction_flips_total",
			Help:      "Boundary bounces, labelled by the new direction",
		},
		[]string{"direction"},
	)

	probeHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "satscan",
			Subsystem: "patrol",
			Name:      "target_detections_total",
			Help:      "Ticks on which the downward probe found the target",
		},
	)
)

func init() {
	prometheus.MustRegister(directionFlips, probeHits)
}
