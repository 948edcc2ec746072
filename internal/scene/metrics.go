package scene

import "github.com/prometheus/client_golang/prometheus"

var (
	ticksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "satscan",
		Subsystem: "scene",
		Name:      "ticks_total",
		Help:      "Simulation ticks executed",
	})

	detectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "satscan",
		Subsystem: "scene",
		Name:      "detections_total",
		Help:      "Ticks on which the satellite reported the target",
	})

	transitionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "satscan",
		Subsystem: "scene",
		Name:      "transitions_total",
		Help:      "Scene transitions performed",
	})

	sceneLoaded = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "satscan",
		Subsystem: "scene",
		Name:      "loaded",
		Help:      "1 for the currently loaded scene",
	}, []string{"scene"})
)

func init() {
	prometheus.MustRegister(ticksTotal, detectionsTotal, transitionsTotal, sceneLoaded)
}
