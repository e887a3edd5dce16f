package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	namespace = "glossa"
)

type MetricConfig struct {
	Listen string `yaml:"listen"`
}

var (
	// States: "pending" (waiting for the rate limiter), "processing" (being scored),
	//         "rejected" (terminal state for rate limited requests),
	//         "failed" (terminal state for requests that did not bind or validate),
	//         "processed" (terminal state for completed detections).
	MetricDetectRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "detect_requests",
			Help:      "Current number of detect requests being handled, by state.",
		},
		[]string{"state"},
	)

	// The language label carries the winning profile code, or "undetermined"
	// when no profile scored above zero.
	MetricDetections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Completed language detections, by detected language.",
		},
		[]string{"language"},
	)

	MetricProfilesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "language_profiles_loaded",
			Help:      "Number of language profiles carried by the running detector.",
		},
	)

	MetricSampledDetections = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detect_sampled_total",
			Help:      "Detections that sub-sampled their input to bound scoring cost.",
		},
	)
)

func InitMetricServer(conf MetricConfig) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		logrus.Infof("Metrics server listening on %s", conf.Listen)
		if err := http.ListenAndServe(conf.Listen, nil); err != nil {
			logrus.Fatalf("Failed to start metrics server: %v", err)
		}
	}()
}
