package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/orbsim/internal/body"
)

// Exporter publishes run progress and the current value of a set of metrics
// to Prometheus. It is fed through OnSample, after the metrics themselves
// have observed the sample.
type Exporter struct {
	metrics []Metric
	simTime prometheus.Gauge
	samples prometheus.Counter
	bodies  prometheus.Gauge
	values  *prometheus.GaugeVec
}

// NewExporter registers its collectors with reg.
func NewExporter(reg prometheus.Registerer, ms ...Metric) *Exporter {
	e := &Exporter{
		metrics: ms,
		simTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbsim_simulated_seconds",
			Help: "Simulated time since the epoch",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbsim_samples_total",
			Help: "Number of sampled steps",
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbsim_bodies",
			Help: "Bodies in the simulation",
		}),
		values: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "orbsim_metric",
				Help: "Current value of a run metric",
			},
			[]string{"name"},
		),
	}

	reg.MustRegister(e.simTime, e.samples, e.bodies, e.values)
	return e
}

func (e *Exporter) OnSample(bodies []body.Body, primary int, t float64) {
	e.simTime.Set(t)
	e.samples.Inc()
	e.bodies.Set(float64(len(bodies)))
	for _, m := range e.metrics {
		e.values.WithLabelValues(m.Name()).Set(m.Value())
	}
}
