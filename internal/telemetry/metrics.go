// internal/telemetry/metrics.go
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the bridge's diagnostic instruments.
type Metrics struct {
	SamplesTotal       prometheus.Counter
	ReadFailuresTotal  prometheus.Counter
	ReconnectsTotal    prometheus.Counter
	ProbeFailuresTotal prometheus.Counter

	Lux       prometheus.Gauge
	SignalDbm prometheus.Gauge
	LinkUp    prometheus.Gauge
}

// NewMetrics builds and registers the instrument set.
// Pass a fresh Registry in tests; nil uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		SamplesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridge_samples_total",
			Help: "Sensor readings successfully captured.",
		}),
		ReadFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridge_read_failures_total",
			Help: "Sensor reads that failed and were contained.",
		}),
		ReconnectsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridge_reconnects_total",
			Help: "Link drops detected (one per Connected to down edge).",
		}),
		ProbeFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridge_probe_failures_total",
			Help: "Best-effort reachability probes that failed after reconnect.",
		}),
		Lux: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bridge_illuminance_lux",
			Help: "Most recent derived illuminance.",
		}),
		SignalDbm: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bridge_signal_dbm",
			Help: "Most recent link signal strength.",
		}),
		LinkUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bridge_link_up",
			Help: "1 while the link state machine is Connected.",
		}),
	}

	reg.MustRegister(
		m.SamplesTotal,
		m.ReadFailuresTotal,
		m.ReconnectsTotal,
		m.ProbeFailuresTotal,
		m.Lux,
		m.SignalDbm,
		m.LinkUp,
	)

	return m
}
