// Package metrics exports check results in the Prometheus text format for
// the node_exporter textfile collector.
package metrics

import (
	"check_isam/checks"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes the verdict and performance data of one check run to
// path. The file is replaced atomically.
func WriteTextfile(path, check, host string, res *checks.Result) error {

	registry := prometheus.NewRegistry()

	stateGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "isam_check_state",
		Help: "Nagios state of the last check run: 0=OK, 1=WARNING, 2=CRITICAL, 3=UNKNOWN.",
	}, []string{"check", "host"})

	registry.MustRegister(stateGauge)

	perfdataGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "isam_check_perfdata",
		Help: "Performance data reported by the last check run.",
	}, []string{"check", "host", "label", "uom"})

	registry.MustRegister(perfdataGauge)

	stateGauge.WithLabelValues(check, host).Set(float64(res.Severity.ExitCode()))

	for _, m := range res.Metrics {

		perfdataGauge.WithLabelValues(check, host, m.Label, m.UOM).Set(m.Value)
	}

	return prometheus.WriteToTextfile(path, registry)
}
