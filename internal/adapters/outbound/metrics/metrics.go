// Package metrics exports compare runs in the Prometheus text format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/abdidvp/pystyle/internal/domain"
)

// Metrics holds the gauges describing one compare run.
type Metrics struct {
	registry *prometheus.Registry

	ToolDuration    *prometheus.GaugeVec
	ToolMemoryDelta *prometheus.GaugeVec
	Findings        *prometheus.GaugeVec
}

// New creates the gauges and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ToolDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pystyle_tool_duration_seconds",
				Help: "Wall time spent by each tool on the compared file",
			},
			[]string{"tool"},
		),
		ToolMemoryDelta: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pystyle_tool_memory_delta_bytes",
				Help: "Change in resident memory around each tool run",
			},
			[]string{"tool"},
		),
		Findings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pystyle_findings",
				Help: "Findings per tool and comparison partition",
			},
			[]string{"tool", "partition"},
		),
	}
	m.registry.MustRegister(m.ToolDuration, m.ToolMemoryDelta, m.Findings)
	return m
}

// Observe records a comparison.
func (m *Metrics) Observe(c *domain.Comparison) {
	for _, run := range []domain.ToolRun{c.Custom, c.External} {
		m.ToolDuration.WithLabelValues(run.Tool).Set(run.Duration.Seconds())
		m.ToolMemoryDelta.WithLabelValues(run.Tool).Set(float64(run.MemoryDelta))
		m.Findings.WithLabelValues(run.Tool, "total").Set(float64(len(run.Findings)))
	}
	m.Findings.WithLabelValues(c.Custom.Tool, "only").Set(float64(len(c.CustomOnly)))
	m.Findings.WithLabelValues(c.External.Tool, "only").Set(float64(len(c.ExternalOnly)))
	m.Findings.WithLabelValues("both", "common").Set(float64(len(c.Common)))
}

// WriteTextfile writes the gauges to path for the node_exporter textfile
// collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// Registry exposes the registry for tests and embedding.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
