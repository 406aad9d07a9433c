package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/metrics"
	"github.com/abdidvp/pystyle/internal/domain"
)

func sampleComparison() *domain.Comparison {
	return &domain.Comparison{
		File:         "a.py",
		CustomOnly:   []domain.FindingKey{{Line: 1}},
		ExternalOnly: []domain.FindingKey{{Line: 2}, {Line: 3}},
		Common:       []domain.FindingKey{},
		Custom: domain.ToolRun{
			Tool: "pystyle", Findings: []domain.FindingKey{{Line: 1}},
			Duration: 1500 * time.Millisecond, MemoryDelta: 4096,
		},
		External: domain.ToolRun{
			Tool: "flake8", Findings: []domain.FindingKey{{Line: 2}, {Line: 3}},
			Duration: 2 * time.Second,
		},
	}
}

func TestMetrics_Observe(t *testing.T) {
	m := metrics.New()
	m.Observe(sampleComparison())

	assert.InDelta(t, 1.5, testutil.ToFloat64(m.ToolDuration.WithLabelValues("pystyle")), 0.001)
	assert.InDelta(t, 4096, testutil.ToFloat64(m.ToolMemoryDelta.WithLabelValues("pystyle")), 0.001)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Findings.WithLabelValues("flake8", "only")), 0.001)
	assert.InDelta(t, 0, testutil.ToFloat64(m.Findings.WithLabelValues("both", "common")), 0.001)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := metrics.New()
	m.Observe(sampleComparison())

	path := filepath.Join(t.TempDir(), "pystyle.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `pystyle_tool_duration_seconds{tool="flake8"} 2`)
	assert.Contains(t, string(data), "# TYPE pystyle_findings gauge")
}
