package harness

import (
	"fmt"
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// runMetrics are the counters of one solution, labeled with its name
type runMetrics struct {
	cases      *metrics.Counter
	errors     *metrics.Counter
	tokens     *metrics.Counter
	mismatches *metrics.Counter
	duration   *metrics.Summary
}

func metricsFor(solution string) runMetrics {
	if solution == "" {
		solution = "anonymous"
	}
	label := fmt.Sprintf(`{solution=%q}`, solution)
	return runMetrics{
		cases:      metrics.GetOrCreateCounter("tcio_cases_total" + label),
		errors:     metrics.GetOrCreateCounter("tcio_run_errors_total" + label),
		tokens:     metrics.GetOrCreateCounter("tcio_tokens_total" + label),
		mismatches: metrics.GetOrCreateCounter("tcio_mismatches_total" + label),
		duration:   metrics.GetOrCreateSummary("tcio_case_duration_seconds" + label),
	}
}

func (m runMetrics) observeCase(d time.Duration) {
	m.cases.Inc()
	m.duration.Update(d.Seconds())
}

// WriteMetrics writes all run metrics in Prometheus text format
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
