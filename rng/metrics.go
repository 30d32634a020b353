package rng

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

var (
	metricsSet = metrics.NewSet()

	drawsTotal      = metricsSet.NewCounter("random_draws_total")
	rejectionsTotal = metricsSet.NewCounter("random_rejections_total")
	shortReadsTotal = metricsSet.NewCounter("random_short_reads_total")
)

// WriteMetrics writes the draw statistics in the Prometheus text format.
func WriteMetrics(w io.Writer) {
	metricsSet.WritePrometheus(w)
}
