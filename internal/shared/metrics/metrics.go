package metrics

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

var (
	registry = prometheus.NewRegistry()

	exportTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_export_total",
		Help: "Total resume exports by format",
	}, []string{"format"})

	exportFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_export_failed_total",
		Help: "Total failed resume exports by format",
	}, []string{"format"})

	exportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "resume_export_duration_ms",
		Help:    "Resume export duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)

func init() {
	registry.MustRegister(
		exportTotal,
		exportFailedTotal,
		exportDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IncExport counts a started export of the given format.
func IncExport(format string) {
	exportTotal.WithLabelValues(format).Inc()
}

// IncExportFailed counts a failed export of the given format.
func IncExportFailed(format string) {
	exportFailedTotal.WithLabelValues(format).Inc()
}

// ObserveExportDurationMs records an export duration in milliseconds.
func ObserveExportDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	exportDuration.Observe(value)
}

// Handler exposes the registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}

// Render returns the export metrics in Prometheus text format.
func Render() string {
	families, err := registry.Gather()
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	for _, mf := range families {
		switch mf.GetName() {
		case "resume_export_total", "resume_export_failed_total", "resume_export_duration_ms":
			if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
				return buf.String()
			}
		}
	}
	return buf.String()
}

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
