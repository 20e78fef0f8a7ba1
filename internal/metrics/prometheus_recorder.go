package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	dirsDiscovered prom.Counter
	filesGenerated prom.Counter
	jobResults     *prom.CounterVec
	scanDuration   prom.Histogram
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a new registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		dirsDiscovered: prom.NewCounter(prom.CounterOpts{
			Namespace: "gbsaprep",
			Name:      "analysis_dirs_discovered_total",
			Help:      "Analysis directories found across scans",
		}),
		filesGenerated: prom.NewCounter(prom.CounterOpts{
			Namespace: "gbsaprep",
			Name:      "input_files_generated_total",
			Help:      "MM-GBSA input files written",
		}),
		jobResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gbsaprep",
			Name:      "mutation_results_total",
			Help:      "Per-mutation processing outcomes",
		}, []string{"result"}),
		scanDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "gbsaprep",
			Name:      "scan_duration_seconds",
			Help:      "Duration of directory tree scans",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.dirsDiscovered, pr.filesGenerated, pr.jobResults, pr.scanDuration)
	return pr
}

func (pr *PrometheusRecorder) IncDirsDiscovered(n int) {
	pr.dirsDiscovered.Add(float64(n))
}

func (pr *PrometheusRecorder) IncFilesGenerated(n int) {
	pr.filesGenerated.Add(float64(n))
}

func (pr *PrometheusRecorder) IncJobResult(result ResultLabel) {
	pr.jobResults.WithLabelValues(string(result)).Inc()
}

func (pr *PrometheusRecorder) ObserveScanDuration(d time.Duration) {
	pr.scanDuration.Observe(d.Seconds())
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
