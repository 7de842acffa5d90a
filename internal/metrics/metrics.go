// Package metrics records run statistics in a private Prometheus registry
// and writes them in node-exporter textfile format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/campusgen/internal/export"
)

const namespace = "campusgen"

// Recorder holds the run metrics. A fresh Recorder starts at zero; nothing
// is registered with the global registry.
type Recorder struct {
	reg *prometheus.Registry

	recordsGenerated prometheus.Counter
	filesWritten     *prometheus.CounterVec
	bytesWritten     *prometheus.CounterVec
	lastRun          prometheus.Gauge
	exportDuration   prometheus.Histogram
}

// New creates a Recorder with its metrics registered.
func New() *Recorder {
	r := &Recorder{reg: prometheus.NewRegistry()}

	r.recordsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_generated_total",
		Help:      "Number of synthetic activity records generated",
	})
	r.filesWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "files_written_total",
		Help:      "Number of export files written by format",
	}, []string{"format"})
	r.bytesWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bytes_written_total",
		Help:      "Bytes of export files written by format",
	}, []string{"format"})
	r.lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last completed export",
	})
	r.exportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_duration_seconds",
		Help:      "Time spent writing all export files of one run",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	r.reg.MustRegister(
		r.recordsGenerated, r.filesWritten, r.bytesWritten,
		r.lastRun, r.exportDuration,
	)
	return r
}

// Registry exposes the private registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// ObserveGenerate counts n generated records.
func (r *Recorder) ObserveGenerate(n int) {
	r.recordsGenerated.Add(float64(n))
}

// ObserveExport records the files of one export and how long it took.
// A partial result from a failed export still counts the files it wrote but
// does not move the last-run timestamp.
func (r *Recorder) ObserveExport(res *export.Result, took time.Duration, failed bool) {
	if res == nil {
		return
	}
	for _, f := range res.Files {
		r.filesWritten.WithLabelValues(string(f.Format)).Inc()
		r.bytesWritten.WithLabelValues(string(f.Format)).Add(float64(f.Size))
	}
	r.exportDuration.Observe(took.Seconds())
	if !failed {
		r.lastRun.Set(float64(res.ExportedAt.Unix()))
	}
}

// WriteTextfile atomically writes the gathered metrics to path, creating
// its directory if needed.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
