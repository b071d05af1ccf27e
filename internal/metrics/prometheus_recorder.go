package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	fileOutcomes     *prom.CounterVec
	versionsResolved prom.Gauge
	searchRewrites   *prom.CounterVec
	runDuration      prom.Histogram
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		fileOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docversions",
			Name:      "html_files_total",
			Help:      "HTML files visited by outcome",
		}, []string{"outcome"}),
		versionsResolved: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docversions",
			Name:      "versions_resolved",
			Help:      "Number of version directories listed in the dropdown",
		}),
		searchRewrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docversions",
			Name:      "search_index_rewrites_total",
			Help:      "search.json files examined by whether they changed",
		}, []string{"changed"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docversions",
			Name:      "run_duration_seconds",
			Help:      "Duration of a full processing run",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.fileOutcomes, pr.versionsResolved, pr.searchRewrites, pr.runDuration)
	return pr
}

func (p *PrometheusRecorder) IncFileOutcome(outcome FileOutcome) {
	if p == nil || p.fileOutcomes == nil {
		return
	}
	p.fileOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetVersionsResolved(n int) {
	if p == nil || p.versionsResolved == nil {
		return
	}
	p.versionsResolved.Set(float64(n))
}

func (p *PrometheusRecorder) IncSearchIndexRewrite(changed bool) {
	if p == nil || p.searchRewrites == nil {
		return
	}
	label := "false"
	if changed {
		label = "true"
	}
	p.searchRewrites.WithLabelValues(label).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}
