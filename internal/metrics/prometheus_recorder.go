package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	chapterDuration  prom.Histogram
	chapterResults   *prom.CounterVec
	linksResolved    prom.Counter
	resolverDuration *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		chapterDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "stdlinks",
			Name:      "chapter_duration_seconds",
			Help:      "Time spent rewriting a single chapter",
			Buckets:   prom.DefBuckets,
		}),
		chapterResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "stdlinks",
			Name:      "chapters_total",
			Help:      "Chapters processed by result",
		}, []string{"result"}),
		linksResolved: prom.NewCounter(prom.CounterOpts{
			Namespace: "stdlinks",
			Name:      "links_resolved_total",
			Help:      "Standard library references resolved to documentation URLs",
		}),
		resolverDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "stdlinks",
			Name:      "resolver_duration_seconds",
			Help:      "Duration of external resolver invocations",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"result"}),
	}
	reg.MustRegister(pr.chapterDuration, pr.chapterResults, pr.linksResolved, pr.resolverDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveChapterDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.chapterDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncChapterResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.chapterResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddLinksResolved(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.linksResolved.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveResolverDuration(d time.Duration, success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.resolverDuration.WithLabelValues(res).Observe(d.Seconds())
}
