// Package metrics exposes Prometheus metrics for the task engine.
//
// Metrics are registered on a private registry rather than the global default
// so that several engines (and tests) can coexist in one process.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giselleandrade1/lembrafacil/internal/cache"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

const namespace = "lembra"

// TaskSource returns the current task snapshots.
type TaskSource func() []domain.Task

// CacheSource returns the current cache counters.
type CacheSource func() cache.Stats

// Metrics holds the registry and the instruments fed by the application.
type Metrics struct {
	registry        *prometheus.Registry
	events          *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates a registry with event and request instruments.
// tasks and cacheStats are optional; when set they are sampled on every scrape.
func New(tasks TaskSource, cacheStats CacheSource) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		// events counts applied store events.
		// Labels: type (TASK_CREATED, STATUS_UPDATED)
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "events_total",
			Help:      "Total events applied to the task store",
		}, []string{"type"}),
		// requestDuration measures HTTP handler latency.
		// Labels: method, route (chi route pattern), code
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "code"}),
	}

	// Pre-create series so they are exported at zero.
	for _, t := range domain.AllEventTypes() {
		m.events.WithLabelValues(string(t))
	}

	if tasks != nil {
		reg.MustRegister(&taskCollector{source: tasks})
	}
	if cacheStats != nil {
		reg.MustRegister(&cacheCollector{source: cacheStats})
	}
	return m
}

// HandleEvent counts an applied store event. It is registered on the event bus.
func (m *Metrics) HandleEvent(e domain.Event) {
	m.events.WithLabelValues(string(e.Type())).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, code int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler serving the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

var (
	tasksDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "store", "tasks"),
		"Current number of tasks by status",
		[]string{"status"}, nil,
	)
	progressDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "store", "burndown_percent"),
		"Share of tasks that are done",
		nil, nil,
	)
)

// taskCollector samples the task projection at scrape time.
type taskCollector struct {
	source TaskSource
}

func (c *taskCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- tasksDesc
	ch <- progressDesc
}

func (c *taskCollector) Collect(ch chan<- prometheus.Metric) {
	tasks := c.source()
	counts := make(map[domain.Status]int, 3)
	for _, t := range tasks {
		counts[t.Status]++
	}
	for _, s := range domain.AllStatuses() {
		ch <- prometheus.MustNewConstMetric(tasksDesc, prometheus.GaugeValue, float64(counts[s]), string(s))
	}

	pct := 0.0
	if len(tasks) > 0 {
		pct = float64(counts[domain.StatusDone]) * 100 / float64(len(tasks))
	}
	ch <- prometheus.MustNewConstMetric(progressDesc, prometheus.GaugeValue, pct)
}

var (
	cacheHitsDesc      = prometheus.NewDesc(prometheus.BuildFQName(namespace, "cache", "hits_total"), "Cache lookups that found an entry", nil, nil)
	cacheMissesDesc    = prometheus.NewDesc(prometheus.BuildFQName(namespace, "cache", "misses_total"), "Cache lookups that found nothing", nil, nil)
	cacheEvictionsDesc = prometheus.NewDesc(prometheus.BuildFQName(namespace, "cache", "evictions_total"), "Entries evicted from the cache", nil, nil)
	cacheEntriesDesc   = prometheus.NewDesc(prometheus.BuildFQName(namespace, "cache", "entries"), "Entries currently cached", nil, nil)
)

// cacheCollector exports cache.Stats counters.
type cacheCollector struct {
	source CacheSource
}

func (c *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cacheHitsDesc
	ch <- cacheMissesDesc
	ch <- cacheEvictionsDesc
	ch <- cacheEntriesDesc
}

func (c *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source()
	ch <- prometheus.MustNewConstMetric(cacheHitsDesc, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(cacheMissesDesc, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(cacheEvictionsDesc, prometheus.CounterValue, float64(s.Evictions))
	ch <- prometheus.MustNewConstMetric(cacheEntriesDesc, prometheus.GaugeValue, float64(s.Len))
}
