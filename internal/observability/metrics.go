package observability

import (
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MetricsRegistry holds all registered metrics. A metric is identified by
// its name together with its label set.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]*Counter
	gauges   map[string]*Gauge
	histos   map[string]*Histogram
}

// Counter is a monotonically increasing metric.
type Counter struct {
	name   string
	help   string
	labels map[string]string
	value  float64
	mu     sync.Mutex
}

// Gauge is a metric that can go up or down.
type Gauge struct {
	name   string
	help   string
	labels map[string]string
	value  float64
	mu     sync.Mutex
}

// Histogram tracks distribution of values.
type Histogram struct {
	name    string
	help    string
	labels  map[string]string
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
	mu      sync.Mutex
}

// NewMetricsRegistry creates a new metrics registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]*Counter),
		gauges:   make(map[string]*Gauge),
		histos:   make(map[string]*Histogram),
	}
}

func metricKey(name string, labels map[string]string) string {
	return name + formatLabels(labels)
}

// NewCounter returns the counter registered under name and labels,
// creating it on first use.
func (r *MetricsRegistry) NewCounter(name, help string, labels map[string]string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metricKey(name, labels)
	if c, ok := r.counters[key]; ok {
		return c
	}
	c := &Counter{name: name, help: help, labels: copyLabels(labels)}
	r.counters[key] = c
	return c
}

// NewGauge returns the gauge registered under name and labels, creating it
// on first use.
func (r *MetricsRegistry) NewGauge(name, help string, labels map[string]string) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metricKey(name, labels)
	if g, ok := r.gauges[key]; ok {
		return g
	}
	g := &Gauge{name: name, help: help, labels: copyLabels(labels)}
	r.gauges[key] = g
	return g
}

// NewHistogram returns the histogram registered under name and labels,
// creating it on first use.
func (r *MetricsRegistry) NewHistogram(name, help string, labels map[string]string, buckets []float64) *Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metricKey(name, labels)
	if h, ok := r.histos[key]; ok {
		return h
	}
	if buckets == nil {
		buckets = DefaultBuckets()
	}
	h := &Histogram{
		name:    name,
		help:    help,
		labels:  copyLabels(labels),
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
	r.histos[key] = h
	return h
}

// DefaultBuckets returns default histogram buckets for latency.
func DefaultBuckets() []float64 {
	return []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
}

// PopulateBuckets covers corpus rebuilds, which take seconds to minutes.
func PopulateBuckets() []float64 {
	return []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300}
}

// Inc increments a counter by 1.
func (c *Counter) Inc() {
	c.Add(1)
}

// Add adds a value to the counter.
func (c *Counter) Add(v float64) {
	c.mu.Lock()
	c.value += v
	c.mu.Unlock()
}

// Value returns the counter value.
func (c *Counter) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set sets the gauge value.
func (g *Gauge) Set(v float64) {
	g.mu.Lock()
	g.value = v
	g.mu.Unlock()
}

// Inc increments the gauge by 1.
func (g *Gauge) Inc() {
	g.Add(1)
}

// Dec decrements the gauge by 1.
func (g *Gauge) Dec() {
	g.Add(-1)
}

// Add adds a value to the gauge.
func (g *Gauge) Add(v float64) {
	g.mu.Lock()
	g.value += v
	g.mu.Unlock()
}

// Value returns the gauge value.
func (g *Gauge) Value() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// Observe records a value in the histogram.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sum += v
	h.count++

	for i, bound := range h.buckets {
		if v <= bound {
			h.counts[i]++
		}
	}
}

// ObserveDuration records a duration in the histogram.
func (h *Histogram) ObserveDuration(start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

// Count returns the number of observations.
func (h *Histogram) Count() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Handler returns an HTTP handler for Prometheus metrics.
func (r *MetricsRegistry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		r.WritePrometheus(w)
	})
}

// WritePrometheus writes metrics in Prometheus text format, sorted by name
// and labels. HELP and TYPE lines appear once per metric name.
func (r *MetricsRegistry) WritePrometheus(w io.Writer) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var header string
	writeHeader := func(name, metricType, help string) {
		if header == name {
			return
		}
		header = name
		io.WriteString(w, "# HELP "+name+" "+help+"\n")
		io.WriteString(w, "# TYPE "+name+" "+metricType+"\n")
	}

	for _, key := range sortedKeys(r.counters) {
		c := r.counters[key]
		c.mu.Lock()
		writeHeader(c.name, "counter", c.help)
		io.WriteString(w, c.name+formatLabels(c.labels)+" "+formatFloat(c.value)+"\n")
		c.mu.Unlock()
	}

	for _, key := range sortedKeys(r.gauges) {
		g := r.gauges[key]
		g.mu.Lock()
		writeHeader(g.name, "gauge", g.help)
		io.WriteString(w, g.name+formatLabels(g.labels)+" "+formatFloat(g.value)+"\n")
		g.mu.Unlock()
	}

	for _, key := range sortedKeys(r.histos) {
		h := r.histos[key]
		h.mu.Lock()
		writeHeader(h.name, "histogram", h.help)
		writeHistogram(w, h)
		h.mu.Unlock()
	}
}

func writeHistogram(w io.Writer, h *Histogram) {
	// Observe counts every bucket the value fits, so counts are already cumulative.
	for i, bound := range h.buckets {
		labels := copyLabels(h.labels)
		labels["le"] = formatFloat(bound)
		io.WriteString(w, h.name+"_bucket"+formatLabels(labels)+" "+formatUint(h.counts[i])+"\n")
	}

	labels := copyLabels(h.labels)
	labels["le"] = "+Inf"
	io.WriteString(w, h.name+"_bucket"+formatLabels(labels)+" "+formatUint(h.count)+"\n")

	io.WriteString(w, h.name+"_sum"+formatLabels(h.labels)+" "+formatFloat(h.sum)+"\n")
	io.WriteString(w, h.name+"_count"+formatLabels(h.labels)+" "+formatUint(h.count)+"\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	names := sortedKeys(labels)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escapeLabel(labels[k]))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabel(v string) string {
	return labelEscaper.Replace(v)
}

func copyLabels(labels map[string]string) map[string]string {
	result := make(map[string]string, len(labels)+1)
	for k, v := range labels {
		result[k] = v
	}
	return result
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// Ranker-specific metrics

// KindMetrics are the metrics of one corpus kind.
type KindMetrics struct {
	ScoreRequestsTotal   *Counter
	ScoreErrorsTotal     *Counter
	ScoreDuration        *Histogram
	ResultsStreamedTotal *Counter

	PopulateTotal       *Counter
	PopulateErrorsTotal *Counter
	PopulateDuration    *Histogram
	IndexDocuments      *Gauge
}

// RankerMetrics contains all ranker metrics, labelled by corpus kind.
type RankerMetrics struct {
	Registry *MetricsRegistry

	mu    sync.Mutex
	kinds map[string]*KindMetrics
}

// NewRankerMetrics creates ranker metrics and pre-registers the given kinds
// so they are exported before the first request.
func NewRankerMetrics(kinds ...string) *RankerMetrics {
	m := &RankerMetrics{
		Registry: NewMetricsRegistry(),
		kinds:    make(map[string]*KindMetrics),
	}
	for _, k := range kinds {
		m.Kind(k)
	}
	return m
}

// Kind returns the metrics labelled with kind.
func (m *RankerMetrics) Kind(kind string) *KindMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if km, ok := m.kinds[kind]; ok {
		return km
	}
	r := m.Registry
	l := map[string]string{"kind": kind}
	km := &KindMetrics{
		ScoreRequestsTotal:   r.NewCounter("ranker_score_requests_total", "Total score requests", l),
		ScoreErrorsTotal:     r.NewCounter("ranker_score_errors_total", "Total failed score requests", l),
		ScoreDuration:        r.NewHistogram("ranker_score_duration_seconds", "Time to rank a query", l, nil),
		ResultsStreamedTotal: r.NewCounter("ranker_results_streamed_total", "Total results sent to clients", l),

		PopulateTotal:       r.NewCounter("ranker_populate_total", "Total index rebuilds", l),
		PopulateErrorsTotal: r.NewCounter("ranker_populate_errors_total", "Total failed index rebuilds", l),
		PopulateDuration:    r.NewHistogram("ranker_populate_duration_seconds", "Index rebuild duration", l, PopulateBuckets()),
		IndexDocuments:      r.NewGauge("ranker_index_documents", "Documents in the installed index", l),
	}
	m.kinds[kind] = km
	return km
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *RankerMetrics) Handler() http.Handler {
	return m.Registry.Handler()
}

// RecordScore records one ranking request.
func (m *RankerMetrics) RecordScore(kind string, duration time.Duration, err error) {
	km := m.Kind(kind)
	km.ScoreRequestsTotal.Inc()
	km.ScoreDuration.Observe(duration.Seconds())
	if err != nil {
		km.ScoreErrorsTotal.Inc()
	}
}

// RecordStreamed records results delivered to a client.
func (m *RankerMetrics) RecordStreamed(kind string, n int) {
	m.Kind(kind).ResultsStreamedTotal.Add(float64(n))
}

// RecordPopulate records an index rebuild. documents is the size of the
// installed index and is ignored on failure.
func (m *RankerMetrics) RecordPopulate(kind string, duration time.Duration, documents int, err error) {
	km := m.Kind(kind)
	km.PopulateTotal.Inc()
	km.PopulateDuration.Observe(duration.Seconds())
	if err != nil {
		km.PopulateErrorsTotal.Inc()
		return
	}
	km.IndexDocuments.Set(float64(documents))
}
