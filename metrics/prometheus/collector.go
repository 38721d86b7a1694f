package prometheus

import (
	"errors"
	"time"

	"github.com/hupe1980/widgetstore"
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "widgetstore"

// Collector implements widgetstore.MetricsCollector on top of Prometheus
// histograms and counters.
type Collector struct {
	reg prom.Registerer

	opLatency   *prom.HistogramVec
	ops         *prom.CounterVec
	listResults *prom.HistogramVec
	rejected    *prom.CounterVec
}

var _ widgetstore.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prom.Registerer) *Collector {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	c := &Collector{
		reg: reg,
		opLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of store operations",
			Buckets:   prom.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op", "status"}),
		ops: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total store operations by outcome",
		}, []string{"op", "status"}),
		listResults: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "list_results",
			Help:      "Number of widgets returned by collection reads",
			Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000, 10000},
		}, []string{"mode"}),
		rejected: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "admission_rejected_total",
			Help:      "Requests rejected by admission control",
		}, []string{"reason"}),
	}

	reg.MustRegister(c.opLatency, c.ops, c.listResults, c.rejected)
	return c
}

// WatchStore registers gauges that read the store's size and write version
// on every scrape.
func (c *Collector) WatchStore(s *widgetstore.Store) {
	c.reg.MustRegister(
		prom.NewGaugeFunc(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "widgets",
			Help:      "Number of stored widgets",
		}, func() float64 { return float64(s.Len()) }),
		prom.NewCounterFunc(prom.CounterOpts{
			Namespace: namespace,
			Name:      "writes_total",
			Help:      "Completed mutations (write version)",
		}, func() float64 { return float64(s.Stats().Version) }),
	)
}

// RecordRejected counts a request turned away by admission control.
func (c *Collector) RecordRejected(reason string) {
	c.rejected.WithLabelValues(reason).Inc()
}

func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, widgetstore.ErrNotFound):
		return "not_found"
	case errors.Is(err, widgetstore.ErrInvalidArgument):
		return "invalid"
	default:
		return "error"
	}
}

func (c *Collector) observe(op string, d time.Duration, err error) {
	s := status(err)
	c.opLatency.WithLabelValues(op, s).Observe(d.Seconds())
	c.ops.WithLabelValues(op, s).Inc()
}

// RecordCreate implements widgetstore.MetricsCollector.
func (c *Collector) RecordCreate(d time.Duration, err error) { c.observe("create", d, err) }

// RecordGet implements widgetstore.MetricsCollector.
func (c *Collector) RecordGet(d time.Duration, err error) { c.observe("get", d, err) }

// RecordList implements widgetstore.MetricsCollector.
func (c *Collector) RecordList(mode string, results int, d time.Duration, err error) {
	c.observe("list_"+mode, d, err)
	if err == nil {
		c.listResults.WithLabelValues(mode).Observe(float64(results))
	}
}

// RecordUpdate implements widgetstore.MetricsCollector.
func (c *Collector) RecordUpdate(d time.Duration, err error) { c.observe("update", d, err) }

// RecordDelete implements widgetstore.MetricsCollector.
func (c *Collector) RecordDelete(d time.Duration, err error) { c.observe("delete", d, err) }
