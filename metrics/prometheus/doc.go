// Package prometheus exports widgetstore operation metrics to Prometheus.
//
//	reg := prom.NewRegistry()
//	collector := prometheus.New(reg)
//	store := widgetstore.New(widgetstore.WithMetricsCollector(collector))
//	collector.WatchStore(store)
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prometheus
