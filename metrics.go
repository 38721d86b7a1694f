package widgetstore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; package
// metrics/prometheus provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordCreate is called after each create operation.
	// duration is the total time taken, err is nil if successful.
	RecordCreate(duration time.Duration, err error)

	// RecordGet is called after each read by id.
	RecordGet(duration time.Duration, err error)

	// RecordList is called after each collection read.
	// mode is "page" or "box", results is the number of widgets returned.
	RecordList(mode string, results int, duration time.Duration, err error)

	// RecordUpdate is called after each update operation.
	RecordUpdate(duration time.Duration, err error)

	// RecordDelete is called after each delete operation.
	RecordDelete(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(time.Duration, error)            {}
func (NoopMetricsCollector) RecordGet(time.Duration, error)               {}
func (NoopMetricsCollector) RecordList(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)            {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CreateCount      atomic.Int64
	CreateErrors     atomic.Int64
	CreateTotalNanos atomic.Int64
	GetCount         atomic.Int64
	GetErrors        atomic.Int64
	PageCount        atomic.Int64
	BoxCount         atomic.Int64
	ListErrors       atomic.Int64
	ListResults      atomic.Int64
	ListTotalNanos   atomic.Int64
	UpdateCount      atomic.Int64
	UpdateErrors     atomic.Int64
	DeleteCount      atomic.Int64
	DeleteErrors     atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(duration time.Duration, err error) {
	b.CreateCount.Add(1)
	b.CreateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CreateErrors.Add(1)
	}
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(duration time.Duration, err error) {
	b.GetCount.Add(1)
	if err != nil {
		b.GetErrors.Add(1)
	}
}

// RecordList implements MetricsCollector.
func (b *BasicMetricsCollector) RecordList(mode string, results int, duration time.Duration, err error) {
	if mode == ListModeBox {
		b.BoxCount.Add(1)
	} else {
		b.PageCount.Add(1)
	}
	b.ListTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ListErrors.Add(1)
		return
	}
	b.ListResults.Add(int64(results))
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CreateCount:    b.CreateCount.Load(),
		CreateErrors:   b.CreateErrors.Load(),
		CreateAvgNanos: avgNanos(b.CreateTotalNanos.Load(), b.CreateCount.Load()),
		GetCount:       b.GetCount.Load(),
		GetErrors:      b.GetErrors.Load(),
		PageCount:      b.PageCount.Load(),
		BoxCount:       b.BoxCount.Load(),
		ListErrors:     b.ListErrors.Load(),
		ListResults:    b.ListResults.Load(),
		ListAvgNanos:   avgNanos(b.ListTotalNanos.Load(), b.PageCount.Load()+b.BoxCount.Load()),
		UpdateCount:    b.UpdateCount.Load(),
		UpdateErrors:   b.UpdateErrors.Load(),
		DeleteCount:    b.DeleteCount.Load(),
		DeleteErrors:   b.DeleteErrors.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CreateCount    int64
	CreateErrors   int64
	CreateAvgNanos int64
	GetCount       int64
	GetErrors      int64
	PageCount      int64
	BoxCount       int64
	ListErrors     int64
	ListResults    int64
	ListAvgNanos   int64
	UpdateCount    int64
	UpdateErrors   int64
	DeleteCount    int64
	DeleteErrors   int64
}
