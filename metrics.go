package dmmap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    openCounter   prometheus.Counter
//	    openHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordOpen(size int64, duration time.Duration, err error) {
//	    p.openCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordOpen is called after each open operation.
	// size is the mapped length in bytes (0 when the open failed),
	// duration is the total time taken, err is nil if successful.
	RecordOpen(size int64, duration time.Duration, err error)

	// RecordClose is called after each effective close operation, meaning
	// the call that released the mapping. Repeated closes of the same File
	// are not recorded.
	RecordClose(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordClose(time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// After a workload that closes everything it opened, OpenCount minus
// OpenErrors equals CloseCount.
type BasicMetricsCollector struct {
	OpenCount       atomic.Int64
	OpenErrors      atomic.Int64
	OpenTotalBytes  atomic.Int64
	OpenTotalNanos  atomic.Int64
	CloseCount      atomic.Int64
	CloseErrors     atomic.Int64
	CloseTotalNanos atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(size int64, duration time.Duration, err error) {
	b.OpenCount.Add(1)
	b.OpenTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OpenErrors.Add(1)
		return
	}
	b.OpenTotalBytes.Add(size)
}

// RecordClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClose(duration time.Duration, err error) {
	b.CloseCount.Add(1)
	b.CloseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CloseErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenCount:      b.OpenCount.Load(),
		OpenErrors:     b.OpenErrors.Load(),
		OpenTotalBytes: b.OpenTotalBytes.Load(),
		OpenAvgNanos:   b.getAvgOpenNanos(),
		CloseCount:     b.CloseCount.Load(),
		CloseErrors:    b.CloseErrors.Load(),
		CloseAvgNanos:  b.getAvgCloseNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgOpenNanos() int64 {
	count := b.OpenCount.Load()
	if count == 0 {
		return 0
	}
	return b.OpenTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgCloseNanos() int64 {
	count := b.CloseCount.Load()
	if count == 0 {
		return 0
	}
	return b.CloseTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenCount      int64
	OpenErrors     int64
	OpenTotalBytes int64
	OpenAvgNanos   int64
	CloseCount     int64
	CloseErrors    int64
	CloseAvgNanos  int64
}
