package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// SystemMetrics reports the resource use of a run
type SystemMetrics struct {
	memoryAllocated metric.Int64Gauge
	memorySystem    metric.Int64Gauge
	gcCount         metric.Int64Gauge
	processUptime   metric.Float64Gauge

	started time.Time
}

// NewSystemMetrics creates the system gauges. Uptime is measured from now.
func NewSystemMetrics(meter metric.Meter) (*SystemMetrics, error) {
	memoryAllocated, err := meter.Int64Gauge(
		"franvaro_memory_allocated_bytes",
		metric.WithDescription("Heap memory allocated by the Go runtime"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	memorySystem, err := meter.Int64Gauge(
		"franvaro_memory_system_bytes",
		metric.WithDescription("Memory obtained from the OS"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCount, err := meter.Int64Gauge(
		"franvaro_gc_count",
		metric.WithDescription("Completed garbage collection cycles"),
	)
	if err != nil {
		return nil, err
	}

	processUptime, err := meter.Float64Gauge(
		"franvaro_run_duration_seconds",
		metric.WithDescription("Time since the run started"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &SystemMetrics{
		memoryAllocated: memoryAllocated,
		memorySystem:    memorySystem,
		gcCount:         gcCount,
		processUptime:   processUptime,
		started:         time.Now(),
	}, nil
}

// Record samples the runtime once
func (s *SystemMetrics) Record(ctx context.Context) {
	if s == nil {
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.memoryAllocated.Record(ctx, int64(m.Alloc))
	s.memorySystem.Record(ctx, int64(m.Sys))
	s.gcCount.Record(ctx, int64(m.NumGC))
	s.processUptime.Record(ctx, time.Since(s.started).Seconds())
}
