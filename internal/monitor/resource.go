package monitor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Gauge measures a single resource kind
type Gauge interface {
	Total(ctx context.Context) (uint64, error)
	Available(ctx context.Context) (uint64, error)
}

// Sample is a point-in-time reading of a resource
type Sample struct {
	Total     uint64    `json:"total"`
	Available uint64    `json:"available"`
	SampledAt time.Time `json:"sampled_at"`
}

// Used returns Total minus Available, or zero if the provider reported
// more available than total.
func (s Sample) Used() uint64 {
	if s.Available > s.Total {
		return 0
	}
	return s.Total - s.Available
}

// UsedPercent returns used/total in the range [0, 100]
func (s Sample) UsedPercent() (float64, error) {
	if s.Total == 0 {
		return 0, ErrInvalidState
	}
	return float64(s.Used()) / float64(s.Total) * 100, nil
}

// Percent formats UsedPercent with two decimals, e.g. "42.00%"
func (s Sample) Percent() (string, error) {
	pct, err := s.UsedPercent()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.2f%%", pct), nil
}

// Resource caches the capacity of one resource and refreshes its available
// bytes every interval. Total is sampled once at construction.
type Resource struct {
	name     string
	gauge    Gauge
	sample   atomic.Pointer[Sample]
	periodic *Periodic
	logger   *zap.Logger
}

// NewResource samples gauge once and starts refreshing it every interval.
// Measurement failures here are returned as *MeasurementError.
func NewResource(ctx context.Context, name string, interval time.Duration, gauge Gauge, opts ...Option) (*Resource, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	total, err := gauge.Total(ctx)
	if err != nil {
		return nil, &MeasurementError{Resource: name, Err: err}
	}
	available, err := gauge.Available(ctx)
	if err != nil {
		return nil, &MeasurementError{Resource: name, Err: err}
	}

	o := newOptions(opts)
	r := &Resource{
		name:   name,
		gauge:  gauge,
		logger: o.logger.With(zap.String("resource", name)),
	}
	r.sample.Store(&Sample{Total: total, Available: available, SampledAt: time.Now()})

	r.periodic, err = NewPeriodic(interval, r.refresh, WithLogger(r.logger), WithTickTimeout(o.tickTimeout))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("monitor started",
		zap.Duration("interval", interval),
		zap.Uint64("total", total),
		zap.Uint64("available", available),
	)
	return r, nil
}

func (r *Resource) refresh(ctx context.Context) error {
	available, err := r.gauge.Available(ctx)
	if err != nil {
		return &MeasurementError{Resource: r.name, Err: err}
	}

	// the periodic goroutine is the only writer
	prev := r.sample.Load()
	r.sample.Store(&Sample{Total: prev.Total, Available: available, SampledAt: time.Now()})
	return nil
}

// Name identifies the monitored resource
func (r *Resource) Name() string {
	return r.name
}

// Interval returns the sampling interval
func (r *Resource) Interval() time.Duration {
	return r.periodic.Interval()
}

// Snapshot returns the latest sample
func (r *Resource) Snapshot() Sample {
	return *r.sample.Load()
}

// Total returns the capacity in bytes sampled at construction
func (r *Resource) Total() uint64 {
	return r.Snapshot().Total
}

// Available returns the most recently sampled available bytes
func (r *Resource) Available() uint64 {
	return r.Snapshot().Available
}

// Used returns Total minus Available
func (r *Resource) Used() uint64 {
	return r.Snapshot().Used()
}

// UsedPercent returns the used share in percent, or ErrInvalidState for a zero total
func (r *Resource) UsedPercent() (float64, error) {
	pct, err := r.Snapshot().UsedPercent()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", r.name, err)
	}
	return pct, nil
}

// Percent returns the used share formatted as "12.34%"
func (r *Resource) Percent() (string, error) {
	pct, err := r.Snapshot().Percent()
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.name, err)
	}
	return pct, nil
}

// Stop ends background sampling. The last sample stays readable.
func (r *Resource) Stop() {
	r.periodic.Stop()
	r.logger.Debug("monitor stopped", zap.Uint64("ticks", r.periodic.Ticks()))
}
