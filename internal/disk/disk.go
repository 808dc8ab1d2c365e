package disk

import (
	"context"
	"fmt"
	"time"

	"github.com/neoxid-es/pyspectator/internal/monitor"
	"github.com/neoxid-es/pyspectator/internal/sysstats"
)

// DeviceNotFoundError is returned when no mounted device matches the requested identifier
type DeviceNotFoundError struct {
	Device string
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("device %s not found", e.Device)
}

// Monitor tracks the capacity of one mounted storage device
type Monitor struct {
	*monitor.Resource

	device     string
	mountpoint string
	fstype     string
}

// New creates a monitor for the mounted device whose identifier equals device
func New(ctx context.Context, provider sysstats.Provider, interval time.Duration, device string, opts ...monitor.Option) (*Monitor, error) {
	partitions, err := provider.Partitions(ctx)
	if err != nil {
		return nil, &monitor.MeasurementError{Resource: device, Err: err}
	}

	for _, part := range partitions {
		if part.Device == device {
			return newMonitor(ctx, provider, interval, part, opts)
		}
	}
	return nil, &DeviceNotFoundError{Device: device}
}

// ConnectedDevices creates one monitor per mounted device, in enumeration order.
// If any monitor fails to start, the ones already created are stopped and the
// error is returned.
func ConnectedDevices(ctx context.Context, provider sysstats.Provider, interval time.Duration, opts ...monitor.Option) ([]*Monitor, error) {
	partitions, err := provider.Partitions(ctx)
	if err != nil {
		return nil, &monitor.MeasurementError{Resource: "partitions", Err: err}
	}

	monitors := make([]*Monitor, 0, len(partitions))
	for _, part := range partitions {
		m, err := newMonitor(ctx, provider, interval, part, opts)
		if err != nil {
			for _, started := range monitors {
				started.Stop()
			}
			return nil, err
		}
		monitors = append(monitors, m)
	}
	return monitors, nil
}

func newMonitor(ctx context.Context, provider sysstats.Provider, interval time.Duration, part sysstats.Partition, opts []monitor.Option) (*Monitor, error) {
	gauge := &usageGauge{provider: provider, mountpoint: part.Mountpoint}
	res, err := monitor.NewResource(ctx, part.Device, interval, gauge, opts...)
	if err != nil {
		return nil, err
	}

	return &Monitor{
		Resource:   res,
		device:     part.Device,
		mountpoint: part.Mountpoint,
		fstype:     part.Fstype,
	}, nil
}

// Device returns the device identifier
func (m *Monitor) Device() string {
	return m.device
}

// Mountpoint returns the path the device is mounted at
func (m *Monitor) Mountpoint() string {
	return m.mountpoint
}

// Fstype returns the filesystem type
func (m *Monitor) Fstype() string {
	return m.fstype
}

type usageGauge struct {
	provider   sysstats.Provider
	mountpoint string
}

func (g *usageGauge) Total(ctx context.Context) (uint64, error) {
	u, err := g.provider.Usage(ctx, g.mountpoint)
	if err != nil {
		return 0, err
	}
	return u.Total, nil
}

func (g *usageGauge) Available(ctx context.Context) (uint64, error) {
	u, err := g.provider.Usage(ctx, g.mountpoint)
	if err != nil {
		return 0, err
	}
	return u.Free, nil
}
