package memory

import (
	"context"
	"time"

	"github.com/neoxid-es/pyspectator/internal/monitor"
	"github.com/neoxid-es/pyspectator/internal/sysstats"
)

// Resource names reported by the memory monitors
const (
	VirtualName = "virtual_memory"
	SwapName    = "swap_memory"
)

// NewVirtual creates a monitor for main memory
func NewVirtual(ctx context.Context, provider sysstats.Provider, interval time.Duration, opts ...monitor.Option) (*monitor.Resource, error) {
	return monitor.NewResource(ctx, VirtualName, interval, &virtualGauge{provider: provider}, opts...)
}

// NewSwap creates a monitor for swap space. Available bytes are the
// provider's free swap, not main memory's reclaimable estimate.
func NewSwap(ctx context.Context, provider sysstats.Provider, interval time.Duration, opts ...monitor.Option) (*monitor.Resource, error) {
	return monitor.NewResource(ctx, SwapName, interval, &swapGauge{provider: provider}, opts...)
}

type virtualGauge struct {
	provider sysstats.Provider
}

func (g *virtualGauge) Total(ctx context.Context) (uint64, error) {
	v, err := g.provider.VirtualMemory(ctx)
	if err != nil {
		return 0, err
	}
	return v.Total, nil
}

func (g *virtualGauge) Available(ctx context.Context) (uint64, error) {
	v, err := g.provider.VirtualMemory(ctx)
	if err != nil {
		return 0, err
	}
	return v.Available, nil
}

type swapGauge struct {
	provider sysstats.Provider
}

func (g *swapGauge) Total(ctx context.Context) (uint64, error) {
	s, err := g.provider.SwapMemory(ctx)
	if err != nil {
		return 0, err
	}
	return s.Total, nil
}

func (g *swapGauge) Available(ctx context.Context) (uint64, error) {
	s, err := g.provider.SwapMemory(ctx)
	if err != nil {
		return 0, err
	}
	return s.Free, nil
}
