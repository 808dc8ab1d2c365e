// Package sysstatstest provides an in-memory sysstats.Provider for tests.
package sysstatstest

import (
	"context"
	"fmt"
	"sync"

	"github.com/neoxid-es/pyspectator/internal/sysstats"
)

// Provider is a sysstats.Provider whose answers are set by the test
type Provider struct {
	mu         sync.Mutex
	virtual    sysstats.VirtualMemoryStat
	swap       sysstats.SwapMemoryStat
	partitions []sysstats.Partition
	usage      map[string]sysstats.UsageStat
	errs       map[string]error
	calls      map[string]int
}

// New returns an empty fake provider
func New() *Provider {
	return &Provider{
		usage: make(map[string]sysstats.UsageStat),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// SetVirtualMemory sets the main memory answer
func (p *Provider) SetVirtualMemory(total, available uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.virtual = sysstats.VirtualMemoryStat{Total: total, Available: available}
}

// SetSwapMemory sets the swap answer
func (p *Provider) SetSwapMemory(total, free uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.swap = sysstats.SwapMemoryStat{Total: total, Free: free}
}

// AddDevice appends a mounted device with the given usage
func (p *Provider) AddDevice(part sysstats.Partition, total, free uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.partitions = append(p.partitions, part)
	p.usage[part.Mountpoint] = sysstats.UsageStat{Total: total, Free: free}
}

// SetUsage changes the usage reported for a mountpoint
func (p *Provider) SetUsage(mountpoint string, total, free uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage[mountpoint] = sysstats.UsageStat{Total: total, Free: free}
}

// SetError makes the named query fail with err until cleared with nil.
// Names are "virtual", "swap", "partitions" or a mountpoint.
func (p *Provider) SetError(query string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		delete(p.errs, query)
		return
	}
	p.errs[query] = err
}

// Calls returns how many times the named query ran
func (p *Provider) Calls(query string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[query]
}

func (p *Provider) VirtualMemory(ctx context.Context) (*sysstats.VirtualMemoryStat, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["virtual"]++
	if err := p.errs["virtual"]; err != nil {
		return nil, err
	}
	v := p.virtual
	return &v, nil
}

func (p *Provider) SwapMemory(ctx context.Context) (*sysstats.SwapMemoryStat, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["swap"]++
	if err := p.errs["swap"]; err != nil {
		return nil, err
	}
	s := p.swap
	return &s, nil
}

func (p *Provider) Partitions(ctx context.Context) ([]sysstats.Partition, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["partitions"]++
	if err := p.errs["partitions"]; err != nil {
		return nil, err
	}
	return append([]sysstats.Partition(nil), p.partitions...), nil
}

func (p *Provider) Usage(ctx context.Context, mountpoint string) (*sysstats.UsageStat, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[mountpoint]++
	if err := p.errs[mountpoint]; err != nil {
		return nil, err
	}
	u, ok := p.usage[mountpoint]
	if !ok {
		return nil, fmt.Errorf("%s: no such mountpoint", mountpoint)
	}
	return &u, nil
}
