//go:build !linux && !windows

package sysstats

import (
	"context"
	"fmt"
)

// UnsupportedProvider is a fallback for unsupported platforms
type UnsupportedProvider struct{}

// newPlatformProvider creates a fallback provider for unsupported platforms
func newPlatformProvider() Provider {
	return &UnsupportedProvider{}
}

func (p *UnsupportedProvider) VirtualMemory(ctx context.Context) (*VirtualMemoryStat, error) {
	return nil, fmt.Errorf("memory statistics not supported on this platform")
}

func (p *UnsupportedProvider) SwapMemory(ctx context.Context) (*SwapMemoryStat, error) {
	return nil, fmt.Errorf("swap statistics not supported on this platform")
}

func (p *UnsupportedProvider) Partitions(ctx context.Context) ([]Partition, error) {
	return nil, fmt.Errorf("disk statistics not supported on this platform")
}

func (p *UnsupportedProvider) Usage(ctx context.Context, mountpoint string) (*UsageStat, error) {
	return nil, fmt.Errorf("disk statistics not supported on this platform")
}
