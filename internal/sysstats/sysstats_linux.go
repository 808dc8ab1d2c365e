//go:build linux

package sysstats

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// LinuxProvider implements stats queries for Linux
type LinuxProvider struct{}

// newPlatformProvider creates a new Linux stats provider
func newPlatformProvider() Provider {
	return &LinuxProvider{}
}

// VirtualMemory returns main memory statistics
func (p *LinuxProvider) VirtualMemory(ctx context.Context) (*VirtualMemoryStat, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return &VirtualMemoryStat{Total: v.Total, Available: v.Available}, nil
}

// SwapMemory returns swap statistics
func (p *LinuxProvider) SwapMemory(ctx context.Context) (*SwapMemoryStat, error) {
	s, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return &SwapMemoryStat{Total: s.Total, Free: s.Free}, nil
}

// Partitions returns the mounted physical devices in the order the kernel reports them
func (p *LinuxProvider) Partitions(ctx context.Context) ([]Partition, error) {
	return partitions(ctx)
}

// Usage returns capacity statistics for the filesystem mounted at mountpoint
func (p *LinuxProvider) Usage(ctx context.Context, mountpoint string) (*UsageStat, error) {
	return usage(ctx, mountpoint)
}

func partitions(ctx context.Context) ([]Partition, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	result := make([]Partition, 0, len(parts))
	for _, part := range parts {
		result = append(result, Partition{
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			Fstype:     part.Fstype,
		})
	}
	return result, nil
}

func usage(ctx context.Context, mountpoint string) (*UsageStat, error) {
	u, err := disk.UsageWithContext(ctx, mountpoint)
	if err != nil {
		return nil, err
	}
	return &UsageStat{Total: u.Total, Free: u.Free}, nil
}
