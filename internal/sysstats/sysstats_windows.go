//go:build windows

package sysstats

import (
	"context"

	"github.com/StackExchange/wmi"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

const mebibyte = 1024 * 1024

// WindowsProvider implements stats queries for Windows
type WindowsProvider struct{}

// newPlatformProvider creates a new Windows stats provider
func newPlatformProvider() Provider {
	return &WindowsProvider{}
}

// Win32_PageFileUsage represents WMI page file data, sizes in MiB
type Win32_PageFileUsage struct {
	Name              string
	AllocatedBaseSize uint32
	CurrentUsage      uint32
}

// VirtualMemory returns main memory statistics
func (p *WindowsProvider) VirtualMemory(ctx context.Context) (*VirtualMemoryStat, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return &VirtualMemoryStat{Total: v.Total, Available: v.Available}, nil
}

// SwapMemory returns page file statistics. gopsutil reports the commit
// charge on Windows, so the page files are summed from WMI when available.
func (p *WindowsProvider) SwapMemory(ctx context.Context) (*SwapMemoryStat, error) {
	var pageFiles []Win32_PageFileUsage
	err := wmi.Query("SELECT Name, AllocatedBaseSize, CurrentUsage FROM Win32_PageFileUsage", &pageFiles)
	if err == nil && len(pageFiles) > 0 {
		stat := &SwapMemoryStat{}
		for _, pf := range pageFiles {
			total := uint64(pf.AllocatedBaseSize) * mebibyte
			used := uint64(pf.CurrentUsage) * mebibyte
			if used > total {
				used = total
			}
			stat.Total += total
			stat.Free += total - used
		}
		return stat, nil
	}

	s, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return &SwapMemoryStat{Total: s.Total, Free: s.Free}, nil
}

// Partitions returns the mounted volumes in enumeration order
func (p *WindowsProvider) Partitions(ctx context.Context) ([]Partition, error) {
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

// Usage returns capacity statistics for the volume mounted at mountpoint
func (p *WindowsProvider) Usage(ctx context.Context, mountpoint string) (*UsageStat, error) {
	u, err := disk.UsageWithContext(ctx, mountpoint)
	if err != nil {
		return nil, err
	}
	return &UsageStat{Total: u.Total, Free: u.Free}, nil
}
