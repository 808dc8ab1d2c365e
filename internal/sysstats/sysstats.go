package sysstats

import "context"

// VirtualMemoryStat holds main memory byte counts
type VirtualMemoryStat struct {
	Total     uint64 `json:"total"`
	Available uint64 `json:"available"`
}

// SwapMemoryStat holds swap space byte counts
type SwapMemoryStat struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
}

// Partition describes a mounted storage device
type Partition struct {
	Device     string `json:"device"`
	Mountpoint string `json:"mountpoint"`
	Fstype     string `json:"fstype"`
}

// UsageStat holds capacity byte counts for a mountpoint
type UsageStat struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
}

// Provider queries resource statistics from the operating system.
// Every call reflects the state at call time.
type Provider interface {
	VirtualMemory(ctx context.Context) (*VirtualMemoryStat, error)
	SwapMemory(ctx context.Context) (*SwapMemoryStat, error)
	Partitions(ctx context.Context) ([]Partition, error)
	Usage(ctx context.Context, mountpoint string) (*UsageStat, error)
}

// NewProvider creates a stats provider for the current platform
func NewProvider() Provider {
	return newPlatformProvider()
}
