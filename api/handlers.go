package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/neoxid-es/pyspectator/internal/disk"
	"github.com/neoxid-es/pyspectator/internal/monitor"
)

// ResourceInfo is the JSON view of a resource monitor
type ResourceInfo struct {
	Name      string   `json:"name"`
	Total     uint64   `json:"total_bytes"`
	Available uint64   `json:"available_bytes"`
	Used      uint64   `json:"used_bytes"`
	Percent   *string  `json:"percent"`
	Usage     *float64 `json:"usage_percent"`
	Error     string   `json:"error,omitempty"`
	SampledAt int64    `json:"sampled_at"`
}

// DiskInfo adds the device descriptor to ResourceInfo
type DiskInfo struct {
	ResourceInfo
	Device     string `json:"device"`
	Mountpoint string `json:"mountpoint"`
	Filesystem string `json:"filesystem"`
}

func newResourceInfo(r *monitor.Resource) ResourceInfo {
	// one snapshot so every field describes the same sample
	s := r.Snapshot()
	info := ResourceInfo{
		Name:      r.Name(),
		Total:     s.Total,
		Available: s.Available,
		Used:      s.Used(),
		SampledAt: s.SampledAt.Unix(),
	}

	pct, err := s.Percent()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	usage, _ := s.UsedPercent()
	info.Percent = &pct
	info.Usage = &usage
	return info
}

func newDiskInfo(m *disk.Monitor) DiskInfo {
	return DiskInfo{
		ResourceInfo: newResourceInfo(m.Resource),
		Device:       m.Device(),
		Mountpoint:   m.Mountpoint(),
		Filesystem:   m.Fstype(),
	}
}

// Memory endpoint
func (s *Server) getMemory(c *fiber.Ctx) error {
	if s.monitors.Virtual == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "memory monitoring disabled"})
	}
	return c.JSON(newResourceInfo(s.monitors.Virtual))
}

// Swap endpoint
func (s *Server) getSwap(c *fiber.Ctx) error {
	if s.monitors.Swap == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "swap monitoring disabled"})
	}
	return c.JSON(newResourceInfo(s.monitors.Swap))
}

// Disk endpoints
func (s *Server) getDisks(c *fiber.Ctx) error {
	disks := make([]DiskInfo, 0, len(s.monitors.Disks))
	for _, m := range s.monitors.Disks {
		disks = append(disks, newDiskInfo(m))
	}
	return c.JSON(disks)
}

func (s *Server) getDevice(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "device name required"})
	}

	for _, m := range s.monitors.Disks {
		if m.Device() == name {
			return c.JSON(newDiskInfo(m))
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": (&disk.DeviceNotFoundError{Device: name}).Error()})
}
