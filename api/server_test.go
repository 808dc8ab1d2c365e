package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/neoxid-es/pyspectator/internal/disk"
	"github.com/neoxid-es/pyspectator/internal/memory"
	"github.com/neoxid-es/pyspectator/internal/sysstats"
	"github.com/neoxid-es/pyspectator/internal/sysstats/sysstatstest"
)

func newTestServer(t *testing.T, withSwap bool) *Server {
	t.Helper()
	ctx := context.Background()

	p := sysstatstest.New()
	p.SetVirtualMemory(1000, 250)
	p.SetSwapMemory(0, 0)
	p.AddDevice(sysstats.Partition{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"}, 2000, 1500)
	p.AddDevice(sysstats.Partition{Device: "/dev/sdb1", Mountpoint: "/data", Fstype: "xfs"}, 4000, 1000)

	var monitors Monitors
	var err error
	if monitors.Virtual, err = memory.NewVirtual(ctx, p, time.Hour); err != nil {
		t.Fatalf("NewVirtual: %v", err)
	}
	if withSwap {
		if monitors.Swap, err = memory.NewSwap(ctx, p, time.Hour); err != nil {
			t.Fatalf("NewSwap: %v", err)
		}
	}
	if monitors.Disks, err = disk.ConnectedDevices(ctx, p, time.Hour); err != nil {
		t.Fatalf("ConnectedDevices: %v", err)
	}

	s := NewServer(monitors, nil)
	t.Cleanup(func() { monitors.Stop() })
	return s
}

func get(t *testing.T, s *Server, target string, out any) int {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: decoding body: %v", target, err)
		}
	}
	return resp.StatusCode
}

func TestGetMemory(t *testing.T) {
	s := newTestServer(t, true)

	var info ResourceInfo
	if code := get(t, s, "/api/memory", &info); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if info.Name != memory.VirtualName || info.Total != 1000 || info.Available != 250 || info.Used != 750 {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Percent == nil || *info.Percent != "75.00%" {
		t.Errorf("percent = %v", info.Percent)
	}
	if info.Usage == nil || *info.Usage != 75 {
		t.Errorf("usage = %v", info.Usage)
	}
}

func TestGetSwapZeroTotal(t *testing.T) {
	s := newTestServer(t, true)

	var info ResourceInfo
	if code := get(t, s, "/api/swap", &info); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if info.Percent != nil || info.Usage != nil {
		t.Errorf("expected no percent for zero total, got %+v", info)
	}
	if info.Error == "" {
		t.Error("expected invalid state error in body")
	}
}

func TestGetSwapDisabled(t *testing.T) {
	s := newTestServer(t, false)

	if code := get(t, s, "/api/swap", nil); code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
}

func TestGetDisks(t *testing.T) {
	s := newTestServer(t, false)

	var disks []DiskInfo
	if code := get(t, s, "/api/disk", &disks); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(disks) != 2 {
		t.Fatalf("got %d disks", len(disks))
	}
	if disks[0].Device != "/dev/sda1" || disks[1].Device != "/dev/sdb1" {
		t.Errorf("unexpected order %s, %s", disks[0].Device, disks[1].Device)
	}
	if disks[1].Mountpoint != "/data" || disks[1].Filesystem != "xfs" || *disks[1].Percent != "75.00%" {
		t.Errorf("unexpected disk %+v", disks[1])
	}
}

func TestGetDevice(t *testing.T) {
	s := newTestServer(t, false)

	var info DiskInfo
	target := "/api/disk/device?name=" + url.QueryEscape("/dev/sda1")
	if code := get(t, s, target, &info); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if info.Device != "/dev/sda1" || info.Used != 500 || *info.Percent != "25.00%" {
		t.Errorf("unexpected info %+v", info)
	}

	if code := get(t, s, "/api/disk/device?name="+url.QueryEscape("/dev/sdz1"), nil); code != http.StatusNotFound {
		t.Errorf("unknown device status = %d, want 404", code)
	}
	if code := get(t, s, "/api/disk/device", nil); code != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want 400", code)
	}
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, true)

	var body struct {
		Status   string `json:"status"`
		Monitors int    `json:"monitors"`
	}
	if code := get(t, s, "/api/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body.Status != "ok" || body.Monitors != 4 {
		t.Errorf("unexpected body %+v", body)
	}
}
