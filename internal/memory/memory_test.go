package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neoxid-es/pyspectator/internal/monitor"
	"github.com/neoxid-es/pyspectator/internal/sysstats/sysstatstest"
)

func TestNewVirtual(t *testing.T) {
	p := sysstatstest.New()
	p.SetVirtualMemory(1000, 250)
	p.SetSwapMemory(1, 1)

	m, err := NewVirtual(context.Background(), p, time.Hour)
	if err != nil {
		t.Fatalf("NewVirtual: %v", err)
	}
	defer m.Stop()

	if m.Name() != VirtualName {
		t.Errorf("name = %q", m.Name())
	}
	if m.Total() != 1000 || m.Available() != 250 || m.Used() != 750 {
		t.Errorf("unexpected sample %+v", m.Snapshot())
	}
	if pct, _ := m.Percent(); pct != "75.00%" {
		t.Errorf("percent = %q", pct)
	}
	if p.Calls("swap") != 0 {
		t.Errorf("virtual monitor queried swap")
	}
}

func TestNewSwapUsesFreeBytes(t *testing.T) {
	p := sysstatstest.New()
	p.SetVirtualMemory(8000, 7000)
	p.SetSwapMemory(2000, 500)

	m, err := NewSwap(context.Background(), p, time.Hour)
	if err != nil {
		t.Fatalf("NewSwap: %v", err)
	}
	defer m.Stop()

	if m.Name() != SwapName {
		t.Errorf("name = %q", m.Name())
	}
	if m.Total() != 2000 || m.Available() != 500 {
		t.Errorf("unexpected sample %+v", m.Snapshot())
	}
	if p.Calls("virtual") != 0 {
		t.Errorf("swap monitor queried main memory")
	}
}

func TestNoSwapConfigured(t *testing.T) {
	p := sysstatstest.New()

	m, err := NewSwap(context.Background(), p, time.Hour)
	if err != nil {
		t.Fatalf("NewSwap: %v", err)
	}
	defer m.Stop()

	if _, err := m.Percent(); !errors.Is(err, monitor.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestVirtualRefreshesAvailable(t *testing.T) {
	p := sysstatstest.New()
	p.SetVirtualMemory(1000, 250)

	m, err := NewVirtual(context.Background(), p, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("NewVirtual: %v", err)
	}
	defer m.Stop()

	p.SetVirtualMemory(4000, 600)

	deadline := time.Now().Add(2 * time.Second)
	for m.Available() != 600 {
		if time.Now().After(deadline) {
			t.Fatalf("available never refreshed: %+v", m.Snapshot())
		}
		time.Sleep(time.Millisecond)
	}
	if m.Total() != 1000 {
		t.Errorf("total changed to %d", m.Total())
	}
}

func TestConstructionFailure(t *testing.T) {
	p := sysstatstest.New()
	cause := errors.New("permission denied")
	p.SetError("virtual", cause)
	p.SetError("swap", cause)

	if _, err := NewVirtual(context.Background(), p, time.Second); !errors.Is(err, cause) {
		t.Errorf("NewVirtual: expected %v, got %v", cause, err)
	}

	_, err := NewSwap(context.Background(), p, time.Second)
	var merr *monitor.MeasurementError
	if !errors.As(err, &merr) || merr.Resource != SwapName {
		t.Errorf("NewSwap: expected MeasurementError for %s, got %v", SwapName, err)
	}
}
