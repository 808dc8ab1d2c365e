package monitor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// TickFunc is invoked once per interval by a Periodic
type TickFunc func(ctx context.Context) error

// Periodic runs a TickFunc on its own goroutine every interval until stopped.
// A tick that fails or panics is logged and the schedule carries on.
type Periodic struct {
	interval    time.Duration
	tickTimeout time.Duration
	tick        TickFunc
	logger      *zap.Logger

	ticks    atomic.Uint64
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// NewPeriodic starts calling tick every interval
func NewPeriodic(interval time.Duration, tick TickFunc, opts ...Option) (*Periodic, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if tick == nil {
		return nil, errors.New("monitor: nil tick function")
	}

	o := newOptions(opts)
	ctx, cancel := context.WithCancel(context.Background())

	p := &Periodic{
		interval:    interval,
		tickTimeout: o.tickTimeout,
		tick:        tick,
		logger:      o.logger,
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	go p.loop(ctx)
	return p, nil
}

// Interval returns the time between ticks
func (p *Periodic) Interval() time.Duration {
	return p.interval
}

// Ticks returns the number of ticks run so far, failed ones included
func (p *Periodic) Ticks() uint64 {
	return p.ticks.Load()
}

// Stop ends the schedule and waits for an in-flight tick to return.
// No tick starts after Stop returns. It must not be called from within a tick.
func (p *Periodic) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		<-p.done
	})
}

func (p *Periodic) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// select picks randomly when both are ready
			if ctx.Err() != nil {
				return
			}
			p.runTick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Periodic) runTick(ctx context.Context) {
	defer p.ticks.Add(1)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("tick panicked", zap.Any("panic", r))
		}
	}()

	tickCtx, cancel := context.WithTimeout(ctx, p.tickTimeout)
	defer cancel()

	if err := p.tick(tickCtx); err != nil {
		p.logger.Warn("tick failed", zap.Error(err))
	}
}
