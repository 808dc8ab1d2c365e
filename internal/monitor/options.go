package monitor

import (
	"time"

	"go.uber.org/zap"
)

const defaultTickTimeout = 10 * time.Second

type options struct {
	logger      *zap.Logger
	tickTimeout time.Duration
}

// Option configures a monitor
type Option func(*options)

// WithLogger sets the logger used to report failed ticks
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTickTimeout bounds how long a single tick may spend querying stats
func WithTickTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.tickTimeout = d
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:      zap.NewNop(),
		tickTimeout: defaultTickTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
