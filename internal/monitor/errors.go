package monitor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval is returned when a monitor is created with a non-positive interval
	ErrInvalidInterval = errors.New("monitor: sampling interval must be positive")

	// ErrInvalidState is returned when usage is read from a resource whose total is zero
	ErrInvalidState = errors.New("monitor: invalid state, total is zero")
)

// MeasurementError reports a failed stats query for a resource
type MeasurementError struct {
	Resource string
	Err      error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("measuring %s: %v", e.Resource, e.Err)
}

func (e *MeasurementError) Unwrap() error {
	return e.Err
}
