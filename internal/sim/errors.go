package sim

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTicks = errors.New("sim: tick count must be positive")
	ErrNoWorld      = errors.New("sim: simulator has no world")
)

// RunError records the tick at which a run stopped.
type RunError struct {
	Tick int
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
