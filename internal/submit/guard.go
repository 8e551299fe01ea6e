package submit

import (
	"sync"
	"sync/atomic"

	"learnlang/internal/services"
)

// guard is the Idle -> Submitting -> Idle state of one form instance.
type guard struct {
	busy atomic.Bool

	mu      sync.Mutex
	lastErr error
}

// Busy reports whether a submission is in flight.
func (g *guard) Busy() bool {
	return g.busy.Load()
}

// Err returns the error from the most recent attempt, or nil.
func (g *guard) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

func (g *guard) setErr(err error) {
	g.mu.Lock()
	g.lastErr = err
	g.mu.Unlock()
}

// run executes fn while holding the busy flag. A call that finds the flag
// already raised returns ErrBusy and leaves the last error untouched.
func run[T any](g *guard, fn func() (T, error)) (T, error) {
	var zero T
	if !g.busy.CompareAndSwap(false, true) {
		return zero, services.ErrBusy
	}
	defer g.busy.Store(false)

	g.setErr(nil)
	out, err := fn()
	g.setErr(err)
	if err != nil {
		return zero, err
	}
	return out, nil
}
