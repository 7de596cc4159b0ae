// Package future provides a one-shot completion handle.
//
// A Future is what lifecycle hooks return when their work completes later,
// for example when an exit animation finishes before a node may be removed.
// Settlement callbacks run synchronously on the goroutine that settles the
// future, after any internal locks are released.
package future

import (
	"sync"
)

// State is the settlement state of a Future.
type State uint8

const (
	Pending State = iota
	Resolved
	Rejected
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Future is a value that settles at most once.
type Future struct {
	mu        sync.Mutex
	state     State
	value     any
	err       error
	callbacks []func(value any, err error)
}

// New creates a pending future.
func New() *Future {
	return &Future{}
}

// Done returns an already resolved future.
func Done(value any) *Future {
	return &Future{state: Resolved, value: value}
}

// Failed returns an already rejected future.
func Failed(err error) *Future {
	return &Future{state: Rejected, err: err}
}

// Resolve settles the future with value. It reports false if the future was
// already settled.
func (f *Future) Resolve(value any) bool {
	return f.settle(Resolved, value, nil)
}

// Reject settles the future with err. It reports false if the future was
// already settled.
func (f *Future) Reject(err error) bool {
	return f.settle(Rejected, nil, err)
}

func (f *Future) settle(state State, value any, err error) bool {
	f.mu.Lock()
	if f.state != Pending {
		f.mu.Unlock()
		return false
	}
	f.state, f.value, f.err = state, value, err
	cbs := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	for _, cb := range cbs {
		cb(value, err)
	}
	return true
}

// OnSettle registers cb to run when the future settles. If it has already
// settled, cb runs immediately.
func (f *Future) OnSettle(cb func(value any, err error)) {
	f.mu.Lock()
	if f.state == Pending {
		f.callbacks = append(f.callbacks, cb)
		f.mu.Unlock()
		return
	}
	value, err := f.value, f.err
	f.mu.Unlock()
	cb(value, err)
}

// State returns the current settlement state.
func (f *Future) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Result returns the settled value and error. Both are zero while pending.
func (f *Future) Result() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// All returns a future that resolves once every input has settled, or
// rejects with the first rejection. Nil inputs are skipped.
func All(fs ...*Future) *Future {
	out := New()
	remaining := 0
	for _, f := range fs {
		if f != nil {
			remaining++
		}
	}
	if remaining == 0 {
		out.Resolve(nil)
		return out
	}
	var mu sync.Mutex
	for _, f := range fs {
		if f == nil {
			continue
		}
		f.OnSettle(func(_ any, err error) {
			if err != nil {
				out.Reject(err)
				return
			}
			mu.Lock()
			remaining--
			last := remaining == 0
			mu.Unlock()
			if last {
				out.Resolve(nil)
			}
		})
	}
	return out
}
