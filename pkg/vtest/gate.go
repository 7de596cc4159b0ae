package vtest

import (
	"errors"
	"sync"

	"github.com/vango-dev/vdom/pkg/future"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// ErrGateUnknown is returned when releasing a gate nothing has waited on.
var ErrGateUnknown = errors.New("gate was never opened by a hook")

// Gates hands out named futures to async lifecycle hooks and lets a test
// settle them in any order.
//
// Example:
//
//	gates := vtest.NewGates()
//	h.MustRender(vdom.Li(vdom.Key("a"), vdom.OnBeforeRemove(gates.Hook("a"))))
//	h.MustRender(nil)
//	gates.Release("a") // the li is detached now
type Gates struct {
	mu      sync.Mutex
	futures map[string]*future.Future
}

// NewGates creates an empty set of gates.
func NewGates() *Gates {
	return &Gates{futures: make(map[string]*future.Future)}
}

// Future returns the future for name, creating it on first use.
func (g *Gates) Future(name string) *future.Future {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.futures[name]
	if !ok {
		f = future.New()
		g.futures[name] = f
	}
	return f
}

// Hook returns an async hook that waits on the gate called name.
func (g *Gates) Hook(name string) vdom.AsyncHook {
	return func(*vdom.VNode) *future.Future { return g.Future(name) }
}

// Release resolves the gate called name.
func (g *Gates) Release(name string) error {
	f, err := g.lookup(name)
	if err != nil {
		return err
	}
	f.Resolve(nil)
	return nil
}

// Fail rejects the gate called name with err.
func (g *Gates) Fail(name string, err error) error {
	f, lerr := g.lookup(name)
	if lerr != nil {
		return lerr
	}
	f.Reject(err)
	return nil
}

// Waiting returns how many gates have not settled.
func (g *Gates) Waiting() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, f := range g.futures {
		if f.State() == future.Pending {
			n++
		}
	}
	return n
}

func (g *Gates) lookup(name string) (*future.Future, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.futures[name]
	if !ok {
		return nil, ErrGateUnknown
	}
	return f, nil
}
