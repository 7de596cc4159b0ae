package render

import (
	"fmt"
	"log/slog"
	"reflect"

	"go.uber.org/multierr"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// pass holds the state of one call to Render. Continuations of deferred
// removals get a pass of their own carrying the generation that deferred
// them.
type pass struct {
	r      *Renderer
	doc    dom.Document
	gen    uint64
	redraw func()

	// Queued oncreate and onupdate callbacks, in node order.
	hooks []func()

	err   error
	stats PassStats
}

func (p *pass) fail(err error) {
	p.err = multierr.Append(p.err, err)
}

func (p *pass) warn(code string, v *vdom.VNode, msg string, args ...any) {
	p.stats.Warnings++
	args = append([]any{slog.String("code", code), slog.String("node", v.Name())}, args...)
	p.r.logger.Warn(msg, args...)
}

// guard runs fn, converting a panic into an error with the given code.
func (p *pass) guard(code string, v *vdom.VNode, what string, fn func()) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			e := vdomerrors.New(code).WithDetailf("%s of %s panicked: %v", what, v.Name(), rec)
			if err, isErr := rec.(error); isErr {
				e = e.Wrap(err)
			}
			p.fail(e)
			ok = false
		}
	}()
	fn()
	return true
}

// call runs a lifecycle hook of v. Replacing v.State from inside a hook is
// rejected and undone.
func (p *pass) call(v *vdom.VNode, hook string, fn func()) bool {
	p.stats.Hooks++
	original := v.State
	ok := p.guard("E210", v, hook, fn)
	if !sameState(v.State, original) {
		v.State = original
		p.fail(vdomerrors.New("E204").WithDetailf("%s of %s replaced the component state.", hook, v.Name()))
		return false
	}
	return ok
}

// queue runs fn after the pass's DOM work.
func (p *pass) queue(fn func()) {
	p.hooks = append(p.hooks, fn)
}

func sameState(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	switch ta.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return true
}

// stringify converts an attribute value to its DOM string form.
func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// equal compares two attribute values without panicking on uncomparable
// types, which are never considered equal.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
