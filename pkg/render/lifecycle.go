package render

import (
	"github.com/vango-dev/vdom/pkg/future"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// hookAttr returns the synchronous hook stored under key in v's attrs.
func hookAttr(v *vdom.VNode, key string) func(*vdom.VNode) {
	switch fn := v.Attr(key).(type) {
	case vdom.Hook:
		return fn
	case func(*vdom.VNode):
		return fn
	}
	return nil
}

// asyncHookAttr returns the hook stored under key, which may or may not
// return a future.
func asyncHookAttr(v *vdom.VNode, key string) func(*vdom.VNode) *future.Future {
	switch fn := v.Attr(key).(type) {
	case vdom.AsyncHook:
		return fn
	case func(*vdom.VNode) *future.Future:
		return fn
	}
	if fn := hookAttr(v, key); fn != nil {
		return func(v *vdom.VNode) *future.Future {
			fn(v)
			return nil
		}
	}
	return nil
}

func updateHookAttr(v *vdom.VNode) func(v, old *vdom.VNode) bool {
	switch fn := v.Attr(vdom.HookBeforeUpdate).(type) {
	case vdom.UpdateHook:
		return fn
	case func(v, old *vdom.VNode) bool:
		return fn
	}
	return nil
}

// initLifecycle runs oninit and queues oncreate, component state first.
func (p *pass) initLifecycle(v *vdom.VNode) {
	if v.Kind == vdom.KindComponent {
		if s, ok := v.State.(vdom.Initializer); ok {
			p.runInit(v, s.OnInit)
		}
		if s, ok := v.State.(vdom.Creator); ok {
			p.queueHook(v, vdom.HookCreate, s.OnCreate)
		}
	}
	if fn := asyncHookAttr(v, vdom.HookInit); fn != nil {
		p.runInit(v, fn)
	}
	if fn := hookAttr(v, vdom.HookCreate); fn != nil {
		p.queueHook(v, vdom.HookCreate, fn)
	}
}

func (p *pass) runInit(v *vdom.VNode, fn func(*vdom.VNode) *future.Future) {
	var f *future.Future
	p.call(v, vdom.HookInit, func() { f = fn(v) })
	if f == nil {
		return
	}
	r, redraw := p.r, p.redraw
	f.OnSettle(func(any, error) { r.requestRedraw(redraw) })
}

// updateLifecycle queues onupdate, component state first.
func (p *pass) updateLifecycle(v *vdom.VNode) {
	if v.Kind == vdom.KindComponent {
		if s, ok := v.State.(vdom.Updater); ok {
			p.queueHook(v, vdom.HookUpdate, s.OnUpdate)
		}
	}
	if fn := hookAttr(v, vdom.HookUpdate); fn != nil {
		p.queueHook(v, vdom.HookUpdate, fn)
	}
}

func (p *pass) queueHook(v *vdom.VNode, name string, fn func(*vdom.VNode)) {
	p.queue(func() {
		p.call(v, name, func() { fn(v) })
	})
}

// shouldNotUpdate evaluates both onbeforeupdate hooks. If either returns
// false or fails, v takes over old's DOM and inputs and the subtree is left
// alone.
func (p *pass) shouldNotUpdate(v, old *vdom.VNode) bool {
	proceed := true
	if fn := updateHookAttr(v); fn != nil {
		ok := false
		called := p.call(v, vdom.HookBeforeUpdate, func() { ok = fn(v, old) })
		proceed = proceed && called && ok
	}
	if v.Kind == vdom.KindComponent {
		if s, isGuard := v.State.(vdom.UpdateGuard); isGuard {
			ok := false
			called := p.call(v, vdom.HookBeforeUpdate, func() { ok = s.OnBeforeUpdate(v, old) })
			proceed = proceed && called && ok
		}
	}
	if proceed {
		return false
	}
	v.DOM = old.DOM
	v.DOMSize = old.DOMSize
	v.Instance = old.Instance
	v.Attrs = old.Attrs
	v.Children = old.Children
	v.Text = old.Text
	return true
}
