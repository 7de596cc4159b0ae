package render

import (
	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// initComponent constructs the state of v, runs its init hooks and its first
// view. v.Phase records how far it got. A definition whose constructor or
// view is already running further up the stack renders nothing.
func (p *pass) initComponent(v *vdom.VNode) {
	def := v.Def
	if def == nil || def.New == nil {
		v.Phase = vdom.PhaseFailed
		p.fail(vdomerrors.New("E211").WithDetailf("%s has no constructor.", v.Name()))
		return
	}
	if p.r.locks[def] {
		return
	}
	p.r.locks[def] = true
	defer delete(p.r.locks, def)

	v.Phase = vdom.PhaseInitializing
	var state vdom.Component
	if !p.guard("E211", v, "constructor", func() { state = def.New(v) }) {
		v.Phase = vdom.PhaseFailed
		return
	}
	if state == nil {
		v.Phase = vdom.PhaseFailed
		p.fail(vdomerrors.New("E211").WithDetailf("constructor of %s returned nil.", v.Name()))
		return
	}
	v.State = state
	if b, ok := state.(vdom.Binder); ok {
		b.Bind(v)
	}
	p.initLifecycle(v)

	v.Phase = vdom.PhaseViewPending
	instance, ok := p.view(v)
	if !ok {
		v.Phase = vdom.PhaseFailed
		return
	}
	v.Instance = instance
	v.Phase = vdom.PhaseMounted
}

// view calls the view of v's state and normalizes the result.
func (p *pass) view(v *vdom.VNode) (*vdom.VNode, bool) {
	state, _ := v.State.(vdom.Component)
	if state == nil {
		p.fail(vdomerrors.New("E211").WithDetailf("state of %s is not a component.", v.Name()))
		return nil, false
	}
	var out any
	if !p.guard("E211", v, "view", func() { out = state.View(v) }) {
		return nil, false
	}
	instance, err := vdom.Normalize(out)
	if err != nil {
		p.fail(vdomerrors.FromError(err, "E206").WithDetailf("view of %s returned an unrenderable value.", v.Name()))
		return nil, false
	}
	if instance == v {
		p.fail(vdomerrors.New("E203").WithDetailf("view of %s returned its own vnode.", v.Name()))
		return nil, false
	}
	return instance, true
}

func (p *pass) createComponent(parent dom.Node, v *vdom.VNode, nextSibling dom.Node, ns string) {
	p.initComponent(v)
	if v.Instance == nil {
		v.DOM, v.DOMSize = nil, 0
		return
	}
	p.createNode(parent, v.Instance, nextSibling, ns)
	v.DOM = v.Instance.DOM
	v.DOMSize = 0
	if v.DOM != nil {
		v.DOMSize = v.Instance.DOMSize
	}
}

func (p *pass) updateComponent(parent dom.Node, old, v *vdom.VNode, nextSibling dom.Node, ns string) {
	def := v.Def
	if p.r.locks[def] {
		v.Instance, v.DOM, v.DOMSize = old.Instance, old.DOM, old.DOMSize
		return
	}
	if b, ok := v.State.(vdom.Binder); ok {
		b.Bind(v)
	}
	p.r.locks[def] = true
	instance, ok := p.view(v)
	delete(p.r.locks, def)
	if !ok {
		v.Phase = vdom.PhaseFailed
		v.Instance, v.DOM, v.DOMSize = old.Instance, old.DOM, old.DOMSize
		return
	}
	v.Instance = instance
	p.updateLifecycle(v)

	switch {
	case instance != nil:
		if old.Instance == nil {
			p.createNode(parent, instance, nextSibling, ns)
		} else {
			p.updateNode(parent, old.Instance, instance, nextSibling, ns)
		}
		v.DOM, v.DOMSize = instance.DOM, instance.DOMSize
	case old.Instance != nil:
		p.removeNode(parent, old.Instance)
		v.DOM, v.DOMSize = nil, 0
	default:
		v.DOM, v.DOMSize = old.DOM, old.DOMSize
	}
}
