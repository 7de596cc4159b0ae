package render

import (
	"log/slog"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/future"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// domFor returns the top-level DOM nodes of v that belong to generation gen.
// Generation 0 selects live nodes, skipping any whose removal is pending.
func (r *Renderer) domFor(v *vdom.VNode, gen uint64) []dom.Node {
	var out []dom.Node
	size := max(v.DOMSize, 1)
	for n := v.DOM; n != nil && size > 0; {
		next := n.NextSibling()
		if r.pending[n] == gen {
			out = append(out, n)
			size--
		}
		n = next
	}
	return out
}

// removeDOM detaches the DOM nodes of v that belong to generation gen.
func (r *Renderer) removeDOM(v *vdom.VNode, gen uint64) {
	if v.DOM == nil {
		return
	}
	for _, n := range r.domFor(v, gen) {
		if parent := n.ParentNode(); parent != nil {
			parent.RemoveChild(n)
		}
		if _, ok := r.pending[n]; ok {
			delete(r.pending, n)
			r.npending.Add(-1)
		}
	}
}

// removeNode removes v, or defers it while onbeforeremove futures are
// pending. The node's DOM stays in place, tagged with this pass's
// generation, until every future has settled.
func (p *pass) removeNode(parent dom.Node, v *vdom.VNode) {
	p.stats.Removed++
	var blockers []*future.Future
	if v.Kind == vdom.KindComponent {
		if s, ok := v.State.(vdom.RemoveGuard); ok {
			var f *future.Future
			p.call(v, vdom.HookBeforeRemove, func() { f = s.OnBeforeRemove(v) })
			if f != nil {
				blockers = append(blockers, f)
			}
		}
	}
	if fn := asyncHookAttr(v, vdom.HookBeforeRemove); fn != nil {
		var f *future.Future
		p.call(v, vdom.HookBeforeRemove, func() { f = fn(v) })
		if f != nil {
			blockers = append(blockers, f)
		}
	}

	if len(blockers) == 0 {
		p.onremove(v)
		p.r.removeDOM(v, 0)
		return
	}

	p.stats.Deferred++
	r, gen := p.r, p.gen
	for _, n := range r.domFor(v, 0) {
		r.pending[n] = gen
		r.npending.Add(1)
	}
	remaining := len(blockers)
	for _, f := range blockers {
		f.OnSettle(func(any, error) {
			r.schedule(func() {
				remaining--
				if remaining == 0 {
					r.finishRemoval(v, gen)
				}
			})
		})
	}
}

// finishRemoval completes a deferred removal once all of its blockers have
// settled.
func (r *Renderer) finishRemoval(v *vdom.VNode, gen uint64) {
	p := &pass{r: r, gen: gen}
	p.onremove(v)
	r.removeDOM(v, gen)
	if p.err != nil {
		r.logger.Error("deferred removal failed",
			slog.String("node", v.Name()),
			slog.Uint64("pass", gen),
			slog.Any("error", p.err),
		)
	}
}

// onremove calls onremove hooks for v and its whole subtree, parents first.
func (p *pass) onremove(v *vdom.VNode) {
	if v.Kind == vdom.KindComponent {
		if s, ok := v.State.(vdom.Remover); ok {
			p.call(v, vdom.HookRemove, func() { s.OnRemove(v) })
		}
	}
	if fn := hookAttr(v, vdom.HookRemove); fn != nil {
		p.call(v, vdom.HookRemove, func() { fn(v) })
	}
	if v.Kind == vdom.KindComponent {
		if v.Instance != nil {
			p.onremove(v.Instance)
		}
		return
	}
	for _, c := range v.Children {
		if c != nil {
			p.onremove(c)
		}
	}
}
