package render

import (
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/future"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// eventTable is the single listener an element registers for all of its
// event types. Swapping a handler only touches the table.
type eventTable struct {
	r        *Renderer
	redraw   func()
	handlers map[string]any
}

// HandleEvent implements dom.EventListener.
func (t *eventTable) HandleEvent(ev *dom.Event) {
	var result any
	switch h := t.handlers["on"+ev.Type].(type) {
	case func():
		h()
	case func(*dom.Event):
		h(ev)
	case func(*dom.Event) bool:
		result = h(ev)
	case func(*dom.Event) *future.Future:
		if f := h(ev); f != nil {
			result = f
		}
	case func(*dom.Event) any:
		result = h(ev)
	case func(string):
		s, _ := ev.Detail.(string)
		h(s)
	case dom.EventListener:
		h.HandleEvent(ev)
	default:
		return
	}

	if t.redraw != nil && !ev.RedrawSkipped() {
		t.redraw()
		if f, ok := result.(*future.Future); ok {
			f.OnSettle(func(any, error) {
				if t.redraw != nil && !ev.RedrawSkipped() {
					t.r.requestRedraw(t.redraw)
				}
			})
		}
	}
	if b, ok := result.(bool); ok && !b {
		ev.PreventDefault()
		ev.StopPropagation()
	}
}

func isHandler(value any) bool {
	switch value.(type) {
	case func(), func(*dom.Event), func(*dom.Event) bool, func(*dom.Event) *future.Future,
		func(*dom.Event) any, func(string), dom.EventListener:
		return true
	}
	return false
}

// updateEvent installs, swaps or removes the handler for key ("onclick")
// in the element's event table.
func (p *pass) updateEvent(v *vdom.VNode, el dom.Element, key string, value any) {
	typ := key[2:]
	t, _ := v.Events.(*eventTable)
	if t == nil {
		if !isHandler(value) {
			return
		}
		t = &eventTable{r: p.r, handlers: make(map[string]any)}
		v.Events = t
	}
	t.redraw = p.redraw

	if isHandler(value) {
		if _, ok := t.handlers[key]; !ok {
			el.AddEventListener(typ, t)
		}
		t.handlers[key] = value
		return
	}
	if _, ok := t.handlers[key]; ok {
		el.RemoveEventListener(typ, t)
		delete(t.handlers, key)
	}
}
