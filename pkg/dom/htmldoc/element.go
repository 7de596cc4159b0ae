package htmldoc

import (
	"bytes"
	"reflect"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/vdom/pkg/dom"
)

// Element is an element node.
type Element struct {
	node
	props     map[string]any
	style     *style
	listeners map[string][]dom.EventListener
}

var _ dom.Element = (*Element)(nil)

// TagName implements dom.Element.
func (e *Element) TagName() string { return e.n.Data }

// NamespaceURI implements dom.Element.
func (e *Element) NamespaceURI() string { return longNamespace(e.n.Namespace) }

func (e *Element) isHTML() bool { return e.n.Namespace == "" }

func (e *Element) attrName(name string) string {
	if e.isHTML() {
		return strings.ToLower(name)
	}
	return name
}

func (e *Element) findAttr(name string) int {
	prefix, local := "", name
	if i := strings.IndexByte(name, ':'); i >= 0 {
		prefix, local = name[:i], name[i+1:]
	}
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return i
		}
		if prefix != "" && a.Namespace == prefix && a.Key == local {
			return i
		}
	}
	return -1
}

// GetAttribute implements dom.Element.
func (e *Element) GetAttribute(name string) (string, bool) {
	if i := e.findAttr(e.attrName(name)); i >= 0 {
		return e.n.Attr[i].Val, true
	}
	return "", false
}

// SetAttribute implements dom.Element.
func (e *Element) SetAttribute(name, value string) {
	name = e.attrName(name)
	if name == "style" {
		e.Style().SetCSSText(value)
		return
	}
	e.setAttr("", name, value)
}

// SetAttributeNS implements dom.Element.
func (e *Element) SetAttributeNS(ns, name, value string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	e.setAttr(attrPrefix(ns), name, value)
}

func (e *Element) setAttr(prefix, name, value string) {
	key := name
	if prefix != "" {
		key = prefix + ":" + name
	}
	if i := e.findAttr(key); i >= 0 {
		e.n.Attr[i].Val = value
	} else {
		e.n.Attr = append(e.n.Attr, html.Attribute{Namespace: prefix, Key: name, Val: value})
	}
	e.doc.stats.AttrWrites++
	e.doc.record(Mutation{Op: OpAttr, Node: e.id, Name: key, Value: value})
}

// RemoveAttribute implements dom.Element.
func (e *Element) RemoveAttribute(name string) {
	name = e.attrName(name)
	i := e.findAttr(name)
	if i < 0 {
		return
	}
	e.n.Attr = append(e.n.Attr[:i], e.n.Attr[i+1:]...)
	if name == "style" && e.style != nil {
		e.style.reset()
	}
	e.doc.stats.AttrWrites++
	e.doc.record(Mutation{Op: OpRemAttr, Node: e.id, Name: name})
}

// Attributes returns the element's attributes in document order, with
// namespaced names qualified by their prefix.
func (e *Element) Attributes() map[string]string {
	out := make(map[string]string, len(e.n.Attr))
	for _, a := range e.n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		out[key] = a.Val
	}
	return out
}

// InnerHTML implements dom.Element.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// SetInnerHTML implements dom.Element.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := e.doc.ParseHTML(markup, e.n.Data, e.NamespaceURI())
	if err != nil {
		return err
	}
	for e.n.FirstChild != nil {
		c := e.n.FirstChild
		e.doc.detached(c)
		e.n.RemoveChild(c)
	}
	for _, n := range nodes {
		e.n.AppendChild(Unwrap(n))
	}
	e.doc.stats.InnerHTMLWrites++
	e.doc.record(Mutation{Op: OpInnerHTML, Node: e.id, Value: markup})
	return nil
}

// OuterHTML serializes the element and its subtree.
func (e *Element) OuterHTML() string { return outer(e.n) }

// Focus implements dom.Element. Detached elements cannot take focus.
func (e *Element) Focus() {
	if e.doc.connected(e.n) {
		e.doc.active = e
	}
}

// Blur implements dom.Element.
func (e *Element) Blur() {
	if e.doc.active == e {
		e.doc.active = nil
	}
}

// AddEventListener implements dom.Element. Adding the same listener twice for
// a type is a no-op.
func (e *Element) AddEventListener(typ string, l dom.EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]dom.EventListener)
	}
	for _, x := range e.listeners[typ] {
		if sameListener(x, l) {
			return
		}
	}
	e.listeners[typ] = append(e.listeners[typ], l)
	e.doc.stats.ListenerAdds++
}

// RemoveEventListener implements dom.Element.
func (e *Element) RemoveEventListener(typ string, l dom.EventListener) {
	list := e.listeners[typ]
	for i, x := range list {
		if sameListener(x, l) {
			e.listeners[typ] = append(list[:i:i], list[i+1:]...)
			if len(e.listeners[typ]) == 0 {
				delete(e.listeners, typ)
			}
			e.doc.stats.ListenerRemoves++
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (e *Element) ListenerCount(typ string) int { return len(e.listeners[typ]) }

// DispatchEvent implements dom.Element. The event bubbles to the root.
func (e *Element) DispatchEvent(ev *dom.Event) bool {
	if ev.Target == nil {
		ev.Target = e
	}
	for n := e.n; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		el := e.doc.wrap(n).(*Element)
		list := append([]dom.EventListener(nil), el.listeners[ev.Type]...)
		ev.CurrentTarget = el
		for _, l := range list {
			l.HandleEvent(ev)
		}
		if ev.PropagationStopped() {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.DefaultPrevented()
}

// sameListener compares listeners without panicking on uncomparable values.
func sameListener(a, b dom.EventListener) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func attrPrefix(ns string) string {
	switch ns {
	case dom.NamespaceXLink:
		return "xlink"
	case "http://www.w3.org/XML/1998/namespace":
		return "xml"
	case "http://www.w3.org/2000/xmlns/":
		return "xmlns"
	default:
		return ns
	}
}
