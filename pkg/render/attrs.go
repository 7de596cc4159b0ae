package render

import (
	"reflect"
	"strings"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

func (p *pass) setAttrs(v *vdom.VNode, el dom.Element, ns string) {
	// The DOM interprets other input attributes according to the type.
	typ := v.Attr("type")
	if v.Tag == "input" && typ != nil {
		el.SetAttribute("type", stringify(typ))
	}
	isFile := v.Tag == "input" && typ == "file"
	v.Attrs.Range(func(key string, value any) bool {
		p.setAttr(v, el, key, nil, value, ns, isFile)
		return true
	})
}

func (p *pass) updateAttrs(v *vdom.VNode, el dom.Element, old, attrs *vdom.Attrs, ns string) {
	if old != nil && old == attrs {
		if attrs.IsStatic() {
			return
		}
		p.warn("W001", v, "Don't reuse attrs object, use new object for every redraw")
	}

	if old != nil {
		old.Range(func(key string, value any) bool {
			if value != nil && (attrs == nil || attrs.Value(key) == nil) {
				p.removeAttr(v, el, key, value, ns)
			}
			return true
		})
	}
	if attrs == nil {
		return
	}

	typ := attrs.Value("type")
	if v.Tag == "input" && typ != nil && !equal(typ, old.Value("type")) {
		el.SetAttribute("type", stringify(typ))
	}
	isFile := v.Tag == "input" && typ == "file"
	attrs.Range(func(key string, value any) bool {
		p.setAttr(v, el, key, old.Value(key), value, ns, isFile)
		return true
	})
}

func isEventKey(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n' && !vdom.IsLifecycleKey(key)
}

// isObject reports whether value is a composite that must always be
// re-applied, such as a style map.
func isObject(value any) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Struct, reflect.Pointer:
		return true
	}
	return false
}

func (p *pass) setAttr(v *vdom.VNode, el dom.Element, key string, old, value any, ns string, isFile bool) {
	if key == "key" || key == "is" || value == nil || vdom.IsLifecycleKey(key) ||
		(key == "type" && v.Tag == "input") {
		return
	}
	if isEventKey(key) {
		p.updateEvent(v, el, key, value)
		return
	}
	if equal(old, value) && !p.isFormAttribute(v, el, key) && !isObject(value) {
		return
	}

	switch {
	case strings.HasPrefix(key, "xlink:"):
		el.SetAttributeNS(dom.NamespaceXLink, key, stringify(value))
	case key == "style":
		updateStyle(el, old, value)
	case hasPropertyKey(v, el, key, ns):
		if key == "value" && p.skipValue(v, el, old, value, isFile) {
			return
		}
		el.SetProperty(key, value)
	default:
		if b, ok := value.(bool); ok {
			if b {
				el.SetAttribute(key, "")
			} else {
				el.RemoveAttribute(key)
			}
			return
		}
		if key == "className" {
			key = "class"
		}
		el.SetAttribute(key, stringify(value))
	}
}

// skipValue reports whether writing value to the value property must be
// skipped to preserve caret position, open dropdowns or a file selection.
func (p *pass) skipValue(v *vdom.VNode, el dom.Element, old, value any, isFile bool) bool {
	s := stringify(value)
	current := stringify(el.Property("value"))
	switch v.Tag {
	case "input", "textarea":
		if current == s && (isFile || p.isActive(el)) {
			return true
		}
	case "select", "option":
		if old != nil && current == s {
			return true
		}
	}
	if isFile && s != "" {
		p.warn("W002", v, "`value` is read-only on file inputs!")
		return true
	}
	return false
}

func (p *pass) isActive(el dom.Element) bool {
	return p.doc != nil && p.doc.ActiveElement() == el
}

// isFormAttribute reports whether key is backed by live state the user can
// change, so that equality with the previous render proves nothing.
func (p *pass) isFormAttribute(v *vdom.VNode, el dom.Element, key string) bool {
	switch key {
	case "value", "checked", "selectedIndex":
		return true
	case "selected":
		if p.isActive(el) {
			return true
		}
	}
	if v.Tag == "option" && p.doc != nil {
		if active := p.doc.ActiveElement(); active != nil {
			return el.ParentNode() == dom.Node(active)
		}
	}
	return false
}

// hasPropertyKey reports whether key should be written as a DOM property
// rather than an attribute.
func hasPropertyKey(v *vdom.VNode, el dom.Element, key, ns string) bool {
	if ns != "" {
		return false
	}
	custom := strings.Contains(v.Tag, "-") || v.Is() != ""
	if !custom {
		switch key {
		case "href", "list", "form", "width", "height":
			return false
		}
	}
	return el.HasProperty(key)
}

func (p *pass) removeAttr(v *vdom.VNode, el dom.Element, key string, old any, ns string) {
	if key == "key" || key == "is" || old == nil || vdom.IsLifecycleKey(key) {
		return
	}
	if isEventKey(key) {
		p.updateEvent(v, el, key, nil)
		return
	}
	if key == "style" {
		updateStyle(el, old, nil)
		return
	}
	if hasPropertyKey(v, el, key, ns) && key != "className" && key != "title" &&
		!(key == "value" && (v.Tag == "option" || v.Tag == "select" && el.Property("selectedIndex") == -1 && p.isActive(el))) &&
		!(v.Tag == "input" && key == "type") {
		el.SetProperty(key, nil)
		return
	}
	if strings.HasPrefix(key, "xlink:") {
		el.RemoveAttribute(key)
		return
	}
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		key = key[i+1:]
	}
	if key == "className" {
		key = "class"
	}
	if b, ok := old.(bool); !ok || b {
		el.RemoveAttribute(key)
	}
}

// setLateSelectAttrs applies value and selectedIndex to a select once its
// options exist.
func (p *pass) setLateSelectAttrs(v *vdom.VNode, el dom.Element) {
	if value, ok := v.Attrs.Get("value"); ok {
		if value == nil {
			if el.Property("selectedIndex") != -1 {
				el.SetProperty("value", nil)
			}
		} else {
			s := stringify(value)
			if stringify(el.Property("value")) != s || el.Property("selectedIndex") == -1 {
				el.SetProperty("value", s)
			}
		}
	}
	if idx, ok := v.Attrs.Get("selectedIndex"); ok && idx != nil {
		if !equal(el.Property("selectedIndex"), idx) {
			el.SetProperty("selectedIndex", idx)
		}
	}
}
