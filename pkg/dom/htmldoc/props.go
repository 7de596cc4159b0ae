package htmldoc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

type propKind uint8

const (
	propString propKind = iota
	propBool
	propInt
	propPlain
	propValue
	propChecked
	propSelected
	propSelectedIndex
	propInnerHTML
	propTextContent
)

type propDef struct {
	kind propKind
	attr string
}

func str(attr string) propDef  { return propDef{propString, attr} }
func boolean(a string) propDef { return propDef{propBool, a} }
func integer(a string) propDef { return propDef{propInt, a} }

var globalProps = map[string]propDef{
	"id":              str("id"),
	"className":       str("class"),
	"title":           str("title"),
	"lang":            str("lang"),
	"dir":             str("dir"),
	"slot":            str("slot"),
	"accessKey":       str("accesskey"),
	"contentEditable": str("contenteditable"),
	"hidden":          boolean("hidden"),
	"tabIndex":        integer("tabindex"),
	"innerHTML":       {kind: propInnerHTML},
	"textContent":     {kind: propTextContent},
}

var tagProps = map[string]map[string]propDef{
	"input": {
		"name": str("name"), "type": str("type"), "placeholder": str("placeholder"),
		"min": str("min"), "max": str("max"), "step": str("step"), "pattern": str("pattern"),
		"accept": str("accept"), "autocomplete": str("autocomplete"),
		"list": str("list"), "form": str("form"),
		"width": integer("width"), "height": integer("height"), "maxLength": integer("maxlength"),
		"disabled": boolean("disabled"), "readOnly": boolean("readonly"), "required": boolean("required"),
		"multiple": boolean("multiple"), "autofocus": boolean("autofocus"),
		"defaultValue": str("value"), "defaultChecked": boolean("checked"),
		"value":   {kind: propValue},
		"checked": {kind: propChecked},
	},
	"textarea": {
		"name": str("name"), "placeholder": str("placeholder"), "wrap": str("wrap"), "form": str("form"),
		"rows": integer("rows"), "cols": integer("cols"), "maxLength": integer("maxlength"),
		"disabled": boolean("disabled"), "readOnly": boolean("readonly"), "required": boolean("required"),
		"value": {kind: propValue},
	},
	"select": {
		"name": str("name"), "form": str("form"), "size": integer("size"),
		"disabled": boolean("disabled"), "multiple": boolean("multiple"), "required": boolean("required"),
		"value":         {kind: propValue},
		"selectedIndex": {kind: propSelectedIndex},
	},
	"option": {
		"label": str("label"), "disabled": boolean("disabled"), "defaultSelected": boolean("selected"),
		"value":    {kind: propValue},
		"selected": {kind: propSelected},
	},
	"optgroup": {"label": str("label"), "disabled": boolean("disabled")},
	"button": {
		"name": str("name"), "type": str("type"), "value": str("value"), "form": str("form"),
		"disabled": boolean("disabled"), "autofocus": boolean("autofocus"),
	},
	"fieldset": {"name": str("name"), "disabled": boolean("disabled"), "form": str("form")},
	"form": {
		"action": str("action"), "method": str("method"), "enctype": str("enctype"),
		"target": str("target"), "name": str("name"), "autocomplete": str("autocomplete"),
		"noValidate": boolean("novalidate"),
	},
	"label": {"htmlFor": str("for"), "form": str("form")},
	"a": {
		"href": str("href"), "target": str("target"), "rel": str("rel"),
		"download": str("download"), "hreflang": str("hreflang"), "type": str("type"),
	},
	"img": {
		"src": str("src"), "alt": str("alt"), "srcset": str("srcset"), "sizes": str("sizes"),
		"loading": str("loading"), "crossOrigin": str("crossorigin"),
		"width": integer("width"), "height": integer("height"),
	},
	"link":   {"href": str("href"), "rel": str("rel"), "type": str("type"), "media": str("media")},
	"script": {"src": str("src"), "type": str("type"), "async": boolean("async"), "defer": boolean("defer")},
	"iframe": {"src": str("src"), "name": str("name"), "allow": str("allow"), "width": str("width"), "height": str("height")},
	"video": {
		"src": str("src"), "poster": str("poster"), "preload": str("preload"),
		"controls": boolean("controls"), "autoplay": boolean("autoplay"), "loop": boolean("loop"), "muted": boolean("muted"),
		"width": integer("width"), "height": integer("height"),
	},
	"audio": {
		"src": str("src"), "preload": str("preload"),
		"controls": boolean("controls"), "autoplay": boolean("autoplay"), "loop": boolean("loop"), "muted": boolean("muted"),
	},
	"canvas":   {"width": integer("width"), "height": integer("height")},
	"td":       {"colSpan": integer("colspan"), "rowSpan": integer("rowspan")},
	"th":       {"colSpan": integer("colspan"), "rowSpan": integer("rowspan"), "scope": str("scope")},
	"ol":       {"start": integer("start"), "reversed": boolean("reversed"), "type": str("type")},
	"li":       {"value": integer("value")},
	"meta":     {"name": str("name"), "content": str("content")},
	"details":  {"open": boolean("open")},
	"dialog":   {"open": boolean("open")},
	"progress": {"value": str("value"), "max": str("max")},
}

// propDef looks up the property name on this element. Elements outside the
// HTML namespace expose no properties.
func (e *Element) propDef(name string) (propDef, bool) {
	if !e.isHTML() {
		return propDef{}, false
	}
	if p, ok := globalProps[name]; ok {
		return p, true
	}
	if p, ok := tagProps[e.n.Data][name]; ok {
		return p, true
	}
	if e.customProps()[name] {
		return propDef{kind: propPlain}, true
	}
	return propDef{}, false
}

func (e *Element) customProps() map[string]bool {
	if set, ok := e.doc.custom[e.n.Data]; ok {
		return set
	}
	if is, ok := e.GetAttribute("is"); ok {
		return e.doc.custom[strings.ToLower(is)]
	}
	return nil
}

// HasProperty implements dom.Element.
func (e *Element) HasProperty(name string) bool {
	_, ok := e.propDef(name)
	return ok
}

// Property implements dom.Element. Unknown properties read as nil.
func (e *Element) Property(name string) any {
	p, ok := e.propDef(name)
	if !ok {
		return e.props[name]
	}
	switch p.kind {
	case propString:
		v, _ := e.GetAttribute(p.attr)
		return v
	case propBool:
		_, ok := e.GetAttribute(p.attr)
		return ok
	case propInt:
		v, _ := e.GetAttribute(p.attr)
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	case propValue:
		return e.value()
	case propChecked:
		if v, ok := e.props["checked"]; ok {
			return v.(bool)
		}
		_, ok := e.GetAttribute("checked")
		return ok
	case propSelected:
		return e.selectedness()
	case propSelectedIndex:
		return e.selectedIndex()
	case propInnerHTML:
		return e.InnerHTML()
	case propTextContent:
		return e.TextContent()
	default:
		return e.props[name]
	}
}

// SetProperty implements dom.Element. Properties the element does not
// expose are stored as plain expando values.
func (e *Element) SetProperty(name string, value any) {
	p, ok := e.propDef(name)
	if !ok {
		p = propDef{kind: propPlain}
	}
	switch p.kind {
	case propString:
		if value == nil {
			e.rawRemove(p.attr)
		} else {
			e.rawSet(p.attr, toString(value))
		}
	case propBool:
		if truthy(value) {
			e.rawSet(p.attr, "")
		} else {
			e.rawRemove(p.attr)
		}
	case propInt:
		if value == nil {
			e.rawRemove(p.attr)
		} else {
			e.rawSet(p.attr, strconv.Itoa(toInt(value)))
		}
	case propValue:
		if !e.setValue(toString(value)) {
			return
		}
	case propChecked:
		e.setProp("checked", truthy(value))
	case propSelected:
		e.setSelected(truthy(value))
	case propSelectedIndex:
		e.setSelectedIndex(toInt(value))
	case propInnerHTML:
		if err := e.SetInnerHTML(toString(value)); err != nil {
			return
		}
	case propTextContent:
		e.SetTextContent(toString(value))
	default:
		e.setProp(name, value)
	}
	e.doc.stats.PropWrites++
	e.doc.record(Mutation{Op: OpProp, Node: e.id, Name: name, Value: toString(value)})
}

func (e *Element) setProp(name string, value any) {
	if e.props == nil {
		e.props = make(map[string]any)
	}
	if value == nil {
		delete(e.props, name)
		return
	}
	e.props[name] = value
}

// rawSet writes an attribute without touching the write counters.
func (e *Element) rawSet(name, value string) {
	if i := e.findAttr(name); i >= 0 {
		e.n.Attr[i].Val = value
		return
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) rawRemove(name string) {
	if i := e.findAttr(name); i >= 0 {
		e.n.Attr = append(e.n.Attr[:i], e.n.Attr[i+1:]...)
	}
}

func (e *Element) isFileInput() bool {
	t, _ := e.GetAttribute("type")
	return e.n.Data == "input" && strings.EqualFold(t, "file")
}

func (e *Element) value() string {
	switch e.n.Data {
	case "select":
		for _, o := range e.options() {
			if o.selectedness() {
				return o.value()
			}
		}
		return ""
	case "option":
		if v, ok := e.GetAttribute("value"); ok {
			return v
		}
		return strings.TrimSpace(e.TextContent())
	case "textarea":
		if v, ok := e.props["value"]; ok {
			return v.(string)
		}
		return e.TextContent()
	default:
		if v, ok := e.props["value"]; ok {
			return v.(string)
		}
		v, _ := e.GetAttribute("value")
		return v
	}
}

// setValue reports whether the write was accepted. A file input only
// accepts the empty string.
func (e *Element) setValue(v string) bool {
	switch e.n.Data {
	case "select":
		found := false
		for _, o := range e.options() {
			match := !found && o.value() == v
			o.setProp("selected", match)
			found = found || match
		}
	case "option":
		e.rawSet("value", v)
	default:
		if e.isFileInput() && v != "" {
			return false
		}
		e.setProp("value", v)
	}
	return true
}

func (e *Element) selectedness() bool {
	if v, ok := e.props["selected"]; ok {
		return v.(bool)
	}
	if _, ok := e.GetAttribute("selected"); ok {
		return true
	}
	sel := e.ownerSelect()
	if sel == nil {
		return false
	}
	opts := sel.options()
	return sel.defaultsToFirst(opts) && opts[0] == e
}

func (e *Element) setSelected(on bool) {
	sel := e.ownerSelect()
	if on && sel != nil && !sel.multiple() {
		for _, o := range sel.options() {
			o.setProp("selected", false)
		}
	}
	e.setProp("selected", on)
}

func (e *Element) selectedIndex() int {
	opts := e.options()
	for i, o := range opts {
		if v, ok := o.props["selected"]; ok && v.(bool) {
			return i
		}
		if _, dirty := o.props["selected"]; !dirty {
			if _, ok := o.GetAttribute("selected"); ok {
				return i
			}
		}
	}
	if e.defaultsToFirst(opts) {
		return 0
	}
	return -1
}

func (e *Element) setSelectedIndex(i int) {
	for j, o := range e.options() {
		o.setProp("selected", i == j)
	}
}

// defaultsToFirst reports whether a single-select with no explicit
// selection shows its first option as selected.
func (e *Element) defaultsToFirst(opts []*Element) bool {
	if len(opts) == 0 || e.multiple() {
		return false
	}
	for _, o := range opts {
		if _, dirty := o.props["selected"]; dirty {
			return false
		}
		if _, ok := o.GetAttribute("selected"); ok {
			return false
		}
	}
	return true
}

func (e *Element) multiple() bool {
	_, ok := e.GetAttribute("multiple")
	return ok
}

func (e *Element) options() []*Element {
	var out []*Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "option":
				out = append(out, e.doc.wrap(c).(*Element))
			case "optgroup":
				walk(c)
			}
		}
	}
	walk(e.n)
	return out
}

func (e *Element) ownerSelect() *Element {
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			return nil
		}
		switch p.Data {
		case "select":
			return e.doc.wrap(p).(*Element)
		case "optgroup":
			continue
		default:
			return nil
		}
	}
	return nil
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(x))
		return n
	default:
		return 0
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}
