package vdom

import (
	"sort"
	"strings"
)

// Attribute sets key to value. The renderer decides per element whether a
// key is written as a property or an attribute, so the helpers below are
// shorthands for Attribute with a fixed key.
//
// A nil value removes the key. Booleans set or remove boolean attributes.
func Attribute(key string, value any) Attr { return Attr{Key: key, Value: value} }

// AttrIf returns a when cond holds and an empty Attr otherwise. Empty
// attributes are skipped when the node is built.
func AttrIf(cond bool, a Attr) Attr {
	if cond {
		return a
	}
	return Attr{}
}

// ID sets the id attribute.
func ID(id string) Attr { return Attribute("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return Attribute("class", strings.Join(classes, " ")) }

// ClassName sets the className property. It is merged with Class when a
// node carries both.
func ClassName(name string) Attr { return Attribute("className", name) }

// Classes joins the enabled entries of m in sorted order.
//
// Example:
//
//	Classes(map[string]bool{"item": true, "active": selected})
func Classes(m map[string]bool) Attr {
	var out []string
	for class, on := range m {
		if on && class != "" {
			out = append(out, class)
		}
	}
	sort.Strings(out)
	return Attribute("class", strings.Join(out, " "))
}

// StyleAttr sets the style attribute from CSS text.
func StyleAttr(css string) Attr { return Attribute("style", css) }

// StyleMap sets the style from a property map. Keys may be dash-case,
// camelCase or custom properties ("--brand"). Properties missing from the
// next map are removed.
func StyleMap(style map[string]any) Attr { return Attribute("style", style) }

// Data creates a data-* attribute: Data("id", "123") is data-id="123".
func Data(key, value string) Attr { return Attribute("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return Attribute("role", role) }

// Aria sets aria-name. Boolean values are written as "true" or "false".
func Aria(name string, value any) Attr {
	if b, ok := value.(bool); ok {
		if b {
			value = "true"
		} else {
			value = "false"
		}
	}
	return Attribute("aria-"+name, value)
}

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return Attribute("title", title) }

// Hidden sets or clears the hidden attribute.
func Hidden(hidden bool) Attr { return Attribute("hidden", hidden) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return Attribute("tabindex", index) }

// ContentEditable marks the element as editable. Editable elements may not
// have vnode children other than trusted markup.
func ContentEditable(editable bool) Attr { return Attribute("contenteditable", editable) }

// Href sets the href attribute.
func Href(url string) Attr { return Attribute("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return Attribute("target", target) }

// Src sets the src attribute.
func Src(url string) Attr { return Attribute("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return Attribute("alt", text) }

// Name sets the name attribute.
func Name(name string) Attr { return Attribute("name", name) }

// Type sets the type attribute. On input elements it is applied before
// value so the value is parsed by the right control.
func Type(t string) Attr { return Attribute("type", t) }

// Value sets the value property. The renderer compares it against the live
// control value, so user edits are overwritten only when they differ.
func Value(value any) Attr { return Attribute("value", value) }

// Checked sets the checked property.
func Checked(checked bool) Attr { return Attribute("checked", checked) }

// Selected sets the selected property of an option.
func Selected(selected bool) Attr { return Attribute("selected", selected) }

// SelectedIndex sets the selectedIndex property of a select. It is applied
// after the options are created.
func SelectedIndex(i int) Attr { return Attribute("selectedIndex", i) }

// Disabled sets or clears the disabled attribute.
func Disabled(disabled bool) Attr { return Attribute("disabled", disabled) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return Attribute("placeholder", text) }

// For sets the for attribute of a label.
func For(id string) Attr { return Attribute("for", id) }

// IsAttr selects a customized built-in element. Changing it recreates the
// element.
func IsAttr(name string) Attr { return Attribute("is", name) }

// XMLNS sets the namespace the element is created in.
func XMLNS(ns string) Attr { return Attribute("xmlns", ns) }

// XLink sets an attribute in the XLink namespace, e.g. XLink("href", "#a").
func XLink(name, value string) Attr { return Attribute("xlink:"+name, value) }
