package htmldoc

import (
	"strings"

	"github.com/vango-dev/vdom/pkg/dom"
)

// style is an element's inline declaration table, kept in sync with the
// element's style attribute.
type style struct {
	el     *Element
	names  []string
	values map[string]string
}

var _ dom.Style = (*style)(nil)

// Style implements dom.Element.
func (e *Element) Style() dom.Style {
	if e.style == nil {
		e.style = &style{el: e, values: make(map[string]string)}
		if css, ok := e.GetAttribute("style"); ok {
			e.style.parse(css)
		}
	}
	return e.style
}

func (s *style) CSSText() string {
	var sb strings.Builder
	for i, name := range s.names {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(s.values[name])
		sb.WriteByte(';')
	}
	return sb.String()
}

func (s *style) SetCSSText(css string) {
	s.reset()
	s.parse(css)
	s.changed("", css)
}

func (s *style) GetPropertyValue(name string) string {
	return s.values[canonicalProperty(name)]
}

// SetProperty sets a declaration. An empty value removes it.
func (s *style) SetProperty(name, value string) {
	name = canonicalProperty(name)
	if value == "" {
		s.RemoveProperty(name)
		return
	}
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
	s.changed(name, value)
}

func (s *style) RemoveProperty(name string) {
	name = canonicalProperty(name)
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	s.changed(name, "")
}

func (s *style) reset() {
	s.names = nil
	s.values = make(map[string]string)
}

func (s *style) parse(css string) {
	for _, decl := range strings.Split(css, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = canonicalProperty(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		if _, seen := s.values[name]; !seen {
			s.names = append(s.names, name)
		}
		s.values[name] = value
	}
}

func (s *style) changed(name, value string) {
	if len(s.names) == 0 {
		s.el.rawRemove("style")
	} else {
		s.el.rawSet("style", s.CSSText())
	}
	s.el.doc.stats.StyleWrites++
	s.el.doc.record(Mutation{Op: OpStyle, Node: s.el.id, Name: name, Value: value})
}

// canonicalProperty lowercases standard property names. Custom properties
// are case-sensitive.
func canonicalProperty(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	return strings.ToLower(name)
}
