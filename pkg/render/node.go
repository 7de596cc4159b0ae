package render

import (
	"regexp"
	"strings"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Namespaces implied by tag name.
var tagNamespaces = map[string]string{
	"svg":  dom.NamespaceSVG,
	"math": dom.NamespaceMath,
}

// Context element for trusted markup whose first tag cannot be parsed
// inside a <div>.
var possibleParents = map[string]string{
	"caption":  "table",
	"thead":    "table",
	"tbody":    "table",
	"tfoot":    "table",
	"tr":       "tbody",
	"th":       "tr",
	"td":       "tr",
	"colgroup": "table",
	"col":      "colgroup",
}

var firstTag = regexp.MustCompile(`^\s*?<(\w+)`)

func (p *pass) createNode(parent dom.Node, v *vdom.VNode, nextSibling dom.Node, ns string) {
	p.stats.Created++
	if v.Kind == vdom.KindComponent {
		p.createComponent(parent, v, nextSibling, ns)
		return
	}
	p.initLifecycle(v)
	switch v.Kind {
	case vdom.KindText:
		p.createText(parent, v, nextSibling)
	case vdom.KindTrusted:
		p.createTrusted(parent, v, nextSibling, ns)
	case vdom.KindFragment:
		p.createFragment(parent, v, nextSibling, ns)
	default:
		p.createElement(parent, v, nextSibling, ns)
	}
}

func (p *pass) createText(parent dom.Node, v *vdom.VNode, nextSibling dom.Node) {
	v.DOM = p.doc.CreateTextNode(v.Text)
	v.DOMSize = 1
	insertDOM(parent, v.DOM, nextSibling)
}

func (p *pass) createTrusted(parent dom.Node, v *vdom.VNode, nextSibling dom.Node, ns string) {
	context := "div"
	if m := firstTag.FindStringSubmatch(v.Text); m != nil {
		if tag, ok := possibleParents[strings.ToLower(m[1])]; ok {
			context = tag
		}
	}
	if ns == dom.NamespaceSVG {
		context = "svg"
	} else {
		ns = ""
	}
	nodes, err := p.doc.ParseHTML(v.Text, context, ns)
	if err != nil {
		p.fail(vdomerrors.New("E206").WithDetail("Trusted markup could not be parsed.").Wrap(err))
		v.DOM, v.DOMSize = nil, 0
		return
	}
	v.DOM, v.DOMSize = nil, len(nodes)
	if len(nodes) == 0 {
		return
	}
	v.DOM = nodes[0]
	frag := p.doc.CreateDocumentFragment()
	for _, n := range nodes {
		frag.AppendChild(n)
	}
	insertDOM(parent, frag, nextSibling)
}

func (p *pass) createFragment(parent dom.Node, v *vdom.VNode, nextSibling dom.Node, ns string) {
	frag := p.doc.CreateDocumentFragment()
	p.createNodes(frag, v.Children, 0, len(v.Children), nil, ns)
	v.DOM = frag.FirstChild()
	v.DOMSize = len(frag.ChildNodes())
	insertDOM(parent, frag, nextSibling)
}

// namespaceOf returns the namespace v establishes for itself, or "".
func namespaceOf(v *vdom.VNode) string {
	if s, ok := v.Attr("xmlns").(string); ok && s != "" {
		return s
	}
	return tagNamespaces[v.Tag]
}

// childNamespace returns the namespace children of an element in ns inherit.
func childNamespace(v *vdom.VNode, ns string) string {
	if v.Tag == "foreignObject" && ns == dom.NamespaceSVG {
		return ""
	}
	return ns
}

func (p *pass) createElement(parent dom.Node, v *vdom.VNode, nextSibling dom.Node, ns string) {
	if own := namespaceOf(v); own != "" {
		ns = own
	}
	if ns == dom.NamespaceHTML {
		ns = ""
	}
	var el dom.Element
	if ns != "" {
		el = p.doc.CreateElementNS(ns, v.Tag, v.Is())
	} else {
		el = p.doc.CreateElement(v.Tag, v.Is())
	}
	v.DOM = el
	v.DOMSize = 1
	if v.Attrs != nil {
		p.setAttrs(v, el, ns)
	}
	insertDOM(parent, el, nextSibling)
	if p.contentEditable(v, el) {
		return
	}
	if len(v.Children) > 0 {
		p.createNodes(el, v.Children, 0, len(v.Children), nil, childNamespace(v, ns))
		if v.Tag == "select" && v.Attrs != nil {
			p.setLateSelectAttrs(v, el)
		}
	}
}

// contentEditable handles the children of a contenteditable element, which
// may only be a single trusted node. It reports whether v is contenteditable.
func (p *pass) contentEditable(v *vdom.VNode, el dom.Element) bool {
	if v.Attr("contenteditable") == nil && v.Attr("contentEditable") == nil {
		return false
	}
	switch {
	case len(v.Children) == 1 && v.Children[0] != nil && v.Children[0].Kind == vdom.KindTrusted:
		markup := v.Children[0].Text
		if el.InnerHTML() != markup {
			if err := el.SetInnerHTML(markup); err != nil {
				p.fail(vdomerrors.New("E206").WithDetail("Trusted markup could not be parsed.").Wrap(err))
			}
		}
	case len(v.Children) != 0:
		p.fail(vdomerrors.New("E202").WithDetailf("%s has %d untrusted children.", v.Name(), len(v.Children)))
	}
	return true
}

// sameType reports whether old can be updated in place into v.
func sameType(old, v *vdom.VNode) bool {
	if old.Kind != v.Kind {
		return false
	}
	switch v.Kind {
	case vdom.KindElement:
		return old.Tag == v.Tag && old.Is() == v.Is()
	case vdom.KindComponent:
		return old.Def == v.Def && (old.Phase == vdom.PhaseMounted || old.Phase == vdom.PhaseFailed)
	}
	return true
}

func (p *pass) updateNode(parent dom.Node, old, v *vdom.VNode, nextSibling dom.Node, ns string) {
	if !sameType(old, v) {
		p.removeNode(parent, old)
		p.createNode(parent, v, nextSibling, ns)
		return
	}
	v.State = old.State
	v.Events = old.Events
	v.Phase = old.Phase
	if v.Kind == vdom.KindComponent && old.Phase == vdom.PhaseFailed {
		v.Instance, v.DOM, v.DOMSize = old.Instance, old.DOM, old.DOMSize
		return
	}
	if p.shouldNotUpdate(v, old) {
		return
	}
	p.stats.Updated++
	if v.Kind == vdom.KindComponent {
		p.updateComponent(parent, old, v, nextSibling, ns)
		return
	}
	p.updateLifecycle(v)
	switch v.Kind {
	case vdom.KindText:
		p.updateText(old, v)
	case vdom.KindTrusted:
		p.updateTrusted(parent, old, v, nextSibling, ns)
	case vdom.KindFragment:
		p.updateFragment(parent, old, v, nextSibling, ns)
	default:
		p.updateElement(old, v, ns)
	}
}

func (p *pass) updateText(old, v *vdom.VNode) {
	if old.Text != v.Text {
		old.DOM.SetNodeValue(v.Text)
	}
	v.DOM = old.DOM
	v.DOMSize = 1
}

func (p *pass) updateTrusted(parent dom.Node, old, v *vdom.VNode, nextSibling dom.Node, ns string) {
	if old.Text == v.Text {
		v.DOM, v.DOMSize = old.DOM, old.DOMSize
		return
	}
	p.r.removeDOM(old, 0)
	p.createTrusted(parent, v, nextSibling, ns)
}

func (p *pass) updateFragment(parent dom.Node, old, v *vdom.VNode, nextSibling dom.Node, ns string) {
	p.updateNodes(parent, old.Children, v.Children, nextSibling, ns)
	v.DOM, v.DOMSize = nil, 0
	for _, c := range v.Children {
		if c == nil || c.DOM == nil {
			continue
		}
		if v.DOM == nil {
			v.DOM = c.DOM
		}
		v.DOMSize += max(c.DOMSize, 1)
	}
}

func (p *pass) updateElement(old, v *vdom.VNode, ns string) {
	el := old.DOM.(dom.Element)
	v.DOM = el
	v.DOMSize = 1
	if own := namespaceOf(v); own != "" {
		ns = own
	}
	if ns == dom.NamespaceHTML {
		ns = ""
	}
	p.updateAttrs(v, el, old.Attrs, v.Attrs, ns)
	if p.contentEditable(v, el) {
		return
	}
	p.updateNodes(el, old.Children, v.Children, nil, childNamespace(v, ns))
	if v.Tag == "select" && v.Attrs != nil {
		p.setLateSelectAttrs(v, el)
	}
}
