package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vdom/pkg/dom"
)

// Document is an in-memory host document. It is not safe for concurrent use.
type Document struct {
	root     *html.Node
	body     *Element
	wrappers map[*html.Node]dom.Node
	active   *Element
	custom   map[string]map[string]bool
	nextID   uint64

	stats     Stats
	observers map[uint64]func(Mutation)
	nextObs   uint64
}

var _ dom.Document = (*Document)(nil)

// New creates an empty document with <html>, <head> and <body>.
func New() *Document {
	d := &Document{
		root:      &html.Node{Type: html.DocumentNode},
		wrappers:  make(map[*html.Node]dom.Node),
		custom:    make(map[string]map[string]bool),
		observers: make(map[uint64]func(Mutation)),
	}
	htmlEl := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	head := &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	htmlEl.AppendChild(head)
	htmlEl.AppendChild(body)
	d.root.AppendChild(htmlEl)
	d.body = d.wrap(body).(*Element)
	return d
}

// Body returns the <body> element.
func (d *Document) Body() *Element { return d.body }

// DefineElement registers a custom element tag and the properties its
// instances expose. Tags without a registration expose only global properties.
func (d *Document) DefineElement(tag string, props ...string) {
	set := make(map[string]bool, len(props))
	for _, p := range props {
		set[p] = true
	}
	d.custom[strings.ToLower(tag)] = set
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag, is string) dom.Element {
	tag = strings.ToLower(tag)
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if is != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "is", Val: is})
	}
	d.stats.Creates++
	return d.wrap(n).(*Element)
}

// CreateElementNS implements dom.Document.
func (d *Document) CreateElementNS(ns, tag, is string) dom.Element {
	if ns == "" || ns == dom.NamespaceHTML {
		return d.CreateElement(tag, is)
	}
	n := &html.Node{Type: html.ElementNode, Data: tag, Namespace: shortNamespace(ns)}
	if is != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "is", Val: is})
	}
	d.stats.Creates++
	return d.wrap(n).(*Element)
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(text string) dom.Node {
	d.stats.Creates++
	return d.wrap(&html.Node{Type: html.TextNode, Data: text})
}

// CreateDocumentFragment implements dom.Document.
func (d *Document) CreateDocumentFragment() dom.Node {
	return d.wrap(&html.Node{Type: html.DocumentNode})
}

// ParseHTML implements dom.Document.
func (d *Document) ParseHTML(markup, contextTag, ns string) ([]dom.Node, error) {
	if contextTag == "" {
		contextTag = "div"
	}
	ctx := &html.Node{
		Type:      html.ElementNode,
		Data:      contextTag,
		DataAtom:  atom.Lookup([]byte(contextTag)),
		Namespace: shortNamespace(ns),
	}
	parsed, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse %q: %w", truncate(markup, 40), err)
	}
	nodes := make([]dom.Node, 0, len(parsed))
	for _, n := range parsed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		nodes = append(nodes, d.wrap(n))
	}
	return nodes, nil
}

// ActiveElement implements dom.Document.
func (d *Document) ActiveElement() dom.Element {
	if d.active == nil {
		return nil
	}
	return d.active
}

// Wrap returns the dom.Node for an *html.Node, creating the wrapper on first use.
func (d *Document) Wrap(n *html.Node) dom.Node { return d.wrap(n) }

// Unwrap returns the *html.Node behind a node created by this package, or nil.
func Unwrap(n dom.Node) *html.Node {
	if h, ok := n.(interface{ htmlNode() *html.Node }); ok {
		return h.htmlNode()
	}
	return nil
}

// wrap returns the unique wrapper for n. A nil n yields a nil interface.
func (d *Document) wrap(n *html.Node) dom.Node {
	if n == nil {
		return nil
	}
	if w, ok := d.wrappers[n]; ok {
		return w
	}
	d.nextID++
	base := node{doc: d, n: n, id: d.nextID}
	var w dom.Node
	switch n.Type {
	case html.ElementNode:
		w = &Element{node: base}
	case html.TextNode:
		w = &Text{node: base}
	case html.CommentNode:
		w = &Comment{node: base}
	default:
		w = &Fragment{node: base}
	}
	d.wrappers[n] = w
	return w
}

// connected reports whether n is attached to the document tree.
func (d *Document) connected(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// detached is called before n leaves its parent.
func (d *Document) detached(n *html.Node) {
	if d.active != nil && contains(n, d.active.n) {
		d.active = nil
	}
}

func contains(ancestor, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

func shortNamespace(ns string) string {
	switch ns {
	case "", dom.NamespaceHTML:
		return ""
	case dom.NamespaceSVG:
		return "svg"
	case dom.NamespaceMath:
		return "math"
	default:
		return ns
	}
}

func longNamespace(ns string) string {
	switch ns {
	case "":
		return dom.NamespaceHTML
	case "svg":
		return dom.NamespaceSVG
	case "math":
		return dom.NamespaceMath
	default:
		return ns
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
