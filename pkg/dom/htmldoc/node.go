package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/vdom/pkg/dom"
)

// node is the state shared by every wrapper type.
type node struct {
	doc  *Document
	n    *html.Node
	id   uint64
	data map[any]any
}

// Text is a text node.
type Text struct{ node }

// Comment is a comment node.
type Comment struct{ node }

// Fragment is a document fragment.
type Fragment struct{ node }

var (
	_ dom.Node = (*Text)(nil)
	_ dom.Node = (*Comment)(nil)
	_ dom.Node = (*Fragment)(nil)
)

func (b *node) htmlNode() *html.Node { return b.n }

// ID returns a document-unique identifier for the node, stable for its lifetime.
func (b *node) ID() uint64 { return b.id }

func (b *node) Type() dom.NodeType {
	switch b.n.Type {
	case html.ElementNode:
		return dom.ElementNode
	case html.TextNode:
		return dom.TextNode
	case html.CommentNode:
		return dom.CommentNode
	case html.DocumentNode:
		if b.n == b.doc.root {
			return dom.DocumentNode
		}
		return dom.FragmentNode
	default:
		return 0
	}
}

func (b *node) NodeName() string {
	switch b.n.Type {
	case html.ElementNode:
		return b.n.Data
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DocumentNode:
		if b.n == b.doc.root {
			return "#document"
		}
		return "#document-fragment"
	default:
		return ""
	}
}

func (b *node) OwnerDocument() dom.Document { return b.doc }

func (b *node) ParentNode() dom.Node  { return b.doc.wrap(b.n.Parent) }
func (b *node) FirstChild() dom.Node  { return b.doc.wrap(b.n.FirstChild) }
func (b *node) NextSibling() dom.Node { return b.doc.wrap(b.n.NextSibling) }

func (b *node) ChildNodes() []dom.Node {
	var out []dom.Node
	for c := b.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, b.doc.wrap(c))
	}
	return out
}

func (b *node) Contains(other dom.Node) bool {
	o := Unwrap(other)
	if o == nil {
		return false
	}
	return contains(b.n, o)
}

func (b *node) AppendChild(child dom.Node) { b.InsertBefore(child, nil) }

func (b *node) InsertBefore(child, ref dom.Node) {
	c := Unwrap(child)
	if c == nil {
		panic("htmldoc: InsertBefore of a foreign node")
	}
	var r *html.Node
	if ref != nil {
		r = Unwrap(ref)
		if r == nil || r.Parent != b.n {
			panic(fmt.Sprintf("htmldoc: reference node is not a child of <%s>", b.NodeName()))
		}
	}
	if contains(c, b.n) {
		panic("htmldoc: cannot insert a node into its own subtree")
	}

	if c.Type == html.DocumentNode {
		for c.FirstChild != nil {
			gc := c.FirstChild
			c.RemoveChild(gc)
			b.n.InsertBefore(gc, r)
		}
		b.doc.record(Mutation{Op: OpInsert, Node: b.doc.wrap(c).(*Fragment).id, Parent: b.id, Ref: idOf(b.doc, r)})
		b.doc.stats.Inserts++
		return
	}

	if r == c {
		// Inserting a node before itself leaves the tree unchanged.
		b.doc.stats.Moves++
		b.doc.record(Mutation{Op: OpMove, Node: idOf(b.doc, c), Parent: b.id, Ref: idOf(b.doc, c.NextSibling)})
		return
	}
	moved := c.Parent != nil
	if moved {
		b.doc.detached(c)
		c.Parent.RemoveChild(c)
	}
	b.n.InsertBefore(c, r)
	if moved {
		b.doc.stats.Moves++
		b.doc.record(Mutation{Op: OpMove, Node: idOf(b.doc, c), Parent: b.id, Ref: idOf(b.doc, r)})
	} else {
		b.doc.stats.Inserts++
		b.doc.record(Mutation{Op: OpInsert, Node: idOf(b.doc, c), Parent: b.id, Ref: idOf(b.doc, r), Value: b.doc.snapshot(c)})
	}
}

func (b *node) RemoveChild(child dom.Node) {
	c := Unwrap(child)
	if c == nil || c.Parent != b.n {
		panic(fmt.Sprintf("htmldoc: node is not a child of <%s>", b.NodeName()))
	}
	b.doc.detached(c)
	b.n.RemoveChild(c)
	b.doc.stats.Removes++
	b.doc.record(Mutation{Op: OpRemove, Node: idOf(b.doc, c), Parent: b.id})
}

func (b *node) NodeValue() string {
	switch b.n.Type {
	case html.TextNode, html.CommentNode:
		return b.n.Data
	default:
		return ""
	}
}

func (b *node) SetNodeValue(v string) {
	switch b.n.Type {
	case html.TextNode, html.CommentNode:
		b.n.Data = v
		b.doc.stats.TextWrites++
		b.doc.record(Mutation{Op: OpText, Node: b.id, Value: v})
	}
}

func (b *node) TextContent() string {
	if b.n.Type == html.TextNode || b.n.Type == html.CommentNode {
		return b.n.Data
	}
	var sb strings.Builder
	collectText(&sb, b.n)
	return sb.String()
}

func (b *node) SetTextContent(v string) {
	if b.n.Type == html.TextNode || b.n.Type == html.CommentNode {
		b.SetNodeValue(v)
		return
	}
	for b.n.FirstChild != nil {
		c := b.n.FirstChild
		b.doc.detached(c)
		b.n.RemoveChild(c)
	}
	if v != "" {
		b.n.AppendChild(&html.Node{Type: html.TextNode, Data: v})
	}
	b.doc.stats.TextWrites++
	b.doc.record(Mutation{Op: OpText, Node: b.id, Value: v})
}

func (b *node) UserData(key any) any {
	if b.data == nil {
		return nil
	}
	return b.data[key]
}

func (b *node) SetUserData(key, value any) {
	if b.data == nil {
		b.data = make(map[any]any)
	}
	if value == nil {
		delete(b.data, key)
		return
	}
	b.data[key] = value
}

func collectText(sb *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.ElementNode, html.DocumentNode:
			collectText(sb, c)
		}
	}
}

func idOf(d *Document, n *html.Node) uint64 {
	if n == nil {
		return 0
	}
	return d.wrap(n).(interface{ ID() uint64 }).ID()
}
