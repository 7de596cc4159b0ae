package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Trust creates a node whose markup is parsed by the host document.
// Content from users must be escaped before it is trusted.
func Trust(html string) *VNode {
	return &VNode{Kind: KindTrusted, Text: html}
}

// Fragment groups children without a wrapper element. Attributes given to a
// fragment carry its key and lifecycle hooks.
func Fragment(args ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	node.Attrs, node.Children = collect(args)
	node.Key = keyOf(node.Attrs)
	return node
}

// Comp creates a component node. Attributes and children are passed to the
// component through its vnode.
func Comp(def *Definition, args ...any) *VNode {
	node := &VNode{Kind: KindComponent, Def: def}
	node.Attrs, node.Children = collect(args)
	node.Key = keyOf(node.Attrs)
	return node
}

// Key sets the identity of a node among its siblings. Either every node of
// a child list is keyed or none is. Keys compare by their text, so Key(1)
// and Key("1") name the same node.
func Key(key any) Attr {
	return Attribute("key", fmt.Sprint(key))
}

func keyOf(a *Attrs) string {
	if k := a.Value("key"); k != nil {
		return fmt.Sprint(k)
	}
	return ""
}

// If returns node when cond holds and nil otherwise. A nil child is a hole
// that keeps the positions of its siblings stable.
func If(cond bool, node *VNode) *VNode {
	if cond {
		return node
	}
	return nil
}

// When is If with a lazily built node.
func When(cond bool, fn func() *VNode) *VNode {
	if cond {
		return fn()
	}
	return nil
}

// Each builds a keyed list. Nodes that fn returns without a key get
// key(item). Nil nodes are dropped.
//
// Example:
//
//	Ul(Each(todos, func(t Todo) string { return t.ID }, func(t Todo) *VNode {
//	    return Li(t.Title)
//	}))
func Each[T any](items []T, key func(T) string, fn func(T) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for _, item := range items {
		node := fn(item)
		if node == nil {
			continue
		}
		if node.Key == "" {
			node.Key = key(item)
		}
		out = append(out, node)
	}
	return out
}

// Repeat creates n nodes using fn. Nil nodes are dropped.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	var out []*VNode
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			out = append(out, node)
		}
	}
	return out
}
