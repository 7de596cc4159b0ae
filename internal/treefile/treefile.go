// Package treefile reads vnode trees described in YAML and prints rendered
// trees.
//
// A file holds a node or a list of nodes. A node is a plain string (a text
// node), null (a hole) or a mapping with exactly one of tag, text, html or
// fragment:
//
//	- tag: ul
//	  attrs:
//	    class: items
//	    style: {color: red}
//	  children:
//	    - {tag: li, key: a, children: [A]}
//	    - {tag: li, key: b, children: [B]}
//	- html: "<b>raw</b>"
//	- fragment: [one, two]
//	  key: pair
package treefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Node is one entry of a tree file.
type Node struct {
	Tag      string
	Key      string
	Text     *string
	HTML     *string
	Fragment bool
	Attrs    []vdom.Attr
	Children []*Node

	line int
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	n.line = value.Line
	switch value.Kind {
	case yaml.ScalarNode:
		s := value.Value
		n.Text = &s
		return nil
	case yaml.MappingNode:
	default:
		return invalid(value, "a node must be a string or a mapping")
	}

	kinds := 0
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "tag":
			kinds++
			if err := val.Decode(&n.Tag); err != nil {
				return err
			}
			if n.Tag == "" {
				return invalid(val, "tag must not be empty")
			}
		case "text":
			kinds++
			var s string
			if err := val.Decode(&s); err != nil {
				return err
			}
			n.Text = &s
		case "html":
			kinds++
			var s string
			if err := val.Decode(&s); err != nil {
				return err
			}
			n.HTML = &s
		case "fragment":
			kinds++
			n.Fragment = true
			if err := decodeChildren(val, &n.Children); err != nil {
				return err
			}
		case "children":
			if err := decodeChildren(val, &n.Children); err != nil {
				return err
			}
		case "key":
			if err := val.Decode(&n.Key); err != nil {
				return err
			}
		case "attrs":
			attrs, err := decodeAttrs(val)
			if err != nil {
				return err
			}
			n.Attrs = attrs
		default:
			return invalid(key, "unknown field "+key.Value)
		}
	}
	if kinds != 1 {
		return invalid(value, "a node needs exactly one of tag, text, html or fragment")
	}
	if n.Tag == "" && (len(n.Attrs) > 0 || (!n.Fragment && len(n.Children) > 0)) {
		return invalid(value, "only elements take attrs and children")
	}
	return nil
}

func decodeChildren(value *yaml.Node, out *[]*Node) error {
	if value.Kind != yaml.SequenceNode {
		return invalid(value, "children must be a list")
	}
	for _, item := range value.Content {
		if item.Tag == "!!null" {
			*out = append(*out, nil)
			continue
		}
		child := new(Node)
		if err := item.Decode(child); err != nil {
			return err
		}
		*out = append(*out, child)
	}
	return nil
}

// decodeAttrs keeps the mapping's order so that DOM writes follow the file.
func decodeAttrs(value *yaml.Node) ([]vdom.Attr, error) {
	if value.Kind != yaml.MappingNode {
		return nil, invalid(value, "attrs must be a mapping")
	}
	var attrs []vdom.Attr
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i].Value, value.Content[i+1]
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, err
		}
		switch v.(type) {
		case map[string]any:
			if key != "style" {
				return nil, invalid(val, "only style may be a mapping")
			}
		case []any:
			return nil, invalid(val, fmt.Sprintf("attribute %s cannot be a list", key))
		}
		attrs = append(attrs, vdom.Attribute(key, v))
	}
	return attrs, nil
}

func invalid(value *yaml.Node, msg string) error {
	return errors.New("E140").WithDetailf("line %d: %s", value.Line, msg)
}

// Parse decodes a tree file. The result may contain nil holes.
func Parse(data []byte) ([]*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E140").Wrap(err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]

	var nodes []*Node
	if root.Kind == yaml.SequenceNode {
		if err := decodeChildren(root, &nodes); err != nil {
			return nil, errors.FromError(err, "E140")
		}
		return nodes, nil
	}
	if root.Tag == "!!null" {
		return nil, nil
	}
	n := new(Node)
	if err := root.Decode(n); err != nil {
		return nil, errors.FromError(err, "E140")
	}
	return []*Node{n}, nil
}

// ParseFile reads and decodes the tree file at path.
func ParseFile(path string) ([]*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E140").WithDetail(path).Wrap(err)
	}
	nodes, err := Parse(data)
	if err != nil {
		return nil, errors.FromError(err, "E140").WithDetail(path)
	}
	return nodes, nil
}

// Build converts parsed nodes into fresh vnodes, keeping holes.
func Build(nodes []*Node) []*vdom.VNode {
	if nodes == nil {
		return nil
	}
	out := make([]*vdom.VNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.VNode()
	}
	return out
}

// VNode converts n into a fresh vnode.
func (n *Node) VNode() *vdom.VNode {
	if n == nil {
		return nil
	}
	var v *vdom.VNode
	switch {
	case n.Text != nil:
		v = vdom.Text(*n.Text)
	case n.HTML != nil:
		v = vdom.Trust(*n.HTML)
	case n.Fragment:
		v = vdom.Fragment()
	default:
		args := make([]any, 0, len(n.Attrs)+1)
		for _, a := range n.Attrs {
			args = append(args, a)
		}
		v = vdom.Element(n.Tag, args...)
	}
	if n.Key != "" {
		v.Key = n.Key
	}
	v.Children = Build(n.Children)
	return v
}
