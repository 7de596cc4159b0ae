package treefile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/vango-dev/vdom/pkg/vdom"
)

// Sprint draws vnodes as a tree. Components show their rendered instance
// as a branch and holes are drawn as "(hole)".
func Sprint(nodes []*vdom.VNode) string {
	p := treeprint.NewWithRoot("(root)")
	for _, v := range nodes {
		addNode(p, v)
	}
	return p.String()
}

func addNode(p treeprint.Tree, v *vdom.VNode) {
	if v == nil {
		p.AddNode("(hole)")
		return
	}
	var children []*vdom.VNode
	switch v.Kind {
	case vdom.KindComponent:
		if v.Instance != nil {
			children = []*vdom.VNode{v.Instance}
		}
	case vdom.KindElement, vdom.KindFragment:
		children = v.Children
	}
	if len(children) == 0 {
		p.AddNode(label(v))
		return
	}
	branch := p.AddBranch(label(v))
	for _, c := range children {
		addNode(branch, c)
	}
}

func label(v *vdom.VNode) string {
	var b strings.Builder
	switch v.Kind {
	case vdom.KindText:
		return strconv.Quote(v.Text)
	case vdom.KindTrusted:
		return "html " + strconv.Quote(v.Text)
	case vdom.KindFragment:
		b.WriteString("[fragment")
	case vdom.KindComponent:
		b.WriteString(v.Name())
	default:
		b.WriteString("<" + v.Tag)
	}
	if v.Key != "" {
		b.WriteString(" key=" + strconv.Quote(v.Key))
	}
	v.Attrs.Range(func(key string, value any) bool {
		if key == "key" {
			return true
		}
		if s, ok := attrString(value); ok {
			b.WriteString(" " + key + "=" + s)
		}
		return true
	})
	switch v.Kind {
	case vdom.KindFragment:
		b.WriteString("]")
	case vdom.KindElement:
		b.WriteString(">")
	}
	return b.String()
}

// attrString formats plain values. Handlers and hooks are left out.
func attrString(value any) (string, bool) {
	switch x := value.(type) {
	case nil:
		return "", false
	case string:
		return strconv.Quote(x), true
	case bool, int, int64, float64:
		return fmt.Sprint(x), true
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %v", k, x[k])
		}
		return "{" + strings.Join(parts, "; ") + "}", true
	}
	return "", false
}
