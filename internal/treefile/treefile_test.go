package treefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom/htmldoc"
	"github.com/vango-dev/vdom/pkg/render"
	"github.com/vango-dev/vdom/pkg/vdom"
)

const list = `
tag: ul
attrs:
  class: items
  style: {color: red}
children:
  - {tag: li, key: a, children: [A]}
  - ~
  - {tag: li, key: b, attrs: {title: second}, children: [B]}
`

func renderHTML(t *testing.T, children []*vdom.VNode) string {
	t.Helper()
	doc := htmldoc.New()
	root := doc.CreateElement("div", "")
	doc.Body().AppendChild(root)
	require.NoError(t, render.New().Render(root, children, nil))
	return root.(*htmldoc.Element).InnerHTML()
}

func TestParseElement(t *testing.T) {
	nodes, err := Parse([]byte(list))
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	ul := nodes[0]
	assert.Equal(t, "ul", ul.Tag)
	require.Len(t, ul.Attrs, 2)
	assert.Equal(t, "class", ul.Attrs[0].Key)
	assert.Equal(t, "style", ul.Attrs[1].Key)
	require.Len(t, ul.Children, 3)
	assert.Nil(t, ul.Children[1])
	assert.Equal(t, "a", ul.Children[0].Key)
	require.NotNil(t, ul.Children[0].Children[0].Text)
	assert.Equal(t, "A", *ul.Children[0].Children[0].Text)
}

func TestBuildRenders(t *testing.T) {
	nodes, err := Parse([]byte(list))
	require.NoError(t, err)

	vnodes := Build(nodes)
	require.Len(t, vnodes, 1)
	assert.Equal(t, "a", vnodes[0].Children[0].Key)
	assert.Nil(t, vnodes[0].Children[1])

	html := renderHTML(t, vnodes)
	assert.Equal(t, `<ul class="items" style="color: red;"><li>A</li><li title="second">B</li></ul>`, html)
}

func TestParseKinds(t *testing.T) {
	nodes, err := Parse([]byte(`
- plain
- text: quoted
- html: "<b>bold</b><i>it</i>"
- fragment: [one, {tag: br}]
  key: pair
- 42
`))
	require.NoError(t, err)
	require.Len(t, nodes, 5)

	vnodes := Build(nodes)
	assert.Equal(t, vdom.KindText, vnodes[0].Kind)
	assert.Equal(t, vdom.KindText, vnodes[1].Kind)
	assert.Equal(t, vdom.KindTrusted, vnodes[2].Kind)
	assert.Equal(t, vdom.KindFragment, vnodes[3].Kind)
	assert.Equal(t, "pair", vnodes[3].Key)
	assert.Equal(t, "42", vnodes[4].Text)

	assert.Equal(t, "plainquoted<b>bold</b><i>it</i>one<br/>42", renderHTML(t, vnodes))
}

func TestBuildIsFresh(t *testing.T) {
	nodes, err := Parse([]byte(list))
	require.NoError(t, err)
	a, b := Build(nodes), Build(nodes)
	assert.NotSame(t, a[0], b[0])
	assert.NotSame(t, a[0].Attrs, b[0].Attrs)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"two kinds", "{tag: p, text: x}", "exactly one"},
		{"no kind", "{key: a}", "exactly one"},
		{"unknown field", "{tag: p, class: x}", "unknown field class"},
		{"children not list", "{tag: p, children: x}", "must be a list"},
		{"text children", "{text: x, children: [y]}", "only elements"},
		{"nested attr", "{tag: p, attrs: {data: {a: 1}}}", "only style"},
		{"list attr", "{tag: p, attrs: {class: [a, b]}}", "cannot be a list"},
		{"bad yaml", "tag: [", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, "E140", errors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, data := range []string{"", "~"} {
		nodes, err := Parse([]byte(data))
		require.NoError(t, err)
		assert.Empty(t, nodes)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(list), 0644))

	nodes, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, "E140", errors.CodeOf(err))
}

func TestSprint(t *testing.T) {
	item := vdom.Func("item", func(v *vdom.VNode) any { return vdom.Li(v.Key) })
	tree := []*vdom.VNode{
		vdom.Ul(vdom.Class("items"), vdom.OnClick(func() {}),
			vdom.Comp(item, vdom.Key("a")),
			nil,
			vdom.Fragment(vdom.Key("f"), vdom.Trust("<hr>")),
		),
	}
	doc := htmldoc.New()
	root := doc.CreateElement("div", "")
	doc.Body().AppendChild(root)
	r := render.New()
	require.NoError(t, r.Render(root, tree, nil))

	out := Sprint(r.Rendered(root))
	for _, want := range []string{
		"(root)",
		`<ul className="items">`,
		`item key="a"`,
		`<li>`,
		`"a"`,
		"(hole)",
		`[fragment key="f"]`,
		`html "<hr>"`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "onclick")
	assert.True(t, strings.Index(out, "item") < strings.Index(out, "(hole)"))
}
