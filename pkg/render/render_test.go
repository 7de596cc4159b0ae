package render_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/dom/htmldoc"
	"github.com/vango-dev/vdom/pkg/render"
	. "github.com/vango-dev/vdom/pkg/vdom"
)

// setup returns a document with an empty <div> root attached to its body.
func setup(t *testing.T, opts ...render.Option) (*htmldoc.Document, dom.Element, *render.Renderer) {
	t.Helper()
	d := htmldoc.New()
	root := d.CreateElement("div", "")
	d.Body().AppendChild(root)
	return d, root, render.New(opts...)
}

func inner(n dom.Node) string {
	return n.(*htmldoc.Element).InnerHTML()
}

func mustRender(t *testing.T, r *render.Renderer, root dom.Node, children any) {
	t.Helper()
	if err := r.Render(root, children, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func hasCode(err error, code string) bool {
	return errors.Is(err, vdomerrors.New(code))
}

// capture returns a logger that writes text records into buf.
func capture(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRenderCreates(t *testing.T) {
	tests := []struct {
		name     string
		children any
		want     string
	}{
		{"text", "hello", "hello"},
		{"number", 42, "42"},
		{"element", Div(Class("a"), "x"), `<div class="a">x</div>`},
		{"nested", Ul(Li("1"), Li("2")), "<ul><li>1</li><li>2</li></ul>"},
		{"fragment", Fragment(Span("a"), Span("b")), "<span>a</span><span>b</span>"},
		{"list", []any{"a", nil, false, P("b")}, "a<p>b</p>"},
		{"trusted", Trust("<b>x</b><i>y</i>"), "<b>x</b><i>y</i>"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, root, r := setup(t)
			mustRender(t, r, root, tt.children)
			if got := inner(root); got != tt.want {
				t.Errorf("innerHTML = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderClearsRootOnFirstRender(t *testing.T) {
	d, root, r := setup(t)
	root.AppendChild(d.CreateTextNode("server markup"))
	mustRender(t, r, root, Span("client"))
	if got := inner(root); got != "<span>client</span>" {
		t.Errorf("innerHTML = %q", got)
	}
}

func TestRenderInvalidRoot(t *testing.T) {
	d := htmldoc.New()
	r := render.New()
	if err := r.Render(nil, "x", nil); !errors.Is(err, render.ErrInvalidRoot) {
		t.Errorf("nil root: err = %v, want E200", err)
	}
	var typed *htmldoc.Element
	if err := r.Render(typed, "x", nil); !errors.Is(err, render.ErrInvalidRoot) {
		t.Errorf("typed nil root: err = %v, want E200", err)
	}
	if err := r.Render(d.CreateTextNode("t"), "x", nil); !errors.Is(err, render.ErrInvalidRoot) {
		t.Errorf("text root: err = %v, want E200", err)
	}
}

func TestRenderUnrenderableValue(t *testing.T) {
	_, root, r := setup(t)
	err := r.Render(root, struct{}{}, nil)
	if !hasCode(err, "E206") {
		t.Errorf("err = %v, want E206", err)
	}
}

func TestRenderIntoFragmentRoot(t *testing.T) {
	d := htmldoc.New()
	frag := d.CreateDocumentFragment()
	r := render.New()
	mustRender(t, r, frag, []any{Span("a"), "b"})
	if n := len(frag.ChildNodes()); n != 2 {
		t.Errorf("fragment children = %d, want 2", n)
	}
}

func TestRenderIdempotent(t *testing.T) {
	d, root, r := setup(t)
	view := func() []*VNode {
		return []*VNode{
			Div(Class("a"), ID("x"), StyleMap(map[string]any{"color": "red"}), "text"),
			Ul(Li(Key("1"), "one"), Li(Key("2"), "two")),
			Fragment(Span("s"), Trust("<em>t</em>")),
		}
	}
	list := view()
	mustRender(t, r, root, list)

	before := d.Stats()
	mustRender(t, r, root, list)
	if n := d.Stats().Sub(before).Mutations(); n != 0 {
		t.Errorf("same list: %d mutations, want 0", n)
	}

	before = d.Stats()
	mustRender(t, r, root, view())
	if n := d.Stats().Sub(before).Mutations(); n != 0 {
		t.Errorf("equal list: %d mutations, want 0", n)
	}
}

func TestRenderStoresBaseline(t *testing.T) {
	_, root, r := setup(t)
	list := []*VNode{Span("a")}
	mustRender(t, r, root, list)
	if got := r.Rendered(root); len(got) != 1 || got[0] != list[0] {
		t.Errorf("Rendered() = %v", got)
	}
	if list[0].DOM == nil || list[0].DOMSize != 1 {
		t.Errorf("DOM not recorded: %+v", list[0])
	}
}

func TestRenderTextUpdate(t *testing.T) {
	d, root, r := setup(t)
	mustRender(t, r, root, Div("a"))
	text := root.FirstChild().FirstChild()
	before := d.Stats()
	mustRender(t, r, root, Div("b"))
	if root.FirstChild().FirstChild() != text {
		t.Error("text node replaced instead of updated")
	}
	if s := d.Stats().Sub(before); s.TextWrites != 1 || s.Mutations() != 1 {
		t.Errorf("stats = %+v, want one text write", s)
	}
}

func TestRenderReplacesDifferentTag(t *testing.T) {
	_, root, r := setup(t)
	mustRender(t, r, root, Div("a"))
	old := root.FirstChild()
	mustRender(t, r, root, Span("a"))
	if root.FirstChild() == old || inner(root) != "<span>a</span>" {
		t.Errorf("innerHTML = %q", inner(root))
	}
}

func TestRenderReplacesDifferentIs(t *testing.T) {
	_, root, r := setup(t)
	mustRender(t, r, root, Button(IsAttr("fancy-button")))
	old := root.FirstChild()
	mustRender(t, r, root, Button(IsAttr("plain-button")))
	if root.FirstChild() == old {
		t.Error("element with a different is value was reused")
	}
}

func TestRenderNamespaces(t *testing.T) {
	_, root, r := setup(t)
	mustRender(t, r, root, Svg(
		Element("circle", Attribute("r", 5)),
		Element("foreignObject", Div("html")),
	))
	svg := root.FirstChild().(dom.Element)
	if svg.NamespaceURI() != dom.NamespaceSVG {
		t.Fatalf("svg namespace = %q", svg.NamespaceURI())
	}
	circle := svg.FirstChild().(dom.Element)
	if circle.NamespaceURI() != dom.NamespaceSVG {
		t.Errorf("circle namespace = %q", circle.NamespaceURI())
	}
	div := svg.ChildNodes()[1].FirstChild().(dom.Element)
	if div.NamespaceURI() != dom.NamespaceHTML {
		t.Errorf("foreignObject child namespace = %q", div.NamespaceURI())
	}
}

func TestRenderXMLNSAttribute(t *testing.T) {
	_, root, r := setup(t)
	mustRender(t, r, root, Element("g", XMLNS(dom.NamespaceSVG), Element("rect")))
	g := root.FirstChild().(dom.Element)
	if g.NamespaceURI() != dom.NamespaceSVG {
		t.Errorf("g namespace = %q", g.NamespaceURI())
	}
	if rect := g.FirstChild().(dom.Element); rect.NamespaceURI() != dom.NamespaceSVG {
		t.Errorf("rect namespace = %q", rect.NamespaceURI())
	}
}

func TestRenderTrustedContexts(t *testing.T) {
	d := htmldoc.New()
	table := d.CreateElement("table", "")
	d.Body().AppendChild(table)
	tbody := d.CreateElement("tbody", "")
	table.AppendChild(tbody)
	r := render.New()
	mustRender(t, r, tbody, Trust("<tr><td>1</td></tr><tr><td>2</td></tr>"))
	if got := inner(tbody); got != "<tr><td>1</td></tr><tr><td>2</td></tr>" {
		t.Errorf("innerHTML = %q", got)
	}
	v := r.Rendered(tbody)[0]
	if v.DOMSize != 2 {
		t.Errorf("DOMSize = %d, want 2", v.DOMSize)
	}

	mustRender(t, r, tbody, Trust("<tr><td>3</td></tr>"))
	if got := inner(tbody); got != "<tr><td>3</td></tr>" {
		t.Errorf("after update innerHTML = %q", got)
	}
}

func TestRenderTrustedSVG(t *testing.T) {
	_, root, r := setup(t)
	mustRender(t, r, root, Svg(Trust(`<circle r="1"></circle>`)))
	circle, ok := root.FirstChild().FirstChild().(dom.Element)
	if !ok || circle.NamespaceURI() != dom.NamespaceSVG {
		t.Errorf("trusted child of svg not in SVG namespace: %v", circle)
	}
}

func TestRenderContentEditable(t *testing.T) {
	_, root, r := setup(t)
	mustRender(t, r, root, Div(ContentEditable(true), Trust("<b>x</b>")))
	if got := inner(root); got != `<div contenteditable=""><b>x</b></div>` {
		t.Errorf("innerHTML = %q", got)
	}

	err := r.Render(root, Div(ContentEditable(true), Span("no")), nil)
	if !hasCode(err, "E202") {
		t.Errorf("err = %v, want E202", err)
	}
}

func TestRenderFocusRestored(t *testing.T) {
	d, root, r := setup(t)
	mustRender(t, r, root, []*VNode{
		Input(Key("a")),
		Input(Key("b")),
	})
	b := root.ChildNodes()[1].(dom.Element)
	b.Focus()
	if d.ActiveElement() != b {
		t.Fatal("focus setup failed")
	}

	mustRender(t, r, root, []*VNode{
		Input(Key("b")),
		Input(Key("a")),
	})
	if root.FirstChild() != dom.Node(b) {
		t.Fatal("keyed input was not moved")
	}
	if d.ActiveElement() != b {
		t.Error("focus lost after move")
	}
}

func TestRenderObserver(t *testing.T) {
	var got []render.PassStats
	_, root, r := setup(t, render.WithObserver(render.ObserverFunc(func(s render.PassStats) { got = append(got, s) })))
	mustRender(t, r, root, []*VNode{Span(Key("a")), Span(Key("b"))})
	mustRender(t, r, root, []*VNode{Span(Key("b"))})
	if len(got) != 2 {
		t.Fatalf("observed %d passes, want 2", len(got))
	}
	if got[0].Created != 2 || got[0].Pass != 1 {
		t.Errorf("first pass = %+v", got[0])
	}
	if got[1].Removed != 1 || got[1].Pass != 2 {
		t.Errorf("second pass = %+v", got[1])
	}
}

func TestRenderLogsPass(t *testing.T) {
	var buf bytes.Buffer
	_, root, r := setup(t, render.WithLogger(capture(&buf)))
	mustRender(t, r, root, Div())
	if !strings.Contains(buf.String(), "render pass") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestRenderReentrancy(t *testing.T) {
	d, root, r := setup(t)
	other := d.CreateElement("div", "")
	d.Body().AppendChild(other)
	child := d.CreateElement("span", "")

	var sameErr, innerErr, outerErr, disjointErr error
	mustRender(t, r, root, Div(
		OnCreate(func(v *VNode) {
			v.DOM.AppendChild(child)
			sameErr = r.Render(root, "again", nil)
			innerErr = r.Render(child, "inner", nil)
			outerErr = r.Render(d.Body(), "outer", nil)
			disjointErr = r.Render(other, Span("other"), nil)
		}),
	))

	for name, err := range map[string]error{"same": sameErr, "descendant": innerErr, "ancestor": outerErr} {
		if !errors.Is(err, render.ErrReentrant) {
			t.Errorf("%s root: err = %v, want E201", name, err)
		}
	}
	if disjointErr != nil {
		t.Errorf("disjoint root: err = %v", disjointErr)
	}
	if got := inner(other); got != "<span>other</span>" {
		t.Errorf("disjoint root innerHTML = %q", got)
	}

	// The lock is released once the pass completes.
	mustRender(t, r, root, "done")
}

func TestRenderHookPanicIsReported(t *testing.T) {
	_, root, r := setup(t)
	err := r.Render(root, []*VNode{
		Div(OnCreate(func(*VNode) { panic("boom") })),
		Span("after"),
	}, nil)
	if !hasCode(err, "E210") {
		t.Fatalf("err = %v, want E210", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v, want panic value in message", err)
	}
	if got := inner(root); got != "<div></div><span>after</span>" {
		t.Errorf("innerHTML = %q", got)
	}

	// Bookkeeping survived: the next pass diffs against the stored tree.
	mustRender(t, r, root, []*VNode{Div(), Span("next")})
	if got := inner(root); got != "<div></div><span>next</span>" {
		t.Errorf("innerHTML = %q", got)
	}
}
