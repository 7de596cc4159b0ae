package vtest

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/dom/htmldoc"
	"github.com/vango-dev/vdom/pkg/render"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Builder allows fluent construction of test harnesses.
type Builder struct {
	tag     string
	opts    []render.Option
	capture bool
}

// NewHarness creates a new harness builder.
//
// Example:
//
//	h := vtest.NewHarness().
//	    WithRoot("ul").
//	    WithLogCapture().
//	    Build(t)
func NewHarness() *Builder {
	return &Builder{tag: "div"}
}

// WithRoot sets the tag of the root element. Default: div.
func (b *Builder) WithRoot(tag string) *Builder {
	b.tag = tag
	return b
}

// WithOption adds a renderer option.
//
// Example:
//
//	h := vtest.NewHarness().WithOption(render.WithObserver(obs)).Build(t)
func (b *Builder) WithOption(opt render.Option) *Builder {
	b.opts = append(b.opts, opt)
	return b
}

// WithLogCapture records the renderer's log output; see Harness.Logs.
func (b *Builder) WithLogCapture() *Builder {
	b.capture = true
	return b
}

// Build returns a harness with a fresh document and a root attached to its
// body.
func (b *Builder) Build(t testing.TB) *Harness {
	t.Helper()
	h := &Harness{t: t, Doc: htmldoc.New()}
	h.Root = h.Doc.CreateElement(b.tag, "")
	h.Doc.Body().AppendChild(h.Root)

	opts := b.opts
	if b.capture {
		logger := slog.New(slog.NewTextHandler(&h.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append([]render.Option{render.WithLogger(logger)}, opts...)
	}
	h.Renderer = render.New(opts...)
	return h
}

// Harness drives a Renderer against an in-memory document.
type Harness struct {
	t        testing.TB
	Doc      *htmldoc.Document
	Root     dom.Element
	Renderer *render.Renderer

	logs    bytes.Buffer
	redraws int
	last    htmldoc.Stats
}

// Mount is a shorthand for NewHarness().Build(t) followed by MustRender.
//
// Example:
//
//	h := vtest.Mount(t, vdom.Ul(items...))
func Mount(t testing.TB, children any) *Harness {
	t.Helper()
	h := NewHarness().Build(t)
	h.MustRender(children)
	return h
}

// Render runs one pass. Redraw requests made by handlers and settled
// futures are counted; see Redraws.
func (h *Harness) Render(children any) error {
	before := h.Doc.Stats()
	err := h.Renderer.Render(h.Root, children, h.redraw)
	h.last = h.Doc.Stats().Sub(before)
	return err
}

// MustRender runs one pass and fails the test on error.
func (h *Harness) MustRender(children any) {
	h.t.Helper()
	if err := h.Render(children); err != nil {
		h.t.Fatalf("Render() error = %v", err)
	}
}

func (h *Harness) redraw() { h.redraws++ }

// Redraws returns the number of redraw requests so far.
func (h *Harness) Redraws() int { return h.redraws }

// LastStats returns the document operations of the most recent pass.
func (h *Harness) LastStats() htmldoc.Stats { return h.last }

// Logs returns the captured log output.
func (h *Harness) Logs() string { return h.logs.String() }

// HTML returns the root's inner HTML.
func (h *Harness) HTML() string {
	return h.Root.(*htmldoc.Element).InnerHTML()
}

// Texts returns the text content of each top-level child of the root.
func (h *Harness) Texts() []string {
	var out []string
	for _, c := range h.Root.ChildNodes() {
		out = append(out, c.TextContent())
	}
	return out
}

// Query returns the first element under the root matching sel, failing the
// test if there is none.
func (h *Harness) Query(sel string) *htmldoc.Element {
	h.t.Helper()
	el, err := h.Root.(*htmldoc.Element).QuerySelector(sel)
	if err != nil {
		h.t.Fatalf("QuerySelector(%q) error = %v", sel, err)
	}
	if el == nil {
		h.t.Fatalf("no element matches %q in:\n%s", sel, truncate(h.HTML(), 500))
	}
	return el
}

// Dispatch fires an event of type typ at the element matching sel and
// reports whether the default action was allowed.
//
// Example:
//
//	h.Dispatch("button.save", "click", nil)
func (h *Harness) Dispatch(sel, typ string, detail any) bool {
	h.t.Helper()
	return h.Query(sel).DispatchEvent(dom.NewEvent(typ, detail))
}

// RenderToString renders a VNode into a fresh document and returns the
// HTML. Errors yield an empty string.
//
// Example:
//
//	html := vtest.RenderToString(MyComponent())
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	doc := htmldoc.New()
	root := doc.CreateElement("div", "")
	doc.Body().AppendChild(root)
	if err := render.New().Render(root, node, nil); err != nil {
		return ""
	}
	return root.(*htmldoc.Element).InnerHTML()
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, vdom.Comp(Greeting), "Welcome")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains an element matching
// the CSS selector sel.
//
// Example:
//
//	vtest.ExpectElement(t, form, "button[type=submit]")
func ExpectElement(t testing.TB, node *vdom.VNode, sel string) {
	t.Helper()
	doc := htmldoc.New()
	root := doc.CreateElement("div", "")
	doc.Body().AppendChild(root)
	if err := render.New().Render(root, node, nil); err != nil {
		t.Errorf("render failed: %v", err)
		return
	}
	el, err := root.(*htmldoc.Element).QuerySelector(sel)
	if err != nil {
		t.Errorf("invalid selector %q: %v", sel, err)
		return
	}
	if el == nil {
		t.Errorf("expected rendered output to contain %s, got:\n%s", sel, truncate(root.(*htmldoc.Element).InnerHTML(), 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, button, "class", "btn-primary")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
