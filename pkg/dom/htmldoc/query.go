package htmldoc

import (
	"bytes"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// QuerySelector returns the first element in the document matching the CSS
// selector, or nil.
func (d *Document) QuerySelector(sel string) (*Element, error) {
	return d.queryFirst(d.root, sel)
}

// QuerySelectorAll returns every element in the document matching the CSS
// selector, in document order.
func (d *Document) QuerySelectorAll(sel string) ([]*Element, error) {
	return d.queryAll(d.root, sel)
}

// QuerySelector returns the first descendant matching the CSS selector, or nil.
func (e *Element) QuerySelector(sel string) (*Element, error) {
	return e.doc.queryFirst(e.n, sel)
}

// QuerySelectorAll returns every descendant matching the CSS selector.
func (e *Element) QuerySelectorAll(sel string) ([]*Element, error) {
	return e.doc.queryAll(e.n, sel)
}

func (d *Document) queryFirst(scope *html.Node, sel string) (*Element, error) {
	all, err := d.queryAll(scope, sel)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (d *Document) queryAll(scope *html.Node, sel string) ([]*Element, error) {
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil, err
	}
	var out []*Element
	for _, n := range s.MatchAll(scope) {
		if n == scope {
			continue
		}
		out = append(out, d.wrap(n).(*Element))
	}
	return out, nil
}

// HTML serializes the document.
func (d *Document) HTML() string { return outer(d.root) }

// BodyHTML serializes the children of <body>.
func (d *Document) BodyHTML() string { return d.body.InnerHTML() }

// snapshot returns the markup of a node being inserted, for observers.
func (d *Document) snapshot(n *html.Node) string {
	if len(d.observers) == 0 {
		return ""
	}
	return outer(n)
}

func outer(n *html.Node) string {
	var buf bytes.Buffer
	if n.Type == html.DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			_ = html.Render(&buf, c)
		}
		return buf.String()
	}
	_ = html.Render(&buf, n)
	return buf.String()
}
