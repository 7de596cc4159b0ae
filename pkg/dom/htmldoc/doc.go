// Package htmldoc implements dom.Document in memory on top of golang.org/x/net/html.
//
// Nodes are plain *html.Node values wrapped once each, so identity comparisons
// and html.Render work on the same tree. On top of the markup tree the package
// emulates what the renderer relies on from a browser:
//
//   - reflected and live DOM properties for form controls (value, checked,
//     selected, selectedIndex) that diverge from their attributes once written
//   - an inline style table kept in sync with the style attribute
//   - event listeners with bubbling dispatch
//   - focus tracking, with focus lost when the focused node is detached or moved
//   - mutation counters and observers, used by tests and the inspector
//
// CSS selector queries are served by cascadia.
package htmldoc
