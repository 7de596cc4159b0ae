// Package render reconciles vdom trees into a live host document.
//
// A Renderer keeps the previously rendered children of every root it has
// rendered into and, on each call to Render, applies the minimal set of DOM
// operations that turns the old tree into the new one:
//
//	r := render.New(render.WithLogger(logger))
//	err := r.Render(root, vdom.Div(vdom.Class("app"), "hello"), redraw)
//
// Children of an element are diffed positionally when unkeyed and by key
// otherwise. Keyed lists are reordered with the fewest single-node moves,
// using a longest increasing subsequence over the surviving old positions.
//
// Lifecycle hooks come from two places: the component's state (through the
// interfaces in package vdom) and the node's attrs (vdom.OnCreate and
// friends). oncreate and onupdate are queued and flushed after all DOM work
// for the pass is done. An onbeforeremove hook that returns a future defers
// the DOM removal until it settles; meanwhile the stale nodes stay in place
// and are ignored by later passes.
//
// Panics raised by views and hooks are recovered, attributed to the node
// that raised them and returned from Render. The rest of the pass continues.
//
// A Renderer is not safe for concurrent use. Futures settled on other
// goroutines should be marshalled back with WithDispatcher.
package render
