// Package vdom provides the virtual node model.
//
// A VNode describes one piece of desired UI: an element, a text run, a
// trusted HTML snippet, a fragment grouping siblings without a wrapper, or a
// component instance. Trees of VNodes are handed to the renderer, which
// reconciles them against the previous tree and mutates the live document.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P("Content"),
//	    OnClick(handler),
//	)
//
// Arguments may be attributes, event handlers, lifecycle hooks, child
// VNodes, strings and numbers (text), slices of any of these, or an *Attrs
// object. A Static attrs object may be shared by many nodes and across
// renders; a mutable one must not be.
//
// # Normalization
//
// Normalize and NormalizeChildren turn arbitrary values into VNodes:
// strings and numbers become text, booleans and nil become holes that keep
// positional alignment, nested slices are flattened in place.
//
// # Components
//
// A Definition names a component and constructs its state. The state's View
// method returns the component's subtree; optional methods (OnInit,
// OnCreate, ...) receive lifecycle callbacks.
package vdom
