// Package vtest provides testing helpers for code built on the renderer.
//
// The vtest package reduces boilerplate when testing components by
// providing a fluent harness builder, controllable futures for async
// lifecycle hooks, and render assertions.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, vdom.Comp(Counter))
//	    h.Dispatch("button", "click", nil)
//	    if h.Redraws() != 1 {
//	        t.Fatal("click did not request a redraw")
//	    }
//	}
//
// # Fluent Harness Builder
//
// The builder allows chaining multiple setup operations:
//
//	h := vtest.NewHarness().
//	    WithRoot("ul").
//	    WithOption(render.WithObserver(obs)).
//	    WithLogCapture().
//	    Build(t)
//
// Every pass records its document operations:
//
//	h.MustRender(items("b", "a"))
//	if h.LastStats().Moves != 1 { ... }
//
// # Async Hooks
//
// Gates stand in for exit animations and async initialisation:
//
//	gates := vtest.NewGates()
//	h.MustRender(vdom.Li(vdom.Key("a"), vdom.OnBeforeRemove(gates.Hook("a"))))
//	h.MustRender(nil)
//	gates.Release("a")
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, vdom.Comp(Greeting), "Welcome")
//	vtest.ExpectElement(t, form, "input[name=email]")
package vtest
