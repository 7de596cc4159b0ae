// Package errors provides structured, coded errors for the renderer and its tools.
//
// Every error carries a registered code (e.g., "E201") that maps to:
//   - a category (usage, reentrancy, user, warning, config, cli)
//   - a short message describing the error
//   - a longer explanation
//
// # Categories
//
//   - usage: the caller handed the renderer something it cannot accept
//     (invalid root, untrusted contenteditable child, a view returning its own vnode)
//   - reentrancy: a render pass was requested for a subtree that is already mid-render
//   - user: a lifecycle hook or component view panicked
//   - warning: soft diagnostics that never interrupt a pass
//   - config, cli: tooling errors
//
// # Matching
//
// Errors match by code, so a freshly built error satisfies errors.Is against a
// package-level sentinel of the same code:
//
//	var ErrReentrant = errors.New("E201")
//
//	if stderrors.Is(err, ErrReentrant) {
//	    // tolerate a hook that tries to unmount its own root
//	}
//
// # Usage
//
//	err := errors.New("E202").
//	    WithDetail("<div contenteditable> has 2 children").
//	    WithSuggestion("Wrap the markup with vdom.Trust()")
//
//	fmt.Println(err.Format())
package errors
