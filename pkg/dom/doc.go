// Package dom defines the host-document surface the renderer drives.
//
// The renderer never assumes a browser. Everything it does to the live tree goes
// through these interfaces: node creation (optionally namespaced), attribute and
// property access, inline styles, event listeners and the three tree mutation
// primitives (append, insert-before, remove). Implementations must apply every
// call synchronously and make its effect visible immediately.
//
// Package htmldoc provides an in-memory implementation suitable for servers,
// tests and tooling.
package dom
