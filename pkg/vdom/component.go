package vdom

import "github.com/vango-dev/vdom/pkg/future"

// Definition describes a component. The renderer keys per-definition
// bookkeeping on the pointer, so a Definition must not be copied.
type Definition struct {
	// Name is used in diagnostics.
	Name string
	// New constructs fresh state for a newly created component node.
	New func(v *VNode) Component
}

// Define creates a component definition.
func Define(name string, ctor func(v *VNode) Component) *Definition {
	return &Definition{Name: name, New: ctor}
}

// Component is the state of one component instance.
type Component interface {
	// View returns the component's subtree: a VNode, a string, a slice, or nil.
	View(v *VNode) any
}

// FuncComponent wraps a view function as stateless component state.
type FuncComponent struct {
	view func(v *VNode) any
}

// View implements Component.
func (f *FuncComponent) View(v *VNode) any {
	return f.view(v)
}

// Func creates a definition for a component with no state of its own.
func Func(name string, view func(v *VNode) any) *Definition {
	return Define(name, func(*VNode) Component { return &FuncComponent{view: view} })
}

// Initializer is implemented by state that wants a callback before its first
// view. A non-nil future requests a redraw when it settles.
type Initializer interface {
	OnInit(v *VNode) *future.Future
}

// Creator is implemented by state notified after its DOM has been created.
type Creator interface {
	OnCreate(v *VNode)
}

// UpdateGuard is implemented by state that may veto an update by returning
// false.
type UpdateGuard interface {
	OnBeforeUpdate(v, old *VNode) bool
}

// Updater is implemented by state notified after its DOM has been updated.
type Updater interface {
	OnUpdate(v *VNode)
}

// RemoveGuard is implemented by state that may defer its removal until the
// returned future settles.
type RemoveGuard interface {
	OnBeforeRemove(v *VNode) *future.Future
}

// Remover is implemented by state notified when its node is removed.
type Remover interface {
	OnRemove(v *VNode)
}

// Binder is implemented by state that wants a reference to the node that
// currently owns it. Bind is called before every view.
type Binder interface {
	Bind(v *VNode)
}

// Base is an embeddable Binder.
type Base struct {
	vnode *VNode
}

// Bind implements Binder.
func (b *Base) Bind(v *VNode) { b.vnode = v }

// VNode returns the node that currently owns the state.
func (b *Base) VNode() *VNode { return b.vnode }
