package vdom

import "github.com/vango-dev/vdom/pkg/future"

// Lifecycle attribute names. They are never written to the DOM.
const (
	HookInit         = "oninit"
	HookCreate       = "oncreate"
	HookBeforeUpdate = "onbeforeupdate"
	HookUpdate       = "onupdate"
	HookBeforeRemove = "onbeforeremove"
	HookRemove       = "onremove"
)

// IsLifecycleKey reports whether key names a lifecycle hook.
func IsLifecycleKey(key string) bool {
	switch key {
	case HookInit, HookCreate, HookBeforeUpdate, HookUpdate, HookBeforeRemove, HookRemove:
		return true
	}
	return false
}

// Hook is a lifecycle callback.
type Hook func(v *VNode)

// AsyncHook is a lifecycle callback whose work may complete later.
type AsyncHook func(v *VNode) *future.Future

// UpdateHook decides whether an update proceeds.
type UpdateHook func(v, old *VNode) bool

// OnInit runs before the node's DOM is created.
func OnInit(fn Hook) Attr { return Attribute(HookInit, fn) }

// OnInitAsync runs before the node's DOM is created; the renderer requests a
// redraw when the returned future settles.
func OnInitAsync(fn AsyncHook) Attr { return Attribute(HookInit, fn) }

// OnCreate runs after the render pass that created the node.
func OnCreate(fn Hook) Attr { return Attribute(HookCreate, fn) }

// OnBeforeUpdate may veto an update by returning false.
func OnBeforeUpdate(fn UpdateHook) Attr { return Attribute(HookBeforeUpdate, fn) }

// OnUpdate runs after the render pass that updated the node.
func OnUpdate(fn Hook) Attr { return Attribute(HookUpdate, fn) }

// OnBeforeRemove may defer removal until the returned future settles.
func OnBeforeRemove(fn AsyncHook) Attr { return Attribute(HookBeforeRemove, fn) }

// OnRemove runs when the node is removed.
func OnRemove(fn Hook) Attr { return Attribute(HookRemove, fn) }
