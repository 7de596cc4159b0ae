package vdom

import "github.com/vango-dev/vdom/pkg/dom"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindTrusted               // Raw HTML parsed by the host
	KindFragment              // Grouping without wrapper
	KindComponent             // Component instance
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindTrusted:
		return "TrustedHTML"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Phase is a component's instantiation state.
type Phase uint8

const (
	PhaseUninitialized Phase = iota
	PhaseInitializing
	PhaseViewPending
	PhaseMounted
	PhaseFailed
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitializing:
		return "initializing"
	case PhaseViewPending:
		return "view-pending"
	case PhaseMounted:
		return "mounted"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// VNode is the virtual DOM node.
//
// The first group of fields is supplied by the caller and never modified by
// the renderer. The second group is filled in during reconciliation.
type VNode struct {
	Kind     Kind
	Tag      string      // Element tag name (e.g., "div")
	Key      string      // Reconciliation key; empty means unkeyed
	Attrs    *Attrs      // Attributes, event handlers and lifecycle hooks
	Children []*VNode    // Normalized children; nil entries are holes
	Text     string      // For KindText and KindTrusted
	Def      *Definition // For KindComponent

	DOM      dom.Node          // First DOM node produced, or nil
	DOMSize  int               // Number of top-level DOM nodes spanned
	State    any               // Component state
	Instance *VNode            // Component's rendered subtree
	Events   dom.EventListener // Event dispatch table of the element
	Phase    Phase             // Component instantiation state
}

// Keyed reports whether the node carries a key.
func (v *VNode) Keyed() bool {
	return v != nil && v.Key != ""
}

// Is returns the customized built-in name from the "is" attribute.
func (v *VNode) Is() string {
	if v == nil || v.Attrs == nil {
		return ""
	}
	s, _ := v.Attrs.Value("is").(string)
	return s
}

// Attr returns the value of attribute key, or nil.
func (v *VNode) Attr(key string) any {
	if v == nil || v.Attrs == nil {
		return nil
	}
	return v.Attrs.Value(key)
}

// Name returns a short human-readable label for diagnostics.
func (v *VNode) Name() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindElement:
		return "<" + v.Tag + ">"
	case KindComponent:
		if v.Def != nil && v.Def.Name != "" {
			return v.Def.Name
		}
		return "component"
	default:
		return "#" + v.Kind.String()
	}
}

// Attr represents a single attribute, event handler or lifecycle hook.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function or dom.EventListener
}
