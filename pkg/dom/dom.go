package dom

// Well-known namespace URIs.
const (
	NamespaceHTML  = "http://www.w3.org/1999/xhtml"
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceMath  = "http://www.w3.org/1998/Math/MathML"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
)

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
	FragmentNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case DocumentNode:
		return "Document"
	case FragmentNode:
		return "DocumentFragment"
	default:
		return "Unknown"
	}
}

// Node is a live node in a host document.
//
// Node values are compared by identity; implementations must hand out the same
// value for the same underlying node.
type Node interface {
	Type() NodeType
	// NodeName is the tag name for elements and "#text", "#document-fragment", ...
	// for everything else.
	NodeName() string
	OwnerDocument() Document

	ParentNode() Node
	FirstChild() Node
	NextSibling() Node
	ChildNodes() []Node
	// Contains reports whether other is this node or one of its descendants.
	Contains(other Node) bool

	// AppendChild and InsertBefore move child if it is already attached.
	// Inserting a fragment node moves its children and leaves it empty.
	AppendChild(child Node)
	// InsertBefore inserts child before ref; a nil ref appends.
	InsertBefore(child, ref Node)
	RemoveChild(child Node)

	NodeValue() string
	SetNodeValue(v string)
	TextContent() string
	SetTextContent(v string)

	// UserData stores out-of-band values that are not visible through any
	// other part of the node's API.
	UserData(key any) any
	SetUserData(key, value any)
}

// Element is an element node.
type Element interface {
	Node

	TagName() string
	NamespaceURI() string

	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	SetAttributeNS(ns, name, value string)
	RemoveAttribute(name string)

	// HasProperty reports whether the element exposes name as a DOM property.
	HasProperty(name string) bool
	Property(name string) any
	SetProperty(name string, value any)

	Style() Style

	InnerHTML() string
	SetInnerHTML(markup string) error

	AddEventListener(typ string, l EventListener)
	RemoveEventListener(typ string, l EventListener)
	// DispatchEvent delivers e to this element and its ancestors and reports
	// whether the default action is still allowed.
	DispatchEvent(e *Event) bool

	Focus()
	Blur()
}

// Style is an element's inline style declaration.
type Style interface {
	CSSText() string
	SetCSSText(css string)
	GetPropertyValue(name string) string
	SetProperty(name, value string)
	RemoveProperty(name string)
}

// Document creates nodes and tracks document-wide state.
type Document interface {
	CreateElement(tag, is string) Element
	CreateElementNS(ns, tag, is string) Element
	CreateTextNode(text string) Node
	CreateDocumentFragment() Node

	// ParseHTML parses markup as the children of an element named contextTag
	// in namespace ns and returns the detached top-level nodes in order.
	ParseHTML(markup, contextTag, ns string) ([]Node, error)

	// ActiveElement returns the focused element, or nil.
	ActiveElement() Element
}
