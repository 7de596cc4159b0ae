package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Element creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, *Attrs, *VNode,
// []*VNode, strings, numbers, booleans and slices of these. nil and
// booleans become holes in the child list.
// It panics with E206 on any other argument.
func Element(tag string, args ...any) *VNode {
	return createElement(tag, args)
}

func createElement(tag string, args []any) *VNode {
	node := &VNode{Kind: KindElement, Tag: tag}
	node.Attrs, node.Children = collect(args)
	node.Key = keyOf(node.Attrs)
	if node.Attrs != nil && !node.Attrs.static {
		node.Attrs.normalizeClass()
	}
	return node
}

// collect splits builder arguments into attrs and children. A lone *Attrs
// argument is used as-is so that static attrs stay shared.
func collect(args []any) (*Attrs, []*VNode) {
	var (
		shared   *Attrs
		attrs    *Attrs
		children []*VNode
	)
	own := func() *Attrs {
		if attrs == nil {
			if shared != nil {
				attrs = shared.clone()
			} else {
				attrs = &Attrs{values: make(map[string]any)}
			}
		}
		return attrs
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			if !v.IsEmpty() {
				own().set(v.Key, v.Value)
			}

		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					own().set(a.Key, a.Value)
				}
			}

		case EventHandler:
			own().set(v.Event, v.Handler)

		case *Attrs:
			if v == nil {
				continue
			}
			if attrs == nil && shared == nil {
				shared = v
				continue
			}
			a := own()
			v.Range(func(k string, val any) bool {
				a.set(k, val)
				return true
			})

		default:
			if err := appendNormalized(&children, arg); err != nil {
				panic(err)
			}
		}
	}
	if attrs != nil {
		return attrs, children
	}
	return shared, children
}

// CustomElement creates an element with any tag, such as an autonomous
// custom element ("x-widget").
func CustomElement(tag string, args ...any) *VNode {
	return createElement(tag, args)
}

// Builders for the common HTML elements. Anything else goes through
// Element or CustomElement.

func Div(args ...any) *VNode     { return createElement("div", args) }
func Span(args ...any) *VNode    { return createElement("span", args) }
func P(args ...any) *VNode       { return createElement("p", args) }
func A(args ...any) *VNode       { return createElement("a", args) }
func B(args ...any) *VNode       { return createElement("b", args) }
func I(args ...any) *VNode       { return createElement("i", args) }
func Em(args ...any) *VNode      { return createElement("em", args) }
func Strong(args ...any) *VNode  { return createElement("strong", args) }
func Code(args ...any) *VNode    { return createElement("code", args) }
func Pre(args ...any) *VNode     { return createElement("pre", args) }
func Br(args ...any) *VNode      { return createElement("br", args) }
func Hr(args ...any) *VNode      { return createElement("hr", args) }
func Img(args ...any) *VNode     { return createElement("img", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }

// Lists and tables. Their rows are usually keyed.

func Ul(args ...any) *VNode    { return createElement("ul", args) }
func Ol(args ...any) *VNode    { return createElement("ol", args) }
func Li(args ...any) *VNode    { return createElement("li", args) }
func Table(args ...any) *VNode { return createElement("table", args) }
func Thead(args ...any) *VNode { return createElement("thead", args) }
func Tbody(args ...any) *VNode { return createElement("tbody", args) }
func Tr(args ...any) *VNode    { return createElement("tr", args) }
func Th(args ...any) *VNode    { return createElement("th", args) }
func Td(args ...any) *VNode    { return createElement("td", args) }

// Form controls. Their value, checked and selected state is kept as
// properties.

func Form(args ...any) *VNode     { return createElement("form", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option(args ...any) *VNode   { return createElement("option", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }

// Elements that switch the namespace of their subtree. The children of
// foreignObject are HTML again.

func Svg(args ...any) *VNode           { return createElement("svg", args) }
func Math(args ...any) *VNode          { return createElement("math", args) }
func ForeignObject(args ...any) *VNode { return createElement("foreignObject", args) }
