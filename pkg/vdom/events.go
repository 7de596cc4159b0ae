package vdom

// Event handlers are stored as "on"+type attributes. The renderer accepts
// these handler shapes:
//
//	func()
//	func(*dom.Event)
//	func(*dom.Event) bool           // false prevents the default and stops propagation
//	func(*dom.Event) *future.Future // redraws again once the future settles
//	func(*dom.Event) any
//	func(string)                    // receives the event detail when it is a string
//	dom.EventListener
//
// Any other value is ignored. Every handled event requests a redraw unless
// the handler calls ev.SkipRedraw().

// On handles events of type typ ("click", "keydown", "x-custom").
func On(typ string, handler any) EventHandler {
	return EventHandler{Event: "on" + typ, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return On("click", handler) }

// OnInput handles input events.
func OnInput(handler any) EventHandler { return On("input", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return On("change", handler) }

// OnSubmit handles form submission.
func OnSubmit(handler any) EventHandler { return On("submit", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return On("keydown", handler) }

func OnFocus(handler any) EventHandler { return On("focus", handler) }

func OnBlur(handler any) EventHandler { return On("blur", handler) }
