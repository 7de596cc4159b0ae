package dom

// EventListener receives events. The renderer registers one listener per
// event type per element.
type EventListener interface {
	HandleEvent(e *Event)
}

// ListenerFunc adapts a function to EventListener.
//
// Note that function values are not comparable, so a ListenerFunc cannot be
// removed with RemoveEventListener; use a pointer type for removable listeners.
type ListenerFunc func(e *Event)

// HandleEvent implements EventListener.
func (f ListenerFunc) HandleEvent(e *Event) { f(e) }

// Event is a dispatched DOM event.
type Event struct {
	Type          string
	Target        Element
	CurrentTarget Element
	// Detail carries event-specific data (e.g., input value, key).
	Detail any

	defaultPrevented bool
	stopped          bool
	noRedraw         bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string, detail any) *Event {
	return &Event{Type: typ, Detail: detail}
}

// PreventDefault marks the default action as cancelled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops delivery to further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// SkipRedraw suppresses the redraw that handlers managed by the renderer
// request after they run.
func (e *Event) SkipRedraw() { e.noRedraw = true }

// RedrawSkipped reports whether SkipRedraw was called.
func (e *Event) RedrawSkipped() bool { return e.noRedraw }
