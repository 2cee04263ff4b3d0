package dom

// Listener handles a dispatched event.
type Listener func(*Event)

// EventTarget is anything listeners can be attached to.
// The returned function removes the listener; calling it more than once is safe.
type EventTarget interface {
	AddEventListener(typ string, fn Listener) (remove func())
}

// Element is an element handle owned by the rendering layer.
type Element interface {
	EventTarget

	// ID returns a stable identifier for diagnostics.
	ID() string

	// Contains reports whether other is this element or one of its descendants.
	Contains(other Element) bool
}

// Measurable is implemented by elements that expose layout geometry.
type Measurable interface {
	BoundingRect() Rect
}

// Event is a dispatched DOM event.
type Event struct {
	// Type is the event name ("click", "mouseenter", ...).
	Type string

	// Target is the element the event was dispatched to.
	Target Element

	// Path is the composed path, target first. May be empty.
	Path []Element

	// ClientX and ClientY carry the pointer position for mouse events.
	ClientX float64
	ClientY float64

	// Key carries the key name for keyboard events ("Escape", "Tab").
	Key string

	defaultPrevented bool
	stopped          bool
}

// NewEvent creates an event of the given type aimed at target.
func NewEvent(typ string, target Element) *Event {
	return &Event{Type: typ, Target: target}
}

// At sets the client coordinates and returns the event.
func (e *Event) At(x, y float64) *Event {
	e.ClientX = x
	e.ClientY = y
	return e
}

// WithKey sets the key name and returns the event.
func (e *Event) WithKey(key string) *Event {
	e.Key = key
	return e
}

// PreventDefault suppresses the host's default action (e.g. the context menu).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Origin returns the innermost element of the composed path, falling back to Target.
// Shadow-rooted hosts retarget Target, so Path[0] is the more precise answer.
func (e *Event) Origin() Element {
	if len(e.Path) > 0 && e.Path[0] != nil {
		return e.Path[0]
	}
	return e.Target
}
