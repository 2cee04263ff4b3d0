package dom

// Event types observed by the tooltip controller.
const (
	EventClick       = "click"
	EventContextMenu = "contextmenu"
	EventMouseDown   = "mousedown"
	EventMouseUp     = "mouseup"
	EventMouseEnter  = "mouseenter"
	EventMouseLeave  = "mouseleave"
	EventMouseMove   = "mousemove"
	EventFocus       = "focus"
	EventBlur        = "blur"
	EventKeyDown     = "keydown"
	EventTouchStart  = "touchstart"
	EventTouchEnd    = "touchend"
)

// KeyEscape is the Key value of the escape key.
const KeyEscape = "Escape"

var bubbling = map[string]bool{
	EventClick:       true,
	EventContextMenu: true,
	EventMouseDown:   true,
	EventMouseUp:     true,
	EventMouseMove:   true,
	EventKeyDown:     true,
	EventTouchStart:  true,
	EventTouchEnd:    true,
}

// Bubbles reports whether events of this type propagate to ancestors.
func Bubbles(typ string) bool {
	return bubbling[typ]
}
