package harness

import (
	"github.com/vango-dev/tooltip/pkg/dom"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// OutsideID is the id of the element ClickOutside targets.
const OutsideID = "outside"

// Controller returns the live controller, or nil while unmounted.
func (f *Fixture) Controller() *tooltip.Controller { return f.ctrl }

// Err returns the error from the last mount attempt.
func (f *Fixture) Err() error { return f.mountErr }

// Name returns the fixture name.
func (f *Fixture) Name() string { return f.opts.Name }

// Document returns the document the fixture renders into.
func (f *Fixture) Document() *dom.Document { return f.doc }

// Trigger returns the trigger node, or nil while unmounted.
func (f *Fixture) Trigger() *dom.Node { return f.trigger }

// Tooltip returns the tooltip node, or nil while hidden.
func (f *Fixture) Tooltip() *dom.Node { return f.tip }

// Arrow returns the arrow node, or nil while hidden.
func (f *Fixture) Arrow() *dom.Node { return f.arrow }

// Mounted reports whether the trigger is mounted.
func (f *Fixture) Mounted() bool { return f.ctrl != nil }

// Visible reports the controller's visibility; false while unmounted.
func (f *Fixture) Visible() bool { return f.ctrl != nil && f.ctrl.Visible() }

// Changes returns every value passed to the change callback, in order.
func (f *Fixture) Changes() []bool { return append([]bool(nil), f.changes...) }

// Parent returns the fixture whose tooltip holds this one, or nil.
func (f *Fixture) Parent() *Fixture { return f.parent }

// Children returns nested fixtures.
func (f *Fixture) Children() []*Fixture { return f.children }

// Find returns the fixture named name in this tree, or nil.
func (f *Fixture) Find(name string) *Fixture {
	if f.opts.Name == name {
		return f
	}
	for _, child := range f.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Hover moves the pointer onto the trigger.
func (f *Fixture) Hover() *dom.Event { return f.fire(f.trigger, dom.EventMouseEnter) }

// Unhover moves the pointer off the trigger.
func (f *Fixture) Unhover() *dom.Event { return f.fire(f.trigger, dom.EventMouseLeave) }

// HoverTooltip moves the pointer onto the tooltip.
func (f *Fixture) HoverTooltip() *dom.Event { return f.fire(f.tip, dom.EventMouseEnter) }

// UnhoverTooltip moves the pointer off the tooltip.
func (f *Fixture) UnhoverTooltip() *dom.Event { return f.fire(f.tip, dom.EventMouseLeave) }

// Click presses and releases the primary button on the trigger.
func (f *Fixture) Click() *dom.Event { return f.click(f.trigger) }

// ClickTooltip clicks inside the tooltip.
func (f *Fixture) ClickTooltip() *dom.Event { return f.click(f.tip) }

// RightClick opens the context menu on the trigger. The returned event
// reports whether the native menu was suppressed.
func (f *Fixture) RightClick() *dom.Event { return f.fire(f.trigger, dom.EventContextMenu) }

// Tap touches the trigger.
func (f *Fixture) Tap() *dom.Event {
	f.fire(f.trigger, dom.EventTouchStart)
	return f.fire(f.trigger, dom.EventTouchEnd)
}

// Focus focuses the trigger.
func (f *Fixture) Focus() *dom.Event { return f.fire(f.trigger, dom.EventFocus) }

// Blur blurs the trigger.
func (f *Fixture) Blur() *dom.Event { return f.fire(f.trigger, dom.EventBlur) }

// ClickOutside clicks an element outside every fixture.
func (f *Fixture) ClickOutside() *dom.Event { return f.click(Outside(f.doc)) }

// Press dispatches a keydown for key on the body.
func (f *Fixture) Press(key string) *dom.Event {
	return f.doc.Dispatch(dom.NewEvent(dom.EventKeyDown, f.doc.Body()).WithKey(key))
}

// MoveMouse moves the pointer to (x, y) over the trigger.
func (f *Fixture) MoveMouse(x, y float64) *dom.Event {
	if f.trigger == nil {
		return nil
	}
	return f.doc.Dispatch(dom.NewEvent(dom.EventMouseMove, f.trigger).At(x, y))
}

func (f *Fixture) click(n *dom.Node) *dom.Event {
	if n == nil {
		return nil
	}
	n.Fire(dom.EventMouseDown)
	n.Fire(dom.EventMouseUp)
	return n.Fire(dom.EventClick)
}

// fire dispatches typ on n. Unmounted nodes receive nothing.
func (f *Fixture) fire(n *dom.Node, typ string) *dom.Event {
	if n == nil {
		return nil
	}
	return n.Fire(typ)
}

// Outside returns the element used for outside clicks, creating it under
// the body on first use.
func Outside(doc *dom.Document) *dom.Node {
	if n := doc.GetElementByID(OutsideID); n != nil {
		return n
	}
	n := doc.CreateElement("div", OutsideID)
	n.SetRect(dom.NewRect(600, 600, 100, 100))
	return doc.Body().AppendChild(n)
}
