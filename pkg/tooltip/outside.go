package tooltip

import "github.com/vango-dev/tooltip/pkg/dom"

// globalKey identifies the document-level listener set.
type globalKey struct {
	outside bool
	escape  bool
	touch   bool
}

// syncGlobal attaches the outside-interaction and Escape listeners on the
// host document. Hosts without a document get none.
func (c *Controller) syncGlobal() {
	doc := c.host.Document()
	key := globalKey{
		outside: c.cfg.closeOnOutsideClick && doc != nil,
		escape:  c.cfg.closeOnEscape && doc != nil,
		touch:   c.host.Capabilities().Touch,
	}
	if c.global.bound && c.globalKey == key {
		return
	}
	c.global.clear()
	c.globalKey = key
	c.global.bound = true

	if key.outside {
		c.global.add(doc, dom.EventMouseDown, c.onPointerDown)
		if key.touch {
			c.global.add(doc, dom.EventTouchStart, c.onPointerDown)
		}
	}
	if key.escape {
		c.global.add(doc, dom.EventKeyDown, c.onKeyDown)
	}
}

// onPointerDown hides when the event starts outside both the trigger and
// the tooltip. Missing handles never contain the target.
func (c *Controller) onPointerDown(ev *dom.Event) {
	if !c.cell.visible() {
		return
	}
	target := ev.Origin()
	if target == nil {
		return
	}
	if contains(c.trigger, target) || contains(c.tooltip, target) {
		return
	}
	c.logger.Debug("tooltip outside interaction", "name", c.name, "target", target.ID())
	c.Hide()
}

func (c *Controller) onKeyDown(ev *dom.Event) {
	if ev.Key != dom.KeyEscape || !c.cell.visible() {
		return
	}
	c.Hide()
}

func contains(el, target dom.Element) bool {
	if el == nil {
		return false
	}
	return el.Contains(target)
}
