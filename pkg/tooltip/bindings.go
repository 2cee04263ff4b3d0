package tooltip

import "github.com/vango-dev/tooltip/pkg/dom"

// bindingKey identifies a binding set. A rebind with an equal key is a no-op.
// Element handles must be comparable (pointer types in practice).
type bindingKey struct {
	trigger      dom.Element
	tooltip      dom.Element
	triggers     string
	interactive  bool
	followCursor bool
	touch        bool
}

type listener struct {
	event  string
	remove func()
}

// bindings is the set of listeners currently attached for one controller.
type bindings struct {
	obs    Observer
	name   string
	key    bindingKey
	bound  bool
	active []listener
}

// add attaches fn to target and records it. Nil targets are skipped.
func (b *bindings) add(target dom.EventTarget, event string, fn dom.Listener) {
	if target == nil {
		return
	}
	b.active = append(b.active, listener{event: event, remove: target.AddEventListener(event, fn)})
	b.obs.ListenerAttached(b.name, event)
}

// clear removes every recorded listener.
func (b *bindings) clear() {
	for _, l := range b.active {
		l.remove()
		b.obs.ListenerDetached(b.name, l.event)
	}
	b.active = nil
	b.bound = false
}

// count returns how many listeners for event are attached. "" counts all.
func (b *bindings) count(event string) int {
	if event == "" {
		return len(b.active)
	}
	n := 0
	for _, l := range b.active {
		if l.event == event {
			n++
		}
	}
	return n
}

// invalidates reports whether moving from k to next drops a pending timer.
func (k bindingKey) invalidates(next bindingKey) bool {
	switch {
	case k.trigger != nil && k.trigger != next.trigger:
		return true
	case k.tooltip != nil && k.tooltip != next.tooltip:
		return true
	}
	return k.triggers != next.triggers || k.interactive != next.interactive
}

func (c *Controller) bindingKey() bindingKey {
	return bindingKey{
		trigger:      c.trigger,
		tooltip:      c.tooltip,
		triggers:     c.cfg.triggerKey(),
		interactive:  c.cfg.interactive,
		followCursor: c.cfg.followCursor,
		touch:        c.host.Capabilities().Touch,
	}
}

// rebind replaces the trigger bindings when the key changed.
// Stale listeners are removed before new ones are attached. Replacing or
// unmounting the trigger or the tooltip, or changing the trigger set or the
// interactive flag, drops a pending timer. Mounting a first tooltip does not.
func (c *Controller) rebind() {
	key := c.bindingKey()
	if c.binds.bound && c.binds.key == key {
		return
	}
	prev := c.binds.key
	if c.binds.bound && prev.invalidates(key) {
		c.sched.cancel()
	}
	c.binds.clear()
	c.binds.key = key
	c.binds.bound = true

	if key.trigger != nil {
		for _, t := range c.cfg.triggers {
			c.bindTrigger(t, key.trigger, key.touch)
		}
		if key.followCursor {
			c.binds.add(key.trigger, dom.EventMouseMove, c.onMouseMove)
		}
	}
	if key.tooltip != nil && key.interactive {
		c.binds.add(key.tooltip, dom.EventMouseEnter, c.onShow)
		c.binds.add(key.tooltip, dom.EventMouseLeave, c.onHide)
	}
}

func (c *Controller) bindTrigger(t Trigger, el dom.Element, touch bool) {
	switch t {
	case TriggerHover:
		c.binds.add(el, dom.EventMouseEnter, c.onShow)
		c.binds.add(el, dom.EventMouseLeave, c.onHide)
	case TriggerClick:
		// Touch hosts synthesize clicks after touchend; bind one of them.
		if touch {
			c.binds.add(el, dom.EventTouchEnd, c.onToggle)
		} else {
			c.binds.add(el, dom.EventClick, c.onToggle)
		}
	case TriggerRightClick:
		c.binds.add(el, dom.EventContextMenu, CallAll(preventDefault, c.onToggle))
	case TriggerFocus:
		c.binds.add(el, dom.EventFocus, c.onShow)
		c.binds.add(el, dom.EventBlur, c.onHide)
	}
}

func preventDefault(ev *dom.Event) { ev.PreventDefault() }

func (c *Controller) onShow(*dom.Event) { c.Show() }

func (c *Controller) onHide(*dom.Event) { c.Hide() }

func (c *Controller) onToggle(*dom.Event) { c.Toggle() }

func (c *Controller) onMouseMove(ev *dom.Event) {
	c.virtual.MoveTo(ev.ClientX, ev.ClientY)
	if c.engine != nil {
		c.engine.Update()
	}
}
