package tooltip

import (
	"github.com/vango-dev/tooltip/pkg/dom"
	"github.com/vango-dev/tooltip/pkg/popper"
)

// engineKey identifies the inputs of a positioning engine. The engine is
// recreated when any of them changes.
type engineKey struct {
	trigger      dom.Element
	tooltip      dom.Element
	arrow        dom.Element
	followCursor bool
	opts         popper.Options
}

// popperOptions merges the configuration shorthands with WithPopperOptions.
// Explicit positioner options win.
func (c *Controller) popperOptions() popper.Options {
	opts := c.popperOpts
	if opts.Placement == "" {
		opts.Placement = c.cfg.placement
	}
	if opts.Offset == ([2]float64{}) {
		opts.Offset = c.cfg.offset
	}
	return opts
}

// syncEngine creates the engine once both an anchor and the tooltip exist
// and destroys it when either goes away.
func (c *Controller) syncEngine() {
	key := engineKey{
		trigger:      c.trigger,
		tooltip:      c.tooltip,
		arrow:        c.arrow,
		followCursor: c.cfg.followCursor,
		opts:         c.popperOptions(),
	}
	if c.engine != nil && c.engineKey == key {
		return
	}
	c.destroyEngine()

	ready := key.tooltip != nil && (key.trigger != nil || key.followCursor)
	if !ready {
		return
	}
	var anchor popper.Anchor = c.virtual
	if !key.followCursor {
		anchor = popper.ElementAnchor(key.trigger)
	}
	c.engineKey = key
	engine := c.positioner.Create(anchor, key.tooltip, key.arrow, key.opts, c.onEngineUpdate)
	c.engine = engine
	c.state = engine.State().Clone()
}

func (c *Controller) destroyEngine() {
	if c.engine == nil {
		return
	}
	c.engine.Destroy()
	c.engine = nil
	c.engineKey = engineKey{}
	c.state = popper.State{}
	c.referenceHidden = false
}

// onEngineUpdate records engine output and hides, without delay, on the
// rising edge of the reference-hidden signal.
func (c *Controller) onEngineUpdate(s popper.State) {
	c.state = s
	rising := s.ReferenceHidden && !c.referenceHidden
	c.referenceHidden = s.ReferenceHidden
	if rising && c.cfg.closeOnTriggerHidden {
		c.logger.Debug("tooltip reference hidden", "name", c.name)
		c.sched.scheduleHide(0)
	}
}

// observeKey identifies the active mutation subscription.
type observeKey struct {
	tooltip dom.Element
	init    dom.MutationObserverInit
}

// syncObserver watches the tooltip subtree and re-runs the engine on every
// batch of mutations. It disconnects when the tooltip unmounts, the engine
// goes away or observation is disabled.
func (c *Controller) syncObserver() {
	key := observeKey{tooltip: c.tooltip, init: c.cfg.mutation}
	want := key.tooltip != nil && key.init.Enabled() && c.engine != nil
	if want && c.disconnect != nil && c.observeKey == key {
		return
	}
	c.stopObserver()
	if !want {
		return
	}
	c.observeKey = key
	c.disconnect = c.host.Observe(key.tooltip, key.init, func([]dom.MutationRecord) {
		if c.engine != nil {
			c.engine.Update()
		}
	})
}

func (c *Controller) stopObserver() {
	if c.disconnect == nil {
		return
	}
	c.disconnect()
	c.disconnect = nil
	c.observeKey = observeKey{}
}
