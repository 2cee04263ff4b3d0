// Package tooltip implements the visibility and interaction controller of a
// floating tooltip anchored to a trigger element.
//
// A Controller decides when the tooltip shows or hides. It owns (or defers to
// a caller-controlled) visibility flag, binds the DOM listeners each trigger
// mode needs, debounces intents through a single cancel-then-arm timer,
// closes on outside interaction, and keeps a positioning engine in sync when
// the reference hides or the tooltip content changes.
//
// The controller never creates DOM nodes. The rendering layer registers the
// trigger, tooltip and arrow handles as it mounts them and reads visibility
// and merged props back:
//
//	c, err := tooltip.New(h, tooltip.Config{
//	    Trigger:   []tooltip.Trigger{tooltip.TriggerClick},
//	    DelayHide: 100 * time.Millisecond,
//	})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	c.SetTriggerElement(button)
//	if c.Visible() {
//	    c.SetTooltipElement(render(c.TooltipProps(nil)))
//	}
//
// Everything runs on the host's event loop. None of the controller's methods
// are safe for concurrent use; callers post onto the loop instead.
package tooltip
