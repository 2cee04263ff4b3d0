package tooltip

// cell is the visibility state. request is its only write path and the only
// place the change callback runs.
type cell struct {
	controlled bool
	value      bool
	internal   bool
	onChange   func(bool)
}

// newCell creates a cell. A non-nil value makes it controlled.
func newCell(initial, value *bool, onChange func(bool)) (*cell, error) {
	if initial == nil && value == nil {
		return nil, misconfigured("T001", "neither an initial nor a controlled value was given")
	}
	c := &cell{onChange: onChange}
	if initial != nil {
		c.internal = *initial
	}
	c.setControlled(value)
	return c, nil
}

func (c *cell) visible() bool {
	if c.controlled {
		return c.value
	}
	return c.internal
}

// request asks for next. Controlled cells only report it. The callback runs
// exactly once per call, also when next equals the current value.
func (c *cell) request(next bool) {
	if !c.controlled {
		c.internal = next
	}
	if c.onChange != nil {
		c.onChange(next)
	}
}

// setControlled mirrors an external value, or returns to internal state
// when value is nil.
func (c *cell) setControlled(value *bool) {
	if value == nil {
		c.controlled = false
		return
	}
	c.controlled = true
	c.value = *value
}
