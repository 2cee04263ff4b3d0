package tooltip

import "github.com/vango-dev/tooltip/pkg/dom"

// Handlers is an ordered list of visibility callbacks.
// Every non-nil handler runs, in order, on every call.
type Handlers []func(visible bool)

// Call invokes every handler with visible.
func (h Handlers) Call(visible bool) {
	for _, fn := range h {
		if fn != nil {
			fn(visible)
		}
	}
}

// CallAll composes listeners into one that runs each non-nil listener in
// order. A listener calling StopPropagation does not stop the rest.
func CallAll(fns ...dom.Listener) dom.Listener {
	return func(ev *dom.Event) {
		for _, fn := range fns {
			if fn != nil {
				fn(ev)
			}
		}
	}
}
