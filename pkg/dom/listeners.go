package dom

type listenerEntry struct {
	typ     string
	fn      Listener
	removed bool
}

// listenerList keeps listeners in registration order.
// Removal marks the entry so a dispatch already in progress skips it.
type listenerList struct {
	entries []*listenerEntry
}

func (l *listenerList) add(typ string, fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	entry := &listenerEntry{typ: typ, fn: fn}
	l.entries = append(l.entries, entry)
	return func() {
		if entry.removed {
			return
		}
		entry.removed = true
		for i, e := range l.entries {
			if e == entry {
				l.entries = append(l.entries[:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

// snapshot returns the live listeners for typ at the time of the call.
func (l *listenerList) snapshot(typ string) []*listenerEntry {
	var out []*listenerEntry
	for _, e := range l.entries {
		if e.typ == typ {
			out = append(out, e)
		}
	}
	return out
}

func (l *listenerList) count(typ string) int {
	n := 0
	for _, e := range l.entries {
		if typ == "" || e.typ == typ {
			n++
		}
	}
	return n
}

func invoke(entries []*listenerEntry, ev *Event) {
	for _, e := range entries {
		if e.removed {
			continue
		}
		e.fn(ev)
	}
}
