package dom

// Mutation record types.
const (
	MutationChildList     = "childList"
	MutationAttributes    = "attributes"
	MutationCharacterData = "characterData"
)

// MutationObserverInit selects which changes an observer receives.
// The zero value observes nothing.
type MutationObserverInit struct {
	ChildList     bool `json:"childList,omitempty" yaml:"childList,omitempty"`
	Attributes    bool `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	CharacterData bool `json:"characterData,omitempty" yaml:"characterData,omitempty"`
	Subtree       bool `json:"subtree,omitempty" yaml:"subtree,omitempty"`
}

// Enabled reports whether the options select any record type.
func (o MutationObserverInit) Enabled() bool {
	return o.ChildList || o.Attributes || o.CharacterData
}

func (o MutationObserverInit) accepts(typ string) bool {
	switch typ {
	case MutationChildList:
		return o.ChildList
	case MutationAttributes:
		return o.Attributes
	case MutationCharacterData:
		return o.CharacterData
	}
	return false
}

// MutationRecord describes one change to the tree.
type MutationRecord struct {
	Type          string
	Target        *Node
	AttributeName string
	Added         []*Node
	Removed       []*Node
}

type observer struct {
	target *Node
	init   MutationObserverInit
	cb     func([]MutationRecord)
	done   bool
}

func (o *observer) matches(rec MutationRecord) bool {
	if o.done || !o.init.accepts(rec.Type) {
		return false
	}
	if rec.Target == o.target {
		return true
	}
	return o.init.Subtree && o.target.Contains(rec.Target)
}

// Observe subscribes cb to mutations of target selected by init.
// Options that select nothing yield a no-op subscription.
func (d *Document) Observe(target *Node, init MutationObserverInit, cb func([]MutationRecord)) (disconnect func()) {
	if target == nil || cb == nil || !init.Enabled() {
		return func() {}
	}
	o := &observer{target: target, init: init, cb: cb}
	d.observers = append(d.observers, o)
	return func() {
		if o.done {
			return
		}
		o.done = true
		for i, cur := range d.observers {
			if cur == o {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// ObserverCount returns the number of connected observers.
func (d *Document) ObserverCount() int {
	return len(d.observers)
}

// record queues rec and delivers it unless a delivery is already running,
// in which case the running loop picks it up.
func (d *Document) record(rec MutationRecord) {
	if d == nil {
		return
	}
	d.pending = append(d.pending, rec)
	if d.delivering {
		return
	}
	d.delivering = true
	defer func() { d.delivering = false }()

	for len(d.pending) > 0 {
		next := d.pending[0]
		d.pending = d.pending[1:]

		observers := make([]*observer, len(d.observers))
		copy(observers, d.observers)
		for _, o := range observers {
			if o.matches(next) {
				o.cb([]MutationRecord{next})
			}
		}
	}
}
