package dom

import "strconv"

// Document is the root of a headless tree.
type Document struct {
	body      *Node
	listeners listenerList
	observers []*observer
	nextID    int

	pending    []MutationRecord
	delivering bool
}

var _ EventTarget = (*Document)(nil)

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	d := &Document{}
	d.body = &Node{id: "body", tag: "body", doc: d}
	return d
}

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// CreateElement creates a detached element. An empty id is generated.
func (d *Document) CreateElement(tag, id string) *Node {
	if id == "" {
		d.nextID++
		id = tag + "-" + strconv.Itoa(d.nextID)
	}
	return &Node{id: id, tag: tag, doc: d}
}

// CreateText creates a detached text-only span.
func (d *Document) CreateText(text string) *Node {
	n := d.CreateElement("span", "")
	n.text = text
	return n
}

// AddEventListener attaches a document-level listener.
func (d *Document) AddEventListener(typ string, fn Listener) func() {
	return d.listeners.add(typ, fn)
}

// ListenerCount returns the number of document-level listeners of type typ.
func (d *Document) ListenerCount(typ string) int {
	return d.listeners.count(typ)
}

// GetElementByID finds a connected element by id.
func (d *Document) GetElementByID(id string) *Node {
	return find(d.body, id)
}

func find(n *Node, id string) *Node {
	if n.id == id {
		return n
	}
	for _, c := range n.children {
		if found := find(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Text returns the text content of the whole body.
func (d *Document) Text() string {
	return d.body.Text()
}

// Dispatch delivers ev to its target and, for bubbling types, to every
// ancestor and finally the document.
func (d *Document) Dispatch(ev *Event) *Event {
	target, _ := ev.Target.(*Node)
	if target == nil {
		if !ev.stopped {
			invoke(d.listeners.snapshot(ev.Type), ev)
		}
		return ev
	}

	path := target.path()
	if len(ev.Path) == 0 {
		ev.Path = make([]Element, len(path))
		for i, n := range path {
			ev.Path[i] = n
		}
	}

	invoke(target.listeners.snapshot(ev.Type), ev)
	if !Bubbles(ev.Type) {
		return ev
	}
	for _, ancestor := range path[1:] {
		if ev.stopped {
			return ev
		}
		invoke(ancestor.listeners.snapshot(ev.Type), ev)
	}
	if !ev.stopped && target.Connected() {
		invoke(d.listeners.snapshot(ev.Type), ev)
	}
	return ev
}

// Fire dispatches a fresh event of type typ at n.
func (n *Node) Fire(typ string) *Event {
	return n.doc.Dispatch(NewEvent(typ, n))
}
