package dom

import "strings"

// Node is a headless element.
type Node struct {
	id       string
	tag      string
	doc      *Document
	parent   *Node
	children []*Node
	attrs    map[string]string
	text     string
	rect     Rect

	listeners listenerList
}

var (
	_ Element    = (*Node)(nil)
	_ Measurable = (*Node)(nil)
)

// ID returns the node id.
func (n *Node) ID() string { return n.id }

// Tag returns the element tag name.
func (n *Node) Tag() string { return n.tag }

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AddEventListener attaches fn for events of type typ.
func (n *Node) AddEventListener(typ string, fn Listener) func() {
	return n.listeners.add(typ, fn)
}

// ListenerCount returns the number of attached listeners of type typ.
// An empty typ counts every listener.
func (n *Node) ListenerCount(typ string) int {
	return n.listeners.count(typ)
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other Element) bool {
	o, ok := other.(*Node)
	if !ok || o == nil || n == nil {
		return false
	}
	for cur := o; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Connected reports whether the node is attached under the document body.
func (n *Node) Connected() bool {
	return n.doc != nil && n.doc.body.Contains(n)
}

// AppendChild attaches child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) *Node {
	if child == nil || child == n || child.Contains(n) {
		return child
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	n.doc.record(MutationRecord{Type: MutationChildList, Target: n, Added: []*Node{child}})
	return child
}

// RemoveChild detaches child from n. It is a no-op when child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			n.doc.record(MutationRecord{Type: MutationChildList, Target: n, Removed: []*Node{child}})
			return
		}
	}
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Attr returns an attribute value.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// SetAttribute sets an attribute and records an attributes mutation.
func (n *Node) SetAttribute(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	n.doc.record(MutationRecord{Type: MutationAttributes, Target: n, AttributeName: key})
}

// RemoveAttribute deletes an attribute.
func (n *Node) RemoveAttribute(key string) {
	if _, ok := n.attrs[key]; !ok {
		return
	}
	delete(n.attrs, key)
	n.doc.record(MutationRecord{Type: MutationAttributes, Target: n, AttributeName: key})
}

// SetText replaces the node's own text and records a characterData mutation.
func (n *Node) SetText(text string) {
	n.text = text
	n.doc.record(MutationRecord{Type: MutationCharacterData, Target: n})
}

// Text returns the concatenated text of n and its descendants.
func (n *Node) Text() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	b.WriteString(n.text)
	for _, c := range n.children {
		c.writeText(b)
	}
}

// SetRect sets the node's layout box. Geometry changes are not mutations.
func (n *Node) SetRect(r Rect) { n.rect = r }

// BoundingRect returns the node's layout box.
func (n *Node) BoundingRect() Rect { return n.rect }

// path returns n followed by its ancestors.
func (n *Node) path() []*Node {
	var out []*Node
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}
