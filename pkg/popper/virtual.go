package popper

import "github.com/vango-dev/tooltip/pkg/dom"

// GenerateBoundingRect returns a zero-size rect at (x, y).
func GenerateBoundingRect(x, y float64) dom.Rect {
	return dom.Rect{X: x, Y: y}
}

// VirtualElement is an anchor with no DOM node behind it, used to follow the
// cursor. Its rect is replaced on every MoveTo.
type VirtualElement struct {
	rect dom.Rect
}

var _ Anchor = (*VirtualElement)(nil)

// NewVirtualElement creates a virtual anchor at the origin.
func NewVirtualElement() *VirtualElement {
	return &VirtualElement{rect: GenerateBoundingRect(0, 0)}
}

// MoveTo regenerates the rect at the given client position.
func (v *VirtualElement) MoveTo(x, y float64) {
	v.rect = GenerateBoundingRect(x, y)
}

// BoundingRect returns the current rect.
func (v *VirtualElement) BoundingRect() dom.Rect {
	return v.rect
}

// ElementAnchor adapts an element to Anchor. Elements without geometry
// report a zero rect.
func ElementAnchor(el dom.Element) Anchor {
	return elementAnchor{el: el}
}

type elementAnchor struct {
	el dom.Element
}

func (a elementAnchor) BoundingRect() dom.Rect {
	if m, ok := a.el.(dom.Measurable); ok {
		return m.BoundingRect()
	}
	return dom.Rect{}
}
