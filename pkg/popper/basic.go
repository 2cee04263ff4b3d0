package popper

import (
	"strconv"

	"github.com/vango-dev/tooltip/pkg/dom"
)

// Basic places the floating element on one side of the anchor with an
// offset, flipping to the opposite side when the preferred one overflows
// the boundary. It is not a full placement algorithm.
type Basic struct{}

var _ Positioner = Basic{}

// Create builds an engine and computes the initial state.
func (Basic) Create(anchor Anchor, floating, arrow dom.Element, opts Options, onUpdate func(State)) Engine {
	e := &basicEngine{
		anchor:   anchor,
		floating: floating,
		arrow:    arrow,
		opts:     opts,
		onUpdate: onUpdate,
	}
	e.Update()
	return e
}

type basicEngine struct {
	anchor    Anchor
	floating  dom.Element
	arrow     dom.Element
	opts      Options
	onUpdate  func(State)
	state     State
	destroyed bool
}

func (e *basicEngine) State() State { return e.state }

func (e *basicEngine) Destroy() { e.destroyed = true }

func (e *basicEngine) Update() {
	if e.destroyed || e.anchor == nil {
		return
	}
	e.state = e.compute()
	if e.onUpdate != nil {
		e.onUpdate(e.state.Clone())
	}
}

func (e *basicEngine) compute() State {
	ref := e.anchor.BoundingRect()
	var float dom.Rect
	if m, ok := e.floating.(dom.Measurable); ok {
		float = m.BoundingRect()
	}

	side, align, err := ParsePlacement(e.opts.Placement)
	if err != nil || side == "auto" {
		side, align = "bottom", ""
	}

	x, y := place(side, align, ref, float, e.opts.Offset)
	if b := e.opts.Boundary; b != nil && overflows(side, x, y, float, *b) {
		flipped := opposite(side)
		fx, fy := place(flipped, align, ref, float, e.opts.Offset)
		if !overflows(flipped, fx, fy, float, *b) {
			side, x, y = flipped, fx, fy
		}
	}

	placement := side
	if align != "" {
		placement += "-" + align
	}

	strategy := e.opts.Strategy
	if strategy == "" {
		strategy = "absolute"
	}

	popperAttrs := Attrs{"data-popper-placement": placement}
	hidden := e.opts.Boundary != nil && !ref.Intersects(*e.opts.Boundary)
	if hidden {
		popperAttrs["data-popper-reference-hidden"] = "true"
	}

	arrowStyle := Style{"position": "absolute"}
	switch side {
	case "top", "bottom":
		arrowStyle["left"] = px(clamp(ref.X+ref.Width/2-x, 0, float.Width))
	default:
		arrowStyle["top"] = px(clamp(ref.Y+ref.Height/2-y, 0, float.Height))
	}

	return State{
		Styles: map[string]Style{
			KeyPopper: {
				"position":  strategy,
				"left":      "0",
				"top":       "0",
				"transform": "translate(" + px(x) + ", " + px(y) + ")",
			},
			KeyArrow: arrowStyle,
		},
		Attributes: map[string]Attrs{
			KeyPopper: popperAttrs,
			KeyArrow:  {},
		},
		Placement:       placement,
		ReferenceHidden: hidden,
	}
}

func place(side, align string, ref, float dom.Rect, offset [2]float64) (x, y float64) {
	skid, dist := offset[0], offset[1]
	switch side {
	case "top", "bottom":
		switch align {
		case "start":
			x = ref.X
		case "end":
			x = ref.Right() - float.Width
		default:
			x = ref.X + ref.Width/2 - float.Width/2
		}
		x += skid
		if side == "top" {
			y = ref.Y - float.Height - dist
		} else {
			y = ref.Bottom() + dist
		}
	default:
		switch align {
		case "start":
			y = ref.Y
		case "end":
			y = ref.Bottom() - float.Height
		default:
			y = ref.Y + ref.Height/2 - float.Height/2
		}
		y += skid
		if side == "left" {
			x = ref.X - float.Width - dist
		} else {
			x = ref.Right() + dist
		}
	}
	return x, y
}

func overflows(side string, x, y float64, float, b dom.Rect) bool {
	switch side {
	case "top":
		return y < b.Top()
	case "bottom":
		return y+float.Height > b.Bottom()
	case "left":
		return x < b.Left()
	default:
		return x+float.Width > b.Right()
	}
}

func opposite(side string) string {
	switch side {
	case "top":
		return "bottom"
	case "bottom":
		return "top"
	case "left":
		return "right"
	default:
		return "left"
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
