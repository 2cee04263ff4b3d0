// Package popper defines the positioning-engine contract the tooltip
// controller consumes.
//
// Placement math is an external collaborator. The controller hands an anchor,
// a floating element and options to a Positioner and gets back an Engine that
// reports computed styles, data attributes, the resolved placement and a
// reference-hidden flag, and exposes Update for manual re-computation.
//
// Two positioners ship here: Basic, a naive side placement useful for demos,
// and Static, which reports fixed state and lets callers push signals.
package popper

import (
	"fmt"
	"strings"

	"github.com/vango-dev/tooltip/pkg/dom"
)

// Element keys in State.Styles and State.Attributes.
const (
	KeyPopper = "popper"
	KeyArrow  = "arrow"
)

// DefaultOffset is the [skidding, distance] offset applied when none is given.
var DefaultOffset = [2]float64{0, 6}

// Style is a set of inline CSS declarations.
type Style map[string]string

// Attrs is a set of element attributes.
type Attrs map[string]string

// Options configures placement.
type Options struct {
	// Placement is the preferred placement ("top", "bottom-start", ...).
	// Empty defaults to "bottom".
	Placement string

	// Offset is [skidding, distance] in pixels.
	Offset [2]float64

	// Boundary is the clipping box used to detect a hidden reference.
	// Nil disables the check.
	Boundary *dom.Rect

	// Strategy is the CSS position strategy ("absolute" or "fixed").
	Strategy string
}

// State is the engine's computed output.
type State struct {
	Styles          map[string]Style
	Attributes      map[string]Attrs
	Placement       string
	ReferenceHidden bool
}

// Anchor is what the floating element is positioned against.
type Anchor interface {
	BoundingRect() dom.Rect
}

// Engine is a live positioning instance for one anchor/floating pair.
type Engine interface {
	// Update recomputes placement and reports the new state.
	Update()

	// State returns the last computed state.
	State() State

	// Destroy releases the engine. Further Updates are ignored.
	Destroy()
}

// Positioner creates engines.
// onUpdate is called with the new state after every computation.
type Positioner interface {
	Create(anchor Anchor, floating, arrow dom.Element, opts Options, onUpdate func(State)) Engine
}

// PositionerFunc adapts a function to Positioner.
type PositionerFunc func(anchor Anchor, floating, arrow dom.Element, opts Options, onUpdate func(State)) Engine

// Create calls f.
func (f PositionerFunc) Create(anchor Anchor, floating, arrow dom.Element, opts Options, onUpdate func(State)) Engine {
	return f(anchor, floating, arrow, opts, onUpdate)
}

// ParsePlacement splits "top-start" into side and alignment and validates both.
func ParsePlacement(p string) (side, align string, err error) {
	if p == "" {
		return "bottom", "", nil
	}
	side, align, _ = strings.Cut(p, "-")
	switch side {
	case "top", "bottom", "left", "right", "auto":
	default:
		return "", "", fmt.Errorf("popper: unknown placement %q", p)
	}
	switch align {
	case "", "start", "end":
	default:
		return "", "", fmt.Errorf("popper: unknown placement alignment %q", p)
	}
	return side, align, nil
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Placement:       s.Placement,
		ReferenceHidden: s.ReferenceHidden,
		Styles:          make(map[string]Style, len(s.Styles)),
		Attributes:      make(map[string]Attrs, len(s.Attributes)),
	}
	for k, st := range s.Styles {
		cp := make(Style, len(st))
		for sk, sv := range st {
			cp[sk] = sv
		}
		out.Styles[k] = cp
	}
	for k, at := range s.Attributes {
		cp := make(Attrs, len(at))
		for ak, av := range at {
			cp[ak] = av
		}
		out.Attributes[k] = cp
	}
	return out
}
