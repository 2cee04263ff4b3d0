package popper

import "github.com/vango-dev/tooltip/pkg/dom"

// Static reports a fixed state for every engine it creates and keeps the
// engines so callers can push a reference-hidden signal or count updates.
type Static struct {
	placement string
	engines   []*StaticEngine
}

var _ Positioner = (*Static)(nil)

// NewStatic creates a static positioner reporting placement.
// An empty placement reports "bottom".
func NewStatic(placement string) *Static {
	if placement == "" {
		placement = "bottom"
	}
	return &Static{placement: placement}
}

// Create builds a static engine and reports its initial state.
func (s *Static) Create(anchor Anchor, floating, arrow dom.Element, opts Options, onUpdate func(State)) Engine {
	placement := s.placement
	if opts.Placement != "" {
		placement = opts.Placement
	}
	e := &StaticEngine{
		anchor:   anchor,
		floating: floating,
		onUpdate: onUpdate,
		state: State{
			Styles: map[string]Style{
				KeyPopper: {"position": "absolute", "left": "0", "top": "0", "transform": "translate(0px, 0px)"},
				KeyArrow:  {"position": "absolute"},
			},
			Attributes: map[string]Attrs{
				KeyPopper: {"data-popper-placement": placement},
				KeyArrow:  {},
			},
			Placement: placement,
		},
	}
	s.engines = append(s.engines, e)
	e.report()
	return e
}

// Engines returns every engine created so far, oldest first.
func (s *Static) Engines() []*StaticEngine {
	return s.engines
}

// Last returns the most recently created engine, or nil.
func (s *Static) Last() *StaticEngine {
	if len(s.engines) == 0 {
		return nil
	}
	return s.engines[len(s.engines)-1]
}

// StaticEngine is the engine created by Static.
type StaticEngine struct {
	anchor    Anchor
	floating  dom.Element
	onUpdate  func(State)
	state     State
	updates   int
	destroyed bool
}

// Update reports the current state again.
func (e *StaticEngine) Update() {
	if e.destroyed {
		return
	}
	e.updates++
	e.report()
}

// State returns the current state.
func (e *StaticEngine) State() State { return e.state }

// Destroy stops further reports.
func (e *StaticEngine) Destroy() { e.destroyed = true }

// Destroyed reports whether Destroy ran.
func (e *StaticEngine) Destroyed() bool { return e.destroyed }

// Updates returns how many times Update ran.
func (e *StaticEngine) Updates() int { return e.updates }

// Anchor returns the anchor the engine was created with.
func (e *StaticEngine) Anchor() Anchor { return e.anchor }

// Floating returns the floating element the engine was created with.
func (e *StaticEngine) Floating() dom.Element { return e.floating }

// SetReferenceHidden pushes a reference-hidden signal.
func (e *StaticEngine) SetReferenceHidden(hidden bool) {
	if e.destroyed {
		return
	}
	e.state.ReferenceHidden = hidden
	if hidden {
		e.state.Attributes[KeyPopper]["data-popper-reference-hidden"] = "true"
	} else {
		delete(e.state.Attributes[KeyPopper], "data-popper-reference-hidden")
	}
	e.report()
}

func (e *StaticEngine) report() {
	if e.onUpdate != nil {
		e.onUpdate(e.state.Clone())
	}
}
