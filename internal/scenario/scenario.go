package scenario

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/tooltip/pkg/dom"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Positioner names accepted in scenario files.
const (
	PositionerBasic  = "basic"
	PositionerStatic = "static"
)

// DefaultName names the fixture built from the top-level config.
const DefaultName = "tooltip"

// Scenario is one scripted interaction.
type Scenario struct {
	// Name describes the scenario in reports.
	Name string `yaml:"name" json:"name"`

	// Positioner selects the engine: "basic" (default) or "static".
	// Reference-hidden steps need "static".
	Positioner string `yaml:"positioner,omitempty" json:"positioner,omitempty"`

	// Touch runs on a touch-capable host.
	Touch bool `yaml:"touch,omitempty" json:"touch,omitempty"`

	// Config configures the single default fixture when Tooltips is empty.
	Config FileConfig `yaml:"config,omitempty" json:"config,omitempty"`

	// Tooltips declares fixtures. A fixture with a parent is nested inside
	// that fixture's tooltip and must come after it.
	Tooltips []TooltipSpec `yaml:"tooltips,omitempty" json:"tooltips,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps" json:"steps"`

	path string
}

// Path returns the file the scenario was loaded from.
func (s *Scenario) Path() string { return s.path }

// fixtures returns the declared fixtures, or the default one.
func (s *Scenario) fixtures() []TooltipSpec {
	if len(s.Tooltips) > 0 {
		return s.Tooltips
	}
	return []TooltipSpec{{Name: DefaultName, Config: s.Config}}
}

// TooltipSpec declares one fixture.
type TooltipSpec struct {
	Name   string     `yaml:"name" json:"name"`
	Parent string     `yaml:"parent,omitempty" json:"parent,omitempty"`
	Text   string     `yaml:"text,omitempty" json:"text,omitempty"`
	Config FileConfig `yaml:"config,omitempty" json:"config,omitempty"`

	// FeedBack feeds change requests back as the controlled value.
	FeedBack bool `yaml:"feedBack,omitempty" json:"feedBack,omitempty"`

	line int
}

// UnmarshalYAML records the fixture's source line.
func (t *TooltipSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain TooltipSpec
	if err := node.Decode((*plain)(t)); err != nil {
		return err
	}
	t.line = node.Line
	return nil
}

// FileConfig is the file form of tooltip.Config. Delays are milliseconds.
type FileConfig struct {
	Trigger              StringList        `yaml:"trigger,omitempty" json:"trigger,omitempty"`
	DelayShow            int               `yaml:"delayShow,omitempty" json:"delayShow,omitempty"`
	DelayHide            int               `yaml:"delayHide,omitempty" json:"delayHide,omitempty"`
	DefaultVisible       *bool             `yaml:"defaultVisible,omitempty" json:"defaultVisible,omitempty"`
	InitialVisible       *bool             `yaml:"initialVisible,omitempty" json:"initialVisible,omitempty"`
	Visible              *bool             `yaml:"visible,omitempty" json:"visible,omitempty"`
	CloseOnOutsideClick  *bool             `yaml:"closeOnOutsideClick,omitempty" json:"closeOnOutsideClick,omitempty"`
	CloseOnClickOutside  *bool             `yaml:"closeOnClickOutside,omitempty" json:"closeOnClickOutside,omitempty"`
	CloseOnTriggerHidden bool              `yaml:"closeOnTriggerHidden,omitempty" json:"closeOnTriggerHidden,omitempty"`
	Interactive          bool              `yaml:"interactive,omitempty" json:"interactive,omitempty"`
	FollowCursor         bool              `yaml:"followCursor,omitempty" json:"followCursor,omitempty"`
	CloseOnEscape        bool              `yaml:"closeOnEscape,omitempty" json:"closeOnEscape,omitempty"`
	MutationObserver     *MutationSettings `yaml:"mutationObserver,omitempty" json:"mutationObserver,omitempty"`
	Placement            string            `yaml:"placement,omitempty" json:"placement,omitempty"`
	Offset               []float64         `yaml:"offset,omitempty" json:"offset,omitempty"`
}

// MutationSettings is the file form of dom.MutationObserverInit.
type MutationSettings struct {
	ChildList     bool `yaml:"childList" json:"childList"`
	Attributes    bool `yaml:"attributes" json:"attributes"`
	CharacterData bool `yaml:"characterData" json:"characterData"`
	Subtree       bool `yaml:"subtree" json:"subtree"`
}

// ToConfig converts the file form. Validation of values is left to the
// controller; only the shape is checked here.
func (c FileConfig) ToConfig() (tooltip.Config, error) {
	cfg := tooltip.Config{
		DelayShow:            time.Duration(c.DelayShow) * time.Millisecond,
		DelayHide:            time.Duration(c.DelayHide) * time.Millisecond,
		DefaultVisible:       c.DefaultVisible,
		InitialVisible:       c.InitialVisible,
		Visible:              c.Visible,
		CloseOnOutsideClick:  c.CloseOnOutsideClick,
		CloseOnClickOutside:  c.CloseOnClickOutside,
		CloseOnTriggerHidden: c.CloseOnTriggerHidden,
		Interactive:          c.Interactive,
		FollowCursor:         c.FollowCursor,
		CloseOnEscape:        c.CloseOnEscape,
		Placement:            c.Placement,
	}
	if c.Trigger != nil {
		cfg.Trigger = tooltip.Triggers(c.Trigger...)
	}
	if m := c.MutationObserver; m != nil {
		cfg.MutationObserver = &dom.MutationObserverInit{
			ChildList:     m.ChildList,
			Attributes:    m.Attributes,
			CharacterData: m.CharacterData,
			Subtree:       m.Subtree,
		}
	}
	if c.Offset != nil {
		if len(c.Offset) != 2 {
			return tooltip.Config{}, fmt.Errorf("offset needs two values, got %d", len(c.Offset))
		}
		cfg.Offset = &[2]float64{c.Offset[0], c.Offset[1]}
	}
	return cfg, nil
}

// StringList accepts a single string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*l = StringList(list)
	if *l == nil {
		*l = StringList{}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = StringList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	if list == nil {
		list = []string{}
	}
	*l = StringList(list)
	return nil
}

// Step is one scenario action. Exactly one field is set.
type Step struct {
	Event   *EventStep  `yaml:"event,omitempty" json:"event,omitempty"`
	Advance string      `yaml:"advance,omitempty" json:"advance,omitempty"`
	Set     *SetStep    `yaml:"set,omitempty" json:"set,omitempty"`
	Hidden  *HiddenStep `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Expect  *Expect     `yaml:"expect,omitempty" json:"expect,omitempty"`

	line int
}

// UnmarshalYAML records the step's source line.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	type plain Step
	if err := node.Decode((*plain)(s)); err != nil {
		return err
	}
	s.line = node.Line
	return nil
}

// Line returns the source line of the step in a YAML file, or 0.
func (s Step) Line() int { return s.line }

// Action names the step kind.
func (s Step) Action() string {
	switch {
	case s.Event != nil:
		return "event " + s.Event.Type
	case s.Advance != "":
		return "advance " + s.Advance
	case s.Set != nil:
		return "set"
	case s.Hidden != nil:
		return "hidden"
	case s.Expect != nil:
		return "expect"
	}
	return "empty"
}

func (s Step) kinds() int {
	n := 0
	for _, set := range []bool{s.Event != nil, s.Advance != "", s.Set != nil, s.Hidden != nil, s.Expect != nil} {
		if set {
			n++
		}
	}
	return n
}

// Gestures accepted by EventStep.Type.
const (
	GestureHover      = "hover"
	GestureUnhover    = "unhover"
	GestureClick      = "click"
	GestureRightClick = "right-click"
	GestureTap        = "tap"
	GestureFocus      = "focus"
	GestureBlur       = "blur"
	GesturePress      = "press"
	GestureMove       = "move"
)

// ValidGesture reports whether name is a gesture EventStep accepts.
func ValidGesture(name string) bool { return gestures[name] }

var gestures = map[string]bool{
	GestureHover:      true,
	GestureUnhover:    true,
	GestureClick:      true,
	GestureRightClick: true,
	GestureTap:        true,
	GestureFocus:      true,
	GestureBlur:       true,
	GesturePress:      true,
	GestureMove:       true,
}

// EventStep dispatches a gesture.
//
// Target is "trigger" or "tooltip" for the first fixture, "<name>.trigger"
// or "<name>.tooltip" (a bare name means its trigger), "outside", or
// "body". Press defaults to the body; the others default to the trigger.
type EventStep struct {
	Type   string  `yaml:"type" json:"type"`
	Target string  `yaml:"target,omitempty" json:"target,omitempty"`
	Key    string  `yaml:"key,omitempty" json:"key,omitempty"`
	X      float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty" json:"y,omitempty"`
}

// SetStep changes a fixture's controlled value. A null visible returns
// the fixture to uncontrolled mode.
type SetStep struct {
	Tooltip string `yaml:"tooltip,omitempty" json:"tooltip,omitempty"`
	Visible *bool  `yaml:"visible" json:"visible"`
}

// HiddenStep pushes a reference-hidden signal to a fixture's engine.
type HiddenStep struct {
	Tooltip string `yaml:"tooltip,omitempty" json:"tooltip,omitempty"`
	Value   bool   `yaml:"value" json:"value"`
}

// Expect checks one fixture. Unset fields are not checked.
type Expect struct {
	Tooltip   string         `yaml:"tooltip,omitempty" json:"tooltip,omitempty"`
	Visible   *bool          `yaml:"visible,omitempty" json:"visible,omitempty"`
	Mounted   *bool          `yaml:"mounted,omitempty" json:"mounted,omitempty"`
	Text      string         `yaml:"text,omitempty" json:"text,omitempty"`
	NoText    string         `yaml:"noText,omitempty" json:"noText,omitempty"`
	Placement string         `yaml:"placement,omitempty" json:"placement,omitempty"`
	Changes   *int           `yaml:"changes,omitempty" json:"changes,omitempty"`
	Listeners map[string]int `yaml:"listeners,omitempty" json:"listeners,omitempty"`
}
