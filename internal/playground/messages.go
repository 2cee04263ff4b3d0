package playground

import (
	"errors"

	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/internal/scenario"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Client message types.
const (
	MsgEvent     = "event"
	MsgConfigure = "configure"
	MsgHidden    = "hidden"
	MsgShow      = "show"
	MsgHide      = "hide"
)

// Server message types.
const (
	MsgState = "state"
	MsgError = "error"
)

// ClientMessage is a message from the page.
//
//	{"type": "event", "event": "hover", "target": "trigger"}
//	{"type": "configure", "config": {"trigger": "click", "delayShow": 200}}
//	{"type": "hidden", "value": true}
type ClientMessage struct {
	Type   string               `json:"type"`
	Event  string               `json:"event,omitempty"`
	Target string               `json:"target,omitempty"`
	Key    string               `json:"key,omitempty"`
	X      float64              `json:"x,omitempty"`
	Y      float64              `json:"y,omitempty"`
	Config *scenario.FileConfig `json:"config,omitempty"`
	Value  bool                 `json:"value,omitempty"`
}

// validate checks the message shape.
func (m ClientMessage) validate() error {
	switch m.Type {
	case MsgEvent:
		if !scenario.ValidGesture(m.Event) {
			return terrors.New("T121").WithDetailf("unknown event %q", m.Event)
		}
		switch m.Target {
		case "", scenario.TargetTrigger, scenario.TargetTooltip, scenario.TargetOutside, scenario.TargetBody:
		default:
			return terrors.New("T121").WithDetailf("unknown target %q", m.Target)
		}
	case MsgConfigure:
		if m.Config == nil {
			return terrors.New("T121").WithDetail("configure needs a config object")
		}
	case MsgHidden, MsgShow, MsgHide:
	case "":
		return terrors.New("T121").WithDetail("missing type")
	default:
		return terrors.New("T121").WithDetailf("unknown type %q", m.Type)
	}
	return nil
}

// StateMessage is pushed after every change.
type StateMessage struct {
	Type       string        `json:"type"`
	Visible    bool          `json:"visible"`
	Controlled bool          `json:"controlled"`
	Mounted    bool          `json:"mounted"`
	Placement  string        `json:"placement,omitempty"`
	Pending    string        `json:"pending,omitempty"`
	Changes    int           `json:"changes"`
	Listeners  int           `json:"listeners"`
	Tooltip    tooltip.Props `json:"tooltip,omitempty"`
	Arrow      tooltip.Props `json:"arrow,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
}

// ErrorMessage reports a rejected message or configuration.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func errorMessage(err error) ErrorMessage {
	msg := ErrorMessage{Type: MsgError, Message: err.Error()}
	var te *terrors.TooltipError
	if errors.As(err, &te) {
		msg.Code = te.Code
		msg.Message = te.Message
		msg.Detail = te.Detail
	}
	return msg
}
