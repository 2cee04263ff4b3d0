package tooltip

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/dom"
	"github.com/vango-dev/tooltip/pkg/popper"
)

// ErrMisconfigured is wrapped by every construction-time configuration error.
var ErrMisconfigured = errors.New("tooltip: misconfigured")

// Trigger is an interaction mode that shows or hides the tooltip.
type Trigger string

const (
	TriggerHover      Trigger = "hover"
	TriggerClick      Trigger = "click"
	TriggerRightClick Trigger = "right-click"
	TriggerFocus      Trigger = "focus"
	TriggerNone       Trigger = "none"
)

// Valid reports whether t is a known trigger.
func (t Trigger) Valid() bool {
	switch t {
	case TriggerHover, TriggerClick, TriggerRightClick, TriggerFocus, TriggerNone:
		return true
	}
	return false
}

// Triggers builds a trigger set from names. It does not validate them.
func Triggers(names ...string) []Trigger {
	out := make([]Trigger, len(names))
	for i, n := range names {
		out[i] = Trigger(n)
	}
	return out
}

// DefaultMutationObserver is used when Config.MutationObserver is nil.
var DefaultMutationObserver = dom.MutationObserverInit{ChildList: true, Subtree: true}

// Config carries every recognized option. Zero values mean "use the default"
// except where noted.
type Config struct {
	// Trigger is the set of active modes. Nil means hover. An empty non-nil
	// slice, or one holding only TriggerNone, disables trigger interaction.
	Trigger []Trigger

	// DelayShow and DelayHide debounce show and hide intents.
	DelayShow time.Duration
	DelayHide time.Duration

	// DefaultVisible is the initial visibility of an uncontrolled tooltip.
	DefaultVisible *bool

	// InitialVisible is the deprecated name of DefaultVisible.
	InitialVisible *bool

	// Visible makes the tooltip controlled when set.
	Visible *bool

	// OnVisibleChange is called on every visibility request.
	OnVisibleChange func(visible bool)

	// CloseOnOutsideClick hides on pointer-down outside trigger and tooltip.
	// Nil means true.
	CloseOnOutsideClick *bool

	// CloseOnClickOutside is the deprecated name of CloseOnOutsideClick.
	CloseOnClickOutside *bool

	// CloseOnTriggerHidden hides when the engine reports the reference hidden.
	CloseOnTriggerHidden bool

	// Interactive keeps the tooltip open while the pointer is over it.
	Interactive bool

	// FollowCursor anchors the tooltip to the pointer position over the trigger.
	FollowCursor bool

	// CloseOnEscape hides when Escape is pressed anywhere in the document.
	CloseOnEscape bool

	// MutationObserver selects the tooltip subtree mutations that trigger a
	// position update. Nil means DefaultMutationObserver; a zero value disables.
	MutationObserver *dom.MutationObserverInit

	// Placement is the preferred placement passed to the positioning engine.
	Placement string

	// Offset is [skidding, distance]. Nil means popper.DefaultOffset.
	Offset *[2]float64
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// settings is Config after defaults, deprecations and validation.
type settings struct {
	triggers             []Trigger
	delayShow            time.Duration
	delayHide            time.Duration
	defaultVisible       bool
	visible              *bool
	onVisibleChange      func(bool)
	closeOnOutsideClick  bool
	closeOnTriggerHidden bool
	interactive          bool
	followCursor         bool
	closeOnEscape        bool
	mutation             dom.MutationObserverInit
	placement            string
	offset               [2]float64
}

func (s settings) has(t Trigger) bool {
	for _, cur := range s.triggers {
		if cur == t {
			return true
		}
	}
	return false
}

// triggerKey is a comparable rendering of the trigger set.
func (s settings) triggerKey() string {
	parts := make([]string, len(s.triggers))
	for i, t := range s.triggers {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func misconfigured(code string, format string, args ...any) error {
	return terrors.New(code).WithDetailf(format, args...).Wrap(ErrMisconfigured)
}

// resolve merges c with defaults once. Deprecated keys are reported to w.
func (c Config) resolve(w *Warnings) (settings, error) {
	s := settings{
		delayShow:            c.DelayShow,
		delayHide:            c.DelayHide,
		visible:              c.Visible,
		onVisibleChange:      c.OnVisibleChange,
		closeOnOutsideClick:  true,
		closeOnTriggerHidden: c.CloseOnTriggerHidden,
		interactive:          c.Interactive,
		followCursor:         c.FollowCursor,
		closeOnEscape:        c.CloseOnEscape,
		mutation:             DefaultMutationObserver,
		placement:            c.Placement,
		offset:               popper.DefaultOffset,
	}

	if c.DelayShow < 0 {
		return settings{}, misconfigured("T002", "DelayShow is %s", c.DelayShow)
	}
	if c.DelayHide < 0 {
		return settings{}, misconfigured("T002", "DelayHide is %s", c.DelayHide)
	}

	triggers, err := normalizeTriggers(c.Trigger)
	if err != nil {
		return settings{}, err
	}
	s.triggers = triggers

	if c.Placement != "" {
		if _, _, err := popper.ParsePlacement(c.Placement); err != nil {
			return settings{}, misconfigured("T004", "placement %q", c.Placement)
		}
	}

	switch {
	case c.DefaultVisible != nil:
		s.defaultVisible = *c.DefaultVisible
		if c.InitialVisible != nil {
			w.deprecated("initialVisible", "defaultVisible")
		}
	case c.InitialVisible != nil:
		w.deprecated("initialVisible", "defaultVisible")
		s.defaultVisible = *c.InitialVisible
	}

	switch {
	case c.CloseOnOutsideClick != nil:
		s.closeOnOutsideClick = *c.CloseOnOutsideClick
		if c.CloseOnClickOutside != nil {
			w.deprecated("closeOnClickOutside", "closeOnOutsideClick")
		}
	case c.CloseOnClickOutside != nil:
		w.deprecated("closeOnClickOutside", "closeOnOutsideClick")
		s.closeOnOutsideClick = *c.CloseOnClickOutside
	}

	if c.MutationObserver != nil {
		s.mutation = *c.MutationObserver
	}
	if c.Offset != nil {
		s.offset = *c.Offset
	}
	return s, nil
}

// normalizeTriggers validates the set, drops duplicates and TriggerNone,
// and keeps the caller's order.
func normalizeTriggers(in []Trigger) ([]Trigger, error) {
	if in == nil {
		return []Trigger{TriggerHover}, nil
	}
	out := make([]Trigger, 0, len(in))
	seen := make(map[Trigger]bool, len(in))
	for _, t := range in {
		if !t.Valid() {
			return nil, misconfigured("T003", "trigger %q", string(t))
		}
		if t == TriggerNone || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// Warning is a deprecated configuration key that was used.
type Warning struct {
	Key         string
	Replacement string
}

// String formats the warning for humans.
func (w Warning) String() string {
	return fmt.Sprintf("%s is deprecated, use %s", w.Key, w.Replacement)
}

// Err returns the warning as a coded error for display.
func (w Warning) Err() error {
	return terrors.New("T020").WithDetail(w.String())
}

// Warnings records deprecated keys and logs each one once. Share one value
// across controllers to warn once per process; give each controller its own
// to warn once per instance.
type Warnings struct {
	mu     sync.Mutex
	logger *slog.Logger
	seen   map[string]bool
	list   []Warning
}

// NewWarnings creates a warning state that logs to logger.
// A nil logger uses slog.Default().
func NewWarnings(logger *slog.Logger) *Warnings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Warnings{logger: logger, seen: make(map[string]bool)}
}

// All returns the recorded warnings in first-seen order.
func (w *Warnings) All() []Warning {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Warning(nil), w.list...)
}

func (w *Warnings) deprecated(key, replacement string) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	warn := Warning{Key: key, Replacement: replacement}
	w.list = append(w.list, warn)
	w.logger.Warn("deprecated tooltip option", "key", key, "replacement", replacement)
}
