package tooltip

import (
	"log/slog"
	"reflect"

	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/dom"
	"github.com/vango-dev/tooltip/pkg/host"
	"github.com/vango-dev/tooltip/pkg/popper"
)

// Option configures a Controller.
type Option func(*Controller)

// WithPositioner sets the positioning engine factory. Default is popper.Basic.
func WithPositioner(p popper.Positioner) Option {
	return func(c *Controller) {
		if p != nil {
			c.positioner = p
		}
	}
}

// WithPopperOptions sets positioning options. A non-empty placement or a
// non-zero offset takes precedence over Config.Placement and Config.Offset.
func WithPopperOptions(opts popper.Options) Option {
	return func(c *Controller) {
		c.popperOpts = opts
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(obs Observer) Option {
	return func(c *Controller) {
		if obs != nil {
			c.obs = obs
		}
	}
}

// WithWarnings shares a deprecation warning state across controllers.
func WithWarnings(w *Warnings) Option {
	return func(c *Controller) {
		c.warnings = w
	}
}

// WithName names the controller in logs and observer events.
func WithName(name string) Option {
	return func(c *Controller) {
		if name != "" {
			c.name = name
		}
	}
}

// Controller coordinates visibility, listeners, timers and the positioning
// engine for one tooltip.
type Controller struct {
	host       host.Host
	name       string
	logger     *slog.Logger
	obs        Observer
	warnings   *Warnings
	positioner popper.Positioner
	popperOpts popper.Options

	cfg   settings
	cell  *cell
	sched scheduler

	trigger dom.Element
	tooltip dom.Element
	arrow   dom.Element

	binds     bindings
	global    bindings
	globalKey globalKey

	virtual         *popper.VirtualElement
	engine          popper.Engine
	engineKey       engineKey
	state           popper.State
	referenceHidden bool

	disconnect func()
	observeKey observeKey

	closed bool
}

// New creates a controller on h. Configuration errors wrap ErrMisconfigured.
func New(h host.Host, cfg Config, opts ...Option) (*Controller, error) {
	if h == nil {
		return nil, terrors.New("T005").Wrap(ErrMisconfigured)
	}
	c := &Controller{
		host:       h,
		name:       "tooltip",
		obs:        NopObserver{},
		positioner: popper.Basic{},
		virtual:    popper.NewVirtualElement(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default().With("component", "tooltip")
	}
	if c.warnings == nil {
		c.warnings = NewWarnings(c.logger)
	}

	s, err := cfg.resolve(c.warnings)
	if err != nil {
		return nil, err
	}
	if err := c.validatePopper(); err != nil {
		return nil, err
	}
	c.cfg = s

	c.cell, err = newCell(&s.defaultVisible, s.visible, c.notify)
	if err != nil {
		return nil, err
	}
	c.sched = scheduler{host: h, cell: c.cell, obs: c.obs, name: c.name}
	c.binds = bindings{obs: c.obs, name: c.name}
	c.global = bindings{obs: c.obs, name: c.name}

	c.sync()
	return c, nil
}

func (c *Controller) validatePopper() error {
	if c.popperOpts.Placement == "" {
		return nil
	}
	if _, _, err := popper.ParsePlacement(c.popperOpts.Placement); err != nil {
		return misconfigured("T004", "popper placement %q", c.popperOpts.Placement)
	}
	return nil
}

// notify is the cell's change callback.
func (c *Controller) notify(visible bool) {
	c.logger.Debug("tooltip visibility requested",
		"name", c.name,
		"visible", visible,
		"controlled", c.cell.controlled,
	)
	c.obs.VisibilityChanged(c.name, visible, c.cell.controlled)
	if c.cfg.onVisibleChange != nil {
		c.cfg.onVisibleChange(visible)
	}
}

// Name returns the controller's name.
func (c *Controller) Name() string { return c.name }

// Visible reports the effective visibility.
func (c *Controller) Visible() bool { return c.cell.visible() }

// Controlled reports whether visibility comes from Config.Visible.
func (c *Controller) Controlled() bool { return c.cell.controlled }

// Placement returns the placement the engine resolved, or "" with no engine.
func (c *Controller) Placement() string { return c.state.Placement }

// PopperState returns a copy of the last engine state.
func (c *Controller) PopperState() popper.State { return c.state.Clone() }

// Warnings returns the deprecation warning state.
func (c *Controller) Warnings() *Warnings { return c.warnings }

// TriggerElement returns the registered trigger handle.
func (c *Controller) TriggerElement() dom.Element { return c.trigger }

// TooltipElement returns the registered tooltip handle.
func (c *Controller) TooltipElement() dom.Element { return c.tooltip }

// SetTriggerElement registers the trigger handle. Nil unregisters it.
func (c *Controller) SetTriggerElement(el dom.Element) {
	el = normalize(el)
	if c.closed || c.trigger == el {
		return
	}
	c.trigger = el
	c.sync()
}

// SetTooltipElement registers the tooltip handle. Nil unregisters it.
func (c *Controller) SetTooltipElement(el dom.Element) {
	el = normalize(el)
	if c.closed || c.tooltip == el {
		return
	}
	c.tooltip = el
	c.sync()
}

// SetArrowElement registers the arrow handle. Nil unregisters it.
func (c *Controller) SetArrowElement(el dom.Element) {
	el = normalize(el)
	if c.closed || c.arrow == el {
		return
	}
	c.arrow = el
	c.sync()
}

// Configure applies a new configuration. A controlled value fed back here
// becomes the reported visibility. On error the previous configuration stays.
func (c *Controller) Configure(cfg Config) error {
	if c.closed {
		return terrors.New("T040")
	}
	s, err := cfg.resolve(c.warnings)
	if err != nil {
		return err
	}
	wasHiding := c.cfg.closeOnTriggerHidden
	c.cfg = s
	c.cell.setControlled(s.visible)
	c.sync()

	if s.closeOnTriggerHidden && !wasHiding && c.referenceHidden {
		c.sched.scheduleHide(0)
	}
	return nil
}

// Show schedules a show after DelayShow.
func (c *Controller) Show() {
	if c.closed {
		return
	}
	c.sched.scheduleShow(c.cfg.delayShow)
}

// Hide schedules a hide after DelayHide.
func (c *Controller) Hide() {
	if c.closed {
		return
	}
	c.sched.scheduleHide(c.cfg.delayHide)
}

// Toggle schedules the opposite of the current visibility.
func (c *Controller) Toggle() {
	if c.closed {
		return
	}
	c.sched.toggle(c.cfg.delayShow, c.cfg.delayHide)
}

// Cancel drops a pending show or hide.
func (c *Controller) Cancel() {
	c.sched.cancel()
}

// Pending reports the kind of the outstanding timer, if any.
func (c *Controller) Pending() (TimerKind, bool) {
	return c.sched.armed()
}

// Update asks the engine to recompute placement.
func (c *Controller) Update() {
	if c.engine != nil {
		c.engine.Update()
	}
}

// ListenerCount returns how many listeners the controller holds for event,
// on the trigger, tooltip and document together. "" counts all.
func (c *Controller) ListenerCount(event string) int {
	return c.binds.count(event) + c.global.count(event)
}

// Observing reports whether a mutation subscription is active.
func (c *Controller) Observing() bool { return c.disconnect != nil }

// Close cancels the pending timer, removes every listener, disconnects the
// mutation observer and destroys the engine. It is idempotent.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.sched.cancel()
	c.binds.clear()
	c.global.clear()
	c.stopObserver()
	c.destroyEngine()
	c.trigger, c.tooltip, c.arrow = nil, nil, nil
	c.logger.Debug("tooltip closed", "name", c.name)
}

// Closed reports whether Close ran.
func (c *Controller) Closed() bool { return c.closed }

// sync brings engine, bindings, global listeners and the mutation
// subscription in line with the handles and configuration.
func (c *Controller) sync() {
	c.syncEngine()
	c.rebind()
	c.syncGlobal()
	c.syncObserver()
}

// normalize turns typed nil pointers into a nil interface.
func normalize(el dom.Element) dom.Element {
	if el == nil {
		return nil
	}
	v := reflect.ValueOf(el)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return el
}
