// Package harness is a headless rendering layer for tooltip controllers.
//
// A Fixture plays the part a UI binding plays in a browser: it mounts a
// trigger element, registers it with a controller, mounts the tooltip node
// (with an arrow child) while the controller reports visible and unmounts it
// when hidden. Fixtures nest: a child fixture lives inside its parent's
// tooltip and is torn down with it.
package harness

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vango-dev/tooltip/pkg/dom"
	"github.com/vango-dev/tooltip/pkg/host"
	"github.com/vango-dev/tooltip/pkg/popper"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Default geometry for mounted nodes.
var (
	DefaultTriggerRect = dom.NewRect(100, 100, 80, 24)
	DefaultTooltipRect = dom.NewRect(0, 0, 120, 32)
)

// Options configures a Fixture.
type Options struct {
	// Name prefixes element ids and names the controller. Default "tooltip".
	Name string

	// Config is passed to the controller.
	Config tooltip.Config

	// TriggerText and Text are the trigger label and tooltip content.
	TriggerText string
	Text        string

	// FeedBack feeds every requested value back as Config.Visible, the way
	// a controlled parent component would.
	FeedBack bool

	// TriggerRect places the trigger. Zero uses DefaultTriggerRect.
	TriggerRect dom.Rect

	// Controller holds extra controller options.
	Controller []tooltip.Option

	// Logger is used for render diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "tooltip"
	}
	if o.TriggerText == "" {
		o.TriggerText = "Trigger"
	}
	if o.Text == "" {
		o.Text = "Tooltip"
	}
	if o.TriggerRect == (dom.Rect{}) {
		o.TriggerRect = DefaultTriggerRect
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Fixture is one mounted trigger/tooltip pair.
type Fixture struct {
	host   host.Host
	doc    *dom.Document
	parent *Fixture
	opts   Options
	cfg    tooltip.Config
	logger *slog.Logger

	ctrl     *tooltip.Controller
	mountErr error

	container *dom.Node
	trigger   *dom.Node
	tip       *dom.Node
	arrow     *dom.Node

	children []*Fixture
	changes  []bool
}

// New mounts a fixture under doc's body.
func New(h host.Host, doc *dom.Document, opts Options) (*Fixture, error) {
	opts = opts.withDefaults()
	f := &Fixture{host: h, doc: doc, opts: opts, cfg: opts.Config, logger: opts.Logger}
	if err := f.mount(doc.Body()); err != nil {
		return nil, err
	}
	return f, nil
}

// NewHeadless creates a headless host with a fresh document and mounts a
// fixture on it.
func NewHeadless(opts Options, hostOpts ...host.HeadlessOption) (*Fixture, *host.Headless, error) {
	doc := dom.NewDocument()
	h := host.NewHeadless(doc, hostOpts...)
	f, err := New(h, doc, opts)
	if err != nil {
		return nil, nil, err
	}
	return f, h, nil
}

// Nest adds a child fixture rendered inside this fixture's tooltip. The
// child is mounted whenever the tooltip is, with a fresh controller each
// time. The returned error is from mounting now, when the tooltip is open.
func (f *Fixture) Nest(opts Options) (*Fixture, error) {
	opts = opts.withDefaults()
	child := &Fixture{host: f.host, doc: f.doc, parent: f, opts: opts, cfg: opts.Config, logger: f.logger}
	f.children = append(f.children, child)
	if f.tip != nil {
		if err := child.mount(f.tip); err != nil {
			return child, err
		}
	}
	return child, nil
}

func (f *Fixture) mount(container *dom.Node) error {
	f.container = container
	f.trigger = f.doc.CreateElement("button", f.opts.Name+"-trigger")
	f.trigger.SetText(f.opts.TriggerText)
	f.trigger.SetRect(f.opts.TriggerRect)
	container.AppendChild(f.trigger)

	ctrl, err := tooltip.New(f.host, f.controllerConfig(), f.controllerOptions()...)
	if err != nil {
		f.trigger.Remove()
		f.trigger = nil
		f.mountErr = err
		return err
	}
	f.ctrl = ctrl
	f.mountErr = nil
	ctrl.SetTriggerElement(f.trigger)
	f.Render()
	return nil
}

func (f *Fixture) unmount() {
	f.unmountTooltip()
	if f.ctrl != nil {
		f.ctrl.Close()
		f.ctrl = nil
	}
	if f.trigger != nil {
		f.trigger.Remove()
		f.trigger = nil
	}
	f.container = nil
}

func (f *Fixture) controllerOptions() []tooltip.Option {
	opts := []tooltip.Option{tooltip.WithName(f.opts.Name)}
	return append(opts, f.opts.Controller...)
}

// controllerConfig wraps the caller's change callback so the fixture sees
// every request too.
func (f *Fixture) controllerConfig() tooltip.Config {
	cfg := f.cfg
	cfg.OnVisibleChange = tooltip.Handlers{f.cfg.OnVisibleChange, f.onChange}.Call
	return cfg
}

func (f *Fixture) onChange(visible bool) {
	f.changes = append(f.changes, visible)
	if f.opts.FeedBack && f.cfg.Visible != nil {
		f.cfg.Visible = tooltip.Bool(visible)
		if err := f.ctrl.Configure(f.controllerConfig()); err != nil {
			f.logger.Error("harness feedback failed", "name", f.opts.Name, "error", err)
		}
	}
	f.Render()
}

// Configure replaces the fixture's configuration.
// On error the previous configuration stays.
func (f *Fixture) Configure(cfg tooltip.Config) error {
	prev := f.cfg
	f.cfg = cfg
	if f.ctrl == nil {
		return nil
	}
	if err := f.ctrl.Configure(f.controllerConfig()); err != nil {
		f.cfg = prev
		return err
	}
	f.Render()
	return nil
}

// SetVisible sets the controlled value. Nil returns to uncontrolled.
func (f *Fixture) SetVisible(v *bool) error {
	cfg := f.cfg
	cfg.Visible = v
	return f.Configure(cfg)
}

// Render mounts or unmounts the tooltip to match the controller and
// refreshes the tooltip and arrow attributes.
func (f *Fixture) Render() {
	if f.ctrl == nil {
		return
	}
	visible := f.ctrl.Visible()
	switch {
	case visible && f.tip == nil:
		f.mountTooltip()
	case !visible && f.tip != nil:
		f.unmountTooltip()
	}
	if f.tip != nil {
		applyProps(f.tip, f.ctrl.TooltipProps(nil))
		applyProps(f.arrow, f.ctrl.ArrowProps(nil))
	}
}

func (f *Fixture) mountTooltip() {
	f.tip = f.doc.CreateElement("div", f.opts.Name+"-tooltip")
	f.tip.SetRect(DefaultTooltipRect)
	f.tip.AppendChild(f.doc.CreateText(f.opts.Text))
	f.arrow = f.doc.CreateElement("div", f.opts.Name+"-arrow")
	f.tip.AppendChild(f.arrow)
	f.container.AppendChild(f.tip)

	f.ctrl.SetTooltipElement(f.tip)
	f.ctrl.SetArrowElement(f.arrow)

	for _, child := range f.children {
		if err := child.mount(f.tip); err != nil {
			f.logger.Error("harness nested mount failed", "name", child.opts.Name, "error", err)
		}
	}
	f.logger.Debug("harness tooltip mounted", "name", f.opts.Name)
}

func (f *Fixture) unmountTooltip() {
	if f.tip == nil {
		return
	}
	for _, child := range f.children {
		child.unmount()
	}
	if f.ctrl != nil {
		f.ctrl.SetTooltipElement(nil)
		f.ctrl.SetArrowElement(nil)
	}
	f.tip.Remove()
	f.tip, f.arrow = nil, nil
	f.logger.Debug("harness tooltip unmounted", "name", f.opts.Name)
}

// Close unmounts everything and closes the controller.
func (f *Fixture) Close() {
	f.unmount()
}

// applyProps writes string renderings of props as attributes.
func applyProps(n *dom.Node, props tooltip.Props) {
	if n == nil {
		return
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		value := attrValue(props[k])
		if cur, ok := n.Attr(k); ok && cur == value {
			continue
		}
		n.SetAttribute(k, value)
	}
}

func attrValue(v any) string {
	switch s := v.(type) {
	case tooltip.Style:
		return styleString(s)
	case popper.Style:
		return styleString(s)
	case map[string]string:
		return styleString(s)
	case string:
		return s
	}
	return fmt.Sprint(v)
}

func styleString(s map[string]string) string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + s[k]
	}
	return strings.Join(parts, "; ")
}
