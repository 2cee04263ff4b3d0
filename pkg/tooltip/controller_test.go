package tooltip_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vango-dev/tooltip/pkg/dom"
	"github.com/vango-dev/tooltip/pkg/harness"
	"github.com/vango-dev/tooltip/pkg/host"
	"github.com/vango-dev/tooltip/pkg/popper"
	"github.com/vango-dev/tooltip/pkg/tooltip"
	"github.com/vango-dev/tooltip/pkg/tooltiptest"
)

const content = "Tooltip content"

func mount(t *testing.T, cfg tooltip.Config, hostOpts ...host.HeadlessOption) *tooltiptest.Env {
	t.Helper()
	return tooltiptest.New(t, harness.Options{Config: cfg, Text: content, TriggerText: "Open"}, hostOpts...)
}

func withStatic(t *testing.T, cfg tooltip.Config) (*tooltiptest.Env, *popper.Static) {
	t.Helper()
	st := popper.NewStatic("top")
	env := tooltiptest.New(t, harness.Options{
		Config:     cfg,
		Text:       content,
		Controller: []tooltip.Option{tooltip.WithPositioner(st)},
	})
	return env, st
}

func TestNewRequiresHost(t *testing.T) {
	_, err := tooltip.New(nil, tooltip.Config{})
	if !errors.Is(err, tooltip.ErrMisconfigured) {
		t.Errorf("err = %v, want ErrMisconfigured", err)
	}
}

func TestNewRejectsMisconfiguration(t *testing.T) {
	h := host.NewHeadless(dom.NewDocument())
	tests := []struct {
		name string
		cfg  tooltip.Config
		opts []tooltip.Option
	}{
		{"negative delay", tooltip.Config{DelayShow: -1}, nil},
		{"unknown trigger", tooltip.Config{Trigger: tooltip.Triggers("hover", "press")}, nil},
		{"bad popper placement", tooltip.Config{}, []tooltip.Option{tooltip.WithPopperOptions(popper.Options{Placement: "diagonal"})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tooltip.New(h, tt.cfg, tt.opts...); !errors.Is(err, tooltip.ErrMisconfigured) {
				t.Errorf("err = %v, want ErrMisconfigured", err)
			}
		})
	}
}

func TestHoverScenario(t *testing.T) {
	env := mount(t, tooltip.Config{})

	env.Hover()
	env.Flush()
	tooltiptest.ExpectText(t, env, content)

	env.Unhover()
	env.Flush()
	tooltiptest.ExpectNoText(t, env, content)
}

func TestClickScenario(t *testing.T) {
	env := mount(t, tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerClick}})

	env.Click()
	env.Flush()
	tooltiptest.ExpectText(t, env, content)

	env.Click()
	env.Flush()
	tooltiptest.ExpectNoText(t, env, content)
}

func TestRightClickScenario(t *testing.T) {
	env := mount(t, tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerRightClick}})

	ev := env.RightClick()
	if !ev.DefaultPrevented() {
		t.Error("native context menu was not suppressed")
	}
	env.Flush()
	tooltiptest.ExpectText(t, env, content)

	if ev := env.RightClick(); !ev.DefaultPrevented() {
		t.Error("native context menu was not suppressed on close")
	}
	env.Flush()
	tooltiptest.ExpectNoText(t, env, content)
}

func TestFocusTrigger(t *testing.T) {
	env := mount(t, tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerFocus}})

	env.Focus()
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)

	env.Blur()
	env.Flush()
	tooltiptest.ExpectHidden(t, env.Fixture)
}

func TestTriggerModeExclusivity(t *testing.T) {
	tests := []struct {
		name      string
		trigger   []tooltip.Trigger
		hoverOpen bool
		clickOpen bool
	}{
		{"click", []tooltip.Trigger{tooltip.TriggerClick}, false, true},
		{"hover", []tooltip.Trigger{tooltip.TriggerHover}, true, false},
		{"click and hover", []tooltip.Trigger{tooltip.TriggerClick, tooltip.TriggerHover}, true, true},
		{"none", []tooltip.Trigger{tooltip.TriggerNone}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := mount(t, tooltip.Config{Trigger: tt.trigger, CloseOnOutsideClick: tooltip.Bool(false)})
			env.Hover()
			env.Flush()
			if env.Visible() != tt.hoverOpen {
				t.Errorf("after hover visible = %v, want %v", env.Visible(), tt.hoverOpen)
			}

			env = mount(t, tooltip.Config{Trigger: tt.trigger, CloseOnOutsideClick: tooltip.Bool(false)})
			env.Click()
			env.Flush()
			if env.Visible() != tt.clickOpen {
				t.Errorf("after click visible = %v, want %v", env.Visible(), tt.clickOpen)
			}
		})
	}
}

func TestDelayShow(t *testing.T) {
	env := mount(t, tooltip.Config{DelayShow: 5000 * time.Millisecond})

	env.Hover()
	env.Advance(2000 * time.Millisecond)
	tooltiptest.ExpectHidden(t, env.Fixture)

	env.Advance(3001 * time.Millisecond)
	tooltiptest.ExpectVisible(t, env.Fixture)
}

func TestLastIntentWins(t *testing.T) {
	var rec tooltiptest.Recorder
	env := mount(t, tooltip.Config{
		DelayShow:       100 * time.Millisecond,
		DelayHide:       100 * time.Millisecond,
		OnVisibleChange: rec.Record,
	})

	env.Hover()
	env.Advance(50 * time.Millisecond)
	env.Unhover()
	env.Advance(500 * time.Millisecond)

	tooltiptest.ExpectHidden(t, env.Fixture)
	if calls := rec.Calls(); len(calls) != 1 || calls[0] {
		t.Errorf("calls = %v, want only the hide", calls)
	}
}

func TestZeroDelayStillDefers(t *testing.T) {
	env := mount(t, tooltip.Config{})

	env.Hover()
	tooltiptest.ExpectHidden(t, env.Fixture)
	if kind, ok := env.Controller().Pending(); !ok || kind != tooltip.TimerShow {
		t.Errorf("Pending = %v %v, want show", kind, ok)
	}
	env.Advance(0)
	tooltiptest.ExpectVisible(t, env.Fixture)
}

func TestControlledVisibility(t *testing.T) {
	var rec tooltiptest.Recorder
	env := mount(t, tooltip.Config{Visible: tooltip.Bool(false), OnVisibleChange: rec.Record})

	env.Hover()
	env.Flush()
	tooltiptest.ExpectHidden(t, env.Fixture)
	tooltiptest.ExpectNoText(t, env, content)
	if last, ok := rec.Last(); !ok || !last {
		t.Errorf("OnVisibleChange not called with true: %v", rec.Calls())
	}

	env.Controller().Show()
	env.Controller().Hide()
	env.Flush()
	tooltiptest.ExpectHidden(t, env.Fixture)

	if err := env.SetVisible(tooltip.Bool(true)); err != nil {
		t.Fatal(err)
	}
	tooltiptest.ExpectVisible(t, env.Fixture)
	tooltiptest.ExpectText(t, env, content)
}

func TestControlledFeedBack(t *testing.T) {
	env := tooltiptest.New(t, harness.Options{
		Config:   tooltip.Config{Visible: tooltip.Bool(false), Trigger: []tooltip.Trigger{tooltip.TriggerClick}},
		Text:     content,
		FeedBack: true,
	})

	env.Click()
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)
	if !env.Controller().Controlled() {
		t.Error("fed-back fixture should stay controlled")
	}

	env.Click()
	env.Flush()
	tooltiptest.ExpectHidden(t, env.Fixture)
}

func TestAlwaysNotify(t *testing.T) {
	var rec tooltiptest.Recorder
	env := mount(t, tooltip.Config{DefaultVisible: tooltip.Bool(true), OnVisibleChange: rec.Record})

	env.Controller().Show()
	env.Flush()
	if calls := rec.Calls(); len(calls) != 1 || !calls[0] {
		t.Errorf("calls = %v, want [true] for an unchanged value", calls)
	}
}

func TestIdempotentRebinding(t *testing.T) {
	var rec tooltiptest.Recorder
	cfg := tooltip.Config{OnVisibleChange: rec.Record}
	env := mount(t, cfg)

	for i := 0; i < 2; i++ {
		if err := env.Configure(cfg); err != nil {
			t.Fatal(err)
		}
		env.Controller().SetTriggerElement(env.Trigger())
	}

	if n := env.Trigger().ListenerCount(dom.EventMouseEnter); n != 1 {
		t.Errorf("mouseenter listeners = %d, want 1", n)
	}
	if n := env.Document().ListenerCount(dom.EventMouseDown); n != 1 {
		t.Errorf("document mousedown listeners = %d, want 1", n)
	}

	env.Hover()
	env.Flush()
	if rec.Count() != 1 {
		t.Errorf("calls = %v, want one per event", rec.Calls())
	}
}

func TestReconfigureRemovesStaleListeners(t *testing.T) {
	env := mount(t, tooltip.Config{DelayShow: time.Second})

	env.Hover()
	if err := env.Configure(tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerClick}}); err != nil {
		t.Fatal(err)
	}

	trigger := env.Trigger()
	if trigger.ListenerCount(dom.EventMouseEnter) != 0 || trigger.ListenerCount(dom.EventMouseLeave) != 0 {
		t.Error("hover listeners survived reconfiguration")
	}
	if trigger.ListenerCount(dom.EventClick) != 1 {
		t.Errorf("click listeners = %d, want 1", trigger.ListenerCount(dom.EventClick))
	}
	if env.Host.Pending() != 0 {
		t.Errorf("pending timers = %d after trigger change, want 0", env.Host.Pending())
	}
}

func TestTooltipUnmountDropsPendingHide(t *testing.T) {
	env := mount(t, tooltip.Config{DelayHide: 100 * time.Millisecond})
	env.Hover()
	env.Flush()

	env.Unhover()
	if kind, ok := env.Controller().Pending(); !ok || kind != tooltip.TimerHide {
		t.Fatalf("Pending() = %v, %v, want hide", kind, ok)
	}

	env.Controller().SetTooltipElement(nil)
	if _, ok := env.Controller().Pending(); ok {
		t.Error("hide still pending after the tooltip unmounted")
	}
	env.Advance(time.Second)
	if !env.Controller().Visible() {
		t.Error("stale hide fired after the tooltip unmounted")
	}
}

func TestInteractiveChangeDropsPendingTimer(t *testing.T) {
	cfg := tooltip.Config{DelayShow: time.Second}
	env := mount(t, cfg)

	env.Hover()
	if _, ok := env.Controller().Pending(); !ok {
		t.Fatal("show not pending after hover")
	}

	cfg.Interactive = true
	if err := env.Configure(cfg); err != nil {
		t.Fatal(err)
	}
	if _, ok := env.Controller().Pending(); ok {
		t.Error("show still pending after the interactive flag changed")
	}
	if env.Host.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", env.Host.Pending())
	}
}

func TestTooltipMountKeepsPendingTimer(t *testing.T) {
	h := host.NewHeadless(dom.NewDocument())
	doc := h.HeadlessDocument()
	trigger := doc.Body().AppendChild(doc.CreateElement("button", "t"))
	c, err := tooltip.New(h, tooltip.Config{DelayShow: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	c.SetTriggerElement(trigger)

	trigger.Fire(dom.EventMouseEnter)
	c.SetTooltipElement(doc.Body().AppendChild(doc.CreateElement("div", "tip")))
	if kind, ok := c.Pending(); !ok || kind != tooltip.TimerShow {
		t.Errorf("Pending() = %v, %v, want show", kind, ok)
	}
}

func TestConfigureErrorKeepsPreviousConfig(t *testing.T) {
	env := mount(t, tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerClick}})

	err := env.Configure(tooltip.Config{DelayHide: -time.Second})
	if !errors.Is(err, tooltip.ErrMisconfigured) {
		t.Fatalf("err = %v, want ErrMisconfigured", err)
	}
	if env.Trigger().ListenerCount(dom.EventClick) != 1 {
		t.Error("failed Configure changed bindings")
	}
}

func TestOutsideClickContainment(t *testing.T) {
	env := mount(t, tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerClick}})

	env.Click()
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)

	env.ClickTooltip()
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)

	env.ClickOutside()
	env.Flush()
	tooltiptest.ExpectHidden(t, env.Fixture)
}

func TestOutsideClickDisabled(t *testing.T) {
	env := mount(t, tooltip.Config{
		Trigger:             []tooltip.Trigger{tooltip.TriggerClick},
		CloseOnOutsideClick: tooltip.Bool(false),
	})

	env.Click()
	env.Flush()
	env.ClickOutside()
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)
	tooltiptest.ExpectListeners(t, env.Fixture, dom.EventMouseDown, 0)
}

func TestOutsideClickUsesDelayHide(t *testing.T) {
	env := mount(t, tooltip.Config{DefaultVisible: tooltip.Bool(true), DelayHide: 200 * time.Millisecond})

	env.ClickOutside()
	env.Advance(100 * time.Millisecond)
	tooltiptest.ExpectVisible(t, env.Fixture)
	env.Advance(200 * time.Millisecond)
	tooltiptest.ExpectHidden(t, env.Fixture)
}

func TestOutsideClickIgnoredWhileHidden(t *testing.T) {
	var rec tooltiptest.Recorder
	env := mount(t, tooltip.Config{OnVisibleChange: rec.Record})

	env.ClickOutside()
	env.Flush()
	if rec.Count() != 0 {
		t.Errorf("calls = %v, want none while hidden", rec.Calls())
	}
}

func TestNestedScenario(t *testing.T) {
	click := tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerClick}}
	env := tooltiptest.New(t, harness.Options{Name: "outer", Config: click, Text: "Outer content"})
	inner, err := env.Nest(harness.Options{Name: "inner", Config: click, Text: "Inner content"})
	if err != nil {
		t.Fatal(err)
	}

	env.Click()
	env.Flush()
	if !inner.Mounted() {
		t.Fatal("inner fixture not mounted with the outer tooltip")
	}

	inner.Click()
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)
	tooltiptest.ExpectVisible(t, inner)
	tooltiptest.ExpectText(t, env, "Inner content")

	// Re-clicking the inner trigger closes only the inner tooltip.
	inner.Click()
	env.Flush()
	tooltiptest.ExpectHidden(t, inner)
	tooltiptest.ExpectVisible(t, env.Fixture)

	inner.Click()
	env.Flush()
	tooltiptest.ExpectVisible(t, inner)

	env.ClickOutside()
	env.Flush()
	tooltiptest.ExpectHidden(t, env.Fixture)
	tooltiptest.ExpectHidden(t, inner)
	tooltiptest.ExpectNoText(t, env, "Outer content")
	tooltiptest.ExpectNoText(t, env, "Inner content")
	if env.Host.Pending() != 0 {
		t.Errorf("pending timers = %d after nested teardown", env.Host.Pending())
	}
}

func TestNestedClickInsideInnerTooltipKeepsBothOpen(t *testing.T) {
	click := tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerClick}}
	env := tooltiptest.New(t, harness.Options{Name: "outer", Config: click})
	inner, _ := env.Nest(harness.Options{Name: "inner", Config: click})

	env.Click()
	env.Flush()
	inner.Click()
	env.Flush()

	inner.ClickTooltip()
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)
	tooltiptest.ExpectVisible(t, inner)
}

func TestCloseOnTriggerHiddenScenario(t *testing.T) {
	env, st := withStatic(t, tooltip.Config{
		DefaultVisible:       tooltip.Bool(true),
		CloseOnTriggerHidden: true,
		DelayHide:            time.Second,
	})
	tooltiptest.ExpectVisible(t, env.Fixture)

	st.Last().SetReferenceHidden(true)
	env.Advance(0)
	tooltiptest.ExpectHidden(t, env.Fixture)
}

func TestTriggerHiddenIgnoredWhenDisabled(t *testing.T) {
	env, st := withStatic(t, tooltip.Config{DefaultVisible: tooltip.Bool(true)})

	st.Last().SetReferenceHidden(true)
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)
	if !env.Controller().PopperState().ReferenceHidden {
		t.Error("reference-hidden state not recorded")
	}
}

func TestMutationWatchUpdatesEngine(t *testing.T) {
	env, st := withStatic(t, tooltip.Config{DefaultVisible: tooltip.Bool(true)})
	engine := st.Last()
	before := engine.Updates()

	env.Tooltip().AppendChild(env.Document().CreateText("more"))
	if engine.Updates() != before+1 {
		t.Errorf("Updates = %d, want %d", engine.Updates(), before+1)
	}

	env.Controller().Hide()
	env.Flush()
	if env.Controller().Observing() {
		t.Error("observer still connected after unmount")
	}
	if !engine.Destroyed() {
		t.Error("engine not destroyed after unmount")
	}
}

func TestMutationWatchDisabled(t *testing.T) {
	env, st := withStatic(t, tooltip.Config{
		DefaultVisible:   tooltip.Bool(true),
		MutationObserver: &dom.MutationObserverInit{},
	})
	if env.Controller().Observing() {
		t.Fatal("observer connected while disabled")
	}

	engine := st.Last()
	env.Tooltip().AppendChild(env.Document().CreateText("more"))
	if engine.Updates() != 0 {
		t.Errorf("Updates = %d with observation disabled", engine.Updates())
	}
}

func TestInteractiveKeepsOpen(t *testing.T) {
	tests := []struct {
		name        string
		interactive bool
		want        bool
	}{
		{"interactive", true, true},
		{"not interactive", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := mount(t, tooltip.Config{Interactive: tt.interactive, DelayHide: 100 * time.Millisecond})
			env.Hover()
			env.Flush()

			env.Unhover()
			env.Advance(50 * time.Millisecond)
			env.HoverTooltip()
			env.Advance(500 * time.Millisecond)

			if env.Visible() != tt.want {
				t.Errorf("visible = %v, want %v", env.Visible(), tt.want)
			}
		})
	}
}

func TestCloseOnEscape(t *testing.T) {
	env := mount(t, tooltip.Config{DefaultVisible: tooltip.Bool(true), CloseOnEscape: true})

	env.Press("Tab")
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)

	env.Press(dom.KeyEscape)
	env.Flush()
	tooltiptest.ExpectHidden(t, env.Fixture)
}

func TestTouchHostBindsTouchEnd(t *testing.T) {
	env := mount(t, tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerClick}}, host.WithTouch())

	if env.Trigger().ListenerCount(dom.EventClick) != 0 {
		t.Error("click bound on a touch host")
	}
	env.Tap()
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)

	harness.Outside(env.Document()).Fire(dom.EventTouchStart)
	env.Flush()
	tooltiptest.ExpectHidden(t, env.Fixture)
}

func TestFollowCursor(t *testing.T) {
	env, st := withStatic(t, tooltip.Config{FollowCursor: true})

	env.Hover()
	env.Flush()
	engine := st.Last()
	if engine == nil {
		t.Fatal("no engine created")
	}

	env.MoveMouse(40, 60)
	if engine.Updates() != 1 {
		t.Errorf("Updates = %d, want 1", engine.Updates())
	}
	r := engine.Anchor().BoundingRect()
	if r.X != 40 || r.Y != 60 || r.Width != 0 {
		t.Errorf("anchor rect = %+v", r)
	}
}

func TestHostWithoutDOM(t *testing.T) {
	env := mount(t, tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerClick}}, host.WithoutDOM())

	if n := env.Document().ListenerCount(""); n != 0 {
		t.Errorf("document listeners = %d on a host without DOM", n)
	}
	env.Click()
	env.Flush()
	tooltiptest.ExpectVisible(t, env.Fixture)
}

func TestMissingHandlesAreNoOps(t *testing.T) {
	h := host.NewHeadless(dom.NewDocument())
	c, err := tooltip.New(h, tooltip.Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	var missing *dom.Node
	c.SetTriggerElement(missing)
	c.SetTooltipElement(nil)
	c.Update()

	if c.TriggerElement() != nil {
		t.Error("typed nil handle was stored")
	}
	if n := c.ListenerCount(""); n != 1 {
		t.Errorf("listeners = %d, want only the outside listener", n)
	}
	if got := c.TooltipProps(nil)["role"]; got != "tooltip" {
		t.Errorf("role = %v", got)
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	env := mount(t, tooltip.Config{
		Trigger:       []tooltip.Trigger{tooltip.TriggerHover, tooltip.TriggerClick, tooltip.TriggerFocus},
		Interactive:   true,
		CloseOnEscape: true,
		DelayHide:     time.Second,
	})
	env.Hover()
	env.Flush()
	env.Unhover()

	trigger, tip := env.Trigger(), env.Tooltip()
	ctrl := env.Controller()
	ctrl.Close()
	ctrl.Close()

	if n := trigger.ListenerCount(""); n != 0 {
		t.Errorf("trigger listeners = %d after Close", n)
	}
	if n := tip.ListenerCount(""); n != 0 {
		t.Errorf("tooltip listeners = %d after Close", n)
	}
	if n := env.Document().ListenerCount(""); n != 0 {
		t.Errorf("document listeners = %d after Close", n)
	}
	if env.Host.Pending() != 0 {
		t.Errorf("pending timers = %d after Close", env.Host.Pending())
	}
	if ctrl.Observing() {
		t.Error("observer connected after Close")
	}
	if err := ctrl.Configure(tooltip.Config{}); err == nil {
		t.Error("Configure on a closed controller should fail")
	}
}

func TestPlacementFromConfig(t *testing.T) {
	env := mount(t, tooltip.Config{DefaultVisible: tooltip.Bool(true), Placement: "top"})

	if got := env.Controller().Placement(); got != "top" {
		t.Errorf("Placement = %q, want top", got)
	}
	if got, _ := env.Tooltip().Attr("data-popper-placement"); got != "top" {
		t.Errorf("data-popper-placement = %q", got)
	}
}
