package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/dom"
	"github.com/vango-dev/tooltip/pkg/harness"
	"github.com/vango-dev/tooltip/pkg/host"
	"github.com/vango-dev/tooltip/pkg/popper"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Report is the outcome of one run.
type Report struct {
	Name     string
	Path     string
	Steps    []StepResult
	Warnings []string

	// Elapsed is virtual time consumed by advance steps.
	Elapsed time.Duration
}

// StepResult records one executed step.
type StepResult struct {
	Index    int
	Line     int
	Action   string
	Visible  map[string]bool
	Skipped  string
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Report) Passed() bool {
	for _, s := range r.Steps {
		if len(s.Failures) > 0 {
			return false
		}
	}
	return true
}

// Failures lists failed expectations, one line each.
func (r *Report) Failures() []string {
	var out []string
	for _, s := range r.Steps {
		for _, f := range s.Failures {
			out = append(out, fmt.Sprintf("step %d (%s): %s", s.Index, s.Action, f))
		}
	}
	return out
}

// Err returns a T104 error describing the failures, or nil.
func (r *Report) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}
	e := terrors.New("T104").WithDetail(strings.Join(failures, "\n"))
	for _, s := range r.Steps {
		if len(s.Failures) > 0 && s.Line > 0 && r.Path != "" {
			e.WithLocation(r.Path, s.Line, 0)
			break
		}
	}
	return e
}

// Runner executes scenarios on a headless host.
type Runner struct {
	// Logger receives run diagnostics. Nil uses slog.Default().
	Logger *slog.Logger

	// Observer is attached to every controller. Nil attaches none.
	Observer tooltip.Observer
}

// Run validates and executes sc with a default runner.
func Run(ctx context.Context, sc *Scenario, logger *slog.Logger) (*Report, error) {
	r := &Runner{Logger: logger}
	return r.Run(ctx, sc)
}

// Run validates and executes sc. The report is returned with a T104 error
// when expectations fail, and alone when they all hold.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("scenario", sc.Name)

	var hostOpts []host.HeadlessOption
	if sc.Touch {
		hostOpts = append(hostOpts, host.WithTouch())
	}
	doc := dom.NewDocument()
	env := &runEnv{
		scenario: sc,
		doc:      doc,
		host:     host.NewHeadless(doc, hostOpts...),
		logger:   logger,
		warnings: tooltip.NewWarnings(logger),
		fixtures: map[string]*harness.Fixture{},
		statics:  map[string]*popper.Static{},
	}
	defer env.close()

	if err := env.mount(r.Observer); err != nil {
		return nil, err
	}

	report := &Report{Name: sc.Name, Path: sc.path}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, terrors.New("T140").WithDetail("Run interrupted").Wrap(err)
		}
		res := env.step(step)
		res.Index = i + 1
		res.Line = step.line
		res.Action = step.Action()
		res.Visible = env.visibility()
		logger.Debug("scenario step",
			"index", res.Index,
			"action", res.Action,
			"failures", len(res.Failures))
		report.Steps = append(report.Steps, res)
	}

	for _, w := range env.warnings.All() {
		report.Warnings = append(report.Warnings, w.String())
	}
	report.Elapsed = env.host.Elapsed()
	return report, report.Err()
}

type runEnv struct {
	scenario *Scenario
	doc      *dom.Document
	host     *host.Headless
	logger   *slog.Logger
	warnings *tooltip.Warnings

	order    []string
	roots    []*harness.Fixture
	fixtures map[string]*harness.Fixture
	statics  map[string]*popper.Static
}

func (e *runEnv) mount(obs tooltip.Observer) error {
	for _, spec := range e.scenario.fixtures() {
		cfg, err := spec.Config.ToConfig()
		if err != nil {
			return err
		}
		var pos popper.Positioner = popper.Basic{}
		if e.scenario.Positioner == PositionerStatic {
			static := popper.NewStatic(spec.Config.Placement)
			e.statics[spec.Name] = static
			pos = static
		}
		ctrlOpts := []tooltip.Option{
			tooltip.WithLogger(e.logger),
			tooltip.WithWarnings(e.warnings),
			tooltip.WithPositioner(pos),
		}
		if obs != nil {
			ctrlOpts = append(ctrlOpts, tooltip.WithObserver(obs))
		}
		opts := harness.Options{
			Name:       spec.Name,
			Text:       spec.Text,
			Config:     cfg,
			FeedBack:   spec.FeedBack,
			Controller: ctrlOpts,
			Logger:     e.logger,
		}

		var f *harness.Fixture
		if spec.Parent == "" {
			f, err = harness.New(e.host, e.doc, opts)
			if f != nil {
				e.roots = append(e.roots, f)
			}
		} else {
			f, err = e.fixtures[spec.Parent].Nest(opts)
		}
		if err != nil {
			return err
		}
		e.fixtures[spec.Name] = f
		e.order = append(e.order, spec.Name)
	}
	return nil
}

func (e *runEnv) close() {
	for _, f := range e.roots {
		f.Close()
	}
}

func (e *runEnv) visibility() map[string]bool {
	out := make(map[string]bool, len(e.order))
	for _, name := range e.order {
		out[name] = e.fixtures[name].Visible()
	}
	return out
}

// fixture resolves a step's tooltip reference. Empty means the first.
func (e *runEnv) fixture(name string) *harness.Fixture {
	if name == "" {
		name = e.order[0]
	}
	return e.fixtures[name]
}

func (e *runEnv) step(step Step) StepResult {
	var res StepResult
	switch {
	case step.Event != nil:
		res.Skipped = e.event(step.Event)
	case step.Advance != "":
		d, _ := parseAdvance(step.Advance)
		if d < 0 {
			e.host.RunTimers()
		} else {
			e.host.Advance(d)
		}
	case step.Set != nil:
		if err := e.fixture(step.Set.Tooltip).SetVisible(step.Set.Visible); err != nil {
			res.Failures = append(res.Failures, err.Error())
		}
	case step.Hidden != nil:
		name := step.Hidden.Tooltip
		if name == "" {
			name = e.order[0]
		}
		engine := e.statics[name].Last()
		if engine == nil || engine.Destroyed() {
			res.Skipped = "no active engine for " + name
			break
		}
		engine.SetReferenceHidden(step.Hidden.Value)
	case step.Expect != nil:
		res.Failures = e.expect(step.Expect)
	}
	return res
}

// event dispatches a gesture. It returns a skip reason when the target is
// not mounted.
func (e *runEnv) event(ev *EventStep) string {
	target := ev.Target
	if target == "" && ev.Type == GesturePress {
		target = TargetBody
	}
	names := make(map[string]bool, len(e.fixtures))
	for name := range e.fixtures {
		names[name] = true
	}
	name, part, err := parseTarget(target, e.order[0], names)
	if err != nil {
		return err.Error()
	}

	var n *dom.Node
	switch part {
	case TargetOutside:
		n = harness.Outside(e.doc)
	case TargetBody:
		n = e.doc.Body()
	case TargetTrigger:
		n = e.fixtures[name].Trigger()
	case TargetTooltip:
		n = e.fixtures[name].Tooltip()
	}
	if n == nil {
		e.logger.Debug("scenario target not mounted", "target", target)
		return target + " is not mounted"
	}
	Dispatch(e.doc, n, ev)
	return ""
}

// Dispatch fires the DOM events for gesture ev on n.
func Dispatch(doc *dom.Document, n *dom.Node, ev *EventStep) {
	switch ev.Type {
	case GestureHover:
		n.Fire(dom.EventMouseEnter)
	case GestureUnhover:
		n.Fire(dom.EventMouseLeave)
	case GestureClick:
		n.Fire(dom.EventMouseDown)
		n.Fire(dom.EventMouseUp)
		n.Fire(dom.EventClick)
	case GestureRightClick:
		n.Fire(dom.EventContextMenu)
	case GestureTap:
		n.Fire(dom.EventTouchStart)
		n.Fire(dom.EventTouchEnd)
	case GestureFocus:
		n.Fire(dom.EventFocus)
	case GestureBlur:
		n.Fire(dom.EventBlur)
	case GesturePress:
		doc.Dispatch(dom.NewEvent(dom.EventKeyDown, n).WithKey(ev.Key))
	case GestureMove:
		doc.Dispatch(dom.NewEvent(dom.EventMouseMove, n).At(ev.X, ev.Y))
	}
}

func (e *runEnv) expect(want *Expect) []string {
	f := e.fixture(want.Tooltip)
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, f.Name()+": "+fmt.Sprintf(format, args...))
	}

	if want.Visible != nil && f.Visible() != *want.Visible {
		fail("visible = %t, want %t", f.Visible(), *want.Visible)
	}
	if want.Mounted != nil && f.Mounted() != *want.Mounted {
		fail("mounted = %t, want %t", f.Mounted(), *want.Mounted)
	}
	text := e.doc.Text()
	if want.Text != "" && !strings.Contains(text, want.Text) {
		fail("text %q not rendered", want.Text)
	}
	if want.NoText != "" && strings.Contains(text, want.NoText) {
		fail("text %q rendered", want.NoText)
	}
	if want.Changes != nil && len(f.Changes()) != *want.Changes {
		fail("changes = %v, want %d calls", f.Changes(), *want.Changes)
	}

	ctrl := f.Controller()
	if want.Placement != "" {
		got := ""
		if ctrl != nil {
			got = ctrl.Placement()
		}
		if got != want.Placement {
			fail("placement = %q, want %q", got, want.Placement)
		}
	}
	events := make([]string, 0, len(want.Listeners))
	for event := range want.Listeners {
		events = append(events, event)
	}
	sort.Strings(events)
	for _, event := range events {
		n := want.Listeners[event]
		got := 0
		if ctrl != nil {
			got = ctrl.ListenerCount(event)
		}
		if got != n {
			fail("%s listeners = %d, want %d", event, got, n)
		}
	}
	return failures
}
