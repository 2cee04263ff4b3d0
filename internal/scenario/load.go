package scenario

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/host"
	"github.com/vango-dev/tooltip/pkg/popper"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// AdvanceAll as an advance value drains every pending timer.
const AdvanceAll = "all"

// Reserved target names.
const (
	TargetTrigger = "trigger"
	TargetTooltip = "tooltip"
	TargetOutside = "outside"
	TargetBody    = "body"
)

// Load reads a scenario file. Files ending in .json are decoded as JSON,
// everything else as YAML. Unknown keys are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, terrors.New("T100").
				WithDetail("No scenario at " + path).
				WithSuggestion("Check the path, or run 'tooltipctl validate' on an existing file")
		}
		return nil, terrors.New("T100").Wrap(err)
	}
	sc, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// Parse decodes a scenario. path selects the format and labels errors.
func Parse(data []byte, path string) (*Scenario, error) {
	sc := &Scenario{}
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(sc)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(sc)
		if stderrors.Is(err, io.EOF) {
			err = stderrors.New("empty document")
		}
	}
	if err != nil {
		return nil, terrors.New("T101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithLocationFromError(path, err).
			WithSuggestion("Check the file against the scenario schema")
	}
	sc.path = path
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Validate checks structure, references and every fixture configuration.
// It returns the first problem found.
func (s *Scenario) Validate() error {
	switch s.Positioner {
	case "", PositionerBasic, PositionerStatic:
	default:
		return s.invalid(0, "unknown positioner %q", s.Positioner).
			WithSuggestion("Use basic or static")
	}
	if len(s.Tooltips) > 0 && !isZeroConfig(s.Config) {
		return s.invalid(0, "config and tooltips are exclusive").
			WithSuggestion("Move the top-level config into a tooltips entry")
	}

	seen := map[string]bool{}
	for _, spec := range s.fixtures() {
		switch {
		case spec.Name == "":
			return s.invalid(spec.line, "tooltip without a name")
		case strings.Contains(spec.Name, "."):
			return s.invalid(spec.line, "tooltip name %q contains a dot", spec.Name)
		case spec.Name == TargetOutside || spec.Name == TargetBody:
			return s.invalid(spec.line, "tooltip name %q is reserved", spec.Name)
		case seen[spec.Name]:
			return s.invalid(spec.line, "duplicate tooltip %q", spec.Name)
		case spec.Parent != "" && !seen[spec.Parent]:
			return s.unknown(spec.line, "parent %q is not declared before %q", spec.Parent, spec.Name)
		}
		seen[spec.Name] = true
		if err := s.checkConfig(spec); err != nil {
			return err
		}
	}

	if len(s.Steps) == 0 {
		return s.invalid(0, "no steps")
	}
	for i, step := range s.Steps {
		if err := s.checkStep(i, step, seen); err != nil {
			return err
		}
	}
	return nil
}

// checkConfig builds a throwaway controller so configuration errors are
// reported before the run.
func (s *Scenario) checkConfig(spec TooltipSpec) error {
	cfg, err := spec.Config.ToConfig()
	if err != nil {
		return s.invalid(spec.line, "tooltip %q: %v", spec.Name, err)
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl, err := tooltip.New(host.NewHeadless(nil), cfg,
		tooltip.WithLogger(quiet),
		tooltip.WithWarnings(tooltip.NewWarnings(quiet)),
	)
	if err != nil {
		var te *terrors.TooltipError
		if stderrors.As(err, &te) && s.path != "" && spec.line > 0 {
			te.WithLocation(s.path, spec.line, 0)
		}
		return err
	}
	ctrl.Close()
	return nil
}

func (s *Scenario) checkStep(i int, step Step, names map[string]bool) error {
	line := step.line
	switch step.kinds() {
	case 0:
		return s.invalid(line, "step %d is empty", i+1)
	case 1:
	default:
		return s.invalid(line, "step %d sets more than one action", i+1)
	}

	switch {
	case step.Event != nil:
		ev := step.Event
		if !gestures[ev.Type] {
			return s.invalid(line, "step %d: unknown event type %q", i+1, ev.Type).
				WithSuggestion("Use hover, unhover, click, right-click, tap, focus, blur, press or move")
		}
		if ev.Type == GesturePress && ev.Key == "" {
			return s.invalid(line, "step %d: press needs a key", i+1)
		}
		if _, _, err := parseTarget(ev.Target, s.fixtures()[0].Name, names); err != nil {
			return s.unknown(line, "step %d: %v", i+1, err)
		}
	case step.Advance != "":
		if _, err := parseAdvance(step.Advance); err != nil {
			return s.invalid(line, "step %d: %v", i+1, err).
				WithExample("advance: 150ms")
		}
	case step.Set != nil:
		if !s.known(step.Set.Tooltip, names) {
			return s.unknown(line, "step %d: unknown tooltip %q", i+1, step.Set.Tooltip)
		}
	case step.Hidden != nil:
		if s.Positioner != PositionerStatic {
			return s.invalid(line, "step %d: hidden needs the static positioner", i+1).
				WithSuggestion("Add 'positioner: static' to the scenario")
		}
		if !s.known(step.Hidden.Tooltip, names) {
			return s.unknown(line, "step %d: unknown tooltip %q", i+1, step.Hidden.Tooltip)
		}
	case step.Expect != nil:
		if !s.known(step.Expect.Tooltip, names) {
			return s.unknown(line, "step %d: unknown tooltip %q", i+1, step.Expect.Tooltip)
		}
		if p := step.Expect.Placement; p != "" {
			if _, _, err := popper.ParsePlacement(p); err != nil {
				return s.invalid(line, "step %d: expected placement %q is not a placement", i+1, p)
			}
		}
	}
	return nil
}

func (s *Scenario) known(name string, names map[string]bool) bool {
	return name == "" || names[name]
}

func (s *Scenario) invalid(line int, format string, args ...any) *terrors.TooltipError {
	return s.located(terrors.New("T102").WithDetailf(format, args...), line)
}

func (s *Scenario) unknown(line int, format string, args ...any) *terrors.TooltipError {
	return s.located(terrors.New("T103").WithDetailf(format, args...), line)
}

func (s *Scenario) located(e *terrors.TooltipError, line int) *terrors.TooltipError {
	if s.path != "" && line > 0 {
		e.WithLocation(s.path, line, 0)
	}
	return e
}

// parseTarget splits a step target into a fixture name and a part.
// part is one of trigger, tooltip, outside or body.
func parseTarget(target, first string, names map[string]bool) (name, part string, err error) {
	switch target {
	case "", TargetTrigger:
		return first, TargetTrigger, nil
	case TargetTooltip:
		return first, TargetTooltip, nil
	case TargetOutside, TargetBody:
		return "", target, nil
	}
	name, part, found := strings.Cut(target, ".")
	if !found {
		part = TargetTrigger
	}
	if !names[name] {
		return "", "", fmt.Errorf("unknown target %q", target)
	}
	if part != TargetTrigger && part != TargetTooltip {
		return "", "", fmt.Errorf("target %q must end in .trigger or .tooltip", target)
	}
	return name, part, nil
}

// parseAdvance parses an advance value. AdvanceAll returns -1.
func parseAdvance(v string) (time.Duration, error) {
	if v == AdvanceAll {
		return -1, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, stderrors.New("advance must not be negative")
	}
	return d, nil
}

func isZeroConfig(c FileConfig) bool {
	return c.Trigger == nil &&
		c.DelayShow == 0 && c.DelayHide == 0 &&
		c.DefaultVisible == nil && c.InitialVisible == nil && c.Visible == nil &&
		c.CloseOnOutsideClick == nil && c.CloseOnClickOutside == nil &&
		!c.CloseOnTriggerHidden && !c.Interactive && !c.FollowCursor && !c.CloseOnEscape &&
		c.MutationObserver == nil && c.Placement == "" && c.Offset == nil
}
