package harness

import (
	"strings"
	"testing"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

func TestMountAndRender(t *testing.T) {
	f, h, err := NewHeadless(Options{Name: "help", Text: "Help text", Config: tooltip.Config{Placement: "right"}})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if f.Trigger() == nil || f.Trigger().ID() != "help-trigger" {
		t.Fatalf("trigger = %v", f.Trigger())
	}
	if f.Tooltip() != nil {
		t.Fatal("tooltip mounted while hidden")
	}

	f.Hover()
	h.RunTimers()

	tip := f.Tooltip()
	if tip == nil || tip.ID() != "help-tooltip" {
		t.Fatalf("tooltip = %v", tip)
	}
	if f.Arrow() == nil || !tip.Contains(f.Arrow()) {
		t.Error("arrow not mounted inside the tooltip")
	}
	if role, _ := tip.Attr("role"); role != "tooltip" {
		t.Errorf("role = %q", role)
	}
	if style, _ := tip.Attr("style"); !strings.Contains(style, "transform: translate(") {
		t.Errorf("style = %q", style)
	}
	if v, _ := f.Arrow().Attr("data-popper-arrow"); v != "true" {
		t.Errorf("data-popper-arrow = %q", v)
	}
	if !strings.Contains(f.Document().Text(), "Help text") {
		t.Errorf("text = %q", f.Document().Text())
	}

	f.Unhover()
	h.RunTimers()
	if f.Tooltip() != nil || tip.Connected() {
		t.Error("tooltip still mounted after hide")
	}
	if got := f.Changes(); len(got) != 2 || !got[0] || got[1] {
		t.Errorf("Changes = %v", got)
	}
}

func TestNestRemountsWithFreshController(t *testing.T) {
	click := tooltip.Config{Trigger: []tooltip.Trigger{tooltip.TriggerClick}}
	f, h, err := NewHeadless(Options{Name: "outer", Config: click})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	child, err := f.Nest(Options{Name: "inner", Config: click})
	if err != nil {
		t.Fatal(err)
	}
	if child.Mounted() {
		t.Fatal("child mounted while the parent tooltip is hidden")
	}

	f.Click()
	h.RunTimers()
	first := child.Controller()
	if first == nil || !f.Tooltip().Contains(child.Trigger()) {
		t.Fatal("child not mounted inside the parent tooltip")
	}
	if f.Find("inner") != child || child.Parent() != f {
		t.Error("tree lookup failed")
	}

	f.Click()
	h.RunTimers()
	if child.Mounted() || !first.Closed() {
		t.Error("child not torn down with the parent tooltip")
	}

	f.Click()
	h.RunTimers()
	if child.Controller() == nil || child.Controller() == first {
		t.Error("child should remount with a fresh controller")
	}
}

func TestMountError(t *testing.T) {
	_, _, err := NewHeadless(Options{Config: tooltip.Config{DelayShow: -1}})
	if err == nil {
		t.Fatal("expected a configuration error")
	}
}

func TestOutsideIsShared(t *testing.T) {
	f, _, err := NewHeadless(Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	a := Outside(f.Document())
	b := Outside(f.Document())
	if a != b || a.ID() != OutsideID {
		t.Error("Outside should return one element per document")
	}
}

func TestStyleString(t *testing.T) {
	got := styleString(map[string]string{"top": "0", "left": "4px"})
	if got != "left: 4px; top: 0" {
		t.Errorf("styleString = %q", got)
	}
}
