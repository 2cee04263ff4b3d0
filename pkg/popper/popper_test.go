package popper

import (
	"testing"

	"github.com/vango-dev/tooltip/pkg/dom"
)

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in        string
		wantSide  string
		wantAlign string
		wantErr   bool
	}{
		{"", "bottom", "", false},
		{"top", "top", "", false},
		{"bottom-start", "bottom", "start", false},
		{"left-end", "left", "end", false},
		{"auto", "auto", "", false},
		{"middle", "", "", true},
		{"top-center", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			side, align, err := ParsePlacement(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if side != tt.wantSide || align != tt.wantAlign {
				t.Errorf("got (%q, %q), want (%q, %q)", side, align, tt.wantSide, tt.wantAlign)
			}
		})
	}
}

func fixture(t *testing.T) (*dom.Node, *dom.Node) {
	t.Helper()
	doc := dom.NewDocument()
	ref := doc.Body().AppendChild(doc.CreateElement("button", "ref"))
	ref.SetRect(dom.NewRect(100, 100, 40, 20))
	tip := doc.Body().AppendChild(doc.CreateElement("div", "tip"))
	tip.SetRect(dom.NewRect(0, 0, 60, 30))
	return ref, tip
}

func TestBasicPlacement(t *testing.T) {
	tests := []struct {
		placement string
		transform string
	}{
		{"top", "translate(90px, 64px)"},
		{"bottom", "translate(90px, 126px)"},
		{"bottom-start", "translate(100px, 126px)"},
		{"bottom-end", "translate(80px, 126px)"},
		{"left", "translate(34px, 95px)"},
		{"right", "translate(146px, 95px)"},
	}

	for _, tt := range tests {
		t.Run(tt.placement, func(t *testing.T) {
			ref, tip := fixture(t)
			var reported State
			engine := Basic{}.Create(ElementAnchor(ref), tip, nil, Options{
				Placement: tt.placement,
				Offset:    DefaultOffset,
			}, func(s State) { reported = s })

			if got := engine.State().Styles[KeyPopper]["transform"]; got != tt.transform {
				t.Errorf("transform = %q, want %q", got, tt.transform)
			}
			if reported.Placement != tt.placement {
				t.Errorf("reported placement = %q, want %q", reported.Placement, tt.placement)
			}
			if got := reported.Attributes[KeyPopper]["data-popper-placement"]; got != tt.placement {
				t.Errorf("data-popper-placement = %q", got)
			}
		})
	}
}

func TestBasicFlip(t *testing.T) {
	ref, tip := fixture(t)
	ref.SetRect(dom.NewRect(100, 10, 40, 20))
	boundary := dom.NewRect(0, 0, 500, 500)

	engine := Basic{}.Create(ElementAnchor(ref), tip, nil, Options{
		Placement: "top",
		Offset:    DefaultOffset,
		Boundary:  &boundary,
	}, nil)

	if got := engine.State().Placement; got != "bottom" {
		t.Errorf("Placement = %q, want bottom after flip", got)
	}
}

func TestBasicReferenceHidden(t *testing.T) {
	ref, tip := fixture(t)
	boundary := dom.NewRect(0, 0, 500, 500)

	var last State
	engine := Basic{}.Create(ElementAnchor(ref), tip, nil, Options{Boundary: &boundary}, func(s State) { last = s })
	if last.ReferenceHidden {
		t.Fatal("reference reported hidden while inside boundary")
	}

	ref.SetRect(dom.NewRect(100, 900, 40, 20))
	engine.Update()
	if !last.ReferenceHidden {
		t.Error("reference not reported hidden after leaving boundary")
	}
	if last.Attributes[KeyPopper]["data-popper-reference-hidden"] != "true" {
		t.Error("missing data-popper-reference-hidden attribute")
	}

	engine.Destroy()
	ref.SetRect(dom.NewRect(100, 100, 40, 20))
	engine.Update()
	if !last.ReferenceHidden {
		t.Error("destroyed engine reported an update")
	}
}

func TestVirtualElement(t *testing.T) {
	v := NewVirtualElement()
	v.MoveTo(12, 34)

	r := v.BoundingRect()
	if r.X != 12 || r.Y != 34 || r.Width != 0 || r.Height != 0 {
		t.Errorf("rect = %+v", r)
	}
}

func TestStaticEngine(t *testing.T) {
	s := NewStatic("top")
	calls := 0
	var last State
	engine := s.Create(NewVirtualElement(), nil, nil, Options{}, func(st State) {
		calls++
		last = st
	})

	if calls != 1 || last.Placement != "top" {
		t.Fatalf("initial report: calls=%d placement=%q", calls, last.Placement)
	}

	se := s.Last()
	se.SetReferenceHidden(true)
	if !last.ReferenceHidden {
		t.Error("hidden signal not reported")
	}

	engine.Update()
	if se.Updates() != 1 {
		t.Errorf("Updates = %d, want 1", se.Updates())
	}

	engine.Destroy()
	se.SetReferenceHidden(false)
	if !last.ReferenceHidden {
		t.Error("destroyed engine reported state")
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	s := State{
		Styles:     map[string]Style{KeyPopper: {"top": "0"}},
		Attributes: map[string]Attrs{KeyPopper: {"data-x": "1"}},
	}
	c := s.Clone()
	c.Styles[KeyPopper]["top"] = "5px"
	c.Attributes[KeyPopper]["data-x"] = "2"

	if s.Styles[KeyPopper]["top"] != "0" || s.Attributes[KeyPopper]["data-x"] != "1" {
		t.Error("Clone shares maps with the original")
	}
}
