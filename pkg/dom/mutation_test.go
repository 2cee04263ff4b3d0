package dom

import "testing"

func TestObserveSubtree(t *testing.T) {
	doc := NewDocument()
	tip := doc.Body().AppendChild(doc.CreateElement("div", "tip"))
	inner := tip.AppendChild(doc.CreateElement("p", "inner"))

	var got []MutationRecord
	disconnect := doc.Observe(tip, MutationObserverInit{ChildList: true, Subtree: true}, func(recs []MutationRecord) {
		got = append(got, recs...)
	})

	inner.AppendChild(doc.CreateText("more"))
	inner.SetAttribute("class", "x") // attributes not observed

	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	if got[0].Type != MutationChildList || got[0].Target != inner {
		t.Errorf("record = %+v", got[0])
	}

	disconnect()
	disconnect()
	inner.AppendChild(doc.CreateText("ignored"))
	if len(got) != 1 {
		t.Errorf("records after disconnect = %d, want 1", len(got))
	}
	if doc.ObserverCount() != 0 {
		t.Errorf("ObserverCount = %d, want 0", doc.ObserverCount())
	}
}

func TestObserveWithoutSubtree(t *testing.T) {
	doc := NewDocument()
	tip := doc.Body().AppendChild(doc.CreateElement("div", "tip"))
	inner := tip.AppendChild(doc.CreateElement("p", "inner"))

	calls := 0
	doc.Observe(tip, MutationObserverInit{ChildList: true, Attributes: true}, func([]MutationRecord) { calls++ })

	inner.AppendChild(doc.CreateText("deep"))
	if calls != 0 {
		t.Errorf("descendant change delivered without Subtree: %d", calls)
	}

	tip.SetAttribute("data-x", "1")
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestObserveDisabledInit(t *testing.T) {
	doc := NewDocument()
	tip := doc.Body().AppendChild(doc.CreateElement("div", "tip"))

	calls := 0
	doc.Observe(tip, MutationObserverInit{Subtree: true}, func([]MutationRecord) { calls++ })
	tip.AppendChild(doc.CreateText("x"))

	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
	if doc.ObserverCount() != 0 {
		t.Errorf("ObserverCount = %d, want 0", doc.ObserverCount())
	}
}

func TestObserveReentrantMutation(t *testing.T) {
	doc := NewDocument()
	tip := doc.Body().AppendChild(doc.CreateElement("div", "tip"))

	var types []string
	doc.Observe(tip, MutationObserverInit{ChildList: true, Attributes: true, Subtree: true}, func(recs []MutationRecord) {
		for _, r := range recs {
			types = append(types, r.Type)
			if r.Type == MutationChildList {
				tip.SetAttribute("data-count", "1")
			}
		}
	})

	tip.AppendChild(doc.CreateText("x"))

	if len(types) != 2 || types[0] != MutationChildList || types[1] != MutationAttributes {
		t.Errorf("types = %v, want [childList attributes]", types)
	}
}

func TestSetTextCharacterData(t *testing.T) {
	doc := NewDocument()
	tip := doc.Body().AppendChild(doc.CreateElement("div", "tip"))

	calls := 0
	doc.Observe(tip, MutationObserverInit{CharacterData: true}, func([]MutationRecord) { calls++ })
	tip.SetText("changed")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
