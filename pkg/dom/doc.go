// Package dom defines the element contract the tooltip controller observes and
// ships a headless DOM that satisfies it.
//
// The controller never creates or destroys nodes. It only attaches and
// detaches listeners, asks whether one element contains another, and
// subscribes to subtree mutations. Those three capabilities are what
// EventTarget, Element and the MutationObserverInit types describe.
//
// # Headless DOM
//
// Document and Node form an in-memory tree used by tests, the scenario
// runner and the playground server:
//
//	doc := dom.NewDocument()
//	btn := doc.CreateElement("button", "trigger")
//	doc.Body().AppendChild(btn)
//
//	remove := btn.AddEventListener(dom.EventClick, func(ev *dom.Event) {
//	    fmt.Println("clicked", ev.Target.ID())
//	})
//	defer remove()
//
//	doc.Dispatch(dom.NewEvent(dom.EventClick, btn))
//
// Bubbling follows the browser for the events the controller cares about:
// click, mousedown, contextmenu, keydown and the touch events walk up to the
// document; mouseenter, mouseleave, focus and blur stay on their target.
//
// Mutation records are delivered synchronously, in mutation order, to every
// observer whose target and options match.
package dom
