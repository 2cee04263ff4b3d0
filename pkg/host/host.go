// Package host models the environment a tooltip controller runs in.
//
// The controller never reaches for a global document, window or timer API.
// Everything it needs from the outside world is asked of a Host: where to
// attach document-level listeners, how to arm a timer, how to watch a subtree
// for mutations, and which capabilities (a DOM at all, touch input) exist.
//
// Two hosts ship with the package. Headless runs on a virtual clock and is
// driven explicitly by tests and the scenario runner. Realtime uses wall-clock
// timers and serializes every callback onto a Loop, which is how a live
// session keeps the single-threaded model the controller relies on.
package host

import (
	"time"

	"github.com/vango-dev/tooltip/pkg/dom"
)

// Capabilities describes what the host environment supports.
type Capabilities struct {
	// DOM is false for hosts without a document (server-side rendering).
	DOM bool

	// Touch is true when the host delivers touch events.
	Touch bool
}

// Host is the injected environment capability set.
type Host interface {
	// Document returns the target for document-level listeners, or nil.
	Document() dom.EventTarget

	// SetTimeout arms fn to run after d. The returned cancel is idempotent.
	// A zero delay still defers fn; it never runs synchronously.
	SetTimeout(d time.Duration, fn func()) (cancel func())

	// Observe subscribes cb to mutations of target selected by init.
	Observe(target dom.Element, init dom.MutationObserverInit, cb func([]dom.MutationRecord)) (disconnect func())

	// Capabilities reports what the environment supports.
	Capabilities() Capabilities
}

func observeDocument(doc *dom.Document, target dom.Element, init dom.MutationObserverInit, cb func([]dom.MutationRecord)) func() {
	node, ok := target.(*dom.Node)
	if doc == nil || !ok || node == nil {
		return func() {}
	}
	return doc.Observe(node, init, cb)
}
