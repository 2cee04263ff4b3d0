package host

import (
	"sync/atomic"
	"time"

	"github.com/vango-dev/tooltip/pkg/dom"
)

// Realtime is a Host with wall-clock timers whose callbacks run on a Loop.
// Callers must only touch the controller and document from the loop.
type Realtime struct {
	loop *Loop
	doc  *dom.Document
	caps Capabilities
}

var _ Host = (*Realtime)(nil)

// NewRealtime creates a realtime host over doc. Touch support is opt-in.
func NewRealtime(loop *Loop, doc *dom.Document, touch bool) *Realtime {
	return &Realtime{
		loop: loop,
		doc:  doc,
		caps: Capabilities{DOM: doc != nil, Touch: touch},
	}
}

// Loop returns the loop timers post to.
func (r *Realtime) Loop() *Loop { return r.loop }

// Document returns the document.
func (r *Realtime) Document() dom.EventTarget {
	if r.doc == nil {
		return nil
	}
	return r.doc
}

// Capabilities reports the configured capabilities.
func (r *Realtime) Capabilities() Capabilities { return r.caps }

// SetTimeout arms a wall-clock timer. The callback is queued on the loop,
// waiting for room when it is busy, and skipped there if cancel ran first.
func (r *Realtime) SetTimeout(d time.Duration, fn func()) func() {
	var canceled atomic.Bool
	t := time.AfterFunc(d, func() {
		r.loop.Send(func() {
			if canceled.Load() {
				return
			}
			fn()
		})
	})
	return func() {
		canceled.Store(true)
		t.Stop()
	}
}

// Observe subscribes to document mutations.
func (r *Realtime) Observe(target dom.Element, init dom.MutationObserverInit, cb func([]dom.MutationRecord)) func() {
	return observeDocument(r.doc, target, init, cb)
}
