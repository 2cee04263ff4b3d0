package host

import (
	"sort"
	"time"

	"github.com/vango-dev/tooltip/pkg/dom"
)

// maxTimerRuns bounds RunTimers so a timer that re-arms itself forever
// cannot hang a test.
const maxTimerRuns = 10000

type virtualTimer struct {
	at       time.Duration
	seq      uint64
	fn       func()
	canceled bool
}

// Headless is a Host backed by a headless document and a virtual clock.
// Timers only fire from Advance or RunTimers.
type Headless struct {
	doc     *dom.Document
	caps    Capabilities
	elapsed time.Duration
	seq     uint64
	timers  []*virtualTimer
}

var _ Host = (*Headless)(nil)

// HeadlessOption configures a Headless host.
type HeadlessOption func(*Headless)

// WithTouch reports touch support.
func WithTouch() HeadlessOption {
	return func(h *Headless) {
		h.caps.Touch = true
	}
}

// WithoutDOM reports a host with no document, as during server rendering.
func WithoutDOM() HeadlessOption {
	return func(h *Headless) {
		h.caps.DOM = false
	}
}

// NewHeadless creates a headless host over doc.
func NewHeadless(doc *dom.Document, opts ...HeadlessOption) *Headless {
	h := &Headless{
		doc:  doc,
		caps: Capabilities{DOM: doc != nil},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Document returns the document, or nil when the host has no DOM.
func (h *Headless) Document() dom.EventTarget {
	if !h.caps.DOM || h.doc == nil {
		return nil
	}
	return h.doc
}

// HeadlessDocument returns the underlying document.
func (h *Headless) HeadlessDocument() *dom.Document {
	return h.doc
}

// Capabilities reports the configured capabilities.
func (h *Headless) Capabilities() Capabilities {
	return h.caps
}

// SetTimeout arms a virtual timer.
func (h *Headless) SetTimeout(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	h.seq++
	t := &virtualTimer{at: h.elapsed + d, seq: h.seq, fn: fn}
	h.timers = append(h.timers, t)
	return func() {
		if t.canceled {
			return
		}
		t.canceled = true
		h.drop(t)
	}
}

// Observe subscribes to document mutations.
func (h *Headless) Observe(target dom.Element, init dom.MutationObserverInit, cb func([]dom.MutationRecord)) func() {
	return observeDocument(h.doc, target, init, cb)
}

// Elapsed returns the virtual time since the host was created.
func (h *Headless) Elapsed() time.Duration {
	return h.elapsed
}

// Pending returns the number of armed timers.
func (h *Headless) Pending() int {
	return len(h.timers)
}

// Advance moves the virtual clock forward by d, firing every timer that
// falls due in deadline order. Timers armed while advancing fire too
// if their deadline is within the window.
func (h *Headless) Advance(d time.Duration) {
	target := h.elapsed + d
	for runs := 0; runs < maxTimerRuns; runs++ {
		t := h.next()
		if t == nil || t.at > target {
			break
		}
		h.fire(t)
	}
	h.elapsed = target
}

// RunTimers fires timers until none remain and returns how many ran.
func (h *Headless) RunTimers() int {
	runs := 0
	for ; runs < maxTimerRuns; runs++ {
		t := h.next()
		if t == nil {
			break
		}
		h.fire(t)
	}
	return runs
}

func (h *Headless) fire(t *virtualTimer) {
	if t.at > h.elapsed {
		h.elapsed = t.at
	}
	h.drop(t)
	t.fn()
}

// next returns the earliest timer; ties go to the one armed first.
func (h *Headless) next() *virtualTimer {
	if len(h.timers) == 0 {
		return nil
	}
	sort.SliceStable(h.timers, func(i, j int) bool {
		if h.timers[i].at != h.timers[j].at {
			return h.timers[i].at < h.timers[j].at
		}
		return h.timers[i].seq < h.timers[j].seq
	})
	return h.timers[0]
}

func (h *Headless) drop(t *virtualTimer) {
	for i, cur := range h.timers {
		if cur == t {
			h.timers = append(h.timers[:i], h.timers[i+1:]...)
			return
		}
	}
}
