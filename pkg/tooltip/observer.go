package tooltip

import "time"

// TimerKind is the intent a scheduled timer carries.
type TimerKind string

const (
	TimerShow TimerKind = "show"
	TimerHide TimerKind = "hide"
)

// Observer receives controller lifecycle events. name is the controller's
// name as set by WithName. Calls happen on the controller's event loop.
type Observer interface {
	// VisibilityChanged runs after every visibility request.
	VisibilityChanged(name string, visible, controlled bool)

	// TimerArmed runs when a show or hide timer is armed.
	TimerArmed(name string, kind TimerKind, delay time.Duration)

	// TimerFired runs when an armed timer fires, before the request.
	TimerFired(name string, kind TimerKind)

	// TimerCanceled runs when an armed timer is canceled before firing.
	TimerCanceled(name string, kind TimerKind)

	// ListenerAttached and ListenerDetached track DOM listeners by event type.
	ListenerAttached(name, event string)
	ListenerDetached(name, event string)
}

// NopObserver ignores every event.
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) VisibilityChanged(string, bool, bool) {}
func (NopObserver) TimerArmed(string, TimerKind, time.Duration) {}
func (NopObserver) TimerFired(string, TimerKind) {}
func (NopObserver) TimerCanceled(string, TimerKind) {}
func (NopObserver) ListenerAttached(string, string) {}
func (NopObserver) ListenerDetached(string, string) {}
