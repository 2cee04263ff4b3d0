package telemetry

import (
	"log/slog"
	"time"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Multi fans every event out to each observer in order.
type Multi []tooltip.Observer

var _ tooltip.Observer = Multi(nil)

func (m Multi) VisibilityChanged(name string, visible, controlled bool) {
	for _, o := range m {
		o.VisibilityChanged(name, visible, controlled)
	}
}

func (m Multi) TimerArmed(name string, kind tooltip.TimerKind, delay time.Duration) {
	for _, o := range m {
		o.TimerArmed(name, kind, delay)
	}
}

func (m Multi) TimerFired(name string, kind tooltip.TimerKind) {
	for _, o := range m {
		o.TimerFired(name, kind)
	}
}

func (m Multi) TimerCanceled(name string, kind tooltip.TimerKind) {
	for _, o := range m {
		o.TimerCanceled(name, kind)
	}
}

func (m Multi) ListenerAttached(name, event string) {
	for _, o := range m {
		o.ListenerAttached(name, event)
	}
}

func (m Multi) ListenerDetached(name, event string) {
	for _, o := range m {
		o.ListenerDetached(name, event)
	}
}

// Log writes every event to a logger at debug level.
type Log struct {
	Logger *slog.Logger
}

var _ tooltip.Observer = Log{}

func (l Log) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l Log) VisibilityChanged(name string, visible, controlled bool) {
	l.logger().Debug("tooltip visibility", "name", name, "visible", visible, "controlled", controlled)
}

func (l Log) TimerArmed(name string, kind tooltip.TimerKind, delay time.Duration) {
	l.logger().Debug("tooltip timer armed", "name", name, "kind", kind, "delay", delay)
}

func (l Log) TimerFired(name string, kind tooltip.TimerKind) {
	l.logger().Debug("tooltip timer fired", "name", name, "kind", kind)
}

func (l Log) TimerCanceled(name string, kind tooltip.TimerKind) {
	l.logger().Debug("tooltip timer canceled", "name", name, "kind", kind)
}

func (l Log) ListenerAttached(name, event string) {
	l.logger().Debug("tooltip listener attached", "name", name, "event", event)
}

func (l Log) ListenerDetached(name, event string) {
	l.logger().Debug("tooltip listener detached", "name", name, "event", event)
}
