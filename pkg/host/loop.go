package host

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
)

// ErrLoopClosed is returned by Run after Close.
var ErrLoopClosed = errors.New("host: loop closed")

// Loop runs posted functions one at a time on a single goroutine.
type Loop struct {
	queue  chan func()
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(capacity int, logger *slog.Logger) *Loop {
	if capacity <= 0 {
		capacity = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		queue:  make(chan func(), capacity),
		done:   make(chan struct{}),
		logger: logger.With("component", "loop"),
	}
}

// Post queues fn. It reports false when the loop is closed or the queue is full.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	default:
		l.logger.Warn("loop queue full, dropping callback")
		return false
	}
}

// Send queues fn, waiting for room when the queue is full. It reports false
// when the loop is closed. Send must not be called from the loop goroutine.
func (l *Loop) Send(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes queued functions until ctx is done or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.queue:
			l.execute(fn)
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrLoopClosed
		}
	}
}

// Close stops the loop. Queued functions that have not run are discarded.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop callback panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}
