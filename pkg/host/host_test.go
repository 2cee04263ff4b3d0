package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vango-dev/tooltip/pkg/dom"
)

func TestHeadlessAdvanceOrder(t *testing.T) {
	h := NewHeadless(dom.NewDocument())

	var order []string
	h.SetTimeout(30*time.Millisecond, func() { order = append(order, "c") })
	h.SetTimeout(10*time.Millisecond, func() { order = append(order, "a") })
	h.SetTimeout(10*time.Millisecond, func() { order = append(order, "b") })

	h.Advance(20 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order after 20ms = %v, want [a b]", order)
	}
	if h.Elapsed() != 20*time.Millisecond {
		t.Errorf("Elapsed = %v, want 20ms", h.Elapsed())
	}

	h.Advance(10 * time.Millisecond)
	if len(order) != 3 || order[2] != "c" {
		t.Errorf("order after 30ms = %v", order)
	}
}

func TestHeadlessZeroDelayIsDeferred(t *testing.T) {
	h := NewHeadless(dom.NewDocument())

	ran := false
	h.SetTimeout(0, func() { ran = true })
	if ran {
		t.Fatal("zero-delay timer ran synchronously")
	}
	if h.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", h.Pending())
	}

	h.Advance(0)
	if !ran {
		t.Error("zero-delay timer did not run on Advance(0)")
	}
}

func TestHeadlessCancel(t *testing.T) {
	h := NewHeadless(dom.NewDocument())

	ran := false
	cancel := h.SetTimeout(5*time.Millisecond, func() { ran = true })
	cancel()
	cancel()

	if h.RunTimers() != 0 {
		t.Error("canceled timer counted as run")
	}
	if ran {
		t.Error("canceled timer ran")
	}
}

func TestHeadlessTimerArmedWhileFiring(t *testing.T) {
	h := NewHeadless(dom.NewDocument())

	var order []string
	h.SetTimeout(10*time.Millisecond, func() {
		order = append(order, "first")
		h.SetTimeout(5*time.Millisecond, func() { order = append(order, "second") })
	})

	h.Advance(15 * time.Millisecond)
	if len(order) != 2 {
		t.Errorf("order = %v, want both timers", order)
	}
}

func TestHeadlessCapabilities(t *testing.T) {
	doc := dom.NewDocument()

	h := NewHeadless(doc, WithTouch())
	if caps := h.Capabilities(); !caps.DOM || !caps.Touch {
		t.Errorf("caps = %+v", caps)
	}

	noDOM := NewHeadless(doc, WithoutDOM())
	if noDOM.Document() != nil {
		t.Error("WithoutDOM host returned a document")
	}
}

func TestLoopRunsPostedInOrder(t *testing.T) {
	loop := NewLoop(8, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		i := i
		loop.Post(func() { got <- i })
	}
	loop.Post(func() { loop.Close() })

	err := loop.Run(ctx)
	if !errors.Is(err, ErrLoopClosed) {
		t.Fatalf("Run = %v, want ErrLoopClosed", err)
	}
	for want := 1; want <= 3; want++ {
		if v := <-got; v != want {
			t.Errorf("got %d, want %d", v, want)
		}
	}
	if loop.Post(func() {}) {
		t.Error("Post succeeded on closed loop")
	}
}

func TestLoopRecoversPanic(t *testing.T) {
	loop := NewLoop(4, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	after := false
	loop.Post(func() { panic("boom") })
	loop.Post(func() { after = true; loop.Close() })
	loop.Run(ctx)

	if !after {
		t.Error("loop stopped after a panicking callback")
	}
}

func TestRealtimeTimerRunsOnLoop(t *testing.T) {
	loop := NewLoop(8, nil)
	rt := NewRealtime(loop, dom.NewDocument(), false)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	fired := make(chan struct{})
	canceledRan := false
	stop := rt.SetTimeout(time.Millisecond, func() { canceledRan = true })
	stop()
	rt.SetTimeout(5*time.Millisecond, func() {
		close(fired)
		loop.Close()
	})

	loop.Run(ctx)
	select {
	case <-fired:
	default:
		t.Fatal("timer did not fire")
	}
	if canceledRan {
		t.Error("canceled realtime timer ran")
	}
}

func TestLoopSendWaitsForRoom(t *testing.T) {
	loop := NewLoop(1, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if !loop.Post(func() {}) {
		t.Fatal("Post failed on an empty queue")
	}
	if loop.Post(func() {}) {
		t.Fatal("Post succeeded on a full queue")
	}

	sent := make(chan bool, 1)
	ran := false
	go func() {
		sent <- loop.Send(func() { ran = true; loop.Close() })
	}()

	loop.Run(ctx)
	if ok := <-sent; !ok {
		t.Error("Send reported failure")
	}
	if !ran {
		t.Error("sent callback did not run")
	}
	if loop.Send(func() {}) {
		t.Error("Send succeeded on closed loop")
	}
}

func TestRealtimeTimerSurvivesFullQueue(t *testing.T) {
	loop := NewLoop(1, nil)
	rt := NewRealtime(loop, dom.NewDocument(), false)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	loop.Post(func() {})
	fired := make(chan struct{})
	rt.SetTimeout(time.Millisecond, func() {
		close(fired)
		loop.Close()
	})
	time.Sleep(20 * time.Millisecond)

	loop.Run(ctx)
	select {
	case <-fired:
	default:
		t.Fatal("timer callback was dropped while the queue was full")
	}
}
