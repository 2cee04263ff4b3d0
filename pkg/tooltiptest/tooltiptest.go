// Package tooltiptest provides test helpers for code built on tooltip
// controllers.
//
//	func TestHelpTooltip(t *testing.T) {
//	    env := tooltiptest.New(t, harness.Options{Text: "Help"})
//	    env.Hover()
//	    env.Flush()
//	    tooltiptest.ExpectText(t, env, "Help")
//	}
package tooltiptest

import (
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/tooltip/pkg/harness"
	"github.com/vango-dev/tooltip/pkg/host"
)

// Env is a mounted fixture on a headless host.
type Env struct {
	*harness.Fixture
	Host *host.Headless
}

// New mounts a fixture and closes it when the test ends.
func New(t testing.TB, opts harness.Options, hostOpts ...host.HeadlessOption) *Env {
	t.Helper()
	f, h, err := harness.NewHeadless(opts, hostOpts...)
	if err != nil {
		t.Fatalf("mount fixture: %v", err)
	}
	t.Cleanup(f.Close)
	return &Env{Fixture: f, Host: h}
}

// Flush fires every pending timer.
func (e *Env) Flush() {
	e.Host.RunTimers()
}

// Advance moves the virtual clock forward by d.
func (e *Env) Advance(d time.Duration) {
	e.Host.Advance(d)
}

// Text returns the document text.
func (e *Env) Text() string {
	return e.Document().Text()
}

// ExpectVisible asserts the fixture reports visible.
func ExpectVisible(t testing.TB, f *harness.Fixture) {
	t.Helper()
	if !f.Visible() {
		t.Errorf("expected %s to be visible", f.Name())
	}
}

// ExpectHidden asserts the fixture reports hidden.
func ExpectHidden(t testing.TB, f *harness.Fixture) {
	t.Helper()
	if f.Visible() {
		t.Errorf("expected %s to be hidden", f.Name())
	}
}

// ExpectText asserts the document text contains text.
func ExpectText(t testing.TB, e *Env, text string) {
	t.Helper()
	if got := e.Text(); !strings.Contains(got, text) {
		t.Errorf("expected document to contain %q, got %q", text, got)
	}
}

// ExpectNoText asserts the document text does not contain text.
func ExpectNoText(t testing.TB, e *Env, text string) {
	t.Helper()
	if got := e.Text(); strings.Contains(got, text) {
		t.Errorf("expected document to NOT contain %q, got %q", text, got)
	}
}

// ExpectListeners asserts how many listeners for event the controller holds.
func ExpectListeners(t testing.TB, f *harness.Fixture, event string, want int) {
	t.Helper()
	ctrl := f.Controller()
	if ctrl == nil {
		if want != 0 {
			t.Errorf("%s is unmounted, expected %d %q listeners", f.Name(), want, event)
		}
		return
	}
	if got := ctrl.ListenerCount(event); got != want {
		t.Errorf("%s: %q listeners = %d, want %d", f.Name(), event, got, want)
	}
}

// Recorder records visibility callbacks.
type Recorder struct {
	calls []bool
}

// Record is an OnVisibleChange callback.
func (r *Recorder) Record(visible bool) {
	r.calls = append(r.calls, visible)
}

// Calls returns every recorded value in order.
func (r *Recorder) Calls() []bool {
	return append([]bool(nil), r.calls...)
}

// Count returns the number of recorded calls.
func (r *Recorder) Count() int { return len(r.calls) }

// Last returns the most recent value and whether there was one.
func (r *Recorder) Last() (bool, bool) {
	if len(r.calls) == 0 {
		return false, false
	}
	return r.calls[len(r.calls)-1], true
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() { r.calls = nil }
