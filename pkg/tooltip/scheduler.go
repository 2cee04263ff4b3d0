package tooltip

import (
	"time"

	"github.com/vango-dev/tooltip/pkg/host"
)

// scheduler holds at most one outstanding timer. Arming always cancels the
// previous timer first, whatever its kind, so the last intent wins.
type scheduler struct {
	host host.Host
	cell *cell
	obs  Observer
	name string

	kind    TimerKind
	stop    func()
	pending bool
	gen     uint64
}

func (s *scheduler) scheduleShow(d time.Duration) { s.arm(TimerShow, d) }

func (s *scheduler) scheduleHide(d time.Duration) { s.arm(TimerHide, d) }

// toggle picks the intent from the visibility at call time.
func (s *scheduler) toggle(show, hide time.Duration) {
	if s.cell.visible() {
		s.scheduleHide(hide)
		return
	}
	s.scheduleShow(show)
}

func (s *scheduler) arm(kind TimerKind, d time.Duration) {
	s.cancel()

	s.gen++
	gen := s.gen
	s.kind = kind
	s.pending = true
	s.obs.TimerArmed(s.name, kind, d)
	s.stop = s.host.SetTimeout(d, func() {
		if !s.pending || s.gen != gen {
			return
		}
		s.pending = false
		s.stop = nil
		s.obs.TimerFired(s.name, kind)
		s.cell.request(kind == TimerShow)
	})
}

// cancel drops the outstanding timer, if any.
func (s *scheduler) cancel() {
	if !s.pending {
		return
	}
	s.pending = false
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	s.obs.TimerCanceled(s.name, s.kind)
}

// armed reports the kind of the outstanding timer.
func (s *scheduler) armed() (TimerKind, bool) {
	return s.kind, s.pending
}
