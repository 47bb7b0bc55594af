package reveal

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrRevealInProgress = errors.New("a reveal is already in progress")
	ErrNotDrawing       = errors.New("no draw is pending")
)

// State is the position of a Session in idle -> drawing -> revealing -> idle.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateRevealing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateRevealing:
		return "revealing"
	}
	return "unknown"
}

// Timer is a cancelable pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealScheduler schedules on the wall clock.
func RealScheduler() Scheduler { return timeScheduler{} }

// Session gates one actor's requests: a new draw is refused until the
// previous reveal has completed, been canceled, or timed out. Ending a reveal
// never touches the economy.
type Session struct {
	sched Scheduler

	mu    sync.Mutex
	state State
	gen   uint64
	timer Timer
	plan  *Plan
}

// NewSession creates an idle session. A nil scheduler uses the wall clock.
func NewSession(sched Scheduler) *Session {
	if sched == nil {
		sched = RealScheduler()
	}
	return &Session{sched: sched}
}

// Begin moves idle -> drawing.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrRevealInProgress
	}
	s.state = StateDrawing
	return nil
}

// Abort returns a drawing session to idle after a failed draw.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDrawing {
		s.state = StateIdle
	}
}

// StartReveal moves drawing -> revealing and arms a timer that returns the
// session to idle after d.
func (s *Session) StartReveal(p Plan, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDrawing {
		return ErrNotDrawing
	}
	s.state = StateRevealing
	s.plan = &p
	s.gen++
	gen := s.gen
	s.timer = s.sched.AfterFunc(d, func() { s.expire(gen) })
	return nil
}

// expire ends the reveal armed as gen; stale timers are ignored.
func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRevealing && s.gen == gen {
		s.reset()
	}
}

// Complete is called by the rendering layer when the animation finished.
// It reports whether a reveal was in progress.
func (s *Session) Complete() bool { return s.stop() }

// Cancel abandons the running reveal, for example when the view unmounts.
// Only the timer is dropped; the result it showed stays applied.
func (s *Session) Cancel() bool { return s.stop() }

func (s *Session) stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRevealing {
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.reset()
	return true
}

func (s *Session) reset() {
	s.state = StateIdle
	s.timer = nil
	s.plan = nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the plan being revealed, if any.
func (s *Session) Current() (Plan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return Plan{}, false
	}
	return *s.plan, true
}

// ManualScheduler fires timers only when told to. Useful for driving a
// Session deterministically.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	m       *ManualScheduler
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (m *ManualScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{m: m, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Pending reports how many armed timers have neither fired nor been stopped.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// FireAll runs every pending, unstopped callback.
func (m *ManualScheduler) FireAll() {
	m.mu.Lock()
	var run []func()
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			t.fired = true
			run = append(run, t.f)
		}
	}
	m.pending = nil
	m.mu.Unlock()
	for _, f := range run {
		f()
	}
}
