// Package sched converts wall-clock time into fixed-size simulation ticks and runs
// an ordered list of deferred tasks on those ticks.
//
// Everything here is single-threaded. A task is plain data owned by the Scheduler;
// entities only keep the Handle needed to cancel it.
package sched

import (
	"errors"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultStep is the fixed tick length (60 ticks per second).
const DefaultStep = time.Second / 60

// DefaultMaxCatchUp bounds how many ticks a single Advance call may run.
const DefaultMaxCatchUp = 240

// ErrInvalidDuration is returned when a repeating task is given a duration that is
// not a positive, finite number of ticks.
var ErrInvalidDuration = errors.New("sched: repeat duration must be positive and finite")

// Kind is the lifecycle state of a task.
type Kind int

const (
	KindOnce Kind = iota
	KindRepeat
	KindCancelled
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindOnce:
		return "once"
	case KindRepeat:
		return "repeat"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Handle identifies a scheduled task. The zero Handle never refers to a task.
type Handle uint64

// Owner identifies the entity a task belongs to. Zero means unowned.
type Owner uint64

// task is one scheduled callback.
type task struct {
	handle Handle
	owner  Owner
	kind   Kind
	done   bool

	// Once
	target uint64
	fire   func()

	// Repeat
	start      uint64
	duration   uint64
	onProgress func(percent float64)
	onComplete func()
}

// Scheduler accumulates elapsed time and runs update() once per fixed step.
type Scheduler struct {
	step       time.Duration
	maxCatchUp int
	acc        time.Duration
	tick       uint64
	nextHandle Handle

	tasks    []*task
	byHandle map[Handle]*task

	preUpdate  map[int]func(tick uint64)
	preOrder   []int
	nextPreSub int

	logger *log.Logger
}

// New creates a scheduler with the given tick length.
// A non-positive step falls back to DefaultStep; a nil logger to log.Default().
func New(step time.Duration, logger *log.Logger) *Scheduler {
	if step <= 0 {
		step = DefaultStep
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		step:       step,
		maxCatchUp: DefaultMaxCatchUp,
		byHandle:   make(map[Handle]*task),
		preUpdate:  make(map[int]func(uint64)),
		logger:     logger,
	}
}

// StepFor returns the tick length for a tick rate in ticks per second.
func StepFor(tickRate int) time.Duration {
	if tickRate <= 0 {
		return DefaultStep
	}
	return time.Second / time.Duration(tickRate)
}

// SetMaxCatchUp bounds the ticks run by one Advance call. n <= 0 removes the bound.
func (s *Scheduler) SetMaxCatchUp(n int) {
	s.maxCatchUp = n
}

// Step returns the tick length.
func (s *Scheduler) Step() time.Duration {
	return s.step
}

// Tick returns the number of ticks simulated so far.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Pending returns the number of live (not finished, not cancelled) tasks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done && t.kind != KindCancelled {
			n++
		}
	}
	return n
}

// Advance feeds elapsed wall-clock time into the scheduler and runs one update per
// whole step accumulated. It returns the number of ticks run.
func (s *Scheduler) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		s.acc += elapsed
	}

	ran := 0
	for s.acc >= s.step {
		if s.maxCatchUp > 0 && ran >= s.maxCatchUp {
			dropped := s.acc / s.step
			s.logger.Debug("scheduler falling behind, dropping ticks", "dropped", int64(dropped))
			s.acc %= s.step
			break
		}
		s.acc -= s.step
		s.RunTick()
		ran++
	}
	return ran
}

// RunTick simulates exactly one tick regardless of accumulated time.
func (s *Scheduler) RunTick() {
	s.tick++
	s.update()
}

// OnPreUpdate registers fn to run at the start of every tick, before any task.
// The returned function removes the registration.
func (s *Scheduler) OnPreUpdate(fn func(tick uint64)) (unsubscribe func()) {
	id := s.nextPreSub
	s.nextPreSub++
	s.preUpdate[id] = fn
	s.preOrder = append(s.preOrder, id)
	return func() {
		delete(s.preUpdate, id)
	}
}

// ScheduleOnce runs cb when ticksFromNow ticks have elapsed.
// Values below one are treated as one: a callback scheduled from inside an
// update always runs on a strictly later tick.
func (s *Scheduler) ScheduleOnce(owner Owner, ticksFromNow int, cb func()) Handle {
	if ticksFromNow < 1 {
		ticksFromNow = 1
	}
	t := &task{
		owner:  owner,
		kind:   KindOnce,
		target: s.tick + uint64(ticksFromNow),
		fire:   cb,
	}
	return s.add(t)
}

// ScheduleRepeating calls onProgress once per tick for durationTicks+1 ticks, with
// percent running from 0 to 1, then calls onComplete. The first call happens on the
// next tick. Either callback may be nil.
func (s *Scheduler) ScheduleRepeating(owner Owner, durationTicks int, onProgress func(percent float64), onComplete func()) (Handle, error) {
	if durationTicks <= 0 {
		s.logger.Warn("refusing repeat task", "owner", uint64(owner), "duration", durationTicks)
		return 0, ErrInvalidDuration
	}
	t := &task{
		owner:      owner,
		kind:       KindRepeat,
		start:      s.tick + 1,
		duration:   uint64(durationTicks),
		onProgress: onProgress,
		onComplete: onComplete,
	}
	return s.add(t), nil
}

// ScheduleRepeatingFor is ScheduleRepeating with the duration given as wall-clock
// time, rounded up to whole ticks. NaN, infinite and non-positive durations are
// refused.
func (s *Scheduler) ScheduleRepeatingFor(owner Owner, d time.Duration, onProgress func(percent float64), onComplete func()) (Handle, error) {
	ticks := math.Ceil(float64(d) / float64(s.step))
	if math.IsNaN(ticks) || math.IsInf(ticks, 0) || ticks <= 0 || ticks > math.MaxInt32 {
		s.logger.Warn("refusing repeat task", "owner", uint64(owner), "duration", d)
		return 0, ErrInvalidDuration
	}
	return s.ScheduleRepeating(owner, int(ticks), onProgress, onComplete)
}

// Cancel marks a task cancelled. It is dropped without firing its completion.
// Cancelling an unknown or finished handle is a no-op; it reports whether a live
// task was cancelled.
func (s *Scheduler) Cancel(h Handle) bool {
	t, ok := s.byHandle[h]
	if !ok || t.done || t.kind == KindCancelled {
		return false
	}
	t.kind = KindCancelled
	delete(s.byHandle, h)
	return true
}

// CancelOwner cancels every live task belonging to owner and returns how many.
func (s *Scheduler) CancelOwner(owner Owner) int {
	if owner == 0 {
		return 0
	}
	n := 0
	for _, t := range s.tasks {
		if t.owner == owner && s.Cancel(t.handle) {
			n++
		}
	}
	return n
}

// Live reports whether h refers to a task that has not finished or been cancelled.
func (s *Scheduler) Live(h Handle) bool {
	_, ok := s.byHandle[h]
	return ok
}

// Reset drops every task and rewinds the clock. Registered pre-update hooks stay.
func (s *Scheduler) Reset() {
	for _, t := range s.tasks {
		t.kind = KindCancelled
	}
	s.tasks = nil
	s.byHandle = make(map[Handle]*task)
	s.tick = 0
	s.acc = 0
}

func (s *Scheduler) add(t *task) Handle {
	s.nextHandle++
	t.handle = s.nextHandle
	s.tasks = append(s.tasks, t)
	s.byHandle[t.handle] = t
	return t.handle
}

// update runs one tick worth of work.
// Only tasks registered before the update started are visited; tasks that finish
// or get cancelled while iterating are compacted away afterwards, so none is
// skipped or fired twice.
func (s *Scheduler) update() {
	for _, id := range s.preOrder {
		if fn, ok := s.preUpdate[id]; ok {
			fn(s.tick)
		}
	}
	s.compactPreOrder()

	n := len(s.tasks)
	for i := 0; i < n && i < len(s.tasks); i++ {
		t := s.tasks[i]
		switch t.kind {
		case KindCancelled:
			continue
		case KindOnce:
			if s.tick < t.target {
				continue
			}
			s.finish(t)
			if t.fire != nil {
				t.fire()
			}
		case KindRepeat:
			if s.tick < t.start {
				continue
			}
			elapsed := s.tick - t.start
			percent := float64(elapsed) / float64(t.duration)
			if percent > 1 {
				percent = 1
			}
			if t.onProgress != nil {
				t.onProgress(percent)
			}
			// onProgress may have cancelled the task
			if t.kind == KindCancelled {
				continue
			}
			if elapsed >= t.duration {
				s.finish(t)
				if t.onComplete != nil {
					t.onComplete()
				}
			}
		}
	}

	s.compact()
}

// finish retires a task before its completion callback runs, so that the
// callback can reschedule or cancel freely.
func (s *Scheduler) finish(t *task) {
	t.done = true
	delete(s.byHandle, t.handle)
}

func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.done || t.kind == KindCancelled {
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

func (s *Scheduler) compactPreOrder() {
	if len(s.preOrder) == len(s.preUpdate) {
		return
	}
	kept := s.preOrder[:0]
	for _, id := range s.preOrder {
		if _, ok := s.preUpdate[id]; ok {
			kept = append(kept, id)
		}
	}
	s.preOrder = kept
}
