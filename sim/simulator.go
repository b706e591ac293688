package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// StopReason reports how a run ended.
type StopReason string

const (
	// StopTimeReached means the next pending event lay beyond the
	// effective stop time; it was left unprocessed.
	StopTimeReached StopReason = "time_reached"

	// StopQueueExhausted means the event queue ran empty.
	StopQueueExhausted StopReason = "queue_exhausted"
)

// Config bundles the driver settings for a single run.
type Config[S any] struct {
	// MaxTime stops the run once the next event would fire after it.
	// Values <= 0 mean no time bound.
	MaxTime float64

	// LogTimes asks the driver to report the state at each listed time.
	// Entries must be strictly ascending and non-negative. Each log time
	// is reported with the state as it was just before that time passed.
	// Requires LogFunc.
	LogTimes []float64

	// Callback, when set, observes (now, state) once per dispatched event,
	// before the event mutates the state.
	Callback func(now float64, state S)

	// LogFunc receives the (logTime, state) report for each entry of
	// LogTimes.
	LogFunc func(logTime float64, state S)
}

// Result summarizes a completed run.
type Result struct {
	// Clock is the time of the last processed event.
	Clock float64

	// EventsProcessed counts dispatched events.
	EventsProcessed uint64

	// Reason tells which stop condition ended the run.
	Reason StopReason
}

// Simulation drives one model: it owns the virtual clock and the event queue
// and dispatches events in time order.
//
// The stop time is MaxTime when only MaxTime is set, the last log time when
// only LogTimes is set, and the later of the two when both are set — with
// both bounds configured the run keeps going until both are exhausted. With
// neither bound the run ends when the queue empties.
type Simulation[S any] struct {
	State S

	clock    float64
	queue    *EventQueue[S]
	cfg      Config[S]
	stopTime float64
	nextLog  int // index of the first unvisited entry of cfg.LogTimes
}

// ValidateTimes checks run bounds the way New does: MaxTime must be finite,
// and log times finite, non-negative, and strictly ascending. Loaders call
// it to reject bad bounds before any simulation object exists.
func ValidateTimes(maxTime float64, logTimes []float64) error {
	if math.IsNaN(maxTime) || math.IsInf(maxTime, 0) {
		return fmt.Errorf("max_time must be finite, got %v", maxTime)
	}
	for i, lt := range logTimes {
		if math.IsNaN(lt) || math.IsInf(lt, 0) {
			return fmt.Errorf("log_times[%d] must be finite, got %v", i, lt)
		}
		if lt < 0 {
			return fmt.Errorf("log_times[%d] must be non-negative, got %v", i, lt)
		}
		if i > 0 && lt <= logTimes[i-1] {
			return fmt.Errorf("log_times must be strictly ascending, got %v before %v",
				logTimes[i-1], lt)
		}
	}
	return nil
}

// New validates cfg and returns a Simulation positioned at time zero.
func New[S any](state S, cfg Config[S]) (*Simulation[S], error) {
	if err := ValidateTimes(cfg.MaxTime, cfg.LogTimes); err != nil {
		return nil, err
	}
	if len(cfg.LogTimes) > 0 && cfg.LogFunc == nil {
		return nil, fmt.Errorf("log_times set without a log function")
	}

	stop := math.Inf(1)
	if cfg.MaxTime > 0 {
		stop = cfg.MaxTime
	}
	if n := len(cfg.LogTimes); n > 0 {
		last := cfg.LogTimes[n-1]
		if cfg.MaxTime > 0 {
			stop = math.Max(cfg.MaxTime, last)
		} else {
			stop = last
		}
	}

	return &Simulation[S]{
		State:    state,
		queue:    NewEventQueue[S](),
		cfg:      cfg,
		stopTime: stop,
	}, nil
}

// Clock returns the current virtual time.
func (s *Simulation[S]) Clock() float64 {
	return s.clock
}

// QueueLen returns the number of pending events.
func (s *Simulation[S]) QueueLen() int {
	return s.queue.Len()
}

// Schedule enqueues event e at time t. Scheduling into the past is an
// invariant violation and panics.
func (s *Simulation[S]) Schedule(t float64, e Event[S]) {
	if t < s.clock {
		panic(fmt.Sprintf("scheduling %T into the past: %v < clock %v", e, t, s.clock))
	}
	s.queue.Schedule(TimedEvent[S]{Time: t, Event: e})
}

// Run dispatches events in time order until the stop time passes or the
// queue empties.
//
// Per iteration: the earliest event is popped; every unvisited log time up to
// that event's time is reported with the current (pre-event) state; the run
// stops if the event lies beyond the stop time; otherwise Callback observes
// the pre-event state, the clock advances, and the event is processed with
// its follow-ups scheduled. When the queue empties, remaining log times are
// reported with the final state.
func (s *Simulation[S]) Run() Result {
	var processed uint64
	for {
		te, ok := s.queue.PopMin()
		if !ok {
			s.flushLogTimes(math.Inf(1))
			logrus.Debugf("run stopped: queue exhausted at t=%v after %d events", s.clock, processed)
			return Result{Clock: s.clock, EventsProcessed: processed, Reason: StopQueueExhausted}
		}

		// Log times that pass before this event fires see the state as it
		// was just before them.
		s.flushLogTimes(te.Time)

		if te.Time > s.stopTime {
			logrus.Debugf("run stopped: next event at t=%v beyond stop time %v after %d events",
				te.Time, s.stopTime, processed)
			return Result{Clock: s.clock, EventsProcessed: processed, Reason: StopTimeReached}
		}

		// Clock monotonicity
		if te.Time < s.clock {
			panic(fmt.Sprintf("clock went backwards: %v < %v", te.Time, s.clock))
		}

		if s.cfg.Callback != nil {
			s.cfg.Callback(te.Time, s.State)
		}
		s.clock = te.Time

		for _, next := range te.Event.Process(te.Time, s.State) {
			s.Schedule(next.Time, next.Event)
		}
		processed++
	}
}

// flushLogTimes reports every unvisited log time <= upto with the current
// state.
func (s *Simulation[S]) flushLogTimes(upto float64) {
	for s.nextLog < len(s.cfg.LogTimes) && s.cfg.LogTimes[s.nextLog] <= upto {
		s.cfg.LogFunc(s.cfg.LogTimes[s.nextLog], s.State)
		s.nextLog++
	}
}

// Simulate builds a Simulation from state and the initial events, runs it,
// and returns the result. This is the entry point most callers want.
func Simulate[S any](state S, initial []TimedEvent[S], cfg Config[S]) (Result, error) {
	sim, err := New(state, cfg)
	if err != nil {
		return Result{}, err
	}
	for _, te := range initial {
		sim.Schedule(te.Time, te.Event)
	}
	return sim.Run(), nil
}
