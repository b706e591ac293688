// Defines the event abstraction every simulation model plugs into the engine.

package sim

// TimedEvent pairs an event with the virtual time at which it fires.
type TimedEvent[S any] struct {
	Time  float64
	Event Event[S]
}

// Event is implemented by each event variant of a simulation model. The
// engine is generic over the model's state type S; a model package defines a
// closed set of variants and gives each one a Process method.
type Event[S any] interface {
	// Process applies the event to state at virtual time now and returns
	// the follow-up events to schedule, if any. Follow-ups must not fire
	// before now.
	Process(now float64, state S) []TimedEvent[S]
}
