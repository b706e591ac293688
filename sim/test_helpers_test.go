package sim

// Minimal test model shared by the engine tests. The state is a counter plus
// a trace of processed event names; the events below cover the shapes the
// driver has to handle: terminal events, mutating events, and events that
// schedule follow-ups.

// testState is the state type the engine tests run over.
type testState struct {
	value int
	trace []string
}

// noteEvent records its name on the state and schedules nothing.
type noteEvent struct {
	name string
}

func (e *noteEvent) Process(now float64, st *testState) []TimedEvent[*testState] {
	st.trace = append(st.trace, e.name)
	return nil
}

// setEvent assigns the state's value and schedules nothing.
type setEvent struct {
	value int
}

func (e *setEvent) Process(now float64, st *testState) []TimedEvent[*testState] {
	st.value = e.value
	return nil
}

// chainEvent increments the value and reschedules itself after step until
// hops runs out.
type chainEvent struct {
	step float64
	hops int
}

func (e *chainEvent) Process(now float64, st *testState) []TimedEvent[*testState] {
	st.value++
	if e.hops <= 1 {
		return nil
	}
	return []TimedEvent[*testState]{{
		Time:  now + e.step,
		Event: &chainEvent{step: e.step, hops: e.hops - 1},
	}}
}

// emitEvent schedules a noteEvent at a fixed absolute time, regardless of
// when it is processed. Used to provoke scheduling-into-the-past panics.
type emitEvent struct {
	at float64
}

func (e *emitEvent) Process(now float64, st *testState) []TimedEvent[*testState] {
	return []TimedEvent[*testState]{{Time: e.at, Event: &noteEvent{name: "emitted"}}}
}

// drainNames pops every pending event and returns the noteEvent names in pop
// order.
func drainNames(q *EventQueue[*testState]) []string {
	names := []string{}
	for {
		te, ok := q.PopMin()
		if !ok {
			return names
		}
		names = append(names, te.Event.(*noteEvent).name)
	}
}
