// Implements the pending-event set as a binary min-heap with deterministic
// ordering.

package sim

import (
	"container/heap"
	"fmt"
	"math"
)

// queueEntry is a scheduled event plus its insertion sequence number.
type queueEntry[S any] struct {
	TimedEvent[S]
	seq uint64
}

// EventQueue holds the pending events of one simulation, ordered by time.
// Ordering: time → insertion sequence. Events scheduled at the same time pop
// in the order they were scheduled, so runs are deterministic regardless of
// heap internals. Capacity is unbounded.
type EventQueue[S any] struct {
	entries []queueEntry[S]
	nextSeq uint64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue[S any]() *EventQueue[S] {
	q := &EventQueue[S]{
		entries: make([]queueEntry[S], 0),
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface and reports the number of pending events.
func (q *EventQueue[S]) Len() int {
	return len(q.entries)
}

// Less implements heap.Interface with deterministic ordering.
// Order by: time → insertion sequence.
func (q *EventQueue[S]) Less(i, j int) bool {
	ei, ej := q.entries[i], q.entries[j]
	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}
	return ei.seq < ej.seq
}

// Swap implements heap.Interface.
func (q *EventQueue[S]) Swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
}

// Push implements heap.Interface.
func (q *EventQueue[S]) Push(x interface{}) {
	q.entries = append(q.entries, x.(queueEntry[S]))
}

// Pop implements heap.Interface.
func (q *EventQueue[S]) Pop() interface{} {
	old := q.entries
	n := len(old)
	item := old[n-1]
	q.entries = old[0 : n-1]
	return item
}

// Schedule adds a timed event to the queue. A NaN time is an invariant
// violation and panics.
func (q *EventQueue[S]) Schedule(te TimedEvent[S]) {
	if math.IsNaN(te.Time) {
		panic(fmt.Sprintf("event queue: scheduling %T at NaN time", te.Event))
	}
	q.nextSeq++
	heap.Push(q, queueEntry[S]{TimedEvent: te, seq: q.nextSeq})
}

// PopMin removes and returns the earliest pending event.
// ok is false when the queue is empty.
func (q *EventQueue[S]) PopMin() (TimedEvent[S], bool) {
	if q.Len() == 0 {
		return TimedEvent[S]{}, false
	}
	return heap.Pop(q).(queueEntry[S]).TimedEvent, true
}

// PeekTime returns the time of the earliest pending event without removing
// it. ok is false when the queue is empty.
func (q *EventQueue[S]) PeekTime() (float64, bool) {
	if q.Len() == 0 {
		return 0, false
	}
	return q.entries[0].Time, true
}
