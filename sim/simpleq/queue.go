// Package simpleq is a minimal single-server queueing model: Poisson
// arrivals, a fixed service time, one server, unbounded buffer. Its event
// set is just {Arrival, EndOfService}. The package exists to validate the
// engine against the M/D/1 closed form, so the state tracks counts rather
// than job identities.
package simpleq

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/qnetsim/qnetsim/sim"
)

// Queue is the state of the single station.
type Queue struct {
	// Jobs is the number in system, including the job in service.
	Jobs int

	// Arrivals and Completions count processed events of each kind.
	Arrivals    uint64
	Completions uint64

	// ServiceTime is the deterministic time every job spends in service.
	ServiceTime float64

	interarrival distuv.Exponential
}

// NewQueue builds an M/D/1 station with Poisson(arrivalRate) arrivals and
// deterministic service time 1/serviceRate, drawing from src.
func NewQueue(arrivalRate, serviceRate float64, src *rand.Rand) (*Queue, error) {
	if arrivalRate <= 0 {
		return nil, fmt.Errorf("arrival rate must be positive, got %v", arrivalRate)
	}
	if serviceRate <= 0 {
		return nil, fmt.Errorf("service rate must be positive, got %v", serviceRate)
	}
	return &Queue{
		ServiceTime:  1 / serviceRate,
		interarrival: distuv.Exponential{Rate: arrivalRate, Src: src},
	}, nil
}

// Bootstrap returns the initial event list for a run: the first arrival.
func (q *Queue) Bootstrap() []sim.TimedEvent[*Queue] {
	return []sim.TimedEvent[*Queue]{{Time: q.interarrival.Rand(), Event: &Arrival{}}}
}

// Arrival is a job joining the queue.
type Arrival struct{}

// Process adds the job, schedules the next arrival, and starts service when
// the server was idle.
func (e *Arrival) Process(now float64, q *Queue) []sim.TimedEvent[*Queue] {
	q.Jobs++
	q.Arrivals++

	out := []sim.TimedEvent[*Queue]{{
		Time:  now + q.interarrival.Rand(),
		Event: &Arrival{},
	}}
	if q.Jobs == 1 {
		out = append(out, sim.TimedEvent[*Queue]{
			Time:  now + q.ServiceTime,
			Event: &EndOfService{},
		})
	}
	return out
}

// EndOfService is the departure of the job in service.
type EndOfService struct{}

// Process removes the departing job and keeps the server busy while jobs
// remain.
func (e *EndOfService) Process(now float64, q *Queue) []sim.TimedEvent[*Queue] {
	q.Jobs--
	if q.Jobs < 0 {
		panic(fmt.Sprintf("end of service on an empty queue at t=%v", now))
	}
	q.Completions++

	if q.Jobs > 0 {
		return []sim.TimedEvent[*Queue]{{
			Time:  now + q.ServiceTime,
			Event: &EndOfService{},
		}}
	}
	return nil
}
