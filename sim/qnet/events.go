// Defines the network model's event variants and their processing rules.
// The set is closed: Arrival, Served, Move, Overflow, Leave.

package qnet

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/qnetsim/qnetsim/sim"
)

// Arrival is an external job arriving at the network.
type Arrival struct {
	Job Job
}

// Process counts the arrival, schedules the next external arrival, draws a
// destination from the arrival distribution, and admits the carried job
// there.
func (e *Arrival) Process(now float64, st *State) []sim.TimedEvent[*State] {
	st.Arrivals++
	st.JobsInSystem++

	// The successor arrival is minted here, so job IDs follow arrival order.
	next := sim.TimedEvent[*State]{
		Time:  now + st.delay.Sample(st.Params.ArrivalRate),
		Event: &Arrival{Job: st.NewJob()},
	}

	dest := st.Servers[st.arrival.Next()]
	logrus.Debugf("t=%.6f arrival: job %d -> server %d (in_system=%d)",
		now, e.Job.ID, dest.ID, st.JobsInSystem)

	return append(dest.Admit(now, e.Job, st), next)
}

// Served is the completion of the job in service at one server.
type Served struct {
	ServerID int
}

// Process dequeues the served job, starts service on the next buffered job
// if any, and routes the served job through the server's move weights:
// onward to another server after a transfer delay, or out of the network.
func (e *Served) Process(now float64, st *State) []sim.TimedEvent[*State] {
	srv := st.Servers[e.ServerID]
	job := srv.PopHead()

	var out []sim.TimedEvent[*State]
	if srv.Len() > 0 {
		out = append(out, sim.TimedEvent[*State]{
			Time:  now + st.delay.Sample(srv.ServiceRate),
			Event: &Served{ServerID: srv.ID},
		})
	}

	dest, leave := srv.move.Next()
	if leave {
		logrus.Debugf("t=%.6f served: job %d done at server %d, leaves", now, job.ID, srv.ID)
		return append(out, (&Leave{Job: job}).Process(now, st)...)
	}

	st.MovingJobs++
	logrus.Debugf("t=%.6f served: job %d done at server %d, moves to %d", now, job.ID, srv.ID, dest)
	return append(out, sim.TimedEvent[*State]{
		Time:  now + st.delay.Sample(st.Params.TransferRate),
		Event: &Move{To: dest, Job: job},
	})
}

// Move carries a job that finished service toward its next server.
type Move struct {
	To  int
	Job Job
}

// Process delivers the transfer: the job stops moving and faces admission at
// the destination, which may divert it again.
func (e *Move) Process(now float64, st *State) []sim.TimedEvent[*State] {
	return deliver(now, e.To, e.Job, st, "move")
}

// Overflow carries a job diverted from a full buffer toward another server.
type Overflow struct {
	To  int
	Job Job
}

// Process delivers the diverted job to its destination, exactly like a Move
// delivery.
func (e *Overflow) Process(now float64, st *State) []sim.TimedEvent[*State] {
	return deliver(now, e.To, e.Job, st, "overflow")
}

// deliver ends a transfer of either kind.
func deliver(now float64, to int, job Job, st *State, kind string) []sim.TimedEvent[*State] {
	st.MovingJobs--
	if st.MovingJobs < 0 {
		panic(fmt.Sprintf("moving jobs went negative at t=%v", now))
	}
	logrus.Debugf("t=%.6f %s: job %d reaches server %d", now, kind, job.ID, to)
	return st.Servers[to].Admit(now, job, st)
}

// Leave records a job departing the network. Terminal: it never produces
// follow-up events. A Leave is processed inline at the instant a routing
// draw selects it, never scheduled, so departures add no queue traffic and
// decrement JobsInSystem exactly once.
type Leave struct {
	Job Job
}

// Process counts the departure.
func (e *Leave) Process(now float64, st *State) []sim.TimedEvent[*State] {
	st.JobsInSystem--
	if st.JobsInSystem < 0 {
		panic(fmt.Sprintf("jobs in system went negative at t=%v", now))
	}
	st.Departures++
	logrus.Debugf("t=%.6f leave: job %d departs (in_system=%d)", now, e.Job.ID, st.JobsInSystem)
	return nil
}
