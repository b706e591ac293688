// Implements the Server, a single FIFO station of the network.
// Jobs are appended on admission; the front of the buffer is in service.

package qnet

import (
	"fmt"

	"github.com/qnetsim/qnetsim/sim"
)

// Server is one FIFO station. The buffer includes the job in service:
// buffer[0] is being served, the rest wait in admission order.
type Server struct {
	ID          int
	ServiceRate float64

	// Capacity bounds the buffer, including the job in service; -1 means
	// unbounded. A buffer with len >= Capacity has no more room, so an
	// admission attempt at that point diverts through the overflow weights.
	Capacity int

	buffer   []Job
	move     *sim.Router
	overflow *sim.Router
}

// Len returns the number of buffered jobs, including the one in service.
func (s *Server) Len() int {
	return len(s.buffer)
}

// AtCapacity reports whether the buffer has no more room.
func (s *Server) AtCapacity() bool {
	return s.Capacity >= 0 && len(s.buffer) >= s.Capacity
}

// Head returns the job in service. ok is false when the server is idle.
func (s *Server) Head() (Job, bool) {
	if len(s.buffer) == 0 {
		return Job{}, false
	}
	return s.buffer[0], true
}

// Jobs returns a copy of the buffer contents in service order.
func (s *Server) Jobs() []Job {
	out := make([]Job, len(s.buffer))
	copy(out, s.buffer)
	return out
}

// PopHead removes and returns the job in service. Popping an idle server is
// an invariant violation and panics.
func (s *Server) PopHead() Job {
	if len(s.buffer) == 0 {
		panic(fmt.Sprintf("server %d: pop from empty buffer", s.ID))
	}
	head := s.buffer[0]
	s.buffer = s.buffer[1:]
	return head
}

// Admit attempts to enqueue job at time now. A full buffer diverts the job
// through the overflow weights: it either transfers toward another server
// after a sampled delay or leaves the network. A successful admission into
// an empty buffer starts service, scheduling this server's next Served
// completion.
func (s *Server) Admit(now float64, job Job, st *State) []sim.TimedEvent[*State] {
	if s.AtCapacity() {
		dest, leave := s.overflow.Next()
		if leave {
			return (&Leave{Job: job}).Process(now, st)
		}
		st.MovingJobs++
		return []sim.TimedEvent[*State]{{
			Time:  now + st.delay.Sample(st.Params.TransferRate),
			Event: &Overflow{To: dest, Job: job},
		}}
	}

	s.buffer = append(s.buffer, job)
	if len(s.buffer) == 1 {
		return []sim.TimedEvent[*State]{{
			Time:  now + st.delay.Sample(s.ServiceRate),
			Event: &Served{ServerID: s.ID},
		}}
	}
	return nil
}
