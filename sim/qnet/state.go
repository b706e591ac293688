package qnet

import (
	"fmt"

	"github.com/qnetsim/qnetsim/sim"
)

// State is the complete discrete state of one network plus the samplers that
// drive it. One State serves one run.
type State struct {
	Params  *Params
	Servers []*Server

	// JobsInSystem counts every job that has arrived and not yet departed,
	// whether buffered at a server or in transit between servers.
	JobsInSystem int

	// MovingJobs counts the subset of JobsInSystem currently in transit.
	MovingJobs int

	// LastJobID is the most recently minted job ID.
	LastJobID uint64

	// Arrivals and Departures count external arrivals processed and jobs
	// departed. JobsInSystem equals their difference at every instant.
	Arrivals   uint64
	Departures uint64

	delay   *sim.DelaySampler
	arrival *sim.Picker
}

// NewState validates params and assembles the servers, routers, and
// samplers. Randomness comes from rng's timing and routing subsystems.
func NewState(params *Params, rng *sim.PartitionedRNG) (*State, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid network parameters: %w", err)
	}
	timing := rng.ForSubsystem(sim.SubsystemTiming)
	routing := rng.ForSubsystem(sim.SubsystemRouting)

	delay, err := sim.NewDelaySampler(params.GammaSCV, timing)
	if err != nil {
		return nil, err
	}
	arrival, err := sim.NewPicker(params.ArrivalDest, routing)
	if err != nil {
		return nil, fmt.Errorf("arrival_dest: %w", err)
	}

	st := &State{
		Params:  params,
		Servers: make([]*Server, 0, params.L()),
		delay:   delay,
		arrival: arrival,
	}
	for i, mu := range params.ServiceRates {
		move, err := sim.NewRouter(params.MoveWeights[i], routing)
		if err != nil {
			return nil, fmt.Errorf("move_weights[%d]: %w", i, err)
		}
		overflow, err := sim.NewRouter(params.OverflowWeights[i], routing)
		if err != nil {
			return nil, fmt.Errorf("overflow_weights[%d]: %w", i, err)
		}
		st.Servers = append(st.Servers, &Server{
			ID:          i,
			ServiceRate: mu,
			Capacity:    params.Capacities[i],
			move:        move,
			overflow:    overflow,
		})
	}
	return st, nil
}

// NewJob mints the next job. IDs are unique and strictly increasing.
func (st *State) NewJob() Job {
	st.LastJobID++
	return Job{ID: st.LastJobID}
}

// Bootstrap returns the initial event list for a run: the first external
// arrival, due one sampled inter-arrival time after zero.
func (st *State) Bootstrap() []sim.TimedEvent[*State] {
	return []sim.TimedEvent[*State]{{
		Time:  st.delay.Sample(st.Params.ArrivalRate),
		Event: &Arrival{Job: st.NewJob()},
	}}
}

// BufferLens returns the per-server buffer lengths.
func (st *State) BufferLens() []int {
	lens := make([]int, len(st.Servers))
	for i, s := range st.Servers {
		lens[i] = s.Len()
	}
	return lens
}

// BufferedJobs returns the total number of buffered jobs across all servers.
// It equals JobsInSystem - MovingJobs at every instant.
func (st *State) BufferedJobs() int {
	total := 0
	for _, s := range st.Servers {
		total += s.Len()
	}
	return total
}
