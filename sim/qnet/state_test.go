package qnet

import (
	"strings"
	"testing"

	"github.com/qnetsim/qnetsim/sim"
)

// TestNewState_RejectsInvalidParams tests that construction refuses a
// network that fails validation.
func TestNewState_RejectsInvalidParams(t *testing.T) {
	p := newTestParams(1)
	p.GammaSCV = 0
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(42))

	_, err := NewState(p, rng)
	if err == nil {
		t.Fatal("NewState accepted invalid params")
	}
	if !strings.Contains(err.Error(), "invalid network parameters") {
		t.Errorf("error %q does not name the validation failure", err)
	}
}

// TestNewState_BuildsServersFromParams tests that each server gets its own
// ID, rate, and capacity.
func TestNewState_BuildsServersFromParams(t *testing.T) {
	p := newTestParams(3)
	p.ServiceRates = []float64{2.0, 1.5, 3.0}
	p.Capacities = []int{4, 0, -1}
	st := newTestState(t, p, 42)

	if len(st.Servers) != 3 {
		t.Fatalf("built %d servers, want 3", len(st.Servers))
	}
	for i, srv := range st.Servers {
		if srv.ID != i {
			t.Errorf("server %d has ID %d", i, srv.ID)
		}
		if srv.ServiceRate != p.ServiceRates[i] {
			t.Errorf("server %d rate = %v, want %v", i, srv.ServiceRate, p.ServiceRates[i])
		}
		if srv.Capacity != p.Capacities[i] {
			t.Errorf("server %d capacity = %d, want %d", i, srv.Capacity, p.Capacities[i])
		}
		if srv.Len() != 0 {
			t.Errorf("server %d starts with %d buffered jobs", i, srv.Len())
		}
	}
}

// TestState_NewJobMintsIncreasingIDs tests job ID uniqueness and order.
func TestState_NewJobMintsIncreasingIDs(t *testing.T) {
	st := newTestState(t, newTestParams(1), 42)

	for want := uint64(1); want <= 3; want++ {
		if got := st.NewJob().ID; got != want {
			t.Errorf("job ID = %d, want %d", got, want)
		}
	}
	if st.LastJobID != 3 {
		t.Errorf("LastJobID = %d, want 3", st.LastJobID)
	}
}

// TestState_BootstrapSchedulesFirstArrival tests that a run begins with
// exactly one arrival carrying the first job, due strictly after zero.
func TestState_BootstrapSchedulesFirstArrival(t *testing.T) {
	st := newTestState(t, newTestParams(2), 42)

	evs := st.Bootstrap()

	if len(evs) != 1 {
		t.Fatalf("bootstrap produced %d events, want 1", len(evs))
	}
	arr, ok := evs[0].Event.(*Arrival)
	if !ok {
		t.Fatalf("event = %T, want *Arrival", evs[0].Event)
	}
	if arr.Job.ID != 1 {
		t.Errorf("first job ID = %d, want 1", arr.Job.ID)
	}
	if evs[0].Time <= 0 {
		t.Errorf("first arrival time = %v, want > 0", evs[0].Time)
	}
}

// TestState_BufferAccessors tests BufferLens and BufferedJobs against a
// hand-built occupancy.
func TestState_BufferAccessors(t *testing.T) {
	st := newTestState(t, newTestParams(3), 42)
	st.Servers[0].buffer = []Job{{ID: 1}, {ID: 2}}
	st.Servers[2].buffer = []Job{{ID: 3}}

	wantLens := []int{2, 0, 1}
	lens := st.BufferLens()
	if len(lens) != len(wantLens) {
		t.Fatalf("BufferLens returned %d entries, want %d", len(lens), len(wantLens))
	}
	for i, want := range wantLens {
		if lens[i] != want {
			t.Errorf("BufferLens[%d] = %d, want %d", i, lens[i], want)
		}
	}
	if got := st.BufferedJobs(); got != 3 {
		t.Errorf("BufferedJobs() = %d, want 3", got)
	}
}
