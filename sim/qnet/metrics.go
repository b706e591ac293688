// Time-weighted run statistics. The accumulator is caller-owned: construct
// one next to the run, pass Observe as the driver callback, and read the
// means after Finalize. Nothing here is global.

package qnet

import (
	"fmt"

	"github.com/qnetsim/qnetsim/sim"
)

// Accumulator integrates time-weighted state statistics over one run. The
// driver invokes Observe before each event mutates the state, so each
// interval between events is weighted by the state that actually held over
// it. The zero value is ready to use.
type Accumulator struct {
	lastTime    float64
	jobsArea    float64
	movingArea  float64
	bufferAreas []float64
	events      uint64
	peakJobs    int
}

// Observe advances the integrals to time now using the pre-event state.
// Pass this method as sim.Config.Callback.
func (a *Accumulator) Observe(now float64, st *State) {
	a.advance(now, st)
	a.events++
}

// Finalize extends the integrals from the last observed event to end. Call
// once when the run stops, before reading any mean.
func (a *Accumulator) Finalize(end float64, st *State) {
	a.advance(end, st)
}

func (a *Accumulator) advance(now float64, st *State) {
	dt := now - a.lastTime
	if dt < 0 {
		panic(fmt.Sprintf("accumulator observed time going backwards: %v < %v", now, a.lastTime))
	}
	if a.bufferAreas == nil {
		a.bufferAreas = make([]float64, len(st.Servers))
	}
	a.jobsArea += dt * float64(st.JobsInSystem)
	a.movingArea += dt * float64(st.MovingJobs)
	for i, s := range st.Servers {
		a.bufferAreas[i] += dt * float64(s.Len())
	}
	if st.JobsInSystem > a.peakJobs {
		a.peakJobs = st.JobsInSystem
	}
	a.lastTime = now
}

// Elapsed returns the span of virtual time covered so far.
func (a *Accumulator) Elapsed() float64 {
	return a.lastTime
}

// Events returns the number of observed events.
func (a *Accumulator) Events() uint64 {
	return a.events
}

// PeakJobsInSystem returns the largest observed JobsInSystem.
func (a *Accumulator) PeakJobsInSystem() int {
	return a.peakJobs
}

// MeanJobsInSystem returns the time average of JobsInSystem over the covered
// span. Zero before anything was observed.
func (a *Accumulator) MeanJobsInSystem() float64 {
	if a.lastTime == 0 {
		return 0
	}
	return a.jobsArea / a.lastTime
}

// MeanMovingJobs returns the time average of MovingJobs over the covered
// span.
func (a *Accumulator) MeanMovingJobs() float64 {
	if a.lastTime == 0 {
		return 0
	}
	return a.movingArea / a.lastTime
}

// MeanBufferLen returns the time average of server i's buffer length over
// the covered span.
func (a *Accumulator) MeanBufferLen(i int) float64 {
	if a.lastTime == 0 || i >= len(a.bufferAreas) {
		return 0
	}
	return a.bufferAreas[i] / a.lastTime
}

// Print writes the run summary to stdout.
func (a *Accumulator) Print(res sim.Result, st *State) {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Stop reason          : %s\n", res.Reason)
	fmt.Printf("Simulated time       : %.6g\n", a.Elapsed())
	fmt.Printf("Events processed     : %d\n", res.EventsProcessed)
	fmt.Printf("Arrivals             : %d\n", st.Arrivals)
	fmt.Printf("Departures           : %d\n", st.Departures)
	fmt.Printf("Jobs in system       : %d (moving: %d)\n", st.JobsInSystem, st.MovingJobs)
	fmt.Printf("Mean jobs in system  : %.4f\n", a.MeanJobsInSystem())
	fmt.Printf("Mean moving jobs     : %.4f\n", a.MeanMovingJobs())
	fmt.Printf("Peak jobs in system  : %d\n", a.PeakJobsInSystem())
	for _, s := range st.Servers {
		fmt.Printf("  server %d           : mean buffer %.4f, final %d\n", s.ID, a.MeanBufferLen(s.ID), s.Len())
	}
}
