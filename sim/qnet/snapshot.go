package qnet

// Snapshot is an immutable record of the observable network state at one
// instant.
type Snapshot struct {
	Time         float64
	JobsInSystem int
	MovingJobs   int
	Arrivals     uint64
	Departures   uint64
	BufferLens   []int
}

// TakeSnapshot copies the observable state at time now.
func TakeSnapshot(now float64, st *State) Snapshot {
	return Snapshot{
		Time:         now,
		JobsInSystem: st.JobsInSystem,
		MovingJobs:   st.MovingJobs,
		Arrivals:     st.Arrivals,
		Departures:   st.Departures,
		BufferLens:   st.BufferLens(),
	}
}

// SnapshotLog collects snapshots at the run's requested log times. Pass
// Record as sim.Config.LogFunc. The zero value is ready to use.
type SnapshotLog struct {
	Snapshots []Snapshot
}

// Record appends a snapshot of st taken at logTime.
func (l *SnapshotLog) Record(logTime float64, st *State) {
	l.Snapshots = append(l.Snapshots, TakeSnapshot(logTime, st))
}
