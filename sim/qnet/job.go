package qnet

// Job is one unit of work flowing through the network. IDs are unique within
// a run and strictly increasing in creation order; State.NewJob mints them.
type Job struct {
	ID uint64
}
