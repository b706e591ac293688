// Package sim provides a deterministic discrete-event simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - event.go: the Event interface and TimedEvent pairing events with times
//   - event_queue.go: the pending-event min-heap and its deterministic ordering
//   - simulator.go: the driver loop, log-time reporting, and stop conditions
//
// # Architecture
//
// The engine is generic over a model's state type. A model package defines a
// closed set of event variants, each implementing Event[S]: Process mutates
// the state and returns follow-up events. The driver owns the virtual clock
// and the queue; models own everything else. Implementations live in
// sub-packages:
//   - sim/qnet/: a network of finite-buffer FIFO servers with probabilistic
//     move and overflow routing
//   - sim/simpleq/: a minimal single-server queue used to validate the engine
//     against closed-form results
//
// # Determinism
//
// Three mechanisms make runs bit-for-bit reproducible from a seed:
//   - PartitionedRNG (rng.go) derives one isolated stream per subsystem, so
//     draw counts in one subsystem never shift another's sequence
//   - the event queue breaks time ties by insertion sequence
//   - all sampling (sampler.go) goes through explicit sources; there is no
//     package-level RNG state anywhere
//
// # Observation
//
// Callers observe runs without touching model code: Config.Callback sees the
// pre-event state once per dispatched event (suitable for time-weighted
// accumulators), and Config.LogTimes/LogFunc report state snapshots at chosen
// times. Both hooks are caller-owned closures; the engine keeps no run
// statistics of its own.
package sim
