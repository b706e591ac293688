package qnet

import (
	"testing"

	"github.com/qnetsim/qnetsim/sim"
)

// Shared builders for the network-model tests.

// zeroMatrix returns an LxL matrix of zero weight rows (always leave).
func zeroMatrix(L int) [][]float64 {
	m := make([][]float64, L)
	for i := range m {
		m[i] = make([]float64, L)
	}
	return m
}

// uniformDest returns a length-L arrival distribution with equal entries.
func uniformDest(L int) []float64 {
	d := make([]float64, L)
	for i := range d {
		d[i] = 1 / float64(L)
	}
	return d
}

// unboundedCaps returns L unbounded capacities.
func unboundedCaps(L int) []int {
	caps := make([]int, L)
	for i := range caps {
		caps[i] = -1
	}
	return caps
}

// newTestParams returns a valid L-server network the tests start from:
// uniform arrivals, unbounded buffers, and zero routing rows, so every job
// leaves right after service unless a test overrides a row.
func newTestParams(L int) *Params {
	rates := make([]float64, L)
	for i := range rates {
		rates[i] = 2.0
	}
	return &Params{
		GammaSCV:        1.0,
		ArrivalRate:     1.0,
		TransferRate:    10.0,
		ServiceRates:    rates,
		MoveWeights:     zeroMatrix(L),
		OverflowWeights: zeroMatrix(L),
		ArrivalDest:     uniformDest(L),
		Capacities:      unboundedCaps(L),
	}
}

// newTestState builds a State over p with a seeded RNG, failing the test on
// error.
func newTestState(t *testing.T, p *Params, seed int64) *State {
	t.Helper()
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	st, err := NewState(p, rng)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return st
}
