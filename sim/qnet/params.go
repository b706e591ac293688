// Package qnet models an open network of FIFO servers with finite or
// unbounded buffers. Jobs arrive from outside, queue for service, and are
// routed onward by two weight matrices: move weights applied after service
// and overflow weights applied when a full buffer diverts an admission.
// Weight rows are sub-distributions; the unassigned remainder is the
// probability of leaving the network. Every delay (inter-arrival, service,
// transfer) is gamma-distributed with a shared squared coefficient of
// variation.
package qnet

import (
	"fmt"
	"math"
)

// rowSumTol is the float tolerance applied to distribution row sums.
const rowSumTol = 1e-9

// Params configures a network of L servers. L is defined by
// len(ServiceRates); every other vector and matrix must match it.
type Params struct {
	// GammaSCV is the squared coefficient of variation shared by every
	// sampled delay.
	GammaSCV float64

	// ArrivalRate is the rate of external job arrivals.
	ArrivalRate float64

	// TransferRate is the rate governing inter-server transfer delays.
	TransferRate float64

	// ServiceRates holds one service rate per server.
	ServiceRates []float64

	// MoveWeights[i][j] is the probability that a job finishing service at
	// server i moves to server j. Rows may sum to less than 1; the
	// remainder is the probability of leaving the network after service.
	MoveWeights [][]float64

	// OverflowWeights[i][j] is the probability that a job diverted from a
	// full server i transfers to server j. Rows are sub-distributions like
	// MoveWeights.
	OverflowWeights [][]float64

	// ArrivalDest distributes external arrivals over the servers. Must sum
	// to 1: arriving jobs never leave on entry.
	ArrivalDest []float64

	// Capacities bounds each server's buffer. -1 means unbounded; 0 is a
	// legal degenerate buffer that diverts every admission.
	Capacities []int
}

// L returns the number of servers.
func (p *Params) L() int {
	return len(p.ServiceRates)
}

// Validate checks rates, dimensions, and distributions. It returns the first
// problem found, named by field and index.
func (p *Params) Validate() error {
	L := len(p.ServiceRates)
	if L == 0 {
		return fmt.Errorf("network must have at least one server")
	}
	if err := positiveFinite("gamma_scv", p.GammaSCV); err != nil {
		return err
	}
	if err := positiveFinite("arrival_rate", p.ArrivalRate); err != nil {
		return err
	}
	if err := positiveFinite("transfer_rate", p.TransferRate); err != nil {
		return err
	}
	for i, mu := range p.ServiceRates {
		if err := positiveFinite(fmt.Sprintf("service_rates[%d]", i), mu); err != nil {
			return err
		}
	}

	if len(p.Capacities) != L {
		return fmt.Errorf("capacities has %d entries, want %d", len(p.Capacities), L)
	}
	for i, k := range p.Capacities {
		if k < -1 {
			return fmt.Errorf("capacities[%d] must be -1 (unbounded) or non-negative, got %d", i, k)
		}
	}

	if err := validateWeightMatrix("move_weights", p.MoveWeights, L); err != nil {
		return err
	}
	if err := validateWeightMatrix("overflow_weights", p.OverflowWeights, L); err != nil {
		return err
	}

	if len(p.ArrivalDest) != L {
		return fmt.Errorf("arrival_dest has %d entries, want %d", len(p.ArrivalDest), L)
	}
	sum := 0.0
	for i, w := range p.ArrivalDest {
		if math.IsNaN(w) || w < 0 {
			return fmt.Errorf("arrival_dest[%d] must be non-negative, got %v", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > rowSumTol {
		return fmt.Errorf("arrival_dest sums to %v, must sum to 1", sum)
	}
	return nil
}

// validateWeightMatrix checks an LxL matrix of sub-distribution rows.
func validateWeightMatrix(name string, m [][]float64, L int) error {
	if len(m) != L {
		return fmt.Errorf("%s has %d rows, want %d", name, len(m), L)
	}
	for i, row := range m {
		if len(row) != L {
			return fmt.Errorf("%s[%d] has %d entries, want %d", name, i, len(row), L)
		}
		sum := 0.0
		for j, w := range row {
			if math.IsNaN(w) || w < 0 {
				return fmt.Errorf("%s[%d][%d] must be non-negative, got %v", name, i, j, w)
			}
			sum += w
		}
		if sum > 1+rowSumTol {
			return fmt.Errorf("%s[%d] sums to %v, must not exceed 1", name, i, sum)
		}
	}
	return nil
}

func positiveFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s must be positive and finite, got %v", name, v)
	}
	return nil
}
