// sampler.go
//
// Random samplers shared by the simulation models: gamma-distributed delays
// and weighted categorical destination draws. All sampling goes through
// gonum's distuv distributions over an explicit source, so runs are
// reproducible from the seed alone.

package sim

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// minDelay floors sampled delays so follow-up events always move time
// strictly forward.
const minDelay = 1e-12

// weightTol is the float tolerance applied to weight-vector sums.
const weightTol = 1e-9

// DelaySampler draws event delays from a gamma family with a fixed squared
// coefficient of variation. scv = 1 gives exponential delays; smaller values
// concentrate around the mean, larger values are burstier.
type DelaySampler struct {
	scv float64
	src *rand.Rand
}

// NewDelaySampler returns a sampler whose delays have squared coefficient of
// variation scv. scv must be positive and finite.
func NewDelaySampler(scv float64, src *rand.Rand) (*DelaySampler, error) {
	if math.IsNaN(scv) || math.IsInf(scv, 0) || scv <= 0 {
		return nil, fmt.Errorf("delay sampler: scv must be positive and finite, got %v", scv)
	}
	return &DelaySampler{scv: scv, src: src}, nil
}

// Sample draws the next delay of a process with the given rate. Delays
// average 1/rate and are always strictly positive. A non-positive rate is a
// degenerate distribution and panics; validated configurations never produce
// one.
func (s *DelaySampler) Sample(rate float64) float64 {
	if math.IsNaN(rate) || rate <= 0 {
		panic(fmt.Sprintf("delay sampler: degenerate rate %v", rate))
	}
	// Gamma with shape 1/scv and rate rate/scv has mean 1/rate and squared
	// coefficient of variation scv.
	g := distuv.Gamma{Alpha: 1 / s.scv, Beta: rate / s.scv, Src: s.src}
	d := g.Rand()
	if d < minDelay {
		return minDelay
	}
	return d
}

// SCV returns the configured squared coefficient of variation.
func (s *DelaySampler) SCV() float64 {
	return s.scv
}

// Router draws routing outcomes from a weight vector over destinations.
// Weights form a sub-distribution: they may sum to less than 1, and the
// remainder is the probability that the job leaves the network instead of
// moving on. A row of zeros always leaves; a row summing to 1 never does.
type Router struct {
	dist distuv.Categorical
	n    int
}

// NewRouter builds a Router over len(weights) destinations. Weights must be
// non-negative and sum to at most 1.
func NewRouter(weights []float64, src *rand.Rand) (*Router, error) {
	sum := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || w < 0 {
			return nil, fmt.Errorf("weight[%d] must be non-negative, got %v", i, w)
		}
		sum += w
	}
	if sum > 1+weightTol {
		return nil, fmt.Errorf("weights sum to %v, must not exceed 1", sum)
	}
	leave := 1 - sum
	if leave < 0 {
		leave = 0
	}
	// Outcome 0 is the leave outcome; outcome i+1 is destination i.
	outcomes := make([]float64, len(weights)+1)
	outcomes[0] = leave
	copy(outcomes[1:], weights)
	return &Router{dist: distuv.NewCategorical(outcomes, src), n: len(weights)}, nil
}

// Next draws one routing outcome. leave reports that the job exits the
// network; otherwise dest is the destination index in [0, len(weights)).
func (r *Router) Next() (dest int, leave bool) {
	k := int(r.dist.Rand())
	if k == 0 {
		return 0, true
	}
	return k - 1, false
}

// Fanout returns the number of destinations the Router was built over.
func (r *Router) Fanout() int {
	return r.n
}

// Picker draws from a proper distribution over destinations, with no leave
// outcome. External arrivals use one to choose their first server.
type Picker struct {
	dist distuv.Categorical
}

// NewPicker builds a Picker from weights that must be non-negative and sum
// to 1.
func NewPicker(weights []float64, src *rand.Rand) (*Picker, error) {
	sum := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || w < 0 {
			return nil, fmt.Errorf("weight[%d] must be non-negative, got %v", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightTol {
		return nil, fmt.Errorf("weights sum to %v, must sum to 1", sum)
	}
	return &Picker{dist: distuv.NewCategorical(weights, src)}, nil
}

// Next draws one destination index in [0, len(weights)).
func (p *Picker) Next() int {
	return int(p.dist.Rand())
}
