package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qnetsim/qnetsim/sim"
	"github.com/qnetsim/qnetsim/sim/qnet"
)

// Scenario is the top-level YAML configuration for one run.
// Loaded from YAML via LoadScenario(path).
type Scenario struct {
	Seed     int64       `yaml:"seed"`
	MaxTime  float64     `yaml:"max_time,omitempty"`
	LogTimes []float64   `yaml:"log_times,omitempty"`
	Network  NetworkSpec `yaml:"network"`
}

// NetworkSpec mirrors qnet.Params with the matrices broken into per-server
// rows, which reads better in YAML.
type NetworkSpec struct {
	GammaSCV     float64      `yaml:"gamma_scv"`
	ArrivalRate  float64      `yaml:"arrival_rate"`
	TransferRate float64      `yaml:"transfer_rate"`
	ArrivalDest  []float64    `yaml:"arrival_dest"`
	Servers      []ServerSpec `yaml:"servers"`
}

// ServerSpec is one server's row of the network.
type ServerSpec struct {
	ServiceRate     float64   `yaml:"service_rate"`
	Capacity        int       `yaml:"capacity"`
	MoveWeights     []float64 `yaml:"move_weights"`
	OverflowWeights []float64 `yaml:"overflow_weights"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate applies the scenario-level rules: the run must be bounded by
// max_time or log_times, and the times must satisfy the driver's rules
// (finite, non-negative, strictly ascending). Network parameters are
// validated separately by ToParams.
func (sc *Scenario) Validate() error {
	if sc.MaxTime <= 0 && len(sc.LogTimes) == 0 {
		return fmt.Errorf("scenario needs max_time or log_times to bound the run")
	}
	return sim.ValidateTimes(sc.MaxTime, sc.LogTimes)
}

// ToParams assembles network parameters from the per-server rows and
// validates them.
func (sc *Scenario) ToParams() (*qnet.Params, error) {
	p := &qnet.Params{
		GammaSCV:     sc.Network.GammaSCV,
		ArrivalRate:  sc.Network.ArrivalRate,
		TransferRate: sc.Network.TransferRate,
		ArrivalDest:  sc.Network.ArrivalDest,
	}
	for _, srv := range sc.Network.Servers {
		p.ServiceRates = append(p.ServiceRates, srv.ServiceRate)
		p.Capacities = append(p.Capacities, srv.Capacity)
		p.MoveWeights = append(p.MoveWeights, srv.MoveWeights)
		p.OverflowWeights = append(p.OverflowWeights, srv.OverflowWeights)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
