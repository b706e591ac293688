package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and returns everything written to stdout.
// Flag values persist across Execute calls, so callers pass every flag they
// depend on explicitly.
func execute(t *testing.T, args ...string) string {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// Restore stdout and read captured output
	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	require.NoError(t, err)
	return buf.String()
}

func TestRunCommand_PrintsSummaryToStdout(t *testing.T) {
	// WHEN running the single-server example for a short bounded run
	output := execute(t, "run",
		"--scenario", "../examples/single-server.yaml",
		"--seed", "42", "--max-time", "500")

	// THEN the summary lands on stdout with the headline fields
	assert.Contains(t, output, "=== Simulation Summary ===", "summary header must be on stdout")
	assert.Contains(t, output, "Stop reason          : time_reached")
	assert.Contains(t, output, "Arrivals")
	assert.Contains(t, output, "Departures")
	assert.Contains(t, output, "Mean jobs in system")
	assert.Contains(t, output, "server 0")
}

func TestRunCommand_PrintsSnapshotsAtLogTimes(t *testing.T) {
	// The overflow-pair example asks for snapshots at 1000, 5000, and 10000.
	output := execute(t, "run",
		"--scenario", "../examples/overflow-pair.yaml",
		"--seed", "42", "--max-time", "10000")

	assert.Contains(t, output, "=== Snapshots ===", "snapshot section must be on stdout")
	assert.Contains(t, output, "t=1000")
	assert.Contains(t, output, "t=5000")
	assert.Contains(t, output, "in_system=")
	assert.Contains(t, output, "buffers=")
}

func TestRunCommand_SameSeedIdenticalOutput(t *testing.T) {
	// Determinism end to end: two runs of the same scenario and seed print
	// byte-identical summaries.
	args := []string{"run",
		"--scenario", "../examples/single-server.yaml",
		"--seed", "7", "--max-time", "500"}

	first := execute(t, args...)
	second := execute(t, args...)

	assert.Equal(t, first, second, "same seed must reproduce the run exactly")
}

func TestRunCommand_DifferentSeedsDifferentOutput(t *testing.T) {
	first := execute(t, "run",
		"--scenario", "../examples/single-server.yaml",
		"--seed", "42", "--max-time", "500")
	second := execute(t, "run",
		"--scenario", "../examples/single-server.yaml",
		"--seed", "43", "--max-time", "500")

	assert.NotEqual(t, first, second, "different seeds must change the run")
}

func TestCheckCommand_ReportsValidScenario(t *testing.T) {
	output := execute(t, "check", "--scenario", "../examples/overflow-pair.yaml")

	assert.Contains(t, output, "scenario ok")
}

// TestCheckScenario_RejectsWhatRunRejects tests that check applies the same
// scenario-level rules run enforces, so a file never checks ok and then
// fails to run. Both commands funnel through Scenario.Validate.
func TestCheckScenario_RejectsWhatRunRejects(t *testing.T) {
	t.Run("valid file passes", func(t *testing.T) {
		require.NoError(t, checkScenario(writeScenario(t, twoServerScenario)))
	})

	t.Run("descending log times", func(t *testing.T) {
		// Decodes cleanly and the network is valid; only the log times are
		// misordered, which run would reject at driver construction.
		path := writeScenario(t, `
seed: 42
max_time: 10000
log_times: [5000, 1000]
network:
  gamma_scv: 1.0
  arrival_rate: 1.8
  transfer_rate: 10.0
  arrival_dest: [1.0]
  servers:
    - service_rate: 2.0
      capacity: -1
      move_weights: [0.0]
      overflow_weights: [0.0]
`)
		err := checkScenario(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strictly ascending")
	})

	t.Run("no stop bound", func(t *testing.T) {
		path := writeScenario(t, `
seed: 42
network:
  gamma_scv: 1.0
  arrival_rate: 1.8
  transfer_rate: 10.0
  arrival_dest: [1.0]
  servers:
    - service_rate: 2.0
      capacity: -1
      move_weights: [0.0]
      overflow_weights: [0.0]
`)
		err := checkScenario(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bound the run")
	})
}
