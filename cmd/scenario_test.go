package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScenario = `
seed: 42
catalog:
  items: 10
  theta: 0.8
  min_size_kib: 10
  max_size_kib: 30
workload:
  clients: 100
  min_items: 1
  max_items: 4
  max_jitter_slots: 2
server:
  bandwidth_kib: 1024
  timeslot_ms: 1000
  delta: 4
`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScenario), 0o644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.NoError(t, scenario.Validate())

	assert.Equal(t, int64(42), scenario.Seed)
	assert.Equal(t, 10, scenario.Catalog.Items)
	assert.Equal(t, 0.8, scenario.Catalog.Theta)
	assert.Equal(t, 100, scenario.Workload.Clients)
	assert.Equal(t, int64(1024), scenario.Server.BandwidthKiB)
	assert.Equal(t, int64(4), scenario.Server.DeltaSlots)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: [unterminated"), 0o644))

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestScenarioValidate_RejectsBadGroups(t *testing.T) {
	scenario := scenarioFromFlags()
	scenario.Catalog.Items = 0
	assert.Error(t, scenario.Validate())
}

func TestScenarioFromFlags_DefaultsAreValid(t *testing.T) {
	// Flag defaults registered in init() must form a runnable scenario.
	assert.NoError(t, scenarioFromFlags().Validate())
}
