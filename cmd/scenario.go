package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/broadcast-sim/broadcast-sim/sim"
)

// Scenario is the top-level simulation configuration.
// Loaded from YAML via LoadScenario(path), or assembled from CLI flags.
type Scenario struct {
	Seed     int64              `yaml:"seed"`
	Catalog  sim.CatalogConfig  `yaml:"catalog"`
	Workload sim.WorkloadConfig `yaml:"workload"`
	Server   sim.ServerConfig   `yaml:"server"`
}

// Validate checks every config group for consistency.
func (s *Scenario) Validate() error {
	if err := s.Catalog.Validate(); err != nil {
		return err
	}
	if err := s.Workload.Validate(); err != nil {
		return err
	}
	return s.Server.Validate()
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var scenario Scenario
	if err := yaml.Unmarshal(raw, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &scenario, nil
}
