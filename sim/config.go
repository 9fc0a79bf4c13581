package sim

import (
	"fmt"
	"time"
)

// CatalogConfig groups catalog generation parameters.
type CatalogConfig struct {
	Items      int     `yaml:"items"`        // number of data items in the catalog (must be > 0)
	Theta      float64 `yaml:"theta"`        // Zipf skew parameter for popularity weights (must be > 0)
	MinSizeKiB int64   `yaml:"min_size_kib"` // smallest item size in KiB (must be > 0)
	MaxSizeKiB int64   `yaml:"max_size_kib"` // largest item size in KiB (must be >= MinSizeKiB)
	Seed       int64   `yaml:"seed"`         // explicit catalog RNG seed (0 = derive from master seed)
}

// Validate checks catalog parameters for consistency.
func (c CatalogConfig) Validate() error {
	if c.Items <= 0 {
		return fmt.Errorf("catalog: items must be > 0, got %d", c.Items)
	}
	if c.Theta <= 0 {
		return fmt.Errorf("catalog: theta must be > 0, got %v", c.Theta)
	}
	if c.MinSizeKiB <= 0 {
		return fmt.Errorf("catalog: min_size_kib must be > 0, got %d", c.MinSizeKiB)
	}
	if c.MaxSizeKiB < c.MinSizeKiB {
		return fmt.Errorf("catalog: max_size_kib %d < min_size_kib %d", c.MaxSizeKiB, c.MinSizeKiB)
	}
	return nil
}

// WorkloadConfig groups client request generation parameters.
type WorkloadConfig struct {
	Clients        int   `yaml:"clients"`          // number of simulated clients (must be > 0)
	MinItems       int   `yaml:"min_items"`        // fewest items per request (must be > 0)
	MaxItems       int   `yaml:"max_items"`        // most items per request (must be >= MinItems)
	MaxJitterSlots int64 `yaml:"max_jitter_slots"` // arrival jitter bound, in timeslots (>= 0)
	Seed           int64 `yaml:"seed"`             // explicit client RNG seed (0 = derive from master seed)
}

// Validate checks workload parameters for consistency.
func (w WorkloadConfig) Validate() error {
	if w.Clients <= 0 {
		return fmt.Errorf("workload: clients must be > 0, got %d", w.Clients)
	}
	if w.MinItems <= 0 {
		return fmt.Errorf("workload: min_items must be > 0, got %d", w.MinItems)
	}
	if w.MaxItems < w.MinItems {
		return fmt.Errorf("workload: max_items %d < min_items %d", w.MaxItems, w.MinItems)
	}
	if w.MaxJitterSlots < 0 {
		return fmt.Errorf("workload: max_jitter_slots must be >= 0, got %d", w.MaxJitterSlots)
	}
	return nil
}

// ServerConfig groups broadcast server parameters.
type ServerConfig struct {
	BandwidthKiB   int64 `yaml:"bandwidth_kib"` // channel bandwidth in KiB per second (must be > 0)
	TimeslotMillis int64 `yaml:"timeslot_ms"`   // timeslot length in milliseconds (must be > 0)
	DeltaSlots     int64 `yaml:"delta"`         // hard per-round slot budget (must be > 0)
}

// Validate checks server parameters for consistency.
func (s ServerConfig) Validate() error {
	if s.BandwidthKiB <= 0 {
		return fmt.Errorf("server: bandwidth_kib must be > 0, got %d", s.BandwidthKiB)
	}
	if s.TimeslotMillis <= 0 {
		return fmt.Errorf("server: timeslot_ms must be > 0, got %d", s.TimeslotMillis)
	}
	if s.DeltaSlots <= 0 {
		return fmt.Errorf("server: delta must be > 0, got %d", s.DeltaSlots)
	}
	return nil
}

// SlotDuration returns the timeslot length as a time.Duration.
func (s ServerConfig) SlotDuration() time.Duration {
	return time.Duration(s.TimeslotMillis) * time.Millisecond
}

// BytesPerSlot returns how many payload bytes fit into one timeslot,
// i.e. bandwidth × timeslot.
func (s ServerConfig) BytesPerSlot() float64 {
	return float64(s.BandwidthKiB*1024) * s.SlotDuration().Seconds()
}
