package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCatalogConfig_Validate(t *testing.T) {
	valid := CatalogConfig{Items: 10, Theta: 0.8, MinSizeKiB: 10, MaxSizeKiB: 30}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Items = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Theta = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.MaxSizeKiB = 5
	assert.Error(t, bad.Validate())
}

func TestWorkloadConfig_Validate(t *testing.T) {
	valid := WorkloadConfig{Clients: 100, MinItems: 1, MaxItems: 4, MaxJitterSlots: 2}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Clients = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.MaxItems = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.MaxJitterSlots = -1
	assert.Error(t, bad.Validate())
}

func TestServerConfig_Validate(t *testing.T) {
	valid := ServerConfig{BandwidthKiB: 1024, TimeslotMillis: 1000, DeltaSlots: 4}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.BandwidthKiB = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.DeltaSlots = 0
	assert.Error(t, bad.Validate())
}

func TestServerConfig_BytesPerSlot(t *testing.T) {
	cfg := ServerConfig{BandwidthKiB: 1024, TimeslotMillis: 1000, DeltaSlots: 4}
	assert.Equal(t, time.Second, cfg.SlotDuration())
	// 1024 KiB/s × 1 s = 1 MiB per slot.
	assert.InDelta(t, 1048576.0, cfg.BytesPerSlot(), 1e-9)

	half := ServerConfig{BandwidthKiB: 1024, TimeslotMillis: 500, DeltaSlots: 4}
	assert.InDelta(t, 524288.0, half.BytesPerSlot(), 1e-9)
}
