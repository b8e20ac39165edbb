package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_Logging(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestApplyDefaults_OSPFIntervals(t *testing.T) {
	cfg := &Config{
		OSPF: []OSPFInstanceConfig{{
			Name: "core",
			Areas: []OSPFAreaConfig{{
				ID:         "0.0.0.0",
				Interfaces: []OSPFInterfaceConfig{{Name: "eth0"}},
			}},
		}},
	}
	ApplyDefaults(cfg)

	iface := cfg.OSPF[0].Areas[0].Interfaces[0]
	assert.Equal(t, 10*time.Second, iface.HelloInterval)
	assert.Equal(t, 40*time.Second, iface.DeadInterval)
	assert.Equal(t, uint8(1), iface.Priority)
}

func TestApplyDefaults_ISISHoldTime(t *testing.T) {
	cfg := &Config{
		ISIS: []ISISInstanceConfig{{
			Name:      "core",
			SystemID:  "0000.0000.0001",
			AreaAddrs: []string{"49.0001"},
			Interfaces: []ISISInterfaceConfig{
				{Name: "eth0", HelloInterval: 5 * time.Second},
			},
		}},
	}
	ApplyDefaults(cfg)

	iface := cfg.ISIS[0].Interfaces[0]
	assert.Equal(t, 5*time.Second, iface.HelloInterval)
	assert.Equal(t, 15*time.Second, iface.HoldTime)
	assert.Equal(t, "broadcast", iface.CircuitType)
}

func TestApplyDefaults_BGPHoldTime(t *testing.T) {
	cfg := &Config{
		BGP: BGPConfig{
			Enabled: true,
			LocalAS: 65000,
			Neighbors: []BGPNeighborConfig{
				{Address: "192.0.2.1", PeerAS: 65001},
			},
		},
	}
	ApplyDefaults(cfg)

	assert.Equal(t, 90*time.Second, cfg.BGP.Neighbors[0].HoldTime)
	assert.EqualValues(t, 4096, cfg.BGP.MaxMessageSize)
}

func TestApplyDefaults_SegmentRoutingGlobalBlock(t *testing.T) {
	cfg := &Config{SegmentRouting: SegmentRoutingConfig{Enabled: true}}
	ApplyDefaults(cfg)

	assert.Equal(t, uint32(16000), cfg.SegmentRouting.GlobalBlock.Start)
	assert.Equal(t, uint32(23999), cfg.SegmentRouting.GlobalBlock.End)
}
