package bgp

import (
	"testing"

	"github.com/routeflow/ribd/internal/bytesize"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMaxUpdateSizeDefaultsWhenUnset(t *testing.T) {
	c := NeighborConfig{}
	require.Equal(t, MaxMessageSize, c.EffectiveMaxUpdateSize())
}

func TestEffectiveMaxUpdateSizeClampsToProtocolMax(t *testing.T) {
	c := NeighborConfig{MaxUpdateSize: 1 << 20}
	require.Equal(t, MaxMessageSize, c.EffectiveMaxUpdateSize())
}

func TestEffectiveMaxUpdateSizeHonorsSmallerConfiguredValue(t *testing.T) {
	c := NeighborConfig{MaxUpdateSize: 512}
	require.Equal(t, 512, c.EffectiveMaxUpdateSize())
}

func TestDescribeMaxUpdateSize(t *testing.T) {
	c := NeighborConfig{MaxUpdateSize: bytesize.KiB}
	require.NotEmpty(t, DescribeMaxUpdateSize(c))
}
