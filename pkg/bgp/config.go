package bgp

import (
	"github.com/dustin/go-humanize"

	"github.com/routeflow/ribd/internal/bytesize"
)

// NeighborConfig is the per-neighbor configuration surface consumed by the
// FSM and update-queue machinery above. MaxUpdateSize governs BuildUpdates'
// message-size cap and is expressed with the same human-readable
// byte-size parsing pkg/config uses for its own size-bearing settings
// (§3.10's "repurposed for BGP's per-peer max UPDATE message size" note).
type NeighborConfig struct {
	PeerAS        uint32
	PeerAddress   string
	MaxUpdateSize bytesize.ByteSize
	AllowASIn     bool
}

// DefaultMaxUpdateSize is the RFC 4271 §4 maximum BGP message size, used
// when a neighbor's configuration leaves MaxUpdateSize unset.
const DefaultMaxUpdateSize bytesize.ByteSize = bytesize.ByteSize(MaxMessageSize)

// EffectiveMaxUpdateSize returns c.MaxUpdateSize if set, else the RFC 4271
// default, clamped so it never exceeds the protocol maximum.
func (c NeighborConfig) EffectiveMaxUpdateSize() int {
	size := c.MaxUpdateSize
	if size == 0 {
		size = DefaultMaxUpdateSize
	}
	if size > DefaultMaxUpdateSize {
		size = DefaultMaxUpdateSize
	}
	return int(size)
}

// DescribeMaxUpdateSize renders the effective cap for logs/CLI output
// using go-humanize, matching the teacher's own preference for
// human-readable size formatting over raw byte counts in operator-facing
// text.
func DescribeMaxUpdateSize(c NeighborConfig) string {
	return humanize.Bytes(uint64(c.EffectiveMaxUpdateSize()))
}
