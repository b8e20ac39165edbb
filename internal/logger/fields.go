package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// These keys are designed to be protocol-agnostic, supporting OSPF, IS-IS, BGP
// and future link-state/path-vector protocols.
// Use these keys consistently across all log statements for log aggregation and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Protocol & Instance (protocol-agnostic)
	// ========================================================================
	KeyProtocol  = "protocol"  // Protocol type: ospfv2, ospfv3, isis, bgp
	KeyInstance  = "instance"  // Instance/VRF name
	KeyRouterID  = "router_id" // Router identifier (OSPF/BGP) or system-id (IS-IS)
	KeyArea      = "area"      // OSPF area ID
	KeyLevel     = "level"     // IS-IS level (L1, L2)
	KeyInterface = "interface" // Interface name
	KeyPDUType   = "pdu_type"  // PDU/packet type name (Hello, DbDesc, LSP, Update, ...)

	// ========================================================================
	// Neighbor / Adjacency / Peer
	// ========================================================================
	KeyNeighbor     = "neighbor"      // Neighbor/peer address or identifier
	KeyNeighborID   = "neighbor_id"   // Neighbor router-id / system-id
	KeyState        = "state"         // FSM state (current or resulting)
	KeyEvent        = "event"         // FSM event name
	KeyPrevState    = "prev_state"    // FSM state prior to transition
	KeyPeerAS       = "peer_as"       // BGP peer autonomous system number
	KeyLocalAS      = "local_as"      // BGP local autonomous system number

	// ========================================================================
	// LSA / LSP / Route
	// ========================================================================
	KeyLSAType    = "lsa_type"    // LSA/LSP type
	KeyLSAID      = "lsa_id"      // LSA ID / LSP ID
	KeyAdvRouter  = "adv_router"  // Advertising router
	KeySeqNo      = "seq_no"      // Sequence number
	KeyChecksum   = "checksum"    // Checksum value
	KeyAge        = "age"         // Remaining lifetime / age (seconds)
	KeyPrefix     = "prefix"      // Routing prefix
	KeyMetric     = "metric"      // Route/link metric
	KeyNexthop    = "nexthop"     // Nexthop address
	KeyScope      = "scope"       // LSA flooding scope (link, area, AS)

	// ========================================================================
	// Authentication
	// ========================================================================
	KeyAuthAlgorithm = "auth_algorithm" // Authentication algorithm name
	KeyKeyID         = "key_id"         // Authentication key identifier

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorKind  = "error_kind"  // Categorized error kind (Decode, Auth, Semantic, LSA, FSM, Resource)
	KeySource     = "source"      // Originating subsystem
	KeyOperation  = "operation"   // Sub-operation type for complex operations

	// ========================================================================
	// Inter-process bus
	// ========================================================================
	KeyBusMessage = "bus_message" // ibus message type name

	// ========================================================================
	// SPF
	// ========================================================================
	KeySPFDelay = "spf_delay_ms" // Scheduled SPF run delay in milliseconds
)

// ----------------------------------------------------------------------------
// Field constructors for type safety
// ----------------------------------------------------------------------------

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr { return slog.String(KeySpanID, id) }

// Protocol returns a slog.Attr for protocol type (ospfv2, ospfv3, isis, bgp)
func Protocol(proto string) slog.Attr { return slog.String(KeyProtocol, proto) }

// Instance returns a slog.Attr for instance/VRF name
func Instance(name string) slog.Attr { return slog.String(KeyInstance, name) }

// RouterID returns a slog.Attr for router identifier
func RouterID(id string) slog.Attr { return slog.String(KeyRouterID, id) }

// Area returns a slog.Attr for OSPF area ID
func Area(id string) slog.Attr { return slog.String(KeyArea, id) }

// IsisLevel returns a slog.Attr for IS-IS level
func IsisLevel(level string) slog.Attr { return slog.String(KeyLevel, level) }

// Interface returns a slog.Attr for interface name
func Interface(name string) slog.Attr { return slog.String(KeyInterface, name) }

// PDUType returns a slog.Attr for PDU/packet type name
func PDUType(t string) slog.Attr { return slog.String(KeyPDUType, t) }

// Neighbor returns a slog.Attr for neighbor/peer identifier
func Neighbor(id string) slog.Attr { return slog.String(KeyNeighbor, id) }

// NeighborID returns a slog.Attr for neighbor router-id/system-id
func NeighborID(id string) slog.Attr { return slog.String(KeyNeighborID, id) }

// State returns a slog.Attr for FSM state
func State(s string) slog.Attr { return slog.String(KeyState, s) }

// PrevState returns a slog.Attr for FSM state prior to transition
func PrevState(s string) slog.Attr { return slog.String(KeyPrevState, s) }

// Event returns a slog.Attr for FSM event name
func Event(e string) slog.Attr { return slog.String(KeyEvent, e) }

// PeerAS returns a slog.Attr for BGP peer AS number
func PeerAS(asn uint32) slog.Attr { return slog.Uint64(KeyPeerAS, uint64(asn)) }

// LocalAS returns a slog.Attr for BGP local AS number
func LocalAS(asn uint32) slog.Attr { return slog.Uint64(KeyLocalAS, uint64(asn)) }

// LSAType returns a slog.Attr for LSA/LSP type
func LSAType(t string) slog.Attr { return slog.String(KeyLSAType, t) }

// LSAID returns a slog.Attr for LSA ID / LSP ID
func LSAID(id string) slog.Attr { return slog.String(KeyLSAID, id) }

// AdvRouter returns a slog.Attr for the advertising router
func AdvRouter(id string) slog.Attr { return slog.String(KeyAdvRouter, id) }

// SeqNo returns a slog.Attr for a sequence number
func SeqNo(seq uint32) slog.Attr { return slog.Uint64(KeySeqNo, uint64(seq)) }

// Checksum returns a slog.Attr for a checksum value
func Checksum(c uint16) slog.Attr { return slog.Uint64(KeyChecksum, uint64(c)) }

// Age returns a slog.Attr for remaining lifetime / age in seconds
func Age(age uint16) slog.Attr { return slog.Uint64(KeyAge, uint64(age)) }

// Prefix returns a slog.Attr for a routing prefix
func Prefix(p string) slog.Attr { return slog.String(KeyPrefix, p) }

// Metric returns a slog.Attr for a route/link metric
func Metric(m uint32) slog.Attr { return slog.Uint64(KeyMetric, uint64(m)) }

// Nexthop returns a slog.Attr for a nexthop address
func Nexthop(nh string) slog.Attr { return slog.String(KeyNexthop, nh) }

// Scope returns a slog.Attr for LSA flooding scope
func Scope(s string) slog.Attr { return slog.String(KeyScope, s) }

// AuthAlgorithm returns a slog.Attr for the authentication algorithm name
func AuthAlgorithm(a string) slog.Attr { return slog.String(KeyAuthAlgorithm, a) }

// KeyIDAttr returns a slog.Attr for the authentication key identifier
func KeyIDAttr(id uint32) slog.Attr { return slog.Uint64(KeyKeyID, uint64(id)) }

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorKind returns a slog.Attr for the categorized error kind
func ErrorKind(kind string) slog.Attr { return slog.String(KeyErrorKind, kind) }

// Source returns a slog.Attr for the originating subsystem
func Source(src string) slog.Attr { return slog.String(KeySource, src) }

// Operation returns a slog.Attr for sub-operation type
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }

// BusMessage returns a slog.Attr for an ibus message type name
func BusMessage(name string) slog.Attr { return slog.String(KeyBusMessage, name) }

// SPFDelay returns a slog.Attr for a scheduled SPF run delay
func SPFDelay(ms int64) slog.Attr { return slog.Int64(KeySPFDelay, ms) }
