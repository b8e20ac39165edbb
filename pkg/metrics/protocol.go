package metrics

import "time"

// ProtocolMetrics is implemented by whatever collects observability for
// the protocol engines (OSPF/IS-IS/BGP) and the shared LSDB/SPF machinery.
// Every method maps to one of the §7 notification points or a §4.6/§4.5
// hot-path counter; nil is a valid ProtocolMetrics (metrics disabled), and
// every package-level Observe/Inc helper below is nil-safe so call sites
// never need a guard of their own.
type ProtocolMetrics interface {
	// IncRxBadPacket counts a Decode-kind error: a structurally invalid
	// PDU discarded before any FSM ever sees it (§7 if-rx-bad-packet).
	IncRxBadPacket(protocol, pduType string)

	// IncAuthFailure counts an Auth-kind error: key-not-found, digest
	// mismatch, or bad sequence number (§7 authentication-failure).
	IncAuthFailure(protocol, reason string)

	// IncSemanticReject counts a Semantic-kind error that rejected an
	// adjacency attempt (area/circuit-type/parameter mismatch).
	IncSemanticReject(protocol, reason string)

	// IncLSAReceivedBad counts an LSA-kind error: bad checksum, bad age,
	// bad sequence, or a reserved type on a stub area (§7 lsa-received-bad).
	IncLSAReceivedBad(protocol string)

	// IncFSMReset counts a neighbor/adjacency FSM reset triggered by a
	// SeqNoMismatch, BadLsReq, or an IS-IS/BGP session close.
	IncFSMReset(protocol string)

	// IncResourceFailure counts a label-allocation or socket-bind failure
	// that was propagated to the configuration layer as a rejection.
	IncResourceFailure(protocol, resource string)

	// IncSPFRun counts one completed SPF computation and ObserveSPFDuration
	// records how long it took, per §4.6.
	IncSPFRun(protocol string)
	ObserveSPFDuration(protocol string, d time.Duration)

	// IncLSAFlooded counts one LSA enqueued for transmission to a
	// neighbor by the flooding engine (§4.5).
	IncLSAFlooded(protocol string)

	// RecordLSDBSize records the current number of entries held for a
	// given (protocol, scope) pair, e.g. ("ospf", "area:0.0.0.0").
	RecordLSDBSize(protocol, scope string, entries int)

	// RecordNeighborState records the current count of neighbors/peers in
	// a given FSM state, so "neighbors stuck in Exchange" is a queryable
	// gauge rather than something inferred from logs.
	RecordNeighborState(protocol, state string, count int)
}

// IncRxBadPacket is a nil-safe wrapper; see ProtocolMetrics.IncRxBadPacket.
func IncRxBadPacket(m ProtocolMetrics, protocol, pduType string) {
	if m != nil {
		m.IncRxBadPacket(protocol, pduType)
	}
}

// IncAuthFailure is a nil-safe wrapper; see ProtocolMetrics.IncAuthFailure.
func IncAuthFailure(m ProtocolMetrics, protocol, reason string) {
	if m != nil {
		m.IncAuthFailure(protocol, reason)
	}
}

// IncSemanticReject is a nil-safe wrapper; see ProtocolMetrics.IncSemanticReject.
func IncSemanticReject(m ProtocolMetrics, protocol, reason string) {
	if m != nil {
		m.IncSemanticReject(protocol, reason)
	}
}

// IncLSAReceivedBad is a nil-safe wrapper; see ProtocolMetrics.IncLSAReceivedBad.
func IncLSAReceivedBad(m ProtocolMetrics, protocol string) {
	if m != nil {
		m.IncLSAReceivedBad(protocol)
	}
}

// IncFSMReset is a nil-safe wrapper; see ProtocolMetrics.IncFSMReset.
func IncFSMReset(m ProtocolMetrics, protocol string) {
	if m != nil {
		m.IncFSMReset(protocol)
	}
}

// IncResourceFailure is a nil-safe wrapper; see ProtocolMetrics.IncResourceFailure.
func IncResourceFailure(m ProtocolMetrics, protocol, resource string) {
	if m != nil {
		m.IncResourceFailure(protocol, resource)
	}
}

// IncSPFRun is a nil-safe wrapper; see ProtocolMetrics.IncSPFRun.
func IncSPFRun(m ProtocolMetrics, protocol string) {
	if m != nil {
		m.IncSPFRun(protocol)
	}
}

// ObserveSPFDuration is a nil-safe wrapper; see ProtocolMetrics.ObserveSPFDuration.
func ObserveSPFDuration(m ProtocolMetrics, protocol string, d time.Duration) {
	if m != nil {
		m.ObserveSPFDuration(protocol, d)
	}
}

// IncLSAFlooded is a nil-safe wrapper; see ProtocolMetrics.IncLSAFlooded.
func IncLSAFlooded(m ProtocolMetrics, protocol string) {
	if m != nil {
		m.IncLSAFlooded(protocol)
	}
}

// RecordLSDBSize is a nil-safe wrapper; see ProtocolMetrics.RecordLSDBSize.
func RecordLSDBSize(m ProtocolMetrics, protocol, scope string, entries int) {
	if m != nil {
		m.RecordLSDBSize(protocol, scope, entries)
	}
}

// RecordNeighborState is a nil-safe wrapper; see ProtocolMetrics.RecordNeighborState.
func RecordNeighborState(m ProtocolMetrics, protocol, state string, count int) {
	if m != nil {
		m.RecordNeighborState(protocol, state, count)
	}
}

// newPrometheusProtocolMetrics is set by pkg/metrics/prometheus's init(),
// mirroring the teacher's newPrometheusCacheMetrics indirection so this
// package never imports client_golang directly.
var newPrometheusProtocolMetrics func() ProtocolMetrics

// RegisterProtocolMetricsConstructor is called by
// pkg/metrics/prometheus/protocol.go's init() to install the concrete
// constructor.
func RegisterProtocolMetricsConstructor(constructor func() ProtocolMetrics) {
	newPrometheusProtocolMetrics = constructor
}

// NewProtocolMetrics returns a Prometheus-backed ProtocolMetrics, or nil if
// metrics are disabled (InitRegistry was never called) — callers pass the
// nil straight into the protocol engine constructors, which accept a nil
// ProtocolMetrics as "collect nothing."
func NewProtocolMetrics() ProtocolMetrics {
	if !IsEnabled() || newPrometheusProtocolMetrics == nil {
		return nil
	}
	return newPrometheusProtocolMetrics()
}
