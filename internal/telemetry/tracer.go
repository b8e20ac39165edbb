package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for protocol engine operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// ========================================================================
	// Protocol / instance attributes (protocol-agnostic)
	// ========================================================================
	AttrProtocol  = "protocol.name" // ospfv2, ospfv3, isis, bgp
	AttrInstance  = "protocol.instance"
	AttrRouterID  = "protocol.router_id"
	AttrArea      = "ospf.area"
	AttrIsisLevel = "isis.level"
	AttrInterface = "net.interface"
	AttrNeighbor  = "protocol.neighbor"

	// ========================================================================
	// PDU attributes
	// ========================================================================
	AttrPDUType   = "pdu.type"
	AttrPDULength = "pdu.length"
	AttrSeqNo     = "pdu.seq_no"
	AttrChecksum  = "pdu.checksum"

	// ========================================================================
	// LSDB attributes
	// ========================================================================
	AttrLSAType   = "lsdb.lsa_type"
	AttrLSAID     = "lsdb.lsa_id"
	AttrAdvRouter = "lsdb.adv_router"
	AttrScope     = "lsdb.scope"

	// ========================================================================
	// BGP attributes
	// ========================================================================
	AttrPeerAS  = "bgp.peer_as"
	AttrLocalAS = "bgp.local_as"
	AttrAFISAFI = "bgp.afi_safi"

	// ========================================================================
	// SPF / RIB attributes
	// ========================================================================
	AttrPrefix  = "rib.prefix"
	AttrNexthop = "rib.nexthop"
	AttrMetric  = "rib.metric"

	// ========================================================================
	// Auth attributes
	// ========================================================================
	AttrAuthAlgorithm = "auth.algorithm"
	AttrKeyID         = "auth.key_id"
)

// Span names for protocol engine operations.
// Format: <protocol>.<operation>
const (
	// OSPF spans
	SpanOSPFHello     = "ospf.HELLO"
	SpanOSPFDbDesc    = "ospf.DBDESC"
	SpanOSPFLSRequest = "ospf.LSREQUEST"
	SpanOSPFLSUpdate  = "ospf.LSUPDATE"
	SpanOSPFLSAck     = "ospf.LSACK"
	SpanOSPFSPFRun    = "ospf.spf_run"

	// IS-IS spans
	SpanISISHello  = "isis.IIH"
	SpanISISLSP    = "isis.LSP"
	SpanISISCSNP   = "isis.CSNP"
	SpanISISPSNP   = "isis.PSNP"
	SpanISISSPFRun = "isis.spf_run"

	// BGP spans
	SpanBGPOpen         = "bgp.OPEN"
	SpanBGPUpdate       = "bgp.UPDATE"
	SpanBGPKeepalive    = "bgp.KEEPALIVE"
	SpanBGPNotification = "bgp.NOTIFICATION"
	SpanBGPFSMEvent     = "bgp.fsm_event"

	// Shared infrastructure spans
	SpanLSDBInstall   = "lsdb.install"
	SpanLSDBFlood     = "lsdb.flood"
	SpanLSDBPurge     = "lsdb.purge"
	SpanIbusPublish   = "ibus.publish"
	SpanIbusDeliver   = "ibus.deliver"
	SpanRouteInstall  = "rib.install"
	SpanRouteWithdraw = "rib.withdraw"
)

// Protocol returns an attribute for the protocol name (ospfv2, ospfv3, isis, bgp).
func Protocol(name string) attribute.KeyValue {
	return attribute.String(AttrProtocol, name)
}

// Instance returns an attribute for the protocol instance/VRF name.
func Instance(name string) attribute.KeyValue {
	return attribute.String(AttrInstance, name)
}

// RouterID returns an attribute for the router identifier.
func RouterID(id string) attribute.KeyValue {
	return attribute.String(AttrRouterID, id)
}

// Area returns an attribute for the OSPF area ID.
func Area(id string) attribute.KeyValue {
	return attribute.String(AttrArea, id)
}

// IsisLevel returns an attribute for the IS-IS level (L1, L2).
func IsisLevel(level string) attribute.KeyValue {
	return attribute.String(AttrIsisLevel, level)
}

// Interface returns an attribute for the interface name.
func Interface(name string) attribute.KeyValue {
	return attribute.String(AttrInterface, name)
}

// Neighbor returns an attribute for the neighbor/peer identifier.
func Neighbor(id string) attribute.KeyValue {
	return attribute.String(AttrNeighbor, id)
}

// PDUType returns an attribute for the PDU/packet type name.
func PDUType(t string) attribute.KeyValue {
	return attribute.String(AttrPDUType, t)
}

// PDULength returns an attribute for the PDU length in bytes.
func PDULength(n int) attribute.KeyValue {
	return attribute.Int(AttrPDULength, n)
}

// SeqNo returns an attribute for a sequence number.
func SeqNo(seq uint32) attribute.KeyValue {
	return attribute.Int64(AttrSeqNo, int64(seq))
}

// LSAType returns an attribute for the LSA/LSP type.
func LSAType(t string) attribute.KeyValue {
	return attribute.String(AttrLSAType, t)
}

// LSAID returns an attribute for the LSA ID / LSP ID.
func LSAID(id string) attribute.KeyValue {
	return attribute.String(AttrLSAID, id)
}

// AdvRouter returns an attribute for the advertising router.
func AdvRouter(id string) attribute.KeyValue {
	return attribute.String(AttrAdvRouter, id)
}

// Scope returns an attribute for LSA flooding scope.
func Scope(s string) attribute.KeyValue {
	return attribute.String(AttrScope, s)
}

// PeerAS returns an attribute for the BGP peer AS number.
func PeerAS(asn uint32) attribute.KeyValue {
	return attribute.Int64(AttrPeerAS, int64(asn))
}

// LocalAS returns an attribute for the BGP local AS number.
func LocalAS(asn uint32) attribute.KeyValue {
	return attribute.Int64(AttrLocalAS, int64(asn))
}

// AFISAFI returns an attribute for a BGP address-family identifier pair.
func AFISAFI(afiSafi string) attribute.KeyValue {
	return attribute.String(AttrAFISAFI, afiSafi)
}

// Prefix returns an attribute for a routing prefix.
func Prefix(p string) attribute.KeyValue {
	return attribute.String(AttrPrefix, p)
}

// Nexthop returns an attribute for a nexthop address.
func Nexthop(nh string) attribute.KeyValue {
	return attribute.String(AttrNexthop, nh)
}

// Metric returns an attribute for a route/link metric.
func Metric(m uint32) attribute.KeyValue {
	return attribute.Int64(AttrMetric, int64(m))
}

// AuthAlgorithm returns an attribute for the authentication algorithm name.
func AuthAlgorithm(a string) attribute.KeyValue {
	return attribute.String(AttrAuthAlgorithm, a)
}

// KeyID returns an attribute for the authentication key identifier.
func KeyID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrKeyID, int64(id))
}

// StartPDUSpan starts a span for processing a received or transmitted PDU.
func StartPDUSpan(ctx context.Context, protocol, pduType string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Protocol(protocol),
		PDUType(pduType),
	}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, protocol+"."+pduType, trace.WithAttributes(allAttrs...))
}

// StartLSDBSpan starts a span for an LSDB operation (install, flood, purge).
func StartLSDBSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "lsdb."+operation, trace.WithAttributes(attrs...))
}

// StartSPFSpan starts a span for an SPF computation run.
func StartSPFSpan(ctx context.Context, protocol string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{Protocol(protocol)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, protocol+".spf_run", trace.WithAttributes(allAttrs...))
}

// StartRIBSpan starts a span for a southbound RIB install/withdraw operation.
func StartRIBSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "rib."+operation, trace.WithAttributes(attrs...))
}

// StartProtocolSpan starts a span for a generic protocol engine operation.
func StartProtocolSpan(ctx context.Context, protocol, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{Protocol(protocol)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, protocol+"."+operation, trace.WithAttributes(allAttrs...))
}
