// Package ferror implements the categorized error kinds of spec.md §7:
// Decode, Auth, Semantic, LSA, FSM, and Resource. Every error kind carries
// a fixed disposition (discard the packet, reject the adjacency, reset the
// session, ...) so the per-instance dispatch layer (§5, §7) can log and
// count it uniformly without inspecting the underlying cause.
//
// Modeled on the teacher's pkg/metadata/errors package: a small closed
// error-code enum plus a single concrete error type, rather than one
// exported type per failure. Unlike that package (which is store-specific),
// Kind here is the thing every caller actually switches on.
package ferror

import (
	"errors"
	"fmt"
)

// Kind is one of the six error categories of spec.md §7.
type Kind int

const (
	// KindDecode is a structural packet error: bad version, ID length,
	// PDU length mismatch, truncated TLV. Disposition: discard packet.
	KindDecode Kind = iota

	// KindAuth is a key-missing, type-mismatch, MAC-mismatch, or
	// invalid-sequence authentication failure. Disposition: discard.
	KindAuth

	// KindSemantic is an area/circuit-type mismatch, duplicate router-id,
	// or parameter mismatch (hello/dead interval, MTU). Disposition:
	// reject adjacency.
	KindSemantic

	// KindLSA is an invalid checksum/age/sequence or a reserved LSA type
	// on a stub area. Disposition: discard the LSA, not the whole packet.
	KindLSA

	// KindFSM is an event received in an unexpected state. Disposition:
	// OSPF resets the adjacency via SeqNoMismatch/BadLsReq; IS-IS/BGP
	// close the session.
	KindFSM

	// KindResource is a label-allocation or socket-bind failure.
	// Disposition: propagate as a configuration-time rejection.
	KindResource
)

// String returns the notification-point name used for logging and as the
// base of the Prometheus counter name (see pkg/metrics).
func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindAuth:
		return "auth"
	case KindSemantic:
		return "semantic"
	case KindLSA:
		return "lsa"
	case KindFSM:
		return "fsm"
	case KindResource:
		return "resource"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Disposition is what the dispatch layer should do with the PDU/event that
// produced the error, independent of which Kind produced it.
type Disposition int

const (
	// DispositionDiscard drops the offending unit (packet, attribute, or
	// LSA) silently and continues processing.
	DispositionDiscard Disposition = iota

	// DispositionWithdraw treats a BGP UPDATE as withdrawing its NLRIs
	// (RFC 7606 treat-as-withdraw) rather than discarding the session.
	DispositionWithdraw

	// DispositionReset closes the protocol session with a notification.
	DispositionReset

	// DispositionReject rejects the adjacency/transaction outright
	// (semantic mismatches, resource exhaustion at config time).
	DispositionReject
)

// Error is the single concrete error type every ferror constructor
// returns. Op names the operation that failed (e.g. "ospf.decode",
// "isis.auth.verify") for logging; Cause is the underlying error, if any.
type Error struct {
	Kind        Kind
	Disposition Disposition
	Op          string
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error. Most call sites use the per-kind helpers below;
// New is for cases that don't fit the common notification names.
func New(kind Kind, disposition Disposition, op string, cause error) *Error {
	return &Error{Kind: kind, Disposition: disposition, Op: op, Cause: cause}
}

// Decode builds a KindDecode/DispositionDiscard error.
func Decode(op string, cause error) *Error {
	return New(KindDecode, DispositionDiscard, op, cause)
}

// Auth builds a KindAuth/DispositionDiscard error.
func Auth(op string, cause error) *Error {
	return New(KindAuth, DispositionDiscard, op, cause)
}

// Semantic builds a KindSemantic/DispositionReject error.
func Semantic(op string, cause error) *Error {
	return New(KindSemantic, DispositionReject, op, cause)
}

// LSA builds a KindLSA/DispositionDiscard error.
func LSA(op string, cause error) *Error {
	return New(KindLSA, DispositionDiscard, op, cause)
}

// FSMReset builds a KindFSM/DispositionReset error (IS-IS/BGP session
// close, or OSPF's SeqNoMismatch/BadLsReq reset-to-ExStart).
func FSMReset(op string, cause error) *Error {
	return New(KindFSM, DispositionReset, op, cause)
}

// Resource builds a KindResource/DispositionReject error.
func Resource(op string, cause error) *Error {
	return New(KindResource, DispositionReject, op, cause)
}

// Withdraw builds a KindDecode/DispositionWithdraw error, used by the BGP
// attribute codec's RFC 7606 treat-as-withdraw classification.
func Withdraw(op string, cause error) *Error {
	return New(KindDecode, DispositionWithdraw, op, cause)
}

// KindOf reports the Kind of err if it is (or wraps) an *Error, and false
// otherwise — the dispatch layer's single inspection point.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
