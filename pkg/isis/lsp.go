package isis

import (
	"time"

	"github.com/routeflow/ribd/internal/wire"
	"github.com/routeflow/ribd/pkg/lsdb"
)

// LSPID is the 8-byte composite key: 6-byte system-id + 1-byte pseudonode
// id + 1-byte fragment number (ISO 10589 §9.5).
type LSPID [8]byte

func (id LSPID) SystemID() [6]byte {
	var s [6]byte
	copy(s[:], id[:6])
	return s
}

func (id LSPID) PseudonodeID() byte { return id[6] }
func (id LSPID) FragmentNumber() byte { return id[7] }

// LSPHeader is the LSP-specific fixed fields following the common header
// (ISO 10589 §9.5): PDU length, remaining lifetime, LSP ID, sequence
// number, checksum, and the P/ATT/OL/IS-type flags byte.
type LSPHeader struct {
	PDULength        uint16
	RemainingLifetime uint16
	LSPID            LSPID
	SeqNo            uint32
	Checksum         uint16
	Flags            uint8
}

const (
	FlagPartitionRepair uint8 = 1 << 7
	FlagAttachedDefault uint8 = 1 << 3
	FlagOverload        uint8 = 1 << 2
)

const lspHeaderLen = 19 // 2+2+8+4+2+1

func EncodeLSPHeader(w *wire.Writer, h LSPHeader) {
	w.Uint16(h.PDULength)
	w.Uint16(h.RemainingLifetime)
	w.Raw(h.LSPID[:])
	w.Uint32(h.SeqNo)
	w.Uint16(h.Checksum)
	w.Uint8(h.Flags)
}

func DecodeLSPHeader(r *wire.Reader) (LSPHeader, error) {
	var h LSPHeader
	h.PDULength = r.Uint16()
	h.RemainingLifetime = r.Uint16()
	copy(h.LSPID[:], r.Bytes(8))
	h.SeqNo = r.Uint32()
	h.Checksum = r.Uint16()
	h.Flags = r.Uint8()
	if r.Err() != nil {
		return h, decodeErr("truncated lsp header: %v", r.Err())
	}
	return h, nil
}

// ComputeLSPChecksum computes the ISO 8473 Fletcher checksum over the LSP
// body starting at the LSP-ID field (i.e. excluding the common header,
// PDU length, and remaining-lifetime, all of which mutate independently of
// content), with Checksum itself zeroed, per §4.1 ("for IS-IS, ... with
// Checksum and Remaining-Lifetime also zeroed").
func ComputeLSPChecksum(fullEncoded []byte, lspIDOffset int) (uint16, error) {
	region := fullEncoded[lspIDOffset:]
	// Checksum sits 12 bytes into the LSP-ID-relative region (8 id + 4 seqno).
	c0, c1 := wire.Fletcher16(region, 12)
	return uint16(c0)<<8 | uint16(c1), nil
}

func VerifyLSPChecksum(fullEncoded []byte, lspIDOffset int) bool {
	return wire.VerifyFletcher16(fullEncoded[lspIDOffset:], 12)
}

// ToLSDBKey projects an LSPID into the shared lsdb.Key, scoped by level.
func (h LSPHeader) ToLSDBKey(level Level) lsdb.Key {
	var k lsdb.Key
	k.Scope = uint8(level)
	k.Type = uint16(PDUL1LSP) // type distinguishes level via Scope; LSP has one logical "type"
	sys := h.LSPID.SystemID()
	copy(k.AdvRouter[:], sys[:])
	k.ID = h.LSPID
	return k
}

// ToLSDBEntry wraps an encoded LSP into an lsdb.LSA for storage in the
// shared Database, reusing the same age/sequence/checksum machinery as
// OSPF.
func (h LSPHeader) ToLSDBEntry(level Level, raw []byte, maxAge uint16, baseTime time.Time) *lsdb.LSA {
	return &lsdb.LSA{
		Key:      h.ToLSDBKey(level),
		SeqNo:    h.SeqNo,
		Checksum: h.Checksum,
		Lifetime: h.RemainingLifetime,
		MaxAge:   maxAge,
		BaseTime: baseTime,
		Raw:      raw,
	}
}

// PurgeWithPOI implements scenario 2 from §8: purging a received LSP with
// remaining lifetime 0 and no POI TLV, when purge-originator is enabled.
// It strips all TLVs except the header's implicit ones, inserts a POI TLV
// naming our own system-id and the system-id of the adjacency the LSP
// arrived on, and returns the TLV stream to re-encode and re-authenticate.
func PurgeWithPOI(existingTLVs []TLV, ourSystemID, sourceAdjSystemID [6]byte) []TLV {
	if FindTLV(existingTLVs, TLVPurgeOriginatorID) != nil {
		// Already carries a POI TLV (e.g. the originator itself purged it);
		// leave it untouched.
		return existingTLVs
	}
	poi := PurgeOriginatorIdentification{
		OriginatorID:    ourSystemID,
		ReceivedFromID:  sourceAdjSystemID,
		HasReceivedFrom: true,
	}
	return []TLV{{Type: TLVPurgeOriginatorID, Value: EncodePOI(poi)}}
}

// ExtendedISReach is one RFC 5305 extended IS reachability sub-TLV-bearing
// neighbor entry: neighbor system-id (+pseudonode), 24-bit wide metric.
type ExtendedISReach struct {
	NeighborID LSPID // pseudonode byte 0 for a real neighbor, non-zero for a LAN pseudonode
	Metric     uint32 // 24-bit; top byte unused
}

func EncodeExtendedISReach(entries []ExtendedISReach) []byte {
	w := wire.NewWriter(11 * len(entries))
	for _, e := range entries {
		w.Raw(e.NeighborID[:7])
		w.Uint8(byte(e.Metric >> 16))
		w.Uint8(byte(e.Metric >> 8))
		w.Uint8(byte(e.Metric))
		w.Uint8(0) // sub-TLV length, none carried
	}
	return w.Bytes()
}

// ExtendedSeqNumMode selects how an instance treats the optional 64-bit
// extended sequence number TLV (draft-ietf-lsr-isis-extended-sequence-no),
// an opt-in feature since a peer running plain ISO 10589 neither emits nor
// understands it.
type ExtendedSeqNumMode uint8

const (
	// ExtendedSeqNumDisabled never attaches or consults the TLV; LSP
	// freshness is decided by the legacy 32-bit SeqNo alone, and a
	// sequence number approaching the legacy maximum is recovered by the
	// purge/reoriginate cycle of ISO 10589 §7.3.16.4.
	ExtendedSeqNumDisabled ExtendedSeqNumMode = iota
	// ExtendedSeqNumOptional attaches the TLV to self-originated LSPs and
	// consults it on received LSPs that carry one, but still accepts LSPs
	// from peers that don't.
	ExtendedSeqNumOptional
	// ExtendedSeqNumRequired additionally rejects, once a peer has been
	// seen using the TLV, a subsequent LSP from that same peer omitting
	// it (a regression a misconfiguration or downgrade could otherwise
	// mask).
	ExtendedSeqNumRequired
)

// ExtendedSeqNum is the TLV's 64-bit value: a second, non-wrapping sequence
// number layered over LSPHeader.SeqNo so a pair of routers that both opt in
// can keep incrementing past the legacy field's wraparound without falling
// back to the purge-then-reoriginate recovery ISO 10589 defines for it.
type ExtendedSeqNum uint64

func EncodeExtendedSeqNum(seq ExtendedSeqNum) []byte {
	w := wire.NewWriter(8)
	w.Uint64(uint64(seq))
	return w.Bytes()
}

func DecodeExtendedSeqNum(value []byte) (ExtendedSeqNum, error) {
	r := wire.NewReader(value)
	seq := r.Uint64()
	if r.Err() != nil {
		return 0, decodeErr("truncated extended seqno tlv")
	}
	if r.Remaining() != 0 {
		return 0, decodeErr("bad extended seqno tlv length %d", len(value))
	}
	return ExtendedSeqNum(seq), nil
}

// legacySeqNumMax is the highest value LSPHeader.SeqNo can hold before it
// must wrap.
const legacySeqNumMax uint32 = 0xffffffff

// CompareSeqNum orders an existing LSP observation (old) against an
// incoming one (new) for the same LSPID, preferring the extended sequence
// number when mode allows it and both sides supplied one; otherwise it
// falls back to a plain comparison of the legacy 32-bit field. Returns >0
// if new is more recent, <0 if old is more recent, 0 if equal.
func CompareSeqNum(mode ExtendedSeqNumMode, oldSeq, newSeq uint32, oldExt, newExt *ExtendedSeqNum) int {
	if mode != ExtendedSeqNumDisabled && oldExt != nil && newExt != nil {
		switch {
		case *newExt > *oldExt:
			return 1
		case *newExt < *oldExt:
			return -1
		default:
			return 0
		}
	}
	switch {
	case newSeq > oldSeq:
		return 1
	case newSeq < oldSeq:
		return -1
	default:
		return 0
	}
}

// NextSeqNum computes the pair of sequence numbers to stamp on the next
// reoriginated fragment of a self-originated LSP. With extended sequence
// numbers disabled, a legacy field already at legacySeqNumMax cannot be
// incremented further here; the caller must instead purge the LSP and wait
// out ISO 10589's ZeroAgeLifetime before reoriginating from 1. With them
// enabled, the legacy field is allowed to wrap straight back to 1 since the
// ever-increasing extended field remains authoritative for freshness.
func NextSeqNum(mode ExtendedSeqNumMode, curLegacy uint32, curExt ExtendedSeqNum) (nextLegacy uint32, nextExt ExtendedSeqNum, wrapped bool) {
	nextExt = curExt + 1
	if curLegacy >= legacySeqNumMax {
		if mode == ExtendedSeqNumDisabled {
			return legacySeqNumMax, nextExt, true
		}
		return 1, nextExt, true
	}
	return curLegacy + 1, nextExt, false
}

func DecodeExtendedISReach(value []byte) ([]ExtendedISReach, error) {
	var out []ExtendedISReach
	r := wire.NewReader(value)
	for r.Remaining() >= 11 {
		var e ExtendedISReach
		copy(e.NeighborID[:], r.Bytes(7))
		b0, b1, b2 := r.Uint8(), r.Uint8(), r.Uint8()
		e.Metric = uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)
		subLen := r.Uint8()
		r.Skip(int(subLen))
		out = append(out, e)
	}
	if r.Err() != nil {
		return nil, decodeErr("truncated extended is reach: %v", r.Err())
	}
	return out, nil
}
