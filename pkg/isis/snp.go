package isis

import (
	"github.com/routeflow/ribd/internal/wire"
)

// LSPEntry is one CSNP/PSNP summary entry (ISO 10589 §9.10-9.11): enough of
// an LSP's header to decide whether the local copy is stale, missing, or
// ahead, without carrying the LSP body itself.
type LSPEntry struct {
	RemainingLifetime uint16
	LSPID             LSPID
	SeqNo             uint32
	Checksum          uint16
}

const lspEntryLen = 16 // 2+8+4+2

func EncodeLSPEntry(w *wire.Writer, e LSPEntry) {
	w.Uint16(e.RemainingLifetime)
	w.Raw(e.LSPID[:])
	w.Uint32(e.SeqNo)
	w.Uint16(e.Checksum)
}

func DecodeLSPEntry(r *wire.Reader) (LSPEntry, error) {
	var e LSPEntry
	e.RemainingLifetime = r.Uint16()
	copy(e.LSPID[:], r.Bytes(8))
	e.SeqNo = r.Uint32()
	e.Checksum = r.Uint16()
	if r.Err() != nil {
		return e, decodeErr("truncated lsp entry: %v", r.Err())
	}
	return e, nil
}

// CSNP is a Complete Sequence Numbers PDU (ISO 10589 §9.10): the full range
// of LSP IDs known on the circuit, summarized in one or more fragments
// bounded by StartLSPID/EndLSPID.
type CSNP struct {
	SourceID   [7]byte // system-id + circuit-scoped N-selector byte, per ISO 10589 §9.10
	StartLSPID LSPID
	EndLSPID   LSPID
	Entries    []LSPEntry
}

func EncodeCSNPBody(w *wire.Writer, c CSNP) {
	w.Raw(c.SourceID[:])
	w.Raw(c.StartLSPID[:])
	w.Raw(c.EndLSPID[:])
	for _, e := range c.Entries {
		EncodeLSPEntry(w, e)
	}
}

func DecodeCSNPBody(r *wire.Reader) (CSNP, error) {
	var c CSNP
	copy(c.SourceID[:], r.Bytes(7))
	copy(c.StartLSPID[:], r.Bytes(8))
	copy(c.EndLSPID[:], r.Bytes(8))
	if r.Err() != nil {
		return c, decodeErr("truncated csnp fixed fields: %v", r.Err())
	}
	for r.Remaining() >= lspEntryLen {
		e, err := DecodeLSPEntry(r)
		if err != nil {
			return c, err
		}
		c.Entries = append(c.Entries, e)
	}
	return c, nil
}

// PSNP is a Partial Sequence Numbers PDU (ISO 10589 §9.11): either an
// acknowledgment of specific received LSPs (point-to-point) or a request
// for specific LSPs found stale/missing during CSNP comparison.
type PSNP struct {
	SourceID [7]byte
	Entries  []LSPEntry
}

func EncodePSNPBody(w *wire.Writer, p PSNP) {
	w.Raw(p.SourceID[:])
	for _, e := range p.Entries {
		EncodeLSPEntry(w, e)
	}
}

func DecodePSNPBody(r *wire.Reader) (PSNP, error) {
	var p PSNP
	copy(p.SourceID[:], r.Bytes(7))
	if r.Err() != nil {
		return p, decodeErr("truncated psnp fixed fields: %v", r.Err())
	}
	for r.Remaining() >= lspEntryLen {
		e, err := DecodeLSPEntry(r)
		if err != nil {
			return p, err
		}
		p.Entries = append(p.Entries, e)
	}
	return p, nil
}

// CompareAction is the outcome of comparing a received CSNP/PSNP entry
// against the local LSDB copy (ISO 10589 §7.3.15.2).
type CompareAction int

const (
	ActionNone CompareAction = iota
	ActionRequestLSP    // ours is older or missing: send a PSNP request
	ActionSendLSP       // ours is newer: flood our copy back (SRM set)
	ActionSendOurCSNP   // not returned by CompareEntry, which answers ActionNone for a missing local entry whose remote copy is MaxAge/zero
)

// CompareEntry decides what to do with one received summary entry given
// whether a local copy exists and, if so, its sequence number. localSeqNo
// and localExists describe the local LSDB state for the same LSPID.
func CompareEntry(remote LSPEntry, localExists bool, localSeqNo uint32) CompareAction {
	if !localExists {
		if remote.SeqNo == 0 || remote.RemainingLifetime == 0 {
			return ActionNone
		}
		return ActionRequestLSP
	}
	switch {
	case remote.SeqNo > localSeqNo:
		return ActionRequestLSP
	case remote.SeqNo < localSeqNo:
		return ActionSendLSP
	default:
		return ActionNone
	}
}
