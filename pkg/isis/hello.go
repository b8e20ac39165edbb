package isis

import (
	"github.com/routeflow/ribd/internal/wire"
)

// LANHello is the fixed-field portion of an L1/L2 LAN IIH PDU (ISO 10589
// §9.6): circuit type, source system-id, holding time, PDU length, LAN
// priority, and the DIS's LAN-ID (system-id + pseudonode byte).
type LANHello struct {
	CircuitType uint8 // low 2 bits: 1=L1, 2=L2, 3=L1L2
	SourceID    [6]byte
	HoldingTime uint16
	PDULength   uint16
	Priority    uint8 // low 7 bits; high bit reserved
	LANID       LSPID // DIS system-id + pseudonode byte (ID length + 1 bytes, trailing byte unused here)
	TLVs        []TLV
}

const lanHelloFixedLen = 1 + 6 + 2 + 2 + 1 + 7 // = 19

func EncodeLANHello(h LANHello) []byte {
	w := wire.NewWriter(lanHelloFixedLen + 64)
	w.Uint8(h.CircuitType)
	w.Raw(h.SourceID[:])
	w.Uint16(h.HoldingTime)
	w.Uint16(h.PDULength)
	w.Uint8(h.Priority & 0x7f)
	w.Raw(h.LANID[:7])
	EncodeTLVs(w, h.TLVs)
	return w.Bytes()
}

func DecodeLANHello(body []byte) (LANHello, error) {
	var h LANHello
	r := wire.NewReader(body)
	h.CircuitType = r.Uint8()
	copy(h.SourceID[:], r.Bytes(6))
	h.HoldingTime = r.Uint16()
	h.PDULength = r.Uint16()
	h.Priority = r.Uint8() & 0x7f
	copy(h.LANID[:7], r.Bytes(7))
	if r.Err() != nil {
		return h, decodeErr("truncated lan hello fixed fields: %v", r.Err())
	}
	tlvs, err := DecodeTLVs(r)
	if err != nil {
		return h, err
	}
	h.TLVs = tlvs
	return h, nil
}

// P2PHello is the fixed-field portion of a point-to-point IIH PDU (ISO
// 10589 §9.7): no LAN priority/DIS fields, but a local circuit ID used to
// disambiguate multiple circuits to the same neighbor.
type P2PHello struct {
	CircuitType uint8
	SourceID    [6]byte
	HoldingTime uint16
	PDULength   uint16
	LocalCircuitID uint8
	TLVs        []TLV
}

const p2pHelloFixedLen = 1 + 6 + 2 + 2 + 1 // = 12

func EncodeP2PHello(h P2PHello) []byte {
	w := wire.NewWriter(p2pHelloFixedLen + 64)
	w.Uint8(h.CircuitType)
	w.Raw(h.SourceID[:])
	w.Uint16(h.HoldingTime)
	w.Uint16(h.PDULength)
	w.Uint8(h.LocalCircuitID)
	EncodeTLVs(w, h.TLVs)
	return w.Bytes()
}

func DecodeP2PHello(body []byte) (P2PHello, error) {
	var h P2PHello
	r := wire.NewReader(body)
	h.CircuitType = r.Uint8()
	copy(h.SourceID[:], r.Bytes(6))
	h.HoldingTime = r.Uint16()
	h.PDULength = r.Uint16()
	h.LocalCircuitID = r.Uint8()
	if r.Err() != nil {
		return h, decodeErr("truncated p2p hello fixed fields: %v", r.Err())
	}
	tlvs, err := DecodeTLVs(r)
	if err != nil {
		return h, err
	}
	h.TLVs = tlvs
	return h, nil
}

// ThreeWayAdjacencyTLV is the RFC 5303 TLV carried in point-to-point Hellos
// to disambiguate adjacency state without relying on LAN-style neighbor
// listing.
type ThreeWayAdjacencyTLV struct {
	State             ThreeWayState
	ExtendedLocalCircuitID uint32
	NeighborSystemID  [6]byte
	NeighborExtendedCircuitID uint32
	HasNeighbor       bool
}

func EncodeThreeWayAdjacencyTLV(t ThreeWayAdjacencyTLV) []byte {
	w := wire.NewWriter(5 + 10)
	w.Uint8(uint8(t.State))
	w.Uint32(t.ExtendedLocalCircuitID)
	if t.HasNeighbor {
		w.Raw(t.NeighborSystemID[:])
		w.Uint32(t.NeighborExtendedCircuitID)
	}
	return w.Bytes()
}

func DecodeThreeWayAdjacencyTLV(value []byte) (ThreeWayAdjacencyTLV, error) {
	var t ThreeWayAdjacencyTLV
	r := wire.NewReader(value)
	t.State = ThreeWayState(r.Uint8())
	t.ExtendedLocalCircuitID = r.Uint32()
	if r.Err() != nil {
		return t, decodeErr("truncated three-way adjacency tlv: %v", r.Err())
	}
	if r.Remaining() >= 10 {
		t.HasNeighbor = true
		copy(t.NeighborSystemID[:], r.Bytes(6))
		t.NeighborExtendedCircuitID = r.Uint32()
	}
	return t, nil
}

// neighborsListUs reports whether any IS Neighbors TLV in tlvs lists
// ourMAC, the LAN-Hello equivalent of the point-to-point three-way TLV's
// "peer reports us as" signal (ISO 10589 §8.2.4.2).
func neighborsListUs(tlvs []TLV, ourMAC [6]byte) bool {
	for _, t := range tlvs {
		if t.Type != TLVIsNeighbors {
			continue
		}
		for off := 0; off+6 <= len(t.Value); off += 6 {
			var mac [6]byte
			copy(mac[:], t.Value[off:off+6])
			if mac == ourMAC {
				return true
			}
		}
	}
	return false
}
