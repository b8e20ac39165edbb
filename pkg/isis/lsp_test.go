package isis

import (
	"testing"
	"time"

	"github.com/routeflow/ribd/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestLSPHeaderRoundTrip(t *testing.T) {
	h := LSPHeader{
		PDULength:         1492,
		RemainingLifetime: 1200,
		LSPID:             LSPID{1, 2, 3, 4, 5, 6, 0, 1},
		SeqNo:             0x00000005,
		Checksum:          0xbeef,
		Flags:             FlagAttachedDefault,
	}
	w := wire.NewWriter(lspHeaderLen)
	EncodeLSPHeader(w, h)
	require.Equal(t, lspHeaderLen, w.Len())

	decoded, err := DecodeLSPHeader(wire.NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, h, decoded)
}

func TestLSPChecksumRoundTrip(t *testing.T) {
	h := LSPHeader{
		PDULength:         lspHeaderLen,
		RemainingLifetime: 1200,
		LSPID:             LSPID{1, 2, 3, 4, 5, 6, 0, 1},
		SeqNo:             1,
	}
	w := wire.NewWriter(lspHeaderLen)
	EncodeLSPHeader(w, h)
	buf := w.Bytes()

	// LSP-ID begins right after PDULength+RemainingLifetime (offset 4).
	const lspIDOffset = 4
	c0, c1 := wire.Fletcher16(buf[lspIDOffset:], 12)
	buf[lspIDOffset+12] = c0
	buf[lspIDOffset+13] = c1

	require.True(t, VerifyLSPChecksum(buf, lspIDOffset))

	// The last byte is the zero Flags byte; flipping it to 0xff would be a
	// change of 255, which a mod-255 Fletcher sum cannot see.
	buf[len(buf)-1] ^= 0x01
	require.False(t, VerifyLSPChecksum(buf, lspIDOffset))
}

func TestPurgeWithPOIInsertsTLVWhenAbsent(t *testing.T) {
	existing := []TLV{{Type: TLVDynamicHostname, Value: []byte("r1")}}
	our := [6]byte{1, 1, 1, 1, 1, 1}
	src := [6]byte{2, 2, 2, 2, 2, 2}

	result := PurgeWithPOI(existing, our, src)
	require.Len(t, result, 1)
	require.Equal(t, TLVPurgeOriginatorID, result[0].Type)

	poi, err := DecodePOI(result[0].Value)
	require.NoError(t, err)
	require.Equal(t, our, poi.OriginatorID)
	require.True(t, poi.HasReceivedFrom)
	require.Equal(t, src, poi.ReceivedFromID)
}

func TestPurgeWithPOILeavesExistingPOIAlone(t *testing.T) {
	poi := PurgeOriginatorIdentification{OriginatorID: [6]byte{9}}
	existing := []TLV{{Type: TLVPurgeOriginatorID, Value: EncodePOI(poi)}}

	result := PurgeWithPOI(existing, [6]byte{1}, [6]byte{2})
	require.Equal(t, existing, result)
}

func TestExtendedISReachRoundTrip(t *testing.T) {
	entries := []ExtendedISReach{
		{NeighborID: LSPID{1, 2, 3, 4, 5, 6, 0, 0}, Metric: 10},
		{NeighborID: LSPID{7, 8, 9, 10, 11, 12, 1, 0}, Metric: 0xffffff},
	}
	encoded := EncodeExtendedISReach(entries)
	decoded, err := DecodeExtendedISReach(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	require.Equal(t, entries[0].NeighborID[:7], decoded[0].NeighborID[:7])
	require.Equal(t, entries[0].Metric, decoded[0].Metric)
	require.Equal(t, entries[1].Metric, decoded[1].Metric)
}

func TestExtendedSeqNumRoundTrip(t *testing.T) {
	encoded := EncodeExtendedSeqNum(ExtendedSeqNum(0x0102030405060708))
	decoded, err := DecodeExtendedSeqNum(encoded)
	require.NoError(t, err)
	require.Equal(t, ExtendedSeqNum(0x0102030405060708), decoded)
}

func TestDecodeExtendedSeqNumRejectsBadLength(t *testing.T) {
	_, err := DecodeExtendedSeqNum([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestCompareSeqNumFallsBackToLegacyWhenDisabled(t *testing.T) {
	oldExt, newExt := ExtendedSeqNum(5), ExtendedSeqNum(1)
	got := CompareSeqNum(ExtendedSeqNumDisabled, 10, 11, &oldExt, &newExt)
	require.Equal(t, 1, got, "disabled mode must ignore the extended values even though they disagree")
}

func TestCompareSeqNumPrefersExtendedWhenBothPresent(t *testing.T) {
	oldExt, newExt := ExtendedSeqNum(100), ExtendedSeqNum(101)
	// Legacy fields disagree (new looks older) but the extended values,
	// which are authoritative once both sides opt in, say new is newer.
	got := CompareSeqNum(ExtendedSeqNumOptional, 0xfffffffe, 1, &oldExt, &newExt)
	require.Equal(t, 1, got)
}

func TestCompareSeqNumFallsBackWhenOnlyOneSideHasExtended(t *testing.T) {
	newExt := ExtendedSeqNum(1)
	got := CompareSeqNum(ExtendedSeqNumOptional, 5, 6, nil, &newExt)
	require.Equal(t, 1, got)
}

func TestNextSeqNumIncrementsNormally(t *testing.T) {
	nextLegacy, nextExt, wrapped := NextSeqNum(ExtendedSeqNumDisabled, 5, 0)
	require.Equal(t, uint32(6), nextLegacy)
	require.Equal(t, ExtendedSeqNum(1), nextExt)
	require.False(t, wrapped)
}

func TestNextSeqNumDisabledSaturatesAtMax(t *testing.T) {
	nextLegacy, _, wrapped := NextSeqNum(ExtendedSeqNumDisabled, legacySeqNumMax, 0)
	require.Equal(t, legacySeqNumMax, nextLegacy, "without extended seqnos the caller must purge/reoriginate instead")
	require.True(t, wrapped)
}

func TestNextSeqNumEnabledWrapsLegacyField(t *testing.T) {
	nextLegacy, nextExt, wrapped := NextSeqNum(ExtendedSeqNumOptional, legacySeqNumMax, 41)
	require.Equal(t, uint32(1), nextLegacy)
	require.Equal(t, ExtendedSeqNum(42), nextExt)
	require.True(t, wrapped)
}

func TestToLSDBEntryCarriesFields(t *testing.T) {
	h := LSPHeader{
		LSPID:             LSPID{1, 2, 3, 4, 5, 6, 0, 3},
		SeqNo:             7,
		Checksum:          0x1234,
		RemainingLifetime: 900,
	}
	now := time.Now()
	entry := h.ToLSDBEntry(Level2, []byte{0xde, 0xad}, 1200, now)
	require.Equal(t, uint32(7), entry.SeqNo)
	require.Equal(t, uint16(0x1234), entry.Checksum)
	require.Equal(t, uint16(900), entry.Lifetime)
	require.Equal(t, []byte{0xde, 0xad}, entry.Raw)
	require.Equal(t, uint8(Level2), entry.Key.Scope)
}
