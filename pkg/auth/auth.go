// Package auth implements keyed-message authentication shared by the OSPF,
// IS-IS, and BGP wire codecs: clear-text key comparison, HMAC-MD5/SHA digest
// verification, and the per-(peer, PDU-type) sequence-number replay guard.
// Unlike the teacher's SMB session signing, there is no negotiated session
// key here — the key material is a standing keychain configured northbound
// and selected per PDU by key-id, so the shape differs but the HMAC
// zero-then-compute-then-constant-time-compare pattern is the same.
package auth

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"hash"
	"sync/atomic"
	"time"

	"github.com/routeflow/ribd/internal/ferror"
)

// Algorithm identifies a supported authentication algorithm.
type Algorithm string

const (
	AlgorithmCleartext  Algorithm = "cleartext"
	AlgorithmHMACMD5    Algorithm = "hmac-md5"
	AlgorithmHMACSHA1   Algorithm = "hmac-sha1"
	AlgorithmHMACSHA256 Algorithm = "hmac-sha256"
	AlgorithmHMACSHA384 Algorithm = "hmac-sha384"
	AlgorithmHMACSHA512 Algorithm = "hmac-sha512"
)

// DigestSize returns the number of digest bytes the algorithm produces, or 0
// for cleartext (which has no digest, only a shared key compared directly).
func (a Algorithm) DigestSize() int {
	switch a {
	case AlgorithmHMACMD5:
		return md5.Size
	case AlgorithmHMACSHA1:
		return sha1.Size
	case AlgorithmHMACSHA256:
		return sha256.Size
	case AlgorithmHMACSHA384:
		return sha512.Size384
	case AlgorithmHMACSHA512:
		return sha512.Size
	default:
		return 0
	}
}

func (a Algorithm) newHash() func() hash.Hash {
	switch a {
	case AlgorithmHMACMD5:
		return md5.New
	case AlgorithmHMACSHA1:
		return sha1.New
	case AlgorithmHMACSHA256:
		return sha256.New
	case AlgorithmHMACSHA384:
		return sha512.New384
	case AlgorithmHMACSHA512:
		return sha512.New
	default:
		return nil
	}
}

// Errors returned by Verify and the sequence-number guard. These are
// ferror.KindAuth values (§7): all are discard-and-count, never a crash.
// They are package-level singletons, so errors.Is comparisons against them
// still work exactly like the plain sentinel errors they replace.
var (
	ErrKeyNotFound    = ferror.Auth("auth.verify", errors.New("key not found for key-id"))
	ErrNoAcceptedKey  = ferror.Auth("auth.verify", errors.New("no acceptable key installed"))
	ErrDigestMismatch = ferror.Auth("auth.verify", errors.New("digest mismatch"))
	ErrBadSeqno       = ferror.Auth("auth.seqno", errors.New("sequence number not strictly increasing"))
)

// Key is one entry of a keychain: an algorithm, a key-id used to select it
// on the wire, and the secret octet string. SendLifetime/AcceptLifetime gate
// which key in a keychain is eligible at a given instant; a zero time means
// unbounded.
type Key struct {
	ID        uint32
	Algorithm Algorithm
	Secret    []byte

	SendLifetimeStart time.Time
	SendLifetimeEnd   time.Time
	AcceptLifetimeStart time.Time
	AcceptLifetimeEnd   time.Time
}

func inWindow(now, start, end time.Time) bool {
	if !start.IsZero() && now.Before(start) {
		return false
	}
	if !end.IsZero() && now.After(end) {
		return false
	}
	return true
}

// AcceptsAt reports whether this key may be used to validate a received PDU
// at the given instant.
func (k *Key) AcceptsAt(now time.Time) bool {
	return inWindow(now, k.AcceptLifetimeStart, k.AcceptLifetimeEnd)
}

// SendsAt reports whether this key may be used to sign an outbound PDU at
// the given instant.
func (k *Key) SendsAt(now time.Time) bool {
	return inWindow(now, k.SendLifetimeStart, k.SendLifetimeEnd)
}

// Keychain is an ordered, immutable snapshot of keys distributed over the
// ibus on KeychainUpdate events (§5 "shared resources are immutable
// snapshots"). Readers never observe a half-updated keychain.
type Keychain struct {
	Name string
	Keys []Key
}

// ByID returns the key with the given key-id, or nil.
func (kc *Keychain) ByID(id uint32) *Key {
	if kc == nil {
		return nil
	}
	for i := range kc.Keys {
		if kc.Keys[i].ID == id {
			return &kc.Keys[i]
		}
	}
	return nil
}

// ActiveSendKey returns the most-recently-installed key whose send lifetime
// covers now. Ties (equal start) prefer the higher key-id, matching the
// "most-recently-installed acceptable key" selection rule in §6.
func (kc *Keychain) ActiveSendKey(now time.Time) *Key {
	var best *Key
	for i := range kc.Keys {
		k := &kc.Keys[i]
		if !k.SendsAt(now) {
			continue
		}
		if best == nil || k.SendLifetimeStart.After(best.SendLifetimeStart) ||
			(k.SendLifetimeStart.Equal(best.SendLifetimeStart) && k.ID > best.ID) {
			best = k
		}
	}
	return best
}

// VerifyHMAC zeroes the digest bytes within buf at [digestOffset,
// digestOffset+len(digest)), computes the expected digest over the
// resulting buffer with the given key, and constant-time compares it
// against the digest that was carried on the wire. buf is not mutated; a
// scratch copy is made internally, mirroring the teacher's Sign/Verify
// split in its SMB2 signing package.
func VerifyHMAC(alg Algorithm, key []byte, buf []byte, digestOffset int, digest []byte) error {
	newHash := alg.newHash()
	if newHash == nil {
		return ErrDigestMismatch
	}
	size := alg.DigestSize()
	if len(digest) != size || digestOffset < 0 || digestOffset+size > len(buf) {
		return ErrDigestMismatch
	}
	scratch := make([]byte, len(buf))
	copy(scratch, buf)
	for i := 0; i < size; i++ {
		scratch[digestOffset+i] = 0
	}
	mac := hmac.New(newHash, key)
	mac.Write(scratch)
	expected := mac.Sum(nil)
	if subtle.ConstantTimeCompare(expected, digest) != 1 {
		return ErrDigestMismatch
	}
	return nil
}

// ComputeHMAC returns the digest to embed on the wire, computed the same
// way VerifyHMAC validates it: over buf with the digest field zeroed.
func ComputeHMAC(alg Algorithm, key []byte, buf []byte, digestOffset int) []byte {
	newHash := alg.newHash()
	if newHash == nil {
		return nil
	}
	size := alg.DigestSize()
	scratch := make([]byte, len(buf))
	copy(scratch, buf)
	for i := 0; i < size && digestOffset+i < len(scratch); i++ {
		scratch[digestOffset+i] = 0
	}
	mac := hmac.New(newHash, key)
	mac.Write(scratch)
	return mac.Sum(nil)
}

// VerifyCleartext does a constant-time comparison of the cleartext key
// carried in the PDU against the configured secret.
func VerifyCleartext(secret, carried []byte) error {
	if len(secret) != len(carried) {
		return ErrDigestMismatch
	}
	if subtle.ConstantTimeCompare(secret, carried) != 1 {
		return ErrDigestMismatch
	}
	return nil
}

// PDUType distinguishes the per-type sequence-number space a peer's replay
// guard tracks (RFC 4222 priority ordering for OSPFv2; a single space
// suffices for IS-IS and OSPFv3 strict mode).
type PDUType int

const (
	PDUHello PDUType = iota
	PDUDBDesc
	PDULSRequest
	PDULSUpdate
	PDULSAck
	PDUISIS
	PDUBGPUpdate
)

// SeqnoGuard tracks, per (peer, PDU type), the last accepted sequence
// number and enforces the monotonicity invariant from §8: "for all peers P
// and PDU types T, the accepted auth sequence is strictly monotonic over
// time."
type SeqnoGuard struct {
	strict map[PDUType]uint64
	loose  bool
}

// NewSeqnoGuard returns a guard. When loose is true (OSPFv2 non-strict
// mode), a received seqno equal to the last accepted one is tolerated;
// otherwise it must be strictly greater.
func NewSeqnoGuard(loose bool) *SeqnoGuard {
	return &SeqnoGuard{strict: make(map[PDUType]uint64), loose: loose}
}

// Check validates seqno against the last accepted value for pduType and, on
// success, records it as the new last-accepted value.
func (g *SeqnoGuard) Check(pduType PDUType, seqno uint64) error {
	last, ok := g.strict[pduType]
	if ok {
		if g.loose {
			if seqno < last {
				return ErrBadSeqno
			}
		} else if seqno <= last {
			return ErrBadSeqno
		}
	}
	g.strict[pduType] = seqno
	return nil
}

// Reset clears all tracked sequence numbers, used when an adjacency is torn
// down and subsequently re-established.
func (g *SeqnoGuard) Reset() {
	g.strict = make(map[PDUType]uint64)
}

// SendCounter is a per-outbound-PDU-type atomic counter incremented on
// every send, never reset while a session is up, as required by §5
// ("Per-send authentication sequence number").
type SendCounter struct {
	n atomic.Uint64
}

// Next increments and returns the next sequence number to embed on the wire.
func (c *SendCounter) Next() uint64 {
	return c.n.Add(1)
}
