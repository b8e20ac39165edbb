// Package lsdb implements the link-state database shared by the OSPF and
// IS-IS engines: keyed storage of link-state advertisements with
// sequence-number/checksum/age bookkeeping, the MaxAge sweep, refresh
// scheduling, and min-arrival throttling (§4.2). Per §5's single-threaded
// per-instance model, an Database is not safe for concurrent use from more
// than one goroutine — each protocol instance owns exactly one and mutates
// it only from its own event-processing loop.
package lsdb

import (
	"sort"
	"time"
)

// Flag is a bitmask of per-entry LSDB flags.
type Flag uint8

const (
	FlagReceived Flag = 1 << iota
	FlagSelfOriginated
	FlagPurged
)

// Key uniquely identifies an LSA/LSP: (scope, type, advertising router, id).
// AdvRouter and ID are fixed-size byte arrays so the same key type serves
// OSPF (4-byte router-id / LSA-id) and IS-IS (6-byte system-id + 1-byte
// pseudonode + 1-byte fragment packed into ID) without an interface
// indirection in the hot path.
type Key struct {
	Scope     uint8
	Type      uint16
	AdvRouter [8]byte
	ID        [8]byte
}

// Less defines the total order used for range scans (CSNP/summary
// generation): scope, then type, then advertising router, then id.
func (k Key) Less(o Key) bool {
	if k.Scope != o.Scope {
		return k.Scope < o.Scope
	}
	if k.Type != o.Type {
		return k.Type < o.Type
	}
	if k.AdvRouter != o.AdvRouter {
		return lessBytes(k.AdvRouter[:], o.AdvRouter[:])
	}
	return lessBytes(k.ID[:], o.ID[:])
}

func lessBytes(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// LSA is the stored advertisement payload. The raw encoded buffer is
// retained so re-flooding replays the bytes bit-exactly; the Database never
// writes to Raw. Flush only resets the remaining lifetime, and re-encoding
// a purged LSA (fresh checksum/authentication digest) is left to the caller.
type LSA struct {
	Key       Key
	SeqNo     uint32
	Checksum  uint16
	Lifetime  uint16 // remaining lifetime in seconds as of BaseTime
	MaxAge    uint16 // protocol MaxAge constant (3600 OSPF; configurable IS-IS)
	BaseTime  time.Time
	Raw       []byte
}

// CurrentAge returns the remaining lifetime as of now, clamped to
// [0, MaxAge].
func (l *LSA) CurrentAge(now time.Time) uint16 {
	elapsed := int64(now.Sub(l.BaseTime) / time.Second)
	age := int64(l.Lifetime) - elapsed
	if age <= 0 {
		return 0
	}
	if age > int64(l.MaxAge) {
		return l.MaxAge
	}
	return uint16(age)
}

// IsMaxAge reports whether the LSA's remaining lifetime has reached zero as
// of now.
func (l *LSA) IsMaxAge(now time.Time) bool {
	return l.CurrentAge(now) == 0
}

// SetRemainingLifetime is the one defined mutation on a stored raw buffer:
// it updates Lifetime and resets BaseTime so CurrentAge is computed afresh,
// without touching Raw's body bytes (callers needing a different body must
// re-encode via Flush).
func (l *LSA) SetRemainingLifetime(lifetime uint16, now time.Time) {
	l.Lifetime = lifetime
	l.BaseTime = now
}

// Entry is one LSDB-owned record: the LSA plus bookkeeping flags and a
// refresh-timer handle. Floods take short-lived references to the LSA
// itself (never to the Entry), per the ownership note in §3.
type Entry struct {
	LSA   *LSA
	Flags Flag

	refreshTimer Timer
	sweepIndex   int // index into the MaxAge sweep list; -1 when absent
}

func (e *Entry) HasFlag(f Flag) bool { return e.Flags&f != 0 }

// Timer abstracts a cancellable timer handle so the LSDB doesn't depend on
// a particular scheduler; the protocol engine supplies an implementation
// wrapping time.AfterFunc or its own event-loop timer wheel.
type Timer interface {
	Stop() bool
}

// noopTimer satisfies Timer when no timer has been armed yet.
type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

// Compare orders two LSA instances of the same key per §4.2: higher
// sequence number wins; if equal, and exactly one is MaxAge, the MaxAge one
// is "more recent"; if the checksums also match, the two are equal (0);
// if the checksums differ and the ages are within 15s of each other, treat
// as equal (0); otherwise the one with lower age (more remaining lifetime)
// wins. Returns >0 if a is more recent than b, <0 if b is more recent, 0 if
// equal.
func Compare(a, b *LSA, now time.Time) int {
	if a.SeqNo != b.SeqNo {
		if a.SeqNo > b.SeqNo {
			return 1
		}
		return -1
	}
	aMax, bMax := a.IsMaxAge(now), b.IsMaxAge(now)
	if aMax != bMax {
		if aMax {
			return 1
		}
		return -1
	}
	if a.Checksum != b.Checksum {
		aAge, bAge := int(a.CurrentAge(now)), int(b.CurrentAge(now))
		diff := aAge - bAge
		if diff < 0 {
			diff = -diff
		}
		if diff <= 15 {
			return 0
		}
		// CurrentAge is remaining lifetime: the larger value is the younger copy.
		if aAge > bAge {
			return 1
		}
		return -1
	}
	return 0
}

// ReoriginateFunc is invoked by MaxAgeSweep when a self-originated entry
// whose sequence number has wrapped to the maximum value needs to be
// reoriginated from the initial sequence number (§4.2).
type ReoriginateFunc func(key Key)

// Database holds all LSAs for one protocol instance (OSPF area/AS or IS-IS
// level), indexed by key with a secondary index by type; lookups by
// (type, advRouter) and range scans filter over those maps.
type Database struct {
	entries map[Key]*Entry
	byType  map[uint16]map[Key]*Entry

	minArrival time.Duration
	lastUpdate map[Key]time.Time
	pending    map[Key]func()

	sweep []*Entry

	now func() time.Time
}

// New returns an empty Database. minArrival is the MinLSArrival throttle
// (~1s per §4.2); nowFn lets tests and the event loop supply a controllable
// clock.
func New(minArrival time.Duration, nowFn func() time.Time) *Database {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Database{
		entries:    make(map[Key]*Entry),
		byType:     make(map[uint16]map[Key]*Entry),
		minArrival: minArrival,
		lastUpdate: make(map[Key]time.Time),
		pending:    make(map[Key]func()),
		now:        nowFn,
	}
}

// Lookup returns the entry for key, or nil.
func (d *Database) Lookup(key Key) *Entry {
	return d.entries[key]
}

// Throttled reports whether an install for key arriving right now would be
// subject to MinLSArrival throttling, and if so records fire as the
// deferred origination to run once the window expires (caller is
// responsible for actually scheduling the callback; Database only tracks
// whether one is pending via HasPending/TakePending).
func (d *Database) Throttled(key Key, fire func()) bool {
	last, ok := d.lastUpdate[key]
	if !ok {
		return false
	}
	if d.now().Sub(last) >= d.minArrival {
		return false
	}
	if fire != nil {
		d.pending[key] = fire
	}
	return true
}

// TakePending returns and clears a deferred origination queued by
// Throttled, or nil if none is pending.
func (d *Database) TakePending(key Key) func() {
	fn := d.pending[key]
	delete(d.pending, key)
	return fn
}

// Install replaces any existing entry with the same key and updates
// secondary indexes. The caller must already have applied MinLSArrival
// throttling (via Throttled) and checksum/sequence validation before
// calling. selfOriginated marks the entry's flag and, when true and the LSA
// is not MaxAge, arms a refresh timer via armRefresh at ~0.8*MaxAge.
func (d *Database) Install(lsa *LSA, received, selfOriginated bool, armRefresh func(key Key, delay time.Duration) Timer) *Entry {
	now := d.now()
	d.lastUpdate[lsa.Key] = now

	if old := d.entries[lsa.Key]; old != nil {
		d.removeFromSweep(old)
		if old.refreshTimer != nil {
			old.refreshTimer.Stop()
		}
	}

	e := &Entry{LSA: lsa, sweepIndex: -1, refreshTimer: noopTimer{}}
	if received {
		e.Flags |= FlagReceived
	}
	if selfOriginated {
		e.Flags |= FlagSelfOriginated
	}

	d.entries[lsa.Key] = e
	if d.byType[lsa.Key.Type] == nil {
		d.byType[lsa.Key.Type] = make(map[Key]*Entry)
	}
	d.byType[lsa.Key.Type][lsa.Key] = e

	if lsa.IsMaxAge(now) {
		d.addToSweep(e)
	} else if selfOriginated && armRefresh != nil {
		refreshAt := time.Duration(float64(lsa.MaxAge)*0.8) * time.Second
		e.refreshTimer = armRefresh(lsa.Key, refreshAt)
	}
	return e
}

func (d *Database) addToSweep(e *Entry) {
	if e.sweepIndex >= 0 {
		return
	}
	e.sweepIndex = len(d.sweep)
	d.sweep = append(d.sweep, e)
}

func (d *Database) removeFromSweep(e *Entry) {
	if e.sweepIndex < 0 {
		return
	}
	last := len(d.sweep) - 1
	d.sweep[e.sweepIndex] = d.sweep[last]
	d.sweep[e.sweepIndex].sweepIndex = e.sweepIndex
	d.sweep = d.sweep[:last]
	e.sweepIndex = -1
}

// OnPeerLists reports, for a key pending removal, whether it is still held
// on some peer's retransmission list; the caller (flooding engine) supplies
// this check since the LSDB itself does not track per-peer lists.
type OnPeerLists func(key Key) bool

// MaxAgeSweep deletes entries whose current age has reached zero and which
// appear on no peer retransmission list (per onPeerList), and invokes
// reoriginate for any self-originated entry whose sequence number has
// wrapped to the maximum (0x7FFFFFFF) so a fresh instance can restart from
// the initial sequence number.
func (d *Database) MaxAgeSweep(onPeerList OnPeerLists, reoriginate ReoriginateFunc) {
	now := d.now()
	remaining := d.sweep[:0]
	for _, e := range d.sweep {
		if !e.LSA.IsMaxAge(now) {
			remaining = append(remaining, e)
			e.sweepIndex = len(remaining) - 1
			continue
		}
		if onPeerList != nil && onPeerList(e.LSA.Key) {
			remaining = append(remaining, e)
			e.sweepIndex = len(remaining) - 1
			continue
		}
		if e.HasFlag(FlagSelfOriginated) && e.LSA.SeqNo == MaxSeqNo && reoriginate != nil {
			reoriginate(e.LSA.Key)
		}
		e.sweepIndex = -1
		delete(d.entries, e.LSA.Key)
		if m := d.byType[e.LSA.Key.Type]; m != nil {
			delete(m, e.LSA.Key)
		}
	}
	d.sweep = remaining
}

// MaxSeqNo is the highest valid LSA/LSP sequence number (0x7FFFFFFF); one
// past this wraps and requires flush-then-reoriginate at InitialSeqNo.
const MaxSeqNo = 0x7FFFFFFF

// InitialSeqNo is the sequence number a freshly (re)originated LSA starts
// from after a wrap.
const InitialSeqNo = 0x80000001

// Flush forces an entry's remaining lifetime to zero, marks it Purged, and
// returns the entry so the caller can re-encode (stripping TLVs except
// header, optionally inserting a Purge-Originator-Identification TLV) and
// flood it. Flush on an already-purged entry is a no-op, satisfying the
// idempotence property in §8.
func (d *Database) Flush(key Key) *Entry {
	e := d.entries[key]
	if e == nil || e.HasFlag(FlagPurged) {
		return e
	}
	e.LSA.SetRemainingLifetime(0, d.now())
	e.Flags |= FlagPurged
	d.addToSweep(e)
	return e
}

// IterByType returns all entries of a given LSA/LSP type, in key order.
func (d *Database) IterByType(lsaType uint16) []*Entry {
	m := d.byType[lsaType]
	out := make([]*Entry, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LSA.Key.Less(out[j].LSA.Key) })
	return out
}

// IterByTypeAdvRouter returns all entries of a given type originated by a
// given router, in key order.
func (d *Database) IterByTypeAdvRouter(lsaType uint16, advRouter [8]byte) []*Entry {
	var out []*Entry
	for _, e := range d.byType[lsaType] {
		if e.LSA.Key.AdvRouter == advRouter {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LSA.Key.Less(out[j].LSA.Key) })
	return out
}

// Range returns all entries with key in [lo, hi], inclusive, in key order,
// for CSNP/summary generation.
func (d *Database) Range(lo, hi Key) []*Entry {
	out := make([]*Entry, 0)
	for k, e := range d.entries {
		if !k.Less(lo) && !hi.Less(k) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LSA.Key.Less(out[j].LSA.Key) })
	return out
}

// All returns every entry in key order. Intended for small LSDBs (tests,
// debugging/show commands); flooding and CSNP generation should prefer the
// indexed accessors above.
func (d *Database) All() []*Entry {
	return d.Range(Key{}, Key{Scope: 0xff, Type: 0xffff, AdvRouter: maxBytes8, ID: maxBytes8})
}

var maxBytes8 = [8]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// Len returns the number of entries currently stored.
func (d *Database) Len() int { return len(d.entries) }
