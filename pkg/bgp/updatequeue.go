package bgp

import (
	"sort"

	"github.com/routeflow/ribd/internal/wire"
)

// AttrKey is a canonical, comparable form of a path-attribute set so
// prefixes sharing identical attributes can be grouped into one UPDATE
// message's NLRI list (the common case for a full-table dump). Two
// PathAttribute slices that encode to the same bytes produce the same
// AttrKey.
type AttrKey string

func KeyForAttributes(attrs []PathAttribute) AttrKey {
	w := wire.NewWriter(32)
	sorted := make([]PathAttribute, len(attrs))
	copy(sorted, attrs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Type < sorted[j].Type })
	for _, a := range sorted {
		EncodePathAttribute(w, a)
	}
	return AttrKey(w.Bytes())
}

// Queue is the per-(peer, AFI/SAFI) pending update queue (§3.9): prefixes
// queued to be advertised, grouped by their shared attribute set, plus a
// separate set of prefixes queued for withdrawal. The invariant a prefix
// is never present in both reach and unreach simultaneously is enforced by
// Queue itself: enqueuing into one set evicts the prefix from the other.
type Queue struct {
	reach   map[AttrKey]map[string][]PathAttribute // attrKey -> prefix string -> attrs (for re-derivation)
	members map[AttrKey]map[string]Prefix
	unreach map[string]Prefix
}

func NewQueue() *Queue {
	return &Queue{
		reach:   make(map[AttrKey]map[string][]PathAttribute),
		members: make(map[AttrKey]map[string]Prefix),
		unreach: make(map[string]Prefix),
	}
}

func prefixKey(p Prefix) string {
	return string(append([]byte{p.Length}, p.Bytes...))
}

// Advertise queues p for advertisement with attrs, removing any pending
// withdrawal for the same prefix (a re-advertisement supersedes a queued
// withdraw).
func (q *Queue) Advertise(p Prefix, attrs []PathAttribute) {
	pk := prefixKey(p)
	delete(q.unreach, pk)
	ak := KeyForAttributes(attrs)
	if q.members[ak] == nil {
		q.members[ak] = make(map[string]Prefix)
		q.reach[ak] = make(map[string][]PathAttribute)
	}
	// A prefix previously queued under a different attribute set must be
	// removed from that set first, preserving the one-attrKey-per-prefix
	// invariant.
	for otherKey, set := range q.members {
		if otherKey == ak {
			continue
		}
		if _, ok := set[pk]; ok {
			delete(set, pk)
			delete(q.reach[otherKey], pk)
		}
	}
	q.members[ak][pk] = p
	q.reach[ak][pk] = attrs
}

// Withdraw queues p for withdrawal, removing any pending advertisement.
func (q *Queue) Withdraw(p Prefix) {
	pk := prefixKey(p)
	for ak, set := range q.members {
		if _, ok := set[pk]; ok {
			delete(set, pk)
			delete(q.reach[ak], pk)
		}
	}
	q.unreach[pk] = p
}

// Empty reports whether the queue has nothing pending.
func (q *Queue) Empty() bool {
	if len(q.unreach) > 0 {
		return false
	}
	for _, set := range q.members {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// BuildUpdates drains the queue into one or more UPDATE messages, each
// bounded by maxSize bytes of encoded message (19-byte header included),
// splitting a single
// attribute group's NLRI list across multiple messages when it alone
// would exceed the limit. Withdrawals are flushed first (their own
// messages, since they carry no path attributes), then reachable groups.
func (q *Queue) BuildUpdates(maxSize int) []Update {
	var out []Update

	if len(q.unreach) > 0 {
		prefixes := make([]Prefix, 0, len(q.unreach))
		for _, p := range q.unreach {
			prefixes = append(prefixes, p)
		}
		out = append(out, chunkWithdrawals(prefixes, maxSize)...)
		q.unreach = make(map[string]Prefix)
	}

	// Stable iteration order over attribute groups for deterministic
	// message construction (useful for tests and for reproducible wire
	// captures).
	keys := make([]AttrKey, 0, len(q.reach))
	for ak := range q.reach {
		keys = append(keys, ak)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, ak := range keys {
		set := q.reach[ak]
		if len(set) == 0 {
			continue
		}
		var attrs []PathAttribute
		var prefixes []Prefix
		for pk, a := range set {
			attrs = a
			prefixes = append(prefixes, q.members[ak][pk])
		}
		out = append(out, chunkAdvertisements(prefixes, attrs, maxSize)...)
		delete(q.reach, ak)
		delete(q.members, ak)
	}
	return out
}

func chunkWithdrawals(prefixes []Prefix, maxSize int) []Update {
	const overhead = 23 // header(19) + withdrawn-len(2) + path-attr-len(2), no NLRI
	var out []Update
	var cur []Prefix
	size := overhead
	for _, p := range prefixes {
		pSize := 1 + len(p.Bytes)
		if len(cur) > 0 && size+pSize > maxSize {
			out = append(out, Update{WithdrawnRoutes: cur})
			cur = nil
			size = overhead
		}
		cur = append(cur, p)
		size += pSize
	}
	if len(cur) > 0 {
		out = append(out, Update{WithdrawnRoutes: cur})
	}
	return out
}

func chunkAdvertisements(prefixes []Prefix, attrs []PathAttribute, maxSize int) []Update {
	attrsW := wire.NewWriter(32)
	for _, a := range attrs {
		EncodePathAttribute(attrsW, a)
	}
	attrBytes := attrsW.Bytes()
	overhead := 19 + 2 + 2 + len(attrBytes)

	var out []Update
	var cur []Prefix
	size := overhead
	for _, p := range prefixes {
		pSize := 1 + len(p.Bytes)
		if len(cur) > 0 && size+pSize > maxSize {
			out = append(out, Update{PathAttributes: attrs, NLRI: cur})
			cur = nil
			size = overhead
		}
		cur = append(cur, p)
		size += pSize
	}
	if len(cur) > 0 {
		out = append(out, Update{PathAttributes: attrs, NLRI: cur})
	}
	return out
}
