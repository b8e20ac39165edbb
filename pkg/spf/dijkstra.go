package spf

import "container/heap"

// VertexID identifies a router/pseudonode vertex in the link-state graph.
// OSPF encodes this as a router-id or a network-LSA's designated-router
// address; IS-IS encodes it as a system-id (with a zero pseudonode byte for
// real routers).
type VertexID [8]byte

// NextHop is one equal-cost path element toward a destination.
type NextHop struct {
	IfIndex uint32
	Gateway [16]byte // IPv4-mapped or native IPv6
	Labels  []uint32 // optional SR label stack
}

// Edge is one directed link out of a vertex, carrying the metric and,
// if the edge leads directly to a destination prefix's attaching router,
// the nexthop to use when this edge is on a shortest path from the root.
type Edge struct {
	To     VertexID
	Metric uint32
	Via    NextHop
}

// PrefixOrigin attaches a prefix to the vertex that originates it, with a
// route-kind ordering used for the intra/inter/external tie-break.
type RouteKind int

const (
	KindIntraArea RouteKind = iota
	KindInterArea
	KindExternal
)

// PrefixAttachment binds a prefix to an originating vertex with a metric
// added on top of the SPF distance to that vertex (e.g. stub-network cost
// or external metric).
type PrefixAttachment struct {
	Prefix    string
	Vertex    VertexID
	Metric    uint32
	Kind      RouteKind
}

// Graph is the abstract link-state topology Dijkstra runs over; protocol
// engines build one from their LSDB on each SPF run.
type Graph struct {
	Root  VertexID
	Edges map[VertexID][]Edge
}

type distEntry struct {
	vertex   VertexID
	dist     uint32
	nexthops []NextHop
	visited  bool
}

type vertexHeap []*distEntry

func (h vertexHeap) Len() int            { return len(h) }
func (h vertexHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h vertexHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *vertexHeap) Push(x interface{}) { *h = append(*h, x.(*distEntry)) }
func (h *vertexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Result is the per-vertex shortest distance and nexthop set computed by
// Dijkstra, keyed by vertex.
type Result struct {
	Distances map[VertexID]uint32
	NextHops  map[VertexID][]NextHop
}

// Dijkstra runs shortest-path-first from g.Root, capping the number of
// equal-cost nexthops retained per vertex at maxPaths (ECMP fan-out).
func Dijkstra(g *Graph, maxPaths int) *Result {
	if maxPaths < 1 {
		maxPaths = 1
	}
	entries := make(map[VertexID]*distEntry)
	root := &distEntry{vertex: g.Root, dist: 0}
	entries[g.Root] = root

	h := &vertexHeap{root}
	heap.Init(h)

	for h.Len() > 0 {
		cur := heap.Pop(h).(*distEntry)
		if cur.visited {
			continue
		}
		cur.visited = true

		for _, e := range g.Edges[cur.vertex] {
			next, ok := entries[e.To]
			newDist := cur.dist + e.Metric
			if !ok {
				var nh []NextHop
				if cur.vertex == g.Root {
					nh = []NextHop{e.Via}
				} else {
					nh = append([]NextHop(nil), cur.nexthops...)
				}
				next = &distEntry{vertex: e.To, dist: newDist, nexthops: nh}
				entries[e.To] = next
				heap.Push(h, next)
				continue
			}
			// A visited vertex can never get a shorter distance, but it can
			// still gain equal-cost nexthops (e.g. over a zero-metric edge
			// from a vertex popped after it).
			if next.visited && newDist != next.dist {
				continue
			}
			switch {
			case newDist < next.dist:
				next.dist = newDist
				if cur.vertex == g.Root {
					next.nexthops = []NextHop{e.Via}
				} else {
					next.nexthops = append([]NextHop(nil), cur.nexthops...)
				}
				heap.Fix(h, indexOf(*h, next))
			case newDist == next.dist:
				var add []NextHop
				if cur.vertex == g.Root {
					add = []NextHop{e.Via}
				} else {
					add = cur.nexthops
				}
				for _, nh := range add {
					if len(next.nexthops) >= maxPaths {
						break
					}
					if !containsNextHop(next.nexthops, nh) {
						next.nexthops = append(next.nexthops, nh)
					}
				}
			}
		}
	}

	result := &Result{Distances: make(map[VertexID]uint32), NextHops: make(map[VertexID][]NextHop)}
	for v, e := range entries {
		result.Distances[v] = e.dist
		result.NextHops[v] = e.nexthops
	}
	return result
}

func indexOf(h vertexHeap, target *distEntry) int {
	for i, e := range h {
		if e == target {
			return i
		}
	}
	return -1
}

func containsNextHop(list []NextHop, nh NextHop) bool {
	for _, e := range list {
		if e.IfIndex == nh.IfIndex && e.Gateway == nh.Gateway {
			return true
		}
	}
	return false
}

// RouteEntry is the final, diffable routing-table row for one destination.
type RouteEntry struct {
	Prefix   string
	Metric   uint32
	Distance uint8
	Kind     RouteKind
	NextHops []NextHop
	Installed bool
}

// BuildRoutes projects SPF vertex distances plus prefix attachments into a
// routing table, applying the intra > inter > external tie-break per §4.6
// when the same prefix is attached from more than one kind/vertex.
func BuildRoutes(result *Result, prefixes []PrefixAttachment, maxPaths int) map[string]*RouteEntry {
	routes := make(map[string]*RouteEntry)
	for _, p := range prefixes {
		dist, ok := result.Distances[p.Vertex]
		if !ok {
			continue
		}
		metric := dist + p.Metric
		existing, has := routes[p.Prefix]
		if !has {
			routes[p.Prefix] = &RouteEntry{
				Prefix:   p.Prefix,
				Metric:   metric,
				Kind:     p.Kind,
				NextHops: limitedCopy(result.NextHops[p.Vertex], maxPaths),
			}
			continue
		}
		if p.Kind < existing.Kind || (p.Kind == existing.Kind && metric < existing.Metric) {
			existing.Metric = metric
			existing.Kind = p.Kind
			existing.NextHops = limitedCopy(result.NextHops[p.Vertex], maxPaths)
		} else if p.Kind == existing.Kind && metric == existing.Metric {
			for _, nh := range result.NextHops[p.Vertex] {
				if len(existing.NextHops) >= maxPaths {
					break
				}
				if !containsNextHop(existing.NextHops, nh) {
					existing.NextHops = append(existing.NextHops, nh)
				}
			}
		}
	}
	return routes
}

func limitedCopy(nh []NextHop, max int) []NextHop {
	if len(nh) > max {
		nh = nh[:max]
	}
	return append([]NextHop(nil), nh...)
}

// RouteChange describes one addition/change/removal produced by Diff.
type RouteChangeKind int

const (
	RouteAdded RouteChangeKind = iota
	RouteChanged
	RouteRemoved
)

type RouteChange struct {
	Kind  RouteChangeKind
	Entry *RouteEntry
}

// Diff compares a newly computed routing table against the previous one and
// returns the set of additions/changes/removals to emit as route-install or
// withdraw messages on the inter-process bus.
func Diff(prev, next map[string]*RouteEntry) []RouteChange {
	var changes []RouteChange
	for prefix, n := range next {
		o, ok := prev[prefix]
		if !ok {
			changes = append(changes, RouteChange{Kind: RouteAdded, Entry: n})
			continue
		}
		if !routeEqual(o, n) {
			changes = append(changes, RouteChange{Kind: RouteChanged, Entry: n})
		}
	}
	for prefix, o := range prev {
		if _, ok := next[prefix]; !ok {
			changes = append(changes, RouteChange{Kind: RouteRemoved, Entry: o})
		}
	}
	return changes
}

func routeEqual(a, b *RouteEntry) bool {
	if a.Metric != b.Metric || a.Kind != b.Kind || len(a.NextHops) != len(b.NextHops) {
		return false
	}
	for i := range a.NextHops {
		if !containsNextHop(b.NextHops, a.NextHops[i]) {
			return false
		}
	}
	return true
}
