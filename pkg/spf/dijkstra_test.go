package spf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func vid(b byte) VertexID {
	var v VertexID
	v[0] = b
	return v
}

func TestDijkstraShortestPath(t *testing.T) {
	root := vid(1)
	b := vid(2)
	c := vid(3)
	d := vid(4)

	g := &Graph{
		Root: root,
		Edges: map[VertexID][]Edge{
			root: {
				{To: b, Metric: 10, Via: NextHop{IfIndex: 1, Gateway: [16]byte{10}}},
				{To: c, Metric: 1, Via: NextHop{IfIndex: 2, Gateway: [16]byte{20}}},
			},
			c: {
				{To: d, Metric: 1},
			},
			d: {
				{To: b, Metric: 1},
			},
		},
	}

	result := Dijkstra(g, 4)
	require.Equal(t, uint32(0), result.Distances[root])
	require.Equal(t, uint32(3), result.Distances[b], "via c->d->b (1+1+1) beats direct 10")
	require.Equal(t, uint32(1), result.Distances[c])
	require.Len(t, result.NextHops[b], 1)
	require.EqualValues(t, 2, result.NextHops[b][0].IfIndex, "nexthop toward b should be inherited from the c-ward path")
}

func TestDijkstraECMP(t *testing.T) {
	root := vid(1)
	b := vid(2)
	dst := vid(3)

	g := &Graph{
		Root: root,
		Edges: map[VertexID][]Edge{
			root: {
				{To: dst, Metric: 5, Via: NextHop{IfIndex: 1}},
				{To: b, Metric: 5, Via: NextHop{IfIndex: 2}},
			},
			b: {
				{To: dst, Metric: 0},
			},
		},
	}

	result := Dijkstra(g, 4)
	require.Equal(t, uint32(5), result.Distances[dst])
	require.Len(t, result.NextHops[dst], 2, "two equal-cost paths to dst should both be retained")
}

func TestDijkstraMaxPathsCap(t *testing.T) {
	root := vid(1)
	dst := vid(9)
	edges := map[VertexID][]Edge{root: nil}
	for i := byte(2); i < 8; i++ {
		mid := vid(i)
		edges[root] = append(edges[root], Edge{To: mid, Metric: 1, Via: NextHop{IfIndex: uint32(i)}})
		edges[mid] = []Edge{{To: dst, Metric: 1}}
	}
	g := &Graph{Root: root, Edges: edges}

	result := Dijkstra(g, 2)
	require.LessOrEqual(t, len(result.NextHops[dst]), 2)
}

func TestBuildRoutesTieBreakPrefersIntraArea(t *testing.T) {
	root := vid(1)
	a := vid(2)
	g := &Graph{Root: root, Edges: map[VertexID][]Edge{
		root: {{To: a, Metric: 10, Via: NextHop{IfIndex: 1}}},
	}}
	result := Dijkstra(g, 4)

	prefixes := []PrefixAttachment{
		{Prefix: "10.0.0.0/24", Vertex: a, Metric: 0, Kind: KindExternal},
		{Prefix: "10.0.0.0/24", Vertex: a, Metric: 0, Kind: KindIntraArea},
	}
	routes := BuildRoutes(result, prefixes, 4)
	require.Equal(t, KindIntraArea, routes["10.0.0.0/24"].Kind)
}

func TestDiffDetectsAddChangeRemove(t *testing.T) {
	prev := map[string]*RouteEntry{
		"a": {Prefix: "a", Metric: 10},
		"b": {Prefix: "b", Metric: 5},
	}
	next := map[string]*RouteEntry{
		"a": {Prefix: "a", Metric: 10},
		"b": {Prefix: "b", Metric: 7},
		"c": {Prefix: "c", Metric: 1},
	}
	changes := Diff(prev, next)
	require.Len(t, changes, 2)

	kinds := map[RouteChangeKind]int{}
	for _, c := range changes {
		kinds[c.Kind]++
	}
	require.Equal(t, 1, kinds[RouteAdded])
	require.Equal(t, 1, kinds[RouteChanged])
}
