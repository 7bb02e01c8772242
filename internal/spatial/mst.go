package spatial

import (
	"cmp"
	"slices"

	"github.com/amateurbeekeeper/data-visulisation/internal/models"
)

type edge struct {
	u, v   int // u < v
	weight float64
}

// BuildMST connects coords with a minimum spanning tree of the complete graph
// weighted by PlanarDistance.
//
// Node i is coords[i]. Kruskal runs over the edges (i, j), i < j, in
// lexicographic order sorted stably by weight, so equal weights resolve
// toward lower indices. Edges are emitted grouped by their lower endpoint,
// each group in acceptance order, as (coords[u], coords[v]) with u < v.
//
// The graph has n(n-1)/2 edges; n is the unique coordinate count.
func BuildMST(coords []Coordinate) []models.PathEdge {
	tree := spanningTree(coords)
	paths := make([]models.PathEdge, 0, len(tree))
	for _, e := range tree {
		paths = append(paths, models.PathEdge{Start: coords[e.u].Pair(), End: coords[e.v].Pair()})
	}
	return paths
}

// Summarize reports the size and length of the tree BuildMST would build
func Summarize(coords []Coordinate) models.PathSummary {
	tree := spanningTree(coords)
	summary := models.PathSummary{Nodes: len(coords), Edges: len(tree)}
	for _, e := range tree {
		summary.PlanarWeight += e.weight
		summary.LengthMeters += HaversineDistance(coords[e.u], coords[e.v])
	}
	return summary
}

func spanningTree(coords []Coordinate) []edge {
	n := len(coords)
	if n < 2 {
		return nil
	}

	edges := make([]edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, edge{u: i, v: j, weight: PlanarDistance(coords[i], coords[j])})
		}
	}
	slices.SortStableFunc(edges, func(a, b edge) int {
		return cmp.Compare(a.weight, b.weight)
	})

	uf := newUnionFind(n)
	adj := make([][]edge, n)
	accepted := 0
	for _, e := range edges {
		if !uf.union(e.u, e.v) {
			continue
		}
		adj[e.u] = append(adj[e.u], e)
		accepted++
		if accepted == n-1 {
			break
		}
	}

	tree := make([]edge, 0, n-1)
	for u := range adj {
		tree = append(tree, adj[u]...)
	}
	return tree
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// union merges the sets of a and b, reporting false if they were already joined
func (uf *unionFind) union(a, b int) bool {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return false
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
	return true
}
