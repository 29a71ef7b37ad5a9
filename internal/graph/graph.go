package graph

import (
	"sort"
)

// Graph is a simple undirected weighted graph keyed by int64 node ids.
// Not safe for concurrent modification; build once, then query.
type Graph struct {
	adj map[int64]map[int64]int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{adj: make(map[int64]map[int64]int)}
}

// AddEdge adds an undirected edge with the given weight. Re-adding an edge
// overwrites its weight. Self-loops are ignored.
func (g *Graph) AddEdge(u, v int64, weight int) {
	if u == v {
		return
	}
	if g.adj[u] == nil {
		g.adj[u] = make(map[int64]int)
	}
	if g.adj[v] == nil {
		g.adj[v] = make(map[int64]int)
	}
	g.adj[u][v] = weight
	g.adj[v][u] = weight
}

// HasEdge reports whether an edge exists between u and v
func (g *Graph) HasEdge(u, v int64) bool {
	_, ok := g.adj[u][v]
	return ok
}

// Weight returns the weight of the edge between u and v, or 0 if absent
func (g *Graph) Weight(u, v int64) int {
	return g.adj[u][v]
}

// NodeCount returns the number of nodes with at least one edge
func (g *Graph) NodeCount() int {
	return len(g.adj)
}

// Nodes returns all node ids in ascending order
func (g *Graph) Nodes() []int64 {
	nodes := make([]int64, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

// Neighbors returns the neighbor set of a node
func (g *Graph) Neighbors(n int64) map[int64]int {
	return g.adj[n]
}

// EdgeSubgraph returns the edge-induced subgraph containing only edges
// whose weight w satisfies minWeight <= w (and w <= maxWeight when
// maxWeight >= 0). Nodes with no surviving edge are dropped.
func (g *Graph) EdgeSubgraph(minWeight, maxWeight int) *Graph {
	sub := New()
	for u, neighbors := range g.adj {
		for v, w := range neighbors {
			if u >= v {
				continue // each undirected edge once
			}
			if w < minWeight {
				continue
			}
			if maxWeight >= 0 && w > maxWeight {
				continue
			}
			sub.AddEdge(u, v, w)
		}
	}
	return sub
}
