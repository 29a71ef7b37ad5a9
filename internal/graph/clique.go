package graph

import (
	"context"
	"errors"
	"sort"
)

// ErrBudgetExceeded is returned when clique enumeration would exceed its
// node bound or its context deadline. Callers are expected to skip the
// affected subgraph and continue.
var ErrBudgetExceeded = errors.New("clique enumeration budget exceeded")

// MaximalCliques enumerates all maximal cliques of the graph using the
// Bron–Kerbosch algorithm with pivoting. Enumeration is refused up front
// when the graph has more than maxNodes nodes (maxNodes <= 0 means no
// bound), and aborted if ctx is cancelled mid-search. Each returned clique
// is sorted ascending.
func MaximalCliques(ctx context.Context, g *Graph, maxNodes int) ([][]int64, error) {
	if g.NodeCount() == 0 {
		return nil, nil
	}
	if maxNodes > 0 && g.NodeCount() > maxNodes {
		return nil, ErrBudgetExceeded
	}

	e := &enumerator{g: g, ctx: ctx}

	p := make(map[int64]bool, g.NodeCount())
	for _, n := range g.Nodes() {
		p[n] = true
	}
	x := make(map[int64]bool)

	if err := e.bronKerbosch(nil, p, x); err != nil {
		return nil, err
	}
	return e.cliques, nil
}

type enumerator struct {
	g       *Graph
	ctx     context.Context
	cliques [][]int64
}

// bronKerbosch extends clique r with candidates p, excluding x
func (e *enumerator) bronKerbosch(r []int64, p, x map[int64]bool) error {
	select {
	case <-e.ctx.Done():
		return ErrBudgetExceeded
	default:
	}

	if len(p) == 0 && len(x) == 0 {
		clique := make([]int64, len(r))
		copy(clique, r)
		sort.Slice(clique, func(i, j int) bool { return clique[i] < clique[j] })
		e.cliques = append(e.cliques, clique)
		return nil
	}

	// Pivot on the vertex of p ∪ x with the most neighbors in p
	pivot := e.choosePivot(p, x)
	pivotNeighbors := e.g.Neighbors(pivot)

	candidates := make([]int64, 0, len(p))
	for v := range p {
		if _, ok := pivotNeighbors[v]; !ok {
			candidates = append(candidates, v)
		}
	}

	for _, v := range candidates {
		neighbors := e.g.Neighbors(v)

		nextP := make(map[int64]bool)
		for u := range p {
			if _, ok := neighbors[u]; ok {
				nextP[u] = true
			}
		}
		nextX := make(map[int64]bool)
		for u := range x {
			if _, ok := neighbors[u]; ok {
				nextX[u] = true
			}
		}

		if err := e.bronKerbosch(append(r, v), nextP, nextX); err != nil {
			return err
		}

		delete(p, v)
		x[v] = true
	}

	return nil
}

func (e *enumerator) choosePivot(p, x map[int64]bool) int64 {
	var pivot int64
	best := -1
	consider := func(v int64) {
		count := 0
		for u := range e.g.Neighbors(v) {
			if p[u] {
				count++
			}
		}
		if count > best {
			best = count
			pivot = v
		}
	}
	for v := range p {
		consider(v)
	}
	for v := range x {
		consider(v)
	}
	return pivot
}
