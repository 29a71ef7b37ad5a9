package graph

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortCliques(cliques [][]int64) {
	sort.Slice(cliques, func(i, j int) bool {
		a, b := cliques[i], cliques[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}

func TestMaximalCliquesTriangle(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 40)
	g.AddEdge(2, 3, 45)
	g.AddEdge(1, 3, 42)

	cliques, err := MaximalCliques(context.Background(), g, 0)
	require.NoError(t, err)
	require.Len(t, cliques, 1)
	assert.Equal(t, []int64{1, 2, 3}, cliques[0])
}

func TestMaximalCliquesTriangleWithTail(t *testing.T) {
	// Triangle 1-2-3 plus a pendant edge 3-4
	g := New()
	g.AddEdge(1, 2, 10)
	g.AddEdge(2, 3, 10)
	g.AddEdge(1, 3, 10)
	g.AddEdge(3, 4, 10)

	cliques, err := MaximalCliques(context.Background(), g, 0)
	require.NoError(t, err)
	sortCliques(cliques)

	require.Len(t, cliques, 2)
	assert.Equal(t, []int64{1, 2, 3}, cliques[0])
	assert.Equal(t, []int64{3, 4}, cliques[1])
}

func TestMaximalCliquesDisjointEdges(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 5)
	g.AddEdge(3, 4, 5)

	cliques, err := MaximalCliques(context.Background(), g, 0)
	require.NoError(t, err)
	sortCliques(cliques)

	require.Len(t, cliques, 2)
	assert.Equal(t, []int64{1, 2}, cliques[0])
	assert.Equal(t, []int64{3, 4}, cliques[1])
}

func TestMaximalCliquesMaximality(t *testing.T) {
	// Two triangles sharing the edge 2-3: cliques {1,2,3} and {2,3,4}.
	// Neither may be reported as a subset of the other, and the shared
	// edge {2,3} must not appear alone.
	g := New()
	g.AddEdge(1, 2, 1)
	g.AddEdge(1, 3, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(2, 4, 1)
	g.AddEdge(3, 4, 1)

	cliques, err := MaximalCliques(context.Background(), g, 0)
	require.NoError(t, err)
	sortCliques(cliques)

	require.Len(t, cliques, 2)
	assert.Equal(t, []int64{1, 2, 3}, cliques[0])
	assert.Equal(t, []int64{2, 3, 4}, cliques[1])

	// Every reported clique is complete
	for _, clique := range cliques {
		for i := 0; i < len(clique); i++ {
			for j := i + 1; j < len(clique); j++ {
				assert.True(t, g.HasEdge(clique[i], clique[j]))
			}
		}
	}
}

func TestMaximalCliquesEmptyGraph(t *testing.T) {
	cliques, err := MaximalCliques(context.Background(), New(), 0)
	require.NoError(t, err)
	assert.Empty(t, cliques)
}

func TestMaximalCliquesNodeBound(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(3, 4, 1)

	_, err := MaximalCliques(context.Background(), g, 3)
	assert.ErrorIs(t, err, ErrBudgetExceeded)

	_, err = MaximalCliques(context.Background(), g, 4)
	assert.NoError(t, err)
}

func TestMaximalCliquesCancelled(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MaximalCliques(ctx, g, 0)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestMaximalCliquesDeadline(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 1)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := MaximalCliques(ctx, g, 0)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}
