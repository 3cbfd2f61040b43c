package placement

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qroute/pkg/articulation"
	"github.com/matzehuels/qroute/pkg/coupling"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

func mustGraph(t *testing.T, n int, pairs [][2]int) *coupling.Graph {
	t.Helper()
	g, err := coupling.FromEdges(n, pairs)
	require.NoError(t, err)
	return g
}

func line(t *testing.T, n int) *coupling.Graph {
	t.Helper()
	var pairs [][2]int
	for i := 0; i+1 < n; i++ {
		pairs = append(pairs, [2]int{i, i + 1})
	}
	return mustGraph(t, n, pairs)
}

// randomConnected builds a random spanning tree plus extra edges.
func randomConnected(t *testing.T, rng *rand.Rand, n int, extra float64) *coupling.Graph {
	t.Helper()
	seen := make(map[[2]int]bool)
	var pairs [][2]int
	add := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		if a == b || seen[[2]int{a, b}] {
			return
		}
		seen[[2]int{a, b}] = true
		pairs = append(pairs, [2]int{a, b})
	}
	for i := 1; i < n; i++ {
		add(i, rng.IntN(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < extra {
				add(i, j)
			}
		}
	}
	return mustGraph(t, n, pairs)
}

func TestDefaultLine(t *testing.T) {
	m, err := Default(line(t, 4))
	require.NoError(t, err)
	assert.Equal(t, Map{0, 1, 2, 3}, m)
}

func TestDefaultStar(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {0, 2}, {0, 3}})
	m, err := Default(g)
	require.NoError(t, err)
	// DFS from 3 enters the center, then visits 2 before 1.
	assert.Equal(t, Map{2, 1, 0, 3}, m)
}

func TestDefaultStartVertexIsLastQubit(t *testing.T) {
	g, err := coupling.New([]coupling.Vertex{5, 10, 20}, []coupling.Edge{{A: 5, B: 10}, {A: 10, B: 20}})
	require.NoError(t, err)

	m, err := Default(g)
	require.NoError(t, err)
	assert.Equal(t, Map{5, 10, 20}, m)
}

func TestDefaultDisconnected(t *testing.T) {
	_, err := Default(mustGraph(t, 4, [][2]int{{0, 1}, {2, 3}}))
	require.Error(t, err)
	assert.True(t, qerrors.IsConfiguration(err))

	_, err = Default(mustGraph(t, 0, nil))
	assert.True(t, qerrors.IsConfiguration(err))
}

func TestDefaultIsBijection(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 30; trial++ {
		g := randomConnected(t, rng, 1+rng.IntN(20), 0.2)
		m, err := Default(g)
		require.NoError(t, err)
		assert.NoError(t, Validate(g, m))

		sorted := slices.Clone(m)
		slices.Sort(sorted)
		assert.Equal(t, g.Vertices(), []coupling.Vertex(sorted))
	}
}

func TestValidate(t *testing.T) {
	g := line(t, 3)
	tests := []struct {
		name string
		m    Map
		ok   bool
	}{
		{"identity", Map{0, 1, 2}, true},
		{"permuted", Map{2, 0, 1}, true},
		{"short", Map{0, 1}, false},
		{"unknown vertex", Map{0, 1, 9}, false},
		{"repeat", Map{0, 1, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(g, tt.m)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, qerrors.IsConfiguration(err), "got %v", err)
		})
	}
}

func TestPlacementViews(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {0, 2}, {0, 3}})
	p, err := New(g, Map{2, 1, 0, 3})
	require.NoError(t, err)

	assert.Equal(t, 4, p.Len())
	assert.Equal(t, coupling.Vertex(0), p.QubitToVertex(2))
	q, ok := p.VertexToQubit(3)
	assert.True(t, ok)
	assert.Equal(t, 3, q)
	_, ok = p.VertexToQubit(42)
	assert.False(t, ok)

	// Qubit 2 sits on the center.
	assert.Equal(t, []int{0, 1, 3}, p.Neighbors(2))
	assert.Equal(t, []int{2}, p.Neighbors(0))

	r := p.Reversed()
	assert.Equal(t, Map{3, 0, 1, 2}, r.Map())
	assert.Equal(t, Map{2, 1, 0, 3}, p.Map(), "original untouched")
}

func TestReduceOrder(t *testing.T) {
	t.Run("line", func(t *testing.T) {
		g := line(t, 4)
		p, err := New(g, Identity(g))
		require.NoError(t, err)
		order, err := ReduceOrder(p)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2, 1, 0}, order)
	})

	t.Run("star skips the center", func(t *testing.T) {
		g := mustGraph(t, 4, [][2]int{{0, 1}, {0, 2}, {0, 3}})
		p, err := New(g, Map{2, 1, 0, 3})
		require.NoError(t, err)
		order, err := ReduceOrder(p)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 2, 0}, order)
	})
}

// TestReduceOrderKeepsRemainderConnected checks that every prefix removal
// leaves at most one component.
func TestReduceOrderKeepsRemainderConnected(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 40; trial++ {
		g := randomConnected(t, rng, 2+rng.IntN(18), 0.15)
		m, err := Default(g)
		require.NoError(t, err)
		p, err := New(g, m)
		require.NoError(t, err)

		order, err := ReduceOrder(p)
		require.NoError(t, err)
		require.NoError(t, ValidateReduceOrder(order, g.Len()))

		for k := 0; k < len(order)-1; k++ {
			rest := p.Vertices(order[k:])
			assert.LessOrEqual(t, articulation.Components(g, rest), 1, "trial %d prefix %d", trial, k)
		}
	}
}

func TestReduceOrderDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	g := randomConnected(t, rng, 16, 0.2)
	m, err := Default(g)
	require.NoError(t, err)

	var first []int
	for range 3 {
		p, err := New(g, m)
		require.NoError(t, err)
		order, err := ReduceOrder(p)
		require.NoError(t, err)
		if first == nil {
			first = order
		}
		assert.Equal(t, first, order)
	}
}

func TestValidateReduceOrder(t *testing.T) {
	assert.NoError(t, ValidateReduceOrder([]int{2, 0, 1}, 3))
	assert.True(t, qerrors.IsConfiguration(ValidateReduceOrder([]int{0, 0, 1}, 3)))
	assert.True(t, qerrors.IsConfiguration(ValidateReduceOrder([]int{0, 1}, 3)))
	assert.True(t, qerrors.IsConfiguration(ValidateReduceOrder([]int{0, 1, 3}, 3)))
}
