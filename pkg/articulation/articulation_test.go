package articulation

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qroute/pkg/coupling"
)

func mustGraph(t *testing.T, n int, pairs [][2]int) *coupling.Graph {
	t.Helper()
	g, err := coupling.FromEdges(n, pairs)
	require.NoError(t, err)
	return g
}

func TestCutVerticesPath(t *testing.T) {
	for m := 3; m <= 8; m++ {
		var pairs [][2]int
		for i := 0; i+1 < m; i++ {
			pairs = append(pairs, [2]int{i, i + 1})
		}
		g := mustGraph(t, m, pairs)

		cutting := CutVertices(g, g.Vertices())
		require.Len(t, cutting, m)
		assert.False(t, cutting[0], "endpoint 0 of path %d", m)
		assert.False(t, cutting[m-1], "endpoint %d of path %d", m-1, m)
		for i := 1; i < m-1; i++ {
			assert.True(t, cutting[i], "interior %d of path %d", i, m)
		}
	}
}

func TestCutVerticesShapes(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		pairs  [][2]int
		subset []coupling.Vertex
		want   []bool
	}{
		{
			name:  "cycle has none",
			n:     5,
			pairs: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}},
			want:  []bool{false, false, false, false, false},
		},
		{
			name:  "star center",
			n:     4,
			pairs: [][2]int{{0, 1}, {0, 2}, {0, 3}},
			want:  []bool{true, false, false, false},
		},
		{
			name:  "bowtie",
			n:     5,
			pairs: [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 3}, {2, 4}, {3, 4}},
			want:  []bool{false, false, true, false, false},
		},
		{
			name:  "two components",
			n:     6,
			pairs: [][2]int{{0, 1}, {1, 2}, {3, 4}, {4, 5}},
			want:  []bool{false, true, false, false, true, false},
		},
		{
			name:   "induced subset breaks cycle",
			n:      5,
			pairs:  [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}},
			subset: []coupling.Vertex{3, 2, 1, 0},
			want:   []bool{false, true, true, false},
		},
		{
			name:   "single vertex",
			n:      3,
			pairs:  [][2]int{{0, 1}, {1, 2}},
			subset: []coupling.Vertex{1},
			want:   []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.n, tt.pairs)
			subset := tt.subset
			if subset == nil {
				subset = g.Vertices()
			}
			assert.Equal(t, tt.want, CutVertices(g, subset))
		})
	}
}

// TestCutVerticesBruteForce compares against the definition on random graphs:
// removing a cut vertex increases the component count.
func TestCutVerticesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.IntN(9)
		var pairs [][2]int
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if rng.Float64() < 0.3 {
					pairs = append(pairs, [2]int{i, j})
				}
			}
		}
		g := mustGraph(t, n, pairs)
		all := g.Vertices()
		base := Components(g, all)

		got := CutVertices(g, all)
		for i, v := range all {
			rest := make([]coupling.Vertex, 0, n-1)
			for _, w := range all {
				if w != v {
					rest = append(rest, w)
				}
			}
			want := Components(g, rest) > base
			assert.Equal(t, want, got[i], "trial %d vertex %d edges %v", trial, v, pairs)
		}
	}
}

func TestNonCutting(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	assert.Equal(t, []coupling.Vertex{3, 0}, NonCutting(g, []coupling.Vertex{3, 2, 1, 0}))
}

func TestComponents(t *testing.T) {
	g := mustGraph(t, 5, [][2]int{{0, 1}, {2, 3}})
	assert.Equal(t, 3, Components(g, g.Vertices()))
	assert.Equal(t, 0, Components(g, nil))
}
