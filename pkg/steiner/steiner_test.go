package steiner

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qroute/pkg/coupling"
	"github.com/matzehuels/qroute/pkg/distance"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/placement"
)

type fixture struct {
	g *coupling.Graph
	p *placement.Placement
}

func newFixture(t *testing.T, n int, pairs [][2]int, m placement.Map) fixture {
	t.Helper()
	g, err := coupling.FromEdges(n, pairs)
	require.NoError(t, err)
	if m == nil {
		m = placement.Identity(g)
	}
	p, err := placement.New(g, m)
	require.NoError(t, err)
	return fixture{g: g, p: p}
}

func lineFixture(t *testing.T, n int) fixture {
	t.Helper()
	var pairs [][2]int
	for i := 0; i+1 < n; i++ {
		pairs = append(pairs, [2]int{i, i + 1})
	}
	return newFixture(t, n, pairs, nil)
}

func (f fixture) table(policy distance.Policy) *distance.Table {
	return distance.FloydWarshall(f.g, f.p, distance.NewSubset(f.g.Vertices()), distance.Subset{}, policy)
}

func vs(xs ...int) []coupling.Vertex {
	out := make([]coupling.Vertex, len(xs))
	for i, x := range xs {
		out[i] = coupling.Vertex(x)
	}
	return out
}

func pair(c, t int) Step { return Step{Control: c, Target: t} }

func TestLineScenario(t *testing.T) {
	f := lineFixture(t, 4)
	tree, err := Build(f.table(distance.Upper), 0, vs(1, 3))
	require.NoError(t, err)

	assert.Equal(t, []distance.Arc{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}}, tree.Edges)
	assert.Equal(t, vs(0, 1, 3), tree.Vertices)
	assert.Equal(t, vs(2), tree.Steiner)
	assert.Equal(t, 3, tree.Cost())
	require.Len(t, tree.Attachments, 2)
	assert.Equal(t, coupling.Vertex(1), tree.Attachments[1].From)

	steps, err := NewStream(tree, f.p).All()
	require.NoError(t, err)
	assert.Equal(t, []Step{
		pair(0, 1), pair(1, 2), pair(2, 3),
		{Phase: PhaseDown, Sentinel: true},
		pair(2, 3), pair(1, 2), pair(0, 1),
		{Phase: PhaseUp, Sentinel: true},
	}, steps)
}

func TestStreamEOF(t *testing.T) {
	f := lineFixture(t, 2)
	tree, err := Build(f.table(distance.Upper), 0, vs(1))
	require.NoError(t, err)

	s := NewStream(tree, f.p)
	_, err = s.All()
	require.NoError(t, err)
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
}

func TestSingletonTerminalIsShortestPath(t *testing.T) {
	rng := rand.New(rand.NewPCG(10, 20))
	for trial := 0; trial < 20; trial++ {
		n := 3 + rng.IntN(10)
		var pairs [][2]int
		for i := 1; i < n; i++ {
			pairs = append(pairs, [2]int{rng.IntN(i), i})
		}
		f := newFixture(t, n, pairs, nil)
		tbl := f.table(distance.Upper)

		root, term := coupling.Vertex(rng.IntN(n)), coupling.Vertex(rng.IntN(n))
		tree, err := Build(tbl, root, []coupling.Vertex{term})
		require.NoError(t, err)

		want, ok := tbl.Lookup(root, term)
		require.True(t, ok)
		if len(want.Path) == 0 {
			assert.Empty(t, tree.Edges)
			continue
		}
		assert.Equal(t, want.Path, tree.Edges)
	}
}

func TestFullyConnectedStar(t *testing.T) {
	const n = 6
	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	f := newFixture(t, n, pairs, nil)

	tree, err := Build(f.table(distance.Upper), 2, vs(0, 1, 3, 4, 5))
	require.NoError(t, err)
	assert.Empty(t, tree.Steiner)
	assert.Equal(t, n-1, tree.Cost())
	for _, a := range tree.Edges {
		assert.Equal(t, coupling.Vertex(2), a.From)
	}
	for _, at := range tree.Attachments {
		assert.Equal(t, 1, at.Cost)
	}
}

func TestBuildTieBreak(t *testing.T) {
	// Square 0-1-3-2-0: both 1 and 2 reach 3 in one hop from the tree.
	f := newFixture(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, nil)
	tree, err := Build(f.table(distance.Upper), 0, vs(2, 1, 3))
	require.NoError(t, err)

	assert.Equal(t, vs(0, 2, 1, 3), tree.Vertices)
	assert.Equal(t, []distance.Arc{{From: 0, To: 2}, {From: 0, To: 1}, {From: 2, To: 3}}, tree.Edges,
		"terminal 3 attaches to 2, the earlier tree vertex")
}

func TestBuildDuplicatesAndRoot(t *testing.T) {
	f := lineFixture(t, 3)
	tree, err := Build(f.table(distance.Upper), 0, vs(0, 2, 2))
	require.NoError(t, err)

	assert.Equal(t, vs(0, 2), tree.Terminals)
	assert.Equal(t, vs(0, 2), tree.Vertices)
	assert.Equal(t, vs(1), tree.Steiner)
	assert.Equal(t, []distance.Arc{{From: 0, To: 1}, {From: 1, To: 2}}, tree.Edges)
}

func TestBuildNoTerminals(t *testing.T) {
	f := lineFixture(t, 3)
	tree, err := Build(f.table(distance.Upper), 1, nil)
	require.NoError(t, err)

	steps, err := NewStream(tree, f.p).All()
	require.NoError(t, err)
	assert.Equal(t, []Step{{Phase: PhaseDown, Sentinel: true}, {Phase: PhaseUp, Sentinel: true}}, steps)
}

func TestBuildErrors(t *testing.T) {
	f := lineFixture(t, 4)

	_, err := Build(f.table(distance.Full), 0, vs(3))
	assert.True(t, qerrors.IsRouting(err), "full policy cannot climb from 0: %v", err)

	window := distance.FloydWarshall(f.g, f.p, distance.NewSubset(vs(2, 3)), distance.Subset{}, distance.Upper)
	_, err = Build(window, 2, vs(1))
	assert.True(t, qerrors.IsConfiguration(err))
	_, err = Build(window, 0, vs(3))
	assert.True(t, qerrors.IsConfiguration(err))
}

func TestStreamTranslatesToQubits(t *testing.T) {
	f := newFixture(t, 3, [][2]int{{0, 1}, {1, 2}}, placement.Map{2, 1, 0})
	tree, err := Build(f.table(distance.Upper), f.p.QubitToVertex(0), []coupling.Vertex{f.p.QubitToVertex(2)})
	require.NoError(t, err)

	down, up, err := NewStream(tree, f.p).Phases()
	require.NoError(t, err)
	assert.Equal(t, []Step{pair(0, 1), pair(1, 2)}, down)
	assert.Equal(t, []Step{pair(1, 2), pair(0, 1)}, up)
}

func TestStreamBranching(t *testing.T) {
	// Root 0 with branches 0-1-2 and 0-3.
	f := newFixture(t, 4, [][2]int{{0, 1}, {1, 2}, {0, 3}}, nil)
	tree, err := Build(f.table(distance.Upper), 0, vs(2, 3))
	require.NoError(t, err)
	require.Equal(t, []distance.Arc{{From: 0, To: 3}, {From: 0, To: 1}, {From: 1, To: 2}}, tree.Edges)

	down, up, err := NewStream(tree, f.p).Phases()
	require.NoError(t, err)
	assert.Equal(t, []Step{pair(0, 3), pair(0, 1), pair(1, 2)}, down)
	// Round one: leaves 3 and 2 in attachment order; round two: Steiner point 1.
	assert.Equal(t, []Step{pair(0, 3), pair(1, 2), pair(0, 1)}, up)
}

func TestStreamInvariants(t *testing.T) {
	f := lineFixture(t, 3)

	t.Run("unreachable source stalls phase one", func(t *testing.T) {
		tree := &Tree{Root: 0, Vertices: vs(0, 1), Edges: []distance.Arc{{From: 2, To: 1}}}
		_, err := NewStream(tree, f.p).All()
		assert.True(t, qerrors.IsInternal(err), "got %v", err)
	})

	t.Run("double emission", func(t *testing.T) {
		tree := &Tree{Root: 0, Vertices: vs(0, 1), Edges: []distance.Arc{{From: 0, To: 1}, {From: 0, To: 1}}}
		_, err := NewStream(tree, f.p).All()
		assert.True(t, qerrors.IsInternal(err), "got %v", err)
	})

	t.Run("cycle stalls phase two", func(t *testing.T) {
		tree := &Tree{Root: 0, Vertices: vs(0, 1), Edges: []distance.Arc{{From: 0, To: 1}, {From: 1, To: 0}}}
		s := NewStream(tree, f.p)
		steps, err := s.All()
		assert.True(t, qerrors.IsInternal(err), "got %v", err)
		assert.Equal(t, []Step{pair(0, 1), pair(1, 0), {Phase: PhaseDown, Sentinel: true}}, steps)

		_, again := s.Next()
		assert.Equal(t, err, again, "errors are sticky")
	})
}

func TestBuildRecursive(t *testing.T) {
	f := lineFixture(t, 5)
	m := distance.NewMemo(f.p, nil)
	usable := distance.NewSubset(vs(1, 2, 3))

	tree, err := BuildRecursive(m, 3, vs(1), usable, distance.Subset{}, distance.Full)
	require.NoError(t, err)
	assert.Equal(t, []distance.Arc{{From: 3, To: 2}, {From: 2, To: 1}}, tree.Edges)

	_, err = BuildRecursive(m, 1, vs(3), usable, distance.Subset{}, distance.Full)
	assert.True(t, qerrors.IsRouting(err))

	tree, err = BuildRecursive(m, 1, vs(3), usable, distance.NewSubset(vs(1, 2, 3)), distance.Full)
	require.NoError(t, err, "recursion vertices relax the order")
	assert.Equal(t, 2, tree.Cost())

	_, err = BuildRecursive(m, 3, vs(0), usable, distance.Subset{}, distance.Upper)
	assert.True(t, qerrors.IsConfiguration(err))
	_, err = BuildRecursive(m, 4, vs(1), usable, distance.Subset{}, distance.Upper)
	assert.True(t, qerrors.IsConfiguration(err))

	_, err = BuildRecursive(m, 1, vs(3), distance.NewSubset(vs(1, 3)), distance.Subset{}, distance.Upper)
	assert.True(t, qerrors.IsRouting(err))
	assert.Equal(t, 3, m.Len())
}
