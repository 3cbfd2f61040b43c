// Package coupling models the physical connectivity of a quantum device.
//
// A [Graph] is an immutable undirected simple graph: vertices are physical
// qubit sites and edges are the pairs that support a two-qubit gate. Graphs
// are built once, via [New], [FromEdges] or [FromMatrix], and never mutated.
// An adjacency index is built at construction so [Graph.Neighbors] runs in
// O(degree) - every other routing component calls it in inner loops.
//
// Vertex identifiers are opaque to callers of the routing API; logical qubit
// indices are mapped onto them by the placement package.
//
// # Concurrency
//
// Graph values are read-only after construction and safe for concurrent use.
package coupling

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

var (
	// ErrSelfLoop is returned when an edge connects a vertex to itself.
	ErrSelfLoop = errors.New("self-loop")

	// ErrDuplicateEdge is returned when the same unordered pair appears twice.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrDuplicateVertex is returned when a vertex identifier repeats.
	ErrDuplicateVertex = errors.New("duplicate vertex")

	// ErrUnknownVertex is returned when an edge references a vertex outside
	// the vertex set.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrNotSquare is returned by FromMatrix for non-square input.
	ErrNotSquare = errors.New("adjacency matrix is not square")

	// ErrNegativeVertex is returned for vertex identifiers below zero.
	ErrNegativeVertex = errors.New("negative vertex")
)

// Vertex is a physical qubit site. Identifiers are non-negative.
type Vertex int

// Edge is an unordered pair of distinct vertices, stored with A < B.
type Edge struct {
	A, B Vertex
}

// NewEdge returns the canonical form of the pair (u, v).
func NewEdge(u, v Vertex) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{A: u, B: v}
}

// String renders the edge as "a-b".
func (e Edge) String() string { return fmt.Sprintf("%d-%d", e.A, e.B) }

// Graph is an immutable undirected coupling graph.
//
// The zero value is an empty graph; use New, FromEdges or FromMatrix.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	adj      map[Vertex][]Vertex
	edgeSet  map[Edge]struct{}
}

// New builds a graph from an explicit vertex set and edge list.
// Vertices and edges are stored sorted ascending.
func New(vertices []Vertex, edges []Edge) (*Graph, error) {
	g := &Graph{
		vertices: slices.Clone(vertices),
		adj:      make(map[Vertex][]Vertex, len(vertices)),
		edgeSet:  make(map[Edge]struct{}, len(edges)),
	}
	slices.Sort(g.vertices)
	for i, v := range g.vertices {
		if v < 0 {
			return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, ErrNegativeVertex, "vertex %d", v)
		}
		if i > 0 && g.vertices[i-1] == v {
			return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, ErrDuplicateVertex, "vertex %d", v)
		}
		g.adj[v] = nil
	}

	for _, e := range edges {
		if e.A == e.B {
			return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, ErrSelfLoop, "edge %s", e)
		}
		e = NewEdge(e.A, e.B)
		if _, ok := g.adj[e.A]; !ok {
			return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, ErrUnknownVertex, "edge %s: vertex %d", e, e.A)
		}
		if _, ok := g.adj[e.B]; !ok {
			return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, ErrUnknownVertex, "edge %s: vertex %d", e, e.B)
		}
		if _, dup := g.edgeSet[e]; dup {
			return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, ErrDuplicateEdge, "edge %s", e)
		}
		g.edgeSet[e] = struct{}{}
		g.edges = append(g.edges, e)
		g.adj[e.A] = append(g.adj[e.A], e.B)
		g.adj[e.B] = append(g.adj[e.B], e.A)
	}

	slices.SortFunc(g.edges, compareEdges)
	for v := range g.adj {
		slices.Sort(g.adj[v])
	}
	return g, nil
}

// FromEdges builds a graph on vertices 0..n-1 from integer pairs.
func FromEdges(n int, pairs [][2]int) (*Graph, error) {
	if n < 0 {
		return nil, qerrors.Configuration("negative vertex count %d", n)
	}
	vertices := make([]Vertex, n)
	for i := range vertices {
		vertices[i] = Vertex(i)
	}
	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{A: Vertex(p[0]), B: Vertex(p[1])}
	}
	return New(vertices, edges)
}

// FromMatrix builds a graph from a square 0/1 adjacency matrix. Vertex i is
// row i and edge (i,j) exists iff m[i][j] == 1.
//
// The matrix is expected to be symmetric. Asymmetric input is accepted and
// yields its symmetric closure: an entry of 1 in either direction creates
// the edge. A 1 on the diagonal is rejected as a self-loop.
func FromMatrix(m [][]int) (*Graph, error) {
	n := len(m)
	for i, row := range m {
		if len(row) != n {
			return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, ErrNotSquare,
				"row %d has %d columns, want %d", i, len(row), n)
		}
	}

	var pairs [][2]int
	seen := make(map[Edge]struct{})
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m[i][j] != 1 {
				continue
			}
			if i == j {
				return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, ErrSelfLoop, "diagonal entry %d", i)
			}
			e := NewEdge(Vertex(i), Vertex(j))
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			pairs = append(pairs, [2]int{int(e.A), int(e.B)})
		}
	}
	return FromEdges(n, pairs)
}

// Vertices returns the vertex set sorted ascending. The slice must not be modified.
func (g *Graph) Vertices() []Vertex { return g.vertices }

// Edges returns the edges sorted by (A, B). The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Contains reports whether v is a vertex of g.
func (g *Graph) Contains(v Vertex) bool {
	_, ok := g.adj[v]
	return ok
}

// Neighbors returns the neighbors of v sorted ascending, or nil if v is not
// a vertex. The slice must not be modified.
func (g *Graph) Neighbors(v Vertex) []Vertex { return g.adj[v] }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v Vertex) int { return len(g.adj[v]) }

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v Vertex) bool {
	_, ok := g.edgeSet[NewEdge(u, v)]
	return ok
}

// MaxVertex returns the largest vertex identifier. It panics on an empty graph.
func (g *Graph) MaxVertex() Vertex { return g.vertices[len(g.vertices)-1] }

// Connected reports whether every vertex is reachable from every other.
// The empty graph is connected.
func (g *Graph) Connected() bool {
	if len(g.vertices) == 0 {
		return true
	}
	seen := map[Vertex]bool{g.vertices[0]: true}
	stack := []Vertex{g.vertices[0]}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, w := range g.adj[v] {
			if !seen[w] {
				seen[w] = true
				stack = append(stack, w)
			}
		}
	}
	return len(seen) == len(g.vertices)
}

// Matrix returns the 0/1 adjacency matrix indexed by vertex position in
// Vertices().
func (g *Graph) Matrix() [][]int {
	pos := make(map[Vertex]int, len(g.vertices))
	for i, v := range g.vertices {
		pos[v] = i
	}
	m := make([][]int, len(g.vertices))
	for i := range m {
		m[i] = make([]int, len(g.vertices))
	}
	for _, e := range g.edges {
		m[pos[e.A]][pos[e.B]] = 1
		m[pos[e.B]][pos[e.A]] = 1
	}
	return m
}

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.A, b.A); c != 0 {
		return c
	}
	return cmp.Compare(a.B, b.B)
}
