// Package placement assigns logical qubits to physical coupling-graph vertices.
//
// A [Map] is the bijection qubit -> vertex: m[q] is the vertex holding
// logical qubit q. [Default] derives one from the graph by post-order
// depth-first labeling; [Identity] maps qubit i to the i-th smallest vertex.
// A [Placement] wraps a validated map with the reverse index and the
// qubit-space views every routing query needs.
//
// [ReduceOrder] derives the safe elimination sequence of a placement: at
// every step the removed qubit is a non-cutting vertex of what remains, so
// the remainder never splits into more than one component.
package placement

import (
	"slices"

	"github.com/matzehuels/qroute/pkg/articulation"
	"github.com/matzehuels/qroute/pkg/coupling"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

// Map maps logical qubit indices to physical vertices.
type Map []coupling.Vertex

// Reversed returns a copy of the map with qubit order reversed, so qubit q
// lands where qubit n-1-q was.
func (m Map) Reversed() Map {
	out := slices.Clone(m)
	slices.Reverse(out)
	return out
}

// Placement is a validated qubit map bound to its coupling graph.
// It is read-only after construction and safe for concurrent use.
type Placement struct {
	g       *coupling.Graph
	toVtx   Map
	toQubit map[coupling.Vertex]int
}

// New validates m against g and builds the reverse index.
func New(g *coupling.Graph, m Map) (*Placement, error) {
	if err := Validate(g, m); err != nil {
		return nil, err
	}
	p := &Placement{
		g:       g,
		toVtx:   slices.Clone(m),
		toQubit: make(map[coupling.Vertex]int, len(m)),
	}
	for q, v := range p.toVtx {
		p.toQubit[v] = q
	}
	return p, nil
}

// Validate checks that m is a bijection between 0..n-1 and the vertices of g.
func Validate(g *coupling.Graph, m Map) error {
	if len(m) != g.Len() {
		return qerrors.Configuration("qubit map has %d entries, graph has %d vertices", len(m), g.Len()).
			With("qubit_map", slices.Clone(m))
	}
	seen := make(map[coupling.Vertex]int, len(m))
	for q, v := range m {
		if !g.Contains(v) {
			return qerrors.Configuration("qubit map: qubit %d placed on unknown vertex %d", q, v).
				With("qubit", q)
		}
		if prev, dup := seen[v]; dup {
			return qerrors.Configuration("qubit map: qubits %d and %d share vertex %d", prev, q, v).
				With("qubit", q)
		}
		seen[v] = q
	}
	return nil
}

// Identity maps qubit i to the i-th smallest vertex of g.
func Identity(g *coupling.Graph) Map {
	return slices.Clone(Map(g.Vertices()))
}

// Default labels g by an iterative depth-first traversal started at the
// largest vertex, visiting unvisited neighbors in descending order. Each
// vertex is labeled with its finishing position: the first vertex to finish
// becomes qubit 0 and the start vertex becomes qubit n-1.
//
// A disconnected graph cannot be fully labeled and yields a CONFIGURATION
// error.
func Default(g *coupling.Graph) (Map, error) {
	if g.Len() == 0 {
		return nil, qerrors.Configuration("cannot place qubits on an empty coupling graph")
	}

	type frame struct {
		v    coupling.Vertex
		next int // index into the descending neighbor list
	}
	descending := func(v coupling.Vertex) []coupling.Vertex {
		ns := slices.Clone(g.Neighbors(v))
		slices.Reverse(ns)
		return ns
	}

	start := g.MaxVertex()
	visited := map[coupling.Vertex]bool{start: true}
	order := make(Map, 0, g.Len())
	stack := []frame{{v: start}}
	neighbors := map[coupling.Vertex][]coupling.Vertex{start: descending(start)}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		ns := neighbors[f.v]
		for f.next < len(ns) && visited[ns[f.next]] {
			f.next++
		}
		if f.next == len(ns) {
			order = append(order, f.v)
			delete(neighbors, f.v)
			stack = stack[:len(stack)-1]
			continue
		}
		w := ns[f.next]
		f.next++
		visited[w] = true
		neighbors[w] = descending(w)
		stack = append(stack, frame{v: w})
	}

	if len(order) != g.Len() {
		return nil, qerrors.Configuration("coupling graph is disconnected: reached %d of %d vertices from %d",
			len(order), g.Len(), start).
			With("reached", len(order))
	}
	return order, nil
}

// Graph returns the coupling graph the placement is bound to.
func (p *Placement) Graph() *coupling.Graph { return p.g }

// Len returns the number of qubits.
func (p *Placement) Len() int { return len(p.toVtx) }

// Map returns a copy of the qubit map.
func (p *Placement) Map() Map { return slices.Clone(p.toVtx) }

// QubitToVertex returns the vertex holding qubit q. q must be in range.
func (p *Placement) QubitToVertex(q int) coupling.Vertex { return p.toVtx[q] }

// VertexToQubit returns the qubit stored on v.
func (p *Placement) VertexToQubit(v coupling.Vertex) (int, bool) {
	q, ok := p.toQubit[v]
	return q, ok
}

// Vertices maps a list of qubits to their vertices, preserving order.
func (p *Placement) Vertices(qs []int) []coupling.Vertex {
	out := make([]coupling.Vertex, len(qs))
	for i, q := range qs {
		out[i] = p.toVtx[q]
	}
	return out
}

// Qubits maps a list of vertices to their qubits, preserving order.
func (p *Placement) Qubits(vs []coupling.Vertex) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = p.toQubit[v]
	}
	return out
}

// Neighbors returns the qubits adjacent to q, sorted ascending.
func (p *Placement) Neighbors(q int) []int {
	ns := p.Qubits(p.g.Neighbors(p.toVtx[q]))
	slices.Sort(ns)
	return ns
}

// Reversed returns a placement on the same graph with the qubit order
// reversed.
func (p *Placement) Reversed() *Placement {
	r, _ := New(p.g, p.toVtx.Reversed())
	return r
}

// ReduceOrder computes the elimination order of p. Remaining vertices are
// ranked from the largest to the smallest qubit index; each step removes
// the first one that is not a cut vertex of the induced remainder.
//
// For a connected graph a non-cutting vertex always exists, so failing to
// find one is an INTERNAL_INVARIANT error.
func ReduceOrder(p *Placement) ([]int, error) {
	n := p.Len()
	remaining := make([]coupling.Vertex, n)
	for i := range remaining {
		remaining[i] = p.toVtx[n-1-i]
	}

	order := make([]int, 0, n)
	for len(remaining) > 0 {
		cutting := articulation.CutVertices(p.g, remaining)
		leaf := slices.Index(cutting, false)
		if leaf < 0 {
			return nil, qerrors.Internal("no non-cutting vertex among %d remaining", len(remaining)).
				With("remaining", p.Qubits(remaining)).
				With("order", slices.Clone(order))
		}
		q, _ := p.VertexToQubit(remaining[leaf])
		order = append(order, q)
		remaining = slices.Delete(remaining, leaf, leaf+1)
	}
	return order, nil
}

// ValidateReduceOrder checks that order is a permutation of 0..n-1.
func ValidateReduceOrder(order []int, n int) error {
	return qerrors.ValidatePermutation("reduce order", order, n)
}
