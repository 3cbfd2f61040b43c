package distance

import (
	"slices"

	"github.com/matzehuels/qroute/pkg/coupling"
	"github.com/matzehuels/qroute/pkg/placement"
)

// noPath marks a missing entry in the cost matrix.
const noPath = -1

// Table holds the shortest entries between every ordered pair of a vertex
// subset. Entries are stored densely, indexed by position in the ascending
// vertex list.
type Table struct {
	vertices []coupling.Vertex
	index    map[coupling.Vertex]int
	cost     []int
	paths    [][]Arc
}

func newTable(vertices []coupling.Vertex) *Table {
	k := len(vertices)
	t := &Table{
		vertices: vertices,
		index:    make(map[coupling.Vertex]int, k),
		cost:     make([]int, k*k),
		paths:    make([][]Arc, k*k),
	}
	for i, v := range vertices {
		t.index[v] = i
	}
	for i := range t.cost {
		t.cost[i] = noPath
	}
	for i := range vertices {
		t.cost[i*k+i] = 0
	}
	return t
}

// Vertices returns the subset the table covers, ascending. The slice must
// not be modified.
func (t *Table) Vertices() []coupling.Vertex { return t.vertices }

// Len returns the number of vertices covered.
func (t *Table) Len() int { return len(t.vertices) }

// Contains reports whether v is covered by the table.
func (t *Table) Contains(v coupling.Vertex) bool {
	_, ok := t.index[v]
	return ok
}

// Lookup returns the entry from -> to. ok is false when either vertex is
// outside the table or no path exists under the table's policy.
// The returned path must not be modified.
func (t *Table) Lookup(from, to coupling.Vertex) (Entry, bool) {
	i, ok := t.index[from]
	if !ok {
		return Entry{}, false
	}
	j, ok := t.index[to]
	if !ok {
		return Entry{}, false
	}
	c := t.cost[i*len(t.vertices)+j]
	if c == noPath {
		return Entry{}, false
	}
	return Entry{Cost: c, Path: t.paths[i*len(t.vertices)+j]}, true
}

// set stores an entry by position.
func (t *Table) set(i, j, cost int, path []Arc) {
	k := len(t.vertices)
	t.cost[i*k+j] = cost
	t.paths[i*k+j] = path
}

// FloydWarshall computes all-pairs shortest paths over the subgraph of g
// induced by subset, under the given policy. Arc direction under Full is
// decided by the logical qubits of p; rec lists the vertices between which
// Full allows both directions and is ignored under Upper.
//
// An entry is replaced only by a strictly shorter route, so among equal
// costs the first route found is kept. Under Upper the reverse entry is
// written together with the forward one, keeping the table symmetric.
func FloydWarshall(g *coupling.Graph, p *placement.Placement, subset, rec Subset, policy Policy) *Table {
	t := newTable(subset.Vertices())
	k := len(t.vertices)

	for _, e := range g.Edges() {
		i, okA := t.index[e.A]
		j, okB := t.index[e.B]
		if !okA || !okB {
			continue
		}
		if policy == Upper || (rec.Contains(e.A) && rec.Contains(e.B)) {
			t.set(i, j, 1, []Arc{{e.A, e.B}})
			t.set(j, i, 1, []Arc{{e.B, e.A}})
			continue
		}
		qa, _ := p.VertexToQubit(e.A)
		qb, _ := p.VertexToQubit(e.B)
		if qa > qb {
			t.set(i, j, 1, []Arc{{e.A, e.B}})
		} else {
			t.set(j, i, 1, []Arc{{e.B, e.A}})
		}
	}

	for m := 0; m < k; m++ {
		for s := 0; s < k; s++ {
			sm := t.cost[s*k+m]
			if sm == noPath || s == m {
				continue
			}
			for d := 0; d < k; d++ {
				md := t.cost[m*k+d]
				if md == noPath || d == m || d == s {
					continue
				}
				cur := t.cost[s*k+d]
				if cur != noPath && cur <= sm+md {
					continue
				}
				t.set(s, d, sm+md, slices.Concat(t.paths[s*k+m], t.paths[m*k+d]))
				if policy == Upper {
					t.set(d, s, sm+md, slices.Concat(t.paths[d*k+m], t.paths[m*k+s]))
				}
			}
		}
	}
	return t
}
