// Package articulation finds cut vertices of induced subgraphs of a coupling
// graph.
//
// A vertex is cutting (an articulation point) when removing it increases the
// number of connected components. [CutVertices] runs the classic low-link
// algorithm in a single depth-first pass per component:
//
//   - a non-root vertex v is cutting if some DFS child c has low[c] >= disc[v]
//   - a DFS root is cutting iff it has more than one DFS child
//
// The traversal uses an explicit stack of frames, so device size is bounded
// by memory rather than goroutine stack depth.
package articulation

import (
	"github.com/matzehuels/qroute/pkg/coupling"
)

// frame is one simulated call of the recursive low-link DFS.
type frame struct {
	v        int // position in the subset
	parent   int // position of the DFS parent, -1 for a root
	next     int // index into the neighbor list
	children int
}

// CutVertices reports, for each vertex of subset, whether it is a cut vertex
// of the subgraph induced by subset. The result is aligned with subset.
// Vertices of subset that are not in g are treated as isolated.
func CutVertices(g *coupling.Graph, subset []coupling.Vertex) []bool {
	n := len(subset)
	pos := make(map[coupling.Vertex]int, n)
	for i, v := range subset {
		pos[v] = i
	}

	// Induced adjacency in subset positions, in the graph's neighbor order.
	adj := make([][]int, n)
	for i, v := range subset {
		for _, w := range g.Neighbors(v) {
			if j, ok := pos[w]; ok {
				adj[i] = append(adj[i], j)
			}
		}
	}

	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	cutting := make([]bool, n)
	timer := 0

	stack := make([]frame, 0, n)
	for root := 0; root < n; root++ {
		if disc[root] != -1 {
			continue
		}
		disc[root], low[root] = timer, timer
		timer++
		stack = append(stack, frame{v: root, parent: -1})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(adj[f.v]) {
				w := adj[f.v][f.next]
				f.next++
				switch {
				case disc[w] == -1:
					f.children++
					disc[w], low[w] = timer, timer
					timer++
					stack = append(stack, frame{v: w, parent: f.v})
				case w != f.parent:
					low[f.v] = min(low[f.v], disc[w])
				}
				continue
			}

			// All neighbors done: return to the parent.
			done := *f
			stack = stack[:len(stack)-1]
			if done.parent == -1 {
				if done.children > 1 {
					cutting[done.v] = true
				}
				continue
			}
			p := &stack[len(stack)-1]
			low[p.v] = min(low[p.v], low[done.v])
			if p.parent != -1 && low[done.v] >= disc[p.v] {
				cutting[p.v] = true
			}
		}
	}
	return cutting
}

// NonCutting returns the vertices of subset that are not cut vertices of the
// induced subgraph, in subset order.
func NonCutting(g *coupling.Graph, subset []coupling.Vertex) []coupling.Vertex {
	cutting := CutVertices(g, subset)
	out := make([]coupling.Vertex, 0, len(subset))
	for i, v := range subset {
		if !cutting[i] {
			out = append(out, v)
		}
	}
	return out
}

// Components counts the connected components of the subgraph induced by subset.
func Components(g *coupling.Graph, subset []coupling.Vertex) int {
	in := make(map[coupling.Vertex]bool, len(subset))
	for _, v := range subset {
		in[v] = true
	}
	seen := make(map[coupling.Vertex]bool, len(subset))
	count := 0
	for _, start := range subset {
		if seen[start] {
			continue
		}
		count++
		seen[start] = true
		stack := []coupling.Vertex{start}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, w := range g.Neighbors(v) {
				if in[w] && !seen[w] {
					seen[w] = true
					stack = append(stack, w)
				}
			}
		}
	}
	return count
}
