// Package steiner builds approximate Steiner trees over a distance table and
// walks them in the two-phase order gate synthesis consumes.
//
// [Build] grows a tree from a root by repeatedly attaching the remaining
// terminal that is cheapest to reach from any vertex already in the tree,
// splicing in the table's shortest path. Interior path vertices become
// Steiner points. The result approximates a minimum Steiner tree; it is not
// optimal.
//
// A [Stream] then emits the tree twice: first root to leaves in waves, then
// leaves to root, each phase closed by a sentinel [Step].
package steiner

import (
	"slices"

	"github.com/matzehuels/qroute/pkg/coupling"
	"github.com/matzehuels/qroute/pkg/distance"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

// Attachment records one greedy step of Build: terminal was reached from
// the tree vertex From along Path.
type Attachment struct {
	Terminal coupling.Vertex
	From     coupling.Vertex
	Cost     int
	Path     []distance.Arc
}

// Tree is a rooted Steiner tree. Edges point away from the root.
type Tree struct {
	Root coupling.Vertex
	// Terminals are the requested terminals, deduplicated, in input order.
	Terminals []coupling.Vertex
	// Vertices are the root followed by terminals in attachment order.
	Vertices []coupling.Vertex
	// Steiner are the non-terminal vertices the tree passes through, in
	// the order they were added.
	Steiner []coupling.Vertex
	// Edges are the tree arcs in the order they were spliced in.
	Edges []distance.Arc
	// Attachments log each greedy step.
	Attachments []Attachment
}

// Cost returns the number of tree edges.
func (t *Tree) Cost() int { return len(t.Edges) }

// Build approximates a minimum Steiner tree rooted at root that spans
// terminals, using shortest paths from tbl.
//
// At each step it considers every (tree or Steiner vertex, remaining
// terminal) pair with a table entry and takes the cheapest. Ties go to the
// first pair found: terminals in input order, then tree vertices in
// insertion order, then Steiner vertices in insertion order.
//
// Root or terminals outside tbl are a CONFIGURATION error. A terminal no
// tree vertex can reach is a ROUTING error; no partial tree is returned.
func Build(tbl *distance.Table, root coupling.Vertex, terminals []coupling.Vertex) (*Tree, error) {
	if !tbl.Contains(root) {
		return nil, qerrors.Configuration("root vertex %d is outside the routing window", root).
			With("window", tbl.Vertices())
	}
	remaining := make([]coupling.Vertex, 0, len(terminals))
	for _, v := range terminals {
		if !tbl.Contains(v) {
			return nil, qerrors.Configuration("terminal vertex %d is outside the routing window", v).
				With("window", tbl.Vertices())
		}
		if !slices.Contains(remaining, v) {
			remaining = append(remaining, v)
		}
	}

	t := &Tree{
		Root:      root,
		Terminals: slices.Clone(remaining),
		Vertices:  []coupling.Vertex{root},
	}
	inTree := map[coupling.Vertex]bool{root: true}
	isVertex := map[coupling.Vertex]bool{root: true}
	edgeSet := make(map[distance.Arc]bool)

	for len(remaining) > 0 {
		best, bestTerm, found := Attachment{}, -1, false
		for ti, term := range remaining {
			for _, src := range [][]coupling.Vertex{t.Vertices, t.Steiner} {
				for _, v := range src {
					e, ok := tbl.Lookup(v, term)
					if !ok || (found && e.Cost >= best.Cost) {
						continue
					}
					best = Attachment{Terminal: term, From: v, Cost: e.Cost, Path: e.Path}
					bestTerm, found = ti, true
				}
			}
		}
		if !found {
			return nil, qerrors.Routing("no path from the tree rooted at %d to terminals %v", root, remaining).
				With("root", root).
				With("remaining", slices.Clone(remaining)).
				With("window", tbl.Vertices())
		}

		t.Attachments = append(t.Attachments, best)
		if !isVertex[best.Terminal] {
			isVertex[best.Terminal] = true
			t.Vertices = append(t.Vertices, best.Terminal)
		}
		inTree[best.Terminal] = true
		for _, a := range best.Path {
			if !edgeSet[a] {
				edgeSet[a] = true
				t.Edges = append(t.Edges, a)
			}
			for _, v := range []coupling.Vertex{a.From, a.To} {
				if !inTree[v] {
					inTree[v] = true
					t.Steiner = append(t.Steiner, v)
				}
			}
		}
		remaining = slices.Delete(remaining, bestTerm, bestTerm+1)
	}
	return t, nil
}
