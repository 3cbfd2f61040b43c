package distance

import (
	"slices"

	"github.com/matzehuels/qroute/pkg/coupling"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

// ShortestPath finds a fewest-hop vertex path from start to end that stays
// inside usable, by breadth-first search. Neighbors are explored in
// ascending order and the first visit to a vertex wins, so the result is
// deterministic. The path includes both endpoints.
//
// Endpoints outside usable are a CONFIGURATION error; disconnected endpoints
// are a ROUTING error.
func ShortestPath(g *coupling.Graph, start, end coupling.Vertex, usable Subset) ([]coupling.Vertex, error) {
	for _, v := range []coupling.Vertex{start, end} {
		if !usable.Contains(v) || !g.Contains(v) {
			return nil, qerrors.Configuration("vertex %d is outside the usable set", v).
				With("usable", usable.Key())
		}
	}

	parent := map[coupling.Vertex]coupling.Vertex{start: start}
	queue := []coupling.Vertex{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if v == end {
			path := []coupling.Vertex{end}
			for path[len(path)-1] != start {
				path = append(path, parent[path[len(path)-1]])
			}
			slices.Reverse(path)
			return path, nil
		}
		for _, w := range g.Neighbors(v) {
			if _, seen := parent[w]; seen || !usable.Contains(w) {
				continue
			}
			parent[w] = v
			queue = append(queue, w)
		}
	}
	return nil, qerrors.Routing("no path from vertex %d to %d", start, end).
		With("usable", usable.Key())
}
