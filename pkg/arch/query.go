package arch

import (
	"slices"
	"time"

	"github.com/matzehuels/qroute/pkg/articulation"
	"github.com/matzehuels/qroute/pkg/coupling"
	"github.com/matzehuels/qroute/pkg/distance"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/observability"
	"github.com/matzehuels/qroute/pkg/steiner"
)

// Query names reported to observability hooks.
const (
	OpDistance     = "distance"
	OpSteiner      = "steiner"
	OpRecSteiner   = "rec_steiner"
	OpShortestPath = "shortest_path"
)

// Hop is one directed coupling edge between two qubits.
type Hop struct {
	From, To int
}

// Route is a shortest path between two qubits and its length.
type Route struct {
	Cost int
	Path []Hop
}

// =============================================================================
// Distance queries
// =============================================================================

// Distance returns the shortest path from root to other under policy.
//
// Paths are taken from the table for root's window: under Upper the
// vertices from root's upwards, under Full those up to root's. An other
// qubit outside that window is a CONFIGURATION error. Under Full a pair
// that the ordering constraint leaves unconnected is a ROUTING error.
func (a *Architecture) Distance(root, other int, policy distance.Policy) (r Route, err error) {
	defer a.observe(OpDistance, time.Now(), &err)

	n := a.QubitCount()
	if err := qerrors.ValidateQubit(root, n); err != nil {
		return Route{}, err
	}
	if err := qerrors.ValidateQubit(other, n); err != nil {
		return Route{}, err
	}
	tbl, err := a.window(policy, root)
	if err != nil {
		return Route{}, err
	}
	ov := a.p.QubitToVertex(other)
	if !tbl.Contains(ov) {
		return Route{}, qerrors.Configuration("qubit %d is outside the %s window of root qubit %d", other, policy, root).
			With("root", root).
			With("qubit", other)
	}
	e, ok := tbl.Lookup(a.p.QubitToVertex(root), ov)
	if !ok {
		return Route{}, qerrors.Routing("no %s path from qubit %d to qubit %d", policy, root, other).
			With("root", root).
			With("qubit", other)
	}
	return Route{Cost: e.Cost, Path: a.hops(e.Path)}, nil
}

// ShortestPath returns a BFS shortest path from start to end, as qubits
// including both endpoints, using only usable qubits. A nil usable allows
// every qubit.
func (a *Architecture) ShortestPath(start, end int, usable []int) (path []int, err error) {
	defer a.observe(OpShortestPath, time.Now(), &err)

	n := a.QubitCount()
	if err := qerrors.ValidateQubits("path endpoint", []int{start, end}, n); err != nil {
		return nil, err
	}
	var set distance.Subset
	if usable == nil {
		set = distance.NewSubset(a.g.Vertices())
	} else {
		if err := qerrors.ValidateQubits("usable", usable, n); err != nil {
			return nil, err
		}
		set = distance.NewSubset(a.p.Vertices(usable))
	}
	vs, err := distance.ShortestPath(a.g, a.p.QubitToVertex(start), a.p.QubitToVertex(end), set)
	if err != nil {
		return nil, err
	}
	return a.p.Qubits(vs), nil
}

// window validates the root and returns its precomputed table.
func (a *Architecture) window(policy distance.Policy, root int) (*distance.Table, error) {
	f, err := a.tables()
	if err != nil {
		return nil, err
	}
	return f.Window(policy, a.p.QubitToVertex(root))
}

// =============================================================================
// Steiner trees
// =============================================================================

// SteinerTree builds a Steiner tree rooted at root spanning terminals, over
// the precomputed table for root's window, and returns its two-phase
// stream. Terminals outside the window are a CONFIGURATION error.
func (a *Architecture) SteinerTree(root int, terminals []int, policy distance.Policy) (s *steiner.Stream, err error) {
	defer a.observe(OpSteiner, time.Now(), &err)

	n := a.QubitCount()
	if err := qerrors.ValidateQubit(root, n); err != nil {
		return nil, err
	}
	if err := qerrors.ValidateQubits("terminal", terminals, n); err != nil {
		return nil, err
	}
	tbl, err := a.window(policy, root)
	if err != nil {
		return nil, err
	}
	for _, q := range terminals {
		if !tbl.Contains(a.p.QubitToVertex(q)) {
			return nil, qerrors.Configuration("terminal qubit %d is outside the %s window of root qubit %d", q, policy, root).
				With("root", root).
				With("terminals", slices.Clone(terminals))
		}
	}

	t, err := steiner.Build(tbl, a.p.QubitToVertex(root), a.p.Vertices(terminals))
	if err != nil {
		return nil, err
	}
	a.recordTree(t, policy)
	return steiner.NewStream(t, a.p), nil
}

// RecSteinerTree is SteinerTree restricted to the usable qubits. Under
// Full, edges between two recursion qubits may be used in both directions.
// Root or terminals outside usable are a CONFIGURATION error.
//
// Tables are computed per (policy, usable, recursion) combination and kept
// for the lifetime of the architecture.
func (a *Architecture) RecSteinerTree(root int, terminals, usable, recursion []int, policy distance.Policy) (s *steiner.Stream, err error) {
	defer a.observe(OpRecSteiner, time.Now(), &err)

	n := a.QubitCount()
	if err := qerrors.ValidateQubit(root, n); err != nil {
		return nil, err
	}
	if err := qerrors.ValidateQubits("terminal", terminals, n); err != nil {
		return nil, err
	}
	if err := qerrors.ValidateQubits("usable", usable, n); err != nil {
		return nil, err
	}
	if err := qerrors.ValidateQubits("recursion", recursion, n); err != nil {
		return nil, err
	}
	if !slices.Contains(usable, root) {
		return nil, qerrors.Configuration("root qubit %d is not usable", root).
			With("usable", slices.Clone(usable))
	}
	for _, q := range terminals {
		if !slices.Contains(usable, q) {
			return nil, qerrors.Configuration("terminal qubit %d is not usable", q).
				With("usable", slices.Clone(usable))
		}
	}

	t, err := steiner.BuildRecursive(a.memo,
		a.p.QubitToVertex(root),
		a.p.Vertices(terminals),
		distance.NewSubset(a.p.Vertices(usable)),
		distance.NewSubset(a.p.Vertices(recursion)),
		policy)
	if err != nil {
		return nil, err
	}
	a.recordTree(t, policy)
	return steiner.NewStream(t, a.p), nil
}

func (a *Architecture) recordTree(t *steiner.Tree, policy distance.Policy) {
	observability.Routing().OnTree(a.name, policy.String(), len(t.Terminals), len(t.Steiner), len(t.Edges))
	if !a.cfg.trace {
		return
	}
	root, _ := a.p.VertexToQubit(t.Root)
	for _, at := range t.Attachments {
		term, _ := a.p.VertexToQubit(at.Terminal)
		from, _ := a.p.VertexToQubit(at.From)
		a.logger.Debug("steiner attach",
			"root", root,
			"terminal", term,
			"from", from,
			"cost", at.Cost,
			"path", a.hops(at.Path))
	}
	a.logger.Debug("steiner tree",
		"root", root,
		"policy", policy,
		"edges", len(t.Edges),
		"steiner", a.p.Qubits(t.Steiner))
}

// =============================================================================
// Topology queries
// =============================================================================

// Neighbors returns the qubits coupled to q, ascending.
func (a *Architecture) Neighbors(q int) ([]int, error) {
	if err := qerrors.ValidateQubit(q, a.QubitCount()); err != nil {
		return nil, err
	}
	return a.p.Neighbors(q), nil
}

// NonCuttingQubits returns the qubits of subset whose removal leaves the
// subgraph induced by subset with no more components than before, in
// subset order. Duplicates are dropped. Results are memoized per distinct
// qubit set.
func (a *Architecture) NonCuttingQubits(subset []int) ([]int, error) {
	if err := qerrors.ValidateQubits("subset", subset, a.QubitCount()); err != nil {
		return nil, err
	}
	var qs []int
	for _, q := range subset {
		if !slices.Contains(qs, q) {
			qs = append(qs, q)
		}
	}
	keep := a.nonCuttingSet(distance.NewSubset(a.p.Vertices(qs)))

	out := make([]int, 0, len(qs))
	for _, q := range qs {
		if keep[a.p.QubitToVertex(q)] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (a *Architecture) nonCuttingSet(set distance.Subset) map[coupling.Vertex]bool {
	key := set.Key()
	a.ncMu.Lock()
	defer a.ncMu.Unlock()
	if keep, ok := a.nonCutting[key]; ok {
		return keep
	}
	keep := make(map[coupling.Vertex]bool)
	for _, v := range articulation.NonCutting(a.g, set.Vertices()) {
		keep[v] = true
	}
	a.nonCutting[key] = keep
	return keep
}

// =============================================================================
// Helpers
// =============================================================================

func (a *Architecture) hops(path []distance.Arc) []Hop {
	out := make([]Hop, len(path))
	for i, arc := range path {
		from, _ := a.p.VertexToQubit(arc.From)
		to, _ := a.p.VertexToQubit(arc.To)
		out[i] = Hop{From: from, To: to}
	}
	return out
}

func (a *Architecture) observe(op string, start time.Time, err *error) {
	observability.Routing().OnQuery(a.name, op, time.Since(start), *err)
}
