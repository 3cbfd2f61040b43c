package steiner

import (
	"github.com/matzehuels/qroute/pkg/coupling"
	"github.com/matzehuels/qroute/pkg/distance"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

// BuildRecursive builds a tree restricted to usable. Under the Full policy
// arcs between two vertices of rec are allowed in both directions; rec
// vertices outside usable have no effect.
//
// The table for (policy, usable, rec) is taken from m, so repeated calls
// for the same sub-block share one computation. Root or terminals outside
// usable are a CONFIGURATION error.
func BuildRecursive(m *distance.Memo, root coupling.Vertex, terminals []coupling.Vertex,
	usable, rec distance.Subset, policy distance.Policy) (*Tree, error) {
	if !usable.Contains(root) {
		return nil, qerrors.Configuration("root vertex %d is not usable", root).
			With("usable", usable.Key())
	}
	for _, v := range terminals {
		if !usable.Contains(v) {
			return nil, qerrors.Configuration("terminal vertex %d is not usable", v).
				With("usable", usable.Key())
		}
	}
	tbl, _ := m.Get(policy, usable, rec)
	return Build(tbl, root, terminals)
}
