// Package distance computes constrained all-pairs shortest paths over
// vertex subsets of a coupling graph.
//
// # Policies
//
// [Upper] treats every coupling edge as a bidirectional unit-length arc.
// [Full] keeps only the arc from the larger to the smaller logical qubit,
// except between two recursion vertices, where both directions are allowed.
// Full tables drive triangular (elimination-style) reduction; the recursion
// exception relaxes the order inside nested sub-blocks.
//
// # Tables
//
// [FloydWarshall] produces a dense [Table] for one subset. [Precompute]
// builds the two table families an architecture serves queries from: an
// upper table for every suffix of the vertex ordering and a full table for
// every prefix. [Memo] holds ad-hoc tables for explicit usable/recursion
// subsets, keyed canonically.
//
// # Concurrency
//
// Tables and Families are read-only once built. Memo is safe for concurrent
// use.
package distance

import (
	"fmt"
	"strings"

	"github.com/matzehuels/qroute/pkg/coupling"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

// Policy selects which arcs a coupling edge contributes.
type Policy int

const (
	// Upper allows both directions of every edge.
	Upper Policy = iota
	// Full allows only larger-to-smaller qubit arcs outside the recursion set.
	Full
)

// String returns "upper" or "full".
func (p Policy) String() string {
	switch p {
	case Upper:
		return "upper"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses "upper" or "full" (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upper":
		return Upper, nil
	case "full":
		return Full, nil
	}
	return 0, qerrors.Configuration("unknown policy %q (want upper or full)", s)
}

// Arc is a directed vertex pair.
type Arc struct {
	From, To coupling.Vertex
}

// Entry is the shortest connection between an ordered vertex pair: the hop
// count and the arcs walked, in order. A vertex's entry to itself has cost 0
// and no arcs.
type Entry struct {
	Cost int
	Path []Arc
}
