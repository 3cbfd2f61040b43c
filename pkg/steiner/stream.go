package steiner

import (
	"fmt"
	"io"
	"slices"

	"github.com/matzehuels/qroute/pkg/coupling"
	"github.com/matzehuels/qroute/pkg/distance"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/placement"
)

// Phases of a Stream.
const (
	PhaseDown = 1 // root to leaves
	PhaseUp   = 2 // leaves to root
)

// Step is one element of a Stream: a (Control, Target) qubit pair, or the
// sentinel that closes Phase.
type Step struct {
	Control  int
	Target   int
	Phase    int
	Sentinel bool
}

// String renders "c->t" or "end of phase N".
func (s Step) String() string {
	if s.Sentinel {
		return fmt.Sprintf("end of phase %d", s.Phase)
	}
	return fmt.Sprintf("%d->%d", s.Control, s.Target)
}

type streamState int

const (
	stateDown streamState = iota
	stateUp
	stateDone
)

// Stream walks a Tree in two phases and yields qubit pairs.
//
// Phase 1 starts from the wave {root}; each wave emits, in tree edge order,
// every edge whose source was reached by the previous wave, and the targets
// form the next wave. Phase 2 repeatedly finds the leaves (vertices with no
// remaining outgoing edge, tree vertices before Steiner points), emits the
// edge into each leaf and removes it. Every edge is emitted exactly once
// per phase.
//
// Next returns io.EOF after the second sentinel. Any broken traversal
// invariant is returned as an INTERNAL_INVARIANT error and repeated on
// every later call. A Stream is not safe for concurrent use.
type Stream struct {
	tree    *Tree
	p       *placement.Placement
	state   streamState
	pending []Step
	err     error

	wave    []coupling.Vertex
	emitted map[distance.Arc]bool

	remaining []distance.Arc
	upCount   int
}

// NewStream returns a stream over t, translating vertices to qubits with p.
func NewStream(t *Tree, p *placement.Placement) *Stream {
	return &Stream{
		tree:      t,
		p:         p,
		wave:      []coupling.Vertex{t.Root},
		emitted:   make(map[distance.Arc]bool, len(t.Edges)),
		remaining: slices.Clone(t.Edges),
	}
}

// Tree returns the tree being walked.
func (s *Stream) Tree() *Tree { return s.tree }

// Next returns the next step.
func (s *Stream) Next() (Step, error) {
	for len(s.pending) == 0 {
		if s.err != nil {
			return Step{}, s.err
		}
		var err error
		switch s.state {
		case stateDown:
			err = s.advanceDown()
		case stateUp:
			err = s.advanceUp()
		default:
			return Step{}, io.EOF
		}
		if err != nil {
			s.err, s.pending = err, nil
		}
	}
	step := s.pending[0]
	s.pending = s.pending[1:]
	return step, nil
}

// All drains the stream and returns every remaining step, sentinels
// included.
func (s *Stream) All() ([]Step, error) {
	var out []Step
	for {
		step, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, step)
	}
}

// Phases drains the stream and returns the edge steps of each phase,
// without sentinels.
func (s *Stream) Phases() (down, up []Step, err error) {
	steps, err := s.All()
	if err != nil {
		return nil, nil, err
	}
	cur := &down
	for _, st := range steps {
		if st.Sentinel {
			cur = &up
			continue
		}
		*cur = append(*cur, st)
	}
	return down, up, nil
}

func (s *Stream) emit(a distance.Arc) {
	c, _ := s.p.VertexToQubit(a.From)
	t, _ := s.p.VertexToQubit(a.To)
	s.pending = append(s.pending, Step{Control: c, Target: t})
}

func (s *Stream) advanceDown() error {
	edges := s.tree.Edges
	if len(s.emitted) == len(edges) {
		s.pending = append(s.pending, Step{Phase: PhaseDown, Sentinel: true})
		s.state = stateUp
		return nil
	}

	var next []coupling.Vertex
	for _, a := range edges {
		if !slices.Contains(s.wave, a.From) {
			continue
		}
		if s.emitted[a] {
			return qerrors.Internal("edge %d->%d emitted twice in phase %d", a.From, a.To, PhaseDown).
				With("root", s.tree.Root)
		}
		s.emitted[a] = true
		s.emit(a)
		next = append(next, a.To)
	}
	if len(next) == 0 {
		return qerrors.Internal("phase %d stalled with %d of %d edges emitted",
			PhaseDown, len(s.emitted), len(edges)).
			With("root", s.tree.Root).
			With("wave", slices.Clone(s.wave))
	}
	s.wave = next
	return nil
}

func (s *Stream) advanceUp() error {
	if len(s.remaining) == 0 {
		s.pending = append(s.pending, Step{Phase: PhaseUp, Sentinel: true})
		s.state = stateDone
		return nil
	}

	sources := make(map[coupling.Vertex]bool, len(s.remaining))
	for _, a := range s.remaining {
		sources[a.From] = true
	}
	var leaves []coupling.Vertex
	for _, v := range slices.Concat(s.tree.Vertices, s.tree.Steiner) {
		if !sources[v] && !slices.Contains(leaves, v) {
			leaves = append(leaves, v)
		}
	}

	progressed := false
	for _, v := range leaves {
		for i := 0; i < len(s.remaining); {
			a := s.remaining[i]
			if a.To != v {
				i++
				continue
			}
			s.upCount++
			if s.upCount > len(s.tree.Edges) {
				return qerrors.Internal("phase %d emitted %d edges, tree has %d",
					PhaseUp, s.upCount, len(s.tree.Edges)).
					With("root", s.tree.Root)
			}
			s.emit(a)
			s.remaining = slices.Delete(s.remaining, i, i+1)
			progressed = true
		}
	}
	if !progressed {
		return qerrors.Internal("phase %d stalled with %d edges left", PhaseUp, len(s.remaining)).
			With("root", s.tree.Root).
			With("leaves", leaves)
	}
	return nil
}
