package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/qroute/pkg/coupling"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/placement"
)

// FamiliesVersion is bumped whenever the encoded document layout changes.
const FamiliesVersion = 1

// ErrFamilyMismatch is returned by DecodeFamilies when the document was
// computed for a different vertex set or qubit map.
var ErrFamilyMismatch = errors.New("table families do not match architecture")

// Families are the precomputed tables an architecture answers
// non-recursive queries from. With vertices v0 < v1 < ... < v(n-1):
//
//   - Upper(i) covers v(i)..v(n-1) under the Upper policy
//   - Full(i) covers v0..v(i) under the Full policy, with no recursion set
//
// The table for a root vertex is the one at the root's position.
type Families struct {
	vertices []coupling.Vertex
	upper    []*Table
	full     []*Table
}

// Precompute builds both families. Up to workers tables are computed in
// parallel (workers < 1 means one); each result is stored at its window's
// position, so the output does not depend on the worker count.
func Precompute(ctx context.Context, g *coupling.Graph, p *placement.Placement, workers int) (*Families, error) {
	vs := g.Vertices()
	n := len(vs)
	f := &Families{
		vertices: vs,
		upper:    make([]*Table, n),
		full:     make([]*Table, n),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for i := range n {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f.upper[i] = FloydWarshall(g, p, NewSubset(vs[i:]), Subset{}, Upper)
			return nil
		})
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f.full[i] = FloydWarshall(g, p, NewSubset(vs[:i+1]), Subset{}, Full)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}

// Len returns the number of tables in each family.
func (f *Families) Len() int { return len(f.vertices) }

// Upper returns the upper table at window position i.
func (f *Families) Upper(i int) *Table { return f.upper[i] }

// Full returns the full table at window position i.
func (f *Families) Full(i int) *Table { return f.full[i] }

// Window returns the table a query rooted at root is answered from.
func (f *Families) Window(policy Policy, root coupling.Vertex) (*Table, error) {
	i, found := slices.BinarySearch(f.vertices, root)
	if !found {
		return nil, qerrors.Configuration("root vertex %d is not part of the device", root)
	}
	switch policy {
	case Upper:
		return f.upper[i], nil
	case Full:
		return f.full[i], nil
	}
	return nil, qerrors.Configuration("unknown policy %s", policy)
}

// ====================================================================
// Serialization
// ====================================================================

type familiesDoc struct {
	Version  int               `json:"version"`
	Vertices []coupling.Vertex `json:"vertices"`
	QubitMap placement.Map     `json:"qubit_map"`
	Upper    []tableDoc        `json:"upper"`
	Full     []tableDoc        `json:"full"`
}

type tableDoc struct {
	Vertices []coupling.Vertex `json:"vertices"`
	Entries  []entryDoc        `json:"entries"`
}

type entryDoc struct {
	From coupling.Vertex      `json:"from"`
	To   coupling.Vertex      `json:"to"`
	Cost int                  `json:"cost"`
	Path [][2]coupling.Vertex `json:"path"`
}

// EncodeFamilies serializes f together with the qubit map it was computed
// under. Entries are written in row-major order, so equal families encode
// to identical bytes.
func EncodeFamilies(f *Families, p *placement.Placement) ([]byte, error) {
	doc := familiesDoc{
		Version:  FamiliesVersion,
		Vertices: f.vertices,
		QubitMap: p.Map(),
		Upper:    make([]tableDoc, len(f.upper)),
		Full:     make([]tableDoc, len(f.full)),
	}
	for i := range f.upper {
		doc.Upper[i] = encodeTable(f.upper[i])
		doc.Full[i] = encodeTable(f.full[i])
	}
	return json.Marshal(doc)
}

func encodeTable(t *Table) tableDoc {
	td := tableDoc{Vertices: t.vertices}
	k := len(t.vertices)
	for i := range k {
		for j := range k {
			c := t.cost[i*k+j]
			if i == j || c == noPath {
				continue
			}
			path := make([][2]coupling.Vertex, len(t.paths[i*k+j]))
			for x, a := range t.paths[i*k+j] {
				path[x] = [2]coupling.Vertex{a.From, a.To}
			}
			td.Entries = append(td.Entries, entryDoc{From: t.vertices[i], To: t.vertices[j], Cost: c, Path: path})
		}
	}
	return td
}

// DecodeFamilies parses a document produced by EncodeFamilies and checks
// that it belongs to g and p. Any mismatch wraps ErrFamilyMismatch.
func DecodeFamilies(data []byte, g *coupling.Graph, p *placement.Placement) (*Families, error) {
	var doc familiesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode table families: %w", err)
	}
	if doc.Version != FamiliesVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrFamilyMismatch, doc.Version, FamiliesVersion)
	}
	vs := g.Vertices()
	if !slices.Equal(doc.Vertices, vs) {
		return nil, fmt.Errorf("%w: vertex set differs", ErrFamilyMismatch)
	}
	if !slices.Equal(doc.QubitMap, p.Map()) {
		return nil, fmt.Errorf("%w: qubit map differs", ErrFamilyMismatch)
	}
	n := len(vs)
	if len(doc.Upper) != n || len(doc.Full) != n {
		return nil, fmt.Errorf("%w: %d/%d tables, want %d", ErrFamilyMismatch, len(doc.Upper), len(doc.Full), n)
	}

	f := &Families{vertices: vs, upper: make([]*Table, n), full: make([]*Table, n)}
	for i := range n {
		var err error
		if f.upper[i], err = decodeTable(doc.Upper[i], vs[i:]); err != nil {
			return nil, fmt.Errorf("upper table %d: %w", i, err)
		}
		if f.full[i], err = decodeTable(doc.Full[i], vs[:i+1]); err != nil {
			return nil, fmt.Errorf("full table %d: %w", i, err)
		}
	}
	return f, nil
}

func decodeTable(td tableDoc, window []coupling.Vertex) (*Table, error) {
	if !slices.Equal(td.Vertices, window) {
		return nil, fmt.Errorf("%w: window differs", ErrFamilyMismatch)
	}
	t := newTable(slices.Clone(window))
	for _, e := range td.Entries {
		i, okF := t.index[e.From]
		j, okT := t.index[e.To]
		if !okF || !okT || e.Cost != len(e.Path) {
			return nil, fmt.Errorf("%w: bad entry %d->%d", ErrFamilyMismatch, e.From, e.To)
		}
		path := make([]Arc, len(e.Path))
		for x, a := range e.Path {
			path[x] = Arc{From: a[0], To: a[1]}
		}
		t.set(i, j, e.Cost, path)
	}
	return t, nil
}
