// Package arch is the query surface of a routed device: a coupling graph
// together with its qubit placement, elimination order and distance tables.
//
// An [Architecture] is built once from a graph (or adjacency matrix) and
// answers every query in logical qubit indices. Physical vertex identifiers
// never leave the package.
//
//	a, err := arch.New("line4", g)
//	if err != nil {
//	    return err
//	}
//	stream, err := a.SteinerTree(0, []int{1, 3}, distance.Upper)
//	for {
//	    step, err := stream.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // ...
//	}
//
// Distance tables are computed on first use (or by an explicit
// [Architecture.Precompute]) and are read-only afterwards, so one
// Architecture can serve concurrent readers. Tables for the recursive
// variant are memoized per (policy, usable, recursion) combination.
package arch

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/qroute/pkg/cache"
	"github.com/matzehuels/qroute/pkg/coupling"
	"github.com/matzehuels/qroute/pkg/distance"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/placement"
)

// =============================================================================
// Options
// =============================================================================

// Option configures an Architecture.
type Option func(*config)

type config struct {
	qubitMap    placement.Map
	reduceOrder []int
	logger      *log.Logger
	trace       bool
	tableCache  cache.Cache
	tableTTL    time.Duration
	keyer       cache.Keyer
	workers     int
}

// WithQubitMap fixes the qubit placement instead of deriving it.
func WithQubitMap(m placement.Map) Option {
	return func(c *config) { c.qubitMap = m }
}

// WithReduceOrder fixes the elimination order instead of deriving it.
// Without a qubit map, qubit i is then placed on the i-th smallest vertex.
func WithReduceOrder(order []int) Option {
	return func(c *config) { c.reduceOrder = order }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithTrace logs every greedy attachment of Steiner construction at debug
// level.
func WithTrace(on bool) Option {
	return func(c *config) { c.trace = on }
}

// WithTableCache stores precomputed distance tables in c. Entries expire
// after ttl; zero keeps them forever.
func WithTableCache(c cache.Cache, ttl time.Duration) Option {
	return func(cfg *config) {
		cfg.tableCache = c
		cfg.tableTTL = ttl
	}
}

// WithKeyer overrides how table-cache keys are derived.
func WithKeyer(k cache.Keyer) Option {
	return func(c *config) { c.keyer = k }
}

// WithWorkers bounds the goroutines used to precompute distance tables.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// =============================================================================
// Architecture
// =============================================================================

// Architecture is an immutable routed device.
type Architecture struct {
	name        string
	id          uuid.UUID
	g           *coupling.Graph
	p           *placement.Placement
	reduceOrder []int
	cfg         config
	logger      *log.Logger

	once      sync.Once
	families  *distance.Families
	tablesErr error

	memo *distance.Memo

	ncMu       sync.Mutex
	nonCutting map[string]map[coupling.Vertex]bool
}

// New builds an architecture over g. The graph must be connected.
//
// The qubit map defaults to the DFS placement of [placement.Default] and
// the reduce order to [placement.ReduceOrder]. Explicit values are
// validated; invalid ones are a CONFIGURATION error.
func New(name string, g *coupling.Graph, opts ...Option) (*Architecture, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.keyer == nil {
		cfg.keyer = cache.NewDefaultKeyer()
	}

	if g.Len() == 0 {
		return nil, qerrors.Configuration("architecture %q has no qubits", name)
	}
	if !g.Connected() {
		return nil, qerrors.Configuration("architecture %q: coupling graph is disconnected", name).
			With("architecture", name)
	}

	m := cfg.qubitMap
	switch {
	case m != nil:
	case cfg.reduceOrder != nil:
		m = placement.Identity(g)
	default:
		var err error
		if m, err = placement.Default(g); err != nil {
			return nil, err
		}
	}
	p, err := placement.New(g, m)
	if err != nil {
		return nil, err
	}

	order := cfg.reduceOrder
	if order != nil {
		if err := placement.ValidateReduceOrder(order, g.Len()); err != nil {
			return nil, err
		}
		order = append([]int(nil), order...)
	} else if order, err = placement.ReduceOrder(p); err != nil {
		return nil, err
	}

	a := &Architecture{
		name:        name,
		id:          uuid.New(),
		g:           g,
		p:           p,
		reduceOrder: order,
		cfg:         cfg,
		logger:      cfg.logger.With("arch", name),
		nonCutting:  make(map[string]map[coupling.Vertex]bool),
	}
	a.memo = distance.NewMemo(p, a.observeMemo)

	a.logger.Debug("architecture ready",
		"id", a.id,
		"qubits", g.Len(),
		"edges", g.EdgeCount())
	return a, nil
}

// FromMatrix builds an architecture from a square 0/1 adjacency matrix.
func FromMatrix(name string, m [][]int, opts ...Option) (*Architecture, error) {
	g, err := coupling.FromMatrix(m)
	if err != nil {
		return nil, err
	}
	return New(name, g, opts...)
}

// Transpose returns a new architecture over the same graph with the qubit
// map reversed. Its reduce order is derived afresh and its tables are
// computed independently.
func (a *Architecture) Transpose() (*Architecture, error) {
	return New(a.name+"_transpose", a.g,
		WithQubitMap(a.p.Map().Reversed()),
		WithLogger(a.cfg.logger),
		WithTrace(a.cfg.trace),
		WithTableCache(a.cfg.tableCache, a.cfg.tableTTL),
		WithKeyer(a.cfg.keyer),
		WithWorkers(a.cfg.workers),
	)
}

// Name returns the architecture's name.
func (a *Architecture) Name() string { return a.name }

// ID identifies this instance. Rebuilding the same device yields a new ID.
func (a *Architecture) ID() uuid.UUID { return a.id }

// Graph returns the coupling graph.
func (a *Architecture) Graph() *coupling.Graph { return a.g }

// Placement returns the qubit placement.
func (a *Architecture) Placement() *placement.Placement { return a.p }

// QubitCount returns the number of logical qubits.
func (a *Architecture) QubitCount() int { return a.p.Len() }

// QubitMap returns a copy of the qubit-to-vertex map.
func (a *Architecture) QubitMap() placement.Map { return a.p.Map() }

// ReduceOrder returns a copy of the elimination order.
func (a *Architecture) ReduceOrder() []int {
	return append([]int(nil), a.reduceOrder...)
}
