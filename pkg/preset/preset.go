// Package preset provides a catalog of named device topologies.
//
// The catalog holds fixed devices (IBM, Rigetti and Google layouts) and
// dynamic-size generators (line, circle, square, fully_connected and the
// dynamic_density family) whose size is chosen at build time through [Params].
// Further devices can be loaded from TOML files with [LoadDeviceFile] and
// added with [Catalog.Register].
//
//	a, err := preset.Build("ibm_qx5", preset.Params{})
//	a, err := preset.Build("square", preset.Params{Qubits: 16})
//
// Generators are deterministic: the dynamic_density family draws its random
// edges from a generator seeded with Params.Seed. dynamic_density itself is
// the spanning-tree variant; dynamic_density_hamiltonian and
// dynamic_density_gnp start from a Hamiltonian path and a G(n, p) graph.
package preset

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/qroute/pkg/arch"
	"github.com/matzehuels/qroute/pkg/coupling"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/placement"
)

// Params sizes dynamic presets. Fixed presets ignore it.
type Params struct {
	Qubits  int     // device size; fully_connected defaults to 9
	Density float64 // edge density for the dynamic_density family, in (0, 1]; default 0.1
	Seed    uint64  // generator seed for the dynamic_density family
}

// Topology is a device ready to be turned into an architecture.
type Topology struct {
	// Name is the architecture name, e.g. "ibm_qx5" or "16q-square".
	Name  string
	Graph *coupling.Graph

	// QubitMap and ReduceOrder are optional fixed values.
	QubitMap    placement.Map
	ReduceOrder []int
}

// Preset describes one catalog entry.
type Preset struct {
	// Name is the catalog key (e.g. "line", "ibm_q20_tokyo").
	Name string

	// Description is a one-line summary for listings.
	Description string

	// Dynamic reports whether Params.Qubits changes the topology.
	Dynamic bool

	// Topology builds the device for p.
	Topology func(p Params) (*Topology, error)
}

// Catalog is a set of presets keyed by name. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewCatalog returns a catalog holding the built-in presets.
func NewCatalog() *Catalog {
	c := &Catalog{presets: make(map[string]Preset)}
	for _, p := range builtins() {
		c.presets[p.Name] = p
	}
	return c
}

// Register adds p. Names are case-insensitive and must be unique.
func (c *Catalog) Register(p Preset) error {
	key := strings.ToLower(p.Name)
	if key == "" || p.Topology == nil {
		return qerrors.Configuration("preset needs a name and a topology")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.presets[key]; ok {
		return qerrors.Configuration("preset %q already registered", p.Name)
	}
	p.Name = key
	c.presets[key] = p
	return nil
}

// Names returns all preset names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.namesLocked()
}

// Lookup returns the named preset.
func (c *Catalog) Lookup(name string) (Preset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.presets[strings.ToLower(name)]
	if !ok {
		return Preset{}, qerrors.Configuration("unknown preset %q", name).
			With("available", strings.Join(c.namesLocked(), ", "))
	}
	return p, nil
}

func (c *Catalog) namesLocked() []string {
	names := make([]string, 0, len(c.presets))
	for name := range c.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build looks up name and builds its architecture. Options are applied
// after the preset's own qubit map and reduce order, so they take
// precedence.
func (c *Catalog) Build(name string, params Params, opts ...arch.Option) (*arch.Architecture, error) {
	p, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	t, err := p.Topology(params)
	if err != nil {
		return nil, err
	}
	var all []arch.Option
	if t.QubitMap != nil {
		all = append(all, arch.WithQubitMap(t.QubitMap))
	}
	if t.ReduceOrder != nil {
		all = append(all, arch.WithReduceOrder(t.ReduceOrder))
	}
	return arch.New(t.Name, t.Graph, append(all, opts...)...)
}

// =============================================================================
// Default catalog
// =============================================================================

var std = NewCatalog()

// Default returns the process-wide catalog used by the package-level
// functions.
func Default() *Catalog { return std }

// Names returns the names in the default catalog.
func Names() []string { return std.Names() }

// Lookup returns a preset from the default catalog.
func Lookup(name string) (Preset, error) { return std.Lookup(name) }

// Build builds a preset from the default catalog.
func Build(name string, params Params, opts ...arch.Option) (*arch.Architecture, error) {
	return std.Build(name, params, opts...)
}
