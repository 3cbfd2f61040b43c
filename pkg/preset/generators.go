package preset

import (
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/matzehuels/qroute/pkg/coupling"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

const (
	defaultFullyConnected = 9
	defaultDensity        = 0.1
)

// dynamicName is the architecture name of a sized preset, e.g. "9q-line".
func dynamicName(base string, n int) string {
	return strconv.Itoa(n) + "q-" + base
}

// lineEdges connects vs in sequence.
func lineEdges(vs []int) [][2]int {
	if len(vs) < 2 {
		return nil
	}
	edges := make([][2]int, 0, len(vs)-1)
	for i := 0; i+1 < len(vs); i++ {
		edges = append(edges, [2]int{vs[i], vs[i+1]})
	}
	return edges
}

// rangeExcept returns 0..n-1 without skip.
func rangeExcept(n int, skip ...int) []int {
	out := make([]int, 0, n)
	for i := range n {
		skipped := false
		for _, s := range skip {
			if i == s {
				skipped = true
				break
			}
		}
		if !skipped {
			out = append(out, i)
		}
	}
	return out
}

// gridEdges lays vs out as a snake: one line through all vertices, plus
// rungs between consecutive rows of width. The second row of each pair
// runs backwards, so rung i joins row[i] to the mirrored position of the
// next row.
func gridEdges(width, height int, vs []int) ([][2]int, error) {
	if len(vs) != width*height {
		return nil, qerrors.Configuration("grid of %dx%d needs %d vertices, got %d", width, height, width*height, len(vs))
	}
	edges := lineEdges(vs)
	for r := 0; r+1 < height; r++ {
		row := vs[r*width : (r+1)*width]
		next := vs[(r+1)*width : (r+2)*width]
		for i := 0; i+1 < width; i++ {
			edges = append(edges, [2]int{row[i], next[width-1-i]})
		}
	}
	return edges, nil
}

func requireQubits(name string, p Params, minimum int) error {
	if p.Qubits < minimum {
		return qerrors.Configuration("preset %s needs at least %d qubits, got %d", name, minimum, p.Qubits).
			With("preset", name)
	}
	return nil
}

func newTopology(name string, n int, edges [][2]int) (*Topology, error) {
	g, err := coupling.FromEdges(n, edges)
	if err != nil {
		return nil, err
	}
	return &Topology{Name: name, Graph: g}, nil
}

// =============================================================================
// Dynamic-size presets
// =============================================================================

func lineTopology(p Params) (*Topology, error) {
	if err := requireQubits("line", p, 1); err != nil {
		return nil, err
	}
	return newTopology(dynamicName("line", p.Qubits), p.Qubits, lineEdges(rangeExcept(p.Qubits)))
}

func circleTopology(p Params) (*Topology, error) {
	if err := requireQubits("circle", p, 3); err != nil {
		return nil, err
	}
	edges := append(lineEdges(rangeExcept(p.Qubits)), [2]int{p.Qubits - 1, 0})
	return newTopology(dynamicName("circle", p.Qubits), p.Qubits, edges)
}

func squareTopology(p Params) (*Topology, error) {
	if err := requireQubits("square", p, 1); err != nil {
		return nil, err
	}
	side := 0
	for side*side < p.Qubits {
		side++
	}
	if side*side != p.Qubits {
		return nil, qerrors.Configuration("preset square needs a square number of qubits, got %d", p.Qubits).
			With("preset", "square")
	}
	edges, err := gridEdges(side, side, rangeExcept(p.Qubits))
	if err != nil {
		return nil, err
	}
	return newTopology(dynamicName("square", p.Qubits), p.Qubits, edges)
}

func fullyConnectedTopology(p Params) (*Topology, error) {
	n := p.Qubits
	if n == 0 {
		n = defaultFullyConnected
	}
	if n < 1 {
		return nil, qerrors.Configuration("preset fully_connected needs at least 1 qubit, got %d", n)
	}
	var edges [][2]int
	for i := range n {
		for j := i + 1; j < n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return newTopology(dynamicName("fully_connected", n), n, edges)
}

// densityPreset validates a density generator's parameters. It returns the
// density, the target edge count density * n(n-1)/2 and a generator seeded
// with p.Seed.
func densityPreset(name string, p Params) (float64, int, *rand.Rand, error) {
	if err := requireQubits(name, p, 1); err != nil {
		return 0, 0, nil, err
	}
	density := p.Density
	if density == 0 {
		density = defaultDensity
	}
	if density < 0 || density > 1 {
		return 0, 0, nil, qerrors.Configuration("density %g outside (0, 1]", density).
			With("preset", name)
	}
	n := p.Qubits
	target := int(density * float64(n*(n-1)) / 2)
	return density, target, rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15)), nil
}

func densityName(base string, density float64, n int) string {
	return dynamicName(base+strconv.FormatFloat(density, 'g', -1, 64), n)
}

// addChords appends up to extra edges drawn without replacement from the
// pairs of 0..n-1 that edges does not already join.
func addChords(rng *rand.Rand, n, extra int, edges [][2]int) [][2]int {
	if extra <= 0 {
		return edges
	}
	joined := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		joined[[2]int{min(e[0], e[1]), max(e[0], e[1])}] = true
	}
	var chords [][2]int
	for i := range n {
		for j := i + 1; j < n; j++ {
			if !joined[[2]int{i, j}] {
				chords = append(chords, [2]int{i, j})
			}
		}
	}
	rng.Shuffle(len(chords), func(i, j int) { chords[i], chords[j] = chords[j], chords[i] })
	return append(edges, chords[:min(extra, len(chords))]...)
}

// densityTreeTopology grows a random spanning tree breadth-first from a
// random root, then adds random chords until the edge count reaches
// density * n(n-1)/2. Each parent takes k of the unplaced qubits with
// probability 1/2^k, the last possible count absorbing the remainder, so
// every parent has at least one child while qubits remain.
func densityTreeTopology(p Params) (*Topology, error) {
	density, target, rng, err := densityPreset("dynamic_density_tree", p)
	if err != nil {
		return nil, err
	}
	n := p.Qubits
	rest := rangeExcept(n)
	pick := func() int {
		i := rng.IntN(len(rest))
		v := rest[i]
		rest = slices.Delete(rest, i, i+1)
		return v
	}

	var edges [][2]int
	queue := []int{pick()}
	for len(queue) > 0 && len(rest) > 0 {
		parent := queue[0]
		queue = queue[1:]
		k := 1
		for k < len(rest)-1 && rng.Float64() >= 0.5 {
			k++
		}
		for range k {
			child := pick()
			edges = append(edges, [2]int{parent, child})
			queue = append(queue, child)
		}
	}
	edges = addChords(rng, n, target-len(edges), edges)
	return newTopology(densityName("dynamic_density", density, n), n, edges)
}

// densityHamiltonianTopology is a Hamiltonian path 0..n-1 plus random
// chords until the edge count reaches density * n(n-1)/2.
func densityHamiltonianTopology(p Params) (*Topology, error) {
	density, target, rng, err := densityPreset("dynamic_density_hamiltonian", p)
	if err != nil {
		return nil, err
	}
	n := p.Qubits
	edges := addChords(rng, n, target-n+1, lineEdges(rangeExcept(n)))
	return newTopology(densityName("dynamic_density_hamiltonian", density, n), n, edges)
}

// densityGnpTopology draws each pair independently with probability
// density, then joins random pairs from different components until the
// device is connected.
func densityGnpTopology(p Params) (*Topology, error) {
	density, _, rng, err := densityPreset("dynamic_density_gnp", p)
	if err != nil {
		return nil, err
	}
	n := p.Qubits
	comp := rangeExcept(n)
	merge := func(a, b int) {
		from, to := comp[b], comp[a]
		for v, c := range comp {
			if c == from {
				comp[v] = to
			}
		}
	}

	var edges [][2]int
	for i := range n {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < density {
				edges = append(edges, [2]int{i, j})
				merge(i, j)
			}
		}
	}
	for {
		var split [][2]int
		for i := range n {
			for j := i + 1; j < n; j++ {
				if comp[i] != comp[j] {
					split = append(split, [2]int{i, j})
				}
			}
		}
		if len(split) == 0 {
			break
		}
		e := split[rng.IntN(len(split))]
		edges = append(edges, e)
		merge(e[0], e[1])
	}
	return newTopology(densityName("dynamic_density_gnp", density, n), n, edges)
}
