package preset

import (
	"github.com/matzehuels/qroute/pkg/coupling"
)

// builtins lists the built-in catalog.
func builtins() []Preset {
	return []Preset{
		{Name: "line", Description: "qubits in a single path", Dynamic: true, Topology: lineTopology},
		{Name: "circle", Description: "qubits in a ring", Dynamic: true, Topology: circleTopology},
		{Name: "square", Description: "snake-ordered square grid", Dynamic: true, Topology: squareTopology},
		{Name: "fully_connected", Description: "every pair of qubits coupled", Dynamic: true, Topology: fullyConnectedTopology},
		{Name: "dynamic_density", Description: "random spanning tree plus seeded chords", Dynamic: true, Topology: densityTreeTopology},
		{Name: "dynamic_density_tree", Description: "random spanning tree plus seeded chords", Dynamic: true, Topology: densityTreeTopology},
		{Name: "dynamic_density_hamiltonian", Description: "Hamiltonian path plus seeded random chords", Dynamic: true, Topology: densityHamiltonianTopology},
		{Name: "dynamic_density_gnp", Description: "seeded G(n, p) graph joined into one component", Dynamic: true, Topology: densityGnpTopology},

		matrixPreset("ibm_qx2", "IBM QX2, 5 qubits", qx2Matrix),
		matrixPreset("ibm_qx4", "IBM QX4, 5 qubits", qx2Matrix),
		matrixPreset("ibm_qx3", "IBM QX3, 16 qubits", qx3Matrix),
		matrixPreset("ibm_qx5", "IBM QX5, 16 qubits", qx5Matrix),
		matrixPreset("rigetti_8q_agave", "Rigetti Agave, 8-qubit ring", agaveMatrix),
		matrixPreset("recursive_architecture", "two 4-leaf clusters joined at a hub, 9 qubits", recursiveMatrix),

		edgePreset("ibm_q20_tokyo", "IBM Q20 Tokyo, 20 qubits", 20, tokyoEdges),
		edgePreset("ibmq_poughkeepsie", "IBM Q Poughkeepsie, 20 qubits", 20, poughkeepsieEdges),
		edgePreset("ibmq_singapore", "IBM Q Singapore, 20 qubits", 20, singaporeEdges),
		edgePreset("rigetti_16q_aspen", "Rigetti Aspen, 16 qubits", 16, aspenEdges),
		edgePreset("rigetti_19q_acorn", "Rigetti Acorn, 20 sites", 20, acornEdges),
		edgePreset("sycamore_like", "Sycamore-style lattice, 20 qubits", 20, sycamoreLikeEdges),
		edgePreset("google_sycamore", "Google Sycamore, 53 qubits", 53, sycamoreEdges),
		edgePreset("ibm_rochester", "IBM Rochester, 53 qubits", 53, rochesterEdges),
	}
}

func matrixPreset(name, desc string, m func() [][]int) Preset {
	return Preset{
		Name:        name,
		Description: desc,
		Topology: func(Params) (*Topology, error) {
			g, err := coupling.FromMatrix(m())
			if err != nil {
				return nil, err
			}
			return &Topology{Name: name, Graph: g}, nil
		},
	}
}

func edgePreset(name, desc string, n int, edges func() [][2]int) Preset {
	return Preset{
		Name:        name,
		Description: desc,
		Topology: func(Params) (*Topology, error) {
			return newTopology(name, n, edges())
		},
	}
}

// =============================================================================
// Adjacency matrices
// =============================================================================

func qx2Matrix() [][]int {
	return [][]int{
		{0, 1, 1, 0, 0},
		{1, 0, 1, 0, 0},
		{1, 1, 0, 1, 1},
		{0, 0, 1, 0, 1},
		{0, 0, 1, 1, 0},
	}
}

func qx3Matrix() [][]int {
	return [][]int{
		//0  1  2  3  4  5  6  7  8  9 10 11 12 13 14 15
		{0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // 0
		{1, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // 1
		{0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // 2
		{0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // 3
		{0, 1, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // 4
		{1, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // 5
		{0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1}, // 6
		{0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 0}, // 7
		{0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 1, 0, 0}, // 8
		{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0}, // 9
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0}, // 10
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0}, // 11
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0}, // 12
		{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 0}, // 13
		{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 1}, // 14
		{0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0}, // 15
	}
}

func qx5Matrix() [][]int {
	return [][]int{
		//0  1  2  3  4  5  6  7  8  9 10 11 12 13 14 15
		{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}, // 0
		{1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0}, // 1
		{0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0}, // 2
		{0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0}, // 3
		{0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0}, // 4
		{0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0}, // 5
		{0, 0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0}, // 6
		{0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0}, // 7
		{0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0}, // 8
		{0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 0, 0, 0, 0}, // 9
		{0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0}, // 10
		{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0}, // 11
		{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0}, // 12
		{0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0}, // 13
		{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1}, // 14
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0}, // 15
	}
}

func agaveMatrix() [][]int {
	return [][]int{
		{0, 1, 0, 0, 0, 0, 0, 1},
		{1, 0, 1, 0, 0, 0, 0, 0},
		{0, 1, 0, 1, 0, 0, 0, 0},
		{0, 0, 1, 0, 1, 0, 0, 0},
		{0, 0, 0, 1, 0, 1, 0, 0},
		{0, 0, 0, 0, 1, 0, 1, 0},
		{0, 0, 0, 0, 0, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 1, 0},
	}
}

func recursiveMatrix() [][]int {
	return [][]int{
		//0  1  2  3  4  5  6  7  8
		{0, 0, 1, 0, 0, 0, 0, 0, 0}, // 0
		{0, 0, 1, 0, 0, 0, 0, 0, 0}, // 1
		{1, 1, 0, 0, 0, 0, 0, 1, 0}, // 2
		{0, 0, 0, 0, 0, 1, 0, 0, 0}, // 3
		{0, 0, 0, 0, 0, 1, 0, 0, 0}, // 4
		{0, 0, 0, 1, 1, 0, 0, 1, 0}, // 5
		{0, 0, 0, 0, 0, 0, 0, 1, 0}, // 6
		{0, 0, 1, 0, 0, 1, 1, 0, 1}, // 7
		{0, 0, 0, 0, 0, 0, 0, 1, 0}, // 8
	}
}

// =============================================================================
// Edge lists
// =============================================================================

func tokyoEdges() [][2]int {
	edges, _ := gridEdges(5, 4, rangeExcept(20))
	return append(edges,
		[2]int{1, 7}, [2]int{2, 8},
		[2]int{3, 5}, [2]int{4, 6},
		[2]int{6, 12}, [2]int{7, 13},
		[2]int{8, 10}, [2]int{9, 11},
		[2]int{11, 17}, [2]int{12, 18},
		[2]int{13, 15}, [2]int{14, 16},
	)
}

func poughkeepsieEdges() [][2]int {
	return append(lineEdges(rangeExcept(20)),
		[2]int{0, 5}, [2]int{7, 1}, [2]int{5, 14}, [2]int{10, 19})
}

func singaporeEdges() [][2]int {
	return append(lineEdges(rangeExcept(20, 3, 15)),
		[2]int{1, 11}, [2]int{3, 4}, [2]int{5, 10},
		[2]int{9, 14}, [2]int{15, 16}, [2]int{8, 18})
}

func aspenEdges() [][2]int {
	return append(lineEdges(rangeExcept(16)),
		[2]int{0, 7}, [2]int{8, 15}, [2]int{15, 0})
}

// acornEdges has 20 sites; site 8 hangs off site 9 only.
func acornEdges() [][2]int {
	return append(lineEdges(rangeExcept(20, 8)),
		[2]int{8, 9}, [2]int{0, 18}, [2]int{2, 16}, [2]int{4, 14}, [2]int{6, 12})
}

func sycamoreLikeEdges() [][2]int {
	line := []int{0, 2, 3, 5, 6, 7, 8, 9, 10, 11, 12, 14, 15, 16, 18, 19}
	return append(lineEdges(line),
		[2]int{1, 2}, [2]int{2, 6}, [2]int{4, 5}, [2]int{4, 14},
		[2]int{5, 12}, [2]int{6, 11}, [2]int{7, 10}, [2]int{13, 14},
		[2]int{12, 16}, [2]int{11, 18}, [2]int{10, 17}, [2]int{17, 18})
}

func sycamoreEdges() [][2]int {
	return append(lineEdges(rangeExcept(53, 6, 12, 31, 32, 47, 50)),
		[2]int{0, 10}, [2]int{1, 9}, [2]int{4, 8},
		[2]int{10, 14}, [2]int{9, 15}, [2]int{8, 16}, [2]int{7, 17}, [2]int{6, 18},
		[2]int{12, 29}, [2]int{13, 28}, [2]int{14, 27}, [2]int{15, 26}, [2]int{16, 25}, [2]int{17, 24}, [2]int{18, 21},
		[2]int{29, 34}, [2]int{28, 35}, [2]int{27, 36}, [2]int{26, 37}, [2]int{25, 38},
		[2]int{33, 32}, [2]int{34, 43}, [2]int{35, 42}, [2]int{36, 41}, [2]int{37, 40},
		[2]int{42, 45}, [2]int{41, 46}, [2]int{40, 48}, [2]int{39, 47},
		[2]int{45, 50}, [2]int{46, 51},
		[2]int{1, 4}, [2]int{6, 7}, [2]int{21, 24}, [2]int{33, 38}, [2]int{47, 48},
		[2]int{50, 51}, [2]int{12, 13}, [2]int{32, 43}, [2]int{31, 33},
	)
}

func rochesterEdges() [][2]int {
	return append(lineEdges(rangeExcept(53, 7, 14, 17, 30, 37, 40)),
		[2]int{7, 8}, [2]int{7, 20}, [2]int{14, 15}, [2]int{14, 44},
		[2]int{17, 18}, [2]int{17, 28}, [2]int{0, 22}, [2]int{30, 31},
		[2]int{30, 42}, [2]int{37, 38}, [2]int{40, 41}, [2]int{40, 51})
}
