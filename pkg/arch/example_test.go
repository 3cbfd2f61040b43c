package arch_test

import (
	"fmt"

	"github.com/matzehuels/qroute/pkg/arch"
	"github.com/matzehuels/qroute/pkg/coupling"
	"github.com/matzehuels/qroute/pkg/distance"
)

func Example() {
	g, _ := coupling.FromEdges(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	a, _ := arch.New("line4", g)

	fmt.Println("qubits:", a.QubitCount())
	fmt.Println("reduce order:", a.ReduceOrder())
	// Output:
	// qubits: 4
	// reduce order: [3 2 1 0]
}

func ExampleArchitecture_SteinerTree() {
	g, _ := coupling.FromEdges(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	a, _ := arch.New("line4", g)

	stream, _ := a.SteinerTree(0, []int{1, 3}, distance.Upper)
	down, up, _ := stream.Phases()
	fmt.Println(down)
	fmt.Println(up)
	// Output:
	// [0->1 1->2 2->3]
	// [2->3 1->2 0->1]
}

func ExampleArchitecture_Distance() {
	a, _ := arch.FromMatrix("path3", [][]int{
		{0, 1, 0},
		{1, 0, 1},
		{0, 1, 0},
	})

	r, _ := a.Distance(0, 2, distance.Upper)
	fmt.Println(r.Cost, r.Path)
	// Output:
	// 2 [{0 1} {1 2}]
}
