// Package pkg provides the core libraries for qroute qubit routing.
//
// # Overview
//
// qroute models a quantum device as an undirected coupling graph and builds
// the structures a CNOT-routing compiler needs on top of it: a bijection
// between logical qubits and physical vertices, an elimination order that
// keeps the remaining device connected, constrained all-pairs shortest
// paths, and greedy Steiner trees streamed as two phases of qubit pairs.
//
// # Architecture
//
// The typical data flow:
//
//	preset catalog / TOML device file / adjacency matrix
//	         ↓
//	    [coupling] package (validated graph)
//	         ↓
//	    [placement] package (qubit map + reduce order)
//	         ↓
//	    [distance] package (Upper/Full table families, BFS, memo)
//	         ↓
//	    [steiner] package (greedy tree + two-phase stream)
//
// [arch] ties these together behind a single Architecture value.
//
// # Quick Start
//
//	a, _ := preset.Build("ibm_qx5", preset.Params{})
//	_ = a.Precompute(ctx)
//
//	r, _ := a.Distance(0, 7, distance.Upper)
//	fmt.Println(r.Cost, r.Path)
//
//	stream, _ := a.SteinerTree(0, []int{3, 7, 12}, distance.Full)
//	down, up, _ := stream.Phases()
//
// # Main Packages
//
// ## Routing
//
// [coupling] - Undirected coupling graphs built from edge lists or 0/1
// adjacency matrices. Vertices are arbitrary non-negative integers.
//
// [articulation] - Low-link cut-vertex detection over arbitrary subsets of
// a graph, used to pick which qubits can be eliminated next.
//
// [placement] - The qubit ↔ vertex bijection and the derived reduce order.
//
// [distance] - Floyd-Warshall table families under the Upper and Full
// policies, roaring-backed vertex subsets, a concurrency-safe memo for
// subset-restricted tables, and FIFO BFS paths.
//
// [steiner] - Greedy Steiner tree construction, including the recursive
// variant over usable subsets, and the pull-based two-phase Stream.
//
// [arch] - The Architecture facade: functional options, lazy precompute,
// cached distance tables and the observed query surface.
//
// [preset] - The device catalog: dynamic topologies (line, circle, square,
// fully connected, random density) and fixed IBM, Rigetti and Google
// devices, plus TOML device files.
//
// ## Infrastructure
//
// [cache] - Table cache backends: file (CLI default), Redis and MongoDB, with
// a pluggable keyer.
//
// [observability] - Routing and cache hooks, with a Prometheus adapter in
// observability/prom.
//
// [errors] - Coded errors (CONFIGURATION, ROUTING, INTERNAL_INVARIANT).
//
// # Testing
//
// Run tests:
//
//	go test ./...                                        # All tests
//	go test ./pkg/distance/...                           # Specific package
//	go test -run Example ./pkg/...                       # Examples only
//	QROUTE_TEST_REDIS_ADDR=localhost:6379 go test ./pkg/cache/...
//
// [coupling]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/coupling
// [articulation]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/articulation
// [placement]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/placement
// [distance]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/distance
// [steiner]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/steiner
// [arch]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/arch
// [preset]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/preset
// [cache]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/qroute/pkg/errors
package pkg
