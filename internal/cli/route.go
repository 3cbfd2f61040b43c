package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qroute/pkg/distance"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/steiner"
)

// =============================================================================
// distance
// =============================================================================

// distanceCommand creates the distance command.
func (c *CLI) distanceCommand() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "distance <device> <root> <other>",
		Short: "Show the shortest path between two qubits under a policy",
		Long: `Show the shortest path from root to other, taken from the precomputed
table for root's window. Under --policy upper the window is every qubit
whose vertex is not below root's; under full it is every qubit not above it,
and edges may only be walked from the larger to the smaller qubit.`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: c.completeDevice,
		RunE: func(cmd *cobra.Command, args []string) error {
			pol, err := distance.ParsePolicy(policy)
			if err != nil {
				return err
			}
			root, err := parseQubit("root", args[1])
			if err != nil {
				return err
			}
			other, err := parseQubit("other", args[2])
			if err != nil {
				return err
			}
			a, err := c.buildArch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			r, err := a.Distance(root, other, pol)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			pairs := make([]string, len(r.Path))
			for i, h := range r.Path {
				pairs[i] = formatPair(h.From, h.To)
			}
			printKeyValue(w, "cost", strconv.Itoa(r.Cost))
			printPhase(w, "path", pairs)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "upper", "distance policy: upper or full")
	return cmd
}

// =============================================================================
// steiner
// =============================================================================

// steinerCommand creates the steiner command.
func (c *CLI) steinerCommand() *cobra.Command {
	var (
		policy    string
		usable    string
		recursion string
	)

	cmd := &cobra.Command{
		Use:   "steiner <device> <root> <terminals>",
		Short: "Build a Steiner tree and print its two-phase stream",
		Long: `Build an approximate Steiner tree rooted at root spanning the comma-separated
terminals, then print its stream: phase 1 walks root to leaves, phase 2
walks leaves back to root.

With --usable the tree is restricted to those qubits; --recursion then
names the qubits between which the full policy allows both directions.`,
		Example: `  qroute steiner --qubits 4 line 0 1,3
  qroute steiner --qubits 9 square 0 2,8 --usable 0,1,2,3,4,5,6,7,8`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: c.completeDevice,
		RunE: func(cmd *cobra.Command, args []string) error {
			pol, err := distance.ParsePolicy(policy)
			if err != nil {
				return err
			}
			root, err := parseQubit("root", args[1])
			if err != nil {
				return err
			}
			terminals, err := parseQubits("terminal", args[2])
			if err != nil {
				return err
			}
			usableQs, err := parseQubits("usable", usable)
			if err != nil {
				return err
			}
			recQs, err := parseQubits("recursion", recursion)
			if err != nil {
				return err
			}
			if recQs != nil && usableQs == nil {
				return qerrors.Configuration("--recursion needs --usable")
			}
			a, err := c.buildArch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var stream *steiner.Stream
			if usableQs != nil {
				stream, err = a.RecSteinerTree(root, terminals, usableQs, recQs, pol)
			} else {
				stream, err = a.SteinerTree(root, terminals, pol)
			}
			if err != nil {
				return err
			}
			down, up, err := stream.Phases()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			tree := stream.Tree()
			printKeyValue(w, "edges", strconv.Itoa(tree.Cost()))
			printKeyValue(w, "steiner", strconv.Itoa(len(tree.Steiner)))
			downPairs := make([]string, len(down))
			for i, s := range down {
				downPairs[i] = formatPair(s.Control, s.Target)
			}
			upPairs := make([]string, len(up))
			for i, s := range up {
				upPairs[i] = formatPair(s.Control, s.Target)
			}
			printPhase(w, "phase 1", downPairs)
			printPhase(w, "phase 2", upPairs)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "upper", "distance policy: upper or full")
	cmd.Flags().StringVar(&usable, "usable", "", "comma-separated usable qubits (recursive variant)")
	cmd.Flags().StringVar(&recursion, "recursion", "", "comma-separated recursion qubits (with --usable)")
	return cmd
}

// =============================================================================
// path
// =============================================================================

// pathCommand creates the path command.
func (c *CLI) pathCommand() *cobra.Command {
	var usable string

	cmd := &cobra.Command{
		Use:               "path <device> <start> <end>",
		Short:             "Find a BFS shortest path between two qubits",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: c.completeDevice,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseQubit("start", args[1])
			if err != nil {
				return err
			}
			end, err := parseQubit("end", args[2])
			if err != nil {
				return err
			}
			usableQs, err := parseQubits("usable", usable)
			if err != nil {
				return err
			}
			a, err := c.buildArch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			path, err := a.ShortestPath(start, end, usableQs)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printKeyValue(w, "hops", strconv.Itoa(len(path)-1))
			printKeyValue(w, "path", fmt.Sprint(path))
			return nil
		},
	}

	cmd.Flags().StringVar(&usable, "usable", "", "comma-separated usable qubits (default all)")
	return cmd
}
