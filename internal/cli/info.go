package cli

import (
	"fmt"
	"slices"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qroute/pkg/arch"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [device]",
		Short: "Show a device's placement, reduce order and cut structure",
		Long: `Show a device's placement, reduce order and cut structure. Without a
device argument an interactive picker lists the catalog.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeDevice,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				picked, err := c.pickDevice(cmd)
				if err != nil || picked == "" {
					return err
				}
				name = picked
			}
			a, err := c.buildArch(cmd.Context(), name)
			if err != nil {
				return err
			}
			return printInfoReport(cmd, a)
		},
	}
}

// pickDevice runs the device picker. An empty name means nothing was picked.
func (c *CLI) pickDevice(cmd *cobra.Command) (string, error) {
	rows, err := c.deviceRows()
	if err != nil {
		return "", err
	}
	p := tea.NewProgram(NewDeviceListModel(rows),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	fm, ok := finalModel.(DeviceListModel)
	if !ok || fm.Selected == nil {
		printDetail(cmd.ErrOrStderr(), "No selection made")
		return "", nil
	}
	return fm.Selected.Name, nil
}

func printInfoReport(cmd *cobra.Command, a *arch.Architecture) error {
	w := cmd.OutOrStdout()
	n := a.QubitCount()

	all := make([]int, n)
	for q := range all {
		all[q] = q
	}
	nonCutting, err := a.NonCuttingQubits(all)
	if err != nil {
		return err
	}
	var cutting []int
	for _, q := range all {
		if !slices.Contains(nonCutting, q) {
			cutting = append(cutting, q)
		}
	}

	minDeg, maxDeg, sumDeg := n, 0, 0
	for q := range n {
		nb, err := a.Neighbors(q)
		if err != nil {
			return err
		}
		minDeg = min(minDeg, len(nb))
		maxDeg = max(maxDeg, len(nb))
		sumDeg += len(nb)
	}

	vertices := make([]int, n)
	for q, v := range a.QubitMap() {
		vertices[q] = int(v)
	}

	printTitle(w, a.Name())
	printKeyValue(w, "id", a.ID().String())
	printKeyValue(w, "qubits", strconv.Itoa(n))
	printKeyValue(w, "edges", strconv.Itoa(a.Graph().EdgeCount()))
	printKeyValue(w, "degree", fmt.Sprintf("min %d · max %d · avg %.2f", minDeg, maxDeg, float64(sumDeg)/float64(n)))
	printKeyValue(w, "qubit map", formatQubits(vertices))
	printKeyValue(w, "reduce order", formatQubits(a.ReduceOrder()))
	printKeyValue(w, "cutting", formatQubits(cutting))
	printKeyValue(w, "non-cutting", formatQubits(nonCutting))
	return nil
}
