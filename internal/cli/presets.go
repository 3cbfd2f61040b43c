package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qroute/pkg/preset"
)

// deviceRow is one catalog entry as shown by presets and the device picker.
type deviceRow struct {
	Name        string
	Size        string
	Description string
	Dynamic     bool
}

// presetsCommand creates the presets command.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the device catalog",
		Long: `List every device in the catalog, including devices registered with
--device-file. Dynamic presets are sized with --qubits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.deviceRows()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range rows {
				size := StyleNumber.Render(fmt.Sprintf("%-8s", r.Size))
				if r.Dynamic {
					size = StyleDim.Render(fmt.Sprintf("%-8s", r.Size))
				}
				fmt.Fprintf(w, "%-24s %s  %s\n", StyleValue.Render(r.Name), size, StyleDim.Render(r.Description))
			}
			return nil
		},
	}
}

// deviceRows lists the catalog in name order.
func (c *CLI) deviceRows() ([]deviceRow, error) {
	names := c.catalog.Names()
	rows := make([]deviceRow, 0, len(names))
	for _, name := range names {
		p, err := c.catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, deviceRow{
			Name:        p.Name,
			Size:        presetSize(p),
			Description: p.Description,
			Dynamic:     p.Dynamic,
		})
	}
	return rows, nil
}

// presetSize renders "20q 43e" for fixed presets and "dynamic" otherwise.
func presetSize(p preset.Preset) string {
	if p.Dynamic {
		return "dynamic"
	}
	t, err := p.Topology(preset.Params{})
	if err != nil {
		return "invalid"
	}
	return strconv.Itoa(t.Graph.Len()) + "q " + strconv.Itoa(t.Graph.EdgeCount()) + "e"
}
