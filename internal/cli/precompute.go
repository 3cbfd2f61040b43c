package cli

import (
	"github.com/spf13/cobra"
)

// precomputeCommand creates the precompute command.
func (c *CLI) precomputeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "precompute <device>...",
		Short: "Build and cache the distance tables of one or more devices",
		Long: `Build the Upper and Full distance tables of each device and store them in
the configured table cache, so later queries load them instead of running
Floyd-Warshall again.`,
		Example: `  qroute precompute ibm_qx5 ibm_q20_tokyo
  qroute precompute --qubits 16 square`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeDevice,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			w := cmd.OutOrStdout()
			for _, name := range args {
				prog := newProgress(logger)
				spinner := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Precomputing "+name+"...")
				spinner.Start()
				a, err := c.buildArch(cmd.Context(), name)
				spinner.Stop()
				if err != nil {
					return err
				}
				prog.done("Precomputed " + a.Name())
				printSuccess(w, "%s: %d qubits, %d edges", a.Name(), a.QubitCount(), a.Graph().EdgeCount())
			}
			return nil
		},
	}
}
